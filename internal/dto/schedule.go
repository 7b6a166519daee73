package dto

// ClassDatesQuery selects a day pattern and month.
type ClassDatesQuery struct {
	Pattern string `form:"pattern"`
	Month   int    `form:"month"`
	Year    int    `form:"year"`
}

// ClassDates lists the dd/mm class dates of a month.
type ClassDates struct {
	Pattern string   `json:"pattern"`
	Month   int      `json:"month"`
	Year    int      `json:"year"`
	Dates   []string `json:"dates"`
}
