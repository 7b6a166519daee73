package models

import "time"

// DayPattern names the pair of weekdays a cohort meets on.
type DayPattern string

// Supported day patterns.
const (
	DayPatternMondayWednesday DayPattern = "Monday and Wednesday"
	DayPatternTuesdayThursday DayPattern = "Tuesday and Thursday"
)

var dayPatternWeekdays = map[DayPattern][]time.Weekday{
	DayPatternMondayWednesday: {time.Monday, time.Wednesday},
	DayPatternTuesdayThursday: {time.Tuesday, time.Thursday},
}

// Weekdays returns the weekdays of the pattern and whether the pattern is supported.
func (p DayPattern) Weekdays() ([]time.Weekday, bool) {
	days, ok := dayPatternWeekdays[p]
	return days, ok
}

// Valid reports whether the pattern is supported.
func (p DayPattern) Valid() bool {
	_, ok := dayPatternWeekdays[p]
	return ok
}

// Courses offered by the provider.
var Courses = []string{"Hardware", "English", "Computing"}

// TimeSlots available for a cohort.
var TimeSlots = []string{"7h", "13h", "20h"}

// Cohort groups students sharing course, day pattern and time slot.
type Cohort struct {
	Key        string     `json:"key"`
	Course     string     `json:"course"`
	DayPattern DayPattern `json:"day_pattern"`
	TimeSlot   string     `json:"time_slot"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CohortSummary adds seat counts to a cohort for listings.
type CohortSummary struct {
	Cohort
	Active     int `json:"active"`
	Waitlisted int `json:"waitlisted"`
	Failed     int `json:"failed"`
	Completed  int `json:"completed"`
}
