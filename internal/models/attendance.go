package models

import (
	"fmt"
	"strings"
	"time"
)

// Mark is the one-character attendance symbol for a class date.
type Mark string

const (
	MarkPresent  Mark = "P"
	MarkAbsent   Mark = "A"
	MarkUnmarked Mark = "N"
)

// NormalizeMark upper-cases and trims a raw cell value; blank becomes MarkUnmarked.
func NormalizeMark(raw string) Mark {
	m := Mark(strings.ToUpper(strings.TrimSpace(raw)))
	if m == "" {
		return MarkUnmarked
	}
	return m
}

// SheetRow is one student's line in an attendance sheet.
type SheetRow struct {
	StudentID   int             `json:"id"`
	StudentName string          `json:"student_name"`
	Absences    int             `json:"absences"`
	Presences   int             `json:"presences"`
	Marks       map[string]Mark `json:"marks"`
}

// Tally counts A and P marks over the given date columns.
func (r SheetRow) Tally(dates []string) (absences, presences int) {
	for _, d := range dates {
		switch r.Marks[d] {
		case MarkAbsent:
			absences++
		case MarkPresent:
			presences++
		}
	}
	return absences, presences
}

// AttendanceSheet is the monthly grid of a cohort.
type AttendanceSheet struct {
	CohortKey string     `json:"cohort"`
	Period    string     `json:"period"`
	Dates     []string   `json:"dates"`
	Rows      []SheetRow `json:"rows"`
}

// OutcomeKind distinguishes the two terminal lists.
type OutcomeKind string

const (
	OutcomeFailed    OutcomeKind = "failed"
	OutcomeCompleted OutcomeKind = "completed"
)

// Valid reports whether the kind is supported.
func (k OutcomeKind) Valid() bool {
	return k == OutcomeFailed || k == OutcomeCompleted
}

// Status maps the outcome to the enrollment status it implies.
func (k OutcomeKind) Status() EnrollmentStatus {
	if k == OutcomeFailed {
		return EnrollmentStatusFailed
	}
	return EnrollmentStatusCompleted
}

// OutcomeList holds the students moved out of one month's sheet.
type OutcomeList struct {
	CohortKey string      `json:"cohort"`
	Period    string      `json:"period"`
	Kind      OutcomeKind `json:"kind"`
	Dates     []string    `json:"dates"`
	Rows      []SheetRow  `json:"rows"`
}

// Contains reports whether the list holds the student id.
func (l OutcomeList) Contains(id int) bool {
	for _, row := range l.Rows {
		if row.StudentID == id {
			return true
		}
	}
	return false
}

// FormatPeriod renders a year and month as YYYY-MM.
func FormatPeriod(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParsePeriod parses a YYYY-MM period.
func ParsePeriod(period string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period %q: expected YYYY-MM", period)
	}
	return t.Year(), t.Month(), nil
}
