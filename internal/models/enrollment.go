package models

import (
	"strings"
	"time"
)

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusActive     EnrollmentStatus = "active"
	EnrollmentStatusWaitlisted EnrollmentStatus = "waitlisted"
	EnrollmentStatusFailed     EnrollmentStatus = "failed"
	EnrollmentStatusCompleted  EnrollmentStatus = "completed"
)

// Valid returns true when the status is a supported value.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentStatusActive, EnrollmentStatusWaitlisted, EnrollmentStatusFailed, EnrollmentStatusCompleted:
		return true
	default:
		return false
	}
}

// Enrollment captures a student's registration into a cohort.
type Enrollment struct {
	ID             int              `json:"id"`
	GuardianName   string           `json:"guardian_name"`
	ContactNumber  string           `json:"contact_number"`
	IdentityNumber string           `json:"identity_number"`
	City           string           `json:"city"`
	Address        string           `json:"address"`
	StudentName    string           `json:"student_name"`
	Course         string           `json:"course"`
	DayPattern     DayPattern       `json:"day_pattern"`
	TimeSlot       string           `json:"time_slot"`
	StartDate      *time.Time       `json:"start_date,omitempty"`
	EndDate        *time.Time       `json:"end_date,omitempty"`
	Status         EnrollmentStatus `json:"status"`
	Absences       int              `json:"absences"`
	CohortKey      string           `json:"cohort"`
}

// IsActive reports whether the enrollment holds a seat.
func (e Enrollment) IsActive() bool {
	return e.Status == EnrollmentStatusActive
}

// CohortKey derives the cohort identifier from course, day pattern and time slot.
// Every run of whitespace becomes a single underscore.
func CohortKey(course string, pattern DayPattern, timeSlot string) string {
	raw := strings.Join([]string{course, string(pattern), timeSlot}, "_")
	return strings.Join(strings.Fields(raw), "_")
}

// CountActive returns how many enrollments currently hold a seat.
func CountActive(enrollments []Enrollment) int {
	n := 0
	for _, e := range enrollments {
		if e.IsActive() {
			n++
		}
	}
	return n
}
