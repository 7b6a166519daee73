package dto

import (
	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

// RegisterRequest is the registration form.
type RegisterRequest struct {
	GuardianName   string `json:"guardian_name" validate:"required,alphaspace"`
	ContactNumber  string `json:"contact_number" validate:"required,digits,len=11"`
	IdentityNumber string `json:"identity_number" validate:"required,digits,len=11"`
	Address        string `json:"address" validate:"max=200"`
	StudentName    string `json:"student_name" validate:"required,alphaspace"`
	Course         string `json:"course" validate:"required,oneof=Hardware English Computing"`
	DayPattern     string `json:"day_pattern" validate:"required,day_pattern"`
	TimeSlot       string `json:"time_slot" validate:"required,oneof=7h 13h 20h"`
	StartDate      string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// RegisterResult is returned after a registration.
type RegisterResult struct {
	Enrollment models.Enrollment `json:"enrollment"`
	Notice     *response.Notice  `json:"-"`
}

// CohortDetail bundles a cohort with its records.
type CohortDetail struct {
	Cohort      models.Cohort       `json:"cohort"`
	Enrollments []models.Enrollment `json:"enrollments"`
}

// ReplaceCohortRequest carries the edited records of a cohort.
type ReplaceCohortRequest struct {
	Enrollments []models.Enrollment `json:"enrollments" validate:"dive"`
}

// AdmitWaitlistedRequest starts waitlisted students when seats are free.
type AdmitWaitlistedRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// AdmissionResult lists the enrollments moved from the waitlist.
type AdmissionResult struct {
	Admitted []models.Enrollment `json:"admitted"`
	Notice   *response.Notice    `json:"-"`
}
