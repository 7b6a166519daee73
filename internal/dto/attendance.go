package dto

import (
	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

// GenerateSheetRequest asks for a cohort's sheet for a month.
type GenerateSheetRequest struct {
	CohortKey string `json:"-"`
	Month     int    `json:"month" validate:"required,min=1,max=12"`
	Year      int    `json:"year" validate:"omitempty,min=2000,max=2100"`
	Overwrite bool   `json:"overwrite"`
}

// SheetRowInput is one edited grid row.
type SheetRowInput struct {
	StudentID   int               `json:"id" validate:"required,min=1"`
	StudentName string            `json:"student_name"`
	Absences    int               `json:"absences"`
	Presences   int               `json:"presences"`
	Marks       map[string]string `json:"marks" validate:"dive,mark"`
}

// SaveSheetRequest carries the edited grid of a sheet.
type SaveSheetRequest struct {
	CohortKey string          `json:"-"`
	Period    string          `json:"-"`
	Rows      []SheetRowInput `json:"rows" validate:"dive"`
}

// SaveSheetResult reports the saved sheet and the students promoted out of it.
type SaveSheetResult struct {
	Sheet     *models.AttendanceSheet `json:"sheet"`
	Failed    []int                   `json:"failed"`
	Completed []int                   `json:"completed"`
	Notice    *response.Notice        `json:"-"`
}

// ReplaceOutcomesRequest carries an edited failed or completed list.
type ReplaceOutcomesRequest struct {
	Rows []SheetRowInput `json:"rows" validate:"dive"`
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SheetSummary describes a stored sheet in listings.
type SheetSummary struct {
	CohortKey string `json:"cohort"`
	Period    string `json:"period"`
}
