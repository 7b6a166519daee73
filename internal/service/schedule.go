package service

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
)

const classDateLayout = "02/01"

// ClassDays returns every day of the month falling on one of the pattern's weekdays, ascending.
func ClassDays(pattern models.DayPattern, month time.Month, year int) ([]time.Time, error) {
	weekdays, ok := pattern.Weekdays()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidPattern, fmt.Sprintf("unsupported class day pattern %q", pattern))
	}
	if month < time.January || month > time.December {
		return nil, appErrors.Clone(appErrors.ErrValidation, "month must be between 1 and 12")
	}

	wanted := make(map[time.Weekday]bool, len(weekdays))
	for _, wd := range weekdays {
		wanted[wd] = true
	}

	days := make([]time.Time, 0, 10)
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if wanted[d.Weekday()] {
			days = append(days, d)
		}
	}
	return days, nil
}

// GenerateClassDates formats ClassDays as dd/mm column labels.
func GenerateClassDates(pattern models.DayPattern, month time.Month, year int) ([]string, error) {
	days, err := ClassDays(pattern, month, year)
	if err != nil {
		return nil, err
	}
	dates := make([]string, len(days))
	for i, d := range days {
		dates[i] = d.Format(classDateLayout)
	}
	return dates, nil
}

// ScheduleService answers class date lookups for the HTTP layer.
type ScheduleService struct {
	now func() time.Time
}

// NewScheduleService constructs ScheduleService.
func NewScheduleService() *ScheduleService {
	return &ScheduleService{now: time.Now}
}

// ClassDates lists the class dates of a pattern in a month. Year defaults to the current year.
func (s *ScheduleService) ClassDates(_ context.Context, query dto.ClassDatesQuery) (*dto.ClassDates, error) {
	year := query.Year
	if year == 0 {
		year = s.now().Year()
	}
	dates, err := GenerateClassDates(models.DayPattern(query.Pattern), time.Month(query.Month), year)
	if err != nil {
		return nil, err
	}
	return &dto.ClassDates{Pattern: query.Pattern, Month: query.Month, Year: year, Dates: dates}, nil
}
