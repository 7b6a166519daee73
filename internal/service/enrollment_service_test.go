package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/internal/repository"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

const hardwareMonWed7h = "Hardware_Monday_and_Wednesday_7h"

func newEnrollmentFixture(t *testing.T) (*EnrollmentService, *repository.RosterRepository) {
	t.Helper()
	roster := repository.NewRosterRepository(repository.NewMemoryStore())
	svc := NewEnrollmentService(roster, DefaultEnrollmentPolicy(), nil, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC) }
	return svc, roster
}

func registerRequest(name string) dto.RegisterRequest {
	return dto.RegisterRequest{
		GuardianName:   "maria silva",
		ContactNumber:  "11987654321",
		IdentityNumber: "12345678901",
		Address:        "rua das flores, 10",
		StudentName:    name,
		Course:         "Hardware",
		DayPattern:     string(models.DayPatternMondayWednesday),
		TimeSlot:       "7h",
		StartDate:      "2024-03-04",
	}
}

func studentName(i int) string {
	letters := "abcdefghijklmnopqrstuvwxyz"
	return "student " + string(letters[i%len(letters)]) + string(letters[(i/len(letters))%len(letters)])
}

func TestEnrollmentServiceRegisterActive(t *testing.T) {
	svc, roster := newEnrollmentFixture(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerRequest("ana souza"))
	require.NoError(t, err)

	e := result.Enrollment
	assert.Equal(t, 1, e.ID)
	assert.Equal(t, "Ana Souza", e.StudentName)
	assert.Equal(t, "Maria Silva", e.GuardianName)
	assert.Equal(t, "Rua Das Flores, 10", e.Address)
	assert.Equal(t, "Guarujá/SP", e.City)
	assert.Equal(t, hardwareMonWed7h, e.CohortKey)
	assert.Equal(t, models.EnrollmentStatusActive, e.Status)
	require.NotNil(t, e.StartDate)
	require.NotNil(t, e.EndDate)
	assert.Equal(t, time.Date(2024, time.April, 29, 0, 0, 0, 0, time.UTC), *e.EndDate)
	require.NotNil(t, result.Notice)
	assert.Equal(t, response.NoticeSuccess, result.Notice.Level)

	cohortRecords, err := roster.ListByCohort(ctx, hardwareMonWed7h)
	require.NoError(t, err)
	require.Len(t, cohortRecords, 1)
	all, err := roster.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	cohort, err := roster.FindCohort(ctx, hardwareMonWed7h)
	require.NoError(t, err)
	assert.Equal(t, models.DayPatternMondayWednesday, cohort.DayPattern)
	assert.False(t, cohort.CreatedAt.IsZero())
}

func TestEnrollmentServiceWaitlistsPastCapacity(t *testing.T) {
	svc, roster := newEnrollmentFixture(t)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		result, err := svc.Register(ctx, registerRequest(studentName(i)))
		require.NoError(t, err)
		require.Equal(t, models.EnrollmentStatusActive, result.Enrollment.Status)
	}

	result, err := svc.Register(ctx, registerRequest("late comer"))
	require.NoError(t, err)
	assert.Equal(t, 21, result.Enrollment.ID)
	assert.Equal(t, models.EnrollmentStatusWaitlisted, result.Enrollment.Status)
	assert.Nil(t, result.Enrollment.StartDate)
	assert.Nil(t, result.Enrollment.EndDate)
	require.NotNil(t, result.Notice)
	assert.Equal(t, response.NoticeWarning, result.Notice.Level)
	assert.Contains(t, result.Notice.Message, "limit of 20 students")

	records, err := roster.ListByCohort(ctx, hardwareMonWed7h)
	require.NoError(t, err)
	assert.Len(t, records, 21)
	assert.Equal(t, 20, models.CountActive(records))
}

func TestEnrollmentServiceSeparatesCohorts(t *testing.T) {
	svc, roster := newEnrollmentFixture(t)
	ctx := context.Background()

	req := registerRequest("ana souza")
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	req.TimeSlot = "20h"
	req.DayPattern = string(models.DayPatternTuesdayThursday)
	result, err := svc.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Hardware_Tuesday_and_Thursday_20h", result.Enrollment.CohortKey)
	assert.Equal(t, 2, result.Enrollment.ID)

	cohorts, err := roster.ListCohorts(ctx)
	require.NoError(t, err)
	assert.Len(t, cohorts, 2)
}

func TestEnrollmentServiceValidation(t *testing.T) {
	svc, roster := newEnrollmentFixture(t)
	ctx := context.Background()

	cases := map[string]func(*dto.RegisterRequest){
		"digits in name":      func(r *dto.RegisterRequest) { r.StudentName = "Ana 2" },
		"short contact":       func(r *dto.RegisterRequest) { r.ContactNumber = "1198765432" },
		"letters in identity": func(r *dto.RegisterRequest) { r.IdentityNumber = "1234567890x" },
		"unknown course":      func(r *dto.RegisterRequest) { r.Course = "Cooking" },
		"missing pattern":     func(r *dto.RegisterRequest) { r.DayPattern = "" },
		"unknown slot":        func(r *dto.RegisterRequest) { r.TimeSlot = "9h" },
		"bad start date":      func(r *dto.RegisterRequest) { r.StartDate = "04/03/2024" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := registerRequest("ana souza")
			mutate(&req)
			_, err := svc.Register(ctx, req)
			require.Error(t, err)
			assert.True(t, appErrors.Is(err, appErrors.ErrValidation), fmt.Sprintf("%v", err))
		})
	}

	all, err := roster.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEnrollmentServiceRejectsUnknownDayPattern(t *testing.T) {
	svc, roster := newEnrollmentFixture(t)
	ctx := context.Background()

	req := registerRequest("ana souza")
	req.DayPattern = "Friday and Saturday"
	_, err := svc.Register(ctx, req)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidPattern), fmt.Sprintf("%v", err))
	assert.False(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	all, err := roster.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEnrollmentServiceList(t *testing.T) {
	svc, _ := newEnrollmentFixture(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ana souza"))
	require.NoError(t, err)
	other := registerRequest("bia lima")
	other.Course = "English"
	_, err = svc.Register(ctx, other)
	require.NoError(t, err)

	all, err := svc.List(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hardware, err := svc.List(ctx, hardwareMonWed7h, models.EnrollmentStatusActive)
	require.NoError(t, err)
	require.Len(t, hardware, 1)
	assert.Equal(t, "Ana Souza", hardware[0].StudentName)

	_, err = svc.List(ctx, "", "graduated")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
