package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cohort-attendance/internal/models"
)

const hardwareKey = "Hardware_Monday_and_Wednesday_7h"

func sampleEnrollment(id int, status models.EnrollmentStatus) models.Enrollment {
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 56)
	e := models.Enrollment{
		ID:             id,
		GuardianName:   "Maria Silva",
		ContactNumber:  "11987654321",
		IdentityNumber: "12345678901",
		City:           "Guarujá/SP",
		Address:        "Rua Das Flores, 10",
		StudentName:    "Ana Silva",
		Course:         "Hardware",
		DayPattern:     models.DayPatternMondayWednesday,
		TimeSlot:       "7h",
		Status:         status,
		CohortKey:      hardwareKey,
	}
	if status == models.EnrollmentStatusActive {
		e.StartDate, e.EndDate = &start, &end
	}
	return e
}

func TestRosterRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(newFileStore(t))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.ListByCohort(ctx, hardwareKey)
	assert.ErrorIs(t, err, ErrNotFound)

	records := []models.Enrollment{sampleEnrollment(1, models.EnrollmentStatusActive), sampleEnrollment(2, models.EnrollmentStatusWaitlisted)}
	records[0].Absences = 2
	require.NoError(t, repo.SaveAll(ctx, records))
	require.NoError(t, repo.SaveCohort(ctx, hardwareKey, records))

	loaded, err := repo.ListByCohort(ctx, hardwareKey)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, records[0].StartDate.Format("2006-01-02"), loaded[0].StartDate.Format("2006-01-02"))
	assert.Equal(t, "29/04/2024", loaded[0].EndDate.Format(dateLayout))
	assert.Equal(t, 2, loaded[0].Absences)
	assert.Nil(t, loaded[1].StartDate)
	assert.Equal(t, models.EnrollmentStatusWaitlisted, loaded[1].Status)
	assert.Equal(t, "Guarujá/SP", loaded[1].City)
}

func TestRosterRepositoryNextIDNeverReuses(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(NewMemoryStore())

	first, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	require.NoError(t, repo.SaveAll(ctx, []models.Enrollment{sampleEnrollment(1, models.EnrollmentStatusActive), sampleEnrollment(7, models.EnrollmentStatusActive)}))
	next, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, next)

	require.NoError(t, repo.SaveAll(ctx, nil))
	next, err = repo.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, next)
}

func TestRosterRepositoryCohortIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(NewMemoryStore())

	_, err := repo.FindCohort(ctx, hardwareKey)
	assert.ErrorIs(t, err, ErrNotFound)

	created := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveCohortInfo(ctx, models.Cohort{Key: hardwareKey, Course: "Hardware", DayPattern: models.DayPatternMondayWednesday, TimeSlot: "7h", CreatedAt: created}))
	require.NoError(t, repo.SaveCohortInfo(ctx, models.Cohort{Key: hardwareKey, Course: "Hardware", DayPattern: models.DayPatternMondayWednesday, TimeSlot: "7h", CreatedAt: created}))

	cohort, err := repo.FindCohort(ctx, hardwareKey)
	require.NoError(t, err)
	assert.Equal(t, models.DayPatternMondayWednesday, cohort.DayPattern)
	assert.True(t, created.Equal(cohort.CreatedAt))

	cohorts, err := repo.ListCohorts(ctx)
	require.NoError(t, err)
	assert.Len(t, cohorts, 1)
}

func TestRosterRepositoryFindCohortFallsBackToFirstRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(NewMemoryStore())
	require.NoError(t, repo.SaveCohort(ctx, hardwareKey, []models.Enrollment{sampleEnrollment(1, models.EnrollmentStatusActive)}))

	cohort, err := repo.FindCohort(ctx, hardwareKey)
	require.NoError(t, err)
	assert.Equal(t, "Hardware", cohort.Course)
	assert.Equal(t, models.DayPatternMondayWednesday, cohort.DayPattern)
}

func TestRosterRepositoryListCohortsMergesSources(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewRosterRepository(store)
	sheets := NewSheetRepository(store)

	require.NoError(t, repo.SaveCohort(ctx, hardwareKey, []models.Enrollment{sampleEnrollment(1, models.EnrollmentStatusActive)}))
	orphan := sampleEnrollment(2, models.EnrollmentStatusActive)
	orphan.CohortKey = "English_Tuesday_and_Thursday_20h"
	orphan.Course = "English"
	require.NoError(t, repo.SaveAll(ctx, []models.Enrollment{orphan}))
	require.NoError(t, sheets.Save(ctx, &models.AttendanceSheet{CohortKey: hardwareKey, Period: "2024-03", Dates: []string{"04/03"}}))

	cohorts, err := repo.ListCohorts(ctx)
	require.NoError(t, err)
	keys := make([]string, 0, len(cohorts))
	for _, c := range cohorts {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"English_Tuesday_and_Thursday_20h", hardwareKey}, keys)
}

func TestRosterRepositoryDeleteCohort(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(NewMemoryStore())
	require.NoError(t, repo.SaveCohortInfo(ctx, models.Cohort{Key: hardwareKey}))
	require.NoError(t, repo.SaveCohort(ctx, hardwareKey, []models.Enrollment{sampleEnrollment(1, models.EnrollmentStatusActive)}))

	require.NoError(t, repo.DeleteCohort(ctx, hardwareKey))
	ok, err := repo.CohortExists(ctx, hardwareKey)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = repo.FindCohort(ctx, hardwareKey)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterRepositoryRejectsReservedKeys(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository(NewMemoryStore())
	for _, key := range []string{"", "roster", "cohorts", "sequence", hardwareKey + "_attendance_2024-03", "../x"} {
		_, err := repo.ListByCohort(ctx, key)
		assert.Error(t, err, key)
	}
}
