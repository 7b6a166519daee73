package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cohort-attendance/internal/models"
)

func sampleSheet(period string) *models.AttendanceSheet {
	return &models.AttendanceSheet{
		CohortKey: hardwareKey,
		Period:    period,
		Dates:     []string{"04/03", "06/03"},
		Rows: []models.SheetRow{
			{StudentID: 1, StudentName: "Ana Silva", Absences: 1, Presences: 1, Marks: map[string]models.Mark{"04/03": models.MarkPresent, "06/03": models.MarkAbsent}},
			{StudentID: 2, StudentName: "Bia Souza", Marks: map[string]models.Mark{}},
		},
	}
}

func TestSheetRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(newFileStore(t))

	_, err := repo.Find(ctx, hardwareKey, "2024-03")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Save(ctx, sampleSheet("2024-03")))
	sheet, err := repo.Find(ctx, hardwareKey, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"04/03", "06/03"}, sheet.Dates)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, models.MarkAbsent, sheet.Rows[0].Marks["06/03"])
	assert.Equal(t, models.MarkUnmarked, sheet.Rows[1].Marks["04/03"])
	assert.Equal(t, 1, sheet.Rows[0].Absences)
}

func TestSheetRepositoryListPeriodsSkipsOutcomes(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(NewMemoryStore())
	require.NoError(t, repo.Save(ctx, sampleSheet("2024-04")))
	require.NoError(t, repo.Save(ctx, sampleSheet("2024-03")))
	require.NoError(t, repo.SaveOutcomes(ctx, &models.OutcomeList{CohortKey: hardwareKey, Period: "2024-03", Kind: models.OutcomeFailed, Dates: []string{"04/03"}}))

	other := sampleSheet("2024-05")
	other.CohortKey = hardwareKey + "x"
	require.NoError(t, repo.Save(ctx, other))

	periods, err := repo.ListPeriods(ctx, hardwareKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03", "2024-04"}, periods)
}

func TestSheetRepositoryOutcomes(t *testing.T) {
	ctx := context.Background()
	repo := NewSheetRepository(NewMemoryStore())

	empty, err := repo.FindOutcomes(ctx, hardwareKey, "2024-03", models.OutcomeFailed)
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)

	sheet := sampleSheet("2024-03")
	require.NoError(t, repo.SaveOutcomes(ctx, &models.OutcomeList{CohortKey: hardwareKey, Period: "2024-03", Kind: models.OutcomeFailed, Dates: sheet.Dates, Rows: sheet.Rows[:1]}))
	require.NoError(t, repo.SaveOutcomes(ctx, &models.OutcomeList{CohortKey: hardwareKey, Period: "2024-04", Kind: models.OutcomeFailed, Dates: sheet.Dates, Rows: sheet.Rows[1:]}))
	require.NoError(t, repo.SaveOutcomes(ctx, &models.OutcomeList{CohortKey: hardwareKey, Period: "2024-04", Kind: models.OutcomeCompleted, Dates: sheet.Dates, Rows: []models.SheetRow{{StudentID: 9, Marks: map[string]models.Mark{}}}}))

	failed, err := repo.OutcomeIDs(ctx, hardwareKey, models.OutcomeFailed)
	require.NoError(t, err)
	assert.Len(t, failed, 2)
	assert.Contains(t, failed, 1)
	assert.Contains(t, failed, 2)

	completed, err := repo.OutcomeIDs(ctx, hardwareKey, models.OutcomeCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
	assert.Contains(t, completed, 9)
}
