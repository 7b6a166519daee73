package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/pkg/export"
)

var sheetFixedHeaders = []string{"id", "student_name", "absences", "presences"}

// SheetRepository persists attendance sheets and their failed/completed side files.
type SheetRepository struct {
	store TableStore
}

// NewSheetRepository constructs a sheet repository.
func NewSheetRepository(store TableStore) *SheetRepository {
	return &SheetRepository{store: store}
}

// SheetName returns the table name of a cohort's sheet for a period.
func SheetName(cohortKey, period string) string {
	return cohortKey + sheetMarker + period
}

// OutcomeName returns the table name of a sheet's failed or completed list.
func OutcomeName(cohortKey, period string, kind models.OutcomeKind) string {
	return SheetName(cohortKey, period) + "_" + string(kind)
}

// Exists reports whether the sheet is stored.
func (r *SheetRepository) Exists(ctx context.Context, cohortKey, period string) (bool, error) {
	if err := checkCohortKey(cohortKey); err != nil {
		return false, err
	}
	return r.store.Exists(ctx, SheetName(cohortKey, period))
}

// Find loads a sheet or returns ErrNotFound.
func (r *SheetRepository) Find(ctx context.Context, cohortKey, period string) (*models.AttendanceSheet, error) {
	if err := checkCohortKey(cohortKey); err != nil {
		return nil, err
	}
	table, err := r.store.Load(ctx, SheetName(cohortKey, period))
	if err != nil {
		return nil, err
	}
	dates, rows, err := decodeSheetRows(table)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", SheetName(cohortKey, period), err)
	}
	return &models.AttendanceSheet{CohortKey: cohortKey, Period: period, Dates: dates, Rows: rows}, nil
}

// Save rewrites the sheet.
func (r *SheetRepository) Save(ctx context.Context, sheet *models.AttendanceSheet) error {
	if err := checkCohortKey(sheet.CohortKey); err != nil {
		return err
	}
	return r.store.Save(ctx, SheetName(sheet.CohortKey, sheet.Period), encodeSheetRows(sheet.Dates, sheet.Rows))
}

// Delete removes the sheet. Its failed/completed lists are kept.
func (r *SheetRepository) Delete(ctx context.Context, cohortKey, period string) error {
	if err := checkCohortKey(cohortKey); err != nil {
		return err
	}
	return r.store.Delete(ctx, SheetName(cohortKey, period))
}

// ListPeriods returns the periods of every stored sheet of the cohort, ascending.
func (r *SheetRepository) ListPeriods(ctx context.Context, cohortKey string) ([]string, error) {
	if err := checkCohortKey(cohortKey); err != nil {
		return nil, err
	}
	names, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	prefix := cohortKey + sheetMarker
	periods := make([]string, 0)
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		period := strings.TrimPrefix(name, prefix)
		if strings.Contains(period, "_") {
			continue
		}
		periods = append(periods, period)
	}
	sort.Strings(periods)
	return periods, nil
}

// FindOutcomes loads one month's failed or completed list. A missing file is an empty list.
func (r *SheetRepository) FindOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind) (*models.OutcomeList, error) {
	if err := checkCohortKey(cohortKey); err != nil {
		return nil, err
	}
	list := &models.OutcomeList{CohortKey: cohortKey, Period: period, Kind: kind}
	table, err := r.store.Load(ctx, OutcomeName(cohortKey, period, kind))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return list, nil
		}
		return nil, err
	}
	dates, rows, err := decodeSheetRows(table)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", OutcomeName(cohortKey, period, kind), err)
	}
	list.Dates, list.Rows = dates, rows
	return list, nil
}

// SaveOutcomes rewrites one month's failed or completed list.
func (r *SheetRepository) SaveOutcomes(ctx context.Context, list *models.OutcomeList) error {
	if err := checkCohortKey(list.CohortKey); err != nil {
		return err
	}
	return r.store.Save(ctx, OutcomeName(list.CohortKey, list.Period, list.Kind), encodeSheetRows(list.Dates, list.Rows))
}

// OutcomeIDs returns the ids present in any month's list of the given kind for the cohort.
func (r *SheetRepository) OutcomeIDs(ctx context.Context, cohortKey string, kind models.OutcomeKind) (map[int]struct{}, error) {
	if err := checkCohortKey(cohortKey); err != nil {
		return nil, err
	}
	names, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	prefix := cohortKey + sheetMarker
	suffix := "_" + string(kind)
	ids := make(map[int]struct{})
	for _, name := range names {
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
			continue
		}
		table, err := r.store.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		_, rows, err := decodeSheetRows(table)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", name, err)
		}
		for _, row := range rows {
			ids[row.StudentID] = struct{}{}
		}
	}
	return ids, nil
}

func encodeSheetRows(dates []string, rows []models.SheetRow) export.Dataset {
	headers := make([]string, 0, len(sheetFixedHeaders)+len(dates))
	headers = append(headers, sheetFixedHeaders...)
	headers = append(headers, dates...)
	table := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		record := map[string]string{
			"id":           strconv.Itoa(row.StudentID),
			"student_name": row.StudentName,
			"absences":     strconv.Itoa(row.Absences),
			"presences":    strconv.Itoa(row.Presences),
		}
		for _, d := range dates {
			mark := row.Marks[d]
			if mark == "" {
				mark = models.MarkUnmarked
			}
			record[d] = string(mark)
		}
		table.Rows = append(table.Rows, record)
	}
	return table
}

func decodeSheetRows(table export.Dataset) ([]string, []models.SheetRow, error) {
	if len(table.Headers) < len(sheetFixedHeaders) {
		return nil, nil, fmt.Errorf("expected columns %v", sheetFixedHeaders)
	}
	for i, h := range sheetFixedHeaders {
		if table.Headers[i] != h {
			return nil, nil, fmt.Errorf("column %d is %q, expected %q", i+1, table.Headers[i], h)
		}
	}
	dates := append([]string(nil), table.Headers[len(sheetFixedHeaders):]...)
	rows := make([]models.SheetRow, 0, len(table.Rows))
	for i, record := range table.Rows {
		id, err := strconv.Atoi(strings.TrimSpace(record["id"]))
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid id %q", i+1, record["id"])
		}
		absences, err := parseCount(record["absences"])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid absences %q", i+1, record["absences"])
		}
		presences, err := parseCount(record["presences"])
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: invalid presences %q", i+1, record["presences"])
		}
		marks := make(map[string]models.Mark, len(dates))
		for _, d := range dates {
			marks[d] = models.NormalizeMark(record[d])
		}
		rows = append(rows, models.SheetRow{
			StudentID:   id,
			StudentName: record["student_name"],
			Absences:    absences,
			Presences:   presences,
			Marks:       marks,
		})
	}
	return dates, rows, nil
}
