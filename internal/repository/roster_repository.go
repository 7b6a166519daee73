package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/pkg/export"
)

const (
	rosterTable      = "roster"
	cohortIndexTable = "cohorts"
	sequenceTable    = "sequence"
	sheetMarker      = "_attendance_"

	dateLayout     = "02/01/2006"
	timestampField = time.RFC3339
)

var enrollmentHeaders = []string{
	"id", "guardian_name", "contact_number", "identity_number", "city", "address",
	"student_name", "course", "day_pattern", "time_slot", "start_date", "end_date",
	"status", "absences", "cohort",
}

var cohortHeaders = []string{"key", "course", "day_pattern", "time_slot", "created_at"}

// RosterRepository persists the master roster, the per-cohort files and the cohort index.
type RosterRepository struct {
	store TableStore
}

// NewRosterRepository constructs a roster repository.
func NewRosterRepository(store TableStore) *RosterRepository {
	return &RosterRepository{store: store}
}

// ListAll returns the master roster in file order. A missing roster is empty.
func (r *RosterRepository) ListAll(ctx context.Context) ([]models.Enrollment, error) {
	table, err := r.store.Load(ctx, rosterTable)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeEnrollments(table)
}

// SaveAll rewrites the master roster.
func (r *RosterRepository) SaveAll(ctx context.Context, enrollments []models.Enrollment) error {
	return r.store.Save(ctx, rosterTable, encodeEnrollments(enrollments))
}

// ListByCohort returns the cohort file's records or ErrNotFound when the file is absent.
func (r *RosterRepository) ListByCohort(ctx context.Context, key string) ([]models.Enrollment, error) {
	if err := checkCohortKey(key); err != nil {
		return nil, err
	}
	table, err := r.store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return decodeEnrollments(table)
}

// SaveCohort rewrites the cohort file.
func (r *RosterRepository) SaveCohort(ctx context.Context, key string, enrollments []models.Enrollment) error {
	if err := checkCohortKey(key); err != nil {
		return err
	}
	return r.store.Save(ctx, key, encodeEnrollments(enrollments))
}

// CohortExists reports whether the cohort file is present.
func (r *RosterRepository) CohortExists(ctx context.Context, key string) (bool, error) {
	if err := checkCohortKey(key); err != nil {
		return false, err
	}
	return r.store.Exists(ctx, key)
}

// DeleteCohort removes the cohort file and its index entry.
func (r *RosterRepository) DeleteCohort(ctx context.Context, key string) error {
	if err := checkCohortKey(key); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, key); err != nil {
		return err
	}
	cohorts, err := r.loadIndex(ctx)
	if err != nil {
		return err
	}
	kept := cohorts[:0]
	for _, c := range cohorts {
		if c.Key != key {
			kept = append(kept, c)
		}
	}
	return r.saveIndex(ctx, kept)
}

// FindCohort returns the indexed cohort. Cohorts created before the index existed
// are derived from the first record of their file.
func (r *RosterRepository) FindCohort(ctx context.Context, key string) (*models.Cohort, error) {
	if err := checkCohortKey(key); err != nil {
		return nil, err
	}
	cohorts, err := r.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cohorts {
		if c.Key == key {
			found := c
			return &found, nil
		}
	}
	records, err := r.ListByCohort(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cohort %s: %w", key, ErrNotFound)
	}
	first := records[0]
	return &models.Cohort{Key: key, Course: first.Course, DayPattern: first.DayPattern, TimeSlot: first.TimeSlot}, nil
}

// SaveCohortInfo inserts or replaces the cohort's index entry.
func (r *RosterRepository) SaveCohortInfo(ctx context.Context, cohort models.Cohort) error {
	if err := checkCohortKey(cohort.Key); err != nil {
		return err
	}
	cohorts, err := r.loadIndex(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range cohorts {
		if cohorts[i].Key == cohort.Key {
			cohorts[i] = cohort
			replaced = true
		}
	}
	if !replaced {
		cohorts = append(cohorts, cohort)
	}
	return r.saveIndex(ctx, cohorts)
}

// ListCohorts returns every known cohort: indexed ones, cohort files and keys referenced by the roster.
func (r *RosterRepository) ListCohorts(ctx context.Context) ([]models.Cohort, error) {
	cohorts, err := r.loadIndex(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(cohorts))
	for _, c := range cohorts {
		seen[c.Key] = struct{}{}
	}

	names, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if _, ok := seen[name]; ok || checkCohortKey(name) != nil {
			continue
		}
		cohort, err := r.FindCohort(ctx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				cohort = &models.Cohort{Key: name}
			} else {
				return nil, err
			}
		}
		seen[name] = struct{}{}
		cohorts = append(cohorts, *cohort)
	}

	roster, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range roster {
		if e.CohortKey == "" {
			continue
		}
		if _, ok := seen[e.CohortKey]; ok {
			continue
		}
		seen[e.CohortKey] = struct{}{}
		cohorts = append(cohorts, models.Cohort{Key: e.CohortKey, Course: e.Course, DayPattern: e.DayPattern, TimeSlot: e.TimeSlot})
	}

	sort.Slice(cohorts, func(i, j int) bool { return cohorts[i].Key < cohorts[j].Key })
	return cohorts, nil
}

// NextID issues the next enrollment id. Ids are never reused, even after the
// highest ones were deleted from the roster.
func (r *RosterRepository) NextID(ctx context.Context) (int, error) {
	last := 0
	table, err := r.store.Load(ctx, sequenceTable)
	switch {
	case err == nil:
		for _, row := range table.Rows {
			if row["name"] == "enrollment" {
				last, _ = strconv.Atoi(row["value"])
			}
		}
	case errors.Is(err, ErrNotFound):
	default:
		return 0, err
	}

	roster, err := r.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range roster {
		if e.ID > last {
			last = e.ID
		}
	}

	next := last + 1
	seq := export.Dataset{
		Headers: []string{"name", "value"},
		Rows:    []map[string]string{{"name": "enrollment", "value": strconv.Itoa(next)}},
	}
	if err := r.store.Save(ctx, sequenceTable, seq); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *RosterRepository) loadIndex(ctx context.Context) ([]models.Cohort, error) {
	table, err := r.store.Load(ctx, cohortIndexTable)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	cohorts := make([]models.Cohort, 0, len(table.Rows))
	for _, row := range table.Rows {
		c := models.Cohort{
			Key:        row["key"],
			Course:     row["course"],
			DayPattern: models.DayPattern(row["day_pattern"]),
			TimeSlot:   row["time_slot"],
		}
		if raw := row["created_at"]; raw != "" {
			if ts, err := time.Parse(timestampField, raw); err == nil {
				c.CreatedAt = ts
			}
		}
		cohorts = append(cohorts, c)
	}
	return cohorts, nil
}

func (r *RosterRepository) saveIndex(ctx context.Context, cohorts []models.Cohort) error {
	table := export.Dataset{Headers: cohortHeaders}
	for _, c := range cohorts {
		created := ""
		if !c.CreatedAt.IsZero() {
			created = c.CreatedAt.UTC().Format(timestampField)
		}
		table.Rows = append(table.Rows, map[string]string{
			"key":         c.Key,
			"course":      c.Course,
			"day_pattern": string(c.DayPattern),
			"time_slot":   c.TimeSlot,
			"created_at":  created,
		})
	}
	return r.store.Save(ctx, cohortIndexTable, table)
}

func checkCohortKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("cohort key required: %w", ErrInvalidKey)
	case key == rosterTable || key == cohortIndexTable || key == sequenceTable:
		return fmt.Errorf("cohort key %q is reserved: %w", key, ErrInvalidKey)
	case strings.Contains(key, sheetMarker):
		return fmt.Errorf("cohort key %q names an attendance sheet: %w", key, ErrInvalidKey)
	case strings.ContainsAny(key, `/\`) || strings.Contains(key, ".."):
		return fmt.Errorf("cohort key %q contains path characters: %w", key, ErrInvalidKey)
	}
	return nil
}

func encodeEnrollments(enrollments []models.Enrollment) export.Dataset {
	table := export.Dataset{Headers: enrollmentHeaders, Rows: make([]map[string]string, 0, len(enrollments))}
	for _, e := range enrollments {
		table.Rows = append(table.Rows, map[string]string{
			"id":              strconv.Itoa(e.ID),
			"guardian_name":   e.GuardianName,
			"contact_number":  e.ContactNumber,
			"identity_number": e.IdentityNumber,
			"city":            e.City,
			"address":         e.Address,
			"student_name":    e.StudentName,
			"course":          e.Course,
			"day_pattern":     string(e.DayPattern),
			"time_slot":       e.TimeSlot,
			"start_date":      formatDate(e.StartDate),
			"end_date":        formatDate(e.EndDate),
			"status":          string(e.Status),
			"absences":        strconv.Itoa(e.Absences),
			"cohort":          e.CohortKey,
		})
	}
	return table
}

func decodeEnrollments(table export.Dataset) ([]models.Enrollment, error) {
	enrollments := make([]models.Enrollment, 0, len(table.Rows))
	for i, row := range table.Rows {
		id, err := strconv.Atoi(strings.TrimSpace(row["id"]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid id %q", i+1, row["id"])
		}
		absences, err := parseCount(row["absences"])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid absences %q", i+1, row["absences"])
		}
		start, err := parseDate(row["start_date"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		end, err := parseDate(row["end_date"])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		enrollments = append(enrollments, models.Enrollment{
			ID:             id,
			GuardianName:   row["guardian_name"],
			ContactNumber:  row["contact_number"],
			IdentityNumber: row["identity_number"],
			City:           row["city"],
			Address:        row["address"],
			StudentName:    row["student_name"],
			Course:         row["course"],
			DayPattern:     models.DayPattern(row["day_pattern"]),
			TimeSlot:       row["time_slot"],
			StartDate:      start,
			EndDate:        end,
			Status:         models.EnrollmentStatus(row["status"]),
			Absences:       absences,
			CohortKey:      row["cohort"],
		})
	}
	return enrollments, nil
}

func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q", raw)
	}
	return &t, nil
}
