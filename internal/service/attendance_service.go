package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/internal/repository"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

type sheetRepository interface {
	Exists(ctx context.Context, cohortKey, period string) (bool, error)
	Find(ctx context.Context, cohortKey, period string) (*models.AttendanceSheet, error)
	Save(ctx context.Context, sheet *models.AttendanceSheet) error
	Delete(ctx context.Context, cohortKey, period string) error
	ListPeriods(ctx context.Context, cohortKey string) ([]string, error)
	FindOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind) (*models.OutcomeList, error)
	SaveOutcomes(ctx context.Context, list *models.OutcomeList) error
	OutcomeIDs(ctx context.Context, cohortKey string, kind models.OutcomeKind) (map[int]struct{}, error)
}

type attendanceRosterRepository interface {
	ListAll(ctx context.Context) ([]models.Enrollment, error)
	SaveAll(ctx context.Context, enrollments []models.Enrollment) error
	ListByCohort(ctx context.Context, key string) ([]models.Enrollment, error)
	SaveCohort(ctx context.Context, key string, enrollments []models.Enrollment) error
	FindCohort(ctx context.Context, key string) (*models.Cohort, error)
}

// AttendancePolicy holds the promotion thresholds.
type AttendancePolicy struct {
	FailAbsenceLimit         int
	CompletePresenceTarget   int
	CompleteAbsenceAllowance int
}

// DefaultAttendancePolicy fails after more than 3 absences and completes at 16 classes.
func DefaultAttendancePolicy() AttendancePolicy {
	return AttendancePolicy{FailAbsenceLimit: 3, CompletePresenceTarget: 16, CompleteAbsenceAllowance: 2}
}

func (p AttendancePolicy) normalized() AttendancePolicy {
	def := DefaultAttendancePolicy()
	if p.FailAbsenceLimit <= 0 {
		p.FailAbsenceLimit = def.FailAbsenceLimit
	}
	if p.CompletePresenceTarget <= 0 {
		p.CompletePresenceTarget = def.CompletePresenceTarget
	}
	if p.CompleteAbsenceAllowance < 0 {
		p.CompleteAbsenceAllowance = def.CompleteAbsenceAllowance
	}
	return p
}

// Fails reports whether the absence count exceeds the limit.
func (p AttendancePolicy) Fails(absences int) bool {
	return absences > p.FailAbsenceLimit
}

// Completes reports whether the counts reach completion:
// presences >= target, or presences+absences >= target with absences within the allowance.
func (p AttendancePolicy) Completes(absences, presences int) bool {
	return presences >= p.CompletePresenceTarget ||
		(presences+absences >= p.CompletePresenceTarget && absences <= p.CompleteAbsenceAllowance)
}

// AttendanceService builds monthly sheets and recalculates them.
type AttendanceService struct {
	sheets    sheetRepository
	roster    attendanceRosterRepository
	policy    AttendancePolicy
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(sheets sheetRepository, roster attendanceRosterRepository, policy AttendancePolicy, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerValidations(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		sheets:    sheets,
		roster:    roster,
		policy:    policy.normalized(),
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// GenerateSheet builds the cohort's sheet for a month. Every active student gets a row
// seeded with the A and P marks of the cohort's other sheets and unmarked class dates.
func (s *AttendanceService) GenerateSheet(ctx context.Context, req dto.GenerateSheetRequest) (*models.AttendanceSheet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must be 1-12 and year 2000-2100")
	}
	began := s.now()
	defer func() { s.metrics.ObserveOperation("generate_sheet", time.Since(began)) }()

	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}
	records, err := s.roster.ListByCohort(ctx, req.CohortKey)
	if err != nil {
		return nil, cohortLookupError(err, req.CohortKey)
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrCohortNotFound, fmt.Sprintf("cohort %s has no students", req.CohortKey))
	}

	pattern := records[0].DayPattern
	if cohort, err := s.roster.FindCohort(ctx, req.CohortKey); err == nil && cohort.DayPattern != "" {
		pattern = cohort.DayPattern
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, cohortLookupError(err, req.CohortKey)
	}

	dates, err := GenerateClassDates(pattern, time.Month(req.Month), year)
	if err != nil {
		return nil, err
	}
	period := models.FormatPeriod(year, time.Month(req.Month))

	exists, err := s.sheets.Exists(ctx, req.CohortKey, period)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check sheet")
	}
	if exists && !req.Overwrite {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("sheet %s already exists for cohort %s", period, req.CohortKey))
	}

	totals, err := s.priorTotals(ctx, req.CohortKey, period)
	if err != nil {
		return nil, err
	}

	sheet := &models.AttendanceSheet{CohortKey: req.CohortKey, Period: period, Dates: dates, Rows: []models.SheetRow{}}
	for _, e := range records {
		if !e.IsActive() {
			continue
		}
		marks := make(map[string]models.Mark, len(dates))
		for _, d := range dates {
			marks[d] = models.MarkUnmarked
		}
		t := totals[e.ID]
		sheet.Rows = append(sheet.Rows, models.SheetRow{
			StudentID:   e.ID,
			StudentName: e.StudentName,
			Absences:    t.absences,
			Presences:   t.presences,
			Marks:       marks,
		})
	}

	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save sheet")
	}
	s.metrics.RecordSheetGenerated()
	s.logger.Info("attendance sheet generated",
		zap.String("cohort", req.CohortKey),
		zap.String("period", period),
		zap.Int("rows", len(sheet.Rows)),
		zap.Int("dates", len(dates)),
	)
	return sheet, nil
}

type markTotals struct {
	absences  int
	presences int
}

// priorTotals sums per-student A and P marks over every sheet of the cohort except period.
func (s *AttendanceService) priorTotals(ctx context.Context, cohortKey, period string) (map[int]markTotals, error) {
	periods, err := s.sheets.ListPeriods(ctx, cohortKey)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sheets")
	}
	totals := make(map[int]markTotals)
	for _, p := range periods {
		if p == period {
			continue
		}
		prior, err := s.sheets.Find(ctx, cohortKey, p)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to read sheet %s", p))
		}
		for _, row := range prior.Rows {
			a, pr := row.Tally(prior.Dates)
			t := totals[row.StudentID]
			t.absences += a
			t.presences += pr
			totals[row.StudentID] = t
		}
	}
	return totals, nil
}

// SaveSheet recalculates an edited sheet, propagates absences to the cohort file and
// master roster, promotes students to the failed or completed list and prunes them.
// Every row id must exist in both the cohort file and the master roster, otherwise
// nothing is written.
func (s *AttendanceService) SaveSheet(ctx context.Context, req dto.SaveSheetRequest) (*dto.SaveSheetResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "marks must be P, A or N")
	}
	if err := checkPeriod(req.Period); err != nil {
		return nil, err
	}
	began := s.now()
	defer func() { s.metrics.ObserveOperation("save_sheet", time.Since(began)) }()

	stored, err := s.sheets.Find(ctx, req.CohortKey, req.Period)
	if err != nil {
		return nil, sheetLookupError(err, req.CohortKey, req.Period)
	}
	rows, err := buildRows(stored.Dates, req.Rows)
	if err != nil {
		return nil, err
	}

	records, err := s.roster.ListByCohort(ctx, req.CohortKey)
	if err != nil {
		return nil, cohortLookupError(err, req.CohortKey)
	}
	roster, err := s.roster.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	cohortIndex := indexByID(records)
	rosterIndex := indexByID(roster)
	for _, row := range rows {
		if _, ok := cohortIndex[row.StudentID]; !ok {
			return nil, appErrors.Clone(appErrors.ErrRecordNotFound, fmt.Sprintf("student %d not found in cohort %s", row.StudentID, req.CohortKey))
		}
		if _, ok := rosterIndex[row.StudentID]; !ok {
			return nil, appErrors.Clone(appErrors.ErrRecordNotFound, fmt.Sprintf("student %d not found in master roster", row.StudentID))
		}
	}

	failedIDs, err := s.sheets.OutcomeIDs(ctx, req.CohortKey, models.OutcomeFailed)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load failed list")
	}
	completedIDs, err := s.sheets.OutcomeIDs(ctx, req.CohortKey, models.OutcomeCompleted)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load completed list")
	}

	var stagedFailed, stagedCompleted []models.SheetRow
	for i := range rows {
		row := &rows[i]
		row.Absences, row.Presences = row.Tally(stored.Dates)
		if row.StudentName == "" {
			row.StudentName = records[cohortIndex[row.StudentID]].StudentName
		}
		records[cohortIndex[row.StudentID]].Absences = row.Absences
		roster[rosterIndex[row.StudentID]].Absences = row.Absences

		_, isFailed := failedIDs[row.StudentID]
		_, isCompleted := completedIDs[row.StudentID]
		if isFailed || isCompleted {
			continue
		}
		var kind models.OutcomeKind
		switch {
		case s.policy.Fails(row.Absences):
			kind = models.OutcomeFailed
			stagedFailed = append(stagedFailed, *row)
			failedIDs[row.StudentID] = struct{}{}
		case s.policy.Completes(row.Absences, row.Presences):
			kind = models.OutcomeCompleted
			stagedCompleted = append(stagedCompleted, *row)
			completedIDs[row.StudentID] = struct{}{}
		default:
			continue
		}
		records[cohortIndex[row.StudentID]].Status = kind.Status()
		roster[rosterIndex[row.StudentID]].Status = kind.Status()
	}

	live := make([]models.SheetRow, 0, len(rows))
	for _, row := range rows {
		_, isFailed := failedIDs[row.StudentID]
		_, isCompleted := completedIDs[row.StudentID]
		if !isFailed && !isCompleted {
			live = append(live, row)
		}
	}
	sheet := &models.AttendanceSheet{CohortKey: req.CohortKey, Period: req.Period, Dates: stored.Dates, Rows: live}

	if err := s.roster.SaveCohort(ctx, req.CohortKey, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cohort")
	}
	if err := s.roster.SaveAll(ctx, roster); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}
	if err := s.appendOutcomes(ctx, req.CohortKey, req.Period, stored.Dates, models.OutcomeFailed, stagedFailed); err != nil {
		return nil, err
	}
	if err := s.appendOutcomes(ctx, req.CohortKey, req.Period, stored.Dates, models.OutcomeCompleted, stagedCompleted); err != nil {
		return nil, err
	}
	if err := s.sheets.Save(ctx, sheet); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save sheet")
	}

	result := &dto.SaveSheetResult{Sheet: sheet, Failed: rowIDs(stagedFailed), Completed: rowIDs(stagedCompleted)}
	s.metrics.RecordPromotions(models.OutcomeFailed, len(stagedFailed))
	s.metrics.RecordPromotions(models.OutcomeCompleted, len(stagedCompleted))
	s.logger.Info("attendance sheet saved",
		zap.String("cohort", req.CohortKey),
		zap.String("period", req.Period),
		zap.Ints("failed", result.Failed),
		zap.Ints("completed", result.Completed),
		zap.Int("remaining", len(live)),
	)

	msg := fmt.Sprintf("Attendance for %s %s saved.", req.CohortKey, req.Period)
	if n := len(stagedFailed) + len(stagedCompleted); n > 0 {
		msg += fmt.Sprintf(" %d moved to failed, %d moved to completed.", len(stagedFailed), len(stagedCompleted))
	}
	result.Notice = &response.Notice{Level: response.NoticeSuccess, Message: msg}
	return result, nil
}

func (s *AttendanceService) appendOutcomes(ctx context.Context, cohortKey, period string, dates []string, kind models.OutcomeKind, staged []models.SheetRow) error {
	if len(staged) == 0 {
		return nil
	}
	list, err := s.sheets.FindOutcomes(ctx, cohortKey, period, kind)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to load %s list", kind))
	}
	if len(list.Dates) == 0 {
		list.Dates = dates
	}
	for _, row := range staged {
		if !list.Contains(row.StudentID) {
			list.Rows = append(list.Rows, row)
		}
	}
	if err := s.sheets.SaveOutcomes(ctx, list); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to save %s list", kind))
	}
	return nil
}

// ListSheets returns the stored periods of the cohort.
func (s *AttendanceService) ListSheets(ctx context.Context, cohortKey string) ([]dto.SheetSummary, error) {
	periods, err := s.sheets.ListPeriods(ctx, cohortKey)
	if err != nil {
		return nil, cohortLookupError(err, cohortKey)
	}
	out := make([]dto.SheetSummary, 0, len(periods))
	for _, p := range periods {
		out = append(out, dto.SheetSummary{CohortKey: cohortKey, Period: p})
	}
	return out, nil
}

// GetSheet loads a stored sheet.
func (s *AttendanceService) GetSheet(ctx context.Context, cohortKey, period string) (*models.AttendanceSheet, error) {
	if err := checkPeriod(period); err != nil {
		return nil, err
	}
	sheet, err := s.sheets.Find(ctx, cohortKey, period)
	if err != nil {
		return nil, sheetLookupError(err, cohortKey, period)
	}
	return sheet, nil
}

// DeleteSheet removes a sheet. Its failed and completed lists are kept.
func (s *AttendanceService) DeleteSheet(ctx context.Context, cohortKey, period string) error {
	if err := checkPeriod(period); err != nil {
		return err
	}
	exists, err := s.sheets.Exists(ctx, cohortKey, period)
	if err != nil {
		return cohortLookupError(err, cohortKey)
	}
	if !exists {
		return sheetLookupError(repository.ErrNotFound, cohortKey, period)
	}
	if err := s.sheets.Delete(ctx, cohortKey, period); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete sheet")
	}
	s.logger.Info("attendance sheet deleted", zap.String("cohort", cohortKey), zap.String("period", period))
	return nil
}

// Outcomes returns one month's failed or completed list.
func (s *AttendanceService) Outcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind) (*models.OutcomeList, error) {
	if err := checkOutcome(period, kind); err != nil {
		return nil, err
	}
	list, err := s.sheets.FindOutcomes(ctx, cohortKey, period, kind)
	if err != nil {
		return nil, cohortLookupError(err, cohortKey)
	}
	if list.Rows == nil {
		list.Rows = []models.SheetRow{}
	}
	return list, nil
}

// ReplaceOutcomes rewrites one month's failed or completed list from edited rows.
// An id may appear in only one list of the cohort across all months. Students added to
// the list take its status; students dropped from it become active again.
func (s *AttendanceService) ReplaceOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind, req dto.ReplaceOutcomesRequest) (*models.OutcomeList, error) {
	if err := checkOutcome(period, kind); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "marks must be P, A or N")
	}

	list, err := s.sheets.FindOutcomes(ctx, cohortKey, period, kind)
	if err != nil {
		return nil, cohortLookupError(err, cohortKey)
	}
	dates := list.Dates
	if len(dates) == 0 {
		if sheet, err := s.sheets.Find(ctx, cohortKey, period); err == nil {
			dates = sheet.Dates
		} else {
			dates = markedDates(req.Rows)
		}
	}
	rows, err := buildRows(dates, req.Rows)
	if err != nil {
		return nil, err
	}

	records, err := s.roster.ListByCohort(ctx, cohortKey)
	if err != nil {
		return nil, cohortLookupError(err, cohortKey)
	}
	roster, err := s.roster.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	cohortIndex := indexByID(records)
	rosterIndex := indexByID(roster)

	other := models.OutcomeCompleted
	if kind == models.OutcomeCompleted {
		other = models.OutcomeFailed
	}
	otherIDs, err := s.sheets.OutcomeIDs(ctx, cohortKey, other)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to load %s list", other))
	}
	sameIDs, err := s.sheets.OutcomeIDs(ctx, cohortKey, kind)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to load %s list", kind))
	}

	kept := make(map[int]struct{}, len(rows))
	for i := range rows {
		id := rows[i].StudentID
		if _, ok := cohortIndex[id]; !ok {
			return nil, appErrors.Clone(appErrors.ErrRecordNotFound, fmt.Sprintf("student %d not found in cohort %s", id, cohortKey))
		}
		if _, ok := rosterIndex[id]; !ok {
			return nil, appErrors.Clone(appErrors.ErrRecordNotFound, fmt.Sprintf("student %d not found in master roster", id))
		}
		if _, clash := otherIDs[id]; clash {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %d is already in the %s list", id, other))
		}
		if _, clash := sameIDs[id]; clash && !list.Contains(id) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("student %d is already in the %s list of another month", id, kind))
		}
		if rows[i].StudentName == "" {
			rows[i].StudentName = records[cohortIndex[id]].StudentName
		}
		rows[i].Absences, rows[i].Presences = rows[i].Tally(dates)
		kept[id] = struct{}{}
	}

	setStatus := func(id int, status models.EnrollmentStatus) {
		if i, ok := cohortIndex[id]; ok {
			records[i].Status = status
		}
		if i, ok := rosterIndex[id]; ok {
			roster[i].Status = status
		}
	}
	var restored []int
	for _, row := range list.Rows {
		if _, ok := kept[row.StudentID]; !ok {
			setStatus(row.StudentID, models.EnrollmentStatusActive)
			restored = append(restored, row.StudentID)
		}
	}
	for id := range kept {
		setStatus(id, kind.Status())
	}

	updated := &models.OutcomeList{CohortKey: cohortKey, Period: period, Kind: kind, Dates: dates, Rows: rows}
	if err := s.roster.SaveCohort(ctx, cohortKey, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cohort")
	}
	if err := s.roster.SaveAll(ctx, roster); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}
	if err := s.sheets.SaveOutcomes(ctx, updated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, fmt.Sprintf("failed to save %s list", kind))
	}
	s.logger.Info("outcome list replaced",
		zap.String("cohort", cohortKey),
		zap.String("period", period),
		zap.String("kind", string(kind)),
		zap.Int("rows", len(rows)),
		zap.Ints("restored", restored),
	)
	return updated, nil
}

// buildRows converts edited grid rows onto the given date columns.
func buildRows(dates []string, inputs []dto.SheetRowInput) ([]models.SheetRow, error) {
	known := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		known[d] = struct{}{}
	}
	seen := make(map[int]struct{}, len(inputs))
	rows := make([]models.SheetRow, 0, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.StudentID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student %d appears twice", in.StudentID))
		}
		seen[in.StudentID] = struct{}{}
		for d := range in.Marks {
			if _, ok := known[d]; !ok {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown class date %q", d))
			}
		}
		marks := make(map[string]models.Mark, len(dates))
		for _, d := range dates {
			marks[d] = models.NormalizeMark(in.Marks[d])
		}
		rows = append(rows, models.SheetRow{
			StudentID:   in.StudentID,
			StudentName: in.StudentName,
			Absences:    in.Absences,
			Presences:   in.Presences,
			Marks:       marks,
		})
	}
	return rows, nil
}

// markedDates collects the date keys of the rows. Labels of a single month sort by day.
func markedDates(inputs []dto.SheetRowInput) []string {
	set := make(map[string]struct{})
	for _, in := range inputs {
		for d := range in.Marks {
			set[d] = struct{}{}
		}
	}
	dates := make([]string, 0, len(set))
	for d := range set {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

func indexByID(enrollments []models.Enrollment) map[int]int {
	idx := make(map[int]int, len(enrollments))
	for i, e := range enrollments {
		idx[e.ID] = i
	}
	return idx
}

func rowIDs(rows []models.SheetRow) []int {
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.StudentID)
	}
	return ids
}

func checkPeriod(period string) error {
	if _, _, err := models.ParsePeriod(period); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return nil
}

func checkOutcome(period string, kind models.OutcomeKind) error {
	if err := checkPeriod(period); err != nil {
		return err
	}
	if !kind.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown list %q, expected failed or completed", kind))
	}
	return nil
}

func sheetLookupError(err error, cohortKey, period string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no attendance sheet for cohort %s in %s", cohortKey, period))
	}
	return cohortLookupError(err, cohortKey)
}
