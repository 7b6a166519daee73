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

type cohortRepository interface {
	rosterRepository
	ListCohorts(ctx context.Context) ([]models.Cohort, error)
	DeleteCohort(ctx context.Context, key string) error
}

// CohortService manages cohort files as a whole: listing, editing, deletion and waitlist admission.
type CohortService struct {
	repo      cohortRepository
	policy    EnrollmentPolicy
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCohortService constructs CohortService.
func NewCohortService(repo cohortRepository, policy EnrollmentPolicy, validate *validator.Validate, logger *zap.Logger) *CohortService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerValidations(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CohortService{repo: repo, policy: policy.normalized(), validator: validate, logger: logger}
}

// List returns every known cohort with its seat counts.
func (s *CohortService) List(ctx context.Context) ([]models.CohortSummary, error) {
	cohorts, err := s.repo.ListCohorts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cohorts")
	}
	summaries := make([]models.CohortSummary, 0, len(cohorts))
	for _, c := range cohorts {
		records, err := s.repo.ListByCohort(ctx, c.Key)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
		}
		summary := models.CohortSummary{Cohort: c}
		for _, e := range records {
			switch e.Status {
			case models.EnrollmentStatusActive:
				summary.Active++
			case models.EnrollmentStatusWaitlisted:
				summary.Waitlisted++
			case models.EnrollmentStatusFailed:
				summary.Failed++
			case models.EnrollmentStatusCompleted:
				summary.Completed++
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Get returns the cohort and the records of its file.
func (s *CohortService) Get(ctx context.Context, key string) (*dto.CohortDetail, error) {
	cohort, records, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	return &dto.CohortDetail{Cohort: *cohort, Enrollments: records}, nil
}

// Replace rewrites the cohort file with edited records and mirrors them into the master roster.
func (s *CohortService) Replace(ctx context.Context, key string, req dto.ReplaceCohortRequest) (*dto.CohortDetail, error) {
	cohort, _, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cohort records")
	}

	seen := make(map[int]struct{}, len(req.Enrollments))
	records := make([]models.Enrollment, 0, len(req.Enrollments))
	for _, e := range req.Enrollments {
		if e.ID <= 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, "every record needs a positive id")
		}
		if _, dup := seen[e.ID]; dup {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate id %d", e.ID))
		}
		if !e.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("record %d has unknown status %q", e.ID, e.Status))
		}
		seen[e.ID] = struct{}{}
		e.CohortKey = key
		records = append(records, e)
	}

	roster, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	kept := make([]models.Enrollment, 0, len(roster)+len(records))
	for _, e := range roster {
		if e.CohortKey == key {
			continue
		}
		if _, clash := seen[e.ID]; clash {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("id %d belongs to cohort %s", e.ID, e.CohortKey))
		}
		kept = append(kept, e)
	}

	if err := s.repo.SaveCohort(ctx, key, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cohort")
	}
	if err := s.repo.SaveAll(ctx, append(kept, records...)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}
	s.logger.Info("cohort replaced", zap.String("cohort", key), zap.Int("records", len(records)))
	return &dto.CohortDetail{Cohort: *cohort, Enrollments: records}, nil
}

// Delete removes the cohort file, its index entry and its master roster rows.
// Attendance sheets are left in place.
func (s *CohortService) Delete(ctx context.Context, key string) error {
	if _, _, err := s.load(ctx, key); err != nil {
		return err
	}
	roster, err := s.repo.ListAll(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	kept := make([]models.Enrollment, 0, len(roster))
	for _, e := range roster {
		if e.CohortKey != key {
			kept = append(kept, e)
		}
	}
	if err := s.repo.DeleteCohort(ctx, key); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete cohort")
	}
	if err := s.repo.SaveAll(ctx, kept); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}
	s.logger.Info("cohort deleted", zap.String("cohort", key), zap.Int("removed", len(roster)-len(kept)))
	return nil
}

// AdmitWaitlisted activates waitlisted students in id order while seats are free.
func (s *CohortService) AdmitWaitlisted(ctx context.Context, key string, req dto.AdmitWaitlistedRequest) (*dto.AdmissionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "start date must be YYYY-MM-DD")
	}
	start, err := time.Parse(requestDateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "start date must be YYYY-MM-DD")
	}
	_, records, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}

	free := s.policy.Capacity - models.CountActive(records)
	waiting := make([]int, 0)
	for i, e := range records {
		if e.Status == models.EnrollmentStatusWaitlisted {
			waiting = append(waiting, i)
		}
	}
	sort.SliceStable(waiting, func(a, b int) bool { return records[waiting[a]].ID < records[waiting[b]].ID })

	result := &dto.AdmissionResult{Admitted: []models.Enrollment{}}
	if len(waiting) == 0 || free <= 0 {
		msg := fmt.Sprintf("No seats available in cohort %s.", key)
		if len(waiting) == 0 {
			msg = fmt.Sprintf("Cohort %s has no waitlisted students.", key)
		}
		result.Notice = &response.Notice{Level: response.NoticeWarning, Message: msg}
		return result, nil
	}

	end := start.Add(s.policy.ProgramLength)
	admitted := make(map[int]models.Enrollment)
	for _, idx := range waiting {
		if len(admitted) == free {
			break
		}
		e := &records[idx]
		startCopy, endCopy := start, end
		e.Status = models.EnrollmentStatusActive
		e.StartDate = &startCopy
		e.EndDate = &endCopy
		admitted[e.ID] = *e
		result.Admitted = append(result.Admitted, *e)
	}

	roster, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	for i := range roster {
		if updated, ok := admitted[roster[i].ID]; ok && roster[i].CohortKey == key {
			roster[i] = updated
		}
	}
	if err := s.repo.SaveCohort(ctx, key, records); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cohort")
	}
	if err := s.repo.SaveAll(ctx, roster); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}

	s.logger.Info("waitlist admitted", zap.String("cohort", key), zap.Int("admitted", len(result.Admitted)))
	result.Notice = &response.Notice{
		Level:   response.NoticeSuccess,
		Message: fmt.Sprintf("%d student(s) admitted to cohort %s.", len(result.Admitted), key),
	}
	return result, nil
}

func (s *CohortService) load(ctx context.Context, key string) (*models.Cohort, []models.Enrollment, error) {
	records, err := s.repo.ListByCohort(ctx, key)
	if err != nil {
		return nil, nil, cohortLookupError(err, key)
	}
	cohort, err := s.repo.FindCohort(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, nil, cohortLookupError(err, key)
		}
		cohort = &models.Cohort{Key: key}
	}
	return cohort, records, nil
}

// cohortLookupError maps repository failures on a cohort to typed errors.
func cohortLookupError(err error, key string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrCohortNotFound, fmt.Sprintf("cohort %s not found", key))
	case errors.Is(err, repository.ErrInvalidKey):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}
}
