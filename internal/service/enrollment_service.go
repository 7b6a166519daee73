package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	"github.com/noah-isme/cohort-attendance/internal/repository"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

const requestDateLayout = "2006-01-02"

type rosterRepository interface {
	ListAll(ctx context.Context) ([]models.Enrollment, error)
	SaveAll(ctx context.Context, enrollments []models.Enrollment) error
	ListByCohort(ctx context.Context, key string) ([]models.Enrollment, error)
	SaveCohort(ctx context.Context, key string, enrollments []models.Enrollment) error
	NextID(ctx context.Context) (int, error)
	FindCohort(ctx context.Context, key string) (*models.Cohort, error)
	SaveCohortInfo(ctx context.Context, cohort models.Cohort) error
}

// EnrollmentPolicy holds the cohort allocation rules.
type EnrollmentPolicy struct {
	Capacity      int
	ProgramLength time.Duration
	DefaultCity   string
}

// DefaultEnrollmentPolicy returns 20 seats per cohort and an 8 week programme.
func DefaultEnrollmentPolicy() EnrollmentPolicy {
	return EnrollmentPolicy{Capacity: 20, ProgramLength: 8 * 7 * 24 * time.Hour, DefaultCity: "Guarujá/SP"}
}

func (p EnrollmentPolicy) normalized() EnrollmentPolicy {
	def := DefaultEnrollmentPolicy()
	if p.Capacity <= 0 {
		p.Capacity = def.Capacity
	}
	if p.ProgramLength <= 0 {
		p.ProgramLength = def.ProgramLength
	}
	return p
}

// EnrollmentService allocates new registrations to cohorts.
type EnrollmentService struct {
	repo      rosterRepository
	policy    EnrollmentPolicy
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(repo rosterRepository, policy EnrollmentPolicy, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = NewValidator()
	} else {
		registerValidations(validate)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, policy: policy.normalized(), validator: validate, metrics: metrics, logger: logger, now: time.Now}
}

// Register enrolls a student into the cohort derived from course, day pattern and time slot.
// The cohort is created on first use. Past capacity the student is waitlisted without dates.
func (s *EnrollmentService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, registrationError(err)
	}
	start, err := time.Parse(requestDateLayout, req.StartDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start date")
	}
	began := s.now()
	defer func() { s.metrics.ObserveOperation("register", time.Since(began)) }()

	pattern := models.DayPattern(req.DayPattern)
	key := models.CohortKey(req.Course, pattern, req.TimeSlot)

	cohortRecords, err := s.repo.ListByCohort(ctx, key)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to assign enrollment id")
	}

	enrollment := models.Enrollment{
		ID:             id,
		GuardianName:   titleCase(req.GuardianName),
		ContactNumber:  req.ContactNumber,
		IdentityNumber: req.IdentityNumber,
		City:           s.policy.DefaultCity,
		Address:        titleCase(req.Address),
		StudentName:    titleCase(req.StudentName),
		Course:         req.Course,
		DayPattern:     pattern,
		TimeSlot:       req.TimeSlot,
		CohortKey:      key,
	}
	if models.CountActive(cohortRecords) >= s.policy.Capacity {
		enrollment.Status = models.EnrollmentStatusWaitlisted
	} else {
		end := start.Add(s.policy.ProgramLength)
		enrollment.Status = models.EnrollmentStatusActive
		enrollment.StartDate = &start
		enrollment.EndDate = &end
	}

	if _, err := s.repo.FindCohort(ctx, key); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cohort")
		}
		cohort := models.Cohort{Key: key, Course: req.Course, DayPattern: pattern, TimeSlot: req.TimeSlot, CreatedAt: s.now().UTC()}
		if err := s.repo.SaveCohortInfo(ctx, cohort); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cohort")
		}
		s.logger.Info("cohort created", zap.String("cohort", key))
	}

	roster, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if err := s.repo.SaveAll(ctx, append(roster, enrollment)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save roster")
	}
	if err := s.repo.SaveCohort(ctx, key, append(cohortRecords, enrollment)); err != nil {
		s.logger.Error("roster saved but cohort write failed", zap.String("cohort", key), zap.Int("enrollment_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save cohort")
	}

	s.metrics.RecordRegistration(req.Course, enrollment.Status)
	s.logger.Info("student registered",
		zap.Int("enrollment_id", id),
		zap.String("cohort", key),
		zap.String("status", string(enrollment.Status)),
	)

	result := &dto.RegisterResult{Enrollment: enrollment}
	if enrollment.Status == models.EnrollmentStatusWaitlisted {
		result.Notice = &response.Notice{
			Level:   response.NoticeWarning,
			Message: fmt.Sprintf("Student %s waitlisted for cohort %s (limit of %d students reached).", enrollment.StudentName, key, s.policy.Capacity),
		}
	} else {
		result.Notice = &response.Notice{
			Level:   response.NoticeSuccess,
			Message: fmt.Sprintf("Student %s enrolled in cohort %s.", enrollment.StudentName, key),
		}
	}
	return result, nil
}

// List returns roster enrollments, optionally restricted to one cohort and status.
func (s *EnrollmentService) List(ctx context.Context, cohortKey string, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	if status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	roster, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	out := make([]models.Enrollment, 0, len(roster))
	for _, e := range roster {
		if cohortKey != "" && e.CohortKey != cohortKey {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func titleCase(raw string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(raw))
}

var registrationFieldMessages = map[string]string{
	"GuardianName":   "guardian name must contain only letters",
	"ContactNumber":  "contact number must have 11 digits",
	"IdentityNumber": "identity number must have 11 digits",
	"StudentName":    "student name must contain only letters",
	"Course":         "unknown course",
	"DayPattern":     "unsupported class day pattern",
	"TimeSlot":       "unknown time slot",
	"StartDate":      "start date must be YYYY-MM-DD",
}

// registrationError reports an unsupported day pattern as INVALID_PATTERN and
// every other form failure as a validation error.
func registrationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}
	for _, fe := range verrs {
		if fe.Tag() == "day_pattern" {
			return appErrors.Wrap(err, appErrors.ErrInvalidPattern.Code, appErrors.ErrInvalidPattern.Status,
				fmt.Sprintf("unsupported class day pattern %q", fmt.Sprint(fe.Value())))
		}
	}
	msg, ok := registrationFieldMessages[verrs[0].Field()]
	if !ok {
		msg = "invalid registration payload"
	}
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, msg)
}
