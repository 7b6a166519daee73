package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

type enrollmentService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResult, error)
	List(ctx context.Context, cohortKey string, status models.EnrollmentStatus) ([]models.Enrollment, error)
}

// EnrollmentHandler exposes registration endpoints.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler builds a new handler.
func NewEnrollmentHandler(service enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Register godoc
// @Summary Register a student into a cohort
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body dto.RegisterRequest true "Registration form"
// @Success 201 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}
	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusCreated, result.Enrollment, result.Notice)
}

// List godoc
// @Summary List roster enrollments
// @Tags Enrollments
// @Produce json
// @Param cohort query string false "Cohort key"
// @Param status query string false "active, waitlisted, failed or completed"
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("cohort"), models.EnrollmentStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}
