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

type cohortService interface {
	List(ctx context.Context) ([]models.CohortSummary, error)
	Get(ctx context.Context, key string) (*dto.CohortDetail, error)
	Replace(ctx context.Context, key string, req dto.ReplaceCohortRequest) (*dto.CohortDetail, error)
	Delete(ctx context.Context, key string) error
	AdmitWaitlisted(ctx context.Context, key string, req dto.AdmitWaitlistedRequest) (*dto.AdmissionResult, error)
}

// CohortHandler exposes cohort record management.
type CohortHandler struct {
	service cohortService
}

// NewCohortHandler builds a new handler.
func NewCohortHandler(service cohortService) *CohortHandler {
	return &CohortHandler{service: service}
}

// List godoc
// @Summary List cohorts with seat counts
// @Tags Cohorts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cohorts [get]
func (h *CohortHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get a cohort and its records
// @Tags Cohorts
// @Produce json
// @Param key path string true "Cohort key"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key} [get]
func (h *CohortHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Replace godoc
// @Summary Save the edited records of a cohort
// @Tags Cohorts
// @Accept json
// @Produce json
// @Param key path string true "Cohort key"
// @Param payload body dto.ReplaceCohortRequest true "Edited records"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key} [put]
func (h *CohortHandler) Replace(c *gin.Context) {
	var req dto.ReplaceCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cohort payload"))
		return
	}
	key := c.Param("key")
	item, err := h.service.Replace(c.Request.Context(), key, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, item, &response.Notice{Level: response.NoticeSuccess, Message: "Cohort " + key + " saved."})
}

// Delete godoc
// @Summary Delete a cohort and its roster rows
// @Tags Cohorts
// @Param key path string true "Cohort key"
// @Success 204
// @Router /cohorts/{key} [delete]
func (h *CohortHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Admit godoc
// @Summary Admit waitlisted students into free seats
// @Tags Cohorts
// @Accept json
// @Produce json
// @Param key path string true "Cohort key"
// @Param payload body dto.AdmitWaitlistedRequest true "Start date"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key}/admissions [post]
func (h *CohortHandler) Admit(c *gin.Context) {
	var req dto.AdmitWaitlistedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid admission payload"))
		return
	}
	result, err := h.service.AdmitWaitlisted(c.Request.Context(), c.Param("key"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, result, result.Notice)
}
