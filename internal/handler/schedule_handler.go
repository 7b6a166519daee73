package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

type scheduleService interface {
	ClassDates(ctx context.Context, query dto.ClassDatesQuery) (*dto.ClassDates, error)
}

// ScheduleHandler exposes class date lookups.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler builds a new handler.
func NewScheduleHandler(service scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// ClassDates godoc
// @Summary List the class dates of a day pattern in a month
// @Tags Schedule
// @Produce json
// @Param pattern query string true "Monday and Wednesday or Tuesday and Thursday"
// @Param month query int true "Month (1-12)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} response.Envelope
// @Router /schedule/dates [get]
func (h *ScheduleHandler) ClassDates(c *gin.Context) {
	var query dto.ClassDatesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "month and year must be numbers"))
		return
	}
	out, err := h.service.ClassDates(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, out, nil)
}
