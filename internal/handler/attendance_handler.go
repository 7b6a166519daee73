package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/response"
)

type attendanceService interface {
	GenerateSheet(ctx context.Context, req dto.GenerateSheetRequest) (*models.AttendanceSheet, error)
	SaveSheet(ctx context.Context, req dto.SaveSheetRequest) (*dto.SaveSheetResult, error)
	ListSheets(ctx context.Context, cohortKey string) ([]dto.SheetSummary, error)
	GetSheet(ctx context.Context, cohortKey, period string) (*models.AttendanceSheet, error)
	DeleteSheet(ctx context.Context, cohortKey, period string) error
	Outcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind) (*models.OutcomeList, error)
	ReplaceOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind, req dto.ReplaceOutcomesRequest) (*models.OutcomeList, error)
}

type exportService interface {
	ExportSheet(ctx context.Context, cohortKey, period string, format models.ExportFormat) (*dto.ExportFile, error)
	ExportOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind, format models.ExportFormat) (*dto.ExportFile, error)
}

// AttendanceHandler exposes attendance sheets and their outcome lists.
type AttendanceHandler struct {
	service attendanceService
	exports exportService
}

// NewAttendanceHandler builds a new handler.
func NewAttendanceHandler(service attendanceService, exports exportService) *AttendanceHandler {
	return &AttendanceHandler{service: service, exports: exports}
}

// Generate godoc
// @Summary Generate a cohort's attendance sheet for a month
// @Tags Attendance
// @Accept json
// @Produce json
// @Param key path string true "Cohort key"
// @Param payload body dto.GenerateSheetRequest true "Month, year and overwrite flag"
// @Success 201 {object} response.Envelope
// @Router /cohorts/{key}/sheets [post]
func (h *AttendanceHandler) Generate(c *gin.Context) {
	var req dto.GenerateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sheet payload"))
		return
	}
	req.CohortKey = c.Param("key")
	sheet, err := h.service.GenerateSheet(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sheet)
}

// List godoc
// @Summary List the stored sheets of a cohort
// @Tags Attendance
// @Produce json
// @Param key path string true "Cohort key"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key}/sheets [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	items, err := h.service.ListSheets(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Get godoc
// @Summary Get an attendance sheet
// @Tags Attendance
// @Produce json
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key}/sheets/{period} [get]
func (h *AttendanceHandler) Get(c *gin.Context) {
	sheet, err := h.service.GetSheet(c.Request.Context(), c.Param("key"), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// Save godoc
// @Summary Save edited marks, recalculate counts and promote students
// @Tags Attendance
// @Accept json
// @Produce json
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Param payload body dto.SaveSheetRequest true "Edited rows"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key}/sheets/{period} [put]
func (h *AttendanceHandler) Save(c *gin.Context) {
	var req dto.SaveSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid sheet payload"))
		return
	}
	req.CohortKey = c.Param("key")
	req.Period = c.Param("period")
	result, err := h.service.SaveSheet(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.WithNotice(c, http.StatusOK, result, result.Notice)
}

// Delete godoc
// @Summary Delete an attendance sheet
// @Tags Attendance
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Success 204
// @Router /cohorts/{key}/sheets/{period} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSheet(c.Request.Context(), c.Param("key"), c.Param("period")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Outcomes godoc
// @Summary Get a month's failed or completed list
// @Tags Attendance
// @Produce json
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Param kind path string true "failed or completed"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key}/sheets/{period}/outcomes/{kind} [get]
func (h *AttendanceHandler) Outcomes(c *gin.Context) {
	list, err := h.service.Outcomes(c.Request.Context(), c.Param("key"), c.Param("period"), models.OutcomeKind(c.Param("kind")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// ReplaceOutcomes godoc
// @Summary Save an edited failed or completed list
// @Tags Attendance
// @Accept json
// @Produce json
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Param kind path string true "failed or completed"
// @Param payload body dto.ReplaceOutcomesRequest true "Edited rows"
// @Success 200 {object} response.Envelope
// @Router /cohorts/{key}/sheets/{period}/outcomes/{kind} [put]
func (h *AttendanceHandler) ReplaceOutcomes(c *gin.Context) {
	var req dto.ReplaceOutcomesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}
	list, err := h.service.ReplaceOutcomes(c.Request.Context(), c.Param("key"), c.Param("period"), models.OutcomeKind(c.Param("kind")), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list, nil)
}

// Export godoc
// @Summary Download an attendance sheet
// @Tags Attendance
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Param format query string false "csv (default), pdf or xlsx"
// @Success 200 {file} file
// @Router /cohorts/{key}/sheets/{period}/export [get]
func (h *AttendanceHandler) Export(c *gin.Context) {
	file, err := h.exports.ExportSheet(c.Request.Context(), c.Param("key"), c.Param("period"), exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

// ExportOutcomes godoc
// @Summary Download a month's failed or completed list
// @Tags Attendance
// @Produce text/csv,application/pdf,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param key path string true "Cohort key"
// @Param period path string true "Period (YYYY-MM)"
// @Param kind path string true "failed or completed"
// @Param format query string false "csv (default), pdf or xlsx"
// @Success 200 {file} file
// @Router /cohorts/{key}/sheets/{period}/outcomes/{kind}/export [get]
func (h *AttendanceHandler) ExportOutcomes(c *gin.Context) {
	kind := models.OutcomeKind(c.Param("kind"))
	file, err := h.exports.ExportOutcomes(c.Request.Context(), c.Param("key"), c.Param("period"), kind, exportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

func exportFormat(c *gin.Context) models.ExportFormat {
	return models.ExportFormat(c.DefaultQuery("format", string(models.ExportFormatCSV)))
}

func sendFile(c *gin.Context, file *dto.ExportFile) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
