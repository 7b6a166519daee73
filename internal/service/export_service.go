package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/cohort-attendance/internal/dto"
	"github.com/noah-isme/cohort-attendance/internal/models"
	appErrors "github.com/noah-isme/cohort-attendance/pkg/errors"
	"github.com/noah-isme/cohort-attendance/pkg/export"
)

type sheetReader interface {
	Find(ctx context.Context, cohortKey, period string) (*models.AttendanceSheet, error)
	FindOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind) (*models.OutcomeList, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheetName string) ([]byte, error)
}

var exportFixedHeaders = []string{"ID", "Student", "Absences", "Presences"}

// ExportService renders sheets and outcome lists as downloads.
type ExportService struct {
	sheets sheetReader
	csv    csvRenderer
	pdf    pdfRenderer
	xlsx   xlsxRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back to the pkg/export defaults.
func NewExportService(sheets sheetReader, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, xlsx xlsxRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	return &ExportService{sheets: sheets, csv: csv, pdf: pdf, xlsx: xlsx, logger: logger}
}

// ExportSheet renders a stored attendance sheet.
func (s *ExportService) ExportSheet(ctx context.Context, cohortKey, period string, format models.ExportFormat) (*dto.ExportFile, error) {
	if err := checkExport(period, format); err != nil {
		return nil, err
	}
	sheet, err := s.sheets.Find(ctx, cohortKey, period)
	if err != nil {
		return nil, sheetLookupError(err, cohortKey, period)
	}
	title := fmt.Sprintf("Attendance %s %s", cohortKey, period)
	base := fmt.Sprintf("%s_attendance_%s", cohortKey, period)
	return s.render(buildExportDataset(sheet.Dates, sheet.Rows), format, title, base)
}

// ExportOutcomes renders one month's failed or completed list.
func (s *ExportService) ExportOutcomes(ctx context.Context, cohortKey, period string, kind models.OutcomeKind, format models.ExportFormat) (*dto.ExportFile, error) {
	if err := checkOutcome(period, kind); err != nil {
		return nil, err
	}
	if err := checkExport(period, format); err != nil {
		return nil, err
	}
	list, err := s.sheets.FindOutcomes(ctx, cohortKey, period, kind)
	if err != nil {
		return nil, cohortLookupError(err, cohortKey)
	}
	title := fmt.Sprintf("%s students %s %s", titleCase(string(kind)), cohortKey, period)
	base := fmt.Sprintf("%s_attendance_%s_%s", cohortKey, period, kind)
	return s.render(buildExportDataset(list.Dates, list.Rows), format, title, base)
}

func (s *ExportService) render(data export.Dataset, format models.ExportFormat, title, base string) (*dto.ExportFile, error) {
	var (
		payload []byte
		err     error
	)
	switch format {
	case models.ExportFormatCSV:
		payload, err = s.csv.Render(data)
	case models.ExportFormatPDF:
		payload, err = s.pdf.Render(data, title)
	case models.ExportFormatXLSX:
		payload, err = s.xlsx.Render(data, "Attendance")
	}
	if err != nil {
		s.logger.Error("export render failed", zap.String("file", base), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &dto.ExportFile{
		Filename:    sanitizeFilename(base) + "." + string(format),
		ContentType: format.ContentType(),
		Data:        payload,
	}, nil
}

func buildExportDataset(dates []string, rows []models.SheetRow) export.Dataset {
	headers := make([]string, 0, len(exportFixedHeaders)+len(dates))
	headers = append(headers, exportFixedHeaders...)
	headers = append(headers, dates...)
	data := export.Dataset{Headers: headers, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		record := map[string]string{
			"ID":        strconv.Itoa(row.StudentID),
			"Student":   row.StudentName,
			"Absences":  strconv.Itoa(row.Absences),
			"Presences": strconv.Itoa(row.Presences),
		}
		for _, d := range dates {
			mark := row.Marks[d]
			if mark == "" {
				mark = models.MarkUnmarked
			}
			record[d] = string(mark)
		}
		data.Rows = append(data.Rows, record)
	}
	return data
}

func checkExport(period string, format models.ExportFormat) error {
	if err := checkPeriod(period); err != nil {
		return err
	}
	if !format.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q, expected csv, pdf or xlsx", format))
	}
	return nil
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "export"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 120 {
		return result[:120]
	}
	return result
}
