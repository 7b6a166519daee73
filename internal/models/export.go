package models

// ExportFormat enumerates download formats.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// Valid reports whether the format is supported.
func (f ExportFormat) Valid() bool {
	switch f {
	case ExportFormatCSV, ExportFormatPDF, ExportFormatXLSX:
		return true
	default:
		return false
	}
}

// ContentType returns the MIME type of the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatPDF:
		return "application/pdf"
	case ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}
