package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Dataset defines tabular content: ordered headers and rows keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Clone returns a deep copy of the dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{Headers: append([]string(nil), d.Headers...), Rows: make([]map[string]string, len(d.Rows))}
	for i, row := range d.Rows {
		copied := make(map[string]string, len(row))
		for k, v := range row {
			copied[k] = v
		}
		out.Rows[i] = copied
	}
	return out
}

// CSVExporter renders Dataset records into CSV bytes and parses them back.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse decodes CSV bytes whose first record is the header line.
// Short rows are padded with empty values; cells beyond the header are dropped.
func (e *CSVExporter) Parse(raw []byte) (Dataset, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return Dataset{}, fmt.Errorf("csv has no header line")
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("read csv headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	data := Dataset{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("read csv row: %w", err)
		}
		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			} else {
				row[header] = ""
			}
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}
