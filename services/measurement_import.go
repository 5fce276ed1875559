package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportError represents a single field-level error on one uploaded row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportResult is returned after parsing and validating an uploaded
// survey sheet.
type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	ValidRows int               `json:"valid_rows"`
	ErrorRows int               `json:"error_rows"`
	Errors    []ImportError     `json:"errors"`
	Items     []MeasurementItem `json:"-"`
	FileName  string            `json:"-"`
}

// parseCSVRows reads a CSV file and returns headers + data rows.
func parseCSVRows(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	// Site survey sheets often have ragged rows.
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseExcelRows reads an xlsx file and returns headers + data rows from the
// first sheet.
func parseExcelRows(file multipart.File) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// normalizeHeader turns an uploaded column header into the key stored on the
// measurement item. "RO Width" and "ro_width" land on the same key.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, ".", "")
	return h
}

// ParseMeasurementFile parses an uploaded survey sheet (.csv or .xlsx) into
// measurement items and validates that each row carries usable dimensions.
// Column headers are kept as item keys after normalization, so sheets from
// different survey teams keep their own field names.
func ParseMeasurementFile(file multipart.File, fileName string) (*ImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSVRows(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcelRows(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = normalizeHeader(h)
	}

	result := &ImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
		Items:     make([]MeasurementItem, 0, len(dataRows)),
	}

	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row
		item := MeasurementItem{}
		for colIdx, key := range keys {
			if key == "" || colIdx >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[colIdx])
			if value == "" {
				continue
			}
			item[key] = value
		}

		result.Errors = append(result.Errors, validateImportRow(rowNum, item)...)
		result.Items = append(result.Items, item)
	}

	errorRowSet := make(map[int]bool)
	for _, e := range result.Errors {
		errorRowSet[e.Row] = true
	}
	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// validateImportRow checks that a survey row carries width, height and (when
// present) a numeric quantity. The checks mirror what the grouping stage will
// accept, so a clean import never silently loses rows later.
func validateImportRow(rowNum int, item MeasurementItem) []ImportError {
	var errs []ImportError

	errs = append(errs, validateImportDimension(rowNum, item, "RO Width", shutterWidthAliases)...)
	errs = append(errs, validateImportDimension(rowNum, item, "RO Height", shutterHeightAlias)...)

	if raw := firstAlias(item, quantityAliases); !isBlank(raw) {
		if ExtractNumeric(asFieldString(raw)) <= 0 {
			errs = append(errs, ImportError{
				Row:     rowNum,
				Field:   "Qty",
				Message: fmt.Sprintf("Qty %q is not a positive number", asFieldString(raw)),
			})
		}
	}

	return errs
}

func validateImportDimension(rowNum int, item MeasurementItem, label string, aliases []string) []ImportError {
	raw := firstAlias(item, aliases)
	if isBlank(raw) {
		return []ImportError{{
			Row:     rowNum,
			Field:   label,
			Message: fmt.Sprintf("%s is required", label),
		}}
	}

	n := ExtractNumeric(asFieldString(raw))
	if n <= 0 || n > dimensionCeiling {
		return []ImportError{{
			Row:     rowNum,
			Field:   label,
			Message: fmt.Sprintf("%s %q is not a usable dimension", label, asFieldString(raw)),
		}}
	}
	return nil
}

// GenerateImportErrorReport creates a downloadable .xlsx file from import
// validation errors.
func GenerateImportErrorReport(errors []ImportError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, sanitizeExcelCell(e.Field))
		f.SetCellValue(sheet, "C"+row, sanitizeExcelCell(e.Message))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
