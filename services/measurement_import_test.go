package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// memFile adapts an in-memory byte slice to multipart.File.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newMemFile(b []byte) memFile {
	return memFile{bytes.NewReader(b)}
}

func TestParseMeasurementFile_CSV(t *testing.T) {
	csv := strings.Join([]string{
		"RO Width,RO Height,Bldg,Qty",
		"34,80,A-101,2",
		"900,2100,B-202,1",
	}, "\n")

	result, err := ParseMeasurementFile(newMemFile([]byte(csv)), "survey.csv")
	if err != nil {
		t.Fatalf("ParseMeasurementFile() error: %v", err)
	}

	if result.TotalRows != 2 || result.ValidRows != 2 || result.ErrorRows != 0 {
		t.Fatalf("summary = %d/%d/%d, want 2/2/0", result.TotalRows, result.ValidRows, result.ErrorRows)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0]["ro_width"] != "34" {
		t.Errorf(`items[0]["ro_width"] = %v, want "34"`, result.Items[0]["ro_width"])
	}
	if result.Items[0]["bldg"] != "A-101" {
		t.Errorf(`items[0]["bldg"] = %v, want "A-101"`, result.Items[0]["bldg"])
	}

	// Imported items must flow straight into grouping.
	groups := GroupItems(result.Items, VariantShutter)
	if len(groups) != 2 {
		t.Errorf("expected 2 groups from imported items, got %d", len(groups))
	}
}

func TestParseMeasurementFile_ValidationErrors(t *testing.T) {
	csv := strings.Join([]string{
		"RO Width,RO Height,Qty",
		",80,1",       // missing width
		"34,80,zero",  // bad qty
		"15000,80,1",  // width above ceiling
		"34,80,2",     // fine
	}, "\n")

	result, err := ParseMeasurementFile(newMemFile([]byte(csv)), "survey.csv")
	if err != nil {
		t.Fatalf("ParseMeasurementFile() error: %v", err)
	}

	if result.ErrorRows != 3 {
		t.Errorf("error rows = %d, want 3: %+v", result.ErrorRows, result.Errors)
	}
	if result.ValidRows != 1 {
		t.Errorf("valid rows = %d, want 1", result.ValidRows)
	}

	// Row numbers are sheet rows (header is row 1).
	for _, e := range result.Errors {
		if e.Row < 2 || e.Row > 4 {
			t.Errorf("unexpected error row %d: %+v", e.Row, e)
		}
	}
}

func TestParseMeasurementFile_Excel(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "RO Width")
	f.SetCellValue(sheet, "B1", "RO Height")
	f.SetCellValue(sheet, "A2", "24")
	f.SetCellValue(sheet, "B2", "48")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("could not build test workbook: %v", err)
	}

	result, err := ParseMeasurementFile(newMemFile(buf.Bytes()), "survey.xlsx")
	if err != nil {
		t.Fatalf("ParseMeasurementFile() error: %v", err)
	}
	if result.ValidRows != 1 {
		t.Fatalf("valid rows = %d, want 1", result.ValidRows)
	}
	if result.Items[0]["ro_height"] != "48" {
		t.Errorf(`items[0]["ro_height"] = %v, want "48"`, result.Items[0]["ro_height"])
	}
}

func TestParseMeasurementFile_UnsupportedFormat(t *testing.T) {
	if _, err := ParseMeasurementFile(newMemFile([]byte("x")), "survey.pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseMeasurementFile_HeaderOnly(t *testing.T) {
	if _, err := ParseMeasurementFile(newMemFile([]byte("RO Width,RO Height")), "survey.csv"); err == nil {
		t.Error("expected error for file without data rows")
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RO Width", "ro_width"},
		{"  Qty  ", "qty"},
		{"Flat No.", "flat_no"},
		{"bldg_wing", "bldg_wing"},
	}
	for _, tt := range tests {
		if got := normalizeHeader(tt.in); got != tt.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateImportErrorReport(t *testing.T) {
	report, err := GenerateImportErrorReport([]ImportError{
		{Row: 2, Field: "RO Width", Message: "RO Width is required"},
	})
	if err != nil {
		t.Fatalf("GenerateImportErrorReport() error: %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(report))
	if err != nil {
		t.Fatalf("report is not a readable workbook: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue("Errors", "C2")
	if got != "RO Width is required" {
		t.Errorf("C2 = %q, want the error message", got)
	}
}
