package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateExcel_Basic(t *testing.T) {
	result, err := GenerateExcel(samplePaperExport())
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "RMC001" {
		t.Errorf("expected sheet name 'RMC001', got %v", sheets)
	}

	title, _ := f.GetCellValue(sheets[0], "A1")
	if title != "RAW MATERIAL PAPER" {
		t.Errorf("expected title 'RAW MATERIAL PAPER', got %q", title)
	}
}

func TestGenerateExcel_TotalsRowPrintsUnits(t *testing.T) {
	data := samplePaperExport()
	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	// Title row, 6 attribute rows, blank, header row, 2 data rows, totals.
	sheet := f.GetSheetName(0)
	qty, _ := f.GetCellValue(sheet, "E12")
	if qty != "3 NOS" {
		t.Errorf("totals qty cell = %q, want \"3 NOS\"", qty)
	}
	sqFt, _ := f.GetCellValue(sheet, "F12")
	if sqFt != "54.03 SQ.FT" {
		t.Errorf("totals sq ft cell = %q, want \"54.03 SQ.FT\"", sqFt)
	}
}

func TestGenerateExcel_EmptyTable(t *testing.T) {
	data := NewPaperExport(PaperContext{PaperNumber: "RMC002"}, RawMaterialTable{}, "15 Jan 2025")

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}
}

func TestGenerateExcel_MissingPaperNumberFallsBack(t *testing.T) {
	data := NewPaperExport(PaperContext{}, RawMaterialTable{}, "15 Jan 2025")

	result, err := GenerateExcel(data)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 || sheets[0] != "Raw Material" {
		t.Errorf("expected fallback sheet name 'Raw Material', got %v", sheets)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain", "Plywood", "Plywood"},
		{"formula", "=SUM(A1)", "'=SUM(A1)"},
		{"plus", "+42", "'+42"},
		{"dash placeholder", "-", "'-"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.expect {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
