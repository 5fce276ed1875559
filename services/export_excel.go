package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates an Excel workbook from a production paper's takeoff
// and returns the file contents as a byte slice.
func GenerateExcel(data PaperExport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet name: paper number if present, capped at Excel's 31-char limit.
	sheetName := data.Paper.PaperNumber
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Raw Material"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through H).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	lastCol := columns[len(columns)-1]

	widths := []float64{8, 16, 16, 14, 8, 12, 12, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "#FFFFFF",
			Size:  11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#333333"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	dataStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Size: 10,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create data style: %w", err)
	}

	totalsStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F0F0F0"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create totals style: %w", err)
	}

	// ── Header Rows ─────────────────────────────────────────────────────

	// Row 1: title merged across all columns.
	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	// Rows 2+: paper attributes, label in A, value in B.
	attrRow := 2
	for _, field := range data.headerFields() {
		rowStr := fmt.Sprintf("%d", attrRow)
		f.SetCellValue(sheetName, "A"+rowStr, field[0])
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(field[1]))
		f.SetCellStyle(sheetName, "A"+rowStr, "B"+rowStr, subtitleStyle)
		attrRow++
	}

	// ── Column Headers ──────────────────────────────────────────────────

	headerRow := attrRow + 1
	headerRowStr := fmt.Sprintf("%d", headerRow)
	headers := []string{
		"Item No", "RO Width (Inch)", "RO Height (Inch)", "Thickness (mm)",
		"Qty", "SQ.FT", "SQ.Meter", "Laminate Sheets",
	}
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+headerRowStr, h)
	}
	f.SetCellStyle(sheetName, "A"+headerRowStr, lastCol+headerRowStr, headerStyle)

	// ── Data Rows ───────────────────────────────────────────────────────

	row := headerRow + 1
	for _, r := range data.Table.Rows {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, r.SrNo)
		f.SetCellValue(sheetName, "B"+rowStr, r.RoWidth)
		f.SetCellValue(sheetName, "C"+rowStr, r.RoHeight)
		f.SetCellValue(sheetName, "D"+rowStr, sanitizeExcelCell(r.Thickness))
		f.SetCellValue(sheetName, "E"+rowStr, r.Quantity)
		f.SetCellValue(sheetName, "F"+rowStr, r.SqFt)
		f.SetCellValue(sheetName, "G"+rowStr, r.SqMeter)
		f.SetCellValue(sheetName, "H"+rowStr, r.LaminateSheets)

		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, dataStyle)

		row++
	}

	// ── Totals Row ──────────────────────────────────────────────────────

	totalsRowStr := fmt.Sprintf("%d", row)
	totals := data.Table.Totals
	f.SetCellValue(sheetName, "A"+totalsRowStr, "TOTAL")
	// Qty and area totals print the way the paper does ("12 NOS", "37.78 SQ.FT").
	f.SetCellValue(sheetName, "E"+totalsRowStr, FormatNos(float64(totals.Quantity)))
	f.SetCellValue(sheetName, "F"+totalsRowStr, FormatSqFt(totals.SqFt))
	f.SetCellValue(sheetName, "G"+totalsRowStr, totals.SqMeter)
	f.SetCellValue(sheetName, "H"+totalsRowStr, totals.LaminateSheets)
	f.SetCellStyle(sheetName, "A"+totalsRowStr, lastCol+totalsRowStr, totalsStyle)

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
