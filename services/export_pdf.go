package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders a production paper's raw-material takeoff as a PDF
// using maroto/v2. It returns the raw PDF bytes or an error.
func GeneratePDF(data PaperExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPaperHeader(m, data)
	addTakeoffTableHeader(m)
	for _, r := range data.Table.Rows {
		addTakeoffRow(m, r)
	}
	addTakeoffTotals(m, data.Table.Totals)
	addGeneratedFooter(m, data.GeneratedDate)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPaperHeader adds the document title and the paper attribute block,
// two attributes per row.
func addPaperHeader(m core.Maroto, data PaperExport) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	valueStyle := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}

	fields := data.headerFields()
	for i := 0; i < len(fields); i += 2 {
		cols := []core.Col{
			col.New(2).Add(text.New(fields[i][0], labelStyle)),
			col.New(4).Add(text.New(fields[i][1], valueStyle)),
		}
		if i+1 < len(fields) {
			cols = append(cols,
				col.New(2).Add(text.New(fields[i+1][0], labelStyle)),
				col.New(4).Add(text.New(fields[i+1][1], valueStyle)),
			)
		}
		m.AddRows(row.New(7).Add(cols...))
	}

	// Spacer
	m.AddRows(row.New(4))
}

// addTakeoffTableHeader adds the column header row for the takeoff table.
func addTakeoffTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("Item No", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("RO Width (Inch)", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("RO Height (Inch)", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Thickness (mm)", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("SQ.FT", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("SQ.Meter", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Laminate Sheets", headerText)).WithStyle(&headerCell),
		),
	)
}

// addTakeoffRow adds a single data row to the takeoff table.
func addTakeoffRow(m core.Maroto, r RawMaterialRow) {
	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.SrNo), baseText)),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f\"", r.RoWidth), rightText)),
			col.New(2).Add(text.New(fmt.Sprintf("%.2f\"", r.RoHeight), rightText)),
			col.New(1).Add(text.New(r.Thickness, baseText)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), rightText)),
			col.New(2).Add(text.New(fmt.Sprintf("%.3f", r.SqFt), rightText)),
			col.New(2).Add(text.New(fmt.Sprintf("%.4f", r.SqMeter), rightText)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.LaminateSheets), rightText)),
		),
	)
}

// addTakeoffTotals adds the totals band under the table.
func addTakeoffTotals(m core.Maroto, totals RawMaterialTotals) {
	totalsBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	totalsCell := &props.Cell{BackgroundColor: totalsBg}
	totalsText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	labelText := totalsText
	labelText.Align = align.Center

	// Column spans mirror the header/data grid: the label covers the first
	// four columns (1+2+2+1), then Qty through Laminate Sheets line up.
	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(text.New("TOTAL", labelText)).WithStyle(totalsCell),
			col.New(1).Add(text.New(FormatNos(float64(totals.Quantity)), totalsText)).WithStyle(totalsCell),
			col.New(2).Add(text.New(FormatSqFt(totals.SqFt), totalsText)).WithStyle(totalsCell),
			col.New(2).Add(text.New(fmt.Sprintf("%.4f", totals.SqMeter), totalsText)).WithStyle(totalsCell),
			col.New(1).Add(text.New(fmt.Sprintf("%d SHEETS", totals.LaminateSheets), totalsText)).WithStyle(totalsCell),
		),
	)
}

// addGeneratedFooter adds the generated-date line at the bottom.
func addGeneratedFooter(m core.Maroto, date string) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", date),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
