package services

import "sort"

// PaperContext carries the production paper attributes inherited by every
// row of its raw-material table.
type PaperContext struct {
	PaperNumber       string
	ProductCategory   string
	Area              string
	Thickness         string
	Grade             string
	SideFrame         string
	Filler            string
	Laminate          string
	FrontsideLaminate string
}

// LaminateCode resolves the laminate attribute: front-side laminate wins
// over the general laminate field.
func (c PaperContext) LaminateCode() string {
	return fallback(c.FrontsideLaminate, c.Laminate)
}

// RawMaterialRow is one finalized row of the production-paper takeoff view.
// SrNo is always assigned by the assembler; any sr_no carried by the input
// is discarded.
type RawMaterialRow struct {
	SrNo           int     `json:"sr_no"`
	Thickness      string  `json:"thickness"`
	Grade          string  `json:"grade"`
	SideFrame      string  `json:"side_frame"`
	Filler         string  `json:"filler"`
	ProductionCode string  `json:"production_code"`
	LaminateCode   string  `json:"laminate_code"`
	RoWidth        float64 `json:"ro_width"`
	RoHeight       float64 `json:"ro_height"`
	Quantity       int     `json:"quantity"`
	SqFt           float64 `json:"sq_ft"`
	SqMeter        float64 `json:"sq_meter"`
	LaminateSqFt   float64 `json:"laminate_sq_ft"`
	LaminateSheets int     `json:"laminate_sheets"`
}

// RawMaterialTotals are recomputed from the rows on every build; they are
// never read back from storage.
type RawMaterialTotals struct {
	Quantity       int     `json:"quantity"`
	SqFt           float64 `json:"sq_ft"`
	SqMeter        float64 `json:"sq_meter"`
	LaminateSqFt   float64 `json:"total_laminate_sq_ft"`
	LaminateSheets int     `json:"total_laminate_sheets"`
}

// RawMaterialTable is the production-paper takeoff view consumed by the
// JSON endpoint and the PDF/Excel renderers.
type RawMaterialTable struct {
	Rows   []RawMaterialRow  `json:"items"`
	Totals RawMaterialTotals `json:"totals"`
}

// BuildRawMaterialTable assembles the production-paper view from dimension
// groups: sorts by (width, height) ascending with insertion order breaking
// ties, numbers rows densely from 1, applies the item→paper→"-" attribute
// fallback chain, and totals every numeric column.
//
// Row areas round to 3 decimals (sq ft), 4 decimals (sq m). The shutter
// view rounds differently; see BuildShutterTable.
func BuildRawMaterialTable(groups []*DimensionGroup, paper PaperContext) RawMaterialTable {
	sorted := sortGroups(groups)

	table := RawMaterialTable{Rows: make([]RawMaterialRow, 0, len(sorted))}
	var totalSqFt, totalSqMeter, totalLaminateSqFt float64

	for i, g := range sorted {
		m := ComputeRowMetrics(g.Width, g.Height, g.Quantity)

		table.Rows = append(table.Rows, RawMaterialRow{
			SrNo:           i + 1,
			Thickness:      fallback(asFieldString(g.Item["thickness"]), paper.Thickness),
			Grade:          fallback(paper.Grade),
			SideFrame:      fallback(paper.SideFrame),
			Filler:         fallback(paper.Filler),
			ProductionCode: paper.PaperNumber,
			LaminateCode:   paper.LaminateCode(),
			RoWidth:        g.Width,
			RoHeight:       g.Height,
			Quantity:       int(g.Quantity),
			SqFt:           round3(m.SqFt),
			SqMeter:        round4(m.SqMeter),
			LaminateSqFt:   round3(m.LaminateSqFt),
			LaminateSheets: m.LaminateSheets,
		})

		table.Totals.Quantity += int(g.Quantity)
		totalSqFt += m.SqFt
		totalSqMeter += m.SqMeter
		totalLaminateSqFt += m.LaminateSqFt
		table.Totals.LaminateSheets += m.LaminateSheets
	}

	table.Totals.SqFt = round3(totalSqFt)
	table.Totals.SqMeter = round4(totalSqMeter)
	table.Totals.LaminateSqFt = round3(totalLaminateSqFt)

	return table
}

// ShutterRow is one finalized row of the shutter-item takeoff view, the
// shape persisted to raw_material_shutter_items.
type ShutterRow struct {
	ID        string  `json:"id,omitempty"`
	SrNo      int     `json:"sr_no"`
	RoWidth   string  `json:"ro_width"`
	RoHeight  string  `json:"ro_height"`
	BldgWings string  `json:"bldg_wings"`
	Quantity  float64 `json:"quantity"`
	SqFt      float64 `json:"sq_ft"`
	Thickness string  `json:"thickness"`
}

// ShutterTotals sum the shutter rows' quantity and area.
type ShutterTotals struct {
	TotalQty  float64 `json:"total_qty"`
	TotalSqFt float64 `json:"total_sq_ft"`
}

// ShutterTable is the shutter-item takeoff view.
type ShutterTable struct {
	Rows   []ShutterRow  `json:"items"`
	Totals ShutterTotals `json:"totals"`
}

// BuildShutterTable assembles the shutter-item view: same ordering and
// dense numbering as the production-paper view, plus the building/wing
// column, with per-row sq ft at 2 decimals and no metric conversion.
func BuildShutterTable(groups []*DimensionGroup, thickness string) ShutterTable {
	sorted := sortGroups(groups)

	table := ShutterTable{Rows: make([]ShutterRow, 0, len(sorted))}
	var totalSqFt float64

	for i, g := range sorted {
		sqFt := round2(ComputeRowMetrics(g.Width, g.Height, g.Quantity).SqFt)

		table.Rows = append(table.Rows, ShutterRow{
			SrNo:      i + 1,
			RoWidth:   g.WidthDisplay,
			RoHeight:  g.HeightDisplay,
			BldgWings: g.Building,
			Quantity:  g.Quantity,
			SqFt:      sqFt,
			Thickness: fallback(asFieldString(g.Item["thickness"]), thickness),
		})

		table.Totals.TotalQty += g.Quantity
		totalSqFt += sqFt
	}

	table.Totals.TotalSqFt = round2(totalSqFt)

	return table
}

// ComputeShutterTotals re-derives totals from an already-materialized row
// set (e.g. rows read back from storage).
func ComputeShutterTotals(rows []ShutterRow) ShutterTotals {
	var totals ShutterTotals
	var sqFt float64
	for _, r := range rows {
		totals.TotalQty += r.Quantity
		sqFt += r.SqFt
	}
	totals.TotalSqFt = round2(sqFt)
	return totals
}

// sortGroups orders by (width, height) ascending. The sort is stable so
// groups with equal dimensions keep first-seen order.
func sortGroups(groups []*DimensionGroup) []*DimensionGroup {
	sorted := make([]*DimensionGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Width != sorted[j].Width {
			return sorted[i].Width < sorted[j].Width
		}
		return sorted[i].Height < sorted[j].Height
	})
	return sorted
}

// fallback returns the first non-blank candidate, or "-" when all are
// blank. "-" is the sentinel printed on the paper for missing attributes.
func fallback(candidates ...string) string {
	for _, c := range candidates {
		if c != "" && c != "-" {
			return c
		}
	}
	return "-"
}
