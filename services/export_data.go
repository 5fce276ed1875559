package services

// PaperExport bundles everything the PDF and Excel renderers need for one
// production paper: the header attributes and the assembled takeoff table.
type PaperExport struct {
	Title         string
	Paper         PaperContext
	Table         RawMaterialTable
	GeneratedDate string
}

// NewPaperExport builds the export payload for a production paper. The
// document title is fixed; it is what the factory floor expects to see.
func NewPaperExport(paper PaperContext, table RawMaterialTable, generatedDate string) PaperExport {
	return PaperExport{
		Title:         "RAW MATERIAL PAPER",
		Paper:         paper,
		Table:         table,
		GeneratedDate: generatedDate,
	}
}

// headerFields returns the label/value pairs printed in the paper header,
// in print order.
func (e PaperExport) headerFields() [][2]string {
	return [][2]string{
		{"Production Code", fallback(e.Paper.PaperNumber)},
		{"General Area", fallback(e.Paper.Area)},
		{"Grade", fallback(e.Paper.Grade)},
		{"Side Frame", fallback(e.Paper.SideFrame)},
		{"Filler", fallback(e.Paper.Filler)},
		{"Laminate Code", e.Paper.LaminateCode()},
	}
}
