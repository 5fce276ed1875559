package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

// buildPaperExport assembles the export payload for a production paper.
func buildPaperExport(app *pocketbase.PocketBase, paperID string) (services.PaperExport, error) {
	paper, err := loadPaper(app, paperID)
	if err != nil {
		return services.PaperExport{}, err
	}

	items := resolvePaperItems(app, paper)
	groups := services.GroupItems(items, services.VariantProductionPaper)

	ctx := paperContext(paper)
	table := services.BuildRawMaterialTable(groups, ctx)

	generatedDate := time.Now().Format("02 Jan 2006")
	return services.NewPaperExport(ctx, table, generatedDate), nil
}

// HandleRawMaterialPDF returns a handler that generates and downloads the
// raw material paper as a PDF.
func HandleRawMaterialPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		paperID := e.Request.PathValue("id")
		if paperID == "" {
			return e.String(http.StatusBadRequest, "Missing paper ID")
		}

		data, err := buildPaperExport(app, paperID)
		if err != nil {
			log.Printf("raw_material_pdf: %v", err)
			return e.String(http.StatusNotFound, "Paper not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("raw_material_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("RawMaterial_%s.pdf", sanitizeFilename(data.Paper.PaperNumber))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleRawMaterialExcel returns a handler that generates and downloads the
// raw material paper as an Excel workbook.
func HandleRawMaterialExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		paperID := e.Request.PathValue("id")
		if paperID == "" {
			return e.String(http.StatusBadRequest, "Missing paper ID")
		}

		data, err := buildPaperExport(app, paperID)
		if err != nil {
			log.Printf("raw_material_excel: %v", err)
			return e.String(http.StatusNotFound, "Paper not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("raw_material_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("RawMaterial_%s.xlsx", sanitizeFilename(data.Paper.PaperNumber))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}
