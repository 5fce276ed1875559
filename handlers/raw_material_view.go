package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

// rawMaterialResponse is the JSON shape of the production-paper takeoff
// endpoint: the paper header attributes plus the assembled table.
type rawMaterialResponse struct {
	PaperNumber     string                     `json:"paper_number"`
	ProductCategory string                     `json:"product_category"`
	Area            string                     `json:"area"`
	Grade           string                     `json:"grade"`
	SideFrame       string                     `json:"side_frame"`
	Filler          string                     `json:"filler"`
	LaminateCode    string                     `json:"laminate_code"`
	Items           []services.RawMaterialRow  `json:"items"`
	Totals          services.RawMaterialTotals `json:"totals"`
}

// HandleRawMaterialView returns a handler that computes the production-paper
// takeoff for a paper on the fly. Nothing is persisted; the table is derived
// from the paper's measurement selection on every request.
func HandleRawMaterialView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		paperID := e.Request.PathValue("id")
		if paperID == "" {
			return e.String(http.StatusBadRequest, "Missing paper ID")
		}

		paper, err := loadPaper(app, paperID)
		if err != nil {
			log.Printf("raw_material_view: %v", err)
			return e.String(http.StatusNotFound, "Paper not found")
		}
		if paper.GetString("measurement") == "" {
			return e.String(http.StatusBadRequest, "Paper has no linked measurement")
		}

		items := resolvePaperItems(app, paper)
		if len(items) == 0 {
			return e.String(http.StatusBadRequest, "No measurement items selected for this paper")
		}
		groups := services.GroupItems(items, services.VariantProductionPaper)

		ctx := paperContext(paper)
		table := services.BuildRawMaterialTable(groups, ctx)

		return e.JSON(http.StatusOK, rawMaterialResponse{
			PaperNumber:     ctx.PaperNumber,
			ProductCategory: ctx.ProductCategory,
			Area:            ctx.Area,
			Grade:           ctx.Grade,
			SideFrame:       ctx.SideFrame,
			Filler:          ctx.Filler,
			LaminateCode:    ctx.LaminateCode(),
			Items:           table.Rows,
			Totals:          table.Totals,
		})
	}
}
