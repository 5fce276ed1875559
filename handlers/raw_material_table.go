package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

// HandleShutterTableView returns a handler that reads the stored shutter
// table for a paper. Rows written before numbering moved server-side can
// carry sr_no 0; the handler repairs those to a dense 1..N sequence before
// responding, so one read fixes the stored data for good.
func HandleShutterTableView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		paperID := e.Request.PathValue("id")
		if paperID == "" {
			return e.String(http.StatusBadRequest, "Missing paper ID")
		}

		paper, err := loadPaper(app, paperID)
		if err != nil {
			log.Printf("shutter_table: %v", err)
			return e.String(http.StatusNotFound, "Paper not found")
		}

		records, err := app.FindRecordsByFilter(
			"raw_material_shutter_items",
			"paper = {:paper}",
			"sr_no,created",
			0,
			0,
			map[string]any{"paper": paperID},
		)
		if err != nil {
			log.Printf("shutter_table: could not load rows for paper %s: %v", paperID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		// Nothing stored yet: extract on the fly without persisting, so
		// the table is viewable before the first explicit generation.
		if len(records) == 0 {
			items := resolvePaperItems(app, paper)
			groups := services.GroupItems(items, services.VariantShutter)
			return e.JSON(http.StatusOK, services.BuildShutterTable(groups, paper.GetString("thickness")))
		}

		needsRepair := false
		for _, r := range records {
			if r.GetInt("sr_no") <= 0 {
				needsRepair = true
				break
			}
		}
		if needsRepair {
			for i, r := range records {
				if r.GetInt("sr_no") == i+1 {
					continue
				}
				r.Set("sr_no", i+1)
				if err := app.Save(r); err != nil {
					log.Printf("shutter_table: sr_no repair failed for row %s: %v", r.Id, err)
				}
			}
		}

		rows := make([]services.ShutterRow, 0, len(records))
		for i, r := range records {
			srNo := r.GetInt("sr_no")
			if needsRepair {
				srNo = i + 1
			}
			rows = append(rows, services.ShutterRow{
				ID:        r.Id,
				SrNo:      srNo,
				RoWidth:   r.GetString("ro_width"),
				RoHeight:  r.GetString("ro_height"),
				BldgWings: r.GetString("bldg_wings"),
				Quantity:  r.GetFloat("quantity"),
				SqFt:      r.GetFloat("sq_ft"),
				Thickness: r.GetString("thickness"),
			})
		}

		return e.JSON(http.StatusOK, services.ShutterTable{
			Rows:   rows,
			Totals: services.ComputeShutterTotals(rows),
		})
	}
}

// HandleShutterTableDelete returns a handler that removes all stored
// shutter rows of a paper.
func HandleShutterTableDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		paperID := e.Request.PathValue("id")
		if paperID == "" {
			return e.String(http.StatusBadRequest, "Missing paper ID")
		}

		if _, err := loadPaper(app, paperID); err != nil {
			log.Printf("shutter_table_delete: %v", err)
			return e.String(http.StatusNotFound, "Paper not found")
		}

		err := app.RunInTransaction(func(txApp core.App) error {
			records, err := txApp.FindRecordsByFilter(
				"raw_material_shutter_items",
				"paper = {:paper}",
				"",
				0,
				0,
				map[string]any{"paper": paperID},
			)
			if err != nil {
				return err
			}
			for _, r := range records {
				if err := txApp.Delete(r); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("shutter_table_delete: failed for paper %s: %v", paperID, err)
			return e.String(http.StatusInternalServerError, "Failed to delete shutter items")
		}

		return e.NoContent(http.StatusNoContent)
	}
}
