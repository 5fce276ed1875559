package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

type shutterExtractPayload struct {
	OverwriteExisting bool `json:"overwrite_existing"`
}

// HandleShutterExtract returns a handler that computes the shutter-item
// takeoff for a paper and persists it. When rows are already stored the
// caller must pass overwrite_existing; the delete and insert then happen
// in one transaction so a failed run never leaves the paper without its
// old table.
func HandleShutterExtract(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		paperID := e.Request.PathValue("id")
		if paperID == "" {
			return e.String(http.StatusBadRequest, "Missing paper ID")
		}

		var payload shutterExtractPayload
		// An empty body means a plain first-time extraction.
		_ = e.BindBody(&payload)

		paper, err := loadPaper(app, paperID)
		if err != nil {
			log.Printf("shutter_extract: %v", err)
			return e.String(http.StatusNotFound, "Paper not found")
		}

		if !payload.OverwriteExisting {
			existing, err := app.FindRecordsByFilter(
				"raw_material_shutter_items",
				"paper = {:paper}",
				"",
				1,
				0,
				map[string]any{"paper": paperID},
			)
			if err == nil && len(existing) > 0 {
				return e.String(http.StatusConflict, "Shutter items already exist for this paper; pass overwrite_existing to replace them")
			}
		}

		items := resolvePaperItems(app, paper)
		// Nothing to extract must never reach the delete-then-insert below:
		// a bad descriptor would silently wipe the stored table.
		if len(items) == 0 {
			return e.String(http.StatusBadRequest, "No measurement items found in production paper")
		}
		groups := services.GroupItems(items, services.VariantShutter)
		table := services.BuildShutterTable(groups, paper.GetString("thickness"))

		itemsCol, err := app.FindCollectionByNameOrId("raw_material_shutter_items")
		if err != nil {
			log.Printf("shutter_extract: could not find shutter items collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		err = app.RunInTransaction(func(txApp core.App) error {
			existing, err := txApp.FindRecordsByFilter(
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
			for _, r := range existing {
				if err := txApp.Delete(r); err != nil {
					return err
				}
			}

			for i := range table.Rows {
				row := &table.Rows[i]
				record := core.NewRecord(itemsCol)
				record.Set("paper", paperID)
				record.Set("sr_no", row.SrNo)
				record.Set("ro_width", row.RoWidth)
				record.Set("ro_height", row.RoHeight)
				record.Set("bldg_wings", row.BldgWings)
				record.Set("quantity", row.Quantity)
				record.Set("sq_ft", row.SqFt)
				record.Set("thickness", row.Thickness)
				if err := txApp.Save(record); err != nil {
					return err
				}
				row.ID = record.Id
			}
			return nil
		})
		if err != nil {
			log.Printf("shutter_extract: transaction failed for paper %s: %v", paperID, err)
			return e.String(http.StatusInternalServerError, "Failed to store shutter items")
		}

		return e.JSON(http.StatusOK, table)
	}
}
