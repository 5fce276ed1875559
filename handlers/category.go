package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

type categoryPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

func categoryJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":            r.Id,
		"category_code": r.GetString("category_code"),
		"name":          r.GetString("name"),
		"description":   r.GetString("description"),
		"unit":          r.GetString("unit"),
	}
}

// HandleCategoryList returns a handler that lists all raw material
// categories ordered by their code.
func HandleCategoryList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("raw_material_categories", "id != ''", "category_code", 0, 0, nil)
		if err != nil {
			log.Printf("category_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, categoryJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleCategoryCreate returns a handler that creates a category with the
// next CAT### code.
func HandleCategoryCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload categoryPayload
		if err := e.BindBody(&payload); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			return e.String(http.StatusBadRequest, "Category name is required")
		}

		code, err := services.NextCategoryCode(app)
		if err != nil {
			log.Printf("category_create: could not generate code: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		col, err := app.FindCollectionByNameOrId("raw_material_categories")
		if err != nil {
			log.Printf("category_create: could not find categories collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("category_code", code)
		record.Set("name", payload.Name)
		record.Set("description", payload.Description)
		record.Set("unit", payload.Unit)

		if err := app.Save(record); err != nil {
			log.Printf("category_create: could not save category: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusCreated, categoryJSON(record))
	}
}

// HandleCategoryDelete returns a handler that removes a category.
func HandleCategoryDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		categoryID := e.Request.PathValue("id")
		if categoryID == "" {
			return e.String(http.StatusBadRequest, "Missing category ID")
		}

		record, err := app.FindRecordById("raw_material_categories", categoryID)
		if err != nil {
			return e.String(http.StatusNotFound, "Category not found")
		}

		// A category referenced by orders must stay; orders keep their
		// category history.
		referencing, err := app.FindRecordsByFilter(
			"raw_material_orders",
			"category = {:category}",
			"",
			1,
			0,
			map[string]any{"category": categoryID},
		)
		if err == nil && len(referencing) > 0 {
			return e.String(http.StatusConflict, "Category is referenced by existing orders")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("category_delete: could not delete %s: %v", categoryID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.NoContent(http.StatusNoContent)
	}
}
