package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

type supplierPayload struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	GSTNumber     string `json:"gst_number"`
}

func supplierJSON(r *core.Record) map[string]any {
	return map[string]any{
		"id":             r.Id,
		"supplier_code":  r.GetString("supplier_code"),
		"name":           r.GetString("name"),
		"contact_person": r.GetString("contact_person"),
		"phone":          r.GetString("phone"),
		"email":          r.GetString("email"),
		"address":        r.GetString("address"),
		"gst_number":     r.GetString("gst_number"),
	}
}

// HandleSupplierList returns a handler that lists all suppliers ordered by
// their code.
func HandleSupplierList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("suppliers", "id != ''", "supplier_code", 0, 0, nil)
		if err != nil {
			log.Printf("supplier_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, supplierJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleSupplierCreate returns a handler that creates a supplier with the
// next SUP### code.
func HandleSupplierCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload supplierPayload
		if err := e.BindBody(&payload); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		payload.Name = strings.TrimSpace(payload.Name)
		if payload.Name == "" {
			return e.String(http.StatusBadRequest, "Supplier name is required")
		}

		fieldErrors := services.ValidateSupplierFields(map[string]string{
			"phone":      payload.Phone,
			"email":      payload.Email,
			"gst_number": payload.GSTNumber,
		})
		if len(fieldErrors) > 0 {
			return e.JSON(http.StatusBadRequest, map[string]any{"errors": fieldErrors})
		}

		code, err := services.NextSupplierCode(app)
		if err != nil {
			log.Printf("supplier_create: could not generate code: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		col, err := app.FindCollectionByNameOrId("suppliers")
		if err != nil {
			log.Printf("supplier_create: could not find suppliers collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("supplier_code", code)
		record.Set("name", payload.Name)
		record.Set("contact_person", payload.ContactPerson)
		record.Set("phone", payload.Phone)
		record.Set("email", payload.Email)
		record.Set("address", payload.Address)
		record.Set("gst_number", payload.GSTNumber)

		if err := app.Save(record); err != nil {
			log.Printf("supplier_create: could not save supplier: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusCreated, supplierJSON(record))
	}
}

// HandleSupplierDelete returns a handler that removes a supplier.
func HandleSupplierDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		supplierID := e.Request.PathValue("id")
		if supplierID == "" {
			return e.String(http.StatusBadRequest, "Missing supplier ID")
		}

		record, err := app.FindRecordById("suppliers", supplierID)
		if err != nil {
			return e.String(http.StatusNotFound, "Supplier not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("supplier_delete: could not delete %s: %v", supplierID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.NoContent(http.StatusNoContent)
	}
}
