package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

type orderPayload struct {
	Supplier    string           `json:"supplier"`
	Category    string           `json:"category"`
	Paper       string           `json:"paper"`
	Items       []map[string]any `json:"items"`
	TotalAmount float64          `json:"total_amount"`
	Notes       string           `json:"notes"`
}

type orderStatusPayload struct {
	Status string `json:"status"`
}

var validOrderStatuses = map[string]bool{
	"pending":   true,
	"ordered":   true,
	"received":  true,
	"cancelled": true,
}

func orderJSON(r *core.Record) map[string]any {
	var items []map[string]any
	if raw := r.GetString("items"); raw != "" {
		// Stored by us as a JSON array; a decode failure means a corrupt
		// record and the row is still worth returning without items.
		_ = json.Unmarshal([]byte(raw), &items)
	}

	total := r.GetFloat("total_amount")
	return map[string]any{
		"id":            r.Id,
		"order_number":  r.GetString("order_number"),
		"supplier":      r.GetString("supplier"),
		"category":      r.GetString("category"),
		"paper":         r.GetString("paper"),
		"status":        r.GetString("status"),
		"items":         items,
		"total_amount":  total,
		"display_total": services.FormatINR(total),
		"notes":         r.GetString("notes"),
	}
}

// HandleOrderList returns a handler that lists all raw material orders,
// newest first.
func HandleOrderList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("raw_material_orders", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("order_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, orderJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleOrderCreate returns a handler that creates an order with the next
// ORD### number. The supplier must exist; category and paper links are
// optional but verified when given.
func HandleOrderCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload orderPayload
		if err := e.BindBody(&payload); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		if payload.Supplier == "" {
			return e.String(http.StatusBadRequest, "Supplier is required")
		}
		if _, err := app.FindRecordById("suppliers", payload.Supplier); err != nil {
			return e.String(http.StatusNotFound, "Supplier not found")
		}
		if payload.Category != "" {
			if _, err := app.FindRecordById("raw_material_categories", payload.Category); err != nil {
				return e.String(http.StatusNotFound, "Category not found")
			}
		}
		if payload.Paper != "" {
			if _, err := app.FindRecordById("production_papers", payload.Paper); err != nil {
				return e.String(http.StatusNotFound, "Paper not found")
			}
		}

		orderNumber, err := services.NextOrderCode(app)
		if err != nil {
			log.Printf("order_create: could not generate order number: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		col, err := app.FindCollectionByNameOrId("raw_material_orders")
		if err != nil {
			log.Printf("order_create: could not find orders collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		// Line items are authoritative for the total when present; a
		// client-sent total_amount only stands for item-less orders.
		total := payload.TotalAmount
		if len(payload.Items) > 0 {
			total = 0
			for _, item := range payload.Items {
				qty, _ := item["quantity"].(float64)
				unitPrice, _ := item["unit_price"].(float64)
				total += qty * unitPrice
			}
		}

		record := core.NewRecord(col)
		record.Set("order_number", orderNumber)
		record.Set("supplier", payload.Supplier)
		record.Set("category", payload.Category)
		record.Set("paper", payload.Paper)
		record.Set("status", "pending")
		record.Set("total_amount", total)
		record.Set("notes", payload.Notes)
		if payload.Items != nil {
			raw, err := json.Marshal(payload.Items)
			if err == nil {
				record.Set("items", string(raw))
			}
		}

		if err := app.Save(record); err != nil {
			log.Printf("order_create: could not save order: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusCreated, orderJSON(record))
	}
}

// HandleOrderStatusUpdate returns a handler that moves an order to a new
// status.
func HandleOrderStatusUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		if orderID == "" {
			return e.String(http.StatusBadRequest, "Missing order ID")
		}

		var payload orderStatusPayload
		if err := e.BindBody(&payload); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}
		if !validOrderStatuses[payload.Status] {
			return e.String(http.StatusBadRequest, "Invalid status")
		}

		record, err := app.FindRecordById("raw_material_orders", orderID)
		if err != nil {
			return e.String(http.StatusNotFound, "Order not found")
		}

		record.Set("status", payload.Status)
		if err := app.Save(record); err != nil {
			log.Printf("order_status: could not update %s: %v", orderID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, orderJSON(record))
	}
}

// HandleOrderDelete returns a handler that removes an order.
func HandleOrderDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		orderID := e.Request.PathValue("id")
		if orderID == "" {
			return e.String(http.StatusBadRequest, "Missing order ID")
		}

		record, err := app.FindRecordById("raw_material_orders", orderID)
		if err != nil {
			return e.String(http.StatusNotFound, "Order not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("order_delete: could not delete %s: %v", orderID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.NoContent(http.StatusNoContent)
	}
}
