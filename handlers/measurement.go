package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

type measurementPayload struct {
	MeasurementCode string           `json:"measurement_code"`
	ClientName      string           `json:"client_name"`
	SiteName        string           `json:"site_name"`
	Items           []map[string]any `json:"items"`
}

func measurementJSON(r *core.Record) map[string]any {
	itemCount := 0
	var items []map[string]any
	if raw := r.GetString("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err == nil {
			itemCount = len(items)
		}
	}
	return map[string]any{
		"id":               r.Id,
		"measurement_code": r.GetString("measurement_code"),
		"client_name":      r.GetString("client_name"),
		"site_name":        r.GetString("site_name"),
		"item_count":       itemCount,
	}
}

// HandleMeasurementList returns a handler that lists measurements, newest
// first.
func HandleMeasurementList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("measurements", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("measurement_list: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		out := make([]map[string]any, 0, len(records))
		for _, r := range records {
			out = append(out, measurementJSON(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// HandleMeasurementCreate returns a handler that records a new site
// measurement, optionally with its survey rows inline.
func HandleMeasurementCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var payload measurementPayload
		if err := e.BindBody(&payload); err != nil {
			return e.String(http.StatusBadRequest, "Invalid request body")
		}

		payload.MeasurementCode = strings.TrimSpace(payload.MeasurementCode)
		if payload.MeasurementCode == "" {
			return e.String(http.StatusBadRequest, "Measurement code is required")
		}

		col, err := app.FindCollectionByNameOrId("measurements")
		if err != nil {
			log.Printf("measurement_create: could not find measurements collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		record := core.NewRecord(col)
		record.Set("measurement_code", payload.MeasurementCode)
		record.Set("client_name", payload.ClientName)
		record.Set("site_name", payload.SiteName)
		if len(payload.Items) > 0 {
			data, err := json.Marshal(payload.Items)
			if err != nil {
				return e.String(http.StatusBadRequest, "Invalid items")
			}
			record.Set("items", string(data))
		}

		if err := app.Save(record); err != nil {
			log.Printf("measurement_create: could not save measurement: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusCreated, measurementJSON(record))
	}
}

// HandleMeasurementImport returns a handler that replaces a measurement's
// survey rows with the contents of an uploaded .csv or .xlsx sheet. Rows
// failing validation block the import; ?error_report=xlsx downloads the
// failures as a spreadsheet instead of JSON.
func HandleMeasurementImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		measurementID := e.Request.PathValue("id")
		if measurementID == "" {
			return e.String(http.StatusBadRequest, "Missing measurement ID")
		}

		record, err := app.FindRecordById("measurements", measurementID)
		if err != nil {
			return e.String(http.StatusNotFound, "Measurement not found")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Missing uploaded file")
		}
		defer file.Close()

		result, err := services.ParseMeasurementFile(file, header.Filename)
		if err != nil {
			return e.String(http.StatusBadRequest, err.Error())
		}

		if result.ErrorRows > 0 {
			if e.Request.URL.Query().Get("error_report") == "xlsx" {
				report, err := services.GenerateImportErrorReport(result.Errors)
				if err != nil {
					log.Printf("measurement_import: error report failed: %v", err)
					return e.String(http.StatusInternalServerError, "Internal error")
				}
				e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
				e.Response.Header().Set("Content-Disposition", `attachment; filename="ImportErrors.xlsx"`)
				e.Response.WriteHeader(http.StatusOK)
				_, err = e.Response.Write(report)
				return err
			}
			return e.JSON(http.StatusUnprocessableEntity, result)
		}

		data, err := json.Marshal(result.Items)
		if err != nil {
			log.Printf("measurement_import: could not marshal items: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}
		record.Set("items", string(data))
		if err := app.Save(record); err != nil {
			log.Printf("measurement_import: could not save measurement %s: %v", measurementID, err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, result)
	}
}
