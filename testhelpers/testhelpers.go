// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestMeasurement creates a measurement record with the given raw
// item rows and returns it.
func CreateTestMeasurement(t *testing.T, app *pocketbase.PocketBase, code string, items []map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("measurements")
	if err != nil {
		t.Fatalf("failed to find measurements collection: %v", err)
	}

	raw, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("failed to marshal measurement items: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("measurement_code", code)
	record.Set("client_name", "Test Client")
	record.Set("items", string(raw))

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test measurement: %v", err)
	}

	return record
}

// CreateTestPaper creates a production paper linked to a measurement.
// The attrs map sets additional paper fields (thickness, grade, laminate
// and so on) verbatim.
func CreateTestPaper(t *testing.T, app *pocketbase.PocketBase, paperNumber, measurementID, selection string, attrs map[string]string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("production_papers")
	if err != nil {
		t.Fatalf("failed to find production_papers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("paper_number", paperNumber)
	if measurementID != "" {
		record.Set("measurement", measurementID)
	}
	record.Set("selected_measurement_items", selection)
	for k, v := range attrs {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test paper: %v", err)
	}

	return record
}

// CreateTestShutterItem creates a stored shutter item row for a paper.
func CreateTestShutterItem(t *testing.T, app *pocketbase.PocketBase, paperID string, srNo int, roWidth, roHeight string, qty, sqFt float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("raw_material_shutter_items")
	if err != nil {
		t.Fatalf("failed to find raw_material_shutter_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("paper", paperID)
	record.Set("sr_no", srNo)
	record.Set("ro_width", roWidth)
	record.Set("ro_height", roHeight)
	record.Set("quantity", qty)
	record.Set("sq_ft", sqFt)
	record.Set("thickness", "32")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test shutter item: %v", err)
	}

	return record
}

// CreateTestSupplier creates a supplier record with the given code and name.
func CreateTestSupplier(t *testing.T, app *pocketbase.PocketBase, code, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("suppliers")
	if err != nil {
		t.Fatalf("failed to find suppliers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("supplier_code", code)
	record.Set("name", name)
	record.Set("address", "Andheri East, Mumbai")
	record.Set("gst_number", "27AADCB2230M1ZV")
	record.Set("contact_person", "Test Contact")
	record.Set("phone", "9876543210")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test supplier: %v", err)
	}

	return record
}

// CreateTestCategory creates a raw material category record.
func CreateTestCategory(t *testing.T, app *pocketbase.PocketBase, code, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("raw_material_categories")
	if err != nil {
		t.Fatalf("failed to find raw_material_categories collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category_code", code)
	record.Set("name", name)
	record.Set("unit", "Sheet")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test category: %v", err)
	}

	return record
}

// CreateTestOrder creates a raw material order linked to a supplier.
func CreateTestOrder(t *testing.T, app *pocketbase.PocketBase, orderNumber, supplierID string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("raw_material_orders")
	if err != nil {
		t.Fatalf("failed to find raw_material_orders collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("order_number", orderNumber)
	record.Set("supplier", supplierID)
	record.Set("status", "pending")
	record.Set("total_amount", 12500.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order: %v", err)
	}

	return record
}
