package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doorworks/services"
	"doorworks/testhelpers"
)

func extractRequest(paperID, body string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPost, "/api/papers/"+paperID+"/raw-material-table", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/papers/"+paperID+"/raw-material-table", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetPathValue("id", paperID)
	return req, httptest.NewRecorder()
}

func TestHandleShutterExtract_StoresRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	measurement := testhelpers.CreateTestMeasurement(t, app, "M-001", []map[string]any{
		{"ro_width": "900", "ro_height": "2100", "bldg": "A", "qty": "2"},
		{"ro_width": "24", "ro_height": "48", "bldg": "B", "qty": "1"},
	})
	paper := testhelpers.CreateTestPaper(t, app, "RMC001", measurement.Id, "[0, 1]", map[string]string{"thickness": "30"})

	req, rec := extractRequest(paper.Id, "")
	if err := HandleShutterExtract(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var table services.ShutterTable
	if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].SrNo != 1 || table.Rows[1].SrNo != 2 {
		t.Errorf("rows not densely numbered: %+v", table.Rows)
	}
	if table.Totals.TotalQty != 3 {
		t.Errorf("total qty = %v, want 3", table.Totals.TotalQty)
	}

	stored, err := app.FindRecordsByFilter("raw_material_shutter_items", "paper = {:p}", "sr_no", 0, 0, map[string]any{"p": paper.Id})
	if err != nil {
		t.Fatalf("could not load stored rows: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(stored))
	}
	if stored[0].GetString("thickness") != "30" {
		t.Errorf("stored thickness = %q, want paper value 30", stored[0].GetString("thickness"))
	}
}

func TestHandleShutterExtract_ConflictWithoutOverwrite(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	measurement := testhelpers.CreateTestMeasurement(t, app, "M-001", []map[string]any{
		{"ro_width": "24", "ro_height": "48"},
	})
	paper := testhelpers.CreateTestPaper(t, app, "RMC001", measurement.Id, "[0]", nil)
	testhelpers.CreateTestShutterItem(t, app, paper.Id, 1, `24.00"`, `48.00"`, 1, 8)

	req, rec := extractRequest(paper.Id, "")
	if err := HandleShutterExtract(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestHandleShutterExtract_OverwriteIsIdempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	measurement := testhelpers.CreateTestMeasurement(t, app, "M-001", []map[string]any{
		{"ro_width": "900", "ro_height": "2100", "qty": "2"},
		{"ro_width": "24", "ro_height": "48"},
	})
	paper := testhelpers.CreateTestPaper(t, app, "RMC001", measurement.Id, "[0, 1]", nil)

	for i := 0; i < 2; i++ {
		req, rec := extractRequest(paper.Id, `{"overwrite_existing": true}`)
		if err := HandleShutterExtract(app)(newTestRequestEvent(app, req, rec)); err != nil {
			t.Fatalf("run %d: handler error = %v", i, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("run %d: status = %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	stored, err := app.FindRecordsByFilter("raw_material_shutter_items", "paper = {:p}", "sr_no", 0, 0, map[string]any{"p": paper.Id})
	if err != nil {
		t.Fatalf("could not load stored rows: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("expected 2 stored rows after re-extraction, got %d", len(stored))
	}
}

func TestHandleShutterExtract_EmptyResolutionKeepsStoredRows(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	measurement := testhelpers.CreateTestMeasurement(t, app, "M-001", []map[string]any{
		{"ro_width": "24", "ro_height": "48"},
	})
	paper := testhelpers.CreateTestPaper(t, app, "RMC001", measurement.Id, "[0]", nil)

	req, rec := extractRequest(paper.Id, "")
	if err := HandleShutterExtract(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("first extract: status = %d: %s", rec.Code, rec.Body.String())
	}

	// A later descriptor corruption must not let a re-extract wipe the table.
	paper.Set("selected_measurement_items", "{not json")
	if err := app.Save(paper); err != nil {
		t.Fatalf("could not corrupt selection: %v", err)
	}

	req, rec = extractRequest(paper.Id, `{"overwrite_existing": true}`)
	if err := HandleShutterExtract(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	stored, err := app.FindRecordsByFilter("raw_material_shutter_items", "paper = {:p}", "sr_no", 0, 0, map[string]any{"p": paper.Id})
	if err != nil {
		t.Fatalf("could not load stored rows: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("expected the stored row to survive, got %d rows", len(stored))
	}
}

func TestHandleShutterExtract_MissingPaper(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req, rec := extractRequest("nope", "")
	if err := HandleShutterExtract(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
