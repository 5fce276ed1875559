package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doorworks/testhelpers"
)

func TestHandleRawMaterialPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	measurement := testhelpers.CreateTestMeasurement(t, app, "M-001", []map[string]any{
		{"ro_width": "34", "ro_height": "80", "qty": "2"},
	})
	paper := testhelpers.CreateTestPaper(t, app, "RMC001", measurement.Id, "[0]", map[string]string{"grade": "BWP"})

	req := httptest.NewRequest(http.MethodGet, "/api/papers/"+paper.Id+"/raw-material-paper/pdf", nil)
	req.SetPathValue("id", paper.Id)
	rec := httptest.NewRecorder()

	if err := HandleRawMaterialPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "RawMaterial_RMC001.pdf") {
		t.Errorf("Content-Disposition = %q, want filename RawMaterial_RMC001.pdf", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Errorf("body does not start with %%PDF header")
	}
}

func TestHandleRawMaterialExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	measurement := testhelpers.CreateTestMeasurement(t, app, "M-001", []map[string]any{
		{"ro_width": "34", "ro_height": "80"},
	})
	paper := testhelpers.CreateTestPaper(t, app, "RMC001", measurement.Id, "[0]", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/papers/"+paper.Id+"/raw-material-paper/excel", nil)
	req.SetPathValue("id", paper.Id)
	rec := httptest.NewRecorder()

	if err := HandleRawMaterialExcel(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Errorf("body does not start with a zip header")
	}
}

func TestHandleRawMaterialPDF_MissingPaper(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/papers/nope/raw-material-paper/pdf", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()

	if err := HandleRawMaterialPDF(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
