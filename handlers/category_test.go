package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doorworks/testhelpers"
)

func TestHandleCategoryCreate_AssignsCode(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCategory(t, app, "CAT003", "Laminates")

	body := `{"name": "Adhesives", "unit": "kg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/raw-material-categories", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := HandleCategoryCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["category_code"] != "CAT004" {
		t.Errorf("category_code = %v, want CAT004", resp["category_code"])
	}
	if resp["unit"] != "kg" {
		t.Errorf("unit = %v, want kg", resp["unit"])
	}
}

func TestHandleCategoryCreate_RequiresName(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/raw-material-categories", strings.NewReader(`{"unit": "sheet"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	if err := HandleCategoryCreate(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleCategoryList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestCategory(t, app, "CAT002", "Hardware")
	testhelpers.CreateTestCategory(t, app, "CAT001", "Plywood")

	req := httptest.NewRequest(http.MethodGet, "/api/raw-material-categories", nil)
	rec := httptest.NewRecorder()

	if err := HandleCategoryList(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(resp))
	}
	if resp[0]["category_code"] != "CAT001" {
		t.Errorf("list not ordered by code: %v", resp)
	}
}

func TestHandleCategoryDelete_Unreferenced(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	category := testhelpers.CreateTestCategory(t, app, "CAT001", "Plywood")

	req := httptest.NewRequest(http.MethodDelete, "/api/raw-material-categories/"+category.Id, nil)
	req.SetPathValue("id", category.Id)
	rec := httptest.NewRecorder()

	if err := HandleCategoryDelete(app)(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	if _, err := app.FindRecordById("raw_material_categories", category.Id); err == nil {
		t.Error("category still exists after delete")
	}
}
