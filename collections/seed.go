package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type categoryDef struct {
	code        string
	name        string
	description string
	unit        string
}

// Default raw-material categories every installation starts with. Factory
// staff add site-specific ones through the API.
var defaultCategories = []categoryDef{
	{code: "CAT001", name: "Plywood", description: "Core plywood sheets for shutters and frames", unit: "Sheet"},
	{code: "CAT002", name: "Laminate", description: "Decorative laminate sheets, both faces", unit: "Sheet"},
	{code: "CAT003", name: "Side Frame", description: "Hardwood side frame sections", unit: "Rft"},
	{code: "CAT004", name: "Filler", description: "Core filler material", unit: "Kg"},
	{code: "CAT005", name: "Adhesive", description: "Pressing and edge adhesives", unit: "Kg"},
	{code: "CAT006", name: "Edge Band", description: "Edge banding tape", unit: "Rft"},
	{code: "CAT007", name: "Hardware", description: "Hinges, locks, fittings", unit: "Nos"},
}

// Seed inserts the default raw-material categories. It is safe to call on
// every startup because it returns early if any category records exist.
func Seed(app *pocketbase.PocketBase) error {
	categoriesCol, err := app.FindCollectionByNameOrId("raw_material_categories")
	if err != nil {
		return fmt.Errorf("seed: could not find raw_material_categories collection: %w", err)
	}
	existing, err := app.FindAllRecords(categoriesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query raw_material_categories: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: raw_material_categories is empty, inserting defaults...")

	for _, d := range defaultCategories {
		r := core.NewRecord(categoriesCol)
		r.Set("category_code", d.code)
		r.Set("name", d.name)
		r.Set("description", d.description)
		r.Set("unit", d.unit)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save category %q: %w", d.name, err)
		}
	}

	log.Printf("seed: inserted %d default categories\n", len(defaultCategories))
	return nil
}
