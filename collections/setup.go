package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures the measurement, production paper,
// shutter item, supplier, category and order collections exist.
func Setup(app *pocketbase.PocketBase) {
	measurements := ensureCollection(app, "measurements", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "measurement_code", Required: false})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "site_name", Required: false})
		// Raw survey rows; field names inside each row vary by origin.
		c.Fields.Add(&core.JSONField{Name: "items", Required: false, MaxSize: 5 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	papers := ensureCollection(app, "production_papers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "paper_number", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "measurement",
			Required:     false,
			CollectionId: measurements.Id,
			MaxSelect:    1,
		})
		// Selection descriptor, kept as the raw JSON text the UI wrote.
		c.Fields.Add(&core.TextField{Name: "selected_measurement_items", Required: false, Max: 100000})
		c.Fields.Add(&core.TextField{Name: "product_category", Required: false})
		c.Fields.Add(&core.TextField{Name: "area", Required: false})
		c.Fields.Add(&core.TextField{Name: "thickness", Required: false})
		c.Fields.Add(&core.TextField{Name: "grade", Required: false})
		c.Fields.Add(&core.TextField{Name: "side_frame", Required: false})
		c.Fields.Add(&core.TextField{Name: "filler", Required: false})
		c.Fields.Add(&core.TextField{Name: "laminate", Required: false})
		c.Fields.Add(&core.TextField{Name: "frontside_laminate", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "raw_material_shutter_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "paper",
			Required:      true,
			CollectionId:  papers.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sr_no", Required: false})
		c.Fields.Add(&core.TextField{Name: "ro_width", Required: false})
		c.Fields.Add(&core.TextField{Name: "ro_height", Required: false})
		c.Fields.Add(&core.TextField{Name: "bldg_wings", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sq_ft", Required: false})
		c.Fields.Add(&core.TextField{Name: "thickness", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	suppliers := ensureCollection(app, "suppliers", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "supplier_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "contact_person", Required: false})
		c.Fields.Add(&core.TextField{Name: "phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "email", Required: false})
		c.Fields.Add(&core.TextField{Name: "address", Required: false})
		c.Fields.Add(&core.TextField{Name: "gst_number", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	categories := ensureCollection(app, "raw_material_categories", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "category_code", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "raw_material_orders", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "order_number", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "supplier",
			Required:     true,
			CollectionId: suppliers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "category",
			Required:     false,
			CollectionId: categories.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "paper",
			Required:     false,
			CollectionId: papers.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"pending", "ordered", "received", "cancelled"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.JSONField{Name: "items", Required: false, MaxSize: 1 << 20})
		c.Fields.Add(&core.NumberField{Name: "total_amount", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
