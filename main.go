package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/collections"
	"doorworks/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed defaults and repair legacy data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateShutterSrNo(app); err != nil {
			log.Printf("Warning: shutter sr_no migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Site measurements ────────────────────────────────────
		se.Router.GET("/api/measurements", handlers.HandleMeasurementList(app))
		se.Router.POST("/api/measurements", handlers.HandleMeasurementCreate(app))
		se.Router.POST("/api/measurements/{id}/items/import", handlers.HandleMeasurementImport(app))

		// ── Raw material takeoff ─────────────────────────────────
		se.Router.GET("/api/papers/{id}/raw-material", handlers.HandleRawMaterialView(app))
		se.Router.POST("/api/papers/{id}/raw-material-table", handlers.HandleShutterExtract(app))
		se.Router.GET("/api/papers/{id}/raw-material-table", handlers.HandleShutterTableView(app))
		se.Router.DELETE("/api/papers/{id}/raw-material-table", handlers.HandleShutterTableDelete(app))

		// ── Raw material paper exports ───────────────────────────
		se.Router.GET("/api/papers/{id}/raw-material-paper/pdf", handlers.HandleRawMaterialPDF(app))
		se.Router.GET("/api/papers/{id}/raw-material-paper/excel", handlers.HandleRawMaterialExcel(app))

		// ── Supplier CRUD ────────────────────────────────────────
		se.Router.GET("/api/suppliers", handlers.HandleSupplierList(app))
		se.Router.POST("/api/suppliers", handlers.HandleSupplierCreate(app))
		se.Router.DELETE("/api/suppliers/{id}", handlers.HandleSupplierDelete(app))

		// ── Category CRUD ────────────────────────────────────────
		se.Router.GET("/api/raw-material-categories", handlers.HandleCategoryList(app))
		se.Router.POST("/api/raw-material-categories", handlers.HandleCategoryCreate(app))
		se.Router.DELETE("/api/raw-material-categories/{id}", handlers.HandleCategoryDelete(app))

		// ── Order CRUD ───────────────────────────────────────────
		se.Router.GET("/api/raw-material-orders", handlers.HandleOrderList(app))
		se.Router.POST("/api/raw-material-orders", handlers.HandleOrderCreate(app))
		se.Router.PATCH("/api/raw-material-orders/{id}/status", handlers.HandleOrderStatusUpdate(app))
		se.Router.DELETE("/api/raw-material-orders/{id}", handlers.HandleOrderDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
