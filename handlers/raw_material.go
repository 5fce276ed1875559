package handlers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"doorworks/services"
)

// measurementFetcher adapts PocketBase record lookup to the shape the
// selection resolver expects. Item rows are stored as a JSON array on the
// measurement record.
func measurementFetcher(app core.App) services.MeasurementFetcher {
	return func(measurementID string) ([]services.MeasurementItem, bool) {
		record, err := app.FindRecordById("measurements", measurementID)
		if err != nil {
			return nil, false
		}

		raw := record.GetString("items")
		if raw == "" {
			return nil, true
		}

		var items []services.MeasurementItem
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, true
		}
		return items, true
	}
}

// paperContext maps a production paper record onto the attribute set the
// table assembler and exporters consume.
func paperContext(paper *core.Record) services.PaperContext {
	return services.PaperContext{
		PaperNumber:       paper.GetString("paper_number"),
		ProductCategory:   paper.GetString("product_category"),
		Area:              paper.GetString("area"),
		Thickness:         paper.GetString("thickness"),
		Grade:             paper.GetString("grade"),
		SideFrame:         paper.GetString("side_frame"),
		Filler:            paper.GetString("filler"),
		Laminate:          paper.GetString("laminate"),
		FrontsideLaminate: paper.GetString("frontside_laminate"),
	}
}

// resolvePaperItems runs a paper's selection descriptor through the
// resolver against live measurement data.
func resolvePaperItems(app core.App, paper *core.Record) []services.MeasurementItem {
	return services.ResolveItems(
		paper.GetString("selected_measurement_items"),
		paper.GetString("measurement"),
		measurementFetcher(app),
	)
}

// loadPaper fetches a production paper, verifying its linked measurement
// still exists. Both a missing paper and a dangling measurement reference
// are hard failures for every takeoff endpoint.
func loadPaper(app *pocketbase.PocketBase, paperID string) (*core.Record, error) {
	paper, err := app.FindRecordById("production_papers", paperID)
	if err != nil {
		return nil, fmt.Errorf("paper not found: %w", err)
	}

	if mid := paper.GetString("measurement"); mid != "" {
		if _, err := app.FindRecordById("measurements", mid); err != nil {
			return nil, fmt.Errorf("measurement %s not found: %w", mid, err)
		}
	}

	return paper, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}
