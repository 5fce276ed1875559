package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateShutterSrNo renumbers shutter item rows whose sr_no is zero or
// negative. Rows written before numbering moved server-side carry sr_no 0;
// each affected paper gets a dense 1..N sequence in stored order. Safe to
// call on every startup -- returns early if nothing to repair.
func MigrateShutterSrNo(app *pocketbase.PocketBase) error {
	broken, err := app.FindRecordsByFilter(
		"raw_material_shutter_items",
		"sr_no <= 0",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query shutter items: %w", err)
	}
	if len(broken) == 0 {
		return nil
	}

	papers := make(map[string]bool)
	for _, r := range broken {
		papers[r.GetString("paper")] = true
	}

	log.Printf("migrate: found %d shutter item(s) without sr_no across %d paper(s) -- renumbering...\n", len(broken), len(papers))

	for paperID := range papers {
		rows, err := app.FindRecordsByFilter(
			"raw_material_shutter_items",
			"paper = {:paper}",
			"created",
			0,
			0,
			map[string]any{"paper": paperID},
		)
		if err != nil {
			log.Printf("migrate: failed to load rows for paper %s: %v\n", paperID, err)
			continue
		}

		for i, row := range rows {
			if row.GetInt("sr_no") == i+1 {
				continue
			}
			row.Set("sr_no", i+1)
			if err := app.Save(row); err != nil {
				log.Printf("migrate: failed to renumber row %s: %v\n", row.Id, err)
			}
		}
	}

	log.Println("migrate: shutter sr_no repair complete.")
	return nil
}
