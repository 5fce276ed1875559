package services

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pocketbase/pocketbase/core"
)

// Document code prefixes. Codes are sequential per collection, zero-padded
// to three digits: SUP001, CAT001, ORD001.
const (
	SupplierCodePrefix = "SUP"
	CategoryCodePrefix = "CAT"
	OrderCodePrefix    = "ORD"
)

var codeSuffixPattern = regexp.MustCompile(`^[A-Z]+(\d+)$`)

// NextCode generates the next sequential code for a collection by scanning
// the existing values of the code field and incrementing the highest
// numeric suffix. An empty collection starts at 001. Records whose code
// does not match the prefix scheme are ignored rather than rejected; hand
// entered codes exist in old data.
func NextCode(app core.App, collection, field, prefix string) (string, error) {
	records, err := app.FindRecordsByFilter(
		collection,
		fmt.Sprintf("%s ~ {:prefix}", field),
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		return "", fmt.Errorf("scan %s codes: %w", collection, err)
	}

	highest := 0
	for _, r := range records {
		m := codeSuffixPattern.FindStringSubmatch(r.GetString(field))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}

	return fmt.Sprintf("%s%03d", prefix, highest+1), nil
}

// NextSupplierCode returns the next SUP### code.
func NextSupplierCode(app core.App) (string, error) {
	return NextCode(app, "suppliers", "supplier_code", SupplierCodePrefix)
}

// NextCategoryCode returns the next CAT### code.
func NextCategoryCode(app core.App) (string, error) {
	return NextCode(app, "raw_material_categories", "category_code", CategoryCodePrefix)
}

// NextOrderCode returns the next ORD### code.
func NextOrderCode(app core.App) (string, error) {
	return NextCode(app, "raw_material_orders", "order_number", OrderCodePrefix)
}
