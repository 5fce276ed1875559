package services

import "fmt"

// Field alias lists, in lookup priority order. These are the exact key
// names measurement imports have produced over the years; order matters
// and is part of the storage contract.
var (
	widthAliases        = []string{"ro_width", "width", "w"}
	heightAliases       = []string{"ro_height", "height", "h"}
	shutterWidthAliases = []string{"ro_width", "width", "w", "act_width"}
	shutterHeightAlias  = []string{"ro_height", "height", "h", "act_height"}
	buildingAliases     = []string{"bldg", "bldg_wing", "wall", "flat", "flat_no"}
	quantityAliases     = []string{"qty", "quantity"}
)

// Dimensions above this are category codes that leaked into a width/height
// column, not real measurements.
const dimensionCeiling = 10000.0

// GroupVariant selects which takeoff view is being built. The shutter view
// additionally matches act_width/act_height and keys on building/wing.
type GroupVariant int

const (
	VariantProductionPaper GroupVariant = iota
	VariantShutter
)

// DimensionGroup is one deduplicated dimension bucket: all selected items
// that normalize to the same inches display pair (and building/wing, for
// the shutter view) collapse into one group with their quantities summed.
type DimensionGroup struct {
	Item          MeasurementItem // first item seen, keeps the non-dimension fields
	Width         float64         // inches
	Height        float64         // inches
	WidthDisplay  string
	HeightDisplay string
	Building      string
	Quantity      float64
}

// GroupItems buckets items by normalized dimension pair. Items with
// missing, zero, unparsable or out-of-domain dimensions are dropped;
// one bad survey row must not abort the whole table. Groups come back in
// first-seen order so that the assembler's sort stays stable.
func GroupItems(items []MeasurementItem, variant GroupVariant) []*DimensionGroup {
	wAliases, hAliases := widthAliases, heightAliases
	if variant == VariantShutter {
		wAliases, hAliases = shutterWidthAliases, shutterHeightAlias
	}

	var groups []*DimensionGroup
	index := make(map[string]*DimensionGroup)

	for _, item := range items {
		rawWidth := firstAlias(item, wAliases)
		rawHeight := firstAlias(item, hAliases)
		if isBlank(rawWidth) || isBlank(rawHeight) {
			continue
		}

		widthNum := ExtractNumeric(rawWidth)
		heightNum := ExtractNumeric(rawHeight)
		if widthNum == 0 || heightNum == 0 {
			continue
		}
		if widthNum > dimensionCeiling || heightNum > dimensionCeiling {
			continue
		}

		widthDisplay := ToInchesDisplay(rawWidth)
		heightDisplay := ToInchesDisplay(rawHeight)
		if widthDisplay == "" || heightDisplay == "" {
			continue
		}

		// Grouping keys on the display strings, not the raw values:
		// 900 (mm) and 35.43 (inches) must land in the same bucket.
		key := widthDisplay + "-" + heightDisplay

		var building string
		if variant == VariantShutter {
			building = asFieldString(firstAlias(item, buildingAliases))
			key += "-" + building
		}

		qty := resolveQuantity(item)

		if group, ok := index[key]; ok {
			group.Quantity += qty
			continue
		}

		width, ok := inchesFromDisplay(widthDisplay)
		if !ok {
			width = normalizeToInches(widthNum)
		}
		height, ok := inchesFromDisplay(heightDisplay)
		if !ok {
			height = normalizeToInches(heightNum)
		}

		group := &DimensionGroup{
			Item:          item,
			Width:         width,
			Height:        height,
			WidthDisplay:  widthDisplay,
			HeightDisplay: heightDisplay,
			Building:      building,
			Quantity:      qty,
		}
		index[key] = group
		groups = append(groups, group)
	}

	return groups
}

// resolveQuantity reads qty/quantity, defaulting to one door per row when
// the field is absent or unparsable.
func resolveQuantity(item MeasurementItem) float64 {
	raw := firstAlias(item, quantityAliases)
	if isBlank(raw) {
		return 1
	}
	qty := float64(int(ExtractNumeric(raw)))
	if qty == 0 {
		return 1
	}
	return qty
}

func firstAlias(item MeasurementItem, aliases []string) any {
	for _, key := range aliases {
		if v, ok := item[key]; ok && !isBlank(v) {
			return v
		}
	}
	return nil
}

func normalizeToInches(n float64) float64 {
	if n > mmThreshold {
		return n / MMPerInch
	}
	return n
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == "" || s == "-"
	}
	return false
}

func asFieldString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
