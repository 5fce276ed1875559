package services

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// MeasurementItem is one raw row of a measurement record. Field names vary
// by origin (site survey vs. factory entry), so lookups go through the
// alias lists in group.go rather than fixed keys.
type MeasurementItem = map[string]any

// MeasurementFetcher looks up the item list of a measurement record by id.
// The second return is false when no such record exists.
type MeasurementFetcher func(measurementID string) ([]MeasurementItem, bool)

// ResolveItems turns a production paper's selection descriptor into the flat
// list of measurement items to process.
//
// Two descriptor shapes exist, detected from the first element:
//   - legacy: a JSON array of integer indices into the paper's primary
//     measurement, e.g. [0, 2, 5]
//   - structured: an array of {"measurement_id": ..., "item_index": ...}
//     objects that may span several measurement records
//
// Out-of-range indices, unknown measurement ids and malformed descriptors
// all contribute nothing; the caller sees the resulting shortage as "no
// items to process" rather than an error. This mirrors long-standing
// behavior that stored papers depend on; it is a deliberate tolerance,
// not a pattern to copy elsewhere.
//
// Each distinct measurement id is fetched at most once per call. The memo
// is call-local on purpose: caching across requests could serve stale
// measurement data.
func ResolveItems(selectionJSON, primaryMeasurementID string, fetch MeasurementFetcher) []MeasurementItem {
	if selectionJSON == "" {
		return nil
	}

	var selection []any
	if err := json.Unmarshal([]byte(selectionJSON), &selection); err != nil {
		return nil
	}
	if len(selection) == 0 {
		return nil
	}

	if isStructuredEntry(selection[0]) {
		return resolveStructured(selection, fetch)
	}
	return resolveLegacy(selection, primaryMeasurementID, fetch)
}

// isStructuredEntry reports whether a descriptor element is a
// {measurement_id, item_index} object. A mixed descriptor is undefined;
// detection deliberately inspects only the first element, matching how
// stored descriptors were always written.
func isStructuredEntry(entry any) bool {
	m, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	_, ok = m["measurement_id"]
	return ok
}

func resolveLegacy(selection []any, primaryMeasurementID string, fetch MeasurementFetcher) []MeasurementItem {
	if primaryMeasurementID == "" {
		return nil
	}
	items, ok := fetch(primaryMeasurementID)
	if !ok {
		return nil
	}

	var resolved []MeasurementItem
	for _, entry := range selection {
		idx, ok := asIndex(entry)
		if !ok || idx < 0 || idx >= len(items) {
			continue
		}
		resolved = append(resolved, items[idx])
	}
	return resolved
}

func resolveStructured(selection []any, fetch MeasurementFetcher) []MeasurementItem {
	memo := make(map[string][]MeasurementItem)

	lookup := func(id string) []MeasurementItem {
		if items, seen := memo[id]; seen {
			return items
		}
		items, ok := fetch(id)
		if !ok {
			items = nil
		}
		memo[id] = items
		return items
	}

	var resolved []MeasurementItem
	for _, entry := range selection {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := asMeasurementID(m["measurement_id"])
		if id == "" {
			continue
		}
		idx, ok := asIndex(m["item_index"])
		if !ok {
			continue
		}
		items := lookup(id)
		if idx < 0 || idx >= len(items) {
			continue
		}
		resolved = append(resolved, items[idx])
	}
	return resolved
}

// asIndex accepts JSON numbers and numeric strings, both of which occur in
// stored descriptors.
func asIndex(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// asMeasurementID normalizes a measurement id to its string form. Legacy
// descriptors stored numeric ids; current ones store record id strings.
func asMeasurementID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}
