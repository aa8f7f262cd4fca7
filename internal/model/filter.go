package model

import (
	"strings"

	"github.com/mrled/suns/drills/internal/exercise"
)

// ResultFilter contains criteria for filtering results with multiple values per field.
// All criteria are optional; only non-empty slices are applied.
// Within each field, values are combined with OR logic (any value matches).
// Between fields, criteria are combined with AND logic (all fields must match).
type ResultFilter struct {
	// Kinds filters by exercise kind (OR within list)
	Kinds []exercise.Kind

	// IDs filters by exact result ID (OR within list)
	IDs []string

	// Outputs filters by canonical output (case-insensitive, OR within list)
	Outputs []string
}

// IsEmpty reports whether the filter has no criteria
func (f ResultFilter) IsEmpty() bool {
	return len(f.Kinds) == 0 && len(f.IDs) == 0 && len(f.Outputs) == 0
}

// FilterResults returns a new slice containing only results that match the filter.
// An empty filter matches everything.
func FilterResults(results []*Result, filter ResultFilter) []*Result {
	if filter.IsEmpty() {
		return results
	}

	kindMap := make(map[exercise.Kind]bool)
	for _, k := range filter.Kinds {
		kindMap[k] = true
	}

	idMap := make(map[string]bool)
	for _, id := range filter.IDs {
		idMap[id] = true
	}

	outputMap := make(map[string]bool)
	for _, o := range filter.Outputs {
		outputMap[strings.ToLower(o)] = true
	}

	var filtered []*Result
	for _, r := range results {
		if len(filter.Kinds) > 0 && !kindMap[r.Kind] {
			continue
		}
		if len(filter.IDs) > 0 && !idMap[r.ID] {
			continue
		}
		if len(filter.Outputs) > 0 && !outputMap[strings.ToLower(r.Output)] {
			continue
		}
		filtered = append(filtered, r)
	}

	return filtered
}
