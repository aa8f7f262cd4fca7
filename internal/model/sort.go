package model

import "sort"

// SortBy specifies the field and order for sorting results
type SortBy string

const (
	SortByKind    SortBy = "kind"
	SortByOutput  SortBy = "output"
	SortByRunTime SortBy = "run-time"
	SortByDefault SortBy = "" // Default sort: kind, then ID
)

// SortResults sorts results in place. run-time sorts newest first.
// An empty or unrecognized sortBy sorts by kind, then by ID.
func SortResults(results []*Result, sortBy string) {
	switch SortBy(sortBy) {
	case SortByKind:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Kind < results[j].Kind
		})
	case SortByOutput:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Output < results[j].Output
		})
	case SortByRunTime:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RunTime.After(results[j].RunTime)
		})
	default:
		sort.Slice(results, func(i, j int) bool {
			if results[i].Kind != results[j].Kind {
				return results[i].Kind < results[j].Kind
			}
			return results[i].ID < results[j].ID
		})
	}
}
