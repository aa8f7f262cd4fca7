package model

import (
	"time"

	"github.com/mrled/suns/drills/internal/exercise"
)

// Result records one run of an exercise
type Result struct {
	ID      string
	Kind    exercise.Kind
	Args    []string
	Output  string
	Lines   []string
	RunTime time.Time
	Rev     int64 // Monotonically increasing revision number
}

// GroupByKind groups results by exercise kind
func GroupByKind(results []*Result) map[exercise.Kind][]*Result {
	grouped := make(map[exercise.Kind][]*Result)
	for _, r := range results {
		grouped[r.Kind] = append(grouped[r.Kind], r)
	}
	return grouped
}
