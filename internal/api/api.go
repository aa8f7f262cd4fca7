// Package api holds the JSON shapes and error mapping shared by the HTTP
// server and the API Gateway Lambda handler.
package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// ResultView is the wire form of a model.Result
type ResultView struct {
	ID      string    `json:"id"`
	Kind    string    `json:"kind"`
	Args    []string  `json:"args"`
	Output  string    `json:"output"`
	Lines   []string  `json:"lines"`
	RunTime time.Time `json:"runTime"`
}

// ResultsResponse is returned when listing results
type ResultsResponse struct {
	Count   int          `json:"count"`
	Results []ResultView `json:"results"`
}

// ErrorResponse carries an error message
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status string `json:"status"`
}

// NewResultView converts a result to its wire form
func NewResultView(r *model.Result) ResultView {
	lines := r.Lines
	if lines == nil {
		lines = []string{}
	}
	return ResultView{
		ID:      r.ID,
		Kind:    string(r.Kind),
		Args:    r.Args,
		Output:  r.Output,
		Lines:   lines,
		RunTime: r.RunTime,
	}
}

// NewResultsResponse converts a list of results
func NewResultsResponse(results []*model.Result) ResultsResponse {
	views := make([]ResultView, len(results))
	for i, r := range results {
		views[i] = NewResultView(r)
	}
	return ResultsResponse{Count: len(views), Results: views}
}

// StatusFor maps an error to an HTTP status code
func StatusFor(err error) int {
	switch {
	case errors.Is(err, runner.ErrInvalidArgs), errors.Is(err, runner.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Query is a parsed result listing query
type Query struct {
	Filter model.ResultFilter
	Sort   string
}

// ParseQuery reads kind, id, output and sort query parameters. The
// filter parameters accept comma-separated values.
func ParseQuery(params map[string]string) (Query, error) {
	var q Query
	for _, name := range splitList(params["kind"]) {
		kind, err := exercise.ParseKind(name)
		if err != nil {
			return Query{}, err
		}
		q.Filter.Kinds = append(q.Filter.Kinds, kind)
	}
	q.Filter.IDs = splitList(params["id"])
	q.Filter.Outputs = splitList(params["output"])
	q.Sort = params["sort"]
	return q, nil
}

// Apply filters and sorts results according to the query
func (q Query) Apply(results []*model.Result) []*model.Result {
	filtered := model.FilterResults(results, q.Filter)
	model.SortResults(filtered, q.Sort)
	return filtered
}

func splitList(value string) []string {
	var values []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
