// Package runner dispatches exercise requests, renders their printed output
// and optionally records each run in a result repository.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/presenter"
)

// Request names an exercise and its raw arguments
type Request struct {
	Kind exercise.Kind `json:"kind" yaml:"kind"`
	Args []string      `json:"args" yaml:"args"`
}

// Runner executes exercises
type Runner struct {
	repo  model.ResultRepository
	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

// Option configures a Runner
type Option func(*Runner)

// WithClock overrides the clock used to stamp results
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithIDGenerator overrides result ID generation
func WithIDGenerator(gen func() string) Option {
	return func(r *Runner) { r.newID = gen }
}

// WithLogger sets the logger used for run diagnostics
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// New creates a Runner. A nil repository means results are not recorded.
func New(repo model.ResultRepository, opts ...Option) *Runner {
	r := &Runner{
		repo:  repo,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one exercise and returns its result.
// When the runner has a repository the result is stored before returning.
func (r *Runner) Run(ctx context.Context, req Request) (*model.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind, err := exercise.ParseKind(string(req.Kind))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	if len(req.Args) != exercise.ArgCount(kind) {
		return nil, &ArgError{
			Kind:   kind,
			Index:  -1,
			Reason: fmt.Sprintf("expects %d argument(s), got %d", exercise.ArgCount(kind), len(req.Args)),
		}
	}

	output, lines, err := evaluate(kind, req.Args)
	if err != nil {
		return nil, err
	}

	result := &model.Result{
		ID:      r.newID(),
		Kind:    kind,
		Args:    append([]string(nil), req.Args...),
		Output:  output,
		Lines:   lines,
		RunTime: r.now().UTC(),
		Rev:     1,
	}

	r.log.Debug("Exercise completed",
		slog.String("id", result.ID),
		slog.String("kind", string(kind)),
		slog.String("output", output))

	if r.repo != nil {
		if err := r.repo.Store(ctx, result); err != nil {
			return nil, fmt.Errorf("failed to store result: %w", err)
		}
	}

	return result, nil
}

// evaluate runs the exercise and returns its canonical output and printed lines
func evaluate(kind exercise.Kind, args []string) (string, []string, error) {
	if exercise.TakesText(kind) {
		ok := exercise.IsPalindrome(args[0])
		return strconv.FormatBool(ok), presenter.PalindromeLines(ok), nil
	}

	ints, err := parseInts(kind, args)
	if err != nil {
		return "", nil, err
	}

	switch kind {
	case exercise.Swap:
		a, b := exercise.SwapInts(ints[0], ints[1])
		return fmt.Sprintf("%d %d", a, b), presenter.SwapLines(a, b), nil
	case exercise.SumN:
		if ints[0] > exercise.MaxSumN {
			return "", nil, atMost(kind, args[0], exercise.MaxSumN)
		}
		sum := exercise.Sum(ints[0])
		return strconv.Itoa(sum), presenter.SumLines(sum), nil
	case exercise.Factorial:
		n := ints[0]
		if n < 0 || n > exercise.MaxFactorial {
			return "", nil, &ArgError{
				Kind:   kind,
				Index:  0,
				Value:  args[0],
				Reason: fmt.Sprintf("must be between 0 and %d", exercise.MaxFactorial),
			}
		}
		f := exercise.Fact(n)
		return strconv.Itoa(f), presenter.FactorialLines(f), nil
	case exercise.Halve:
		values := exercise.Halvings(ints[0])
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = strconv.Itoa(v)
		}
		return strings.Join(parts, " "), presenter.HalvingLines(values), nil
	case exercise.EvenOdd:
		p := exercise.ParityOf(ints[0])
		return string(p), presenter.ParityLines(p), nil
	case exercise.Prime:
		if ints[0] > exercise.MaxPrimeCandidate {
			return "", nil, atMost(kind, args[0], exercise.MaxPrimeCandidate)
		}
		prime := exercise.IsPrime(ints[0])
		return strconv.FormatBool(prime), presenter.PrimeLines(prime), nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func atMost(kind exercise.Kind, value string, limit int) *ArgError {
	return &ArgError{Kind: kind, Index: 0, Value: value, Reason: fmt.Sprintf("must be at most %d", limit)}
}

func parseInts(kind exercise.Kind, args []string) ([]int, error) {
	ints := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, &ArgError{Kind: kind, Index: i, Value: a, Reason: "not an integer"}
		}
		ints[i] = n
	}
	return ints, nil
}
