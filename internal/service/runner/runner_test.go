package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/repository/memrepo"
)

var fixedTime = time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestRunner(repo model.ResultRepository) *Runner {
	return New(repo,
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "test-id" }),
	)
}

func TestRun_Exercises(t *testing.T) {
	tests := []struct {
		name   string
		kind   exercise.Kind
		args   []string
		output string
		lines  []string
	}{
		{"swap", exercise.Swap, []string{"10", "20"}, "20 10", []string{"a: 20", "b: 10"}},
		{"sumn", exercise.SumN, []string{"5"}, "15", []string{"The sum is: 15"}},
		{"sumn zero", exercise.SumN, []string{"0"}, "0", []string{"The sum is: 0"}},
		{"fact", exercise.Factorial, []string{"5"}, "120", []string{"The factorial is: 120"}},
		{"fact zero", exercise.Factorial, []string{"0"}, "1", []string{"The factorial is: 1"}},
		{"divide", exercise.Halve, []string{"40"}, "40 20 10", []string{"40", "20", "10"}},
		{"divide nothing", exercise.Halve, []string{"5"}, "", []string{}},
		{"even", exercise.EvenOdd, []string{"4"}, "even", []string{"Number is even"}},
		{"odd", exercise.EvenOdd, []string{"7"}, "odd", []string{"Number is odd"}},
		{"prime", exercise.Prime, []string{"7"}, "true", []string{"Number is prime"}},
		{"not prime", exercise.Prime, []string{"8"}, "false", []string{"Number is not prime"}},
		{"one is not prime", exercise.Prime, []string{"1"}, "false", []string{"Number is not prime"}},
		{"palindrome", exercise.Palindrome, []string{"madam"}, "true", []string{"true"}},
		{"not palindrome", exercise.Palindrome, []string{"hello"}, "false", []string{"false"}},
		{"alias", exercise.Kind("factorial"), []string{"3"}, "6", []string{"The factorial is: 6"}},
	}

	r := newTestRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Run(context.Background(), Request{Kind: tt.kind, Args: tt.args})
			require.NoError(t, err)
			assert.Equal(t, tt.output, result.Output)
			assert.Equal(t, tt.lines, result.Lines)
			assert.Equal(t, "test-id", result.ID)
			assert.Equal(t, fixedTime, result.RunTime)
			assert.Equal(t, tt.args, result.Args)
		})
	}
}

func TestRun_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		kind exercise.Kind
		args []string
	}{
		{"too few for swap", exercise.Swap, []string{"1"}},
		{"too many for prime", exercise.Prime, []string{"1", "2"}},
		{"no args", exercise.SumN, nil},
		{"not an integer", exercise.SumN, []string{"five"}},
		{"second swap arg", exercise.Swap, []string{"1", "x"}},
		{"negative factorial", exercise.Factorial, []string{"-1"}},
		{"overflowing factorial", exercise.Factorial, []string{"21"}},
		{"overflowing sum", exercise.SumN, []string{strconv.Itoa(exercise.MaxSumN + 1)}},
		{"sum of max int", exercise.SumN, []string{"9223372036854775807"}},
		{"prime too large", exercise.Prime, []string{strconv.Itoa(exercise.MaxPrimeCandidate + 1)}},
	}

	r := newTestRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Run(context.Background(), Request{Kind: tt.kind, Args: tt.args})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgs)

			var argErr *ArgError
			assert.True(t, errors.As(err, &argErr))
		})
	}
}

func TestRun_BoundsAreInclusive(t *testing.T) {
	r := newTestRunner(nil)

	result, err := r.Run(context.Background(), Request{Kind: exercise.SumN, Args: []string{strconv.Itoa(exercise.MaxSumN)}})
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(exercise.Sum(exercise.MaxSumN)), result.Output)

	result, err = r.Run(context.Background(), Request{Kind: exercise.Prime, Args: []string{strconv.Itoa(exercise.MaxPrimeCandidate)}})
	require.NoError(t, err)
	assert.Equal(t, "false", result.Output)

	_, err = r.Run(context.Background(), Request{Kind: exercise.SumN, Args: []string{strconv.Itoa(exercise.MaxSumN + 1)}})
	var argErr *ArgError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, fmt.Sprintf("must be at most %d", exercise.MaxSumN), argErr.Reason)
}

func TestRun_UnknownKind(t *testing.T) {
	r := newTestRunner(nil)
	_, err := r.Run(context.Background(), Request{Kind: "fibonacci", Args: []string{"3"}})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestRunner(nil).Run(ctx, Request{Kind: exercise.SumN, Args: []string{"3"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_StoresResult(t *testing.T) {
	repo := memrepo.NewMemoryRepository()
	r := newTestRunner(repo)

	result, err := r.Run(context.Background(), Request{Kind: exercise.Palindrome, Args: []string{"madam"}})
	require.NoError(t, err)

	stored, err := repo.Get(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, "true", stored.Output)
	assert.Equal(t, exercise.Palindrome, stored.Kind)
}

func TestRun_StoreFailureIsWrapped(t *testing.T) {
	repo := memrepo.NewMemoryRepository()
	r := newTestRunner(repo)

	_, err := r.Run(context.Background(), Request{Kind: exercise.SumN, Args: []string{"1"}})
	require.NoError(t, err)

	// Same generated ID twice
	_, err = r.Run(context.Background(), Request{Kind: exercise.SumN, Args: []string{"2"}})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestArgError_Message(t *testing.T) {
	err := &ArgError{Kind: exercise.SumN, Index: 0, Value: "x", Reason: "not an integer"}
	assert.Equal(t, `sumn: argument 1 ("x"): not an integer`, err.Error())

	err = &ArgError{Kind: exercise.Swap, Index: -1, Reason: "expects 2 argument(s), got 1"}
	assert.Equal(t, "swap: expects 2 argument(s), got 1", err.Error())
}
