package plan

import (
	"context"
	"fmt"

	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// Runner runs a single exercise request
type Runner interface {
	Run(ctx context.Context, req runner.Request) (*model.Result, error)
}

// StepResult is the outcome of one step
type StepResult struct {
	Index   int
	Step    Step
	Result  *model.Result
	Skipped bool
}

// StepError reports the step that stopped a plan
type StepError struct {
	Index int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Step.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Execute runs the steps in order. Skipped steps are reported but not run.
// The first failing step stops execution; the results gathered so far are
// returned along with a *StepError.
func Execute(ctx context.Context, r Runner, p *Plan) ([]StepResult, error) {
	results := make([]StepResult, 0, len(p.Steps))

	for i, step := range p.Steps {
		if step.Skip {
			results = append(results, StepResult{Index: i, Step: step, Skipped: true})
			continue
		}

		res, err := r.Run(ctx, step.Request())
		if err != nil {
			return results, &StepError{Index: i, Step: step, Err: err}
		}
		results = append(results, StepResult{Index: i, Step: step, Result: res})
	}

	return results, nil
}
