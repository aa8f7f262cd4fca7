package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mrled/suns/drills/internal/api"
	"github.com/mrled/suns/drills/internal/logger"
	"github.com/mrled/suns/drills/internal/plan"
	"github.com/mrled/suns/drills/internal/repository"
	"github.com/mrled/suns/drills/internal/repository/dynamorepo"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// Handler runs a plan delivered as the Lambda event
type Handler struct {
	runner plan.Runner
	log    *slog.Logger
}

// StepOutcome reports one step of the batch
type StepOutcome struct {
	Index   int             `json:"index"`
	Kind    string          `json:"kind"`
	Skipped bool            `json:"skipped,omitempty"`
	Result  *api.ResultView `json:"result,omitempty"`
}

// Response summarizes a batch run
type Response struct {
	Plan    string        `json:"plan,omitempty"`
	Ran     int           `json:"ran"`
	Skipped int           `json:"skipped"`
	Steps   []StepOutcome `json:"steps"`
	Error   string        `json:"error,omitempty"`
}

// NewHandler creates a batch handler that records results in DynamoDB
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "batch")
	logger.SetDefault(log)

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	if dynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	log.Info("Using DynamoDB table", slog.String("table", dynamoTable))

	client, err := repository.NewDynamoClient(context.Background(), os.Getenv("DYNAMODB_ENDPOINT"))
	if err != nil {
		return nil, err
	}
	repo := dynamorepo.NewDynamoRepository(client, dynamoTable)

	return NewHandlerWithRunner(runner.New(repo, runner.WithLogger(log)), log), nil
}

// NewHandlerWithRunner creates a handler around an existing runner
func NewHandlerWithRunner(r plan.Runner, log *slog.Logger) *Handler {
	return &Handler{runner: r, log: log}
}

// Handle validates and executes the plan. A failing step stops the batch;
// the response still lists the steps that completed.
func (h *Handler) Handle(ctx context.Context, event plan.Plan) (Response, error) {
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		"")

	if err := event.Validate(); err != nil {
		requestLogger.Warn("Rejected plan", slog.String("error", err.Error()))
		return Response{Plan: event.Name, Steps: []StepOutcome{}, Error: err.Error()}, err
	}

	requestLogger.Info("Running plan",
		slog.String("plan", event.Name),
		slog.Int("steps", len(event.Steps)))

	results, err := plan.Execute(ctx, h.runner, &event)
	resp := summarize(event.Name, results)
	if err != nil {
		var stepErr *plan.StepError
		if errors.As(err, &stepErr) {
			requestLogger.Error("Plan step failed",
				slog.Int("step", stepErr.Index+1),
				slog.String("kind", string(stepErr.Step.Kind)),
				slog.String("error", stepErr.Err.Error()))
		}
		resp.Error = err.Error()
		return resp, err
	}

	requestLogger.Info("Plan completed",
		slog.Int("ran", resp.Ran),
		slog.Int("skipped", resp.Skipped))
	return resp, nil
}

func summarize(name string, results []plan.StepResult) Response {
	resp := Response{Plan: name, Steps: make([]StepOutcome, 0, len(results))}
	for _, r := range results {
		outcome := StepOutcome{Index: r.Index, Kind: string(r.Step.Kind), Skipped: r.Skipped}
		if r.Skipped {
			resp.Skipped++
		} else {
			view := api.NewResultView(r.Result)
			outcome.Result = &view
			resp.Ran++
		}
		resp.Steps = append(resp.Steps, outcome)
	}
	return resp
}
