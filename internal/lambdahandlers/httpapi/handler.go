package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"github.com/mrled/suns/drills/internal/api"
	"github.com/mrled/suns/drills/internal/logger"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/repository"
	"github.com/mrled/suns/drills/internal/repository/dynamorepo"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// Handler holds the dependencies for the httpapi Lambda handler
type Handler struct {
	repo   model.ResultRepository
	runner *runner.Runner
	log    *slog.Logger
}

// NewHandler creates a new httpapi handler backed by DynamoDB
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "httpapi")
	logger.SetDefault(log)

	// Optional endpoint override for local development or testing
	dynamoEndpoint := os.Getenv("DYNAMODB_ENDPOINT")
	if dynamoEndpoint != "" {
		log.Info("Using custom DynamoDB endpoint", slog.String("endpoint", dynamoEndpoint))
	} else if os.Getenv("AWS_REGION") == "" {
		return nil, fmt.Errorf("AWS_REGION environment variable is required when DYNAMODB_ENDPOINT is not set")
	}

	dynamoTable := os.Getenv("DYNAMODB_TABLE")
	if dynamoTable == "" {
		return nil, fmt.Errorf("DYNAMODB_TABLE environment variable is required")
	}
	log.Info("Using DynamoDB table", slog.String("table", dynamoTable))

	client, err := repository.NewDynamoClient(context.Background(), dynamoEndpoint)
	if err != nil {
		log.Error("Failed to create DynamoDB client", slog.String("error", err.Error()))
		return nil, err
	}
	repo := dynamorepo.NewDynamoRepository(client, dynamoTable)

	return NewHandlerWithRepository(repo, log), nil
}

// NewHandlerWithRepository creates a handler over an existing repository
func NewHandlerWithRepository(repo model.ResultRepository, log *slog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		runner: runner.New(repo, runner.WithLogger(log)),
		log:    log,
	}
}

// RequestIDHeader is echoed from the request, or generated, on every response
const RequestIDHeader = "X-Request-ID"

// Handle processes API Gateway HTTP requests
func (h *Handler) Handle(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	requestID := requestIDFor(request)
	requestLogger := logger.WithLambda(h.log,
		os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		os.Getenv("AWS_LAMBDA_FUNCTION_VERSION"),
		request.RequestContext.RequestID).With(slog.String("request_id", requestID))

	resp, err := h.route(ctx, requestLogger, request)
	if resp.Headers == nil {
		resp.Headers = map[string]string{}
	}
	resp.Headers[RequestIDHeader] = requestID
	return resp, err
}

// requestIDFor prefers the caller's X-Request-ID, then the API Gateway request ID
func requestIDFor(request events.APIGatewayV2HTTPRequest) string {
	for name, value := range request.Headers {
		if strings.EqualFold(name, RequestIDHeader) && value != "" {
			return value
		}
	}
	if request.RequestContext.RequestID != "" {
		return request.RequestContext.RequestID
	}
	return uuid.NewString()
}

func (h *Handler) route(ctx context.Context, requestLogger *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := request.RequestContext.HTTP.Method
	// For API Gateway v2, the path is in RequestContext.HTTP.Path
	path := request.RequestContext.HTTP.Path
	if path == "" {
		path = request.RawPath
	}
	path = strings.TrimSuffix(strings.TrimPrefix(path, "/api"), "/")

	requestLogger.Info("Incoming request",
		slog.String("method", method),
		slog.String("path", path))

	switch {
	case path == "/health":
		return jsonResponseV2(http.StatusOK, api.HealthResponse{Status: "ok"})
	case path == "/v1/run":
		if method != http.MethodPost {
			return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only POST is supported for this endpoint (received: %s)", method))
		}
		return h.handleRun(ctx, requestLogger, request)
	case path == "/v1/results":
		if method != http.MethodGet {
			return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only GET is supported for this endpoint (received: %s)", method))
		}
		return h.handleList(ctx, request)
	case strings.HasPrefix(path, "/v1/results/"):
		if method != http.MethodGet {
			return errorResponseV2(http.StatusMethodNotAllowed, fmt.Sprintf("Method not allowed. Only GET is supported for this endpoint (received: %s)", method))
		}
		id := request.PathParameters["id"]
		if id == "" {
			id = strings.TrimPrefix(path, "/v1/results/")
		}
		return h.handleGet(ctx, id)
	default:
		requestLogger.Warn("Path not matched", slog.String("path", path))
		return errorResponseV2(http.StatusNotFound, fmt.Sprintf("Unknown endpoint: %s", path))
	}
}

func (h *Handler) handleRun(ctx context.Context, log *slog.Logger, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	var req runner.Request
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponseV2(http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if req.Kind == "" {
		return errorResponseV2(http.StatusBadRequest, "kind field is required")
	}

	result, err := h.runner.Run(ctx, req)
	if err != nil {
		status := api.StatusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error("Run failed", slog.String("error", err.Error()))
		}
		return errorResponseV2(status, err.Error())
	}

	return jsonResponseV2(http.StatusOK, api.NewResultView(result))
}

func (h *Handler) handleList(ctx context.Context, request events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	query, err := api.ParseQuery(request.QueryStringParameters)
	if err != nil {
		return errorResponseV2(http.StatusBadRequest, err.Error())
	}

	results, err := h.repo.List(ctx)
	if err != nil {
		h.log.Error("Failed to list results", slog.String("error", err.Error()))
		return errorResponseV2(http.StatusInternalServerError, "failed to list results")
	}

	return jsonResponseV2(http.StatusOK, api.NewResultsResponse(query.Apply(results)))
}

func (h *Handler) handleGet(ctx context.Context, id string) (events.APIGatewayV2HTTPResponse, error) {
	result, err := h.repo.Get(ctx, id)
	if err != nil {
		return errorResponseV2(api.StatusFor(err), err.Error())
	}
	return jsonResponseV2(http.StatusOK, api.NewResultView(result))
}

func jsonResponseV2(statusCode int, v any) (events.APIGatewayV2HTTPResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return errorResponseV2(http.StatusInternalServerError, "failed to generate response")
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

// errorResponseV2 creates a standardized error response for API Gateway v2
func errorResponseV2(statusCode int, message string) (events.APIGatewayV2HTTPResponse, error) {
	body, _ := json.Marshal(api.ErrorResponse{Error: message})

	return events.APIGatewayV2HTTPResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}
