package streamer

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mrled/suns/drills/internal/adapter/s3materializedview"
	"github.com/mrled/suns/drills/internal/logger"
	"github.com/mrled/suns/drills/internal/service/applystream"
)

// DefaultDataKey is the S3 key of the result history when S3_DATA_KEY is unset
const DefaultDataKey = "results/history.json"

// Handler holds the dependencies for the streamer Lambda handler
type Handler struct {
	streamerService *applystream.Service
	log             *slog.Logger
}

// NewHandler creates a new streamer handler with initialized dependencies
func NewHandler() (*Handler, error) {
	log := logger.NewDefaultLogger()
	log = logger.WithExecutable(log, "streamer")
	logger.SetDefault(log)

	s3BucketName := os.Getenv("S3_BUCKET")
	if s3BucketName == "" {
		return nil, fmt.Errorf("S3_BUCKET environment variable is required")
	}
	log.Info("Using S3 bucket", slog.String("bucket", s3BucketName))

	s3DataKey := os.Getenv("S3_DATA_KEY")
	if s3DataKey == "" {
		s3DataKey = DefaultDataKey
	}
	log.Info("Using S3 key", slog.String("key", s3DataKey))

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Error("Failed to load AWS config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3View := s3materializedview.New(s3.NewFromConfig(cfg), s3BucketName, s3DataKey)
	return NewHandlerWithView(s3View, log), nil
}

// NewHandlerWithView creates a handler that applies batches to view
func NewHandlerWithView(view applystream.View, log *slog.Logger) *Handler {
	return &Handler{
		streamerService: applystream.New(view),
		log:             log,
	}
}

// Handle processes DynamoDB stream events
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	err := h.streamerService.ProcessStreamBatch(ctx, event.Records)
	if err != nil {
		h.log.Error("Stream processing failed",
			slog.String("error", err.Error()),
			slog.Bool("notify", true))
	}
	return err
}
