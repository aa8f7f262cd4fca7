package applystream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/suns/drills/internal/adapter/dynamostream"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/repository/memrepo"
)

// View is the materialized view a stream batch is applied to
type View interface {
	Load(ctx context.Context) (*memrepo.MemoryRepository, error)
	Save(ctx context.Context, repo *memrepo.MemoryRepository) error
}

// Service handles DynamoDB stream processing and materialized view updates
type Service struct {
	view View
}

// New creates a new applystream service
func New(view View) *Service {
	return &Service{
		view: view,
	}
}

// ProcessStreamBatch loads the current view, applies every record in the
// batch to it, and saves it back.
//
// IMPORTANT: This assumes reservedConcurrentExecutions=1 in Lambda configuration
// so the read-modify-write is never interleaved with another invocation.
func (s *Service) ProcessStreamBatch(ctx context.Context, records []events.DynamoDBEventRecord) error {
	slog.Info("Processing batch from DynamoDB stream", slog.Int("record_count", len(records)))

	memRepo, err := s.view.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load materialized view: %w", err)
	}

	processedCount := 0
	for _, record := range records {
		if err := s.processRecord(ctx, memRepo, record); err != nil {
			// Log error but continue processing other records
			slog.Error("Error processing record",
				slog.String("event_id", record.EventID),
				slog.String("error", err.Error()))
			continue
		}
		processedCount++
	}

	if err := s.view.Save(ctx, memRepo); err != nil {
		return fmt.Errorf("failed to save materialized view: %w", err)
	}

	allResults, _ := memRepo.List(ctx)
	slog.Info("Successfully processed stream batch",
		slog.Int("processed", processedCount),
		slog.Int("total", len(records)),
		slog.Int("view_result_count", len(allResults)))

	return nil
}

func (s *Service) processRecord(ctx context.Context, repo *memrepo.MemoryRepository, record events.DynamoDBEventRecord) error {
	slog.Debug("Processing record",
		slog.String("event_id", record.EventID),
		slog.String("event_name", record.EventName))

	switch record.EventName {
	case "INSERT", "MODIFY":
		return s.handleInsertOrModify(ctx, repo, record)
	case "REMOVE":
		return s.handleRemove(ctx, repo, record)
	default:
		return fmt.Errorf("unknown event type: %s", record.EventName)
	}
}

func (s *Service) handleInsertOrModify(ctx context.Context, repo *memrepo.MemoryRepository, record events.DynamoDBEventRecord) error {
	result, err := dynamostream.ConvertToResult(record.Change.NewImage)
	if err != nil {
		return fmt.Errorf("failed to convert stream record: %w", err)
	}

	// MODIFY replaces the existing entry
	if err := repo.UnconditionalStore(ctx, result); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	slog.Debug("Stored/Updated result",
		slog.String("id", result.ID),
		slog.String("kind", string(result.Kind)))
	return nil
}

func (s *Service) handleRemove(ctx context.Context, repo *memrepo.MemoryRepository, record events.DynamoDBEventRecord) error {
	id := dynamostream.ExtractStringAttribute(record.Change.Keys, "pk")
	if id == "" {
		return fmt.Errorf("missing required key: pk")
	}

	if err := repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("failed to delete result: %w", err)
		}
		slog.Debug("Result not found for deletion", slog.String("id", id))
		return nil
	}

	slog.Debug("Removed result", slog.String("id", id))
	return nil
}
