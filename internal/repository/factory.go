package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/repository/dynamorepo"
	"github.com/mrled/suns/drills/internal/repository/memrepo"
)

// RepositoryConfig holds configuration for creating a repository
type RepositoryConfig struct {
	// FilePath for JSON file persistence (ignored when DynamoTable is set)
	FilePath string

	// DynamoTable is the DynamoDB table name for persistence
	DynamoTable string

	// DynamoEndpoint is an optional custom DynamoDB endpoint URL
	DynamoEndpoint string
}

// Backend names which store a configuration selects
func (c RepositoryConfig) Backend() string {
	switch {
	case c.DynamoTable != "":
		return "dynamodb"
	case c.FilePath != "":
		return "file"
	default:
		return "memory"
	}
}

// NewRepository creates a ResultRepository based on the provided configuration.
// DynamoDB takes precedence over a JSON file; with neither configured the
// repository lives in memory only.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (model.ResultRepository, error) {
	switch cfg.Backend() {
	case "dynamodb":
		client, err := NewDynamoClient(ctx, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		slog.Debug("Using DynamoDB table", slog.String("table", cfg.DynamoTable))
		return dynamorepo.NewDynamoRepository(client, cfg.DynamoTable), nil

	case "file":
		memRepo, err := memrepo.NewMemoryRepositoryWithPersistence(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		slog.Debug("Using JSON persistence", slog.String("file", cfg.FilePath))
		return memRepo, nil

	default:
		slog.Debug("Using in-memory storage (no persistence)")
		return memrepo.NewMemoryRepository(), nil
	}
}

// NewDynamoClient loads the default AWS configuration and builds a DynamoDB
// client, pointing it at endpoint when one is given.
func NewDynamoClient(ctx context.Context, endpoint string) (*dynamodb.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if endpoint != "" {
		slog.Debug("Using DynamoDB endpoint", slog.String("endpoint", endpoint))
		return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			o.BaseEndpoint = &endpoint
		}), nil
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}
