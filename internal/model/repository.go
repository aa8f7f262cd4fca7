package model

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("result not found")
	ErrAlreadyExists = errors.New("result already exists")
)

// ResultRepository defines the interface for storing and retrieving exercise results
type ResultRepository interface {
	// Store saves a result; storing an ID twice is ErrAlreadyExists
	Store(ctx context.Context, result *Result) error

	// Get retrieves a result by ID
	Get(ctx context.Context, id string) (*Result, error)

	// List retrieves all results
	List(ctx context.Context) ([]*Result, error)

	// Delete removes a result by ID
	Delete(ctx context.Context, id string) error
}
