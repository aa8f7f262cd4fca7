package memrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/mrled/suns/drills/internal/model"
)

// MemoryRepository is an in-memory implementation of ResultRepository optionally backed by a JSON file
type MemoryRepository struct {
	mu       sync.RWMutex
	data     map[string]*model.Result
	filePath string
}

// NewMemoryRepository creates a new in-memory repository without persistence.
// Data is stored only in memory and will be lost when the process terminates.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*model.Result),
	}
}

// NewMemoryRepositoryWithPersistence creates a new in-memory repository backed by a JSON file.
// The repository will load existing data from the file on initialization and persist
// all changes to the file automatically.
func NewMemoryRepositoryWithPersistence(filePath string) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		data:     make(map[string]*model.Result),
		filePath: filePath,
	}

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	if err := repo.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return repo, nil
}

// NewMemoryRepositoryFromJsonString creates a new in-memory repository initialized with data from a JSON string.
// The repository will not be backed by a file and will not persist changes.
// The JSON string should contain an array of Result objects.
func NewMemoryRepositoryFromJsonString(jsonString string) (*MemoryRepository, error) {
	repo := NewMemoryRepository()
	if err := repo.loadFromReader(strings.NewReader(jsonString)); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MemoryRepository) loadFromReader(reader io.Reader) error {
	var results []*model.Result
	if err := json.NewDecoder(reader).Decode(&results); err != nil {
		return err
	}

	r.data = make(map[string]*model.Result)
	for _, res := range results {
		if _, exists := r.data[res.ID]; exists {
			fmt.Fprintf(os.Stderr, "Warning: duplicate result ID %s (keeping last occurrence)\n", res.ID)
		}
		r.data[res.ID] = res
	}

	return nil
}

func (r *MemoryRepository) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	if stat.Size() == 0 {
		return nil
	}

	return r.loadFromReader(file)
}

// save writes the results to the JSON file, oldest first.
// If filePath is empty, this is a no-op.
func (r *MemoryRepository) save() error {
	if r.filePath == "" {
		return nil
	}

	file, err := os.Create(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.ordered())
}

// ordered returns the results sorted by run time, then ID. Callers hold the lock.
func (r *MemoryRepository) ordered() []*model.Result {
	results := make([]*model.Result, 0, len(r.data))
	for _, res := range r.data {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool {
		if !results[i].RunTime.Equal(results[j].RunTime) {
			return results[i].RunTime.Before(results[j].RunTime)
		}
		return results[i].ID < results[j].ID
	})
	return results
}

// Store saves a result
func (r *MemoryRepository) Store(ctx context.Context, result *model.Result) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[result.ID]; exists {
		return model.ErrAlreadyExists
	}

	r.data[result.ID] = result
	return r.save()
}

// UnconditionalStore saves a result, replacing any existing result with the same ID
func (r *MemoryRepository) UnconditionalStore(ctx context.Context, result *model.Result) error {
	if result == nil {
		return errors.New("result cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[result.ID] = result
	return r.save()
}

// Get retrieves a result by ID
func (r *MemoryRepository) Get(ctx context.Context, id string) (*model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, exists := r.data[id]
	if !exists {
		return nil, model.ErrNotFound
	}

	return res, nil
}

// List retrieves all results, oldest first
func (r *MemoryRepository) List(ctx context.Context) ([]*model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ordered(), nil
}

// Delete removes a result by ID
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[id]; !exists {
		return model.ErrNotFound
	}

	delete(r.data, id)
	return r.save()
}
