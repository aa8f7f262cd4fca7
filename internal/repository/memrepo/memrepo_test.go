package memrepo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
)

func newResult(id string, kind exercise.Kind, offset time.Duration) *model.Result {
	return &model.Result{
		ID:      id,
		Kind:    kind,
		Output:  "true",
		RunTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC).Add(offset),
		Rev:     1,
	}
}

func TestMemoryRepository_StoreGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if err := repo.Store(ctx, newResult("r1", exercise.Prime, 0)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := repo.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Kind != exercise.Prime {
		t.Errorf("Expected kind prime, got %s", got.Kind)
	}

	if err := repo.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, "r1"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryRepository_StoreDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if err := repo.Store(ctx, newResult("r1", exercise.Prime, 0)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := repo.Store(ctx, newResult("r1", exercise.SumN, 0)); !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}

	if err := repo.UnconditionalStore(ctx, newResult("r1", exercise.SumN, 0)); err != nil {
		t.Fatalf("UnconditionalStore failed: %v", err)
	}
	got, _ := repo.Get(ctx, "r1")
	if got.Kind != exercise.SumN {
		t.Errorf("Expected replaced kind sumn, got %s", got.Kind)
	}
}

func TestMemoryRepository_StoreNil(t *testing.T) {
	if err := NewMemoryRepository().Store(context.Background(), nil); err == nil {
		t.Error("Expected error storing nil result")
	}
}

func TestMemoryRepository_DeleteMissing(t *testing.T) {
	err := NewMemoryRepository().Delete(context.Background(), "missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepository_ListOrderedByRunTime(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.Store(ctx, newResult("late", exercise.Prime, time.Hour))
	repo.Store(ctx, newResult("early", exercise.Prime, 0))

	results, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].ID != "early" || results[1].ID != "late" {
		t.Errorf("Expected early then late, got %s then %s", results[0].ID, results[1].ID)
	}
}

func TestMemoryRepository_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "results.json")

	repo, err := NewMemoryRepositoryWithPersistence(path)
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	if err := repo.Store(ctx, newResult("r1", exercise.Palindrome, 0)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	reloaded, err := NewMemoryRepositoryWithPersistence(path)
	if err != nil {
		t.Fatalf("Failed to reload repository: %v", err)
	}
	got, err := reloaded.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Expected persisted result, got error: %v", err)
	}
	if got.Kind != exercise.Palindrome {
		t.Errorf("Expected kind palindrome, got %s", got.Kind)
	}
}

func TestMemoryRepository_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	repo, err := NewMemoryRepositoryWithPersistence(path)
	if err != nil {
		t.Fatalf("Expected empty file to load, got: %v", err)
	}
	results, _ := repo.List(context.Background())
	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestNewMemoryRepositoryFromJsonString(t *testing.T) {
	repo, err := NewMemoryRepositoryFromJsonString(`[{"ID":"a","Kind":"sumn","Output":"15"},{"ID":"b","Kind":"fact","Output":"120"}]`)
	if err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	got, err := repo.Get(context.Background(), "b")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Output != "120" {
		t.Errorf("Expected output 120, got %s", got.Output)
	}

	if _, err := NewMemoryRepositoryFromJsonString("not json"); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}
