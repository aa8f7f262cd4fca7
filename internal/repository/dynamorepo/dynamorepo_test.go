package dynamorepo

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
)

// fakeDynamo is an in-process stand-in for a single-key table
type fakeDynamo struct {
	items    map[string]map[string]types.AttributeValue
	pageSize int
	scans    int
}

func newFakeDynamo(pageSize int) *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]types.AttributeValue), pageSize: pageSize}
}

func pkOf(item map[string]types.AttributeValue) string {
	if s, ok := item["pk"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func conditionFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	pk := pkOf(in.Item)
	if _, exists := f.items[pk]; exists && in.ConditionExpression != nil {
		return nil, conditionFailed()
	}
	f.items[pk] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[pkOf(in.Key)]}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	pk := pkOf(in.Key)
	if _, exists := f.items[pk]; !exists {
		return nil, conditionFailed()
	}
	delete(f.items, pk)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans++

	keys := make([]string, 0, len(f.items))
	for k := range f.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if in.ExclusiveStartKey != nil {
		after := pkOf(in.ExclusiveStartKey)
		start = sort.SearchStrings(keys, after) + 1
	}

	end := start + f.pageSize
	if end > len(keys) {
		end = len(keys)
	}

	out := &dynamodb.ScanOutput{}
	for _, k := range keys[start:end] {
		out.Items = append(out.Items, f.items[k])
	}
	if end < len(keys) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: keys[end-1]},
		}
	}
	return out, nil
}

func testResult(id string) *model.Result {
	return &model.Result{
		ID:      id,
		Kind:    exercise.Factorial,
		Args:    []string{"5"},
		Output:  "120",
		Lines:   []string{"The factorial is: 120"},
		RunTime: time.Date(2025, 10, 17, 12, 0, 0, 0, time.UTC),
		Rev:     1,
	}
}

func TestDynamoRepository_StoreAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoRepository(newFakeDynamo(10), "results")

	if err := repo.Store(ctx, testResult("r1")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, err := repo.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Output != "120" {
		t.Errorf("Expected output 120, got %s", got.Output)
	}
	if got.Kind != exercise.Factorial {
		t.Errorf("Expected kind fact, got %s", got.Kind)
	}
	if !got.RunTime.Equal(testResult("r1").RunTime) {
		t.Errorf("Expected RunTime to survive marshalling, got %s", got.RunTime)
	}
}

func TestDynamoRepository_StoreDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoRepository(newFakeDynamo(10), "results")

	if err := repo.Store(ctx, testResult("r1")); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := repo.Store(ctx, testResult("r1")); !errors.Is(err, model.ErrAlreadyExists) {
		t.Errorf("Expected ErrAlreadyExists, got %v", err)
	}
}

func TestDynamoRepository_GetMissing(t *testing.T) {
	repo := NewDynamoRepository(newFakeDynamo(10), "results")
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDynamoRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewDynamoRepository(newFakeDynamo(10), "results")
	repo.Store(ctx, testResult("r1"))

	if err := repo.Delete(ctx, "r1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "r1"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDynamoRepository_ListPaginates(t *testing.T) {
	ctx := context.Background()
	fake := newFakeDynamo(2)
	repo := NewDynamoRepository(fake, "results")

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if err := repo.Store(ctx, testResult(id)); err != nil {
			t.Fatalf("Store %s failed: %v", id, err)
		}
	}

	results, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("Expected 5 results across pages, got %d", len(results))
	}
	if fake.scans != 3 {
		t.Errorf("Expected 3 scan pages, got %d", fake.scans)
	}
}
