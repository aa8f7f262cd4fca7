package dynamorepo

import (
	"time"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
)

// DynamoDTO represents the persistence layer DTO for DynamoDB.
// The table has a single partition key, pk, holding the result ID.
type DynamoDTO struct {
	PK      string        `dynamodbav:"pk"` // Partition Key - maps from ID
	Kind    exercise.Kind `dynamodbav:"Kind"`
	Args    []string      `dynamodbav:"Args"`
	Output  string        `dynamodbav:"Output"`
	Lines   []string      `dynamodbav:"Lines"`
	RunTime time.Time     `dynamodbav:"RunTime"`
	Rev     int64         `dynamodbav:"Rev"`
}

// ToDomain converts a DynamoDTO to a model Result
func (dto *DynamoDTO) ToDomain() *model.Result {
	return &model.Result{
		ID:      dto.PK,
		Kind:    dto.Kind,
		Args:    dto.Args,
		Output:  dto.Output,
		Lines:   dto.Lines,
		RunTime: dto.RunTime,
		Rev:     dto.Rev,
	}
}

// FromDomain creates a DynamoDTO from a model Result
func FromDomain(result *model.Result) *DynamoDTO {
	return &DynamoDTO{
		PK:      result.ID,
		Kind:    result.Kind,
		Args:    result.Args,
		Output:  result.Output,
		Lines:   result.Lines,
		RunTime: result.RunTime,
		Rev:     result.Rev,
	}
}

// ToDomainList converts a slice of DynamoDTOs to model Results
func ToDomainList(dtos []*DynamoDTO) []*model.Result {
	results := make([]*model.Result, len(dtos))
	for i, dto := range dtos {
		results[i] = dto.ToDomain()
	}
	return results
}
