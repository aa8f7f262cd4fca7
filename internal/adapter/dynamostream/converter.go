package dynamostream

import (
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
)

// ConvertToResult converts a DynamoDB NewImage map to a Result
func ConvertToResult(newImage map[string]events.DynamoDBAttributeValue) (*model.Result, error) {
	if newImage == nil {
		return nil, fmt.Errorf("newImage is nil")
	}

	result := &model.Result{}

	// ID comes from pk
	result.ID = ExtractStringAttribute(newImage, "pk")
	if result.ID == "" {
		return nil, fmt.Errorf("missing required field: ID (pk)")
	}

	kindName := ExtractStringAttribute(newImage, "Kind")
	if kindName == "" {
		return nil, fmt.Errorf("missing required field: Kind")
	}
	kind, err := exercise.ParseKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("invalid Kind: %w", err)
	}
	result.Kind = kind

	output, ok := newImage["Output"]
	if !ok || output.DataType() != events.DataTypeString {
		return nil, fmt.Errorf("missing required field: Output")
	}
	result.Output = output.String()

	// RunTime - required and must be valid RFC3339
	runTime := ExtractStringAttribute(newImage, "RunTime")
	if runTime == "" {
		return nil, fmt.Errorf("missing required field: RunTime")
	}
	t, err := time.Parse(time.RFC3339, runTime)
	if err != nil {
		return nil, fmt.Errorf("invalid RunTime format: %w", err)
	}
	result.RunTime = t

	if result.Args, err = extractStringList(newImage, "Args"); err != nil {
		return nil, err
	}
	if result.Lines, err = extractStringList(newImage, "Lines"); err != nil {
		return nil, err
	}

	if rev, ok := newImage["Rev"]; ok && rev.DataType() == events.DataTypeNumber {
		n, err := rev.Integer()
		if err != nil {
			return nil, fmt.Errorf("invalid Rev: %w", err)
		}
		result.Rev = n
	}

	return result, nil
}

// ExtractStringAttribute extracts a string value from DynamoDB attribute map
func ExtractStringAttribute(attrs map[string]events.DynamoDBAttributeValue, key string) string {
	if attr, ok := attrs[key]; ok {
		if attr.DataType() == events.DataTypeString {
			return attr.String()
		}
	}
	return ""
}

// extractStringList reads an optional list of strings. NULL and absent
// attributes both yield nil.
func extractStringList(attrs map[string]events.DynamoDBAttributeValue, key string) ([]string, error) {
	attr, ok := attrs[key]
	if !ok {
		return nil, nil
	}
	switch attr.DataType() {
	case events.DataTypeNull:
		return nil, nil
	case events.DataTypeStringSet:
		return attr.StringSet(), nil
	case events.DataTypeList:
		items := attr.List()
		values := make([]string, 0, len(items))
		for i, item := range items {
			if item.DataType() != events.DataTypeString {
				return nil, fmt.Errorf("%s[%d]: expected string", key, i)
			}
			values = append(values, item.String())
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%s: expected list of strings", key)
	}
}
