package extractor

import (
	"strings"

	"github.com/dtnitsch/listing-optimizer/models"
)

const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPrice       = "price"
	fieldCondition   = "condition"
)

// incompleteError signals that the primary pass left required fields
// invalid. It never leaves this package.
type incompleteError struct {
	fields []string
}

func (e *incompleteError) Error() string {
	return "extraction incomplete: " + strings.Join(e.fields, ", ")
}

// validate requires a title, a description, a positive price and a known
// condition.
func validate(f *models.ProductFacts) error {
	var failed []string
	if f.Title == "" {
		failed = append(failed, fieldTitle)
	}
	if f.Description == "" {
		failed = append(failed, fieldDescription)
	}
	if f.Price <= 0 {
		failed = append(failed, fieldPrice)
	}
	if f.Condition == "" || f.Condition == models.ConditionUnknown {
		failed = append(failed, fieldCondition)
	}
	if len(failed) == 0 {
		return nil
	}
	return &incompleteError{fields: failed}
}
