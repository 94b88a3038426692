package ideas

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the creation request against the field rules the creation
// form enforces: title 1-200 characters, description at most 1000, link (if
// present) a well-formed URL, folder reference required. It returns a
// validator.ValidationErrors so callers can surface per-field messages.
func (in NewIdea) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("invalid idea: %w", err)
	}
	return nil
}
