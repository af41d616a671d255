package db

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNotFound signals an operation referencing an unknown deck, card
	// or review id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName signals a deck create/update colliding with an
	// existing deck name.
	ErrDuplicateName = errors.New("deck name already exists")

	// ErrDeckNotFound signals card creation referencing a nonexistent
	// deck.
	ErrDeckNotFound = errors.New("deck does not exist")
)

// ValidationError reports a rejected field on a create or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var validate = validator.New()

// checkInput runs struct-tag validation and converts the first failure into
// a ValidationError.
func checkInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &ValidationError{
			Field:  fieldErrs[0].Field(),
			Reason: fmt.Sprintf("failed %q check", fieldErrs[0].Tag()),
		}
	}
	return err
}
