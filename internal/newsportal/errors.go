package newsportal

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/daniilsolovey/news-cms/internal/db"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
)

// ConflictError is a state conflict reported to the client as is.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

func (e ConflictError) Is(target error) bool {
	return target == ErrConflict
}

var ErrCategoryNotEmpty = ConflictError{Message: "Cannot delete category with existing articles"}

// uniqueFieldError converts a unique violation on "<table>_<field>_key" into a
// field validation error. Other errors are returned unchanged.
func uniqueFieldError(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}

	field := strings.TrimSuffix(constraint, "_key")
	if i := strings.Index(field, "_"); i >= 0 {
		field = field[i+1:]
	}

	return validation.Errors{
		field: validation.NewError("validation_unique", "has already been taken"),
	}
}
