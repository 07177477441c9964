package forum

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound means the referenced question or reply does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the actor is not allowed to perform the
	// operation: either not the author, or missing the role required to
	// answer a question directly.
	ErrForbidden = errors.New("forbidden")
	// ErrParentMismatch means a reply's parent belongs to a different
	// question.
	ErrParentMismatch = errors.New("parent reply belongs to a different question")
)

// ValidationError reports the required fields a request left missing or
// empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
