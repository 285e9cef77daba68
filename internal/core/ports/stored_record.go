package ports

import (
	"errors"
	"fmt"
)

// ErrStoredRecordIsInvalid marks a row the store returned that does not map to a
// domain record. It is a store failure even when the cause is a validation error.
var ErrStoredRecordIsInvalid = errors.New("stored record is invalid")

// NewStoredRecordError wraps the mapping failure of row id in table. Both
// ErrStoredRecordIsInvalid and cause stay reachable through errors.Is.
func NewStoredRecordError(table string, id any, cause error) error {
	return fmt.Errorf("%w: %s row %v: %w", ErrStoredRecordIsInvalid, table, id, cause)
}
