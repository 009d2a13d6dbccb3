package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
// ulid.Make draws from a process-wide monotonic entropy source, so IDs
// created within the same millisecond still sort in creation order.
func NewULID() string {
	return ulid.Make().String()
}

// IsValidULID reports whether s parses as a canonical ULID.
func IsValidULID(s string) bool {
	if len(s) != ulid.EncodedSize {
		return false
	}
	_, err := ulid.ParseStrict(s)
	return err == nil
}
