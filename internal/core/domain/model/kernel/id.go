package kernel

import (
	"fmt"
	"strconv"

	"logistics/internal/pkg/errs"
)

// ID is the opaque identity of a stored row. Zero means "not yet persisted".
type ID int64

// NewID validates a raw identifier received from a caller.
func NewID(raw int64) (ID, error) {
	id := ID(raw)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal identifier, e.g. from a URL path.
func ParseID(raw string) (ID, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(v)
}

// Validate reports whether the ID refers to a persisted row.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// IsZero reports whether the ID has not been assigned yet.
func (id ID) IsZero() bool {
	return id == 0
}

// Int64 returns the raw value for persistence.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID converts a nullable column into a domain reference.
func OptionalID(raw *int64) *ID {
	if raw == nil {
		return nil
	}
	id := ID(*raw)
	return &id
}

// RawOptionalID converts a nullable domain reference into a column value.
func RawOptionalID(id *ID) *int64 {
	if id == nil {
		return nil
	}
	raw := int64(*id)
	return &raw
}
