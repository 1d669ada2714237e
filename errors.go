package grouptable

import "errors"

var (
	// ErrMissingColumn is returned when a column name is not in the Table.
	ErrMissingColumn = errors.New("missing column")
	// ErrInvalidKey is returned when a key column has null values.
	ErrInvalidKey = errors.New("invalid key")
	// ErrLengthMismatch is returned when keys and data have different lengths.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrTypeKind is returned for unsupported key or index kinds, and when a Column cannot be aggregated.
	ErrTypeKind = errors.New("unsupported kind")
	// ErrIndex is returned when a position is out of range.
	ErrIndex = errors.New("index out of range")
)
