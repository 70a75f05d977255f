package nsfg

import "errors"

// ColumnType describes how the values of a column are stored.
type ColumnType uint8

// Column storage types.
const (
	NumericType ColumnType = iota
	StringType
)

func (t ColumnType) String() string {
	switch t {
	case NumericType:
		return "numeric"
	case StringType:
		return "string"
	default:
		return "unknown"
	}
}

var (
	// ErrDictionary is returned for a malformed Stata dictionary.
	ErrDictionary = errors.New("malformed dictionary")

	// ErrMissingColumn is returned when a named column is not present.
	ErrMissingColumn = errors.New("no such column")

	// ErrColumnType is returned when a column holds data of the wrong type.
	ErrColumnType = errors.New("wrong column type")
)

// A StatfileReader reads a data file in chunks of consecutive records.
type StatfileReader interface {
	ColumnNames() []string
	ColumnTypes() []ColumnType
	Read(int) ([]*Series, error)
}
