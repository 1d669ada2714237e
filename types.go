// Package grouptable (GROUPed TABLEs) partitions columnar data into groups of equal keys.
//
// A Column is a single named sequence of values with an optional null mask and descriptive info
// (unit, format, description, meta). A Table is an ordered set of equal-length Columns with its own meta.
//
// Calling GroupBy() on either returns a sorted copy whose rows are arranged in contiguous runs of identical keys.
// The runs are described by boundary indices and one key row per group, and can be accessed through Groups():
//
// * iterate over each group, or select groups by position, range, mask or explicit order
//
// * aggregate each group into a single row with a reduce function (vectorized for sums, means and segmented reductions)
//
// * filter whole groups with a predicate
//
// A Column that belongs to a Table never has a grouping of its own: it always reports the grouping of its Table.
//
// Errors are attached to the returned Column or Table (or group view) and retrieved with Err().
// Errors from grouping, selection and aggregation wrap one of the sentinel errors in this package, so callers may use errors.Is.
package grouptable

import (
	"time"
)

// DType is the data type of the values in a Column.
type DType int

const (
	// Float64 -> []float64
	Float64 DType = iota
	// Int64 -> []int64
	Int64
	// String -> []string
	String
	// DateTime -> []time.Time
	DateTime
	// Bool -> []bool
	Bool
)

// ColumnInfo holds the descriptive attributes of a Column.
// Info is copied to every Column derived from the original (including aggregated Columns).
type ColumnInfo struct {
	Name        string
	Unit        string
	Format      string
	Description string
	Meta        map[string]interface{}
}

// A Column is a single sequence of values with an optional null mask.
// A Column with a non-nil mask is "masked", even if no value is null.
type Column struct {
	slice    interface{}
	isNull   []bool
	info     ColumnInfo
	parent   *Table
	grouping *grouping
	err      error
}

// A Table is one or more equal-length Columns plus table-level meta.
type Table struct {
	columns            []*Column
	meta               map[string]interface{}
	indexes            []*Index
	grouping           *grouping
	groupedByTableCols bool
	err                error
}

// A TableMutator is used to change Table rows in place.
type TableMutator struct {
	table *Table
}

// An Index is a secondary index on one or more Table columns.
// It stores the row order that sorts the Table by those columns.
type Index struct {
	names  []string
	sorted []int
}

// grouping is the shared state behind a group view: boundary indices and one key row per group.
type grouping struct {
	indices []int
	keys    *Table
}

// ColumnGroups is the group view of a Column.
type ColumnGroups struct {
	parentColumn *Column
	parentTable  *Table
	indices      []int
	keys         *Table
}

// TableGroups is the group view of a Table.
type TableGroups struct {
	parentTable *Table
	indices     []int
	keys        *Table
}

// ColumnGroupsIterator iterates over all Columns in the group view.
type ColumnGroupsIterator struct {
	current int
	groups  *ColumnGroups
}

// TableGroupsIterator iterates over all Tables in the group view.
type TableGroupsIterator struct {
	current int
	groups  *TableGroups
}

// A Sorter supplies details to the Sort() function.
// `Name` specifies the column to sort.
// If `Descending` is true, values are sorted in descending order.
// Null values are always sorted to the bottom.
type Sorter struct {
	Name       string
	Descending bool
}

// Slice selects the contiguous range of groups from Start (inclusive) to Stop (exclusive).
// Negative values count back from the number of groups, and out-of-range values are clipped.
type Slice struct {
	Start int
	Stop  int
}

// An Element is one value in a Column.
type Element struct {
	Val    interface{}
	IsNull bool
}

// ReduceKind tags the reductions that have a vectorized implementation.
type ReduceKind int

const (
	// ReduceCustom is reduced group-by-group with a user function.
	ReduceCustom ReduceKind = iota
	// ReduceSum is a segmented sum.
	ReduceSum
	// ReduceMean is a segmented sum divided by the group sizes.
	ReduceMean
	// ReduceSegmented uses the SegmentedFloat64 or SegmentedInt64 fields.
	ReduceSegmented
)

// A GroupReduceFn supplies logic to the Aggregate() function.
//
// If `Kind` is not ReduceCustom and the Column is a Float64 or Int64 Column,
// every group is reduced in a single pass over the values (a "segmented" reduction).
// Segmented functions receive the non-null Column values plus the first row of each group,
// and must return one value per group. Int64 sums, minimums and maximums stay Int64, with or without a mask.
//
// Otherwise, only the first of `Float64`, `String`, `DateTime` or `Interface` that is not nil is used, once per group.
// Values are coerced to the type specified in the field (e.g., DateTime -> time.Time) before the reduce function is evaluated,
// and null values are removed. A group with only null values reduces to null.
// String Columns are never coerced to float64; Cast() them first.
// `Interface` receives the non-null group values as a slice of their original type (e.g., []string),
// and all of its outputs must have the same type.
type GroupReduceFn struct {
	Name             string
	Kind             ReduceKind
	SegmentedFloat64 func(vals []float64, starts []int) []float64
	SegmentedInt64   func(vals []int64, starts []int) []int64
	Float64          func(vals []float64) float64
	String           func(vals []string) string
	DateTime         func(vals []time.Time) time.Time
	Interface        func(vals interface{}) (interface{}, error)
}
