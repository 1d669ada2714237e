package grouptable

import (
	"fmt"
	"reflect"
)

// -- CONSTRUCTORS

// NewColumn creates a new unmasked Column named `name` from a copy of `slice`.
//
// Supported slice types: []float64, []int64, []int (stored as []int64), []string, []time.Time, []bool.
func NewColumn(name string, slice interface{}) *Column {
	vals, err := normalizeSlice(slice)
	if err != nil {
		return columnWithError(fmt.Errorf("NewColumn(): %w", err))
	}
	return &Column{
		slice: vals,
		info:  ColumnInfo{Name: name},
	}
}

// NewMaskedColumn creates a new masked Column. `isNull` must have the same length as `slice`;
// a true value marks the value at the same position as missing.
func NewMaskedColumn(name string, slice interface{}, isNull []bool) *Column {
	vals, err := normalizeSlice(slice)
	if err != nil {
		return columnWithError(fmt.Errorf("NewMaskedColumn(): %w", err))
	}
	l := reflect.ValueOf(vals).Len()
	if len(isNull) != l {
		return columnWithError(fmt.Errorf("NewMaskedColumn(): %w: `isNull` must have same length as `slice` (%d != %d)",
			ErrLengthMismatch, len(isNull), l))
	}
	mask := make([]bool, l)
	copy(mask, isNull)
	return &Column{
		slice:  vals,
		isNull: mask,
		info:   ColumnInfo{Name: name},
	}
}

// SetInfo replaces the descriptive attributes of the Column and returns the same Column.
func (c *Column) SetInfo(info ColumnInfo) *Column {
	c.info = info.copy()
	return c
}

// Info returns a copy of the descriptive attributes of the Column.
func (c *Column) Info() ColumnInfo {
	return c.info.copy()
}

// Name returns the name of the Column.
func (c *Column) Name() string {
	return c.info.Name
}

// Err returns the most recent error attached to the Column, if any.
func (c *Column) Err() error {
	return c.err
}

// Len returns the number of values in the Column.
func (c *Column) Len() int {
	if c.slice == nil {
		return 0
	}
	return reflect.ValueOf(c.slice).Len()
}

// DType returns the data type of the Column values.
func (c *Column) DType() DType {
	return dtypeOf(c.slice)
}

// Masked returns true if the Column has a null mask.
func (c *Column) Masked() bool {
	return c.isNull != nil
}

// Values returns the underlying slice of values (e.g., []float64). It must not be modified.
func (c *Column) Values() interface{} {
	return c.slice
}

// IsNull returns a copy of the null mask. Unmasked Columns return all false.
func (c *Column) IsNull() []bool {
	ret := make([]bool, c.Len())
	copy(ret, c.isNull)
	return ret
}

// Parent returns the Table that contains the Column, or nil.
func (c *Column) Parent() *Table {
	return c.parent
}

// At returns the Element at row `i`.
// If `i` is out of range, returns an empty Element.
func (c *Column) At(i int) Element {
	if i < 0 || i >= c.Len() {
		return Element{}
	}
	return Element{
		Val:    reflect.ValueOf(c.slice).Index(i).Interface(),
		IsNull: c.isNullAt(i),
	}
}

// Copy returns a new Column with identical values and info as the original but no shared objects.
// The copy does not belong to any Table, but keeps the grouping of the original.
func (c *Column) Copy() *Column {
	if c.err != nil {
		return columnWithError(c.err)
	}
	ret := c.derive(copySlice(c.slice), takeNulls(c.isNull, makeIntRange(0, len(c.isNull))))
	ret.grouping = c.grouping
	return ret
}

// derive returns an ungrouped, parentless Column with new values and the same info as c.
func (c *Column) derive(slice interface{}, isNull []bool) *Column {
	return &Column{
		slice:  slice,
		isNull: isNull,
		info:   c.info.copy(),
	}
}

// Take returns a new Column containing only the rows at the `index` positions, in index order.
func (c *Column) Take(index []int) *Column {
	if c.err != nil {
		return columnWithError(c.err)
	}
	vals, err := takeSlice(c.slice, index)
	if err != nil {
		return columnWithError(fmt.Errorf("Take(): %w", err))
	}
	return c.derive(vals, takeNulls(c.isNull, index))
}

// Range returns a new Column with the rows starting at `first` and ending before `last`.
func (c *Column) Range(first, last int) *Column {
	if c.err != nil {
		return columnWithError(c.err)
	}
	if first < 0 || last > c.Len() || first > last {
		return columnWithError(fmt.Errorf("Range(): %w: [%d:%d] with length %d", ErrIndex, first, last, c.Len()))
	}
	return c.Take(makeIntRange(first, last))
}

// Mask returns a new Column with only the rows where `mask` is true.
func (c *Column) Mask(mask []bool) *Column {
	if c.err != nil {
		return columnWithError(c.err)
	}
	if len(mask) != c.Len() {
		return columnWithError(fmt.Errorf("Mask(): %w: (%d != %d)", ErrLengthMismatch, len(mask), c.Len()))
	}
	return c.Take(maskToIndex(mask))
}

func maskToIndex(mask []bool) []int {
	index := make([]int, 0)
	for i := range mask {
		if mask[i] {
			index = append(index, i)
		}
	}
	return index
}

// withGrouping attaches boundary indices and group keys to c.
func (c *Column) withGrouping(indices []int, keys *Table) *Column {
	c.grouping = &grouping{indices: indices, keys: keys}
	return c
}
