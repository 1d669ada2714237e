package grouptable

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"
)

func columnWithError(err error) *Column {
	return &Column{
		err: err,
	}
}

func tableWithError(err error) *Table {
	return &Table{
		err: err,
	}
}

func isSlice(input interface{}) bool {
	return input != nil && reflect.TypeOf(input).Kind() == reflect.Slice
}

// normalizeSlice returns a copy of `slice` in one of the supported container types.
// []int is converted to []int64.
func normalizeSlice(slice interface{}) (interface{}, error) {
	if !isSlice(slice) {
		return nil, fmt.Errorf("%w: unsupported kind (%T); must be slice", ErrTypeKind, slice)
	}
	switch vals := slice.(type) {
	case []int:
		ret := make([]int64, len(vals))
		for i := range vals {
			ret[i] = int64(vals[i])
		}
		return ret, nil
	case []float64, []int64, []string, []time.Time, []bool:
		return copySlice(vals), nil
	}
	return nil, fmt.Errorf("%w: unsupported slice type ([]%v)", ErrTypeKind, reflect.TypeOf(slice).Elem())
}

func dtypeOf(slice interface{}) DType {
	switch slice.(type) {
	case []int64:
		return Int64
	case []string:
		return String
	case []time.Time:
		return DateTime
	case []bool:
		return Bool
	}
	return Float64
}

// String returns the name of the DType.
func (dtype DType) String() string {
	switch dtype {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	case String:
		return "string"
	case DateTime:
		return "datetime"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("DType(%d)", int(dtype))
}

// makeIntRange returns a sequential series of numbers (inclusive of min, exclusive of max)
func makeIntRange(min, max int) []int {
	ret := make([]int, max-min)
	for i := range ret {
		ret[i] = min + i
	}
	return ret
}

func copySlice(slice interface{}) interface{} {
	v := reflect.ValueOf(slice)
	vals := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
	reflect.Copy(vals, v)
	return vals.Interface()
}

func copyMeta(meta map[string]interface{}) map[string]interface{} {
	if meta == nil {
		return nil
	}
	ret := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		ret[k] = v
	}
	return ret
}

func (info ColumnInfo) copy() ColumnInfo {
	info.Meta = copyMeta(info.Meta)
	return info
}

// takeSlice returns a new slice containing only the rows specified by index, in index order.
// If any position is out of range, returns an error
func takeSlice(slice interface{}, index []int) (interface{}, error) {
	v := reflect.ValueOf(slice)
	l := v.Len()
	retVals := reflect.MakeSlice(v.Type(), len(index), len(index))
	for indexPosition, indexValue := range index {
		if indexValue < 0 || indexValue >= l {
			return nil, fmt.Errorf("%w: %d not in [0:%d)", ErrIndex, indexValue, l)
		}
		retVals.Index(indexPosition).Set(v.Index(indexValue))
	}
	return retVals.Interface(), nil
}

func takeNulls(isNull []bool, index []int) []bool {
	if isNull == nil {
		return nil
	}
	ret := make([]bool, len(index))
	for i, indexValue := range index {
		ret[i] = isNull[indexValue]
	}
	return ret
}

// compareRows compares the values at rows i and j.
// Null values are greater than every other value.
func (c *Column) compareRows(i, j int) int {
	if c.isNull != nil {
		switch {
		case c.isNull[i] && c.isNull[j]:
			return 0
		case c.isNull[i]:
			return 1
		case c.isNull[j]:
			return -1
		}
	}
	switch vals := c.slice.(type) {
	case []float64:
		return cmp.Compare(vals[i], vals[j])
	case []int64:
		return cmp.Compare(vals[i], vals[j])
	case []string:
		return strings.Compare(vals[i], vals[j])
	case []time.Time:
		return vals[i].Compare(vals[j])
	case []bool:
		switch {
		case vals[i] == vals[j]:
			return 0
		case vals[j]:
			return -1
		}
		return 1
	}
	return 0
}

func (c *Column) isNullAt(i int) bool {
	return c.isNull != nil && c.isNull[i]
}

func (c *Column) hasNulls() bool {
	for _, isNull := range c.isNull {
		if isNull {
			return true
		}
	}
	return false
}

// rowsEqual reports whether rows i and j have identical values in every column.
func (t *Table) rowsEqual(i, j int) bool {
	for _, col := range t.columns {
		if col.compareRows(i, j) != 0 {
			return false
		}
	}
	return true
}

// findColumnWithName returns the position of the first column within `cols` with a name matching `name`, or an error if no column matches
func findColumnWithName(name string, cols []*Column) (int, error) {
	for k := range cols {
		if cols[k].info.Name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: `name` (%v) not found", ErrMissingColumn, name)
}

func listNames(cols []*Column) []string {
	ret := make([]string, len(cols))
	for k := range cols {
		ret[k] = cols[k].info.Name
	}
	return ret
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
