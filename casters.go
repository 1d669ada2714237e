package grouptable

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

// converters

func convertStringToFloat(val string) (float64, error) {
	return strconv.ParseFloat(val, 64)
}

func convertBoolToFloat(val bool) float64 {
	if val {
		return 1
	}
	return 0
}

// strings without a time zone are read as UTC
func convertStringToDateTime(val string) (time.Time, error) {
	return dateparse.ParseIn(val, time.UTC)
}

func int64sToFloat64s(vals []int64) []float64 {
	ret := make([]float64, len(vals))
	for i := range vals {
		ret[i] = float64(vals[i])
	}
	return ret
}

// float64s coerces a slice of values to []float64.
// If already []float64, returns shared values, not new values.
func float64s(slice interface{}) ([]float64, error) {
	switch vals := slice.(type) {
	case []float64:
		return vals, nil
	case []int64:
		return int64sToFloat64s(vals), nil
	case []bool:
		ret := make([]float64, len(vals))
		for i := range vals {
			ret[i] = convertBoolToFloat(vals[i])
		}
		return ret, nil
	case []string:
		ret := make([]float64, len(vals))
		for i := range vals {
			f, err := convertStringToFloat(vals[i])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			ret[i] = f
		}
		return ret, nil
	}
	return nil, fmt.Errorf("cannot convert %T to []float64", slice)
}

// strs coerces a slice of values to []string.
// If already []string, returns shared values, not new values.
func strs(slice interface{}) []string {
	switch vals := slice.(type) {
	case []string:
		return vals
	case []time.Time:
		ret := make([]string, len(vals))
		for i := range vals {
			ret[i] = vals[i].Format(time.RFC3339)
		}
		return ret
	case []float64:
		ret := make([]string, len(vals))
		for i := range vals {
			ret[i] = strconv.FormatFloat(vals[i], 'g', -1, 64)
		}
		return ret
	case []int64:
		ret := make([]string, len(vals))
		for i := range vals {
			ret[i] = strconv.FormatInt(vals[i], 10)
		}
		return ret
	case []bool:
		ret := make([]string, len(vals))
		for i := range vals {
			ret[i] = strconv.FormatBool(vals[i])
		}
		return ret
	}
	return nil
}

// dateTimes coerces a slice of values to []time.Time.
// If already []time.Time, returns shared values, not new values.
func dateTimes(slice interface{}) ([]time.Time, error) {
	switch vals := slice.(type) {
	case []time.Time:
		return vals, nil
	case []string:
		ret := make([]time.Time, len(vals))
		for i := range vals {
			t, err := convertStringToDateTime(vals[i])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			ret[i] = t
		}
		return ret, nil
	}
	return nil, fmt.Errorf("cannot convert %T to []time.Time", slice)
}

// Cast returns a new Column with values converted to `dtype`.
// Values that cannot be converted (e.g., "foo" -> Float64) become null, and the returned Column is masked if any value is null.
// Strings are converted to DateTime by recognizing the most common date and time layouts (in UTC unless a zone is supplied).
func (c *Column) Cast(dtype DType) *Column {
	if c.err != nil {
		return columnWithError(c.err)
	}
	if c.DType() == dtype {
		return c.Copy()
	}
	l := c.Len()
	isNull := make([]bool, l)
	copy(isNull, c.isNull)
	var vals interface{}
	switch dtype {
	case Float64:
		ret := make([]float64, l)
		for i := 0; i < l; i++ {
			f, err := float64s(takeOne(c.slice, i))
			if err != nil {
				isNull[i] = true
				continue
			}
			ret[i] = f[0]
		}
		vals = ret
	case Int64:
		ret := make([]int64, l)
		for i := 0; i < l; i++ {
			f, err := float64s(takeOne(c.slice, i))
			if err != nil {
				isNull[i] = true
				continue
			}
			ret[i] = int64(f[0])
		}
		vals = ret
	case String:
		s := strs(c.slice)
		if s == nil {
			return columnWithError(fmt.Errorf("Cast(): %w: cannot convert %v to %v", ErrTypeKind, c.DType(), dtype))
		}
		vals = copySlice(s)
	case DateTime:
		ret := make([]time.Time, l)
		for i := 0; i < l; i++ {
			t, err := dateTimes(takeOne(c.slice, i))
			if err != nil {
				isNull[i] = true
				continue
			}
			ret[i] = t[0]
		}
		vals = ret
	default:
		return columnWithError(fmt.Errorf("Cast(): %w: cannot convert %v to %v", ErrTypeKind, c.DType(), dtype))
	}
	ret := c.derive(vals, isNull)
	if !c.Masked() && !ret.hasNulls() {
		ret.isNull = nil
	}
	return ret
}

// takeOne returns a one-value slice with the value at row i.
func takeOne(slice interface{}, i int) interface{} {
	ret, _ := takeSlice(slice, []int{i})
	return ret
}
