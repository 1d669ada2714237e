package grouptable

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// Reduce functions supported out of the box. Sum, Mean, Min and Max are vectorized for numeric Columns.
var (
	Sum = GroupReduceFn{Name: "sum", Kind: ReduceSum, Float64: sum}
	Mean = GroupReduceFn{Name: "mean", Kind: ReduceMean, Float64: mean}
	Min = GroupReduceFn{Name: "min", Kind: ReduceSegmented, Float64: minimum,
		SegmentedFloat64: func(vals []float64, starts []int) []float64 { return reduceAt(vals, starts, smaller[float64]) },
		SegmentedInt64:   func(vals []int64, starts []int) []int64 { return reduceAt(vals, starts, smaller[int64]) }}
	Max = GroupReduceFn{Name: "max", Kind: ReduceSegmented, Float64: maximum,
		SegmentedFloat64: func(vals []float64, starts []int) []float64 { return reduceAt(vals, starts, larger[float64]) },
		SegmentedInt64:   func(vals []int64, starts []int) []int64 { return reduceAt(vals, starts, larger[int64]) }}
	Median   = GroupReduceFn{Name: "median", Float64: median}
	Std      = GroupReduceFn{Name: "std", Float64: std}
	Count    = GroupReduceFn{Name: "count", Interface: count}
	NUnique  = GroupReduceFn{Name: "nunique", Interface: nunique}
	First    = GroupReduceFn{Name: "first", Interface: first}
	Last     = GroupReduceFn{Name: "last", Interface: last}
	Earliest = GroupReduceFn{Name: "earliest", DateTime: earliest}
	Latest   = GroupReduceFn{Name: "latest", DateTime: latest}
)

// Aggregate reduces the values in each group to a single value with `fn`.
// The returned Column has one value per group and the same info as the original.
// If the values cannot be reduced, returns a Column with an error wrapping ErrTypeKind and the cause.
func (g *ColumnGroups) Aggregate(fn GroupReduceFn) *Column {
	c := g.parentColumn
	if c.err != nil {
		return columnWithError(c.err)
	}
	ret, err := aggregateColumn(c, g.Indices(), fn)
	if err != nil {
		return columnWithError(fmt.Errorf("Aggregate(): %w: cannot aggregate column (%v) with type (%v): %w",
			ErrTypeKind, c.info.Name, c.DType(), err))
	}
	ret.info = c.info.copy()
	return ret
}

// Aggregate reduces each group to a single row. Key columns keep the first value in each group;
// every other column is reduced with `fn` (see ColumnGroups.Aggregate).
//
// A column that cannot be reduced is logged as a warning and left out of the returned Table,
// unless AggregateStrict is supplied. The returned Table has the same meta as the original.
func (g *TableGroups) Aggregate(fn GroupReduceFn, options ...AggregateOption) *Table {
	t := g.parentTable
	if t.err != nil {
		return tableWithError(t.err)
	}
	cfg := newAggregateConfig(options)
	starts := groupStarts(g.Indices())
	keyColNames := g.KeyColNames()
	cols := make([]*Column, 0, len(t.columns))
	for _, col := range t.columns {
		var newCol *Column
		if containsString(keyColNames, col.info.Name) {
			newCol = col.Take(starts)
		} else {
			newCol = col.Groups().Aggregate(fn)
		}
		if err := newCol.Err(); err != nil {
			if cfg.strict {
				return tableWithError(fmt.Errorf("Aggregate(): column %v: %w", col.info.Name, err))
			}
			cfg.logger.Warn().
				Str("column", col.info.Name).
				Str("dtype", col.DType().String()).
				Str("reduce", fn.Name).
				Err(err).
				Msg("dropping column from aggregate")
			continue
		}
		cols = append(cols, newCol)
	}
	ret := adoptColumns(cols)
	ret.meta = copyMeta(t.meta)
	return ret
}

// aggregateColumn reduces each group in c, preferring a segmented reduction.
// Panics in user functions are returned as errors.
func aggregateColumn(c *Column, indices []int, fn GroupReduceFn) (ret *Column, err error) {
	defer func() {
		if r := recover(); r != nil {
			ret, err = nil, fmt.Errorf("reduce function panicked: %v", r)
		}
	}()
	if !segmentable(c.slice, fn) {
		return scalarReduce(c, indices, fn)
	}
	if c.Masked() {
		return maskedSegmentedReduce(c, indices, fn)
	}
	vals, err := segmentedReduce(c.slice, indices, fn)
	if err != nil {
		return nil, err
	}
	return &Column{slice: vals}, nil
}

// segmentable reports whether `fn` has a segmented implementation for values of this type.
func segmentable(slice interface{}, fn GroupReduceFn) bool {
	switch fn.Kind {
	case ReduceSum, ReduceMean:
		switch slice.(type) {
		case []float64, []int64:
			return true
		}
	case ReduceSegmented:
		switch slice.(type) {
		case []float64:
			return fn.SegmentedFloat64 != nil
		case []int64:
			return fn.SegmentedInt64 != nil
		}
	}
	return false
}

// segmentedReduce reduces every group in a single pass over segmentable values.
func segmentedReduce(slice interface{}, indices []int, fn GroupReduceFn) (interface{}, error) {
	starts := groupStarts(indices)
	var ret interface{}
	switch vals := slice.(type) {
	case []float64:
		switch fn.Kind {
		case ReduceSum:
			ret = reduceAt(vals, starts, add[float64])
		case ReduceMean:
			ret = divideByCounts(reduceAt(vals, starts, add[float64]), indices)
		default:
			ret = fn.SegmentedFloat64(vals, starts)
		}
	case []int64:
		switch fn.Kind {
		case ReduceSum:
			ret = reduceAt(vals, starts, add[int64])
		case ReduceMean:
			ret = divideByCounts(int64sToFloat64s(reduceAt(vals, starts, add[int64])), indices)
		default:
			ret = fn.SegmentedInt64(vals, starts)
		}
	}
	n := numGroups(indices)
	if l := reflect.ValueOf(ret).Len(); l != n {
		return nil, fmt.Errorf("segmented %v returned %d values for %d groups", fn.Name, l, n)
	}
	return ret, nil
}

// maskedSegmentedReduce runs a segmented reduction over the non-null rows of a masked Column,
// so the result has the same dtype as for an unmasked Column. An all-null group reduces to null.
func maskedSegmentedReduce(c *Column, indices []int, fn GroupReduceFn) (*Column, error) {
	n := numGroups(indices)
	isNull := make([]bool, n)
	rows := make([]int, 0, c.Len())
	validIndices := []int{0}
	validGroups := make([]int, 0, n)
	for k := 0; k < n; k++ {
		valid := c.validRows(indices[k], indices[k+1])
		if len(valid) == 0 {
			isNull[k] = true
			continue
		}
		rows = append(rows, valid...)
		validIndices = append(validIndices, len(rows))
		validGroups = append(validGroups, k)
	}
	if len(validGroups) == 0 {
		validIndices = []int{0, 0}
	}
	vals, err := takeSlice(c.slice, rows)
	if err != nil {
		return nil, err
	}
	reduced, err := segmentedReduce(vals, validIndices, fn)
	if err != nil {
		return nil, err
	}
	src := reflect.ValueOf(reduced)
	ret := reflect.MakeSlice(src.Type(), n, n)
	for i, k := range validGroups {
		ret.Index(k).Set(src.Index(i))
	}
	return &Column{slice: ret.Interface(), isNull: isNull}, nil
}

type number interface {
	~int64 | ~float64
}

func add[T number](a, b T) T {
	return a + b
}

func smaller[T number](a, b T) T {
	return min(a, b)
}

func larger[T number](a, b T) T {
	return max(a, b)
}

// reduceAt applies `op` cumulatively to the values of each group, where group k starts at starts[k]
// and ends at the next start (or the end of vals).
func reduceAt[T number](vals []T, starts []int, op func(a, b T) T) []T {
	ret := make([]T, len(starts))
	for k, start := range starts {
		stop := len(vals)
		if k+1 < len(starts) {
			stop = starts[k+1]
		}
		acc := vals[start]
		for i := start + 1; i < stop; i++ {
			acc = op(acc, vals[i])
		}
		ret[k] = acc
	}
	return ret
}

// divideByCounts divides each value in place by the size of its group and returns the same slice.
func divideByCounts(vals []float64, indices []int) []float64 {
	for k := range vals {
		vals[k] /= float64(indices[k+1] - indices[k])
	}
	return vals
}

// validRows returns the non-null row positions in [first, last).
func (c *Column) validRows(first, last int) []int {
	index := make([]int, 0, last-first)
	for i := first; i < last; i++ {
		if !c.isNullAt(i) {
			index = append(index, i)
		}
	}
	return index
}

// scalarReduce calls the first non-nil function in `fn` once per group with the non-null group values.
// An all-null group reduces to null.
func scalarReduce(c *Column, indices []int, fn GroupReduceFn) (*Column, error) {
	n := numGroups(indices)
	isNull := make([]bool, n)
	var vals interface{}
	switch {
	case fn.Float64 != nil:
		if c.DType() == String {
			return nil, fmt.Errorf("%v values cannot be reduced by %v; Cast() the column first", c.DType(), fn.Name)
		}
		ret := make([]float64, n)
		for k := 0; k < n; k++ {
			group, err := c.groupValues(indices[k], indices[k+1], &isNull[k])
			if err != nil {
				return nil, err
			}
			if isNull[k] {
				continue
			}
			floats, err := float64s(group)
			if err != nil {
				return nil, err
			}
			ret[k] = fn.Float64(floats)
		}
		vals = ret
	case fn.String != nil:
		ret := make([]string, n)
		for k := 0; k < n; k++ {
			group, err := c.groupValues(indices[k], indices[k+1], &isNull[k])
			if err != nil {
				return nil, err
			}
			if isNull[k] {
				continue
			}
			ret[k] = fn.String(strs(group))
		}
		vals = ret
	case fn.DateTime != nil:
		ret := make([]time.Time, n)
		for k := 0; k < n; k++ {
			group, err := c.groupValues(indices[k], indices[k+1], &isNull[k])
			if err != nil {
				return nil, err
			}
			if isNull[k] {
				continue
			}
			times, err := dateTimes(group)
			if err != nil {
				return nil, err
			}
			ret[k] = fn.DateTime(times)
		}
		vals = ret
	case fn.Interface != nil:
		outputs := make([]interface{}, n)
		for k := 0; k < n; k++ {
			group, err := c.groupValues(indices[k], indices[k+1], &isNull[k])
			if err != nil {
				return nil, err
			}
			if isNull[k] {
				continue
			}
			outputs[k], err = fn.Interface(group)
			if err != nil {
				return nil, err
			}
		}
		var err error
		vals, err = makeSliceFromInterfaces(outputs, isNull, c.slice)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no reduce function provided")
	}
	ret := &Column{slice: vals}
	if c.Masked() || anyTrue(isNull) {
		ret.isNull = isNull
	}
	return ret, nil
}

// groupValues returns the non-null values in rows [first, last) and sets `allNull` if there are none.
func (c *Column) groupValues(first, last int, allNull *bool) (interface{}, error) {
	rows := c.validRows(first, last)
	if len(rows) == 0 {
		*allNull = true
		return nil, nil
	}
	return takeSlice(c.slice, rows)
}

func anyTrue(mask []bool) bool {
	for _, b := range mask {
		if b {
			return true
		}
	}
	return false
}

// makeSliceFromInterfaces converts the outputs of an Interface reduce function into a supported slice.
// All non-null outputs must have the same type. If every output is null, the slice has the same type as `fallback`.
func makeSliceFromInterfaces(outputs []interface{}, isNull []bool, fallback interface{}) (interface{}, error) {
	var typ reflect.Type
	for i := range outputs {
		if isNull[i] {
			continue
		}
		if outputs[i] == nil {
			return nil, fmt.Errorf("group %d: reduce function returned nil", i)
		}
		if typ == nil {
			typ = reflect.TypeOf(outputs[i])
		} else if reflect.TypeOf(outputs[i]) != typ {
			return nil, fmt.Errorf("group %d: reduce function returned %T, not %v", i, outputs[i], typ)
		}
	}
	if typ == nil {
		return reflect.MakeSlice(reflect.TypeOf(fallback), len(outputs), len(outputs)).Interface(), nil
	}
	ret := reflect.MakeSlice(reflect.SliceOf(typ), len(outputs), len(outputs))
	for i := range outputs {
		if !isNull[i] {
			ret.Index(i).Set(reflect.ValueOf(outputs[i]))
		}
	}
	return normalizeSlice(ret.Interface())
}

// -- REDUCE FUNCTIONS

func sum(vals []float64) float64 {
	var ret float64
	for _, v := range vals {
		ret += v
	}
	return ret
}

func mean(vals []float64) float64 {
	return sum(vals) / float64(len(vals))
}

func median(vals []float64) float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// std is the population standard deviation.
func std(vals []float64) float64 {
	m := mean(vals)
	var variance float64
	for _, v := range vals {
		variance += math.Pow(v-m, 2)
	}
	return math.Sqrt(variance / float64(len(vals)))
}

func minimum(vals []float64) float64 {
	ret := vals[0]
	for _, v := range vals[1:] {
		ret = min(ret, v)
	}
	return ret
}

func maximum(vals []float64) float64 {
	ret := vals[0]
	for _, v := range vals[1:] {
		ret = max(ret, v)
	}
	return ret
}

func earliest(vals []time.Time) time.Time {
	ret := vals[0]
	for _, v := range vals[1:] {
		if v.Before(ret) {
			ret = v
		}
	}
	return ret
}

func latest(vals []time.Time) time.Time {
	ret := vals[0]
	for _, v := range vals[1:] {
		if v.After(ret) {
			ret = v
		}
	}
	return ret
}

func count(vals interface{}) (interface{}, error) {
	return int64(reflect.ValueOf(vals).Len()), nil
}

func nunique(vals interface{}) (interface{}, error) {
	v := reflect.ValueOf(vals)
	seen := make(map[interface{}]bool, v.Len())
	for i := 0; i < v.Len(); i++ {
		val := v.Index(i).Interface()
		if t, ok := val.(time.Time); ok {
			val = t.UnixNano()
		}
		seen[val] = true
	}
	return int64(len(seen)), nil
}

func first(vals interface{}) (interface{}, error) {
	return reflect.ValueOf(vals).Index(0).Interface(), nil
}

func last(vals interface{}) (interface{}, error) {
	v := reflect.ValueOf(vals)
	return v.Index(v.Len() - 1).Interface(), nil
}
