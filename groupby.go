package grouptable

import (
	"fmt"
)

// GroupBy returns a copy of the Table sorted by `keys` and grouped into contiguous runs of identical keys.
// The groups are available from Groups() on the returned Table.
//
// `keys` may be:
//
// * string or []string - the name(s) of key columns in the Table. Key columns may not contain null values.
//
// * *Column, *Table or a supported slice - external keys with one row per Table row. External keys may not contain null values either.
//
// If the Table has a secondary index on exactly the key column names, the index order is used instead of sorting
// (unless GroupByIgnoreIndex is supplied). The returned Table never has secondary indexes.
func (t *Table) GroupBy(keys interface{}, options ...GroupByOption) *Table {
	if t.err != nil {
		return tableWithError(t.err)
	}
	cfg := newGroupByConfig(options)
	tableKeys, names, err := t.extractKeys(keys)
	if err != nil {
		return tableWithError(fmt.Errorf("GroupBy(): %w", err))
	}

	var idxSort []int
	if index := t.indexByNames(names); names != nil && index != nil && !cfg.ignoreIndex {
		cfg.logger.Debug().Strs("keys", names).Msg("using secondary index")
		idxSort = index.SortedData()
	} else {
		idxSort = argSortColumns(tableKeys.columns, make([]bool, len(tableKeys.columns)), tableKeys.Len())
	}

	out := t.Take(idxSort)
	if err := out.Err(); err != nil {
		return tableWithError(fmt.Errorf("GroupBy(): %w", err))
	}
	sortedKeys := tableKeys.Take(idxSort)
	indices, outKeys := partition(sortedKeys)
	// keys drawn from the Table's own columns are passed through by Aggregate()
	outKeys.groupedByTableCols = names != nil
	cfg.logger.Debug().Int("rows", out.Len()).Int("groups", numGroups(indices)).Msg("grouped table")
	return out.withGrouping(indices, outKeys)
}

// extractKeys resolves `keys` into a key Table with one row per row in t.
// If the keys are columns of t, also returns their names.
func (t *Table) extractKeys(keys interface{}) (*Table, []string, error) {
	var names []string
	switch k := keys.(type) {
	case string:
		names = []string{k}
	case []string:
		if len(k) == 0 {
			return nil, nil, fmt.Errorf("%w: key column names cannot be empty", ErrTypeKind)
		}
		names = k
	default:
		tableKeys, err := externalKeys(keys, t.Len())
		return tableKeys, nil, err
	}

	cols := make([]*Column, len(names))
	for k, name := range names {
		pos, err := findColumnWithName(name, t.columns)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: Table does not have key column (%v)", ErrMissingColumn, name)
		}
		if t.columns[pos].hasNulls() {
			return nil, nil, fmt.Errorf("%w: missing values in key column (%v) are not allowed", ErrInvalidKey, name)
		}
		cols[k] = t.columns[pos]
	}
	retNames := make([]string, len(names))
	copy(retNames, names)
	return viewColumns(cols), retNames, nil
}

// externalKeys converts a *Column, *Table or supported slice into a key Table that must have `length` rows.
func externalKeys(keys interface{}, length int) (*Table, error) {
	var tableKeys *Table
	switch k := keys.(type) {
	case *Table:
		if k == nil {
			return nil, fmt.Errorf("%w: keys cannot be nil", ErrTypeKind)
		}
		if err := k.Err(); err != nil {
			return nil, err
		}
		tableKeys = viewColumns(k.columns)
	case *Column:
		if k == nil {
			return nil, fmt.Errorf("%w: keys cannot be nil", ErrTypeKind)
		}
		if err := k.Err(); err != nil {
			return nil, err
		}
		tableKeys = viewColumns([]*Column{k})
	default:
		if !isSlice(keys) {
			return nil, fmt.Errorf("%w: keys must be string, []string, *Column, *Table or slice, not %T", ErrTypeKind, keys)
		}
		col := NewColumn("key", keys)
		if err := col.Err(); err != nil {
			return nil, err
		}
		tableKeys = viewColumns([]*Column{col})
	}
	if tableKeys.Len() != length {
		return nil, fmt.Errorf("%w: keys length (%d) does not match data length (%d)", ErrLengthMismatch, tableKeys.Len(), length)
	}
	for _, col := range tableKeys.columns {
		if col.hasNulls() {
			return nil, fmt.Errorf("%w: missing values in keys (%v) are not allowed", ErrInvalidKey, col.info.Name)
		}
	}
	return tableKeys, nil
}

// partition finds the boundaries between runs of identical rows in sorted keys
// and returns the boundary indices plus the first key row of each run.
// Empty keys return indices [0, 0] and empty group keys.
func partition(sortedKeys *Table) (indices []int, groupKeys *Table) {
	n := sortedKeys.Len()
	if n == 0 {
		return []int{0, 0}, sortedKeys
	}
	indices = []int{0}
	for i := 1; i < n; i++ {
		if !sortedKeys.rowsEqual(i, i-1) {
			indices = append(indices, i)
		}
	}
	indices = append(indices, n)
	return indices, sortedKeys.Take(indices[:len(indices)-1])
}

// GroupBy returns a copy of the Column sorted by `keys` and grouped into contiguous runs of identical keys.
// The groups are available from Groups() on the returned Column.
//
// `keys` may be a *Column, *Table or supported slice with one row per Column value, and may not contain null values.
// The returned Column does not belong to any Table.
func (c *Column) GroupBy(keys interface{}) *Column {
	if c.err != nil {
		return columnWithError(c.err)
	}
	tableKeys, err := externalKeys(keys, c.Len())
	if err != nil {
		return columnWithError(fmt.Errorf("GroupBy(): %w", err))
	}
	idxSort := argSortColumns(tableKeys.columns, make([]bool, len(tableKeys.columns)), tableKeys.Len())
	out := c.Take(idxSort)
	indices, outKeys := partition(tableKeys.Take(idxSort))
	return out.withGrouping(indices, outKeys)
}
