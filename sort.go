package grouptable

import (
	"fmt"
	"sort"
)

// rowSorter sorts row positions by the values in one or more columns.
// Columns are compared in order; later columns only break ties.
type rowSorter struct {
	index      []int
	columns    []*Column
	descending []bool
}

// Len stub
func (srt rowSorter) Len() int {
	return len(srt.index)
}

// Less stub
func (srt rowSorter) Less(i, j int) bool {
	a, b := srt.index[i], srt.index[j]
	for k, col := range srt.columns {
		c := col.compareRows(a, b)
		if c == 0 {
			continue
		}
		// nulls stay at the bottom in either direction
		if srt.descending[k] && !col.isNullAt(a) && !col.isNullAt(b) {
			c = -c
		}
		return c < 0
	}
	return false
}

// Swap stub
func (srt rowSorter) Swap(i, j int) {
	srt.index[i], srt.index[j] = srt.index[j], srt.index[i]
}

// argSortColumns returns the stable order of rows that sorts `columns`.
func argSortColumns(columns []*Column, descending []bool, length int) []int {
	srt := rowSorter{
		index:      makeIntRange(0, length),
		columns:    columns,
		descending: descending,
	}
	sort.Stable(srt)
	return srt.index
}

// ArgSort returns the row positions that sort the Column in ascending order.
// Sorting is stable and null values are sorted to the bottom.
func (c *Column) ArgSort() []int {
	return argSortColumns([]*Column{c}, []bool{false}, c.Len())
}

// ArgSort returns the row positions that sort the Table in ascending order by the columns named `names`.
// If no names are supplied, sorts by every column in order.
// Sorting is stable and null values are sorted to the bottom.
func (t *Table) ArgSort(names ...string) ([]int, error) {
	if t.err != nil {
		return nil, t.err
	}
	if len(names) == 0 {
		names = t.ListColNames()
	}
	by := make([]Sorter, len(names))
	for k := range names {
		by[k] = Sorter{Name: names[k]}
	}
	return t.argSort(by)
}

func (t *Table) argSort(by []Sorter) ([]int, error) {
	columns := make([]*Column, len(by))
	descending := make([]bool, len(by))
	for k := range by {
		pos, err := findColumnWithName(by[k].Name, t.columns)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", k, err)
		}
		columns[k] = t.columns[pos]
		descending[k] = by[k].Descending
	}
	return argSortColumns(columns, descending, t.Len()), nil
}

// Sort returns a new Table with rows sorted by the Sorters, in order of precedence.
// If no Sorters are supplied, sorts in ascending order by every column.
func (t *Table) Sort(by ...Sorter) *Table {
	if t.err != nil {
		return tableWithError(t.err)
	}
	ret := t.Copy()
	err := ret.InPlace().Sort(by...)
	if err != nil {
		return tableWithError(err)
	}
	return ret
}

// Sort sorts the rows in place by the Sorters, in order of precedence.
// If no Sorters are supplied, sorts in ascending order by every column.
// Secondary indexes are rebuilt and any grouping is removed.
func (t *TableMutator) Sort(by ...Sorter) error {
	if t.table.err != nil {
		return t.table.err
	}
	if len(by) == 0 {
		for _, name := range t.table.ListColNames() {
			by = append(by, Sorter{Name: name})
		}
	}
	index, err := t.table.argSort(by)
	if err != nil {
		return fmt.Errorf("Sort(): %w", err)
	}
	for _, col := range t.table.columns {
		vals, err := takeSlice(col.slice, index)
		if err != nil {
			return fmt.Errorf("Sort(): %w", err)
		}
		col.slice = vals
		col.isNull = takeNulls(col.isNull, index)
	}
	t.table.grouping = nil
	if err := t.table.rebuildIndexes(); err != nil {
		return fmt.Errorf("Sort(): %w", err)
	}
	return nil
}
