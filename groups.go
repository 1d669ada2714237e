package grouptable

import (
	"fmt"
)

// groupedData is implemented by *Column and *Table, the two kinds of data that may be grouped.
type groupedData[T any] interface {
	Len() int
	Err() error
	Range(first, last int) T
	Take(index []int) T
	withGrouping(indices []int, keys *Table) T
}

// -- SHARED

// numGroups returns the number of groups described by boundary indices.
// [0, 0] is the boundary of an empty dataset and contains no groups.
func numGroups(indices []int) int {
	if len(indices) < 2 || indices[len(indices)-1] == 0 {
		return 0
	}
	return len(indices) - 1
}

// groupStarts returns the first row of each group.
func groupStarts(indices []int) []int {
	return indices[:numGroups(indices)]
}

// groupAt returns the rows of group `k` as a new dataset whose only group has the key of group `k`.
func groupAt[T groupedData[T]](parent T, indices []int, keys *Table, k int) (T, error) {
	var zero T
	n := numGroups(indices)
	if k < 0 {
		k += n
	}
	if k < 0 || k >= n {
		return zero, fmt.Errorf("%w: group %d not in [0:%d)", ErrIndex, k, n)
	}
	out := parent.Range(indices[k], indices[k+1])
	if err := out.Err(); err != nil {
		return zero, err
	}
	var outKeys *Table
	if keys != nil {
		outKeys = keys.Take([]int{k})
	}
	return out.withGrouping([]int{0, out.Len()}, outKeys), nil
}

// selectGroups returns the union of the groups selected by `item` as a new dataset,
// with boundary indices recomputed from the sizes of the selected groups.
func selectGroups[T groupedData[T]](parent T, indices []int, keys *Table, item interface{}) (T, error) {
	var zero T
	n := numGroups(indices)
	var positions []int
	switch it := item.(type) {
	case int:
		return groupAt(parent, indices, keys, it)
	case Slice:
		start, stop := clipSlice(it, n)
		positions = makeIntRange(start, stop)
	case []bool:
		if len(it) != n {
			return zero, fmt.Errorf("%w: mask length (%d) does not match number of groups (%d)", ErrTypeKind, len(it), n)
		}
		positions = maskToIndex(it)
	case []int:
		positions = make([]int, len(it))
		for i, k := range it {
			if k < 0 {
				k += n
			}
			if k < 0 || k >= n {
				return zero, fmt.Errorf("%w: position %d: group %d not in [0:%d)", ErrTypeKind, i, it[i], n)
			}
			positions[i] = k
		}
	default:
		return zero, fmt.Errorf("%w: index for groups must be int, Slice, []bool or []int, not %T", ErrTypeKind, item)
	}

	rows := make([]int, 0)
	newIndices := []int{0}
	for _, k := range positions {
		rows = append(rows, makeIntRange(indices[k], indices[k+1])...)
		newIndices = append(newIndices, len(rows))
	}
	if len(positions) == 0 {
		newIndices = []int{0, 0}
	}
	out := parent.Take(rows)
	if err := out.Err(); err != nil {
		return zero, err
	}
	var outKeys *Table
	if keys != nil {
		outKeys = keys.Take(positions)
	}
	return out.withGrouping(newIndices, outKeys), nil
}

// clipSlice converts a Slice into a range of group positions within [0, n].
func clipSlice(s Slice, n int) (start, stop int) {
	clip := func(i int) int {
		if i < 0 {
			i += n
		}
		if i < 0 {
			return 0
		}
		if i > n {
			return n
		}
		return i
	}
	start, stop = clip(s.Start), clip(s.Stop)
	if stop < start {
		stop = start
	}
	return start, stop
}

// -- COLUMN GROUPS

// Groups returns the group view of the Column.
// A Column that belongs to a Table always reports the groups of the Table.
// An ungrouped Column has a single group with every row and no keys.
func (c *Column) Groups() *ColumnGroups {
	g := &ColumnGroups{parentColumn: c, parentTable: c.parent}
	if c.grouping != nil {
		g.indices = c.grouping.indices
		g.keys = c.grouping.keys
	}
	return g
}

// Indices returns the boundary indices of the groups: group i has rows [Indices()[i], Indices()[i+1]).
// The returned slice must not be modified.
func (g *ColumnGroups) Indices() []int {
	if g.parentTable != nil {
		return g.parentTable.Groups().Indices()
	}
	if g.indices == nil {
		return []int{0, g.parentColumn.Len()}
	}
	return g.indices
}

// Keys returns one key row per group, or nil if the data has not been grouped.
func (g *ColumnGroups) Keys() *Table {
	if g.parentTable != nil {
		return g.parentTable.Groups().Keys()
	}
	return g.keys
}

// Len returns the number of groups.
func (g *ColumnGroups) Len() int {
	return numGroups(g.Indices())
}

func (g *ColumnGroups) String() string {
	return fmt.Sprintf("<ColumnGroups indices=%v>", g.Indices())
}

// Group returns the Column values in group `k`. Negative values count back from the last group.
func (g *ColumnGroups) Group(k int) *Column {
	if err := g.parentColumn.Err(); err != nil {
		return columnWithError(err)
	}
	ret, err := groupAt(g.parentColumn, g.Indices(), g.Keys(), k)
	if err != nil {
		return columnWithError(fmt.Errorf("Group(): %w", err))
	}
	return ret
}

// Select returns the Column values in the groups selected by `item`, which may be:
//
// * int - a single group, as in Group()
//
// * Slice - a range of groups
//
// * []bool - a mask with one value per group
//
// * []int - group positions, in the order supplied
//
// The returned Column is grouped by the selected groups.
func (g *ColumnGroups) Select(item interface{}) *Column {
	if err := g.parentColumn.Err(); err != nil {
		return columnWithError(err)
	}
	ret, err := selectGroups(g.parentColumn, g.Indices(), g.Keys(), item)
	if err != nil {
		return columnWithError(fmt.Errorf("Select(): %w", err))
	}
	return ret
}

// Iterator returns an iterator which may be used to access the Column values in each group.
// Every iterator keeps its own position.
func (g *ColumnGroups) Iterator() *ColumnGroupsIterator {
	return &ColumnGroupsIterator{
		current: -1,
		groups:  g,
	}
}

// Next advances to the next group. Returns false at end of iteration.
func (iter *ColumnGroupsIterator) Next() bool {
	iter.current++
	return iter.current < iter.groups.Len()
}

// Group returns the Column values in the current group.
func (iter *ColumnGroupsIterator) Group() *Column {
	indices := iter.groups.Indices()
	return iter.groups.parentColumn.Range(indices[iter.current], indices[iter.current+1])
}

// Index returns the position of the current group.
func (iter *ColumnGroupsIterator) Index() int {
	return iter.current
}

// -- TABLE GROUPS

// Groups returns the group view of the Table.
// An ungrouped Table has a single group with every row and no keys.
func (t *Table) Groups() *TableGroups {
	g := &TableGroups{parentTable: t}
	if t.grouping != nil {
		g.indices = t.grouping.indices
		g.keys = t.grouping.keys
	}
	return g
}

// Indices returns the boundary indices of the groups: group i has rows [Indices()[i], Indices()[i+1]).
// The returned slice must not be modified.
func (g *TableGroups) Indices() []int {
	if g.indices == nil {
		return []int{0, g.parentTable.Len()}
	}
	return g.indices
}

// Keys returns one key row per group, or nil if the Table has not been grouped.
func (g *TableGroups) Keys() *Table {
	return g.keys
}

// KeyColNames returns the names of the columns used as keys for grouping,
// or an empty slice if the keys were not columns of the grouped Table.
func (g *TableGroups) KeyColNames() []string {
	if g.keys == nil || !g.keys.groupedByTableCols {
		return []string{}
	}
	return g.keys.ListColNames()
}

// Len returns the number of groups.
func (g *TableGroups) Len() int {
	return numGroups(g.Indices())
}

func (g *TableGroups) String() string {
	return fmt.Sprintf("<TableGroups indices=%v>", g.Indices())
}

// Group returns the Table rows in group `k`. Negative values count back from the last group.
func (g *TableGroups) Group(k int) *Table {
	if err := g.parentTable.Err(); err != nil {
		return tableWithError(err)
	}
	ret, err := groupAt(g.parentTable, g.Indices(), g.keys, k)
	if err != nil {
		return tableWithError(fmt.Errorf("Group(): %w", err))
	}
	return ret
}

// Select returns the Table rows in the groups selected by `item`, which may be:
//
// * int - a single group, as in Group()
//
// * Slice - a range of groups
//
// * []bool - a mask with one value per group
//
// * []int - group positions, in the order supplied
//
// The returned Table is grouped by the selected groups.
func (g *TableGroups) Select(item interface{}) *Table {
	if err := g.parentTable.Err(); err != nil {
		return tableWithError(err)
	}
	ret, err := selectGroups(g.parentTable, g.Indices(), g.keys, item)
	if err != nil {
		return tableWithError(fmt.Errorf("Select(): %w", err))
	}
	return ret
}

// Iterator returns an iterator which may be used to access the Table rows in each group.
// Every iterator keeps its own position.
func (g *TableGroups) Iterator() *TableGroupsIterator {
	return &TableGroupsIterator{
		current: -1,
		groups:  g,
	}
}

// Next advances to the next group. Returns false at end of iteration.
func (iter *TableGroupsIterator) Next() bool {
	iter.current++
	return iter.current < iter.groups.Len()
}

// Group returns the Table rows in the current group.
func (iter *TableGroupsIterator) Group() *Table {
	indices := iter.groups.Indices()
	return iter.groups.parentTable.Range(indices[iter.current], indices[iter.current+1])
}

// Index returns the position of the current group.
func (iter *TableGroupsIterator) Index() int {
	return iter.current
}
