package grouptable

import "fmt"

// Filter returns the Column values in the groups for which `fn` returns true.
// `fn` is called once per group with the Column values of that group.
// The returned Column is grouped by the groups that were kept.
func (g *ColumnGroups) Filter(fn func(group *Column) bool) *Column {
	if err := g.parentColumn.Err(); err != nil {
		return columnWithError(err)
	}
	mask := make([]bool, g.Len())
	iter := g.Iterator()
	for iter.Next() {
		group := iter.Group()
		if err := group.Err(); err != nil {
			return columnWithError(fmt.Errorf("Filter(): group %d: %w", iter.Index(), err))
		}
		mask[iter.Index()] = fn(group)
	}
	return g.Select(mask)
}

// Filter returns the Table rows in the groups for which `fn` returns true.
// `fn` is called once per group with the Table rows of that group and the names of the key columns
// (see KeyColNames), so that key columns may be skipped when testing values.
// The returned Table is grouped by the groups that were kept.
func (g *TableGroups) Filter(fn func(group *Table, keyColNames []string) bool) *Table {
	if err := g.parentTable.Err(); err != nil {
		return tableWithError(err)
	}
	keyColNames := g.KeyColNames()
	mask := make([]bool, g.Len())
	iter := g.Iterator()
	for iter.Next() {
		group := iter.Group()
		if err := group.Err(); err != nil {
			return tableWithError(fmt.Errorf("Filter(): group %d: %w", iter.Index(), err))
		}
		mask[iter.Index()] = fn(group, keyColNames)
	}
	return g.Select(mask)
}
