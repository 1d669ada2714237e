package grouptable

import (
	"fmt"
)

// -- CONSTRUCTORS

// NewTable creates a new Table from copies of `columns`.
// All columns must have the same length and unique names.
// Columns without a name are named by position (e.g., col0, col1).
func NewTable(columns ...*Column) *Table {
	cols := make([]*Column, len(columns))
	names := make(map[string]bool, len(columns))
	for k, col := range columns {
		if col == nil {
			return tableWithError(fmt.Errorf("NewTable(): position %d: column is nil", k))
		}
		if err := col.Err(); err != nil {
			return tableWithError(fmt.Errorf("NewTable(): position %d: %w", k, err))
		}
		if k > 0 && col.Len() != cols[0].Len() {
			return tableWithError(fmt.Errorf("NewTable(): position %d: %w: all columns must have same length as column 0 (%d != %d)",
				k, ErrLengthMismatch, col.Len(), cols[0].Len()))
		}
		cols[k] = col.derive(copySlice(col.slice), takeNulls(col.isNull, makeIntRange(0, len(col.isNull))))
		if cols[k].info.Name == "" {
			cols[k].info.Name = fmt.Sprintf("col%d", k)
		}
		if names[cols[k].info.Name] {
			return tableWithError(fmt.Errorf("NewTable(): position %d: duplicate column name (%v)", k, cols[k].info.Name))
		}
		names[cols[k].info.Name] = true
	}
	return adoptColumns(cols)
}

// adoptColumns returns a Table that owns `cols` without copying them.
func adoptColumns(cols []*Column) *Table {
	ret := &Table{columns: cols}
	for _, col := range cols {
		col.parent = ret
		col.grouping = nil
	}
	return ret
}

// viewColumns returns a Table that references `cols` without taking ownership.
// It is used for key tables that are only read before being copied.
func viewColumns(cols []*Column) *Table {
	return &Table{columns: cols}
}

// SetMeta replaces the table-level meta and returns the same Table.
func (t *Table) SetMeta(meta map[string]interface{}) *Table {
	t.meta = copyMeta(meta)
	return t
}

// Meta returns the table-level meta. It is shared with the Table.
func (t *Table) Meta() map[string]interface{} {
	return t.meta
}

// Err returns the most recent error attached to the Table, if any.
func (t *Table) Err() error {
	return t.err
}

// Len returns the number of rows in each column of the Table.
func (t *Table) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// NumColumns returns the number of columns in the Table.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Masked returns true if any column in the Table is masked.
func (t *Table) Masked() bool {
	for _, col := range t.columns {
		if col.Masked() {
			return true
		}
	}
	return false
}

// ListColNames returns the name of every column in the Table, in order.
func (t *Table) ListColNames() []string {
	return listNames(t.columns)
}

// HasCols returns an error if the Table does not contain all of the `colNames` supplied.
func (t *Table) HasCols(colNames ...string) error {
	for _, name := range colNames {
		_, err := findColumnWithName(name, t.columns)
		if err != nil {
			return fmt.Errorf("HasCols(): %w", err)
		}
	}
	return nil
}

// Col returns the column named `name`. The Column is shared with the Table and reports the Table's grouping.
func (t *Table) Col(name string) *Column {
	if t.err != nil {
		return columnWithError(t.err)
	}
	k, err := findColumnWithName(name, t.columns)
	if err != nil {
		return columnWithError(fmt.Errorf("Col(): %w", err))
	}
	return t.columns[k]
}

// Cols returns every column in the Table, in order. The Columns are shared with the Table.
func (t *Table) Cols() []*Column {
	ret := make([]*Column, len(t.columns))
	copy(ret, t.columns)
	return ret
}

// GroupedByTableCols returns true if the Table holds group keys taken from the columns of the grouped Table.
func (t *Table) GroupedByTableCols() bool {
	return t.groupedByTableCols
}

// Copy returns a new Table with identical values, meta, secondary indexes and grouping as the original but no shared objects
// (except the group keys, which are read-only).
func (t *Table) Copy() *Table {
	if t.err != nil {
		return tableWithError(t.err)
	}
	cols := make([]*Column, len(t.columns))
	for k, col := range t.columns {
		cols[k] = col.Copy()
	}
	ret := adoptColumns(cols)
	ret.meta = copyMeta(t.meta)
	ret.groupedByTableCols = t.groupedByTableCols
	ret.grouping = t.grouping
	ret.indexes = make([]*Index, len(t.indexes))
	for k, index := range t.indexes {
		ret.indexes[k] = index.copy()
	}
	return ret
}

// Take returns a new Table containing only the rows at the `index` positions, in index order.
// The new Table keeps the meta of the original but has no secondary indexes or grouping.
func (t *Table) Take(index []int) *Table {
	if t.err != nil {
		return tableWithError(t.err)
	}
	cols := make([]*Column, len(t.columns))
	for k, col := range t.columns {
		cols[k] = col.Take(index)
		if err := cols[k].Err(); err != nil {
			return tableWithError(fmt.Errorf("Take(): column %v: %w", col.info.Name, err))
		}
	}
	ret := adoptColumns(cols)
	ret.meta = copyMeta(t.meta)
	ret.groupedByTableCols = t.groupedByTableCols
	return ret
}

// Range returns a new Table with the rows starting at `first` and ending before `last`.
func (t *Table) Range(first, last int) *Table {
	if t.err != nil {
		return tableWithError(t.err)
	}
	if first < 0 || last > t.Len() || first > last {
		return tableWithError(fmt.Errorf("Range(): %w: [%d:%d] with length %d", ErrIndex, first, last, t.Len()))
	}
	return t.Take(makeIntRange(first, last))
}

// Mask returns a new Table with only the rows where `mask` is true.
func (t *Table) Mask(mask []bool) *Table {
	if t.err != nil {
		return tableWithError(t.err)
	}
	if len(mask) != t.Len() {
		return tableWithError(fmt.Errorf("Mask(): %w: (%d != %d)", ErrLengthMismatch, len(mask), t.Len()))
	}
	return t.Take(maskToIndex(mask))
}

// withGrouping attaches boundary indices and group keys to t.
func (t *Table) withGrouping(indices []int, keys *Table) *Table {
	t.grouping = &grouping{indices: indices, keys: keys}
	return t
}

// -- SECONDARY INDEXES

// AddIndex adds a secondary index on the columns named `names`.
// If no names are supplied, the index covers every column in order.
// GroupBy() on exactly the same column names uses the index instead of sorting the Table.
func (t *Table) AddIndex(names ...string) error {
	if t.err != nil {
		return t.err
	}
	if len(names) == 0 {
		names = t.ListColNames()
	}
	sorted, err := t.ArgSort(names...)
	if err != nil {
		return fmt.Errorf("AddIndex(): %w", err)
	}
	idxNames := make([]string, len(names))
	copy(idxNames, names)
	t.indexes = append(t.indexes, &Index{names: idxNames, sorted: sorted})
	return nil
}

// Indexes returns the secondary indexes on the Table.
func (t *Table) Indexes() []*Index {
	ret := make([]*Index, len(t.indexes))
	copy(ret, t.indexes)
	return ret
}

// indexByNames returns the secondary index on exactly `names`, or nil.
func (t *Table) indexByNames(names []string) *Index {
	for _, index := range t.indexes {
		if equalStrings(index.names, names) {
			return index
		}
	}
	return nil
}

// rebuildIndexes re-sorts every secondary index after the rows of t have been reordered.
func (t *Table) rebuildIndexes() error {
	for _, index := range t.indexes {
		sorted, err := t.ArgSort(index.names...)
		if err != nil {
			return err
		}
		index.sorted = sorted
	}
	return nil
}

// ColNames returns the names of the indexed columns.
func (index *Index) ColNames() []string {
	ret := make([]string, len(index.names))
	copy(ret, index.names)
	return ret
}

// SortedData returns the row positions that sort the Table by the indexed columns.
func (index *Index) SortedData() []int {
	ret := make([]int, len(index.sorted))
	copy(ret, index.sorted)
	return ret
}

func (index *Index) copy() *Index {
	return &Index{names: index.ColNames(), sorted: index.SortedData()}
}

// -- MUTATORS

// InPlace returns a TableMutator, which contains most of the same methods as Table but never returns a new Table.
// If you want to save memory and improve performance and do not need to preserve the original Table, consider using InPlace().
func (t *Table) InPlace() *TableMutator {
	return &TableMutator{table: t}
}
