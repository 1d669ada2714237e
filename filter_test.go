package grouptable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPositive(c *Column) bool {
	vals, err := float64s(c.Values())
	if err != nil {
		return false
	}
	for _, v := range vals {
		if v <= 0 {
			return false
		}
	}
	return true
}

func TestColumnGroups_Filter(t *testing.T) {
	c := NewColumn("foo", []float64{1, 2, -3, 4, 5, 6}).GroupBy(testKeys)
	got := c.Groups().Filter(allPositive)
	require.NoError(t, got.Err())
	assert.Equal(t, []float64{1, 2, 4, 5, 6}, got.Values())
	assert.Equal(t, []int{0, 2, 5}, got.Groups().Indices())
	assert.Equal(t, []int64{1, 3}, got.Groups().Keys().Col("key").Values())

	none := c.Groups().Filter(func(*Column) bool { return false })
	require.NoError(t, none.Err())
	assert.Equal(t, 0, none.Len())
	assert.Equal(t, []int{0, 0}, none.Groups().Indices())
	assert.Equal(t, 0, none.Groups().Len())
}

func TestTableGroups_Filter(t *testing.T) {
	tbl := NewTable(
		NewColumn("key", []int{-1, -1, 2, 3, 3, 3}),
		NewColumn("a", []float64{1, 2, 3, 4, -5, 6}),
		NewColumn("b", []int{1, 1, 1, 1, 1, 1}),
	).GroupBy("key")
	require.NoError(t, tbl.Err())

	var seenKeyColNames [][]string
	got := tbl.Groups().Filter(func(group *Table, keyColNames []string) bool {
		seenKeyColNames = append(seenKeyColNames, keyColNames)
		for _, col := range group.Cols() {
			if containsString(keyColNames, col.Name()) {
				continue
			}
			if !allPositive(col) {
				return false
			}
		}
		return true
	})
	require.NoError(t, got.Err())
	assert.Equal(t, []int64{-1, -1, 2}, got.Col("key").Values())
	assert.Equal(t, []float64{1, 2, 3}, got.Col("a").Values())
	assert.Equal(t, []int{0, 2, 3}, got.Groups().Indices())
	assert.Equal(t, []string{"key"}, got.Groups().KeyColNames())
	assert.Equal(t, [][]string{{"key"}, {"key"}, {"key"}}, seenKeyColNames)

	// the filtered Table can be aggregated
	agg := got.Groups().Aggregate(Sum)
	require.NoError(t, agg.Err())
	assert.Equal(t, []float64{3, 3}, agg.Col("a").Values())
	assert.Equal(t, []int64{2, 1}, agg.Col("b").Values())
}

func TestTableGroups_Filter_err(t *testing.T) {
	tbl := NewTable(NewColumn("key", []int{1})).GroupBy("missing")
	got := tbl.Groups().Filter(func(*Table, []string) bool { return true })
	assert.ErrorIs(t, got.Err(), ErrMissingColumn)
}
