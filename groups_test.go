package grouptable

import (
	"errors"
	"reflect"
	"testing"

	"github.com/d4l3k/messagediff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupedTestTable() *Table {
	return NewTable(
		NewColumn("a", []int{3, 1, 3, 2, 1, 3}),
		NewColumn("val", []float64{3, 0, 4, 2, 1, 5}),
	).GroupBy("a")
}

func TestTableGroups_Select(t *testing.T) {
	g := groupedTestTable().Groups()
	tests := []struct {
		name        string
		item        interface{}
		wantVals    []float64
		wantIndices []int
		wantKeys    []int64
		wantErr     error
	}{
		{"int", 1, []float64{2}, []int{0, 1}, []int64{2}, nil},
		{"negative int", -1, []float64{3, 4, 5}, []int{0, 3}, []int64{3}, nil},
		{"slice", Slice{Start: 1, Stop: 3}, []float64{2, 3, 4, 5}, []int{0, 1, 4}, []int64{2, 3}, nil},
		{"slice with negative and clipped bounds", Slice{Start: -2, Stop: 10}, []float64{2, 3, 4, 5}, []int{0, 1, 4}, []int64{2, 3}, nil},
		{"empty slice", Slice{Start: 2, Stop: 1}, []float64{}, []int{0, 0}, []int64{}, nil},
		{"mask", []bool{true, false, true}, []float64{0, 1, 3, 4, 5}, []int{0, 2, 5}, []int64{1, 3}, nil},
		{"positions in order supplied", []int{2, 0}, []float64{3, 4, 5, 0, 1}, []int{0, 3, 5}, []int64{3, 1}, nil},
		{"negative position", []int{-3}, []float64{0, 1}, []int{0, 2}, []int64{1}, nil},
		{"no positions", []int{}, []float64{}, []int{0, 0}, []int64{}, nil},
		{"fail - int out of range", 3, nil, nil, nil, ErrIndex},
		{"fail - negative int out of range", -4, nil, nil, nil, ErrIndex},
		{"fail - mask length", []bool{true}, nil, nil, nil, ErrTypeKind},
		{"fail - position out of range", []int{0, 5}, nil, nil, nil, ErrTypeKind},
		{"fail - unsupported kind", "a", nil, nil, nil, ErrTypeKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Select(tt.item)
			if tt.wantErr != nil {
				if !errors.Is(got.Err(), tt.wantErr) {
					t.Errorf("TableGroups.Select() err = %v, want %v", got.Err(), tt.wantErr)
				}
				return
			}
			require.NoError(t, got.Err())
			if !reflect.DeepEqual(got.Col("val").Values(), tt.wantVals) {
				diff, _ := messagediff.PrettyDiff(got.Col("val").Values(), tt.wantVals)
				t.Errorf("TableGroups.Select() vals -> %v", diff)
			}
			if !reflect.DeepEqual(got.Groups().Indices(), tt.wantIndices) {
				t.Errorf("TableGroups.Select() indices = %v, want %v", got.Groups().Indices(), tt.wantIndices)
			}
			if !reflect.DeepEqual(got.Groups().Keys().Col("a").Values(), tt.wantKeys) {
				t.Errorf("TableGroups.Select() keys = %v, want %v", got.Groups().Keys().Col("a").Values(), tt.wantKeys)
			}
			assert.Equal(t, []string{"a"}, got.Groups().KeyColNames())
		})
	}
}

func TestTableGroups_Group(t *testing.T) {
	g := groupedTestTable().Groups()
	got := g.Group(0)
	require.NoError(t, got.Err())
	assert.Equal(t, []float64{0, 1}, got.Col("val").Values())
	assert.Equal(t, []int{0, 2}, got.Groups().Indices())
	assert.Equal(t, []int64{1}, got.Groups().Keys().Col("a").Values())

	last := g.Group(-1)
	require.NoError(t, last.Err())
	assert.Equal(t, []float64{3, 4, 5}, last.Col("val").Values())

	assert.ErrorIs(t, g.Group(3).Err(), ErrIndex)
}

func TestTableGroups_ungrouped(t *testing.T) {
	tbl := NewTable(NewColumn("val", []int{1, 2, 3}))
	g := tbl.Groups()
	assert.Equal(t, []int{0, 3}, g.Indices())
	assert.Equal(t, 1, g.Len())
	assert.Nil(t, g.Keys())
	assert.Equal(t, []string{}, g.KeyColNames())
	assert.Equal(t, "<TableGroups indices=[0 3]>", g.String())

	agg := g.Aggregate(Sum)
	require.NoError(t, agg.Err())
	assert.Equal(t, []int64{6}, agg.Col("val").Values())
}

func TestTableGroups_String(t *testing.T) {
	g := groupedTestTable().Groups()
	assert.Equal(t, "<TableGroups indices=[0 2 3 6]>", g.String())
	assert.Equal(t, "<ColumnGroups indices=[0 2 3 6]>", groupedTestTable().Col("val").Groups().String())
}

func TestTableGroups_Iterator(t *testing.T) {
	g := groupedTestTable().Groups()
	var got [][]float64
	var positions []int
	iter := g.Iterator()
	for iter.Next() {
		got = append(got, iter.Group().Col("val").Values().([]float64))
		positions = append(positions, iter.Index())
	}
	assert.Equal(t, [][]float64{{0, 1}, {2}, {3, 4, 5}}, got)
	assert.Equal(t, []int{0, 1, 2}, positions)
	assert.False(t, iter.Next())

	// iterators keep independent positions
	first := g.Iterator()
	second := g.Iterator()
	require.True(t, first.Next())
	require.True(t, first.Next())
	require.True(t, second.Next())
	assert.Equal(t, 1, first.Index())
	assert.Equal(t, 0, second.Index())
	assert.Equal(t, []float64{2}, first.Group().Col("val").Values())
	assert.Equal(t, []float64{0, 1}, second.Group().Col("val").Values())
}

func TestColumnGroups(t *testing.T) {
	c := NewColumn("val", []float64{3, 0, 4, 2, 1, 5}).GroupBy([]int{3, 1, 3, 2, 1, 3})
	require.NoError(t, c.Err())
	g := c.Groups()
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []int{0, 2, 3, 6}, g.Indices())
	assert.Equal(t, []int64{1, 2, 3}, g.Keys().Col("key").Values())

	assert.Equal(t, []float64{2}, g.Group(1).Values())
	assert.Equal(t, []float64{3, 4, 5}, g.Group(-1).Values())
	assert.ErrorIs(t, g.Group(5).Err(), ErrIndex)

	sel := g.Select([]int{2, 0})
	require.NoError(t, sel.Err())
	assert.Equal(t, []float64{3, 4, 5, 0, 1}, sel.Values())
	assert.Equal(t, []int{0, 3, 5}, sel.Groups().Indices())
	assert.Equal(t, []int64{3, 1}, sel.Groups().Keys().Col("key").Values())

	sel = g.Select(Slice{Start: 0, Stop: 2})
	assert.Equal(t, []float64{0, 1, 2}, sel.Values())
	assert.ErrorIs(t, g.Select(1.5).Err(), ErrTypeKind)

	var sizes []int
	iter := g.Iterator()
	for iter.Next() {
		sizes = append(sizes, iter.Group().Len())
	}
	assert.Equal(t, []int{2, 1, 3}, sizes)
}

func TestColumnGroups_ungrouped(t *testing.T) {
	g := NewColumn("val", []int{1, 2}).Groups()
	assert.Equal(t, []int{0, 2}, g.Indices())
	assert.Equal(t, 1, g.Len())
	assert.Nil(t, g.Keys())
}

func TestColumnGroups_inTable(t *testing.T) {
	tbl := groupedTestTable()
	g := tbl.Col("val").Groups()
	assert.Equal(t, tbl.Groups().Indices(), g.Indices())

	sel := g.Select([]bool{false, true, true})
	require.NoError(t, sel.Err())
	assert.Equal(t, []float64{2, 3, 4, 5}, sel.Values())
	assert.Equal(t, []int{0, 1, 4}, sel.Groups().Indices())
	assert.Nil(t, sel.Parent())
}
