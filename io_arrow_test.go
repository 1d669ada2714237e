package grouptable

import (
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_ToArrow(t *testing.T) {
	tbl := NewTable(
		NewColumn("f64", []float64{1, 2, 3}).SetInfo(ColumnInfo{Name: "f64", Unit: "m", Description: "distance"}),
		NewMaskedColumn("i64", []int{10, 20, 30}, []bool{false, true, false}),
		NewColumn("str", []string{"a", "b", "c"}),
		NewColumn("ok", []bool{true, false, true}),
		NewColumn("date", []time.Time{day(1), day(2), day(3)}),
	).SetMeta(map[string]interface{}{"source": "test", "version": 2})

	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	record, err := tbl.ToArrow(mem)
	require.NoError(t, err)
	defer record.Release()

	assert.Equal(t, int64(3), record.NumRows())
	assert.Equal(t, int64(5), record.NumCols())
	schema := record.Schema()
	assert.Equal(t, arrow.PrimitiveTypes.Float64, schema.Field(0).Type)
	assert.Equal(t, arrow.PrimitiveTypes.Int64, schema.Field(1).Type)
	assert.Equal(t, arrow.BinaryTypes.String, schema.Field(2).Type)
	assert.Equal(t, arrow.FixedWidthTypes.Boolean, schema.Field(3).Type)
	assert.Equal(t, arrow.TIMESTAMP, schema.Field(4).Type.ID())
	assert.Equal(t, 1, record.Column(1).NullN())
	assert.True(t, record.Column(1).IsNull(1))

	md := schema.Metadata()
	assert.Equal(t, []string{"source", "version"}, md.Keys())
	assert.Equal(t, []string{"test", "2"}, md.Values())
}

func TestNewTableFromArrow(t *testing.T) {
	tbl := NewTable(
		NewColumn("f64", []float64{1, 2, 3}).SetInfo(ColumnInfo{Name: "f64", Unit: "m", Format: "%.1f", Description: "distance"}),
		NewMaskedColumn("i64", []int{10, 20, 30}, []bool{false, true, false}),
		NewColumn("str", []string{"a", "b", "c"}),
		NewColumn("ok", []bool{true, false, true}),
		NewMaskedColumn("date", []time.Time{day(1), {}, day(3)}, []bool{false, true, false}),
	).SetMeta(map[string]interface{}{"source": "test"})

	record, err := tbl.ToArrow(nil)
	require.NoError(t, err)
	defer record.Release()

	got := NewTableFromArrow(record)
	require.NoError(t, got.Err())
	assert.Equal(t, tbl.ListColNames(), got.ListColNames())
	for _, name := range tbl.ListColNames() {
		assert.Equal(t, tbl.Col(name).Values(), got.Col(name).Values(), name)
		assert.Equal(t, tbl.Col(name).IsNull(), got.Col(name).IsNull(), name)
		assert.Equal(t, tbl.Col(name).Masked(), got.Col(name).Masked(), name)
	}
	assert.Equal(t, tbl.Col("f64").Info(), got.Col("f64").Info())
	assert.Equal(t, map[string]interface{}{"source": "test"}, got.Meta())

	// round-tripped tables group like the original
	assert.Equal(t,
		tbl.GroupBy("ok").Groups().Aggregate(Sum).ToCSV(),
		got.GroupBy("ok").Groups().Aggregate(Sum).ToCSV())
}

func TestNewTableFromArrow_unsupported(t *testing.T) {
	mem := memory.NewGoAllocator()
	builder := array.NewUint8Builder(mem)
	defer builder.Release()
	builder.AppendValues([]uint8{1, 2}, nil)
	arr := builder.NewArray()
	defer arr.Release()

	schema := arrow.NewSchema([]arrow.Field{{Name: "u8", Type: arrow.PrimitiveTypes.Uint8}}, nil)
	record := array.NewRecord(schema, []arrow.Array{arr}, 2)
	defer record.Release()

	assert.ErrorIs(t, NewTableFromArrow(record).Err(), ErrTypeKind)
	assert.ErrorIs(t, NewTableFromArrow(nil).Err(), ErrTypeKind)
}
