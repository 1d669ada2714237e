package grouptable

import (
	"fmt"
	"sort"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// field metadata keys for ColumnInfo
const (
	arrowUnitKey        = "unit"
	arrowFormatKey      = "format"
	arrowDescriptionKey = "description"
)

var arrowTimestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

// -- EXPORT

// ToArrow exports the Table to an Arrow Record. Null values become Arrow nulls,
// the unit, format and description of each column are written to field metadata,
// and the table meta is written (as strings) to schema metadata.
// If `mem` is nil, the default allocator is used.
// The caller is responsible for calling Release() on the returned Record.
func (t *Table) ToArrow(mem memory.Allocator) (arrow.Record, error) {
	if t.err != nil {
		return nil, t.err
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, len(t.columns))
	for k, col := range t.columns {
		arrowType, err := dtypeToArrowType(col.DType())
		if err != nil {
			return nil, fmt.Errorf("ToArrow(): column %v: %w", col.info.Name, err)
		}
		fields[k] = arrow.Field{Name: col.info.Name, Type: arrowType, Nullable: true, Metadata: infoToMetadata(col.info)}
	}
	schema := arrow.NewSchema(fields, metaToMetadata(t.meta))

	arrays := make([]arrow.Array, len(t.columns))
	for k, col := range t.columns {
		arrays[k] = columnToArrowArray(col, mem)
	}
	record := array.NewRecord(schema, arrays, int64(t.Len()))
	// the record retains the arrays
	for _, arr := range arrays {
		arr.Release()
	}
	return record, nil
}

func dtypeToArrowType(dtype DType) (arrow.DataType, error) {
	switch dtype {
	case Float64:
		return arrow.PrimitiveTypes.Float64, nil
	case Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case String:
		return arrow.BinaryTypes.String, nil
	case Bool:
		return arrow.FixedWidthTypes.Boolean, nil
	case DateTime:
		return arrowTimestampType, nil
	}
	return nil, fmt.Errorf("%w: unsupported dtype for Arrow export: %v", ErrTypeKind, dtype)
}

func infoToMetadata(info ColumnInfo) arrow.Metadata {
	var keys, values []string
	for _, kv := range [][2]string{
		{arrowUnitKey, info.Unit},
		{arrowFormatKey, info.Format},
		{arrowDescriptionKey, info.Description},
	} {
		if kv[1] != "" {
			keys = append(keys, kv[0])
			values = append(values, kv[1])
		}
	}
	return arrow.NewMetadata(keys, values)
}

func metaToMetadata(meta map[string]interface{}) *arrow.Metadata {
	if len(meta) == 0 {
		return nil
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = fmt.Sprint(meta[k])
	}
	md := arrow.NewMetadata(keys, values)
	return &md
}

// columnToArrowArray converts a Column with a dtype supported by dtypeToArrowType.
func columnToArrowArray(c *Column, mem memory.Allocator) arrow.Array {
	var valid []bool
	if c.Masked() {
		valid = make([]bool, len(c.isNull))
		for i := range c.isNull {
			valid[i] = !c.isNull[i]
		}
	}
	switch vals := c.slice.(type) {
	case []float64:
		builder := array.NewFloat64Builder(mem)
		defer builder.Release()
		builder.AppendValues(vals, valid)
		return builder.NewArray()
	case []int64:
		builder := array.NewInt64Builder(mem)
		defer builder.Release()
		builder.AppendValues(vals, valid)
		return builder.NewArray()
	case []string:
		builder := array.NewStringBuilder(mem)
		defer builder.Release()
		builder.AppendValues(vals, valid)
		return builder.NewArray()
	case []bool:
		builder := array.NewBooleanBuilder(mem)
		defer builder.Release()
		builder.AppendValues(vals, valid)
		return builder.NewArray()
	case []time.Time:
		builder := array.NewTimestampBuilder(mem, arrowTimestampType)
		defer builder.Release()
		for i, v := range vals {
			if c.isNullAt(i) {
				builder.AppendNull()
				continue
			}
			builder.Append(arrow.Timestamp(v.UnixNano()))
		}
		return builder.NewArray()
	}
	return nil
}

// -- IMPORT

// NewTableFromArrow creates a new Table from an Arrow Record.
// Arrow nulls become null values in masked Columns, and field and schema metadata are restored as
// ColumnInfo and table meta. Timestamps are converted to UTC time.Time values.
func NewTableFromArrow(record arrow.Record) *Table {
	if record == nil {
		return tableWithError(fmt.Errorf("NewTableFromArrow(): %w: record cannot be nil", ErrTypeKind))
	}
	schema := record.Schema()
	cols := make([]*Column, record.NumCols())
	for k := range cols {
		field := schema.Field(k)
		col, err := arrowArrayToColumn(field.Name, record.Column(k))
		if err != nil {
			return tableWithError(fmt.Errorf("NewTableFromArrow(): column %v: %w", field.Name, err))
		}
		col.info.Unit = metadataValue(field.Metadata, arrowUnitKey)
		col.info.Format = metadataValue(field.Metadata, arrowFormatKey)
		col.info.Description = metadataValue(field.Metadata, arrowDescriptionKey)
		cols[k] = col
	}
	ret := NewTable(cols...)
	if ret.err != nil {
		return tableWithError(fmt.Errorf("NewTableFromArrow(): %w", ret.err))
	}
	if md := schema.Metadata(); md.Len() > 0 {
		ret.meta = make(map[string]interface{}, md.Len())
		for i, key := range md.Keys() {
			ret.meta[key] = md.Values()[i]
		}
	}
	return ret
}

func metadataValue(md arrow.Metadata, key string) string {
	if i := md.FindKey(key); i >= 0 {
		return md.Values()[i]
	}
	return ""
}

func arrowArrayToColumn(name string, arr arrow.Array) (*Column, error) {
	l := arr.Len()
	isNull := make([]bool, l)
	for i := 0; i < l; i++ {
		isNull[i] = arr.IsNull(i)
	}
	var vals interface{}
	switch a := arr.(type) {
	case *array.Float64:
		data := make([]float64, l)
		for i := range data {
			data[i] = a.Value(i)
		}
		vals = data
	case *array.Int64:
		data := make([]int64, l)
		for i := range data {
			data[i] = a.Value(i)
		}
		vals = data
	case *array.String:
		data := make([]string, l)
		for i := range data {
			data[i] = a.Value(i)
		}
		vals = data
	case *array.Boolean:
		data := make([]bool, l)
		for i := range data {
			data[i] = a.Value(i)
		}
		vals = data
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		data := make([]time.Time, l)
		for i := range data {
			if !isNull[i] {
				data[i] = a.Value(i).ToTime(unit).UTC()
			}
		}
		vals = data
	default:
		return nil, fmt.Errorf("%w: unsupported Arrow array type: %T", ErrTypeKind, arr)
	}
	if arr.NullN() == 0 {
		return NewColumn(name, vals), nil
	}
	return NewMaskedColumn(name, vals, isNull), nil
}
