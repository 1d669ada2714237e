package grouptable

import (
	"bytes"
	"fmt"
	"reflect"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/ptiger10/tablediff"
)

const nullString = "n/a"

// formatValues converts the Column values to strings with the Column format (if any).
// Null values are replaced with "n/a".
func (c *Column) formatValues() []string {
	ret := make([]string, c.Len())
	v := reflect.ValueOf(c.slice)
	for i := range ret {
		if c.isNullAt(i) {
			ret[i] = nullString
			continue
		}
		val := v.Index(i).Interface()
		switch {
		case c.info.Format != "":
			ret[i] = fmt.Sprintf(c.info.Format, val)
		default:
			if t, ok := val.(time.Time); ok {
				ret[i] = t.Format(time.RFC3339)
			} else {
				ret[i] = fmt.Sprint(val)
			}
		}
	}
	return ret
}

// ToCSV writes the Table to a [][]string with rows as the major dimension.
// The first row holds the column names. Null values are replaced with "n/a".
func (t *Table) ToCSV() [][]string {
	if t.err != nil {
		return nil
	}
	ret := make([][]string, t.Len()+1)
	ret[0] = t.ListColNames()
	for i := 1; i < len(ret); i++ {
		ret[i] = make([]string, len(t.columns))
	}
	for k, col := range t.columns {
		for i, val := range col.formatValues() {
			ret[i+1][k] = val
		}
	}
	return ret
}

// EqualsCSV converts the Table to csv, compares it to `data` (including a header row),
// and evaluates whether the stringified values match.
// If they do not match, returns a tablediff.Differences object that can be printed to isolate their differences.
func (t *Table) EqualsCSV(data [][]string) (bool, *tablediff.Differences, error) {
	if t.err != nil {
		return false, nil, t.err
	}
	if len(data) == 0 {
		return false, nil, fmt.Errorf("EqualsCSV(): `data` cannot be empty")
	}
	numColumns := len(data[0])
	for i := range data {
		if len(data[i]) != numColumns {
			return false, nil, fmt.Errorf("EqualsCSV(): `data`: row %d: %w: all rows must have same length as first row (%d != %d)",
				i, ErrLengthMismatch, len(data[i]), numColumns)
		}
	}
	diffs, eq := tablediff.Diff(t.ToCSV(), data)
	return eq, diffs, nil
}

// Render prints the Table in table form. Tables longer than the maximum number of rows (default 50)
// show only the first and last rows, which may be configured with RenderMaxRows(n).
// A grouped Table notes the number of groups and key columns below the table.
func (t *Table) Render(options ...RenderOption) string {
	if t.err != nil {
		return fmt.Sprintf("Error: %v", t.err)
	}
	cfg := newRenderConfig(options)
	data := t.ToCSV()
	if t.Len() > cfg.maxRows {
		n := cfg.maxRows / 2
		filler := make([]string, len(t.columns))
		for k := range filler {
			filler[k] = "..."
		}
		rows := append(append(append([][]string{}, data[1:n+1]...), filler), data[len(data)-n:]...)
		data = append(data[:1:1], rows...)
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader(data[0])
	table.AppendBulk(data[1:])
	table.Render()
	ret := buf.String()
	if t.grouping != nil {
		g := t.Groups()
		ret += fmt.Sprintf("groups: %d", g.Len())
		if names := g.KeyColNames(); len(names) > 0 {
			ret += fmt.Sprintf(" by %v", names)
		}
		ret += "\n"
	}
	return ret
}

// String prints the Table with the default render options.
func (t *Table) String() string {
	return t.Render()
}

// String prints the Column in table form.
func (c *Column) String() string {
	if c.err != nil {
		return fmt.Sprintf("Error: %v", c.err)
	}
	cp := c.derive(c.slice, c.isNull)
	return adoptColumns([]*Column{cp}).Render()
}
