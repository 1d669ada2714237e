package grouptable

import (
	"encoding/csv"
	"fmt"
	"io"
)

// A ReadOption configures ReadCSV().
// Available options: ReadOptionDelimiter.
type ReadOption func(*readConfig)

// readConfig is the default ReadCSV() config: fields are separated by ",".
type readConfig struct {
	delimiter rune
}

// ReadOptionDelimiter configures ReadCSV() to use `sep` as a field delimiter (default: ",").
func ReadOptionDelimiter(sep rune) ReadOption {
	return func(cfg *readConfig) {
		cfg.delimiter = sep
	}
}

func newReadConfig(options []ReadOption) *readConfig {
	cfg := &readConfig{delimiter: ','}
	for _, option := range options {
		option(cfg)
	}
	return cfg
}

func isNullString(s string) bool {
	nullStrings := []string{"NaN", "n/a", "N/A", "", "nil"}
	for _, ns := range nullStrings {
		if s == ns {
			return true
		}
	}
	return false
}

// ReadCSV reads csv from `r` into a new Table. The first row holds the column names.
// Every column is read as String; use Cast() to convert columns to other types.
// Null strings ("", "NaN", "n/a", "N/A", "nil") become null values in masked Columns.
func ReadCSV(r io.Reader, options ...ReadOption) *Table {
	cfg := newReadConfig(options)
	reader := csv.NewReader(r)
	reader.Comma = cfg.delimiter
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return tableWithError(fmt.Errorf("ReadCSV(): %w", err))
	}
	if len(records) == 0 {
		return tableWithError(fmt.Errorf("ReadCSV(): must have at least a header row"))
	}
	numRows := len(records) - 1
	cols := make([]*Column, len(records[0]))
	for k, name := range records[0] {
		vals := make([]string, numRows)
		isNull := make([]bool, numRows)
		var hasNulls bool
		for i := range vals {
			vals[i] = records[i+1][k]
			if isNullString(vals[i]) {
				isNull[i] = true
				hasNulls = true
			}
		}
		if hasNulls {
			cols[k] = NewMaskedColumn(name, vals, isNull)
		} else {
			cols[k] = NewColumn(name, vals)
		}
	}
	ret := NewTable(cols...)
	if ret.err != nil {
		return tableWithError(fmt.Errorf("ReadCSV(): %w", ret.err))
	}
	return ret
}

// WriteCSV writes the Table to `w` as csv, with the column names in the first row.
// Null values are written as "n/a".
func (t *Table) WriteCSV(w io.Writer) error {
	if t.err != nil {
		return t.err
	}
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(t.ToCSV()); err != nil {
		return fmt.Errorf("WriteCSV(): %w", err)
	}
	return nil
}
