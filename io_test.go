package grouptable

import (
	"bytes"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type badReader struct{}

func (r badReader) Read([]byte) (int, error) {
	return 0, errors.New("foo")
}

func TestReadCSV(t *testing.T) {
	type args struct {
		r       io.Reader
		options []ReadOption
	}
	tests := []struct {
		name       string
		args       args
		wantNames  []string
		wantVals   [][]string
		wantIsNull [][]bool
		wantErr    bool
	}{
		{"default",
			args{strings.NewReader("Name, Age\nfoo, 1\nbar, 2"), nil},
			[]string{"Name", "Age"},
			[][]string{{"foo", "bar"}, {"1", "2"}},
			[][]bool{{false, false}, {false, false}}, false},
		{"null strings",
			args{strings.NewReader("Name, Age\n, 1\nbar, n/a"), nil},
			[]string{"Name", "Age"},
			[][]string{{"", "bar"}, {"1", "n/a"}},
			[][]bool{{true, false}, {false, true}}, false},
		{"delimiter",
			args{strings.NewReader("Name|Age\nfoo|1"), []ReadOption{ReadOptionDelimiter('|')}},
			[]string{"Name", "Age"},
			[][]string{{"foo"}, {"1"}},
			[][]bool{{false}, {false}}, false},
		{"header only",
			args{strings.NewReader("Name,Age"), nil},
			[]string{"Name", "Age"},
			[][]string{{}, {}},
			[][]bool{{}, {}}, false},
		{"fail - bad reader", args{badReader{}, nil}, nil, nil, nil, true},
		{"fail - bad delimiter", args{strings.NewReader("Name, Age\nfoo, 1"), []ReadOption{ReadOptionDelimiter(0)}}, nil, nil, nil, true},
		{"fail - ragged rows", args{strings.NewReader("Name, Age\nfoo"), nil}, nil, nil, nil, true},
		{"fail - empty", args{strings.NewReader(""), nil}, nil, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReadCSV(tt.args.r, tt.args.options...)
			if (got.Err() != nil) != tt.wantErr {
				t.Errorf("ReadCSV() error = %v, wantErr %v", got.Err(), tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got.ListColNames(), tt.wantNames) {
				t.Errorf("ReadCSV() names = %v, want %v", got.ListColNames(), tt.wantNames)
			}
			for k, col := range got.Cols() {
				if !reflect.DeepEqual(col.Values(), tt.wantVals[k]) {
					t.Errorf("ReadCSV() column %d = %v, want %v", k, col.Values(), tt.wantVals[k])
				}
				if !reflect.DeepEqual(col.IsNull(), tt.wantIsNull[k]) {
					t.Errorf("ReadCSV() column %d IsNull() = %v, want %v", k, col.IsNull(), tt.wantIsNull[k])
				}
			}
		})
	}
}

func TestReadCSV_groupBy(t *testing.T) {
	tbl := ReadCSV(strings.NewReader("date,value\n2020-01-02,3\n2020-01-01,1\n2020-01-01,2"))
	require.NoError(t, tbl.Err())
	values := tbl.Col("value").Cast(Float64)
	dates := tbl.Col("date").Cast(DateTime)
	got := NewTable(dates, values).GroupBy("date").Groups().Aggregate(Sum)
	require.NoError(t, got.Err())
	eq, diffs, err := got.EqualsCSV([][]string{
		{"date", "value"},
		{"2020-01-01T00:00:00Z", "3"},
		{"2020-01-02T00:00:00Z", "3"},
	})
	require.NoError(t, err)
	assert.True(t, eq, "%v", diffs)
}

func TestTable_WriteCSV(t *testing.T) {
	tbl := NewTable(
		NewColumn("key", []int{1, 2}),
		NewMaskedColumn("name", []string{"a", "b"}, []bool{true, false}),
	)
	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	assert.Equal(t, "key,name\n1,n/a\n2,b\n", buf.String())

	roundTrip := ReadCSV(&buf)
	require.NoError(t, roundTrip.Err())
	assert.Equal(t, []bool{true, false}, roundTrip.Col("name").IsNull())

	assert.Error(t, NewTable(nil).WriteCSV(&buf))
}
