package dataset

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Table is the in-memory dataset. It is built once by the loader and never
// mutated afterwards, so it can be shared by any number of readers.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable trims the column names and pads or truncates every row to the
// column count. When a name repeats, the last column with that name wins.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    make([][]string, 0, len(rows)),
	}
	for i, c := range columns {
		name := strings.TrimSpace(c)
		t.columns[i] = name
		t.index[name] = i
	}
	for _, r := range rows {
		t.rows = append(t.rows, fitRow(r, len(columns)))
	}
	return t
}

func fitRow(r []string, n int) []string {
	if len(r) == n {
		return r
	}
	out := make([]string, n)
	copy(out, r)
	return out
}

// Columns returns a copy of the column names in header order.
func (t *Table) Columns() []string {
	if t == nil {
		return []string{}
	}
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Empty reports whether the table has no rows. A nil table is empty.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Record returns the i-th row.
func (t *Table) Record(i int) Record {
	return Record{table: t, values: t.rows[i]}
}

// Value returns the value of column name on row i. ok is false when the
// table has no such column.
func (t *Table) Value(i int, name string) (string, bool) {
	idx, ok := t.index[name]
	if !ok {
		return "", false
	}
	return t.rows[i][idx], true
}

// Record is a read-only view over one row of a Table.
type Record struct {
	table  *Table
	values []string
}

// Get returns the value stored under column name.
func (r Record) Get(name string) (string, bool) {
	if r.table == nil {
		return "", false
	}
	idx, ok := r.table.index[name]
	if !ok || idx >= len(r.values) {
		return "", false
	}
	return r.values[idx], true
}

// Map returns the record as a plain map. Missing values are empty strings.
func (r Record) Map() map[string]string {
	out := make(map[string]string)
	if r.table == nil {
		return out
	}
	for _, c := range r.table.columns {
		out[c], _ = r.Get(c)
	}
	return out
}

// MarshalJSON writes the record as an object whose keys follow the header
// order. A repeated column name appears once, at its first position, with
// the value of its last occurrence.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r.table != nil {
		seen := make(map[string]struct{}, len(r.table.columns))
		for _, c := range r.table.columns {
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}

			v, _ := r.Get(c)
			key, err := json.Marshal(c)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			if len(seen) > 1 {
				buf.WriteByte(',')
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
