package models

import (
	"fmt"
)

// Well-known columns
const (
	ColumnID               = "id"
	ColumnSequence         = "sequence"
	ColumnPredictedSpecies = "predicted_species"
	ColumnResistanceRisk   = "resistance_risk"
)

// Record is a single isolate row. ID and Sequence are the typed columns; every
// other column (pass-through or appended by a stage) lives in Fields.
type Record struct {
	ID       string            `json:"id"`
	Sequence string            `json:"sequence"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func (r Record) Value(column string) string {
	switch column {
	case ColumnID:
		return r.ID
	case ColumnSequence:
		return r.Sequence
	default:
		return r.Fields[column]
	}
}

func (r Record) Clone() Record {
	out := Record{ID: r.ID, Sequence: r.Sequence}
	if r.Fields != nil {
		out.Fields = make(map[string]string, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

func (r *Record) set(column, value string) {
	switch column {
	case ColumnID:
		r.ID = value
	case ColumnSequence:
		r.Sequence = value
	default:
		if r.Fields == nil {
			r.Fields = make(map[string]string)
		}
		r.Fields[column] = value
	}
}

// Table is an ordered set of records sharing a column set.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// NewTable builds a table from a header and raw rows, in order. Each row must
// have exactly one value per column.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, &ColumnExistsError{Column: c}
		}
		seen[c] = struct{}{}
	}

	t := &Table{
		Columns: append([]string(nil), columns...),
		Records: make([]Record, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(row), len(columns), ErrRowCountMismatch)
		}
		var rec Record
		for j, c := range columns {
			rec.set(c, row[j])
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the values of a column in row order.
func (t *Table) Column(name string) ([]string, error) {
	if !t.HasColumn(name) {
		return nil, &MissingColumnError{Column: name}
	}
	values := make([]string, len(t.Records))
	for i, rec := range t.Records {
		values[i] = rec.Value(name)
	}
	return values, nil
}

// Rows renders the records as string slices in column order.
func (t *Table) Rows() [][]string {
	if t == nil {
		return nil
	}
	rows := make([][]string, len(t.Records))
	for i, rec := range t.Records {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = rec.Value(c)
		}
		rows[i] = row
	}
	return rows
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Records: make([]Record, len(t.Records)),
	}
	for i, rec := range t.Records {
		out.Records[i] = rec.Clone()
	}
	return out
}

// WithColumn returns a copy of the table with name appended as the last column.
// The receiver is left untouched.
func (t *Table) WithColumn(name string, values []string) (*Table, error) {
	if t.HasColumn(name) {
		return nil, &ColumnExistsError{Column: name}
	}
	if len(values) != t.Len() {
		return nil, fmt.Errorf("column %q has %d values for %d rows: %w", name, len(values), t.Len(), ErrRowCountMismatch)
	}
	out := t.Clone()
	if out == nil {
		out = &Table{}
	}
	out.Columns = append(out.Columns, name)
	for i := range out.Records {
		out.Records[i].set(name, values[i])
	}
	return out, nil
}

// Select projects the table onto the given columns, in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	rows := make([][]string, t.Len())
	for i := range rows {
		rows[i] = make([]string, len(columns))
	}
	for j, c := range columns {
		values, err := t.Column(c)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			rows[i][j] = v
		}
	}
	return NewTable(columns, rows)
}
