package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names after normalization.
const (
	ColumnDescription = "descricao"
	ColumnAmount      = "valor"
	ColumnDate        = "data"
	ColumnCategory    = "categoria"
)

// Row is one surviving transaction. Values is aligned with Dataset.SourceColumns.
type Row struct {
	Values   []string
	Amount   decimal.Decimal
	Category string
}

// Dataset is a normalized upload. It is never mutated after it has been built.
// HasCategory is set when rows carry a category, either computed from
// descricao or taken from an uploaded categoria column.
type Dataset struct {
	ID            string
	Filename      string
	UploadedAt    time.Time
	SourceColumns []string
	HasCategory   bool
	Rows          []Row
	Dropped       int

	amountIdx   int
	dateIdx     int
	categoryIdx int
}

// NewDataset indexes the well-known columns of a normalized schema.
func NewDataset(id, filename string, uploadedAt time.Time, columns []string, hasCategory bool, rows []Row, dropped int) *Dataset {
	ds := &Dataset{
		ID:            id,
		Filename:      filename,
		UploadedAt:    uploadedAt,
		SourceColumns: columns,
		HasCategory:   hasCategory,
		Rows:          rows,
		Dropped:       dropped,
		amountIdx:     -1,
		dateIdx:       -1,
		categoryIdx:   -1,
	}
	for i, col := range columns {
		switch col {
		case ColumnAmount:
			ds.amountIdx = i
		case ColumnDate:
			ds.dateIdx = i
		case ColumnCategory:
			ds.categoryIdx = i
		}
	}
	return ds
}

// Columns returns the public column list, including categoria when present.
func (d *Dataset) Columns() []string {
	cols := make([]string, 0, len(d.SourceColumns)+1)
	cols = append(cols, d.SourceColumns...)
	if d.appendsCategory() {
		cols = append(cols, ColumnCategory)
	}
	return cols
}

// Len reports the number of rows. A nil dataset has none.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// appendsCategory reports whether categoria is added after the source columns
// rather than stored in one of them.
func (d *Dataset) appendsCategory() bool {
	return d.HasCategory && d.categoryIdx < 0
}

// HasDate reports whether the data column exists.
func (d *Dataset) HasDate() bool {
	return d.dateIdx >= 0
}

// DateText returns the raw date cell of row i.
func (d *Dataset) DateText(i int) string {
	if d.dateIdx < 0 {
		return ""
	}
	return d.Rows[i].Values[d.dateIdx]
}

// Record renders row i as an ordered JSON object.
func (d *Dataset) Record(i int) Record {
	row := d.Rows[i]
	rec := Record{}
	for j, col := range d.SourceColumns {
		switch {
		case j == d.amountIdx:
			rec = append(rec, Field{Name: col, Value: row.Amount.InexactFloat64()})
		case j == d.categoryIdx && d.HasCategory:
			rec = append(rec, Field{Name: col, Value: row.Category})
		default:
			rec = append(rec, Field{Name: col, Value: row.Values[j]})
		}
	}
	if d.appendsCategory() {
		rec = append(rec, Field{Name: ColumnCategory, Value: row.Category})
	}
	return rec
}

// Preview returns up to n leading rows.
func (d *Dataset) Preview(n int) []Record {
	if n > d.Len() {
		n = d.Len()
	}
	out := make([]Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.Record(i))
	}
	return out
}

// Field is one named cell of a Record.
type Field struct {
	Name  string
	Value any
}

// Record is a row object that keeps column order when encoded.
type Record []Field

// MarshalJSON encodes the fields as a JSON object in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Get returns the value of the named field.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}
