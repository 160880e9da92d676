// Package ingest turns uploaded spreadsheets into normalized, categorized
// datasets.
package ingest

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"gerenciador-gastos/internal/categorizer"
	"gerenciador-gastos/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// PreviewRows is the number of rows echoed back after an upload.
const PreviewRows = 5

// naTokens are cell values treated as missing, on top of blank cells.
var naTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// Result is what an upload reports back.
type Result struct {
	Dataset *models.Dataset
	Columns []string
	NumRows int
	Sample  []models.Record
}

// NormalizeColumn canonicalizes a header cell: lower case, trimmed, inner
// whitespace replaced by underscores. Applying it twice is a no-op.
func NormalizeColumn(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.ToLower(strings.TrimSpace(norm.NFC.String(name)))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}

// Normalize canonicalizes the header, coerces valor to a decimal, drops every
// row with a missing cell and categorizes the survivors by descricao. Without
// descricao, an uploaded categoria column is kept as the category.
func Normalize(raw *Table, filename string) (*Result, error) {
	if raw == nil || len(raw.Header) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse from file", models.ErrIngest)
	}

	columns, err := normalizeHeader(raw.Header)
	if err != nil {
		return nil, err
	}

	amountIdx, descIdx, categoryIdx := -1, -1, -1
	for i, col := range columns {
		switch col {
		case models.ColumnAmount:
			amountIdx = i
		case models.ColumnDescription:
			descIdx = i
		case models.ColumnCategory:
			categoryIdx = i
		}
	}
	if amountIdx < 0 {
		return nil, fmt.Errorf("%w: missing required column %q", models.ErrIngest, models.ColumnAmount)
	}

	rows := make([]models.Row, 0, len(raw.Rows))
	dropped := 0
	for _, record := range raw.Rows {
		row, ok := normalizeRow(record, len(columns), amountIdx)
		if !ok {
			dropped++
			continue
		}
		// an uploaded categoria column is overwritten when descricao exists
		// and used as-is otherwise
		switch {
		case descIdx >= 0:
			row.Category = categorizer.Categorize(row.Values[descIdx])
			if categoryIdx >= 0 {
				row.Values[categoryIdx] = row.Category
			}
		case categoryIdx >= 0:
			row.Category = row.Values[categoryIdx]
		}
		rows = append(rows, row)
	}

	hasCategory := descIdx >= 0 || categoryIdx >= 0
	ds := models.NewDataset(uuid.NewString(), filename, time.Now().UTC(), columns, hasCategory, rows, dropped)
	return &Result{
		Dataset: ds,
		Columns: ds.Columns(),
		NumRows: ds.Len(),
		Sample:  ds.Preview(PreviewRows),
	}, nil
}

func normalizeHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		col := NormalizeColumn(h)
		if col == "" {
			col = fmt.Sprintf("unnamed:_%d", i)
		}
		if prev, dup := seen[col]; dup {
			return nil, fmt.Errorf("%w: columns %d and %d both normalize to %q", models.ErrIngest, prev+1, i+1, col)
		}
		seen[col] = i
		columns[i] = col
	}
	return columns, nil
}

// normalizeRow reports false when any cell is missing or valor is not a number.
func normalizeRow(record []string, width, amountIdx int) (models.Row, bool) {
	if len(record) < width {
		return models.Row{}, false
	}

	values := make([]string, width)
	for i := 0; i < width; i++ {
		v := strings.TrimSpace(record[i])
		if isMissing(v) {
			return models.Row{}, false
		}
		values[i] = v
	}

	amount, err := decimal.NewFromString(values[amountIdx])
	if err != nil {
		return models.Row{}, false
	}

	return models.Row{Values: values, Amount: amount}, true
}

func isMissing(v string) bool {
	if v == "" {
		return true
	}
	_, ok := naTokens[v]
	return ok
}
