package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gerenciador-gastos/internal/models"

	"github.com/xuri/excelize/v2"
)

// Table is an uploaded sheet before normalization: a header row and the data
// rows as text. Rows may be shorter than Header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read parses an upload, choosing the format from the filename. Anything that
// is not .xlsx is read as CSV.
func Read(filename string, r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read file: %v", models.ErrIngest, err)
	}

	if strings.ToLower(filepath.Ext(filename)) == ".xlsx" {
		return ReadXLSX(data)
	}
	return ReadCSV(data)
}

// ReadCSV parses UTF-8 CSV bytes with a header row.
func ReadCSV(data []byte) (*Table, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: file is not valid UTF-8", models.ErrIngest)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no columns to parse from file", models.ErrIngest)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header row: %v", models.ErrIngest, err)
	}

	table := &Table{Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrIngest, err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: expected %d fields in line %d, saw %d",
				models.ErrIngest, len(header), line, len(record))
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// ReadXLSX reads the first sheet of a workbook, first row as header.
func ReadXLSX(data []byte) (*Table, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid xlsx file: %v", models.ErrIngest, err)
	}
	defer xl.Close()

	sheetName := xl.GetSheetName(0)
	rows, err := xl.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", models.ErrIngest, sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse from file", models.ErrIngest)
	}

	table := &Table{Header: rows[0]}
	for _, row := range rows[1:] {
		// excelize trims trailing empty cells; blank rows come back empty
		if len(row) == 0 {
			continue
		}
		if len(row) > len(table.Header) {
			return nil, fmt.Errorf("%w: row has %d cells but header has %d",
				models.ErrIngest, len(row), len(table.Header))
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
