// Package summary totals the active dataset by category over a date range.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"gerenciador-gastos/internal/models"

	"github.com/shopspring/decimal"
)

// DateLayout is the format of the range bounds, in and out.
const DateLayout = "2006-01-02"

// rowDateLayouts are tried in order for the data column. Single-digit month
// and day layouts also accept zero-padded values.
var rowDateLayouts = []string{
	"2006-01-02",          // YYYY-MM-DD
	"2006-01-02 15:04:05", // YYYY-MM-DD HH:MM:SS
	"2006-01-02T15:04:05", // ISO without zone
	time.RFC3339,
	"1/2/2006",          // M/D/YYYY
	"2/1/2006",          // D/M/YYYY
	"2006/1/2",          // YYYY/M/D
	"1-2-2006",          // M-D-YYYY
	"2-1-2006",          // D-M-YYYY
	"1/2/2006 15:04:05", // M/D/YYYY HH:MM:SS
	"2006-1-2",
}

// Summarize groups the rows dated within [start, end] by category and sums
// their amounts. Rows whose date cannot be parsed are left out.
func Summarize(ds *models.Dataset, start, end string) (*models.Summary, error) {
	if ds.Len() == 0 {
		return nil, models.ErrNoData
	}

	from, err := ParseBound(start)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date: %v", models.ErrRangeParse, err)
	}
	to, err := ParseBound(end)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date: %v", models.ErrRangeParse, err)
	}

	if !ds.HasDate() {
		return nil, fmt.Errorf("%w: dataset has no %q column", models.ErrProcessing, models.ColumnDate)
	}
	if !ds.HasCategory {
		return nil, fmt.Errorf("%w: dataset has no %q column", models.ErrProcessing, models.ColumnCategory)
	}

	totals := map[string]decimal.Decimal{}
	for i, row := range ds.Rows {
		day, ok := ParseRowDate(ds.DateText(i))
		if !ok || day.Before(from) || day.After(to) {
			continue
		}
		totals[row.Category] = totals[row.Category].Add(row.Amount)
	}

	result := &models.Summary{
		StartDate: from.Format(DateLayout),
		EndDate:   to.Format(DateLayout),
		Totals:    make([]models.CategoryTotal, 0, len(totals)),
	}
	for cat, sum := range totals {
		result.Totals = append(result.Totals, models.CategoryTotal{Category: cat, Amount: sum.InexactFloat64()})
	}
	sort.Slice(result.Totals, func(i, j int) bool {
		return result.Totals[i].Category < result.Totals[j].Category
	})

	return result, nil
}

// ParseBound parses a YYYY-MM-DD range bound. Unpadded months and days are
// accepted.
func ParseBound(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q does not match format YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseRowDate parses a data cell and truncates it to its calendar day.
func ParseRowDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range rowDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
