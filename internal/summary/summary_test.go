package summary

import (
	"errors"
	"testing"
	"time"

	"gerenciador-gastos/internal/ingest"
	"gerenciador-gastos/internal/models"
)

const sampleCSV = "Descricao,Valor,Data\n" +
	"Supermercado Dia,150.50,2024-01-05\n" +
	"Uber,35,2024-01-10\n"

func loadDataset(t *testing.T, content string) *models.Dataset {
	t.Helper()
	table, err := ingest.ReadCSV([]byte(content))
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	res, err := ingest.Normalize(table, "test.csv")
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return res.Dataset
}

func totalsByCategory(s *models.Summary) map[string]float64 {
	out := map[string]float64{}
	for _, tot := range s.Totals {
		out[tot.Category] = tot.Amount
	}
	return out
}

func TestSummarizeMonth(t *testing.T) {
	ds := loadDataset(t, sampleCSV)

	got, err := Summarize(ds, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got.StartDate != "2024-01-01" || got.EndDate != "2024-01-31" {
		t.Errorf("echoed range = %s..%s", got.StartDate, got.EndDate)
	}

	totals := totalsByCategory(got)
	if len(totals) != 2 || totals["alimentação"] != 150.5 || totals["transporte"] != 35 {
		t.Fatalf("totals = %v", totals)
	}
}

func TestSummarizeBoundsAreInclusive(t *testing.T) {
	ds := loadDataset(t, sampleCSV)

	got, err := Summarize(ds, "2024-01-05", "2024-01-10")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(got.Totals) != 2 {
		t.Fatalf("expected both boundary rows, got %v", got.Totals)
	}

	got, err = Summarize(ds, "2024-01-06", "2024-01-10")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if totals := totalsByCategory(got); len(totals) != 1 || totals["transporte"] != 35 {
		t.Fatalf("totals = %v", totals)
	}
}

func TestSummarizeEmptyRange(t *testing.T) {
	ds := loadDataset(t, sampleCSV)

	for _, r := range [][2]string{{"2023-01-01", "2023-01-31"}, {"2024-01-31", "2024-01-01"}} {
		got, err := Summarize(ds, r[0], r[1])
		if err != nil {
			t.Fatalf("Summarize(%s, %s) failed: %v", r[0], r[1], err)
		}
		if got.Totals == nil || len(got.Totals) != 0 {
			t.Fatalf("expected empty non-nil totals, got %#v", got.Totals)
		}
	}
}

func TestSummarizeSumsWithinCategory(t *testing.T) {
	ds := loadDataset(t, "descricao,valor,data\n"+
		"Lanche,0.1,2024-03-01\n"+
		"Restaurante,0.2,2024-03-02 12:30:00\n"+
		"Uber,12,03/15/2024\n"+
		"Cinema,30,ontem\n"+
		"Pix,5,2024-03-31T23:59:00\n")

	got, err := Summarize(ds, "2024-03-01", "2024-03-31")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	totals := totalsByCategory(got)
	if totals["alimentação"] != 0.3 {
		t.Errorf("alimentação = %v, want exactly 0.3", totals["alimentação"])
	}
	if totals["transporte"] != 12 {
		t.Errorf("transporte = %v, want 12", totals["transporte"])
	}
	if totals["outros"] != 5 {
		t.Errorf("outros = %v, want 5", totals["outros"])
	}
	if _, ok := totals["lazer"]; ok {
		t.Error("row with unparseable date should be excluded")
	}

	for i := 1; i < len(got.Totals); i++ {
		if got.Totals[i-1].Category > got.Totals[i].Category {
			t.Fatalf("totals not ordered by category: %v", got.Totals)
		}
	}
}

func TestSummarizeErrors(t *testing.T) {
	ds := loadDataset(t, sampleCSV)

	tests := []struct {
		name    string
		ds      *models.Dataset
		start   string
		end     string
		wantErr error
	}{
		{name: "nil dataset", ds: nil, start: "2024-01-01", end: "2024-01-31", wantErr: models.ErrNoData},
		{name: "empty dataset", ds: loadDataset(t, "descricao,valor,data\n"), start: "2024-01-01", end: "2024-01-31", wantErr: models.ErrNoData},
		{name: "bad start", ds: ds, start: "01/01/2024", end: "2024-01-31", wantErr: models.ErrRangeParse},
		{name: "bad end", ds: ds, start: "2024-01-01", end: "2024-13-01", wantErr: models.ErrRangeParse},
		{name: "missing start", ds: ds, start: "", end: "2024-01-31", wantErr: models.ErrRangeParse},
		{name: "no category column", ds: loadDataset(t, "valor,data\n1,2024-01-01\n"), start: "2024-01-01", end: "2024-01-31", wantErr: models.ErrProcessing},
		{name: "no date column", ds: loadDataset(t, "descricao,valor\nUber,1\n"), start: "2024-01-01", end: "2024-01-31", wantErr: models.ErrProcessing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(tt.ds, tt.start, tt.end)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseBound(t *testing.T) {
	got, err := ParseBound(" 2024-1-5 ")
	if err != nil {
		t.Fatalf("ParseBound failed: %v", err)
	}
	if want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("ParseBound = %v, want %v", got, want)
	}
	if got.Format(DateLayout) != "2024-01-05" {
		t.Fatalf("canonical format = %s", got.Format(DateLayout))
	}
}

func TestParseRowDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{in: "2024-01-05", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-01-05 18:45:00", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "01/05/2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "1/5/2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "25/1/2024", want: time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2024/1/5", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "1-5-2024", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "2024-1-5", want: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{in: "ontem"},
		{in: ""},
	}
	for _, tt := range tests {
		got, ok := ParseRowDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseRowDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseRowDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSummarizeUnpaddedDates(t *testing.T) {
	ds := loadDataset(t, "descricao,valor,data\n"+
		"Uber,10,1/5/2024\n"+
		"Uber,20,2/5/2024\n")

	got, err := Summarize(ds, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if totals := totalsByCategory(got); totals["transporte"] != 10 {
		t.Fatalf("transporte = %v, want 10", totals["transporte"])
	}
}

func TestSummarizeUploadedCategoryColumn(t *testing.T) {
	ds := loadDataset(t, "valor,data,categoria\n"+
		"10,2024-01-02,viagem\n"+
		"5.5,2024-01-03,viagem\n"+
		"7,2024-01-04,casa\n")

	got, err := Summarize(ds, "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	want := []models.CategoryTotal{{Category: "casa", Amount: 7}, {Category: "viagem", Amount: 15.5}}
	if len(got.Totals) != len(want) || got.Totals[0] != want[0] || got.Totals[1] != want[1] {
		t.Fatalf("Totals = %v, want %v", got.Totals, want)
	}
}
