package models

// CategoryTotal is one entry of total_por_categoria.
type CategoryTotal struct {
	Category string  `json:"categoria"`
	Amount   float64 `json:"valor"`
}

// Summary is the per-category total of the rows dated within a range.
type Summary struct {
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Totals    []CategoryTotal `json:"total_por_categoria"`
}
