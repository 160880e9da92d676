package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"gerenciador-gastos/internal/logger"
	"gerenciador-gastos/internal/models"
	"gerenciador-gastos/internal/summary"
)

// Summary totals the active dataset by category between start_date and
// end_date, both inclusive.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	var missing []string
	if strings.TrimSpace(startDate) == "" {
		missing = append(missing, "start_date")
	}
	if strings.TrimSpace(endDate) == "" {
		missing = append(missing, "end_date")
	}
	if len(missing) > 0 {
		err := fmt.Errorf("%w: missing query parameter %s", models.ErrRangeParse, strings.Join(missing, ", "))
		h.writeError(w, r, err, summaryFailMessage)
		return
	}

	ds, err := h.datasets.Current(r.Context())
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: load dataset: %v", models.ErrProcessing, err), summaryFailMessage)
		return
	}

	result, err := summary.Summarize(ds, startDate, endDate)
	if err != nil {
		h.writeError(w, r, err, summaryFailMessage)
		return
	}

	log := logger.FromContext(r.Context())
	log.Debug().
		Str("dataset_id", ds.ID).
		Str("start_date", result.StartDate).
		Str("end_date", result.EndDate).
		Int("categories", len(result.Totals)).
		Msg("Summary computed")

	writeJSON(w, http.StatusOK, result)
}
