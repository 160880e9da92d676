package handlers

import (
	"net/http"

	"gerenciador-gastos/internal/categorizer"
)

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categorias": categorizer.Categories(),
		"padrao":     categorizer.Default,
	})
}
