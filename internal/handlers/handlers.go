package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gerenciador-gastos/internal/logger"
	"gerenciador-gastos/internal/models"
	"gerenciador-gastos/internal/repository"
)

const (
	homeMessage        = "API do Gerenciador de Gastos Funcionando!"
	noDataMessage      = "Nenhum arquivo CSV foi carregado ainda."
	uploadOKMessage    = "Arquivo processado com sucesso"
	uploadFailMessage  = "Erro ao processar arquivo."
	summaryFailMessage = "Erro ao gerar resumo de gastos."
)

type Options struct {
	MaxUploadBytes int64
	// LegacyErrorStatus answers failures with 200 and an error body.
	LegacyErrorStatus bool
}

type Handler struct {
	datasets repository.DatasetRepository
	opts     Options
}

func New(datasets repository.DatasetRepository, opts Options) *Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	return &Handler{
		datasets: datasets,
		opts:     opts,
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": homeMessage,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]interface{}{
		"error": "Not Found",
	})
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{
		"error": "Method Not Allowed",
	})
}

// writeError reports err as {error, message}. The status follows the error
// kind unless legacy mode is on.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := statusFor(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(message)
	} else {
		log.Warn().Err(err).Msg(message)
	}

	if h.opts.LegacyErrorStatus {
		status = http.StatusOK
	}

	body := map[string]interface{}{"error": err.Error()}
	if errors.Is(err, models.ErrNoData) {
		body["error"] = noDataMessage
	} else if message != "" {
		body["message"] = message
	}
	writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrIngest), errors.Is(err, models.ErrRangeParse):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
