package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gerenciador-gastos/internal/ingest"
	"gerenciador-gastos/internal/logger"
	"gerenciador-gastos/internal/models"
)

// Upload normalizes the multipart "file" field and makes it the active
// dataset. Nothing is replaced when any step fails.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: file larger than %d bytes", models.ErrIngest, tooLarge.Limit)
		} else {
			err = fmt.Errorf("%w: failed to parse form: %v", models.ErrIngest, err)
		}
		h.writeError(w, r, err, uploadFailMessage)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: no file provided in field \"file\"", models.ErrIngest), uploadFailMessage)
		return
	}
	defer file.Close()

	log.Info().Str("filename", header.Filename).Int64("size", header.Size).Msg("Upload received")

	table, err := ingest.Read(header.Filename, file)
	if err != nil {
		h.writeError(w, r, err, uploadFailMessage)
		return
	}

	result, err := ingest.Normalize(table, header.Filename)
	if err != nil {
		h.writeError(w, r, err, uploadFailMessage)
		return
	}

	if err := h.datasets.Replace(r.Context(), result.Dataset); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: store dataset: %v", models.ErrProcessing, err), uploadFailMessage)
		return
	}

	log.Info().
		Str("dataset_id", result.Dataset.ID).
		Str("filename", header.Filename).
		Int("num_rows", result.NumRows).
		Int("dropped_rows", result.Dataset.Dropped).
		Msg("Dataset replaced")

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"columns":     result.Columns,
		"num_rows":    result.NumRows,
		"sample_data": result.Sample,
		"message":     uploadOKMessage,
	})
}
