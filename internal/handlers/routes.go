package handlers

import (
	"net/http"

	"gerenciador-gastos/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// NewRouter registers the API routes. CORS wraps the router so preflight
// requests are answered before route matching.
func NewRouter(h *Handler, log zerolog.Logger, corsOrigin string) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	r.HandleFunc("/", h.Home).Methods("GET")
	r.HandleFunc("/healthz", h.Health).Methods("GET")
	r.HandleFunc("/categorias", h.GetCategories).Methods("GET")

	r.HandleFunc("/upload/", h.Upload).Methods("POST")
	r.HandleFunc("/upload", h.Upload).Methods("POST")
	r.HandleFunc("/resumo", h.Summary).Methods("GET")
	r.HandleFunc("/resumo/", h.Summary).Methods("GET")

	var handler http.Handler = r
	handler = middleware.Recovery(log)(handler)
	handler = middleware.Logger(log)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.CORS(corsOrigin)(handler)
	return handler
}
