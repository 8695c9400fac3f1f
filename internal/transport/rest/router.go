package rest

import "net/http"

// NewRouter mounts the probes and the metrics handler.
func NewRouter(h *HealthHandler, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", metrics)
	return mux
}
