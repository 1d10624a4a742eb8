package api

import (
	"net/http"

	"github.com/wrtgvr/statusboard/internal/handlers"
)

func RegisterRoutes(mux *http.ServeMux, h handlers.Handler, metrics http.Handler) {
	//* status api
	mux.HandleFunc("GET /status", h.ListStatusIDs)
	mux.HandleFunc("GET /status/{id}", h.GetServiceStatus)
	mux.HandleFunc("GET /version", h.Version)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	//* services registry
	mux.HandleFunc("GET /api/services", h.GetServices)
	mux.HandleFunc("POST /api/services", h.PostService)
	mux.HandleFunc("PATCH /api/services/{id}", h.PatchService)
	mux.HandleFunc("DELETE /api/services/{id}", h.DeleteService)
	//* dashboard
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /api/board", h.GetBoard)
	mux.HandleFunc("GET /api/board-sse", h.BoardSSE)
	//* metrics
	mux.Handle("GET /metrics", metrics)
}
