package handlers

import (
	"net/http"
	"strings"
)

// GET /status
func (h *HTTPHandler) ListStatusIDs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	services, err := h.storage.ListServices(ctx)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	ids := make([]string, 0, len(services))
	for _, svc := range services {
		ids = append(ids, svc.ID)
	}

	h.encodeJSONResponse(w, ids, http.StatusOK)
}

// GET /status/{id}
func (h *HTTPHandler) GetServiceStatus(w http.ResponseWriter, r *http.Request) {
	//* get id from path
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		h.error(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	svc, appErr := h.storage.GetService(ctx, id)
	if appErr != nil {
		h.appError(w, r, appErr)
		return
	}

	//* probe
	status, err := h.prober.Check(ctx, svc)
	if err != nil {
		h.log.Error().Err(err).Str("service_id", id).Msg("error checking service status")
		h.error(w, http.StatusInternalServerError, "Error checking service status")
		return
	}

	h.encodeJSONResponse(w, h.domainStatusToDTO(status), http.StatusOK)
}

// GET /version
func (h *HTTPHandler) Version(w http.ResponseWriter, r *http.Request) {
	h.encodeJSONResponse(w, VersionResponse{Version: h.version}, http.StatusOK)
}

// GET /healthz
func (h *HTTPHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	h.encodeJSONResponse(w, ProbeResponse{Status: "ok"}, http.StatusOK)
}

// GET /readyz
func (h *HTTPHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		h.encodeJSONResponse(w, ProbeResponse{Status: "not ready"}, http.StatusServiceUnavailable)
		return
	}
	h.encodeJSONResponse(w, ProbeResponse{Status: "ready"}, http.StatusOK)
}
