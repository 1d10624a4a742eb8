package handlers

import (
	"net/http"
	"strings"

	"github.com/wrtgvr/statusboard/internal/domain"
)

// GET /api/services
func (h *HTTPHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	//* storage request
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	services, err := h.storage.ListServices(ctx)
	if err != nil {
		h.appError(w, r, err)
		return
	}

	//* http response
	resp := make([]*ServiceResponse, len(services))
	for i, svc := range services {
		resp[i] = h.domainServiceToDTO(svc)
	}

	h.encodeJSONResponse(w, resp, http.StatusOK)
}

// POST /api/services
func (h *HTTPHandler) PostService(w http.ResponseWriter, r *http.Request) {
	//* decode request
	var req CreateServiceRequest
	if err := h.decodeJSONRequestBody(w, r, &req); err != nil {
		return
	}

	//* storage request
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	added, err := h.storage.AddService(ctx, &domain.Service{
		ID:       req.ID,
		Name:     req.Name,
		Address:  req.Address,
		Port:     req.Port,
		Protocol: req.Protocol,
	})
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.log.Info().Str("service_id", added.ID).Msg("service registered")

	//* http response
	h.encodeJSONResponse(w, h.domainServiceToDTO(added), http.StatusCreated)
}

// PATCH /api/services/{id}
func (h *HTTPHandler) PatchService(w http.ResponseWriter, r *http.Request) {
	//* get id from path
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		h.error(w, http.StatusBadRequest, "id is required")
		return
	}

	//* decode request
	var req UpdateServiceRequest
	if err := h.decodeJSONRequestBody(w, r, &req); err != nil {
		return
	}

	//* check request
	if req == (UpdateServiceRequest{}) {
		h.error(w, http.StatusBadRequest, "required at least one field to update")
		return
	}

	//* storage request
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	updated, err := h.storage.UpdateService(ctx, &domain.Service{
		ID:       id,
		Name:     req.Name,
		Address:  req.Address,
		Port:     req.Port,
		Protocol: req.Protocol,
	})
	if err != nil {
		h.appError(w, r, err)
		return
	}

	h.encodeJSONResponse(w, h.domainServiceToDTO(updated), http.StatusOK)
}

// DELETE /api/services/{id}
func (h *HTTPHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	//* get id from path
	id := r.PathValue("id")
	if strings.TrimSpace(id) == "" {
		h.error(w, http.StatusBadRequest, "id is required")
		return
	}

	//* storage request
	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	if err := h.storage.DeleteService(ctx, id); err != nil {
		h.appError(w, r, err)
		return
	}

	h.log.Info().Str("service_id", id).Msg("service removed")

	//* response
	w.WriteHeader(http.StatusNoContent)
}
