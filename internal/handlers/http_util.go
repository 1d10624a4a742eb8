package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wrtgvr/statusboard/internal/domain"
	errs "github.com/wrtgvr/statusboard/internal/errors"
)

// shortcut for `http.Error()`
func (h *HTTPHandler) error(w http.ResponseWriter, code int, msg string) {
	http.Error(w, msg, code)
}

// shortcut for `HttpHandler.error()` with code 500 and msg `internal server error`
func (h *HTTPHandler) internalError(w http.ResponseWriter) {
	h.error(w, http.StatusInternalServerError, "internal server error")
}

// Respond with the code and message of `err`.
// Internal errors are logged and their details hidden.
func (h *HTTPHandler) appError(w http.ResponseWriter, r *http.Request, err *errs.AppError) {
	if err.Type == errs.TypeInternal {
		h.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		h.internalError(w)
		return
	}
	h.error(w, err.Code, err.Msg)
}

// Decode request body to `v`.
// Response with BadRequest on decode error
func (h *HTTPHandler) decodeJSONRequestBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return err
	}
	return nil
}

// Encode `v` to `w` with status `successCode`.
// Response with InternalServerError when `v` cannot be marshaled
func (h *HTTPHandler) encodeJSONResponse(w http.ResponseWriter, v any, successCode int) error {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to marshal response")
		http.Error(w, "Failed to marshal JSON", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successCode)
	_, err = w.Write(append(b, '\n'))
	return err
}

func (h *HTTPHandler) domainServiceToDTO(svc *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:       svc.ID,
		Name:     svc.Name,
		Address:  svc.Address,
		Port:     svc.Port,
		Protocol: svc.Protocol,
	}
}

func (h *HTTPHandler) domainStatusToDTO(st *domain.ServiceStatus) *ServiceStatusResponse {
	return &ServiceStatusResponse{
		ServiceName: st.ServiceName,
		Status:      st.Status,
	}
}
