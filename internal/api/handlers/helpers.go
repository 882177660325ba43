package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
	"fleet-route-service/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("msg=encode_response_failed error=%q", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// respondErr maps service errors onto HTTP statuses.
func respondErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case services.IsValidation(err), errors.Is(err, services.ErrConfirmationRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrTruckNotFound),
		errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrDeliveryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyDelivered),
		errors.Is(err, services.ErrCompletionInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ports.ErrLocationUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Printf("msg=handler_error method=%s path=%s error=%q", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
