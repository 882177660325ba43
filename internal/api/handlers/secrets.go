package handlers

import (
	"context"
	"net/http"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/services"
)

// SecretHandler rotates the two standalone account passwords.
type SecretHandler struct {
	assignments *services.AssignmentService
}

func NewSecretHandler(assignments *services.AssignmentService) *SecretHandler {
	return &SecretHandler{assignments: assignments}
}

func (h *SecretHandler) SetAdmin(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.assignments.SetAdminPassword)
}

func (h *SecretHandler) SetConsult(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.assignments.SetConsultPassword)
}

func (h *SecretHandler) set(w http.ResponseWriter, r *http.Request, apply func(context.Context, string) error) {
	var req dto.ChangeSecretRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := apply(r.Context(), req.Password); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
