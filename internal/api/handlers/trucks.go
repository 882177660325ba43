package handlers

import (
	"net/http"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/services"
)

type TruckHandler struct {
	assignments *services.AssignmentService
}

func NewTruckHandler(assignments *services.AssignmentService) *TruckHandler {
	return &TruckHandler{assignments: assignments}
}

func (h *TruckHandler) List(w http.ResponseWriter, r *http.Request) {
	trucks := h.assignments.ListTrucks(r.Context())
	writeJSON(w, http.StatusOK, dto.NewTruckListResponse(trucks))
}

// Create appends a truck with default name, driver, password and color;
// the admin edits it afterwards.
func (h *TruckHandler) Create(w http.ResponseWriter, r *http.Request) {
	truck := h.assignments.AddTruck(r.Context())
	writeJSON(w, http.StatusCreated, dto.NewTruckResponse(truck))
}

func (h *TruckHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTruckRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	truck := req.Apply(r.PathValue("id"))
	if err := h.assignments.UpdateTruck(r.Context(), truck); err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.NewTruckResponse(truck))
}

func (h *TruckHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.assignments.DeleteTruck(r.Context(), r.PathValue("id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
