package handlers

import (
	"net/http"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/api/session"
	"fleet-route-service/internal/services"
)

// DeliveryHandler is the driver surface. Every endpoint operates on the
// truck the authenticated driver is bound to; there is no truck parameter.
type DeliveryHandler struct {
	completions *services.CompletionService
}

func NewDeliveryHandler(completions *services.CompletionService) *DeliveryHandler {
	return &DeliveryHandler{completions: completions}
}

// List serves the driver's route in pending-first order. Positions refer
// to the underlying list so they stay valid as move targets.
func (h *DeliveryHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	view := h.completions.Deliveries(r.Context(), identity.TruckID)
	underlying := h.completions.Underlying(r.Context(), identity.TruckID)
	writeJSON(w, http.StatusOK, dto.NewDeliveryListResponse(view, underlying))
}

func (h *DeliveryHandler) Complete(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	delivery, err := h.completions.Complete(r.Context(), identity.TruckID, r.PathValue("id"))
	if err != nil {
		respondErr(w, r, err)
		return
	}

	underlying := h.completions.Underlying(r.Context(), identity.TruckID)
	position := 0
	for i, d := range underlying {
		if d.ID == delivery.ID {
			position = i
		}
	}
	writeJSON(w, http.StatusOK, dto.NewDeliveryResponse(delivery, position))
}

func (h *DeliveryHandler) Move(w http.ResponseWriter, r *http.Request) {
	identity, ok := session.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing session")
		return
	}

	var req dto.MoveDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.completions.Move(r.Context(), identity.TruckID, req.From, req.To); err != nil {
		respondErr(w, r, err)
		return
	}

	view := h.completions.Deliveries(r.Context(), identity.TruckID)
	underlying := h.completions.Underlying(r.Context(), identity.TruckID)
	writeJSON(w, http.StatusOK, dto.NewDeliveryListResponse(view, underlying))
}
