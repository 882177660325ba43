package handlers

import (
	"net/http"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/services"
)

// RouteHandler covers the admin's assignment surface: listing every
// non-empty route, adding and removing deliveries, and the bulk clear.
type RouteHandler struct {
	assignments *services.AssignmentService
}

func NewRouteHandler(assignments *services.AssignmentService) *RouteHandler {
	return &RouteHandler{assignments: assignments}
}

func (h *RouteHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewRouteListResponse(h.assignments.Routes(r.Context())))
}

func (h *RouteHandler) AddDelivery(w http.ResponseWriter, r *http.Request) {
	var req dto.AddDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	delivery, err := h.assignments.AddDelivery(r.Context(), r.PathValue("truckId"), services.DeliveryDraft{
		ClientID:     req.ClientID,
		IsPackaged:   req.IsPackaged,
		Observations: req.Observations,
		InvoiceRef:   req.InvoiceRef,
		Meters:       req.Meters,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}

	// New deliveries always land at the end of the truck's list.
	position := 0
	for _, route := range h.assignments.Routes(r.Context()) {
		if route.TruckID == r.PathValue("truckId") {
			position = len(route.Deliveries) - 1
		}
	}
	writeJSON(w, http.StatusCreated, dto.NewDeliveryResponse(delivery, position))
}

func (h *RouteHandler) RemoveDelivery(w http.ResponseWriter, r *http.Request) {
	err := h.assignments.RemoveDelivery(r.Context(), r.PathValue("truckId"), r.PathValue("deliveryId"))
	if err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear drops every pending delivery on every route; delivered records
// survive. Requires ?confirm=true.
func (h *RouteHandler) Clear(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.assignments.ClearRoutes(r.Context(), confirmed); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
