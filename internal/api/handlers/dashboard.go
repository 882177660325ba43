package handlers

import (
	"net/http"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/services"
)

// DashboardHandler serves the read-only consult views.
type DashboardHandler struct {
	reports *services.ReportService
}

func NewDashboardHandler(reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewFleetSummaryResponse(h.reports.Summary(r.Context())))
}

func (h *DashboardHandler) Routes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewRouteDetailListResponse(h.reports.RouteDetail(r.Context())))
}

func (h *DashboardHandler) Locations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewPositionsResponse(h.reports.Positions(r.Context())))
}
