package services

import (
	"context"
	"slices"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/state"
)

// TruckSummary is one truck's completion counters.
type TruckSummary struct {
	TruckID     string
	TruckName   string
	Color       string
	Total       int
	Delivered   int
	Pending     int
	ProgressPct float64
}

// FleetSummary aggregates every truck for the consult dashboard.
type FleetSummary struct {
	Trucks    []TruckSummary
	Total     int
	Delivered int
	Pending   int
}

// TruckRouteDetail is one truck's route split for display: pending in the
// driver's order, delivered sorted by completion time.
type TruckRouteDetail struct {
	Truck     domain.Truck
	Pending   []domain.Delivery
	Delivered []domain.Delivery
}

// TruckPosition pairs a truck with its last known location, if any.
type TruckPosition struct {
	Truck    domain.Truck
	Location *domain.TruckLocation
}

// ReportService derives the read-only dashboard views. It never mutates;
// every call recomputes from the authoritative per-truck lists, so the
// dashboard stays consistent with admin and driver actions without any
// shared transaction.
type ReportService struct {
	db *state.DB
}

func NewReportService(db *state.DB) *ReportService {
	return &ReportService{db: db}
}

// Summary computes per-truck and fleet-wide completion counters.
func (s *ReportService) Summary(ctx context.Context) FleetSummary {
	out := FleetSummary{Trucks: []TruckSummary{}}
	for _, truck := range s.db.Trucks(ctx) {
		p := domain.Progress(s.db.Deliveries(ctx, truck.ID))
		out.Trucks = append(out.Trucks, TruckSummary{
			TruckID:     truck.ID,
			TruckName:   truck.Name,
			Color:       truck.Color,
			Total:       p.Total,
			Delivered:   p.Delivered,
			Pending:     p.Pending,
			ProgressPct: p.ProgressPct,
		})
		out.Total += p.Total
		out.Delivered += p.Delivered
		out.Pending += p.Pending
	}
	return out
}

// RouteDetail returns every truck's route for the dashboard. Delivered
// entries are sorted by completion time ascending.
func (s *ReportService) RouteDetail(ctx context.Context) []TruckRouteDetail {
	out := []TruckRouteDetail{}
	for _, truck := range s.db.Trucks(ctx) {
		detail := TruckRouteDetail{Truck: truck, Pending: []domain.Delivery{}, Delivered: []domain.Delivery{}}
		for _, d := range s.db.Deliveries(ctx, truck.ID) {
			if d.Delivered() {
				detail.Delivered = append(detail.Delivered, d)
			} else {
				detail.Pending = append(detail.Pending, d)
			}
		}

		slices.SortStableFunc(detail.Delivered, func(a, b domain.Delivery) int {
			return a.Completion.DeliveredAt.Compare(b.Completion.DeliveredAt)
		})

		out = append(out, detail)
	}
	return out
}

// Positions returns each truck's last known location. Trucks that never
// reported one carry a nil location.
func (s *ReportService) Positions(ctx context.Context) []TruckPosition {
	out := []TruckPosition{}
	for _, truck := range s.db.Trucks(ctx) {
		pos := TruckPosition{Truck: truck}
		if loc, ok := s.db.TruckLocation(ctx, truck.ID); ok {
			pos.Location = &loc
		}
		out = append(out, pos)
	}
	return out
}
