package dto

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"fleet-route-service/internal/services"
)

type TruckSummaryResponse struct {
	TruckID     string  `json:"truck_id"`
	TruckName   string  `json:"truck_name"`
	Color       string  `json:"color"`
	Total       int     `json:"total"`
	Delivered   int     `json:"delivered"`
	Pending     int     `json:"pending"`
	ProgressPct float64 `json:"progress_pct"`
}

type FleetSummaryResponse struct {
	Trucks    []TruckSummaryResponse `json:"trucks"`
	Total     int                    `json:"total"`
	Delivered int                    `json:"delivered"`
	Pending   int                    `json:"pending"`
}

func NewFleetSummaryResponse(s services.FleetSummary) FleetSummaryResponse {
	out := FleetSummaryResponse{
		Trucks:    make([]TruckSummaryResponse, 0, len(s.Trucks)),
		Total:     s.Total,
		Delivered: s.Delivered,
		Pending:   s.Pending,
	}
	for _, t := range s.Trucks {
		out.Trucks = append(out.Trucks, TruckSummaryResponse{
			TruckID:     t.TruckID,
			TruckName:   t.TruckName,
			Color:       t.Color,
			Total:       t.Total,
			Delivered:   t.Delivered,
			Pending:     t.Pending,
			ProgressPct: t.ProgressPct,
		})
	}
	return out
}

type RouteDetailResponse struct {
	Truck     TruckPublicResponse `json:"truck"`
	Pending   []DeliveryResponse  `json:"pending"`
	Delivered []DeliveryResponse  `json:"delivered"`
}

func NewRouteDetailListResponse(details []services.TruckRouteDetail) []RouteDetailResponse {
	out := make([]RouteDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, RouteDetailResponse{
			Truck:     NewTruckPublicResponse(d.Truck),
			Pending:   NewDeliveryListResponse(d.Pending, d.Pending),
			Delivered: NewDeliveryListResponse(d.Delivered, d.Delivered),
		})
	}
	return out
}

// NewPositionsResponse renders last known truck positions as a GeoJSON
// FeatureCollection, ready for a map layer. Trucks without a known
// position are omitted.
func NewPositionsResponse(positions []services.TruckPosition) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, p := range positions {
		if p.Location == nil {
			continue
		}
		f := geojson.NewFeature(orb.Point{p.Location.Longitude, p.Location.Latitude})
		f.Properties = geojson.Properties{
			"truck_id":   p.Truck.ID,
			"truck_name": p.Truck.Name,
			"color":      p.Truck.Color,
			"timestamp":  p.Location.Timestamp,
		}
		fc.Append(f)
	}
	return fc
}
