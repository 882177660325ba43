package dto

import (
	"time"

	"fleet-route-service/internal/adapters/geo"
	"fleet-route-service/internal/domain"
)

// DeliveryResponse renders one drop-off. Position is the delivery's index
// in the truck's underlying list, which is what the move operation takes;
// the list itself may be served in pending-first order.
type DeliveryResponse struct {
	ID           string     `json:"id"`
	Position     int        `json:"position"`
	ClientID     string     `json:"client_id"`
	ClientName   string     `json:"client_name"`
	Address      string     `json:"address"`
	IsPackaged   bool       `json:"is_packaged"`
	Observations string     `json:"observations"`
	InvoiceRef   string     `json:"invoice_ref"`
	Meters       float64    `json:"meters"`
	MetersLabel  string     `json:"meters_label"`
	Delivered    bool       `json:"delivered"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	TimeLabel    string     `json:"time_label,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	MapURL       string     `json:"map_url,omitempty"`
}

func NewDeliveryResponse(d domain.Delivery, position int) DeliveryResponse {
	out := DeliveryResponse{
		ID:           d.ID,
		Position:     position,
		ClientID:     d.ClientID,
		ClientName:   d.ClientName,
		Address:      d.Address,
		IsPackaged:   d.IsPackaged,
		Observations: d.Observations,
		InvoiceRef:   d.InvoiceRef,
		Meters:       d.Meters,
		MetersLabel:  domain.FormatMeters(d.Meters),
		Delivered:    d.Delivered(),
	}
	if d.Completion != nil {
		at := d.Completion.DeliveredAt
		lat := d.Completion.Location.Latitude
		lon := d.Completion.Location.Longitude
		out.DeliveredAt = &at
		out.TimeLabel = d.Completion.TimeLabel()
		out.Latitude = &lat
		out.Longitude = &lon
		out.MapURL = geo.MapLink(d.Completion.Location)
	}
	return out
}

// NewDeliveryListResponse renders view in order while reporting each
// delivery's position in underlying, so indices stay valid for moves.
func NewDeliveryListResponse(view, underlying []domain.Delivery) []DeliveryResponse {
	position := make(map[string]int, len(underlying))
	for i, d := range underlying {
		position[d.ID] = i
	}

	out := make([]DeliveryResponse, 0, len(view))
	for _, d := range view {
		out = append(out, NewDeliveryResponse(d, position[d.ID]))
	}
	return out
}

type RouteResponse struct {
	TruckID    string             `json:"truck_id"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

func NewRouteListResponse(routes []domain.Route) []RouteResponse {
	out := make([]RouteResponse, 0, len(routes))
	for _, r := range routes {
		out = append(out, RouteResponse{
			TruckID:    r.TruckID,
			Deliveries: NewDeliveryListResponse(r.Deliveries, r.Deliveries),
		})
	}
	return out
}

type AddDeliveryRequest struct {
	ClientID     string `json:"client_id"`
	IsPackaged   bool   `json:"is_packaged"`
	Observations string `json:"observations"`
	InvoiceRef   string `json:"invoice_ref"`
	Meters       string `json:"meters"`
}

type MoveDeliveryRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}
