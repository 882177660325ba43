package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/state"
)

// DeliveryDraft is the admin's input for a new delivery. Meters arrives as
// raw user text; parsing rules live in the domain.
type DeliveryDraft struct {
	ClientID     string
	IsPackaged   bool
	Observations string
	InvoiceRef   string
	Meters       string
}

// AssignmentService holds the admin-side mutations: truck CRUD and the
// per-truck route lists. Every mutation rewrites the authoritative
// per-truck delivery mirror; the "all routes" view is derived on read.
type AssignmentService struct {
	db *state.DB
}

func NewAssignmentService(db *state.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

func (s *AssignmentService) ListTrucks(ctx context.Context) []domain.Truck {
	return s.db.Trucks(ctx)
}

// AddTruck creates a truck with fleet defaults and persists the roster.
func (s *AssignmentService) AddTruck(ctx context.Context) domain.Truck {
	trucks := s.db.Trucks(ctx)
	truck := domain.NewTruck(uuid.NewString(), len(trucks)+1)
	s.db.SaveTrucks(ctx, append(trucks, truck))
	return truck
}

// UpdateTruck replaces the truck with the same ID wholesale.
func (s *AssignmentService) UpdateTruck(ctx context.Context, truck domain.Truck) error {
	trucks := s.db.Trucks(ctx)
	for i := range trucks {
		if trucks[i].ID == truck.ID {
			trucks[i] = truck
			s.db.SaveTrucks(ctx, trucks)
			return nil
		}
	}
	return ErrTruckNotFound
}

// DeleteTruck removes a truck and cascades: its route entry, its delivery
// mirror, and its last known location all go with it.
func (s *AssignmentService) DeleteTruck(ctx context.Context, truckID string) error {
	trucks := s.db.Trucks(ctx)
	kept := make([]domain.Truck, 0, len(trucks))
	found := false
	for _, t := range trucks {
		if t.ID == truckID {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrTruckNotFound
	}

	s.db.SaveTrucks(ctx, kept)
	s.db.RemoveDeliveries(ctx, truckID)
	s.db.RemoveTruckLocation(ctx, truckID)
	return nil
}

// Routes projects the assigned-routes view from the per-truck mirrors.
// Trucks without deliveries are omitted.
func (s *AssignmentService) Routes(ctx context.Context) []domain.Route {
	routes := []domain.Route{}
	for _, truck := range s.db.Trucks(ctx) {
		deliveries := s.db.Deliveries(ctx, truck.ID)
		if len(deliveries) == 0 {
			continue
		}
		routes = append(routes, domain.Route{TruckID: truck.ID, Deliveries: deliveries})
	}
	return routes
}

// AddDelivery builds a pending delivery from the draft and appends it to
// the truck's route.
func (s *AssignmentService) AddDelivery(ctx context.Context, truckID string, draft DeliveryDraft) (domain.Delivery, error) {
	if strings.TrimSpace(truckID) == "" {
		return domain.Delivery{}, validationErr("a truck must be selected")
	}
	if strings.TrimSpace(draft.ClientID) == "" {
		return domain.Delivery{}, validationErr("a client must be selected")
	}

	if !s.truckExists(ctx, truckID) {
		return domain.Delivery{}, ErrTruckNotFound
	}

	client, ok := s.findClient(ctx, draft.ClientID)
	if !ok {
		return domain.Delivery{}, ErrClientNotFound
	}

	delivery := domain.Delivery{
		ID:           uuid.NewString(),
		ClientID:     client.ID,
		ClientName:   client.SocialReason,
		Address:      client.Address,
		IsPackaged:   draft.IsPackaged,
		Observations: draft.Observations,
		InvoiceRef:   domain.NormalizeInvoiceRef(strings.TrimSpace(draft.InvoiceRef)),
		Meters:       domain.ParseMeters(draft.Meters),
	}

	deliveries := s.db.Deliveries(ctx, truckID)
	s.db.SaveDeliveries(ctx, truckID, append(deliveries, delivery))
	return delivery, nil
}

// RemoveDelivery deletes a pending delivery from a truck's route. Removal
// of a completed delivery is refused; delivered records are history.
func (s *AssignmentService) RemoveDelivery(ctx context.Context, truckID, deliveryID string) error {
	deliveries := s.db.Deliveries(ctx, truckID)
	for i, d := range deliveries {
		if d.ID != deliveryID {
			continue
		}
		if d.Delivered() {
			return domain.ErrAlreadyDelivered
		}
		s.db.SaveDeliveries(ctx, truckID, append(deliveries[:i:i], deliveries[i+1:]...))
		return nil
	}
	return ErrDeliveryNotFound
}

// ClearRoutes drops every pending delivery fleet-wide. Delivered records
// stay as the day's history; mirrors that end up empty are removed.
func (s *AssignmentService) ClearRoutes(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	for _, truck := range s.db.Trucks(ctx) {
		deliveries := s.db.Deliveries(ctx, truck.ID)
		kept := make([]domain.Delivery, 0, len(deliveries))
		for _, d := range deliveries {
			if d.Delivered() {
				kept = append(kept, d)
			}
		}
		if len(kept) == len(deliveries) {
			continue
		}
		s.db.SaveDeliveries(ctx, truck.ID, kept)
	}
	return nil
}

// SetAdminPassword rotates the admin secret.
func (s *AssignmentService) SetAdminPassword(ctx context.Context, password string) error {
	if password == "" {
		return validationErr("password must not be empty")
	}
	s.db.SetAdminPassword(ctx, password)
	return nil
}

// SetConsultPassword rotates the consult secret.
func (s *AssignmentService) SetConsultPassword(ctx context.Context, password string) error {
	if password == "" {
		return validationErr("password must not be empty")
	}
	s.db.SetConsultPassword(ctx, password)
	return nil
}

func (s *AssignmentService) truckExists(ctx context.Context, truckID string) bool {
	for _, t := range s.db.Trucks(ctx) {
		if t.ID == truckID {
			return true
		}
	}
	return false
}

func (s *AssignmentService) findClient(ctx context.Context, clientID string) (domain.Client, bool) {
	for _, c := range s.db.Clients(ctx) {
		if c.ID == clientID {
			return c, true
		}
	}
	return domain.Client{}, false
}
