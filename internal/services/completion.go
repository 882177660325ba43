package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/ports"
	"fleet-route-service/internal/state"
)

// How long a single location fix may take before the transition is
// treated as failed.
const defaultLocateTimeout = 8 * time.Second

// CompletionService is the driver-side state machine: it moves deliveries
// from pending to delivered, capturing time and location together, and
// handles manual reordering of the pending queue.
//
// The underlying per-truck list keeps the driver's manual order; the
// pending-first view is recomputed on read, never persisted.
type CompletionService struct {
	db      *state.DB
	locator ports.Locator
	timeout time.Duration
	now     func() time.Time

	mu       sync.Mutex
	inflight map[string]struct{}
}

func NewCompletionService(db *state.DB, locator ports.Locator) *CompletionService {
	return &CompletionService{
		db:       db,
		locator:  locator,
		timeout:  defaultLocateTimeout,
		now:      time.Now,
		inflight: make(map[string]struct{}),
	}
}

// Deliveries returns the truck's list in presentation order: pending first
// in the driver's manual order, delivered after.
func (s *CompletionService) Deliveries(ctx context.Context, truckID string) []domain.Delivery {
	return domain.PendingFirst(s.db.Deliveries(ctx, truckID))
}

// Underlying returns the raw stored list. Manual-move indices refer to
// positions in this list, not the pending-first view.
func (s *CompletionService) Underlying(ctx context.Context, truckID string) []domain.Delivery {
	return s.db.Deliveries(ctx, truckID)
}

// Complete transitions one pending delivery to delivered.
//
// The transition is all-or-nothing: a location fix is acquired first
// (bounded by the service timeout) and only then are the delivered flag,
// timestamp and location committed together. A failed fix leaves the
// record untouched. Attempts against an already delivered record are
// refused; there is no undo. At most one attempt may be in flight per
// delivery.
func (s *CompletionService) Complete(ctx context.Context, truckID, deliveryID string) (domain.Delivery, error) {
	if !s.acquire(deliveryID) {
		return domain.Delivery{}, ErrCompletionInFlight
	}
	defer s.release(deliveryID)

	deliveries := s.db.Deliveries(ctx, truckID)
	idx := -1
	for i := range deliveries {
		if deliveries[i].ID == deliveryID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return domain.Delivery{}, ErrDeliveryNotFound
	}
	if deliveries[idx].Delivered() {
		return domain.Delivery{}, domain.ErrAlreadyDelivered
	}

	locateCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fix, err := s.locator.Locate(locateCtx, truckID)
	if err != nil {
		return domain.Delivery{}, fmt.Errorf("complete delivery %s: %w: %v", deliveryID, ports.ErrLocationUnavailable, err)
	}

	if err := deliveries[idx].MarkDelivered(s.now(), fix); err != nil {
		return domain.Delivery{}, err
	}

	s.db.SaveDeliveries(ctx, truckID, deliveries)
	return deliveries[idx], nil
}

// Move splices one pending delivery to a new position in the underlying
// list. Delivered entries are neither draggable nor valid drop targets.
func (s *CompletionService) Move(ctx context.Context, truckID string, from, to int) error {
	deliveries := s.db.Deliveries(ctx, truckID)

	if from < 0 || from >= len(deliveries) || to < 0 || to >= len(deliveries) {
		return validationErr("move position out of range")
	}
	if deliveries[from].Delivered() || deliveries[to].Delivered() {
		return validationErr("completed deliveries cannot be reordered")
	}
	if from == to {
		return nil
	}

	moved := deliveries[from]
	rest := append(deliveries[:from:from], deliveries[from+1:]...)

	out := make([]domain.Delivery, 0, len(deliveries))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)

	s.db.SaveDeliveries(ctx, truckID, out)
	return nil
}

func (s *CompletionService) acquire(deliveryID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[deliveryID]; busy {
		return false
	}
	s.inflight[deliveryID] = struct{}{}
	return true
}

func (s *CompletionService) release(deliveryID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, deliveryID)
}
