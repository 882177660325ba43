package services

import (
	"context"
	"errors"
	"testing"

	"fleet-route-service/internal/adapters/store"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/state"
)

func newTestDB(t *testing.T) *state.DB {
	t.Helper()
	return state.New(store.NewMemoryStore())
}

func TestAuthenticateAdmin(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)
	ctx := context.Background()

	id, err := auth.Authenticate(ctx, "admin", state.DefaultAdminPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Role != RoleAdmin {
		t.Fatalf("role = %q, want admin", id.Role)
	}

	// wrong secret yields the same generic failure as any other mismatch
	if _, err := auth.Authenticate(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateDriver(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.SaveTrucks(ctx, []domain.Truck{
		{ID: "truck1", Name: "Camioneta 1", DriverName: "Beto ", Password: "123"},
		{ID: "truck2", Name: "Camioneta 2", DriverName: "Juan", Password: "456"},
	})

	auth := NewAuthService(db)

	id, err := auth.Authenticate(ctx, "  Beto ", "123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Role != RoleDriver || id.TruckID != "truck1" || id.TruckName != "Camioneta 1" {
		t.Fatalf("identity = %+v", id)
	}

	if _, err := auth.Authenticate(ctx, "Juan", "123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateConsult(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(db)
	ctx := context.Background()

	id, err := auth.Authenticate(ctx, "Consultas", state.DefaultConsultPassword)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Role != RoleConsult {
		t.Fatalf("role = %q, want consult", id.Role)
	}

	if _, err := auth.Authenticate(ctx, "nobody", "password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthenticateUsesRotatedSecrets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	db.SetAdminPassword(ctx, "rotated")

	auth := NewAuthService(db)

	if _, err := auth.Authenticate(ctx, "admin", state.DefaultAdminPassword); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old secret should no longer work, err = %v", err)
	}
	if _, err := auth.Authenticate(ctx, "admin", "rotated"); err != nil {
		t.Fatalf("rotated secret rejected: %v", err)
	}
}
