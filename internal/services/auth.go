package services

import (
	"context"
	"strings"

	"fleet-route-service/internal/state"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDriver  Role = "driver"
	RoleConsult Role = "consult"
)

// Identity is a resolved login. Driver identities are bound to their truck.
type Identity struct {
	Username  string
	Role      Role
	TruckID   string
	TruckName string
}

// Usernames of the two standalone accounts.
const (
	adminUsername   = "admin"
	consultUsername = "Consultas"
)

// AuthService resolves credentials against the truck roster and the two
// standalone secrets. Passwords are compared in plaintext; this is a
// local-only tool with no security ambitions.
type AuthService struct {
	db *state.DB
}

func NewAuthService(db *state.DB) *AuthService {
	return &AuthService{db: db}
}

// Authenticate resolves username/password to a role. Checks run in order:
// admin, then drivers, then the consult account; the first match wins.
// Every failure is the same generic error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	trimmed := strings.TrimSpace(username)

	if trimmed == adminUsername && password == s.db.AdminPassword(ctx) {
		return Identity{Username: trimmed, Role: RoleAdmin}, nil
	}

	for _, truck := range s.db.Trucks(ctx) {
		if strings.TrimSpace(truck.DriverName) == trimmed && truck.Password == password {
			return Identity{
				Username:  trimmed,
				Role:      RoleDriver,
				TruckID:   truck.ID,
				TruckName: truck.Name,
			}, nil
		}
	}

	if trimmed == consultUsername && password == s.db.ConsultPassword(ctx) {
		return Identity{Username: consultUsername, Role: RoleConsult}, nil
	}

	return Identity{}, ErrInvalidCredentials
}
