// Package session holds logins in process memory. Sessions do not survive
// a restart; only the secrets themselves are persisted.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"

	"fleet-route-service/internal/services"
)

type ctxKey struct{}

// Store maps bearer tokens to resolved identities.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]services.Identity
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]services.Identity)}
}

// Create registers identity under a fresh random token.
func (s *Store) Create(identity services.Identity) string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in no state to serve
		panic(err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = identity
	return token
}

func (s *Store) Get(token string) (services.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.sessions[token]
	return identity, ok
}

func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// BearerToken extracts the token from an Authorization: Bearer header,
// or returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// WithIdentity stashes the resolved identity for downstream handlers.
func WithIdentity(ctx context.Context, identity services.Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, identity)
}

// IdentityFrom returns the identity stored by the auth middleware.
func IdentityFrom(ctx context.Context) (services.Identity, bool) {
	identity, ok := ctx.Value(ctxKey{}).(services.Identity)
	return identity, ok
}
