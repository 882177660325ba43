package handlers

import (
	"net/http"

	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/api/session"
	"fleet-route-service/internal/services"
)

type AuthHandler struct {
	auth     *services.AuthService
	sessions *session.Store
}

func NewAuthHandler(auth *services.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		respondErr(w, r, err)
		return
	}

	token := h.sessions.Create(identity)
	writeJSON(w, http.StatusOK, dto.NewLoginResponse(token, identity))
}

// Logout drops the caller's session. Unknown tokens are a no-op so the
// call is idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := session.BearerToken(r); token != "" {
		h.sessions.Delete(token)
	}
	w.WriteHeader(http.StatusNoContent)
}
