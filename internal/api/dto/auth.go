// Package dto defines the request and response shapes of the HTTP API.
// Mapping from domain types happens here so handlers stay thin.
package dto

import "fleet-route-service/internal/services"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	Username  string `json:"username"`
	TruckID   string `json:"truck_id,omitempty"`
	TruckName string `json:"truck_name,omitempty"`
}

func NewLoginResponse(token string, identity services.Identity) LoginResponse {
	return LoginResponse{
		Token:     token,
		Role:      string(identity.Role),
		Username:  identity.Username,
		TruckID:   identity.TruckID,
		TruckName: identity.TruckName,
	}
}

type ChangeSecretRequest struct {
	Password string `json:"password"`
}
