package dto

import "fleet-route-service/internal/domain"

type ClientResponse struct {
	ID           string `json:"id"`
	SocialReason string `json:"social_reason"`
	Address      string `json:"address"`
}

func NewClientResponse(c domain.Client) ClientResponse {
	return ClientResponse{ID: c.ID, SocialReason: c.SocialReason, Address: c.Address}
}

func NewClientListResponse(clients []domain.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, NewClientResponse(c))
	}
	return out
}

type AddClientRequest struct {
	SocialReason string `json:"social_reason"`
	Address      string `json:"address"`
}

type ImportClientsResponse struct {
	Imported int `json:"imported"`
}
