package dto

import "fleet-route-service/internal/domain"

// TruckResponse is the admin view of a truck. The password is included:
// the admin screen is where driver passwords are set and read back.
type TruckResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DriverName string `json:"driver_name"`
	Password   string `json:"password"`
	Color      string `json:"color"`
}

func NewTruckResponse(t domain.Truck) TruckResponse {
	return TruckResponse{
		ID:         t.ID,
		Name:       t.Name,
		DriverName: t.DriverName,
		Password:   t.Password,
		Color:      t.Color,
	}
}

func NewTruckListResponse(trucks []domain.Truck) []TruckResponse {
	out := make([]TruckResponse, 0, len(trucks))
	for _, t := range trucks {
		out = append(out, NewTruckResponse(t))
	}
	return out
}

// TruckPublicResponse is the truck shape served to non-admin roles; it
// carries no password.
type TruckPublicResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	DriverName string `json:"driver_name"`
	Color      string `json:"color"`
}

func NewTruckPublicResponse(t domain.Truck) TruckPublicResponse {
	return TruckPublicResponse{ID: t.ID, Name: t.Name, DriverName: t.DriverName, Color: t.Color}
}

// UpdateTruckRequest replaces every editable field of a truck.
type UpdateTruckRequest struct {
	Name       string `json:"name"`
	DriverName string `json:"driver_name"`
	Password   string `json:"password"`
	Color      string `json:"color"`
}

func (r UpdateTruckRequest) Apply(id string) domain.Truck {
	return domain.Truck{
		ID:         id,
		Name:       r.Name,
		DriverName: r.DriverName,
		Password:   r.Password,
		Color:      r.Color,
	}
}
