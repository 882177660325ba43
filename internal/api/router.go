package api

import (
	"net/http"

	"fleet-route-service/internal/api/handlers"
	"fleet-route-service/internal/api/session"
	"fleet-route-service/internal/services"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth        *services.AuthService
	Assignments *services.AssignmentService
	Clients     *services.ClientService
	Completions *services.CompletionService
	Reports     *services.ReportService
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc Services, sessions *session.Store) http.Handler {
	mux := http.NewServeMux()

	authHandler := handlers.NewAuthHandler(svc.Auth, sessions)
	truckHandler := handlers.NewTruckHandler(svc.Assignments)
	clientHandler := handlers.NewClientHandler(svc.Clients)
	routeHandler := handlers.NewRouteHandler(svc.Assignments)
	secretHandler := handlers.NewSecretHandler(svc.Assignments)
	deliveryHandler := handlers.NewDeliveryHandler(svc.Completions)
	dashboardHandler := handlers.NewDashboardHandler(svc.Reports)

	admin := func(h http.HandlerFunc) http.Handler {
		return requireRole(sessions, h, services.RoleAdmin)
	}
	driver := func(h http.HandlerFunc) http.Handler {
		return requireRole(sessions, h, services.RoleDriver)
	}
	// The dashboard is the consult account's whole purpose, but the admin
	// may read it too.
	consult := func(h http.HandlerFunc) http.Handler {
		return requireRole(sessions, h, services.RoleConsult, services.RoleAdmin)
	}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	mux.Handle("GET /admin/trucks", admin(truckHandler.List))
	mux.Handle("POST /admin/trucks", admin(truckHandler.Create))
	mux.Handle("PUT /admin/trucks/{id}", admin(truckHandler.Update))
	mux.Handle("DELETE /admin/trucks/{id}", admin(truckHandler.Delete))

	mux.Handle("GET /admin/clients", admin(clientHandler.List))
	mux.Handle("POST /admin/clients", admin(clientHandler.Create))
	mux.Handle("DELETE /admin/clients", admin(clientHandler.Clear))
	mux.Handle("DELETE /admin/clients/{id}", admin(clientHandler.Delete))
	mux.Handle("GET /admin/clients/search", admin(clientHandler.Search))
	mux.Handle("POST /admin/clients/import", admin(clientHandler.Import))

	mux.Handle("GET /admin/routes", admin(routeHandler.List))
	mux.Handle("DELETE /admin/routes", admin(routeHandler.Clear))
	mux.Handle("POST /admin/routes/{truckId}/deliveries", admin(routeHandler.AddDelivery))
	mux.Handle("DELETE /admin/routes/{truckId}/deliveries/{deliveryId}", admin(routeHandler.RemoveDelivery))

	mux.Handle("PUT /admin/secrets/admin", admin(secretHandler.SetAdmin))
	mux.Handle("PUT /admin/secrets/consult", admin(secretHandler.SetConsult))

	mux.Handle("GET /driver/deliveries", driver(deliveryHandler.List))
	mux.Handle("POST /driver/deliveries/{id}/complete", driver(deliveryHandler.Complete))
	mux.Handle("POST /driver/deliveries/move", driver(deliveryHandler.Move))

	mux.Handle("GET /dashboard/summary", consult(dashboardHandler.Summary))
	mux.Handle("GET /dashboard/routes", consult(dashboardHandler.Routes))
	mux.Handle("GET /dashboard/locations", consult(dashboardHandler.Locations))

	return loggingMiddleware(mux)
}
