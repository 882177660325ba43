package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleet-route-service/internal/adapters/geo"
	"fleet-route-service/internal/adapters/store"
	"fleet-route-service/internal/api/session"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
	"fleet-route-service/internal/state"
)

type testEnv struct {
	router  http.Handler
	locator *geo.FixedLocator
	db      *state.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := state.New(store.NewMemoryStore())
	locator := geo.NewFixedLocator(nil)

	svc := Services{
		Auth:        services.NewAuthService(db),
		Assignments: services.NewAssignmentService(db),
		Clients:     services.NewClientService(db),
		Completions: services.NewCompletionService(db, locator),
		Reports:     services.NewReportService(db),
	}

	return &testEnv{
		router:  NewRouter(svc, session.NewStore()),
		locator: locator,
		db:      db,
	}
}

// do issues a request and decodes the JSON body into out (when non-nil).
func (e *testEnv) do(t *testing.T, method, path, token string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()

	var resp struct {
		Token string `json:"token"`
	}
	rec := e.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %q: status = %d, body %s", username, rec.Code, rec.Body.String())
	}
	return resp.Token
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/admin/trucks", "", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d, want 401", rec.Code)
	}

	consultToken := env.login(t, "Consultas", "2025")
	rec = env.do(t, http.MethodGet, "/admin/trucks", consultToken, nil, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("consult token: status = %d, want 403", rec.Code)
	}
}

func TestAdminAssignsAndDriverCompletes(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin", "654321")

	var truck struct {
		ID         string `json:"id"`
		DriverName string `json:"driver_name"`
		Password   string `json:"password"`
	}
	rec := env.do(t, http.MethodPost, "/admin/trucks", adminToken, nil, &truck)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create truck: status = %d", rec.Code)
	}

	var client struct {
		ID string `json:"id"`
	}
	rec = env.do(t, http.MethodPost, "/admin/clients", adminToken, map[string]string{
		"social_reason": "Acme, S.A.",
		"address":       "Av. Central 123",
	}, &client)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create client: status = %d", rec.Code)
	}

	var delivery struct {
		ID         string `json:"id"`
		InvoiceRef string `json:"invoice_ref"`
		Delivered  bool   `json:"delivered"`
	}
	rec = env.do(t, http.MethodPost, "/admin/routes/"+truck.ID+"/deliveries", adminToken, map[string]any{
		"client_id":   client.ID,
		"invoice_ref": "12345",
		"meters":      "1,250.75",
	}, &delivery)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add delivery: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if delivery.InvoiceRef != "FE0012345" {
		t.Fatalf("InvoiceRef = %q, want prefixed", delivery.InvoiceRef)
	}
	if delivery.Delivered {
		t.Fatal("new delivery must be pending")
	}

	driverToken := env.login(t, truck.DriverName, truck.Password)

	var route []struct {
		ID        string `json:"id"`
		Delivered bool   `json:"delivered"`
	}
	rec = env.do(t, http.MethodGet, "/driver/deliveries", driverToken, nil, &route)
	if rec.Code != http.StatusOK || len(route) != 1 {
		t.Fatalf("driver route: status = %d, len = %d", rec.Code, len(route))
	}

	// No GPS fix yet: completion must fail and leave the delivery pending.
	rec = env.do(t, http.MethodPost, "/driver/deliveries/"+delivery.ID+"/complete", driverToken, nil, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("complete without fix: status = %d, want 503", rec.Code)
	}

	env.locator.SetPosition(truck.ID, domain.Coordinates{Latitude: 19.43, Longitude: -99.13})

	var completed struct {
		Delivered bool   `json:"delivered"`
		TimeLabel string `json:"time_label"`
		MapURL    string `json:"map_url"`
	}
	rec = env.do(t, http.MethodPost, "/driver/deliveries/"+delivery.ID+"/complete", driverToken, nil, &completed)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !completed.Delivered || completed.TimeLabel == "" {
		t.Fatalf("completed = %+v, want delivered with time label", completed)
	}
	if !strings.Contains(completed.MapURL, "google.com/maps") {
		t.Fatalf("MapURL = %q, want maps link", completed.MapURL)
	}

	// Completing twice is a conflict.
	rec = env.do(t, http.MethodPost, "/driver/deliveries/"+delivery.ID+"/complete", driverToken, nil, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second complete: status = %d, want 409", rec.Code)
	}
}

func TestDashboardSummaryVisibleToConsult(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin", "654321")

	var truck struct {
		ID string `json:"id"`
	}
	env.do(t, http.MethodPost, "/admin/trucks", adminToken, nil, &truck)

	consultToken := env.login(t, "Consultas", "2025")

	var summary struct {
		Trucks []struct {
			TruckID string `json:"truck_id"`
		} `json:"trucks"`
		Total int `json:"total"`
	}
	rec := env.do(t, http.MethodGet, "/dashboard/summary", consultToken, nil, &summary)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: status = %d", rec.Code)
	}
	if len(summary.Trucks) != 1 || summary.Trucks[0].TruckID != truck.ID {
		t.Fatalf("summary trucks = %+v, want the one truck", summary.Trucks)
	}
}

func TestDestructiveEndpointsNeedConfirmation(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin", "654321")

	rec := env.do(t, http.MethodDelete, "/admin/routes", adminToken, nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("clear routes unconfirmed: status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/admin/routes?confirm=true", adminToken, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear routes confirmed: status = %d, want 204", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/admin/clients?confirm=true", adminToken, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear clients confirmed: status = %d, want 204", rec.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin", "654321")

	rec := env.do(t, http.MethodPost, "/logout", adminToken, nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("logout: status = %d, want 204", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/admin/trucks", adminToken, nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: status = %d, want 401", rec.Code)
	}
}

func TestClientCSVImportOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.login(t, "admin", "654321")

	csv := "Comercial Norte,Calle 5 #12,Colonia Centro\nSkip\n"
	req := httptest.NewRequest(http.MethodPost, "/admin/clients/import", strings.NewReader(csv))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	req.Header.Set("Content-Type", "text/csv")

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Imported int `json:"imported"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Imported != 1 {
		t.Fatalf("Imported = %d, want 1", resp.Imported)
	}

	var clients []struct {
		SocialReason string `json:"social_reason"`
		Address      string `json:"address"`
	}
	env.do(t, http.MethodGet, "/admin/clients", adminToken, nil, &clients)
	if len(clients) != 1 || clients[0].Address != "Calle 5 #12, Colonia Centro" {
		t.Fatalf("clients = %+v, want joined address", clients)
	}
}
