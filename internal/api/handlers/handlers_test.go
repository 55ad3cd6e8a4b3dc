package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"ride-compare-service/internal/adapters/fare"
	"ride-compare-service/internal/api/dto"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
	"ride-compare-service/internal/services"
	"strings"
	"testing"
)

type stubGeocoder struct {
	places  []ports.Place
	address string
	err     error
}

func (s *stubGeocoder) Search(ctx context.Context, query string, limit int) ([]ports.Place, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.places, nil
}

func (s *stubGeocoder) Reverse(ctx context.Context, c domain.Coordinate) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.address, nil
}

type stubUserRepo struct {
	users map[string]domain.User
}

func (s *stubUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	if s.users == nil {
		s.users = make(map[string]domain.User)
	}
	if _, ok := s.users[u.Email]; ok {
		return domain.User{}, ports.ErrEmailTaken
	}
	u.ID = int64(len(s.users) + 1)
	s.users[u.Email] = u
	return u, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, bool, error) {
	u, ok := s.users[email]
	return u, ok, nil
}

func TestSuggestEndpoint(t *testing.T) {
	h := &SuggestHandler{
		Resolver: services.NewResolver(&stubGeocoder{places: []ports.Place{
			{DisplayName: "F-7 Markaz, Islamabad", Coordinate: domain.Coordinate{Lat: 33.7194, Lon: 73.0553}},
		}}, "Islamabad"),
		Sequencer: services.NewSequencer(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions?q=F-7+Markaz", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.SuggestionResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Stale {
		t.Fatal("single request must not be stale")
	}
	if len(res.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(res.Suggestions))
	}
	if !res.Suggestions[0].IsLocalMatch {
		t.Fatal("Islamabad result should be a local match")
	}
}

func TestSuggestEndpointShortQuery(t *testing.T) {
	h := &SuggestHandler{Resolver: services.NewResolver(&stubGeocoder{}, "Islamabad")}

	req := httptest.NewRequest(http.MethodGet, "/api/suggestions?q=ab", nil)
	rec := httptest.NewRecorder()
	h.Suggest(rec, req)

	var res dto.SuggestionResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Suggestions) != 0 {
		t.Fatalf("got %d suggestions for a 2-char query, want 0", len(res.Suggestions))
	}
}

func TestReverseEndpointFallbackLabel(t *testing.T) {
	h := &SuggestHandler{Resolver: services.NewResolver(&stubGeocoder{err: context.DeadlineExceeded}, "")}

	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=33.7&lon=73.0", nil)
	rec := httptest.NewRecorder()
	h.Reverse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ReverseGeocodeResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Resolved {
		t.Fatal("lookup failure must report resolved=false")
	}
	if res.Address != services.FallbackLocationLabel {
		t.Fatalf("address = %q, want %q", res.Address, services.FallbackLocationLabel)
	}
}

func TestReverseEndpointBadCoordinates(t *testing.T) {
	h := &SuggestHandler{Resolver: services.NewResolver(&stubGeocoder{}, "")}

	req := httptest.NewRequest(http.MethodGet, "/api/geocode/reverse?lat=abc&lon=73.0", nil)
	rec := httptest.NewRecorder()
	h.Reverse(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func newCompareHandler(primary ports.FareProvider) *CompareHandler {
	return &CompareHandler{Workflow: services.NewWorkflow(
		services.NewResolver(&stubGeocoder{address: "Jinnah Avenue"}, "Islamabad"),
		services.NewEstimator(primary, nil),
		nil,
	)}
}

func TestCompareEndpoint(t *testing.T) {
	h := newCompareHandler(fare.NewScriptedFareProvider(300, "PKR"))

	body := `{
		"pickup": {"latitude": 33.6844, "longitude": 73.0479},
		"destination": {"latitude": 33.7000, "longitude": 73.0600},
		"ride_class": "bike"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/rides/compare", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Compare(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.CompareResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if res.Primary.Provider != "Yango" || res.Competitor.Provider != "Bykea" {
		t.Fatalf("providers = %q/%q", res.Primary.Provider, res.Competitor.Provider)
	}
	if res.Primary.Amount != 300 {
		t.Fatalf("primary amount = %d, want 300", res.Primary.Amount)
	}
	if res.Competitor.Amount < 150 || res.Competitor.Amount > 180 {
		t.Fatalf("competitor amount = %d, want within [150, 180]", res.Competitor.Amount)
	}
	if res.CheaperSide != "competitor" {
		t.Fatalf("cheaper side = %q", res.CheaperSide)
	}
	if res.VehicleClass != "Bike" {
		t.Fatalf("vehicle class = %q, want Bike", res.VehicleClass)
	}
	if res.ApproximatePricing {
		t.Fatal("live quote must not be flagged approximate")
	}
	if !strings.HasPrefix(res.PrimaryLink, "https://yango.go.link/route?") {
		t.Fatalf("primary link = %q", res.PrimaryLink)
	}
}

func TestCompareEndpointApproximateWhenOffline(t *testing.T) {
	h := newCompareHandler(fare.NewFailingFareProvider("unreachable"))

	body := `{
		"pickup": {"latitude": 33.6844, "longitude": 73.0479},
		"destination": {"latitude": 33.7000, "longitude": 73.0600},
		"ride_class": "mini"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/rides/compare", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Compare(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.CompareResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Primary.Source != "mock_estimate" {
		t.Fatalf("source = %q, want mock_estimate", res.Primary.Source)
	}
	if !res.ApproximatePricing {
		t.Fatal("mock quote must be flagged approximate")
	}
}

func TestCompareEndpointBadInput(t *testing.T) {
	h := newCompareHandler(fare.NewScriptedFareProvider(300, "PKR"))

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"unknown class", `{"pickup": {"latitude": 33.7, "longitude": 73.0}, "destination": {"latitude": 33.6, "longitude": 73.1}, "ride_class": "rocket"}`},
		{"bad coordinates", `{"pickup": {"latitude": 999, "longitude": 73.0}, "destination": {"latitude": 33.6, "longitude": 73.1}, "ride_class": "mini"}`},
		{"unknown field", `{"pickup": {"latitude": 33.7, "longitude": 73.0}, "destination": {"latitude": 33.6, "longitude": 73.1}, "ride_class": "mini", "surprise": 1}`},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/rides/compare", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		h.Compare(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestCompareEndpointMethodNotAllowed(t *testing.T) {
	h := newCompareHandler(fare.NewScriptedFareProvider(300, "PKR"))

	req := httptest.NewRequest(http.MethodGet, "/api/rides/compare", nil)
	rec := httptest.NewRecorder()
	h.Compare(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	repo := &stubUserRepo{}
	h := &AccountHandler{Accounts: services.NewAccounts(repo, nil, nil)}

	body := `{
		"firstName": "Ayesha",
		"lastName": "Khan",
		"email": "ayesha@example.com",
		"password": "s3cret-pass",
		"phoneNumber": "+923001234567"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var res dto.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Success || res.User == nil || res.User.FirstName != "Ayesha" {
		t.Fatalf("register response = %+v", res)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email": "ayesha@example.com", "password": "s3cret-pass"}`))
	rec = httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterEndpointFailures(t *testing.T) {
	repo := &stubUserRepo{}
	h := &AccountHandler{Accounts: services.NewAccounts(repo, nil, nil)}

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Register(rec, req)
		return rec
	}

	rec := post(`{"firstName": "Ayesha", "email": "", "password": "x", "phoneNumber": "1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status = %d, want 400", rec.Code)
	}
	var res dto.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Success || res.Error != "Missing required fields" {
		t.Fatalf("response = %+v", res)
	}

	full := `{"firstName": "A", "email": "dup@example.com", "password": "x", "phoneNumber": "1"}`
	if rec := post(full); rec.Code != http.StatusCreated {
		t.Fatalf("first register status = %d", rec.Code)
	}
	rec = post(full)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email status = %d, want 400", rec.Code)
	}
	res = dto.AuthResponse{}
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Error != "Email already exists" {
		t.Fatalf("error = %q", res.Error)
	}
}

func TestLoginEndpointInvalidCredentials(t *testing.T) {
	h := &AccountHandler{Accounts: services.NewAccounts(&stubUserRepo{}, nil, nil)}

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"email": "nobody@example.com", "password": "x"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var res dto.AuthResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Success || res.Error != "Invalid credentials" {
		t.Fatalf("response = %+v", res)
	}
}
