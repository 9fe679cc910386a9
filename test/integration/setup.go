// Package integration provides helpers and integration tests for the itinerary
// search service. The tests drive the real HTTP stack, use case and Amadeus
// client against an in-process fake of the Amadeus APIs.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/itnr/itnr-api/internal/adapter/cache"
	httpAdapter "github.com/itnr/itnr-api/internal/adapter/http"
	"github.com/itnr/itnr-api/internal/adapter/http/middleware"
	"github.com/itnr/itnr-api/internal/adapter/http/response"
	"github.com/itnr/itnr-api/internal/adapter/provider/amadeus"
	"github.com/itnr/itnr-api/internal/domain"
	"github.com/itnr/itnr-api/internal/infrastructure/ratelimit"
	"github.com/itnr/itnr-api/internal/usecase"
	"github.com/itnr/itnr-api/test/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Amadeus endpoint paths served by FakeAmadeus.
const (
	tokenPath     = "/v1/security/oauth2/token"
	offersPath    = "/v2/shopping/flight-offers"
	locationsPath = "/v1/reference-data/locations"

	fixtureDeparture = "2025-03-10"
	fixtureReturn    = "2025-03-17"
)

// FakeAmadeus is an httptest server speaking the subset of the Amadeus API
// the client uses. Offers come from test/testdata with the fixture dates
// rewritten to the requested ones.
type FakeAmadeus struct {
	Server *httptest.Server

	TokenCalls    atomic.Int32
	OfferCalls    atomic.Int32
	LocationCalls atomic.Int32

	mu             sync.Mutex
	tokenStatus    int
	offersBody     string
	offersDelay    time.Duration
	locationsBody  string
	departureDates []string
}

// NewFakeAmadeus starts a fake serving the standard fixtures.
func NewFakeAmadeus(t *testing.T) *FakeAmadeus {
	t.Helper()

	f := &FakeAmadeus{
		tokenStatus:   http.StatusOK,
		offersBody:    string(testutil.LoadTestJSON(t, "amadeus_flight_offers.json")),
		locationsBody: string(testutil.LoadTestJSON(t, "amadeus_locations_empty.json")),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, f.handleToken)
	mux.HandleFunc(offersPath, f.handleOffers)
	mux.HandleFunc(locationsPath, f.handleLocations)

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

// RejectCredentials makes the token endpoint answer with status.
func (f *FakeAmadeus) RejectCredentials(status int) {
	f.mu.Lock()
	f.tokenStatus = status
	f.mu.Unlock()
}

// EmptyOffers makes every offer search return no data.
func (f *FakeAmadeus) EmptyOffers() {
	f.mu.Lock()
	f.offersBody = `{"meta":{"count":0},"data":[]}`
	f.mu.Unlock()
}

// DelayOffers holds every offer search for d or until the caller gives up.
func (f *FakeAmadeus) DelayOffers(d time.Duration) {
	f.mu.Lock()
	f.offersDelay = d
	f.mu.Unlock()
}

// DepartureDates returns the departureDate of every offer search, in arrival order.
func (f *FakeAmadeus) DepartureDates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.departureDates))
	copy(out, f.departureDates)
	return out
}

func (f *FakeAmadeus) handleToken(w http.ResponseWriter, r *http.Request) {
	f.TokenCalls.Add(1)

	f.mu.Lock()
	status := f.tokenStatus
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Client credentials are invalid"}`))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":         "amadeusOAuth2Token",
		"access_token": "integration-token",
		"token_type":   "Bearer",
		"expires_in":   1799,
	})
}

func (f *FakeAmadeus) handleOffers(w http.ResponseWriter, r *http.Request) {
	f.OfferCalls.Add(1)

	q := r.URL.Query()
	dep, ret := q.Get("departureDate"), q.Get("returnDate")

	f.mu.Lock()
	f.departureDates = append(f.departureDates, dep)
	body, delay := f.offersBody, f.offersDelay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(delay):
		}
	}

	body = strings.ReplaceAll(body, fixtureDeparture+"T", dep+"T")
	if ret != "" {
		body = strings.ReplaceAll(body, fixtureReturn+"T", ret+"T")
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *FakeAmadeus) handleLocations(w http.ResponseWriter, _ *http.Request) {
	f.LocationCalls.Add(1)

	f.mu.Lock()
	body := f.locationsBody
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

// StackOptions tunes the wiring built by NewStack.
type StackOptions struct {
	CallTimeout    time.Duration
	RequestTimeout time.Duration
}

// Stack is the production wiring pointed at a FakeAmadeus.
type Stack struct {
	Fake    *FakeAmadeus
	Client  *amadeus.Client
	Cache   *cache.RedisCache
	Redis   *miniredis.Miniredis
	UseCase usecase.FlightSearchUseCase
	Server  *TestServer
}

// NewStack wires the Amadeus client, a miniredis-backed location cache,
// the use case and the HTTP server.
func NewStack(t *testing.T, opts StackOptions) *Stack {
	t.Helper()

	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 2 * time.Second
	}

	fake := NewFakeAmadeus(t)

	mr := miniredis.RunT(t)
	locations, err := cache.NewRedisCache(cache.RedisConfig{Addr: mr.Addr(), TTL: time.Hour})
	if err != nil {
		t.Fatalf("redis cache: %v", err)
	}
	t.Cleanup(func() { _ = locations.Close() })

	client := amadeus.NewClient(amadeus.Config{
		BaseURL:      fake.Server.URL,
		ClientID:     "integration-id",
		ClientSecret: "integration-secret",
		Currency:     "EUR",
		MaxResults:   50,
		CallTimeout:  opts.CallTimeout,
		RetryBackoff: 10 * time.Millisecond,
		RateLimit:    ratelimit.Config{RequestsPerSecond: 1000, Burst: 100},
	})

	uc := usecase.NewFlightSearchUseCase(client, usecase.NewCityResolver(client, locations), &usecase.Config{
		RequestTimeout: opts.RequestTimeout,
		Currency:       "EUR",
	})

	return &Stack{
		Fake:    fake,
		Client:  client,
		Cache:   locations,
		Redis:   mr,
		UseCase: uc,
		Server: NewTestServer(uc, httpAdapter.HealthStatus{
			ProviderConfigured: client.Configured(),
			Cache:              locations,
		}),
	}
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.FlightHandler
}

// NewTestServer creates a test server with the production middleware and routes.
func NewTestServer(uc usecase.FlightSearchUseCase, health httpAdapter.HealthStatus) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, zerolog.Nop())

	handler := httpAdapter.NewFlightHandler(uc, health)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        any
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch b := req.Body.(type) {
	case nil:
		bodyReader = bytes.NewReader(nil)
	case string:
		bodyReader = bytes.NewReader([]byte(b))
	default:
		bodyBytes, _ := json.Marshal(b)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Search posts body to /search.
func (ts *TestServer) Search(body any) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/search",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseSearchResponse parses the response body of a successful search.
func (r *Response) ParseSearchResponse() (*httpAdapter.SearchResponseDTO, error) {
	var resp httpAdapter.SearchResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body of a failed request.
func (r *Response) ParseError() (*response.ErrorDetail, error) {
	var errResp response.ErrorDetail
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return &errResp, nil
}

// SearchBody builds a POST /search body.
type SearchBody struct {
	OriginCity      string          `json:"originCity"`
	DestinationCity string          `json:"destinationCity"`
	DepartureDate   string          `json:"departureDate,omitempty"`
	ReturnDate      string          `json:"returnDate,omitempty"`
	Period          *PeriodBody     `json:"period,omitempty"`
	Passengers      *PassengersBody `json:"passengers,omitempty"`
	Cabin           string          `json:"cabin,omitempty"`
	MaxStops        *int            `json:"maxStops,omitempty"`
	BudgetPerPaxEUR *float64        `json:"budgetPerPaxEUR,omitempty"`
}

// PeriodBody is the period part of a SearchBody.
type PeriodBody struct {
	Start        string `json:"start"`
	DurationDays int    `json:"durationDays"`
}

// PassengersBody is the passengers part of a SearchBody.
type PassengersBody struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// ParisBangkok is a round trip for two adults with at most one stop and a
// 900 EUR per-person budget.
func ParisBangkok() SearchBody {
	return SearchBody{
		OriginCity:      "Paris",
		DestinationCity: "Bangkok",
		DepartureDate:   fixtureDeparture,
		ReturnDate:      fixtureReturn,
		Passengers:      &PassengersBody{Adults: 2},
		Cabin:           "ECONOMY",
		MaxStops:        testutil.IntPtr(1),
		BudgetPerPaxEUR: testutil.FloatPtr(900),
	}
}

// ParisBangkokRequest is ParisBangkok as a domain request.
func ParisBangkokRequest() domain.SearchRequest {
	return domain.SearchRequest{
		OriginCity:      "Paris",
		DestinationCity: "Bangkok",
		DepartureDate:   fixtureDeparture,
		ReturnDate:      fixtureReturn,
		Passengers:      domain.Passengers{Adults: 2},
		Cabin:           domain.CabinEconomy,
		MaxStops:        testutil.IntPtr(1),
		BudgetPerPax:    testutil.FloatPtr(900),
	}
}
