package fare

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/platform/httpx"
	"ride-compare-service/internal/platform/obs"
	"ride-compare-service/internal/ports"
	"strconv"
	"time"
)

// YangoEstimateProvider is the primary pricing endpoint: a coordinate-pair
// GET authenticated with client-id/API-key headers.
type YangoEstimateProvider struct {
	session   *http.Client
	baseURL   string
	clientID  string
	apiKey    string
	userAgent string
}

func NewYangoEstimateProvider(baseURL, clientID, apiKey, userAgent string) *YangoEstimateProvider {
	return &YangoEstimateProvider{
		session:   &http.Client{Timeout: 8 * time.Second},
		baseURL:   baseURL,
		clientID:  clientID,
		apiKey:    apiKey,
		userAgent: userAgent,
	}
}

func (y *YangoEstimateProvider) EstimateFare(ctx context.Context, trip domain.TripRequest) (_ ports.FareQuote, err error) {
	defer obs.Time(ctx, "yango.EstimateFare")(&err)

	endpoint := y.baseURL + "/api/estimate"
	resp, err := httpx.DoWithRetry(ctx, y.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("CLID", y.clientID)
		req.Header.Set("APIKEY", y.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", y.userAgent)

		q := req.URL.Query()
		q.Set("pickup_lat", strconv.FormatFloat(trip.Pickup.Lat, 'f', -1, 64))
		q.Set("pickup_lon", strconv.FormatFloat(trip.Pickup.Lon, 'f', -1, 64))
		q.Set("dropoff_lat", strconv.FormatFloat(trip.Destination.Lat, 'f', -1, 64))
		q.Set("dropoff_lon", strconv.FormatFloat(trip.Destination.Lon, 'f', -1, 64))
		q.Set("vehicle_type", trip.RideClass.String())
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.FareQuote{}, fmt.Errorf("yango estimate: %w", err)
	}
	defer resp.Body.Close()

	quote, err := decodeFare(resp.Body, trip.RideClass)
	if err != nil {
		return ports.FareQuote{}, fmt.Errorf("yango estimate: %w", err)
	}

	return quote, nil
}

// TaxiRouteInfoProvider is the same provider's secondary endpoint
// (taxi_info), addressed with an rll coordinate-pair parameter and a
// YaTaxi-Api-Key header. It answers a different response shape than the
// estimate endpoint; decodeFare tolerates both.
type TaxiRouteInfoProvider struct {
	session   *http.Client
	baseURL   string
	clientID  string
	apiKey    string
	userAgent string
}

func NewTaxiRouteInfoProvider(baseURL, clientID, apiKey, userAgent string) *TaxiRouteInfoProvider {
	return &TaxiRouteInfoProvider{
		session:   &http.Client{Timeout: 5 * time.Second},
		baseURL:   baseURL,
		clientID:  clientID,
		apiKey:    apiKey,
		userAgent: userAgent,
	}
}

func (t *TaxiRouteInfoProvider) EstimateFare(ctx context.Context, trip domain.TripRequest) (_ ports.FareQuote, err error) {
	defer obs.Time(ctx, "taxiinfo.EstimateFare")(&err)

	endpoint := t.baseURL + "/taxi_info"
	resp, err := httpx.DoWithRetry(ctx, t.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		req.Header.Set("YaTaxi-Api-Key", t.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", t.userAgent)

		q := req.URL.Query()
		q.Set("clid", t.clientID)
		q.Set("rll", trip.Pickup.LonLat()+"~"+trip.Destination.LonLat())
		q.Set("class", trip.RideClass.String())
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.FareQuote{}, fmt.Errorf("taxi info: %w", err)
	}
	defer resp.Body.Close()

	quote, err := decodeFare(resp.Body, trip.RideClass)
	if err != nil {
		return ports.FareQuote{}, fmt.Errorf("taxi info: %w", err)
	}

	return quote, nil
}

var _ ports.FareProvider = (*YangoEstimateProvider)(nil)
var _ ports.FareProvider = (*TaxiRouteInfoProvider)(nil)

type fareResponse struct {
	// price is either a bare number or {amount, currency}.
	Price   json.RawMessage `json:"price"`
	Options []struct {
		ClassName string  `json:"class_name"`
		Price     float64 `json:"price"`
	} `json:"options"`
	Currency string `json:"currency"`
}

type priceObject struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// decodeFare extracts a fare from either endpoint variant:
// {price: N}, {price: {amount, currency}}, or
// {options: [{class_name, price}], distance, time_text}.
// A malformed or empty shape is an error; the caller's ladder falls through.
func decodeFare(body io.Reader, class domain.RideClass) (ports.FareQuote, error) {
	var decoded fareResponse
	if err := json.NewDecoder(body).Decode(&decoded); err != nil {
		return ports.FareQuote{}, fmt.Errorf("decode fare response: %w", err)
	}

	if len(decoded.Price) > 0 {
		var obj priceObject
		if err := json.Unmarshal(decoded.Price, &obj); err == nil && obj.Amount > 0 {
			return ports.FareQuote{Amount: roundAmount(obj.Amount), Currency: obj.Currency}, nil
		}

		var bare float64
		if err := json.Unmarshal(decoded.Price, &bare); err == nil && bare > 0 {
			return ports.FareQuote{Amount: roundAmount(bare), Currency: decoded.Currency}, nil
		}
	}

	for _, opt := range decoded.Options {
		if domain.RideClass(opt.ClassName) == class && opt.Price > 0 {
			return ports.FareQuote{Amount: roundAmount(opt.Price), Currency: decoded.Currency}, nil
		}
	}
	// No class match; take the first priced option rather than failing
	// the whole rung.
	if len(decoded.Options) > 0 && decoded.Options[0].Price > 0 {
		return ports.FareQuote{Amount: roundAmount(decoded.Options[0].Price), Currency: decoded.Currency}, nil
	}

	return ports.FareQuote{}, fmt.Errorf("no price in fare response")
}

func roundAmount(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}
