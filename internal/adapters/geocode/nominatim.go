package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"ride-compare-service/internal/adapters/cache"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/platform/httpx"
	"ride-compare-service/internal/platform/obs"
	"ride-compare-service/internal/ports"
	"strconv"
	"time"
)

// NominatimClient implements the Geocoder port against the OpenStreetMap
// Nominatim HTTP API.
//
// It coordinates:
//   - Forward search and reverse lookup
//   - An optional Redis-backed result cache
//   - External API calls with retry/backoff
//
// Nominatim's usage policy requires a descriptive client identifier, so
// every request carries the configured User-Agent.
type NominatimClient struct {
	session   *http.Client
	baseURL   string
	userAgent string
	language  string
	cache     *cache.RedisGeocodeCache
}

func NewNominatimClient(baseURL, userAgent string, geocodeCache *cache.RedisGeocodeCache) *NominatimClient {
	return &NominatimClient{
		session:   &http.Client{Timeout: 5 * time.Second},
		baseURL:   baseURL,
		userAgent: userAgent,
		language:  "en-US,en;q=0.9",
		cache:     geocodeCache,
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Search resolves free text into coordinate candidates (/search).
func (n *NominatimClient) Search(ctx context.Context, query string, limit int) (_ []ports.Place, err error) {
	defer obs.Time(ctx, "nominatim.Search")(&err)

	if n.cache != nil {
		if places, found, cacheErr := n.cache.GetSearch(ctx, query); cacheErr != nil {
			log.Printf("geocode cache read failed: %v", cacheErr)
		} else if found {
			return places, nil
		}
	}

	endpoint := n.baseURL + "/search"
	resp, err := httpx.DoWithRetry(ctx, n.session, func() (*http.Request, error) {
		req, err := n.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("format", "json")
		q.Set("q", query)
		if limit > 0 {
			q.Set("limit", strconv.Itoa(limit))
		}
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("nominatim search %q: %w", query, err)
	}
	defer resp.Body.Close()

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	places := make([]ports.Place, 0, len(decoded))
	for _, r := range decoded {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			return nil, fmt.Errorf("invalid coordinate in search result %q", r.DisplayName)
		}

		places = append(places, ports.Place{
			DisplayName: r.DisplayName,
			Coordinate:  domain.Coordinate{Lat: lat, Lon: lon},
		})
	}

	if n.cache != nil {
		if err := n.cache.PutSearch(ctx, query, places); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return places, nil
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

// Reverse resolves a coordinate into a display address (/reverse).
func (n *NominatimClient) Reverse(ctx context.Context, c domain.Coordinate) (_ string, err error) {
	defer obs.Time(ctx, "nominatim.Reverse")(&err)

	if n.cache != nil {
		if addr, found, cacheErr := n.cache.GetReverse(ctx, c); cacheErr != nil {
			log.Printf("geocode cache read failed: %v", cacheErr)
		} else if found {
			return addr, nil
		}
	}

	endpoint := n.baseURL + "/reverse"
	resp, err := httpx.DoWithRetry(ctx, n.session, func() (*http.Request, error) {
		req, err := n.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("format", "json")
		q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
		q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return "", fmt.Errorf("nominatim reverse lat=%v lon=%v: %w", c.Lat, c.Lon, err)
	}
	defer resp.Body.Close()

	var decoded reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode reverse response: %w", err)
	}
	// Nominatim reports "Unable to geocode" as a 200 with an error field.
	if decoded.Error != "" {
		return "", fmt.Errorf("nominatim reverse: %s", decoded.Error)
	}
	if decoded.DisplayName == "" {
		return "", fmt.Errorf("no reverse result for lat=%v lon=%v", c.Lat, c.Lon)
	}

	if n.cache != nil {
		if err := n.cache.PutReverse(ctx, c, decoded.DisplayName); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return decoded.DisplayName, nil
}

func (n *NominatimClient) newRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", n.language)

	return req, nil
}
