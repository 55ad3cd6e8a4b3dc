package services

import (
	"context"
	"log"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
	"sort"
	"strconv"
	"strings"
)

const (
	// Queries shorter than this never reach the network.
	minQueryLength = 3

	// Suggestions are truncated to this many candidates.
	maxSuggestions = 5

	// Label substituted when reverse geocoding fails.
	FallbackLocationLabel = "Selected Location"
)

// Resolver turns free text into coordinate candidates and coordinates
// back into display addresses. All failures are soft: the caller receives
// an empty list or a fallback signal, never an error.
type Resolver struct {
	Geo ports.Geocoder

	// BiasCity is the default city appended to queries and used to rank
	// local matches first. Overridable per call.
	BiasCity string
}

func NewResolver(geo ports.Geocoder, biasCity string) *Resolver {
	return &Resolver{Geo: geo, BiasCity: biasCity}
}

// Suggest issues a forward-geocoding lookup and maps the results to
// candidates with local matches sorted first, truncated to five.
// Short queries and transport failures yield an empty list.
func (r *Resolver) Suggest(ctx context.Context, query, biasCity string) []domain.LocationCandidate {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return []domain.LocationCandidate{}
	}

	if biasCity == "" {
		biasCity = r.BiasCity
	}

	searchText := query
	if biasCity != "" {
		searchText = query + " " + biasCity
	}

	places, err := r.Geo.Search(ctx, searchText, maxSuggestions*2)
	if err != nil {
		log.Printf("suggest failed: query=%q err=%v", query, err)
		return []domain.LocationCandidate{}
	}

	candidates := make([]domain.LocationCandidate, 0, len(places))
	for i, p := range places {
		candidates = append(candidates, domain.LocationCandidate{
			ID:           strconv.Itoa(i),
			DisplayName:  p.DisplayName,
			Coordinate:   p.Coordinate,
			IsLocalMatch: biasCity != "" && strings.Contains(p.DisplayName, biasCity),
		})
	}

	// Stable sort keeps the provider's relevance order within each group.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].IsLocalMatch && !candidates[j].IsLocalMatch
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	return candidates
}

// ResolveAddress reverse-geocodes a coordinate to a display address.
// The bool is false on any failure; callers substitute a fallback label
// such as FallbackLocationLabel.
func (r *Resolver) ResolveAddress(ctx context.Context, c domain.Coordinate) (string, bool) {
	if err := c.Validate(); err != nil {
		log.Printf("resolve address rejected: %v", err)
		return "", false
	}

	addr, err := r.Geo.Reverse(ctx, c)
	if err != nil {
		log.Printf("resolve address failed: lat=%v lon=%v err=%v", c.Lat, c.Lon, err)
		return "", false
	}
	if strings.TrimSpace(addr) == "" {
		return "", false
	}

	return addr, true
}
