package ports

import (
	"context"
	"ride-compare-service/internal/domain"
)

// Place is one raw forward-geocoding result before workflow mapping.
type Place struct {
	DisplayName string
	Coordinate  domain.Coordinate
}

// Contract for forward and reverse geocoding against an external service.
type Geocoder interface {
	// Search resolves free text into coordinate candidates, best match first.
	Search(ctx context.Context, query string, limit int) ([]Place, error)
	// Reverse resolves a coordinate into a human-readable display address.
	Reverse(ctx context.Context, c domain.Coordinate) (string, error)
}
