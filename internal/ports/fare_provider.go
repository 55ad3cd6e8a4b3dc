package ports

import (
	"context"
	"ride-compare-service/internal/domain"
)

// FareQuote is a priced offer returned by an external pricing endpoint.
type FareQuote struct {
	Amount   int
	Currency string
}

// Contract for retrieving a live fare estimate for a trip.
// Implementations perform network I/O and may fail; the estimation
// workflow owns the fallback ladder, not the provider.
type FareProvider interface {
	EstimateFare(ctx context.Context, trip domain.TripRequest) (FareQuote, error)
}
