package services

import (
	"context"
	"log"
	"math"
	"math/rand"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
)

const (
	defaultCurrency = "PKR"

	// Mock fare parameters, matching the historical offline price table
	// (bike 0.5x, mini 1.0x, ac 1.5x of base + 15 PKR/km).
	mockBaseFare  = 50
	mockPerKmRate = 15

	// Derived quotes never drop below this to avoid degenerate
	// near-zero results.
	minQuoteAmount = 50

	// Non-bike competitor quotes are a fixed 10% below primary.
	competitorFlatDiscount = 0.10

	// Bike competitor quotes sample a uniform discount in
	// [bikeDiscountLow, bikeDiscountHigh).
	bikeDiscountLow  = 0.40
	bikeDiscountHigh = 0.50
)

func classMultiplier(rc domain.RideClass) float64 {
	switch rc {
	case domain.RideClassBike:
		return 0.5
	case domain.RideClassAC:
		return 1.5
	default:
		return 1.0
	}
}

// Estimator produces a primary quote through an ordered fallback ladder
// and derives a competitor quote from it.
//
// The ladder is: live provider endpoint, then the provider's secondary
// endpoint, then a deterministic local mock. Each rung returns a tagged
// result; failures are logged for diagnostics and never surfaced to the
// caller beyond the quote's Source tag.
type Estimator struct {
	Primary  ports.FareProvider
	Fallback ports.FareProvider

	// RandInt is the uniform sampler for the bike discount band.
	// Defaults to math/rand; tests inject a deterministic one.
	RandInt func(n int) int
}

func NewEstimator(primary, fallback ports.FareProvider) *Estimator {
	return &Estimator{Primary: primary, Fallback: fallback}
}

// QuotePrimary returns a price for the trip. It never fails: when both
// live endpoints are unavailable the result is a mock estimate.
func (e *Estimator) QuotePrimary(ctx context.Context, trip domain.TripRequest) domain.PriceQuote {
	ladder := []struct {
		source   domain.QuoteSource
		provider ports.FareProvider
	}{
		{domain.SourceLiveProvider, e.Primary},
		{domain.SourceFallbackProvider, e.Fallback},
	}

	for _, rung := range ladder {
		if rung.provider == nil {
			continue
		}

		q, err := rung.provider.EstimateFare(ctx, trip)
		if err != nil {
			log.Printf("fare ladder step failed: source=%s class=%s err=%v", rung.source, trip.RideClass, err)
			continue
		}
		if q.Amount <= 0 {
			log.Printf("fare ladder step returned empty price: source=%s class=%s", rung.source, trip.RideClass)
			continue
		}

		currency := q.Currency
		if currency == "" {
			currency = defaultCurrency
		}

		return domain.PriceQuote{Amount: q.Amount, Currency: currency, Source: rung.source}
	}

	return e.mockQuote(trip)
}

// mockQuote is the final rung: baseFare + distanceKm * perKmRate * classMultiplier.
func (e *Estimator) mockQuote(trip domain.TripRequest) domain.PriceQuote {
	km := HaversineKm(trip.Pickup, trip.Destination)
	amount := mockBaseFare + int(math.Round(km*mockPerKmRate*classMultiplier(trip.RideClass)))

	return domain.PriceQuote{
		Amount:   amount,
		Currency: defaultCurrency,
		Source:   domain.SourceMockEstimate,
	}
}

// DeriveCompetitorQuote fabricates the second price of the comparison.
//
// Bikes get a random discount uniform in [40%, 50%) off the primary amount
// (bikes are marketed as the cheap alternative to car rides); every other
// class gets a flat 10% reduction. This is a placeholder business rule,
// not a real competitor price feed, hence the MockEstimate tag.
func (e *Estimator) DeriveCompetitorQuote(primary domain.PriceQuote, rc domain.RideClass) domain.PriceQuote {
	amount := primary.Amount

	if rc == domain.RideClassBike {
		// Sample the discount over whole currency units so the realized
		// ratio stays inside [0.40, 0.50) after integer arithmetic.
		lo := int(math.Ceil(bikeDiscountLow * float64(primary.Amount)))
		hi := int(math.Ceil(bikeDiscountHigh*float64(primary.Amount))) - 1
		if hi < lo {
			hi = lo
		}
		amount = primary.Amount - (lo + e.randInt(hi-lo+1))
	} else {
		amount = primary.Amount - int(math.Round(competitorFlatDiscount*float64(primary.Amount)))
	}

	if amount < minQuoteAmount {
		amount = minQuoteAmount
	}

	currency := primary.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return domain.PriceQuote{Amount: amount, Currency: currency, Source: domain.SourceMockEstimate}
}

func (e *Estimator) randInt(n int) int {
	if n <= 1 {
		return 0
	}
	if e.RandInt != nil {
		return e.RandInt(n)
	}
	return rand.Intn(n)
}
