package fare

import (
	"context"
	"errors"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
)

// ScriptedFareProvider returns a fixed quote or error; used in tests and
// for running the service without provider credentials.
type ScriptedFareProvider struct {
	Quote ports.FareQuote
	Err   error

	// Calls counts EstimateFare invocations.
	Calls int
}

func NewScriptedFareProvider(amount int, currency string) *ScriptedFareProvider {
	return &ScriptedFareProvider{Quote: ports.FareQuote{Amount: amount, Currency: currency}}
}

// NewFailingFareProvider always errors, forcing the caller's ladder down.
func NewFailingFareProvider(msg string) *ScriptedFareProvider {
	return &ScriptedFareProvider{Err: errors.New(msg)}
}

func (s *ScriptedFareProvider) EstimateFare(ctx context.Context, trip domain.TripRequest) (ports.FareQuote, error) {
	s.Calls++
	if s.Err != nil {
		return ports.FareQuote{}, s.Err
	}
	return s.Quote, nil
}

var _ ports.FareProvider = (*ScriptedFareProvider)(nil)
