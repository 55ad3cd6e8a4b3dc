package domain

import "math"

// QuoteSource tags which rung of the estimation ladder produced a quote.
type QuoteSource string

const (
	SourceLiveProvider     QuoteSource = "live_provider"
	SourceFallbackProvider QuoteSource = "fallback_provider"
	SourceMockEstimate     QuoteSource = "mock_estimate"
)

// Approximate reports whether the quote should carry the
// "approximate pricing" advisory.
func (s QuoteSource) Approximate() bool { return s != SourceLiveProvider }

// PriceQuote is one priced offer for a trip. Amounts are whole currency
// units (PKR has no decimal subunits modelled). Quotes are never mutated,
// only superseded by a new quote on re-request.
type PriceQuote struct {
	Amount   int
	Currency string
	Source   QuoteSource
}

// Side identifies which quote of a comparison is cheaper.
type Side string

const (
	SidePrimary    Side = "primary"
	SideCompetitor Side = "competitor"
)

// ComparisonResult is the derived entity consumed by the presentation layer.
type ComparisonResult struct {
	Primary        PriceQuote
	Competitor     PriceQuote
	SavingsAmount  int
	SavingsPercent int
	CheaperSide    Side
}

// Compare derives the best-value decision from two quotes.
// Savings percent is round(|primary - competitor| / primary * 100).
func Compare(primary, competitor PriceQuote) ComparisonResult {
	diff := primary.Amount - competitor.Amount
	if diff < 0 {
		diff = -diff
	}

	percent := 0
	if primary.Amount > 0 {
		percent = int(math.Round(float64(diff) / float64(primary.Amount) * 100))
	}

	side := SidePrimary
	if competitor.Amount < primary.Amount {
		side = SideCompetitor
	}

	return ComparisonResult{
		Primary:        primary,
		Competitor:     competitor,
		SavingsAmount:  diff,
		SavingsPercent: percent,
		CheaperSide:    side,
	}
}
