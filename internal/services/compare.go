package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
)

// CompareRequest carries everything one comparison run needs.
// Labels are optional; missing ones are reverse-geocoded with a fallback.
type CompareRequest struct {
	Trip             domain.TripRequest
	PickupLabel      string
	DestinationLabel string

	// SessionID selects the stored profile used for personalization.
	// Empty or unknown sessions simply skip it.
	SessionID string
}

// CompareOutcome is the presenter contract: both quotes, the best-value
// decision, and the trip metadata the comparison screen renders.
type CompareOutcome struct {
	Trip             domain.TripRequest
	Metrics          domain.TripMetrics
	Result           domain.ComparisonResult
	PickupLabel      string
	DestinationLabel string

	// Approximate is set when the primary quote did not come from the
	// live provider; clients show a non-blocking advisory note.
	Approximate bool

	// RiderName personalizes the screen when a profile is known.
	RiderName string

	// Deep links for handing off to the provider apps.
	PrimaryLink    string
	CompetitorLink string
}

// Workflow is the single forward pipeline behind every comparison screen:
// resolve labels, compute trip metrics, quote both sides, decide best value.
// Invocations are independent; there is no state shared between runs.
type Workflow struct {
	Resolver  *Resolver
	Estimator *Estimator
	Profiles  ports.ProfileStore
}

func NewWorkflow(resolver *Resolver, estimator *Estimator, profiles ports.ProfileStore) *Workflow {
	return &Workflow{Resolver: resolver, Estimator: estimator, Profiles: profiles}
}

// Compare runs the pipeline. The only error case is a caller precondition
// failure (invalid trip); estimation itself always yields a result.
func (w *Workflow) Compare(ctx context.Context, req CompareRequest) (CompareOutcome, error) {
	if err := req.Trip.Validate(); err != nil {
		return CompareOutcome{}, fmt.Errorf("compare: %w", err)
	}

	pickupLabel := req.PickupLabel
	if pickupLabel == "" {
		pickupLabel = w.resolveLabel(ctx, req.Trip.Pickup)
	}
	destinationLabel := req.DestinationLabel
	if destinationLabel == "" {
		destinationLabel = w.resolveLabel(ctx, req.Trip.Destination)
	}

	metrics := ComputeTripMetrics(req.Trip)

	primary := w.Estimator.QuotePrimary(ctx, req.Trip)
	competitor := w.Estimator.DeriveCompetitorQuote(primary, req.Trip.RideClass)
	result := domain.Compare(primary, competitor)

	outcome := CompareOutcome{
		Trip:             req.Trip,
		Metrics:          metrics,
		Result:           result,
		PickupLabel:      pickupLabel,
		DestinationLabel: destinationLabel,
		Approximate:      primary.Source.Approximate(),
		RiderName:        w.riderName(ctx, req.SessionID),
		PrimaryLink:      PrimaryDeepLink(req.Trip),
		CompetitorLink:   CompetitorStoreLink(),
	}

	return outcome, nil
}

func (w *Workflow) resolveLabel(ctx context.Context, c domain.Coordinate) string {
	if w.Resolver == nil {
		return FallbackLocationLabel
	}
	if addr, ok := w.Resolver.ResolveAddress(ctx, c); ok {
		return addr
	}
	return FallbackLocationLabel
}

func (w *Workflow) riderName(ctx context.Context, sessionID string) string {
	if w.Profiles == nil || sessionID == "" {
		return ""
	}

	profile, found, err := w.Profiles.Load(ctx, sessionID)
	if err != nil {
		log.Printf("profile lookup failed: session=%s err=%v", sessionID, err)
		return ""
	}
	if !found {
		return ""
	}

	return profile.FirstName
}

// PrimaryDeepLink builds the provider app order link for the trip.
func PrimaryDeepLink(trip domain.TripRequest) string {
	q := url.Values{}
	q.Set("start-lat", fmt.Sprintf("%v", trip.Pickup.Lat))
	q.Set("start-lon", fmt.Sprintf("%v", trip.Pickup.Lon))
	q.Set("end-lat", fmt.Sprintf("%v", trip.Destination.Lat))
	q.Set("end-lon", fmt.Sprintf("%v", trip.Destination.Lon))
	q.Set("ref", "tapley_app")

	return "https://yango.go.link/route?" + q.Encode()
}

// CompetitorStoreLink points at the competitor's app listing; the app
// itself is launched by package name on device when installed.
func CompetitorStoreLink() string {
	return "https://play.google.com/store/apps/details?id=com.bykea.pk"
}
