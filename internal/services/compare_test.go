package services

import (
	"context"
	"errors"
	"math"
	"ride-compare-service/internal/adapters/fare"
	"ride-compare-service/internal/domain"
	"strings"
	"testing"
)

type fakeProfileStore struct {
	profiles map[string]domain.UserProfile
	loadErr  error
}

func (f *fakeProfileStore) Save(ctx context.Context, sessionID string, p domain.UserProfile) error {
	if f.profiles == nil {
		f.profiles = make(map[string]domain.UserProfile)
	}
	f.profiles[sessionID] = p
	return nil
}

func (f *fakeProfileStore) Load(ctx context.Context, sessionID string) (domain.UserProfile, bool, error) {
	if f.loadErr != nil {
		return domain.UserProfile{}, false, f.loadErr
	}
	p, ok := f.profiles[sessionID]
	return p, ok, nil
}

func TestCompareOfflineLadderEndsAtMock(t *testing.T) {
	w := NewWorkflow(
		NewResolver(&fakeGeocoder{address: "Jinnah Avenue"}, "Islamabad"),
		NewEstimator(fare.NewFailingFareProvider("unreachable"), fare.NewFailingFareProvider("unreachable")),
		nil,
	)

	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 33.6844, Lon: 73.0479},
		Destination: domain.Coordinate{Lat: 33.7000, Lon: 73.0600},
		RideClass:   domain.RideClassMini,
	}

	out, err := w.Compare(context.Background(), CompareRequest{Trip: trip})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Result.Primary.Source != domain.SourceMockEstimate {
		t.Fatalf("primary source = %q, want mock_estimate", out.Result.Primary.Source)
	}
	if !out.Approximate {
		t.Fatal("mock-backed quotes must carry the approximate flag")
	}

	km := HaversineKm(trip.Pickup, trip.Destination)
	want := 50 + int(math.Round(km*15*1.0))
	if out.Result.Primary.Amount != want {
		t.Fatalf("primary amount = %d, want %d", out.Result.Primary.Amount, want)
	}
	if out.Metrics.DistanceKm < 1.8 || out.Metrics.DistanceKm > 2.2 {
		t.Fatalf("distance = %v km, want ~2", out.Metrics.DistanceKm)
	}
}

func TestCompareBikeCompetitorWins(t *testing.T) {
	est := NewEstimator(fare.NewScriptedFareProvider(300, "PKR"), nil)
	w := NewWorkflow(NewResolver(&fakeGeocoder{address: "x"}, ""), est, nil)

	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 33.6844, Lon: 73.0479},
		Destination: domain.Coordinate{Lat: 33.7000, Lon: 73.0600},
		RideClass:   domain.RideClassBike,
	}

	out, err := w.Compare(context.Background(), CompareRequest{Trip: trip})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Result.CheaperSide != domain.SideCompetitor {
		t.Fatalf("cheaper side = %q, want competitor", out.Result.CheaperSide)
	}
	c := out.Result.Competitor.Amount
	if c < 150 || c > 180 {
		t.Fatalf("competitor amount = %d, want within [150, 180]", c)
	}
	if out.Approximate {
		t.Fatal("live primary quote should not be approximate")
	}
}

func TestCompareReverseFailureUsesFallbackLabel(t *testing.T) {
	w := NewWorkflow(
		NewResolver(&fakeGeocoder{reverseErr: errors.New("timeout")}, "Islamabad"),
		NewEstimator(fare.NewScriptedFareProvider(200, "PKR"), nil),
		nil,
	)

	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 33.6844, Lon: 73.0479},
		Destination: domain.Coordinate{Lat: 33.7000, Lon: 73.0600},
		RideClass:   domain.RideClassMini,
	}

	out, err := w.Compare(context.Background(), CompareRequest{Trip: trip})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.PickupLabel != FallbackLocationLabel {
		t.Fatalf("pickup label = %q, want %q", out.PickupLabel, FallbackLocationLabel)
	}
	if out.DestinationLabel != FallbackLocationLabel {
		t.Fatalf("destination label = %q, want %q", out.DestinationLabel, FallbackLocationLabel)
	}
}

func TestCompareKeepsCallerLabels(t *testing.T) {
	geo := &fakeGeocoder{address: "should not be used"}
	w := NewWorkflow(
		NewResolver(geo, ""),
		NewEstimator(fare.NewScriptedFareProvider(200, "PKR"), nil),
		nil,
	)

	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 33.6844, Lon: 73.0479},
		Destination: domain.Coordinate{Lat: 33.7000, Lon: 73.0600},
		RideClass:   domain.RideClassAC,
	}

	out, err := w.Compare(context.Background(), CompareRequest{
		Trip:             trip,
		PickupLabel:      "Home",
		DestinationLabel: "Office",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.PickupLabel != "Home" || out.DestinationLabel != "Office" {
		t.Fatalf("labels = %q/%q, want Home/Office", out.PickupLabel, out.DestinationLabel)
	}
}

func TestCompareInvalidTrip(t *testing.T) {
	w := NewWorkflow(nil, NewEstimator(nil, nil), nil)

	_, err := w.Compare(context.Background(), CompareRequest{Trip: domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 999, Lon: 0},
		Destination: domain.Coordinate{Lat: 33.7, Lon: 73.0},
		RideClass:   domain.RideClassMini,
	}})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCompareRiderName(t *testing.T) {
	profiles := &fakeProfileStore{profiles: map[string]domain.UserProfile{
		"sess-1": {FirstName: "Ayesha"},
	}}
	w := NewWorkflow(
		NewResolver(&fakeGeocoder{address: "x"}, ""),
		NewEstimator(fare.NewScriptedFareProvider(200, "PKR"), nil),
		profiles,
	)

	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 33.6844, Lon: 73.0479},
		Destination: domain.Coordinate{Lat: 33.7000, Lon: 73.0600},
		RideClass:   domain.RideClassMini,
	}

	out, err := w.Compare(context.Background(), CompareRequest{Trip: trip, SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RiderName != "Ayesha" {
		t.Fatalf("rider name = %q, want Ayesha", out.RiderName)
	}

	// Unknown session and store errors are both soft.
	out, err = w.Compare(context.Background(), CompareRequest{Trip: trip, SessionID: "nope"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.RiderName != "" {
		t.Fatalf("rider name = %q, want empty for unknown session", out.RiderName)
	}
}

func TestPrimaryDeepLink(t *testing.T) {
	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: 33.6844, Lon: 73.0479},
		Destination: domain.Coordinate{Lat: 33.7000, Lon: 73.0600},
		RideClass:   domain.RideClassMini,
	}

	link := PrimaryDeepLink(trip)

	if !strings.HasPrefix(link, "https://yango.go.link/route?") {
		t.Fatalf("link = %q", link)
	}
	for _, part := range []string{"start-lat=33.6844", "start-lon=73.0479", "end-lat=33.7", "end-lon=73.06", "ref=tapley_app"} {
		if !strings.Contains(link, part) {
			t.Errorf("link missing %q: %s", part, link)
		}
	}
}
