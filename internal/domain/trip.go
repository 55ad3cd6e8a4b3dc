package domain

import (
	"fmt"
	"strings"
)

// Ride class: a category of vehicle/service tier affecting pricing.
type RideClass string

const (
	RideClassBike RideClass = "bike"
	RideClassMini RideClass = "mini"
	RideClassAC   RideClass = "ac"
)

// ParseRideClass maps a client-supplied class string to a RideClass.
func ParseRideClass(s string) (RideClass, error) {
	switch RideClass(strings.ToLower(strings.TrimSpace(s))) {
	case RideClassBike:
		return RideClassBike, nil
	case RideClassMini:
		return RideClassMini, nil
	case RideClassAC:
		return RideClassAC, nil
	}
	return "", fmt.Errorf("parse ride class: unknown class %q", s)
}

func (rc RideClass) String() string { return string(rc) }

// DisplayName returns the rider-facing label for the class.
func (rc RideClass) DisplayName() string {
	switch rc {
	case RideClassBike:
		return "Bike"
	case RideClassMini:
		return "Ride Mini"
	case RideClassAC:
		return "Ride AC"
	}
	return string(rc)
}

// TripRequest is the immutable input of one comparison workflow run.
// It is created once both endpoints and a ride class are chosen and is
// never mutated afterwards.
type TripRequest struct {
	Pickup      Coordinate
	Destination Coordinate
	RideClass   RideClass
}

// Validate rejects a trip before any network call is made.
func (t TripRequest) Validate() error {
	if err := t.Pickup.Validate(); err != nil {
		return fmt.Errorf("validate trip: pickup: %w", err)
	}
	if err := t.Destination.Validate(); err != nil {
		return fmt.Errorf("validate trip: destination: %w", err)
	}
	if _, err := ParseRideClass(string(t.RideClass)); err != nil {
		return fmt.Errorf("validate trip: %w", err)
	}
	return nil
}

// TripMetrics is derived deterministically from a TripRequest.
// Pure value output, no independent lifecycle.
type TripMetrics struct {
	DistanceKm float64
	EtaMinutes int
}
