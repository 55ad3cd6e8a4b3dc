package services

import (
	"math"
	"ride-compare-service/internal/domain"
)

const earthRadiusKm = 6371

// HaversineKm computes the great-circle distance in kilometres between
// two coordinates. Pure, total function.
func HaversineKm(a, b domain.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateEtaMinutes derives a travel-time approximation from distance.
// This is a fixed affine heuristic (10 min pickup overhead plus 2 min/km),
// not a routing-engine estimate.
func EstimateEtaMinutes(distanceKm float64) int {
	return int(math.Round(10 + distanceKm*2))
}

// ComputeTripMetrics derives distance and ETA for a trip.
func ComputeTripMetrics(trip domain.TripRequest) domain.TripMetrics {
	km := HaversineKm(trip.Pickup, trip.Destination)
	return domain.TripMetrics{
		DistanceKm: km,
		EtaMinutes: EstimateEtaMinutes(km),
	}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
