package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"ride-compare-service/internal/api/dto"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/services"
)

const (
	primaryProviderName    = "Yango"
	competitorProviderName = "Bykea"
)

// CompareHandler runs the price-comparison workflow for a trip.
type CompareHandler struct {
	Workflow *services.Workflow
}

// Compare validates the trip, runs the estimation pipeline, and returns
// the comparison the presentation layer renders. Estimation failures are
// absorbed by the fallback ladder; the only client errors are bad input.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CompareRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	rideClass, err := domain.ParseRideClass(req.RideClass)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "ride_class must be one of: bike, mini, ac")
		return
	}

	trip := domain.TripRequest{
		Pickup:      domain.Coordinate{Lat: req.Pickup.Latitude, Lon: req.Pickup.Longitude},
		Destination: domain.Coordinate{Lat: req.Destination.Latitude, Lon: req.Destination.Longitude},
		RideClass:   rideClass,
	}
	if err := trip.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, "pickup and destination must be valid coordinates")
		return
	}

	outcome, err := h.Workflow.Compare(r.Context(), services.CompareRequest{
		Trip:             trip,
		PickupLabel:      req.PickupLabel,
		DestinationLabel: req.DestinationLabel,
		SessionID:        r.Header.Get("X-Client-Session"),
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, r, http.StatusOK, toCompareResponse(outcome))
}

func toCompareResponse(o services.CompareOutcome) dto.CompareResponse {
	return dto.CompareResponse{
		Primary: dto.QuoteResponse{
			Provider: primaryProviderName,
			Amount:   o.Result.Primary.Amount,
			Currency: o.Result.Primary.Currency,
			Source:   string(o.Result.Primary.Source),
		},
		Competitor: dto.QuoteResponse{
			Provider: competitorProviderName,
			Amount:   o.Result.Competitor.Amount,
			Currency: o.Result.Competitor.Currency,
			Source:   string(o.Result.Competitor.Source),
		},
		CheaperSide:    string(o.Result.CheaperSide),
		SavingsAmount:  o.Result.SavingsAmount,
		SavingsPercent: o.Result.SavingsPercent,

		VehicleClass:     o.Trip.RideClass.DisplayName(),
		DistanceKm:       o.Metrics.DistanceKm,
		EtaMinutes:       o.Metrics.EtaMinutes,
		PickupLabel:      o.PickupLabel,
		DestinationLabel: o.DestinationLabel,

		ApproximatePricing: o.Approximate,
		RiderName:          o.RiderName,

		PrimaryLink:    o.PrimaryLink,
		CompetitorLink: o.CompetitorLink,
	}
}
