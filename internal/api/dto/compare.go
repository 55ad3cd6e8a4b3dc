package dto

type CoordinateDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type CompareRequest struct {
	Pickup           CoordinateDTO `json:"pickup"`
	Destination      CoordinateDTO `json:"destination"`
	RideClass        string        `json:"ride_class"`
	PickupLabel      string        `json:"pickup_label"`
	DestinationLabel string        `json:"destination_label"`
}

type QuoteResponse struct {
	Provider string `json:"provider"`
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
	Source   string `json:"source"`
}

type CompareResponse struct {
	Primary        QuoteResponse `json:"primary"`
	Competitor     QuoteResponse `json:"competitor"`
	CheaperSide    string        `json:"cheaper_side"`
	SavingsAmount  int           `json:"savings_amount"`
	SavingsPercent int           `json:"savings_percent"`

	VehicleClass     string  `json:"vehicle_class"`
	DistanceKm       float64 `json:"distance_km"`
	EtaMinutes       int     `json:"eta_minutes"`
	PickupLabel      string  `json:"pickup_label"`
	DestinationLabel string  `json:"destination_label"`

	ApproximatePricing bool   `json:"approximate_pricing"`
	RiderName          string `json:"rider_name,omitempty"`

	PrimaryLink    string `json:"primary_link"`
	CompetitorLink string `json:"competitor_link"`
}
