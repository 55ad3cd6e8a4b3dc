package dto

type SuggestionResponse struct {
	Suggestions []SuggestionItem `json:"suggestions"`

	// Stale is true when a newer lookup for the same input field started
	// while this one was in flight; clients drop stale payloads.
	Stale bool `json:"stale"`
}

type SuggestionItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	IsLocalMatch bool    `json:"is_local_match"`
}

type ReverseGeocodeResponse struct {
	Address  string `json:"address"`
	Resolved bool   `json:"resolved"`
}
