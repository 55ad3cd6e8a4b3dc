package handlers

import (
	"net/http"
	"ride-compare-service/internal/api/dto"
	"ride-compare-service/internal/services"
)

// SuggestHandler exposes forward-geocoding suggestions and reverse
// address resolution.
type SuggestHandler struct {
	Resolver  *services.Resolver
	Sequencer *services.Sequencer
}

// Suggest returns location candidates for a partial query.
// Query params: q (text), city (bias city, optional), field + session
// (optional, identifies the client input for stale-result guarding).
func (h *SuggestHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	city := r.URL.Query().Get("city")

	guardKey := ""
	var token uint64
	if h.Sequencer != nil {
		session := r.URL.Query().Get("session")
		field := r.URL.Query().Get("field")
		if session != "" && field != "" {
			guardKey = session + "/" + field
			token = h.Sequencer.Begin(guardKey)
		}
	}

	candidates := h.Resolver.Suggest(r.Context(), query, city)

	res := dto.SuggestionResponse{
		Suggestions: make([]dto.SuggestionItem, 0, len(candidates)),
	}

	// A newer request for the same field superseded this one; tell the
	// client to drop the payload instead of overwriting fresher results.
	if guardKey != "" && !h.Sequencer.Fresh(guardKey, token) {
		res.Stale = true
		writeJSON(w, r, http.StatusOK, res)
		return
	}

	for _, c := range candidates {
		res.Suggestions = append(res.Suggestions, dto.SuggestionItem{
			ID:           c.ID,
			Name:         c.DisplayName,
			Latitude:     c.Coordinate.Lat,
			Longitude:    c.Coordinate.Lon,
			IsLocalMatch: c.IsLocalMatch,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Reverse resolves a coordinate to a display address, substituting the
// fallback label when the lookup fails.
func (h *SuggestHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	c, err := parseCoordinate(r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}

	addr, resolved := h.Resolver.ResolveAddress(r.Context(), c)
	if !resolved {
		addr = services.FallbackLocationLabel
	}

	writeJSON(w, r, http.StatusOK, dto.ReverseGeocodeResponse{
		Address:  addr,
		Resolved: resolved,
	})
}
