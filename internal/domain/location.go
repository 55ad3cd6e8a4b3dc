package domain

// LocationCandidate is one forward-geocoding suggestion. Candidates are
// ephemeral and discarded once a selection is made.
type LocationCandidate struct {
	ID           string
	DisplayName  string
	Coordinate   Coordinate
	IsLocalMatch bool
}
