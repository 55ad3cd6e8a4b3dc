package ports

import (
	"context"
	"ride-compare-service/internal/domain"
)

// Port: key-value store holding the last-known authenticated profile
// per client session. Read at workflow start for personalization;
// the comparison core never writes it.
type ProfileStore interface {
	Save(ctx context.Context, sessionID string, p domain.UserProfile) error
	// Load retrieves the stored profile. The bool reports presence.
	Load(ctx context.Context, sessionID string) (domain.UserProfile, bool, error)
}
