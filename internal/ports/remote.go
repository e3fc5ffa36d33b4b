package ports

import (
	"context"
	"errors"

	"todopanel/internal/domain"
)

// ErrEndpointMissing is returned by a RemoteStore when the server
// answers "not found" for a known-valid path. It means the server-side
// handler is not installed at all, not that the data is absent, so the
// sync layer degrades to local-only operation instead of retrying.
var ErrEndpointMissing = errors.New("remote endpoint not installed")

// RemoteStore is the optional remote persistence tier.
type RemoteStore interface {
	// Load fetches the item collection. With includeNotebook false the
	// server is asked for the manual-only subset.
	Load(ctx context.Context, includeNotebook bool) ([]domain.Item, error)
	// Store replaces the remote collection with the given items.
	Store(ctx context.Context, items []domain.Item) error
}
