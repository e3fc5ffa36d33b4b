package ports

import (
	"context"

	"todopanel/internal/domain"
)

// ItemCache is the fast local persistence tier. A nil, empty, or
// malformed stored payload reads back as an empty list; failures are
// ordinary errors that the caller downgrades to "no data".
type ItemCache interface {
	Fetch(ctx context.Context) ([]domain.Item, error)
	Save(ctx context.Context, items []domain.Item) error
}
