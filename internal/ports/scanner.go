package ports

import (
	"context"

	"todopanel/internal/domain"
)

// Scanner produces notebook-derived items by scanning documents for
// TODO markers. Its output is merged into loaded snapshots; the items
// carry locator fields and are read-only for the rest of the system.
type Scanner interface {
	Scan(ctx context.Context) ([]domain.Item, error)
}
