package commission

import (
	"context"

	"github.com/google/uuid"
)

// EntryRepository defines the interface for commission entry persistence
type EntryRepository interface {
	// FindByOrder returns all entries for an order, any status
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]Entry, error)

	// FindAll returns all entries, any status (bulk recomputation input)
	FindAll(ctx context.Context) ([]Entry, error)

	// SaveAll persists new entries
	SaveAll(ctx context.Context, entries []Entry) error
}

// SettingsRepository defines the interface for commission settings lookup
type SettingsRepository interface {
	// Get returns the configured commission settings
	Get(ctx context.Context) (Settings, error)
}
