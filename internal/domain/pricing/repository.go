package pricing

import "context"

// MarginTierRepository defines the interface for margin tier configuration
type MarginTierRepository interface {
	// FindAll returns every configured margin tier
	FindAll(ctx context.Context) ([]MarginTier, error)
}

// SettingsRepository defines the interface for pricing settings lookup
type SettingsRepository interface {
	// Get returns the configured pricing settings, or a zero-value Settings
	// when none were configured
	Get(ctx context.Context) (Settings, error)
}
