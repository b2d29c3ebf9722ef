package interfaces

import (
	"context"

	"fcbot/domain/entities"
)

// BuffConfigRepository persists the per-guild buff rotation documents.
// Documents are read and written whole; the store keeps last-write-wins
// semantics and the repository validates before every save.
type BuffConfigRepository interface {
	// Get returns the config for a guild, or nil if none exists
	Get(ctx context.Context, guildID int64) (*entities.BuffConfig, error)

	// GetOrCreate returns the config for a guild, creating an empty
	// document on first access
	GetOrCreate(ctx context.Context, guildID int64) (*entities.BuffConfig, error)

	// Save validates and persists the whole document
	Save(ctx context.Context, config *entities.BuffConfig) error

	// FindAll returns every stored config, in store iteration order
	FindAll(ctx context.Context) ([]*entities.BuffConfig, error)
}

// ManagerConfigRepository persists the per-guild moderation logging settings
type ManagerConfigRepository interface {
	// GetOrCreate returns the config for a guild, creating a default
	// document with no logging channel on first access
	GetOrCreate(ctx context.Context, guildID int64) (*entities.ManagerConfig, error)

	// Save persists the whole document
	Save(ctx context.Context, config *entities.ManagerConfig) error
}
