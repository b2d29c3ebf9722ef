package repository

import (
	"context"
	"fmt"

	"fcbot/database"
	"fcbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ManagerConfigRepository implements the ManagerConfigRepository interface
type ManagerConfigRepository struct {
	q Queryable
}

// NewManagerConfigRepository creates a new manager config repository
func NewManagerConfigRepository(db *database.DB) *ManagerConfigRepository {
	return &ManagerConfigRepository{q: db.Pool}
}

// NewManagerConfigRepositoryWithTx creates a new manager config repository with a transaction
func NewManagerConfigRepositoryWithTx(tx Queryable) *ManagerConfigRepository {
	return &ManagerConfigRepository{q: tx}
}

// GetOrCreate retrieves a guild's moderation config or creates default one if not found
func (r *ManagerConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.ManagerConfig, error) {
	query := `
		SELECT guild_id, logging_channel_id
		FROM manager_configs
		WHERE guild_id = $1
	`

	var config entities.ManagerConfig
	err := r.q.QueryRow(ctx, query, guildID).Scan(&config.GuildID, &config.LoggingChannelID)
	if err == nil {
		return &config, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get manager config for guild %d: %w", guildID, err)
	}

	insertQuery := `
		INSERT INTO manager_configs (guild_id, logging_channel_id)
		VALUES ($1, NULL)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, logging_channel_id
	`

	err = r.q.QueryRow(ctx, insertQuery, guildID).Scan(&config.GuildID, &config.LoggingChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to create manager config for guild %d: %w", guildID, err)
	}
	return &config, nil
}

// Save persists the whole document
func (r *ManagerConfigRepository) Save(ctx context.Context, config *entities.ManagerConfig) error {
	query := `
		INSERT INTO manager_configs (guild_id, logging_channel_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id) DO UPDATE SET
			logging_channel_id = EXCLUDED.logging_channel_id
	`

	if _, err := r.q.Exec(ctx, query, config.GuildID, config.LoggingChannelID); err != nil {
		return fmt.Errorf("failed to save manager config for guild %d: %w", config.GuildID, err)
	}
	return nil
}
