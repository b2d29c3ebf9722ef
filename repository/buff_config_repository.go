package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"fcbot/database"
	"fcbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// BuffConfigRepository implements the BuffConfigRepository interface.
// Each guild's rotation config is stored as one whole document; updates
// replace the document, accepting last-write-wins from the store.
type BuffConfigRepository struct {
	q Queryable
}

// NewBuffConfigRepository creates a new buff config repository
func NewBuffConfigRepository(db *database.DB) *BuffConfigRepository {
	return &BuffConfigRepository{q: db.Pool}
}

// NewBuffConfigRepositoryWithTx creates a new buff config repository with a transaction
func NewBuffConfigRepositoryWithTx(tx Queryable) *BuffConfigRepository {
	return &BuffConfigRepository{q: tx}
}

// Get retrieves a guild's config, or nil if none exists
func (r *BuffConfigRepository) Get(ctx context.Context, guildID int64) (*entities.BuffConfig, error) {
	query := `
		SELECT guild_id, buffs, weeks, message_settings
		FROM buff_configs
		WHERE guild_id = $1
	`

	config, err := scanBuffConfig(r.q.QueryRow(ctx, query, guildID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get buff config for guild %d: %w", guildID, err)
	}
	return config, nil
}

// GetOrCreate retrieves a guild's config or creates an empty document if not found
func (r *BuffConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.BuffConfig, error) {
	config, err := r.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if config != nil {
		return config, nil
	}

	insertQuery := `
		INSERT INTO buff_configs (guild_id, buffs, weeks, message_settings)
		VALUES ($1, '[]', '[]', '{}')
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, buffs, weeks, message_settings
	`

	config, err = scanBuffConfig(r.q.QueryRow(ctx, insertQuery, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to create buff config for guild %d: %w", guildID, err)
	}
	return config, nil
}

// Save validates and persists the whole document
func (r *BuffConfigRepository) Save(ctx context.Context, config *entities.BuffConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid buff config for guild %d: %w", config.GuildID, err)
	}

	buffs, err := json.Marshal(config.Buffs)
	if err != nil {
		return fmt.Errorf("failed to marshal buffs for guild %d: %w", config.GuildID, err)
	}
	weeks, err := json.Marshal(config.Weeks)
	if err != nil {
		return fmt.Errorf("failed to marshal weeks for guild %d: %w", config.GuildID, err)
	}
	settings, err := json.Marshal(config.MessageSettings)
	if err != nil {
		return fmt.Errorf("failed to marshal message settings for guild %d: %w", config.GuildID, err)
	}

	query := `
		INSERT INTO buff_configs (guild_id, buffs, weeks, message_settings)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (guild_id) DO UPDATE SET
			buffs = EXCLUDED.buffs,
			weeks = EXCLUDED.weeks,
			message_settings = EXCLUDED.message_settings
	`

	if _, err := r.q.Exec(ctx, query, config.GuildID, buffs, weeks, settings); err != nil {
		return fmt.Errorf("failed to save buff config for guild %d: %w", config.GuildID, err)
	}
	return nil
}

// FindAll returns every stored config in store iteration order
func (r *BuffConfigRepository) FindAll(ctx context.Context) ([]*entities.BuffConfig, error) {
	query := `
		SELECT guild_id, buffs, weeks, message_settings
		FROM buff_configs
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list buff configs: %w", err)
	}
	defer rows.Close()

	var configs []*entities.BuffConfig
	for rows.Next() {
		config, err := scanBuffConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan buff config: %w", err)
		}
		configs = append(configs, config)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate buff configs: %w", err)
	}
	return configs, nil
}

func scanBuffConfig(row pgx.Row) (*entities.BuffConfig, error) {
	var config entities.BuffConfig
	var buffs, weeks, settings []byte

	if err := row.Scan(&config.GuildID, &buffs, &weeks, &settings); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(buffs, &config.Buffs); err != nil {
		return nil, fmt.Errorf("corrupt buffs document: %w", err)
	}
	if err := json.Unmarshal(weeks, &config.Weeks); err != nil {
		return nil, fmt.Errorf("corrupt weeks document: %w", err)
	}
	if err := json.Unmarshal(settings, &config.MessageSettings); err != nil {
		return nil, fmt.Errorf("corrupt message settings document: %w", err)
	}
	return &config, nil
}
