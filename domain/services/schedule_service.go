package services

import (
	"context"
	"fmt"

	"fcbot/domain/entities"
	"fcbot/domain/interfaces"
)

// buffScheduleService implements the admin-facing mutations of a guild's
// buff rotation document. Every mutation re-reads the stored document,
// changes it, and saves it whole; the store keeps last-write-wins semantics.
type buffScheduleService struct {
	configRepo interfaces.BuffConfigRepository
}

// NewBuffScheduleService creates a new buff schedule service
func NewBuffScheduleService(configRepo interfaces.BuffConfigRepository) interfaces.BuffScheduleService {
	return &buffScheduleService{configRepo: configRepo}
}

// GetConfig retrieves a guild's config, creating an empty one on first access
func (s *buffScheduleService) GetConfig(ctx context.Context, guildID int64) (*entities.BuffConfig, error) {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create buff config: %w", err)
	}
	return config, nil
}

// AddBuff appends a buff to the guild's buff set
func (s *buffScheduleService) AddBuff(ctx context.Context, guildID int64, buff entities.Buff) error {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get buff config: %w", err)
	}

	if config.FindBuff(buff.ID) != nil {
		return fmt.Errorf("buff id %q already exists", buff.ID)
	}
	config.Buffs = append(config.Buffs, buff)

	if err := s.configRepo.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save buff config: %w", err)
	}
	return nil
}

// RemoveBuff removes a buff from the guild's buff set. Week slots that still
// reference the removed id are left alone; they resolve as dangling.
func (s *buffScheduleService) RemoveBuff(ctx context.Context, guildID int64, buffID string) error {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get buff config: %w", err)
	}

	found := false
	buffs := config.Buffs[:0]
	for _, buff := range config.Buffs {
		if buff.ID == buffID {
			found = true
			continue
		}
		buffs = append(buffs, buff)
	}
	if !found {
		return fmt.Errorf("buff id %q does not exist", buffID)
	}
	config.Buffs = buffs

	if err := s.configRepo.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save buff config: %w", err)
	}
	return nil
}

// AddWeek appends a week schedule to the rotation
func (s *buffScheduleService) AddWeek(ctx context.Context, guildID int64, week entities.Week) error {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get buff config: %w", err)
	}

	config.Weeks = append(config.Weeks, week)

	if err := s.configRepo.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save buff config: %w", err)
	}
	return nil
}

// RemoveWeek removes the week at the given position in the stored sequence
func (s *buffScheduleService) RemoveWeek(ctx context.Context, guildID int64, index int) error {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get buff config: %w", err)
	}

	if index < 0 || index >= len(config.Weeks) {
		return fmt.Errorf("week index %d out of range, guild has %d weeks", index, len(config.Weeks))
	}
	config.Weeks = append(config.Weeks[:index], config.Weeks[index+1:]...)

	if err := s.configRepo.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save buff config: %w", err)
	}
	return nil
}

// ToggleWeek flips a week's enabled flag and returns the new state.
// Note this re-maps the rotation for every date thereafter, since selection
// runs over the enabled subset only.
func (s *buffScheduleService) ToggleWeek(ctx context.Context, guildID int64, index int) (bool, error) {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return false, fmt.Errorf("failed to get buff config: %w", err)
	}

	if index < 0 || index >= len(config.Weeks) {
		return false, fmt.Errorf("week index %d out of range, guild has %d weeks", index, len(config.Weeks))
	}
	config.Weeks[index].IsEnabled = !config.Weeks[index].IsEnabled

	if err := s.configRepo.Save(ctx, config); err != nil {
		return false, fmt.Errorf("failed to save buff config: %w", err)
	}
	return config.Weeks[index].IsEnabled, nil
}

// SetWeekDay assigns a buff id to one weekday slot of a week. An empty
// buffID clears the slot. The id is not required to exist: assignments are
// accepted as written and dangling references surface at resolution time.
func (s *buffScheduleService) SetWeekDay(ctx context.Context, guildID int64, index, day int, buffID string) error {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get buff config: %w", err)
	}

	if index < 0 || index >= len(config.Weeks) {
		return fmt.Errorf("week index %d out of range, guild has %d weeks", index, len(config.Weeks))
	}
	if day < 0 || day > 6 {
		return fmt.Errorf("weekday %d out of range 0-6", day)
	}
	config.Weeks[index].Days[day] = buffID

	if err := s.configRepo.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save buff config: %w", err)
	}
	return nil
}

// UpdateMessageSettings replaces the guild's automated posting settings
func (s *buffScheduleService) UpdateMessageSettings(ctx context.Context, guildID int64, settings entities.MessageSettings) error {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get buff config: %w", err)
	}

	config.MessageSettings = settings

	if err := s.configRepo.Save(ctx, config); err != nil {
		return fmt.Errorf("failed to save buff config: %w", err)
	}
	return nil
}
