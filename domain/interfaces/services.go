package interfaces

import (
	"context"

	"fcbot/domain/entities"
)

// BuffScheduleService owns the admin-facing mutations of a guild's buff
// rotation document
type BuffScheduleService interface {
	GetConfig(ctx context.Context, guildID int64) (*entities.BuffConfig, error)
	AddBuff(ctx context.Context, guildID int64, buff entities.Buff) error
	RemoveBuff(ctx context.Context, guildID int64, buffID string) error
	AddWeek(ctx context.Context, guildID int64, week entities.Week) error
	RemoveWeek(ctx context.Context, guildID int64, index int) error
	ToggleWeek(ctx context.Context, guildID int64, index int) (bool, error)
	SetWeekDay(ctx context.Context, guildID int64, index, day int, buffID string) error
	UpdateMessageSettings(ctx context.Context, guildID int64, settings entities.MessageSettings) error
}

// ModerationService correlates membership events against the guild's audit
// trail and posts notices to the configured logging channel
type ModerationService interface {
	// HandleMemberRemove classifies a departure as kicked or left and posts
	// a departure notice. No-op when the guild has no logging channel.
	HandleMemberRemove(ctx context.Context, member entities.MemberRef) error

	// HandleMemberBan attributes a ban from the audit trail and posts one of
	// three distinct notices: fully attributed, degraded, or unattributed.
	// No-op when the guild has no logging channel.
	HandleMemberBan(ctx context.Context, guildID, userID int64, userTag string) error
}
