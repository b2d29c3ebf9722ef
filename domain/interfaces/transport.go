package interfaces

import (
	"context"

	"fcbot/domain/entities"
)

// ChatTransport is the slice of the chat platform the domain services
// consume. Lookups return nil without error when the platform has no such
// object; network failures surface as errors.
type ChatTransport interface {
	// FetchChannel resolves a channel, or nil if it does not exist
	FetchChannel(ctx context.Context, channelID int64) (*entities.Channel, error)

	// FetchGuildMember resolves a guild member's full profile
	FetchGuildMember(ctx context.Context, guildID, userID int64) (*entities.MemberProfile, error)

	// FetchUser resolves a platform user independent of any guild
	FetchUser(ctx context.Context, userID int64) (*entities.UserRef, error)

	// FetchAuditLog returns up to limit audit entries of the given action
	// type, most recent first
	FetchAuditLog(ctx context.Context, guildID int64, action entities.AuditAction, limit int) ([]entities.AuditEntry, error)

	// SendMessage posts plain text to a channel
	SendMessage(ctx context.Context, channelID int64, content string) error

	// SendNotice posts a rich notice to a channel
	SendNotice(ctx context.Context, channelID int64, notice *entities.Notice) error

	// GuildIDs lists the guilds the transport session is currently in
	GuildIDs() []int64
}
