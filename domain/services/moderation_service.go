package services

import (
	"context"
	"fmt"
	"strings"

	"fcbot/domain/entities"
	"fcbot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// Texts for the three ban outcomes. They must stay distinguishable: each one
// signals a different degradation state to guild admins.
const (
	banUnattributedText = "A ban somehow occurred but no logs about it could be found!"
	banDegradedText     = "A member was banned, and an audit entry exists, but neither the banned member nor the moderator could be resolved."
	unknownExecutorText = "Someone who was not part of the server somehow... what how??"
)

// moderationService implements the ModerationService interface
type moderationService struct {
	configRepo interfaces.ManagerConfigRepository
	transport  interfaces.ChatTransport
}

// NewModerationService creates a new moderation service
func NewModerationService(configRepo interfaces.ManagerConfigRepository, transport interfaces.ChatTransport) interfaces.ModerationService {
	return &moderationService{
		configRepo: configRepo,
		transport:  transport,
	}
}

// loggingChannel resolves the guild's logging destination. Returns nil
// without error when the feature is not opted in or the configured channel
// no longer exists.
func (s *moderationService) loggingChannel(ctx context.Context, guildID int64) (*entities.Channel, error) {
	config, err := s.configRepo.GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager config for guild %d: %w", guildID, err)
	}
	if !config.HasLoggingChannel() {
		return nil, nil
	}

	channel, err := s.transport.FetchChannel(ctx, *config.LoggingChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logging channel for guild %d: %w", guildID, err)
	}
	if channel == nil {
		log.Warnf("Logging channel %d for guild %d no longer exists, skipping notice", *config.LoggingChannelID, guildID)
		return nil, nil
	}
	return channel, nil
}

// HandleMemberRemove classifies a departure and posts a departure notice
func (s *moderationService) HandleMemberRemove(ctx context.Context, member entities.MemberRef) error {
	channel, err := s.loggingChannel(ctx, member.GuildID())
	if err != nil {
		return err
	}
	if channel == nil {
		return nil
	}

	// Partial members must be refreshed before field access. A failed
	// refresh degrades to whatever the gateway event carried; the notice is
	// still produced.
	profile, err := member.Materialize(ctx, s.transport.FetchGuildMember)
	if err != nil {
		log.Warnf("Could not refresh departed member %d in guild %d, using partial data: %v", member.UserID(), member.GuildID(), err)
	}

	entries, err := s.transport.FetchAuditLog(ctx, member.GuildID(), entities.AuditMemberKick, 1)
	if err != nil {
		log.Errorf("Failed to fetch kick audit log for guild %d: %v", member.GuildID(), err)
		entries = nil
	}

	notice := departureNotice(profile)
	if len(entries) > 0 && entries[0].TargetID == profile.UserID {
		notice.Title = "User Kicked!"
		notice.Description = fmt.Sprintf("User **%s** was kicked by **%s** from the server.",
			displayName(profile), s.executorName(ctx, member.GuildID(), entries[0].ExecutorID))
	} else {
		notice.Title = "User Left!"
		notice.Description = fmt.Sprintf("User **%s** has left this discord server", displayName(profile))
	}

	if err := s.transport.SendNotice(ctx, channel.ID, notice); err != nil {
		return fmt.Errorf("failed to deliver departure notice for guild %d: %w", member.GuildID(), err)
	}
	return nil
}

// HandleMemberBan attributes a ban from the audit trail and posts a notice
func (s *moderationService) HandleMemberBan(ctx context.Context, guildID, userID int64, userTag string) error {
	channel, err := s.loggingChannel(ctx, guildID)
	if err != nil {
		return err
	}
	if channel == nil {
		return nil
	}

	entries, err := s.transport.FetchAuditLog(ctx, guildID, entities.AuditMemberBanAdd, 1)
	if err != nil {
		return fmt.Errorf("failed to fetch ban audit log for guild %d: %w", guildID, err)
	}

	// No entry at all: the ban happened but cannot be attributed.
	if len(entries) == 0 {
		if err := s.transport.SendMessage(ctx, channel.ID, banUnattributedText); err != nil {
			return fmt.Errorf("failed to deliver ban notice for guild %d: %w", guildID, err)
		}
		return nil
	}

	entry := entries[0]
	notice := &entities.Notice{Title: "Member Banned!"}

	var target *entities.UserRef
	if entry.TargetID != 0 {
		target, err = s.transport.FetchUser(ctx, entry.TargetID)
		if err != nil {
			log.Warnf("Could not resolve ban target %d in guild %d: %v", entry.TargetID, guildID, err)
			target = nil
		}
	}

	if target == nil {
		// Entry exists but is not resolvable: degraded, explicit about it.
		notice.Description = banDegradedText
		if userTag != "" {
			notice.Description += fmt.Sprintf(" The gateway reported the banned user as **%s**.", userTag)
		}
	} else {
		notice.Description = fmt.Sprintf("User **%s** was banned by %s!",
			target.Tag, s.executorName(ctx, guildID, entry.ExecutorID))
		notice.ThumbnailURL = target.AvatarURL
	}

	if err := s.transport.SendNotice(ctx, channel.ID, notice); err != nil {
		return fmt.Errorf("failed to deliver ban notice for guild %d: %w", guildID, err)
	}
	return nil
}

// executorName resolves a moderator's display name by identity. Failure to
// resolve degrades the text instead of dropping the notice.
func (s *moderationService) executorName(ctx context.Context, guildID, executorID int64) string {
	if executorID == 0 {
		return unknownExecutorText
	}
	executor, err := s.transport.FetchGuildMember(ctx, guildID, executorID)
	if err != nil || executor == nil {
		log.Warnf("Could not resolve executor %d in guild %d: %v", executorID, guildID, err)
		return unknownExecutorText
	}
	return fmt.Sprintf("**%s**", displayName(executor))
}

// departureNotice builds the shared field set of both departure variants
func departureNotice(profile *entities.MemberProfile) *entities.Notice {
	nickname := profile.Nickname
	if nickname == "" {
		nickname = "None"
	}

	joined := "Unknown"
	if !profile.JoinedAt.IsZero() {
		joined = profile.JoinedAt.Format("15:04:05 02/01/2006")
	}

	roles := make([]string, 0, len(profile.RoleIDs))
	for _, roleID := range profile.RoleIDs {
		roles = append(roles, fmt.Sprintf("<@&%d>", roleID))
	}
	roleList := strings.Join(roles, " ")
	if roleList == "" {
		roleList = "None"
	}

	return &entities.Notice{
		Fields: []entities.NoticeField{
			{Name: "Joined On:", Value: joined},
			{Name: "Nickname was:", Value: nickname},
			{Name: "Roles:", Value: roleList},
		},
		ThumbnailURL: profile.AvatarURL,
	}
}

func displayName(profile *entities.MemberProfile) string {
	if profile.Nickname != "" {
		return profile.Nickname
	}
	if profile.DisplayName != "" {
		return profile.DisplayName
	}
	return fmt.Sprintf("<@%d>", profile.UserID)
}
