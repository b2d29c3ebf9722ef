package bot

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"fcbot/bot/common"
	"fcbot/domain/entities"
	"fcbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// transport adapts the discordgo session to the ChatTransport interface the
// domain services consume. Platform "unknown X" responses map to nil without
// error; everything else surfaces as an error.
type transport struct {
	session *discordgo.Session
}

// NewTransport wraps a discordgo session as a ChatTransport
func NewTransport(session *discordgo.Session) interfaces.ChatTransport {
	return &transport{session: session}
}

// Transport returns the client's session wrapped as a ChatTransport
func (c *Client) Transport() interfaces.ChatTransport {
	return NewTransport(c.session)
}

func (t *transport) FetchChannel(ctx context.Context, channelID int64) (*entities.Channel, error) {
	channel, err := t.session.Channel(common.FormatID(channelID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Channel{ID: channelID, Name: channel.Name}, nil
}

func (t *transport) FetchGuildMember(ctx context.Context, guildID, userID int64) (*entities.MemberProfile, error) {
	member, err := t.session.GuildMember(common.FormatID(guildID), common.FormatID(userID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return memberProfile(guildID, member), nil
}

func (t *transport) FetchUser(ctx context.Context, userID int64) (*entities.UserRef, error) {
	user, err := t.session.User(common.FormatID(userID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.UserRef{
		ID:        userID,
		Tag:       user.String(),
		AvatarURL: user.AvatarURL(""),
	}, nil
}

func (t *transport) FetchAuditLog(ctx context.Context, guildID int64, action entities.AuditAction, limit int) ([]entities.AuditEntry, error) {
	auditLog, err := t.session.GuildAuditLog(common.FormatID(guildID), "", "", int(auditLogAction(action)), limit)
	if err != nil {
		return nil, err
	}

	entries := make([]entities.AuditEntry, 0, len(auditLog.AuditLogEntries))
	for _, entry := range auditLog.AuditLogEntries {
		targetID, _ := strconv.ParseInt(entry.TargetID, 10, 64)
		executorID, _ := strconv.ParseInt(entry.UserID, 10, 64)
		entries = append(entries, entities.AuditEntry{
			Action:     action,
			TargetID:   targetID,
			ExecutorID: executorID,
		})
	}
	return entries, nil
}

func (t *transport) SendMessage(ctx context.Context, channelID int64, content string) error {
	_, err := t.session.ChannelMessageSend(common.FormatID(channelID), content)
	return err
}

func (t *transport) SendNotice(ctx context.Context, channelID int64, notice *entities.Notice) error {
	_, err := t.session.ChannelMessageSendEmbed(common.FormatID(channelID), common.NoticeEmbed(notice))
	return err
}

func (t *transport) GuildIDs() []int64 {
	guilds := t.session.State.Guilds
	ids := make([]int64, 0, len(guilds))
	for _, guild := range guilds {
		if id, err := strconv.ParseInt(guild.ID, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func memberProfile(guildID int64, member *discordgo.Member) *entities.MemberProfile {
	profile := &entities.MemberProfile{
		GuildID:  guildID,
		Nickname: member.Nick,
		JoinedAt: member.JoinedAt,
	}
	for _, roleID := range member.Roles {
		if id, err := strconv.ParseInt(roleID, 10, 64); err == nil {
			profile.RoleIDs = append(profile.RoleIDs, id)
		}
	}
	if member.User != nil {
		profile.UserID, _ = strconv.ParseInt(member.User.ID, 10, 64)
		profile.DisplayName = member.User.Username
		if member.User.GlobalName != "" {
			profile.DisplayName = member.User.GlobalName
		}
		profile.AvatarURL = member.User.AvatarURL("")
	}
	return profile
}

func auditLogAction(action entities.AuditAction) discordgo.AuditLogAction {
	switch action {
	case entities.AuditMemberBanAdd:
		return discordgo.AuditLogActionMemberBanAdd
	default:
		return discordgo.AuditLogActionMemberKick
	}
}

// isNotFound reports whether the platform answered "no such object"
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) {
		return restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
