package managerutils

import (
	"context"
	"fmt"

	"fcbot/bot"
	"fcbot/domain/entities"
	"fcbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature wires guild moderation logging: departure and ban notices posted
// to a per-guild logging channel, and the admin command that configures it.
type Feature struct {
	moderation interfaces.ModerationService
	configs    interfaces.ManagerConfigRepository
}

// NewFeature creates a new manager utils feature instance
func NewFeature(moderation interfaces.ModerationService, configs interfaces.ManagerConfigRepository) *Feature {
	return &Feature{moderation: moderation, configs: configs}
}

// Module bundles the moderation listeners and the manager_config command
func (f *Feature) Module() *bot.Module {
	adminOnly := int64(discordgo.PermissionAdministrator)

	return &bot.Module{
		Name: "managerUtils",
		Commands: []bot.Command{
			{
				Definition: &discordgo.ApplicationCommand{
					Name:                     "manager_config",
					Description:              "Configure moderation logging for this guild.",
					DefaultMemberPermissions: &adminOnly,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "set_logging_channel",
							Description: "Set the channel moderation notices are posted to.",
							Options: []*discordgo.ApplicationCommandOption{
								{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Target channel.", Required: true},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Name:        "clear_logging_channel",
							Description: "Disable moderation notices for this guild.",
						},
					},
				},
				Handler: f.handleConfig,
			},
		},
		Listeners: []bot.Listener{
			{Event: bot.EventMemberRemove, Handler: f.onMemberRemove},
			{Event: bot.EventMemberBan, Handler: f.onMemberBan},
		},
	}
}

// onMemberRemove forwards a departure to the moderation service. The gateway
// delivers a partial member on this event, so the service gets a reference
// it must materialize itself.
func (f *Feature) onMemberRemove(ctx context.Context, evt any) error {
	remove, ok := evt.(*discordgo.GuildMemberRemove)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", evt)
	}
	member := sparseMember(remove.Member)
	return f.moderation.HandleMemberRemove(ctx, member)
}

func (f *Feature) onMemberBan(ctx context.Context, evt any) error {
	ban, ok := evt.(*discordgo.GuildBanAdd)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", evt)
	}
	guildID, err := parseID(ban.GuildID)
	if err != nil {
		return err
	}
	userID, err := parseID(ban.User.ID)
	if err != nil {
		return err
	}
	return f.moderation.HandleMemberBan(ctx, guildID, userID, ban.User.String())
}

// sparseMember builds a partial member reference from whatever fields the
// gateway event carried
func sparseMember(m *discordgo.Member) entities.MemberRef {
	guildID, _ := parseID(m.GuildID)
	var userID int64
	sparse := &entities.MemberProfile{
		GuildID:  guildID,
		Nickname: m.Nick,
		JoinedAt: m.JoinedAt,
	}
	if m.User != nil {
		userID, _ = parseID(m.User.ID)
		sparse.UserID = userID
		sparse.DisplayName = m.User.Username
		sparse.AvatarURL = m.User.AvatarURL("")
	}
	for _, roleID := range m.Roles {
		if id, err := parseID(roleID); err == nil {
			sparse.RoleIDs = append(sparse.RoleIDs, id)
		}
	}
	return entities.NewPartialMember(guildID, userID, sparse)
}
