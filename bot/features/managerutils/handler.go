package managerutils

import (
	"context"
	"fmt"

	"fcbot/bot/common"

	"github.com/bwmarrin/discordgo"
)

func parseID(s string) (int64, error) {
	return common.ParseID(s)
}

// handleConfig routes manager_config subcommands
func (f *Feature) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		common.Respond(s, i, "Sorry but this command can only be executed in a Guild not a direct / private message", true)
		return
	}
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse guild id"))
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	ctx := context.Background()

	switch options[0].Name {
	case "set_logging_channel":
		f.handleSetLoggingChannel(ctx, s, i, guildID, options[0].Options)
	case "clear_logging_channel":
		f.handleClearLoggingChannel(ctx, s, i, guildID)
	}
}

func (f *Feature) handleSetLoggingChannel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, opts []*discordgo.ApplicationCommandInteractionDataOption) {
	if len(opts) == 0 {
		return
	}
	channel := opts[0].ChannelValue(s)
	channelID, err := common.ParseID(channel.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse channel id"))
		return
	}

	config, err := f.configs.GetOrCreate(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load manager config"))
		return
	}
	config.SetLoggingChannel(&channelID)
	if err := f.configs.Save(ctx, config); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to save manager config"))
		return
	}

	common.Respond(s, i, fmt.Sprintf("Moderation notices will be posted to %s.", common.FormatChannelMention(channelID)), true)
}

func (f *Feature) handleClearLoggingChannel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64) {
	config, err := f.configs.GetOrCreate(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load manager config"))
		return
	}
	config.SetLoggingChannel(nil)
	if err := f.configs.Save(ctx, config); err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to save manager config"))
		return
	}

	common.Respond(s, i, "Moderation notices are now disabled for this guild.", true)
}
