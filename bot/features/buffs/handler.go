package buffs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fcbot/bot/common"
	"fcbot/domain/entities"
	"fcbot/domain/services"

	"github.com/bwmarrin/discordgo"
)

const guildOnlyText = "Sorry but this command can only be executed in a Guild not a direct / private message"

// guildContext validates the interaction came from a guild and parses its id
func guildContext(s *discordgo.Session, i *discordgo.InteractionCreate) (int64, bool) {
	if i.GuildID == "" {
		common.Respond(s, i, guildOnlyText, true)
		return 0, false
	}
	guildID, err := common.ParseID(i.GuildID)
	if err != nil {
		common.RespondWithError(s, i, "Something went wrong. Please try again later.")
		return 0, false
	}
	return guildID, true
}

func (f *Feature) handleTodaysBuff(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.respondDailyBuff(s, i, f.now())
}

func (f *Feature) handleTomorrowsBuff(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.respondDailyBuff(s, i, f.now().AddDate(0, 0, 1))
}

func (f *Feature) handleThisWeeksBuffs(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.respondWeekBuffs(s, i, f.now())
}

func (f *Feature) handleNextWeeksBuffs(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.respondWeekBuffs(s, i, f.now().AddDate(0, 0, 7))
}

func (f *Feature) respondDailyBuff(s *discordgo.Session, i *discordgo.InteractionCreate, date time.Time) {
	guildID, ok := guildContext(s, i)
	if !ok {
		return
	}

	config, err := f.schedule.GetConfig(context.Background(), guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load buff config"))
		return
	}

	day, err := services.ResolveDailyBuff(config, date)
	if err != nil {
		respondRotationError(s, i, err)
		return
	}

	common.RespondWithEmbeds(s, i, []*discordgo.MessageEmbed{common.NoticeEmbed(dayNotice(day))})
}

func (f *Feature) respondWeekBuffs(s *discordgo.Session, i *discordgo.InteractionCreate, date time.Time) {
	guildID, ok := guildContext(s, i)
	if !ok {
		return
	}

	config, err := f.schedule.GetConfig(context.Background(), guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load buff config"))
		return
	}

	week, err := services.ResolveWeek(config, date)
	if err != nil {
		respondRotationError(s, i, err)
		return
	}

	notice := weekNotice(config, week, services.WeekNumber(date))
	common.RespondWithEmbeds(s, i, []*discordgo.MessageEmbed{common.NoticeEmbed(notice)})
}

// respondRotationError renders a distinct ephemeral message per rotation
// failure kind
func respondRotationError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	var dangling *services.DanglingBuffError
	switch {
	case errors.As(err, &dangling):
		common.Respond(s, i, fmt.Sprintf("Sorry, but the buff with id **%s** does not actually exist!\nKindly contact your FC Admin / Manager to fix this issue.", dangling.BuffID), true)
	case errors.Is(err, services.ErrNoBuffs):
		common.Respond(s, i, "Sorry, but there are no buffs set up for this guild yet.", true)
	case errors.Is(err, services.ErrNoEnabledWeeks):
		common.Respond(s, i, "Sorry, but there are no weeks enabled for this guild.", true)
	default:
		common.HandleError(s, i, err)
	}
}

// handleConfig routes buff_config subcommands
func (f *Feature) handleConfig(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID, ok := guildContext(s, i)
	if !ok {
		return
	}
	if !common.IsUserAdmin(i) {
		common.RespondWithError(s, i, "You need administrator permissions to use this command")
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]
	opts := optionMap(sub.Options)
	ctx := context.Background()

	switch sub.Name {
	case "add_buff":
		buff := entities.Buff{ID: opts["id"].StringValue(), Text: opts["text"].StringValue()}
		if opt, ok := opts["image_url"]; ok {
			buff.ImageURL = opt.StringValue()
		}
		f.respondMutation(s, i, f.schedule.AddBuff(ctx, guildID, buff),
			fmt.Sprintf("Added buff **%s**.", buff.ID))
	case "remove_buff":
		id := opts["id"].StringValue()
		f.respondMutation(s, i, f.schedule.RemoveBuff(ctx, guildID, id),
			fmt.Sprintf("Removed buff **%s**.", id))
	case "add_week":
		week := entities.Week{Title: opts["title"].StringValue(), IsEnabled: true}
		f.respondMutation(s, i, f.schedule.AddWeek(ctx, guildID, week),
			fmt.Sprintf("Added week **%s**.", week.Title))
	case "remove_week":
		index := int(opts["index"].IntValue())
		f.respondMutation(s, i, f.schedule.RemoveWeek(ctx, guildID, index),
			fmt.Sprintf("Removed week %d.", index))
	case "toggle_week":
		index := int(opts["index"].IntValue())
		enabled, err := f.schedule.ToggleWeek(ctx, guildID, index)
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		f.respondMutation(s, i, err, fmt.Sprintf("Week %d is now %s.", index, state))
	case "set_day":
		index := int(opts["index"].IntValue())
		day := int(opts["day"].IntValue())
		buffID := ""
		if opt, ok := opts["buff_id"]; ok {
			buffID = opt.StringValue()
		}
		message := fmt.Sprintf("Cleared %s of week %d.", entities.WeekdayNames[mod7(day)], index)
		if buffID != "" {
			message = fmt.Sprintf("Assigned buff **%s** to %s of week %d.", buffID, entities.WeekdayNames[mod7(day)], index)
		}
		f.respondMutation(s, i, f.schedule.SetWeekDay(ctx, guildID, index, day, buffID), message)
	case "set_channel":
		f.handleSetChannel(ctx, s, i, guildID, opts)
	case "set_schedule":
		f.handleSetSchedule(ctx, s, i, guildID, opts)
	}
}

func (f *Feature) handleSetChannel(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	channel := opts["channel"].ChannelValue(s)
	channelID, err := common.ParseID(channel.ID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to parse channel id"))
		return
	}

	config, err := f.schedule.GetConfig(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load buff config"))
		return
	}
	settings := config.MessageSettings
	settings.ChannelID = &channelID

	f.respondMutation(s, i, f.schedule.UpdateMessageSettings(ctx, guildID, settings),
		fmt.Sprintf("Daily buff messages will be posted to %s.", common.FormatChannelMention(channelID)))
}

func (f *Feature) handleSetSchedule(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, guildID int64, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	config, err := f.schedule.GetConfig(ctx, guildID)
	if err != nil {
		common.HandleError(s, i, common.NewSystemError(err, "failed to load buff config"))
		return
	}
	settings := config.MessageSettings
	settings.TriggerTime = opts["time"].StringValue()
	settings.WeeklyDOW = nil
	message := fmt.Sprintf("Daily buff messages will be posted at %s.", settings.TriggerTime)
	if opt, ok := opts["weekly_day"]; ok {
		day := int(opt.IntValue())
		settings.WeeklyDOW = &day
		message = fmt.Sprintf("Daily buff messages will be posted at %s, with the weekly overview on %s.",
			settings.TriggerTime, entities.WeekdayNames[mod7(day)])
	}

	f.respondMutation(s, i, f.schedule.UpdateMessageSettings(ctx, guildID, settings), message)
}

// respondMutation reports a config mutation outcome. Mutation errors are
// user-correctable (bad index, duplicate id, invalid time) so the error text
// itself is shown rather than a generic failure message.
func (f *Feature) respondMutation(s *discordgo.Session, i *discordgo.InteractionCreate, err error, success string) {
	if err != nil {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.Respond(s, i, success, true)
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// mod7 clamps a weekday into [0, 6] for display purposes only; the service
// rejects out-of-range values before anything is stored.
func mod7(day int) int {
	m := day % 7
	if m < 0 {
		m += 7
	}
	return m
}
