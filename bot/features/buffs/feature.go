package buffs

import (
	"sync"
	"time"

	"fcbot/bot"
	"fcbot/domain/interfaces"

	"github.com/bwmarrin/discordgo"
)

// Feature serves the buff rotation: display commands for the current and
// upcoming schedule, admin configuration, and the timed daily posting task.
type Feature struct {
	schedule  interfaces.BuffScheduleService
	configs   interfaces.BuffConfigRepository
	transport interfaces.ChatTransport

	// lastPosted tracks the trigger minute each guild was last posted to,
	// keyed by guild id. The scheduler fires more often than once per
	// minute boundary, so the task dedupes itself here.
	mu         sync.Mutex
	lastPosted map[int64]string

	now func() time.Time
}

// NewFeature creates a new buffs feature instance
func NewFeature(schedule interfaces.BuffScheduleService, configs interfaces.BuffConfigRepository, transport interfaces.ChatTransport) *Feature {
	return &Feature{
		schedule:   schedule,
		configs:    configs,
		transport:  transport,
		lastPosted: make(map[int64]string),
		now:        time.Now,
	}
}

// Module bundles the feature's commands and the daily posting task
func (f *Feature) Module() *bot.Module {
	adminOnly := int64(discordgo.PermissionAdministrator)

	return &bot.Module{
		Name: "buffManager",
		Commands: []bot.Command{
			{
				Definition: &discordgo.ApplicationCommand{
					Name:        "todays_buff",
					Description: "Displays the buff for the day.",
				},
				Handler: f.handleTodaysBuff,
			},
			{
				Definition: &discordgo.ApplicationCommand{
					Name:        "tomorrows_buff",
					Description: "Displays the buff for tomorrow.",
				},
				Handler: f.handleTomorrowsBuff,
			},
			{
				Definition: &discordgo.ApplicationCommand{
					Name:        "this_weeks_buffs",
					Description: "Displays the buffs for the week.",
				},
				Handler: f.handleThisWeeksBuffs,
			},
			{
				Definition: &discordgo.ApplicationCommand{
					Name:        "next_weeks_buffs",
					Description: "Displays the buffs for next week.",
				},
				Handler: f.handleNextWeeksBuffs,
			},
			{
				Definition: &discordgo.ApplicationCommand{
					Name:                     "buff_config",
					Description:              "Configure the buff rotation for this guild.",
					DefaultMemberPermissions: &adminOnly,
					Options:                  configSubcommands(),
				},
				Handler: f.handleConfig,
			},
		},
		Tasks: []bot.Task{
			{
				Name:          "buffManager.dailyMessageTask",
				Interval:      time.Minute,
				RequiresReady: true,
				Run:           f.postScheduledMessages,
			},
		},
	}
}

func configSubcommands() []*discordgo.ApplicationCommandOption {
	return []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "add_buff",
			Description: "Add a buff to the rotation pool.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Stable identifier for the buff.", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "Display text of the buff.", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "image_url", Description: "Thumbnail image URL.", Required: false},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "remove_buff",
			Description: "Remove a buff from the rotation pool.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "id", Description: "Identifier of the buff to remove.", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "add_week",
			Description: "Add a week schedule.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Title shown on the weekly schedule.", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "remove_week",
			Description: "Remove a week schedule.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "index", Description: "Zero-based index of the week.", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "toggle_week",
			Description: "Enable or disable a week schedule.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "index", Description: "Zero-based index of the week.", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set_day",
			Description: "Assign a buff to a weekday slot of a week.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "index", Description: "Zero-based index of the week.", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "day", Description: "Weekday, 0 = Sunday through 6 = Saturday.", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "buff_id", Description: "Buff to assign. Omit to clear the slot.", Required: false},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set_channel",
			Description: "Set the channel the daily buff message is posted to.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Target channel.", Required: true},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        "set_schedule",
			Description: "Set the posting time and optional weekly announcement day.",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "time", Description: "Posting time, HH:mm 24-hour clock.", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "weekly_day", Description: "Weekday the weekly overview is posted, 0 = Sunday. Omit to disable.", Required: false},
			},
		},
	}
}
