package buffs

import (
	"context"
	"time"

	"fcbot/domain/entities"
	"fcbot/domain/services"

	log "github.com/sirupsen/logrus"
)

const (
	defaultDailyMessage  = "Today's buff shall be:"
	defaultWeeklyMessage = "The buffs for the week shall be:"
)

// postScheduledMessages posts the daily buff message for every guild whose
// trigger time matches the current minute. Guild failures are isolated: one
// guild failing never blocks the remaining guilds in the same pass.
func (f *Feature) postScheduledMessages(ctx context.Context) error {
	now := f.now()
	minute := now.Format("15:04")

	configs, err := f.configs.FindAll(ctx)
	if err != nil {
		return err
	}

	joined := make(map[int64]bool)
	for _, id := range f.transport.GuildIDs() {
		joined[id] = true
	}

	for _, config := range configs {
		if !joined[config.GuildID] {
			continue
		}
		if !config.HasPostingChannel() {
			continue
		}
		if config.MessageSettings.TriggerTime != minute {
			continue
		}
		if !f.markPosted(config.GuildID, now) {
			continue
		}

		if err := f.postGuildMessages(ctx, config, now); err != nil {
			log.WithFields(log.Fields{
				"guild_id": config.GuildID,
				"error":    err,
			}).Error("Failed to post scheduled buff message")
			continue
		}
	}
	return nil
}

// markPosted records the trigger minute for a guild. Returns false when the
// guild was already handled this minute; the attempt counts even if posting
// then fails, so a broken guild is not retried every scheduler tick.
func (f *Feature) markPosted(guildID int64, now time.Time) bool {
	key := now.Format("2006-01-02 15:04")

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastPosted[guildID] == key {
		return false
	}
	f.lastPosted[guildID] = key
	return true
}

func (f *Feature) postGuildMessages(ctx context.Context, config *entities.BuffConfig, now time.Time) error {
	channelID := *config.MessageSettings.ChannelID

	day, err := services.ResolveDailyBuff(config, now)
	if err != nil {
		return err
	}

	daily := config.MessageSettings.DailyMessage
	if daily == "" {
		daily = defaultDailyMessage
	}
	if err := f.transport.SendMessage(ctx, channelID, daily); err != nil {
		return err
	}
	if err := f.transport.SendNotice(ctx, channelID, dayNotice(day)); err != nil {
		return err
	}

	dow := config.MessageSettings.WeeklyDOW
	if dow == nil || *dow != services.Weekday(now) {
		return nil
	}

	weekly := config.MessageSettings.WeeklyMessage
	if weekly == "" {
		weekly = defaultWeeklyMessage
	}
	if err := f.transport.SendMessage(ctx, channelID, weekly); err != nil {
		return err
	}
	return f.transport.SendNotice(ctx, channelID, weekNotice(config, &day.Week, services.WeekNumber(now)))
}
