package entities

import (
	"fmt"
	"time"
)

// WeekdayNames indexes Sunday through Saturday, matching Week.Days slots.
var WeekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// Buff is one selectable item of daily-display content with a stable identifier
type Buff struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Week assigns a buff id to each weekday, Sunday through Saturday.
// A slot may be empty or reference an id that no longer exists; both are
// handled at resolution time, never rejected at write time.
type Week struct {
	IsEnabled bool      `json:"isEnabled"`
	Title     string    `json:"title"`
	Days      [7]string `json:"days"`
}

// MessageSettings configures the automated daily posting for a guild
type MessageSettings struct {
	ChannelID     *int64 `json:"channelId,omitempty"`
	TriggerTime   string `json:"triggerTime,omitempty"` // "HH:mm", 24-hour clock
	DailyMessage  string `json:"dailyMessage,omitempty"`
	WeeklyMessage string `json:"weeklyMessage,omitempty"`
	WeeklyDOW     *int   `json:"weeklyDow,omitempty"` // 0=Sunday..6=Saturday, nil disables the weekly post
}

// BuffConfig is the per-guild buff rotation document
type BuffConfig struct {
	GuildID         int64           `json:"guildId"`
	Buffs           []Buff          `json:"buffs"`
	Weeks           []Week          `json:"weeks"`
	MessageSettings MessageSettings `json:"messageSettings"`
}

// FindBuff returns the buff with the given id, or nil if it does not exist
func (c *BuffConfig) FindBuff(id string) *Buff {
	for i := range c.Buffs {
		if c.Buffs[i].ID == id {
			return &c.Buffs[i]
		}
	}
	return nil
}

// EnabledWeeks returns the enabled weeks preserving their relative order
func (c *BuffConfig) EnabledWeeks() []Week {
	var enabled []Week
	for _, week := range c.Weeks {
		if week.IsEnabled {
			enabled = append(enabled, week)
		}
	}
	return enabled
}

// HasPostingChannel checks if a daily message channel is configured
func (c *BuffConfig) HasPostingChannel() bool {
	return c.MessageSettings.ChannelID != nil && *c.MessageSettings.ChannelID > 0
}

// Validate checks the document for structural problems before persisting.
// Dangling day-slot references are allowed; duplicate or empty buff ids and
// unparseable trigger times are not.
func (c *BuffConfig) Validate() error {
	seen := make(map[string]struct{}, len(c.Buffs))
	for _, buff := range c.Buffs {
		if buff.ID == "" {
			return fmt.Errorf("buff id cannot be empty")
		}
		if _, ok := seen[buff.ID]; ok {
			return fmt.Errorf("duplicate buff id %q", buff.ID)
		}
		seen[buff.ID] = struct{}{}
	}

	if tt := c.MessageSettings.TriggerTime; tt != "" {
		if _, err := time.Parse("15:04", tt); err != nil {
			return fmt.Errorf("trigger time %q is not a valid HH:mm value", tt)
		}
	}
	if dow := c.MessageSettings.WeeklyDOW; dow != nil && (*dow < 0 || *dow > 6) {
		return fmt.Errorf("weekly announce weekday %d out of range 0-6", *dow)
	}

	return nil
}
