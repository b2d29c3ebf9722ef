package entities

// ManagerConfig holds the per-guild moderation logging settings.
// Created lazily with default fields on first access and never deleted;
// the logging channel is a configured opt-in, nil means the moderation
// notices are disabled for the guild.
type ManagerConfig struct {
	GuildID          int64  `json:"guildId"`
	LoggingChannelID *int64 `json:"loggingChannelId,omitempty"`
}

// HasLoggingChannel checks if a logging channel is configured
func (mc *ManagerConfig) HasLoggingChannel() bool {
	return mc.LoggingChannelID != nil && *mc.LoggingChannelID > 0
}

// SetLoggingChannel sets the logging channel ID (nil disables the feature)
func (mc *ManagerConfig) SetLoggingChannel(channelID *int64) {
	mc.LoggingChannelID = channelID
}
