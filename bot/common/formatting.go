package common

import (
	"fmt"
	"strconv"

	"fcbot/domain/entities"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// FormatID renders a snowflake ID in the string form the Discord API expects
func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ParseID parses a snowflake ID from its API string form
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake ID %q: %w", s, err)
	}
	return id, nil
}

// FormatChannelMention creates a channel mention from an ID
func FormatChannelMention(channelID int64) string {
	return fmt.Sprintf("<#%d>", channelID)
}

// NoticeEmbed converts a platform-neutral notice into a Discord embed
func NoticeEmbed(notice *entities.Notice) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       notice.Title,
		Description: notice.Description,
		Color:       0x3498db,
	}
	for _, field := range notice.Fields {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   field.Name,
			Value:  field.Value,
			Inline: field.Inline,
		})
	}
	if notice.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: notice.ThumbnailURL}
	}
	if notice.FooterText != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: notice.FooterText}
	}
	return embed
}

// IsUserAdmin checks whether the invoking member has administrator permissions
func IsUserAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// Respond sends a plain text interaction response
func Respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Errorf("Error sending interaction response: %v", err)
	}
}

// RespondWithEmbeds sends one or more embeds as an interaction response
func RespondWithEmbeds(s *discordgo.Session, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: embeds},
	})
	if err != nil {
		log.Errorf("Error sending embed response: %v", err)
	}
}
