package common

import (
	"testing"

	"fcbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("123456789012345678")
	require.NoError(t, err)
	assert.Equal(t, int64(123456789012345678), id)

	_, err = ParseID("not-a-snowflake")
	assert.Error(t, err)
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "42", FormatID(42))
}

func TestFormatChannelMention(t *testing.T) {
	assert.Equal(t, "<#12345>", FormatChannelMention(12345))
}

func TestNoticeEmbed(t *testing.T) {
	notice := &entities.Notice{
		Title:       "User Kicked!",
		Description: "A user was kicked from the server.",
		Fields: []entities.NoticeField{
			{Name: "Joined On:", Value: "June 1 2023", Inline: true},
			{Name: "Nickname was:", Value: "None", Inline: true},
		},
		ThumbnailURL: "https://example.com/avatar.png",
		FooterText:   "moderation log",
	}

	embed := NoticeEmbed(notice)

	assert.Equal(t, "User Kicked!", embed.Title)
	assert.Equal(t, "A user was kicked from the server.", embed.Description)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "Joined On:", embed.Fields[0].Name)
	assert.True(t, embed.Fields[0].Inline)
	require.NotNil(t, embed.Thumbnail)
	assert.Equal(t, "https://example.com/avatar.png", embed.Thumbnail.URL)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "moderation log", embed.Footer.Text)
}

func TestNoticeEmbedOmitsEmptyParts(t *testing.T) {
	embed := NoticeEmbed(&entities.Notice{Title: "Plain"})
	assert.Nil(t, embed.Thumbnail)
	assert.Nil(t, embed.Footer)
	assert.Empty(t, embed.Fields)
}
