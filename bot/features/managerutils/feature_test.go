package managerutils

import (
	"context"
	"testing"
	"time"

	"fcbot/domain/entities"
	"fcbot/domain/testhelpers"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOnMemberRemove(t *testing.T) {
	t.Run("forwards a partial member reference", func(t *testing.T) {
		moderation := new(testhelpers.MockModerationService)
		f := NewFeature(moderation, new(testhelpers.MockManagerConfigRepository))

		joined := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
		evt := &discordgo.GuildMemberRemove{
			Member: &discordgo.Member{
				GuildID:  "100",
				Nick:     "Sarge",
				JoinedAt: joined,
				User:     &discordgo.User{ID: "42", Username: "sarge"},
			},
		}

		var captured entities.MemberRef
		moderation.On("HandleMemberRemove", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(entities.MemberRef)
			}).Return(nil)

		require.NoError(t, f.onMemberRemove(context.Background(), evt))

		assert.Equal(t, int64(100), captured.GuildID())
		assert.Equal(t, int64(42), captured.UserID())
		assert.True(t, captured.IsPartial())

		// the sparse profile survives even when the refresh is unavailable
		profile, _ := captured.Materialize(context.Background(),
			func(ctx context.Context, guildID, userID int64) (*entities.MemberProfile, error) {
				return nil, nil
			})
		assert.Equal(t, "Sarge", profile.Nickname)
		assert.Equal(t, joined, profile.JoinedAt)
	})

	t.Run("rejects foreign event payloads", func(t *testing.T) {
		f := NewFeature(new(testhelpers.MockModerationService), new(testhelpers.MockManagerConfigRepository))
		assert.Error(t, f.onMemberRemove(context.Background(), &discordgo.GuildBanAdd{}))
	})
}

func TestOnMemberBan(t *testing.T) {
	moderation := new(testhelpers.MockModerationService)
	f := NewFeature(moderation, new(testhelpers.MockManagerConfigRepository))

	evt := &discordgo.GuildBanAdd{
		GuildID: "100",
		User:    &discordgo.User{ID: "42", Username: "sarge", Discriminator: "0"},
	}

	moderation.On("HandleMemberBan", mock.Anything, int64(100), int64(42), evt.User.String()).Return(nil)

	require.NoError(t, f.onMemberBan(context.Background(), evt))
	moderation.AssertExpectations(t)
}
