package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"fcbot/domain/entities"
	"fcbot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID   = int64(123456789)
	testChannelID = int64(555000111)
)

func managerConfigWithChannel() *entities.ManagerConfig {
	channelID := testChannelID
	return &entities.ManagerConfig{GuildID: testGuildID, LoggingChannelID: &channelID}
}

func departedProfile() *entities.MemberProfile {
	return &entities.MemberProfile{
		GuildID:     testGuildID,
		UserID:      42,
		DisplayName: "Departed",
		Nickname:    "Nick",
		JoinedAt:    time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC),
		RoleIDs:     []int64{1, 2},
	}
}

func TestModerationService_MemberRemove_NoLoggingChannel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockManagerConfigRepository)
	mockTransport := new(testhelpers.MockChatTransport)
	mockRepo.On("GetOrCreate", ctx, testGuildID).Return(&entities.ManagerConfig{GuildID: testGuildID}, nil)

	service := NewModerationService(mockRepo, mockTransport)
	err := service.HandleMemberRemove(ctx, entities.NewFullMember(departedProfile()))

	require.NoError(t, err)
	mockTransport.AssertNotCalled(t, "SendNotice", mock.Anything, mock.Anything, mock.Anything)
	mockTransport.AssertNotCalled(t, "FetchAuditLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModerationService_MemberRemove_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		entries      []entities.AuditEntry
		wantTitle    string
		wantExecutor bool
	}{
		{
			name:         "most recent kick targets the departed member",
			entries:      []entities.AuditEntry{{Action: entities.AuditMemberKick, TargetID: 42, ExecutorID: 77}},
			wantTitle:    "User Kicked!",
			wantExecutor: true,
		},
		{
			name:      "most recent kick targets somebody else",
			entries:   []entities.AuditEntry{{Action: entities.AuditMemberKick, TargetID: 999, ExecutorID: 77}},
			wantTitle: "User Left!",
		},
		{
			name:      "no kick entries at all",
			entries:   []entities.AuditEntry{},
			wantTitle: "User Left!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			mockRepo := new(testhelpers.MockManagerConfigRepository)
			mockTransport := new(testhelpers.MockChatTransport)

			mockRepo.On("GetOrCreate", ctx, testGuildID).Return(managerConfigWithChannel(), nil)
			mockTransport.On("FetchChannel", ctx, testChannelID).Return(&entities.Channel{ID: testChannelID}, nil)
			mockTransport.On("FetchAuditLog", ctx, testGuildID, entities.AuditMemberKick, 1).Return(tt.entries, nil)
			if tt.wantExecutor {
				mockTransport.On("FetchGuildMember", ctx, testGuildID, int64(77)).
					Return(&entities.MemberProfile{GuildID: testGuildID, UserID: 77, DisplayName: "Moddy"}, nil)
			}

			var sent *entities.Notice
			mockTransport.On("SendNotice", ctx, testChannelID, mock.AnythingOfType("*entities.Notice")).
				Run(func(args mock.Arguments) { sent = args.Get(2).(*entities.Notice) }).
				Return(nil)

			service := NewModerationService(mockRepo, mockTransport)
			err := service.HandleMemberRemove(ctx, entities.NewFullMember(departedProfile()))

			require.NoError(t, err)
			require.NotNil(t, sent)
			assert.Equal(t, tt.wantTitle, sent.Title)
			if tt.wantExecutor {
				assert.Contains(t, sent.Description, "Moddy")
			}
			assert.Equal(t, "Nickname was:", sent.Fields[1].Name)
			assert.Equal(t, "Nick", sent.Fields[1].Value)
		})
	}
}

func TestModerationService_MemberRemove_PartialRefreshFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mockRepo := new(testhelpers.MockManagerConfigRepository)
	mockTransport := new(testhelpers.MockChatTransport)

	mockRepo.On("GetOrCreate", ctx, testGuildID).Return(managerConfigWithChannel(), nil)
	mockTransport.On("FetchChannel", ctx, testChannelID).Return(&entities.Channel{ID: testChannelID}, nil)
	mockTransport.On("FetchGuildMember", ctx, testGuildID, int64(42)).
		Return(nil, errors.New("member already gone"))
	mockTransport.On("FetchAuditLog", ctx, testGuildID, entities.AuditMemberKick, 1).
		Return([]entities.AuditEntry{}, nil)

	var sent *entities.Notice
	mockTransport.On("SendNotice", ctx, testChannelID, mock.AnythingOfType("*entities.Notice")).
		Run(func(args mock.Arguments) { sent = args.Get(2).(*entities.Notice) }).
		Return(nil)

	service := NewModerationService(mockRepo, mockTransport)
	sparse := &entities.MemberProfile{GuildID: testGuildID, UserID: 42, DisplayName: "Sparse"}
	err := service.HandleMemberRemove(ctx, entities.NewPartialMember(testGuildID, 42, sparse))

	// The refresh failed but the notice is still produced from the sparse data.
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, "User Left!", sent.Title)
	assert.Contains(t, sent.Description, "Sparse")
	assert.Equal(t, "None", sent.Fields[1].Value)
}

func TestModerationService_MemberBan_ThreeOutcomes(t *testing.T) {
	t.Parallel()

	type outcome struct {
		notice  *entities.Notice
		message string
	}

	run := func(t *testing.T, entries []entities.AuditEntry, setup func(*testhelpers.MockChatTransport)) outcome {
		ctx := context.Background()
		mockRepo := new(testhelpers.MockManagerConfigRepository)
		mockTransport := new(testhelpers.MockChatTransport)

		mockRepo.On("GetOrCreate", ctx, testGuildID).Return(managerConfigWithChannel(), nil)
		mockTransport.On("FetchChannel", ctx, testChannelID).Return(&entities.Channel{ID: testChannelID}, nil)
		mockTransport.On("FetchAuditLog", ctx, testGuildID, entities.AuditMemberBanAdd, 1).Return(entries, nil)
		if setup != nil {
			setup(mockTransport)
		}

		var out outcome
		mockTransport.On("SendNotice", ctx, testChannelID, mock.AnythingOfType("*entities.Notice")).
			Run(func(args mock.Arguments) { out.notice = args.Get(2).(*entities.Notice) }).
			Return(nil).Maybe()
		mockTransport.On("SendMessage", ctx, testChannelID, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { out.message = args.Get(2).(string) }).
			Return(nil).Maybe()

		service := NewModerationService(mockRepo, mockTransport)
		require.NoError(t, service.HandleMemberBan(ctx, testGuildID, 42, "Banned#0001"))
		return out
	}

	t.Run("full attribution", func(t *testing.T) {
		t.Parallel()
		out := run(t, []entities.AuditEntry{{Action: entities.AuditMemberBanAdd, TargetID: 42, ExecutorID: 77}},
			func(mt *testhelpers.MockChatTransport) {
				mt.On("FetchUser", mock.Anything, int64(42)).Return(&entities.UserRef{ID: 42, Tag: "Banned#0001"}, nil)
				mt.On("FetchGuildMember", mock.Anything, testGuildID, int64(77)).
					Return(&entities.MemberProfile{UserID: 77, DisplayName: "Moddy"}, nil)
			})
		require.NotNil(t, out.notice)
		assert.Contains(t, out.notice.Description, "Banned#0001")
		assert.Contains(t, out.notice.Description, "Moddy")
	})

	t.Run("entry present but unresolvable", func(t *testing.T) {
		t.Parallel()
		out := run(t, []entities.AuditEntry{{Action: entities.AuditMemberBanAdd, TargetID: 0, ExecutorID: 0}}, nil)
		require.NotNil(t, out.notice)
		assert.Contains(t, out.notice.Description, "could not be resolved")
	})

	t.Run("no audit entry at all", func(t *testing.T) {
		t.Parallel()
		out := run(t, []entities.AuditEntry{}, nil)
		assert.Nil(t, out.notice)
		assert.Contains(t, out.message, "no logs about it could be found")
	})
}

func TestModerationService_BanOutcomeTextsDistinct(t *testing.T) {
	t.Parallel()

	// The three ban outcomes signal different degradation states and must
	// never collapse into the same text.
	assert.NotEqual(t, banUnattributedText, banDegradedText)
	assert.False(t, strings.Contains(banDegradedText, banUnattributedText))
}
