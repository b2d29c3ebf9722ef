package testhelpers

import (
	"context"

	"fcbot/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockBuffConfigRepository is a mock implementation of BuffConfigRepository
type MockBuffConfigRepository struct {
	mock.Mock
}

func (m *MockBuffConfigRepository) Get(ctx context.Context, guildID int64) (*entities.BuffConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BuffConfig), args.Error(1)
}

func (m *MockBuffConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.BuffConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BuffConfig), args.Error(1)
}

func (m *MockBuffConfigRepository) Save(ctx context.Context, config *entities.BuffConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

func (m *MockBuffConfigRepository) FindAll(ctx context.Context) ([]*entities.BuffConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BuffConfig), args.Error(1)
}

// MockManagerConfigRepository is a mock implementation of ManagerConfigRepository
type MockManagerConfigRepository struct {
	mock.Mock
}

func (m *MockManagerConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*entities.ManagerConfig, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ManagerConfig), args.Error(1)
}

func (m *MockManagerConfigRepository) Save(ctx context.Context, config *entities.ManagerConfig) error {
	args := m.Called(ctx, config)
	return args.Error(0)
}

// MockModerationService is a mock implementation of ModerationService
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) HandleMemberRemove(ctx context.Context, member entities.MemberRef) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockModerationService) HandleMemberBan(ctx context.Context, guildID, userID int64, userTag string) error {
	args := m.Called(ctx, guildID, userID, userTag)
	return args.Error(0)
}

// MockChatTransport is a mock implementation of ChatTransport
type MockChatTransport struct {
	mock.Mock
}

func (m *MockChatTransport) FetchChannel(ctx context.Context, channelID int64) (*entities.Channel, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Channel), args.Error(1)
}

func (m *MockChatTransport) FetchGuildMember(ctx context.Context, guildID, userID int64) (*entities.MemberProfile, error) {
	args := m.Called(ctx, guildID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MemberProfile), args.Error(1)
}

func (m *MockChatTransport) FetchUser(ctx context.Context, userID int64) (*entities.UserRef, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserRef), args.Error(1)
}

func (m *MockChatTransport) FetchAuditLog(ctx context.Context, guildID int64, action entities.AuditAction, limit int) ([]entities.AuditEntry, error) {
	args := m.Called(ctx, guildID, action, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.AuditEntry), args.Error(1)
}

func (m *MockChatTransport) SendMessage(ctx context.Context, channelID int64, content string) error {
	args := m.Called(ctx, channelID, content)
	return args.Error(0)
}

func (m *MockChatTransport) SendNotice(ctx context.Context, channelID int64, notice *entities.Notice) error {
	args := m.Called(ctx, channelID, notice)
	return args.Error(0)
}

func (m *MockChatTransport) GuildIDs() []int64 {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]int64)
}
