package entities

import (
	"context"
	"time"
)

// MemberProfile is the resolved view of a guild member as needed for
// moderation notices.
type MemberProfile struct {
	GuildID     int64
	UserID      int64
	DisplayName string
	Nickname    string
	JoinedAt    time.Time
	RoleIDs     []int64
	AvatarURL   string
}

// MemberFetchFunc resolves a member's full profile from the transport.
type MemberFetchFunc func(ctx context.Context, guildID, userID int64) (*MemberProfile, error)

// MemberRef is either a partial reference (ids only, possibly stale fields)
// or a fully materialized member. The transport delivers partial objects on
// some gateway events; callers must go through Materialize before reading
// profile fields.
type MemberRef struct {
	guildID int64
	userID  int64
	profile *MemberProfile
	partial bool
}

// NewPartialMember creates a reference that must be materialized before use.
// The sparse profile may carry whatever fields the gateway event included.
func NewPartialMember(guildID, userID int64, sparse *MemberProfile) MemberRef {
	return MemberRef{guildID: guildID, userID: userID, profile: sparse, partial: true}
}

// NewFullMember wraps an already-resolved profile
func NewFullMember(profile *MemberProfile) MemberRef {
	return MemberRef{guildID: profile.GuildID, userID: profile.UserID, profile: profile, partial: false}
}

// GuildID returns the guild the member belongs to
func (r MemberRef) GuildID() int64 { return r.guildID }

// UserID returns the member's user id
func (r MemberRef) UserID() int64 { return r.userID }

// IsPartial reports whether the reference still needs a transport refresh
func (r MemberRef) IsPartial() bool { return r.partial }

// Materialize returns the full profile, refreshing a partial reference via
// fetch. When the refresh fails, the sparse profile held by the reference is
// returned alongside the error so callers can proceed with available data.
func (r MemberRef) Materialize(ctx context.Context, fetch MemberFetchFunc) (*MemberProfile, error) {
	if !r.partial {
		return r.profile, nil
	}
	profile, err := fetch(ctx, r.guildID, r.userID)
	if err != nil || profile == nil {
		return r.sparseProfile(), err
	}
	return profile, nil
}

func (r MemberRef) sparseProfile() *MemberProfile {
	if r.profile != nil {
		return r.profile
	}
	return &MemberProfile{GuildID: r.guildID, UserID: r.userID}
}
