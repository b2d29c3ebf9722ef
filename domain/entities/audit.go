package entities

// AuditAction identifies the moderation action type of an audit trail entry
type AuditAction int

const (
	AuditMemberKick AuditAction = iota
	AuditMemberBanAdd
)

// AuditEntry is an externally-provided record of a moderation action.
// Target or executor may be zero when the platform could not attribute them.
type AuditEntry struct {
	Action     AuditAction
	TargetID   int64
	ExecutorID int64
}

// UserRef is a minimal platform user reference used for ban attribution
type UserRef struct {
	ID        int64
	Tag       string
	AvatarURL string
}

// Channel is a resolved message destination
type Channel struct {
	ID   int64
	Name string
}
