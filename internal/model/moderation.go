package model

// ModerationLog is one entry in the append-only audit trail of staff
// actions. UserID is nil for actions without a single target, e.g. a bulk
// message clear.
type ModerationLog struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	GuildID     int64   `gorm:"not null;index" json:"guild_id"`
	UserID      *int64  `json:"user_id"`
	ModeratorID int64   `gorm:"not null" json:"moderator_id"`
	Action      string  `gorm:"not null" json:"action"`
	Reason      *string `json:"reason"`
	Details     *string `json:"details"`
	Timestamp   string  `gorm:"not null" json:"timestamp"`
}
