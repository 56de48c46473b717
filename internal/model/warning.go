package model

// Warning is a moderation warning issued to a member. Rows are immutable
// once created.
type Warning struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	GuildID     int64  `gorm:"not null;index" json:"guild_id"`
	UserID      int64  `gorm:"not null;index" json:"user_id"`
	ModeratorID int64  `gorm:"not null" json:"moderator_id"`
	Reason      string `gorm:"not null" json:"reason"`
	Timestamp   string `gorm:"not null" json:"timestamp"`
}
