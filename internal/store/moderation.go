package store

import (
	"errors"

	"clubbot/internal/model"

	"gorm.io/gorm"
)

// AddModerationLog appends an entry to the audit trail. userID may be nil
// for actions without a single target.
func (s *Store) AddModerationLog(guildID int64, userID *int64, moderatorID int64, action string, reason, details *string, timestamp string) (*model.ModerationLog, error) {
	entry := model.ModerationLog{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Action:      action,
		Reason:      reason,
		Details:     details,
		Timestamp:   timestamp,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, storageErr("add moderation log", err)
	}
	return &entry, nil
}

// ModerationLogByID returns the entry, or nil if no row exists.
func (s *Store) ModerationLogByID(id uint) (*model.ModerationLog, error) {
	var entry model.ModerationLog
	err := s.db.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get moderation log", err)
	}
	return &entry, nil
}

// ModerationLogs lists a guild's audit trail, newest first. A limit of
// zero means no limit.
func (s *Store) ModerationLogs(guildID int64, limit int) ([]model.ModerationLog, error) {
	query := s.db.Where("guild_id = ?", guildID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var entries []model.ModerationLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, storageErr("list moderation logs", err)
	}
	return entries, nil
}

// ModerationLogsAfter returns entries with an id greater than afterID in
// id order. Used by the live audit feed.
func (s *Store) ModerationLogsAfter(afterID uint) ([]model.ModerationLog, error) {
	var entries []model.ModerationLog
	err := s.db.
		Where("id > ?", afterID).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, storageErr("list moderation logs after", err)
	}
	return entries, nil
}
