package store

import "clubbot/internal/model"

// AddWarning inserts a new warning for a member.
func (s *Store) AddWarning(guildID, userID, moderatorID int64, reason, timestamp string) (*model.Warning, error) {
	warning := model.Warning{
		GuildID:     guildID,
		UserID:      userID,
		ModeratorID: moderatorID,
		Reason:      reason,
		Timestamp:   timestamp,
	}
	if err := s.db.Create(&warning).Error; err != nil {
		return nil, storageErr("add warning", err)
	}
	return &warning, nil
}

// ClearWarnings deletes all of a member's warnings in a guild and
// reports how many were removed.
func (s *Store) ClearWarnings(guildID, userID int64) (int64, error) {
	result := s.db.
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Delete(&model.Warning{})
	if result.Error != nil {
		return 0, storageErr("clear warnings", result.Error)
	}
	return result.RowsAffected, nil
}

// WarningsForUser lists a member's warnings in a guild, newest first.
func (s *Store) WarningsForUser(guildID, userID int64) ([]model.Warning, error) {
	var warnings []model.Warning
	err := s.db.
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Order("timestamp DESC").
		Find(&warnings).Error
	if err != nil {
		return nil, storageErr("list warnings", err)
	}
	return warnings, nil
}
