package service

import (
	"fmt"

	"clubbot/internal/model"
	"clubbot/internal/store"
	"clubbot/internal/timeutil"
)

const (
	ActionMute   = "mute"
	ActionUnmute = "unmute"
	ActionWarn   = "warn"
	ActionClear  = "clear"
)

// ModerationService records warnings and the append-only audit trail.
type ModerationService struct {
	store *store.Store
}

func NewModerationService(s *store.Store) *ModerationService {
	return &ModerationService{store: s}
}

// Warn records a warning plus an audit entry referencing it.
func (s *ModerationService) Warn(guildID, userID, moderatorID int64, reason string) (*model.Warning, error) {
	warning, err := s.store.AddWarning(guildID, userID, moderatorID, reason, timeutil.NowISO())
	if err != nil {
		return nil, err
	}

	details := fmt.Sprintf("warning_id=%d", warning.ID)
	_, err = s.store.AddModerationLog(guildID, &userID, moderatorID, ActionWarn, &reason, &details, timeutil.NowISO())
	if err != nil {
		return nil, err
	}
	return warning, nil
}

// ClearWarnings removes all of a member's warnings and records the
// clearance in the audit trail. Returns the number of warnings removed.
func (s *ModerationService) ClearWarnings(guildID, userID, moderatorID int64, reason *string) (int64, error) {
	cleared, err := s.store.ClearWarnings(guildID, userID)
	if err != nil {
		return 0, err
	}

	details := fmt.Sprintf("cleared=%d", cleared)
	_, err = s.store.AddModerationLog(guildID, &userID, moderatorID, ActionClear, reason, &details, timeutil.NowISO())
	if err != nil {
		return cleared, err
	}
	return cleared, nil
}

// WarningsFor lists a member's warnings in a guild, newest first.
func (s *ModerationService) WarningsFor(guildID, userID int64) ([]model.Warning, error) {
	return s.store.WarningsForUser(guildID, userID)
}

// Log appends an entry to the audit trail. userID may be nil for actions
// without a single target.
func (s *ModerationService) Log(guildID int64, userID *int64, moderatorID int64, action string, reason, details *string) (*model.ModerationLog, error) {
	return s.store.AddModerationLog(guildID, userID, moderatorID, action, reason, details, timeutil.NowISO())
}

// LogByID returns an audit entry, or nil if it does not exist.
func (s *ModerationService) LogByID(id uint) (*model.ModerationLog, error) {
	return s.store.ModerationLogByID(id)
}

// RecentLogs lists a guild's audit trail, newest first. A limit of zero
// means no limit.
func (s *ModerationService) RecentLogs(guildID int64, limit int) ([]model.ModerationLog, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	return s.store.ModerationLogs(guildID, limit)
}

// LogsAfter returns audit entries past the given id, in id order.
func (s *ModerationService) LogsAfter(afterID uint) ([]model.ModerationLog, error) {
	return s.store.ModerationLogsAfter(afterID)
}
