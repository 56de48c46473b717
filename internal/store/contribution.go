package store

import (
	"errors"

	"clubbot/internal/model"

	"gorm.io/gorm"
)

// CreateContribution inserts a new contribution in the pending state.
func (s *Store) CreateContribution(userID int64, username, description string, links *string, timestamp string) (*model.Contribution, error) {
	contribution := model.Contribution{
		UserID:      userID,
		Username:    username,
		Description: description,
		Links:       links,
		Timestamp:   timestamp,
		Approved:    false,
		Status:      model.StatusPending,
	}
	if err := s.db.Create(&contribution).Error; err != nil {
		return nil, storageErr("create contribution", err)
	}
	return &contribution, nil
}

// ContributionByID returns the contribution, or nil if no row exists.
func (s *Store) ContributionByID(id uint) (*model.Contribution, error) {
	var contribution model.Contribution
	err := s.db.First(&contribution, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get contribution", err)
	}
	return &contribution, nil
}

// ContributionsByUser lists a member's contributions, newest first. A
// limit of zero means no limit.
func (s *Store) ContributionsByUser(userID int64, limit int) ([]model.Contribution, error) {
	query := s.db.Where("user_id = ?", userID).Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var contributions []model.Contribution
	if err := query.Find(&contributions).Error; err != nil {
		return nil, storageErr("list contributions by user", err)
	}
	return contributions, nil
}

// AllContributions lists every contribution, newest first. A limit of
// zero means no limit.
func (s *Store) AllContributions(limit int) ([]model.Contribution, error) {
	query := s.db.Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var contributions []model.Contribution
	if err := query.Find(&contributions).Error; err != nil {
		return nil, storageErr("list contributions", err)
	}
	return contributions, nil
}

// PendingContributions lists contributions still awaiting review, newest
// first.
func (s *Store) PendingContributions() ([]model.Contribution, error) {
	var contributions []model.Contribution
	err := s.db.
		Where("status = ?", model.StatusPending).
		Order("timestamp DESC").
		Find(&contributions).Error
	if err != nil {
		return nil, storageErr("list pending contributions", err)
	}
	return contributions, nil
}

// UpdateContributionStatus sets all four review fields in a single
// statement. Returns nil if the contribution does not exist.
func (s *Store) UpdateContributionStatus(id uint, status string, approved bool, reviewerID int64, reviewedAt string) (*model.Contribution, error) {
	result := s.db.Model(&model.Contribution{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"approved":    approved,
		"reviewed_by": reviewerID,
		"reviewed_at": reviewedAt,
	})
	if result.Error != nil {
		return nil, storageErr("update contribution status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return s.ContributionByID(id)
}
