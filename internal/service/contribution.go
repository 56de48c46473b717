package service

import (
	"errors"

	"clubbot/internal/model"
	"clubbot/internal/store"
	"clubbot/internal/timeutil"
)

// ErrInvalidLimit is returned for a negative listing limit.
var ErrInvalidLimit = errors.New("limit must not be negative")

const defaultLatestLimit = 10

// ContributionService wraps the store with timestamp injection and the
// approve/reject status pairing. It holds no state of its own.
type ContributionService struct {
	store *store.Store
}

func NewContributionService(s *store.Store) *ContributionService {
	return &ContributionService{store: s}
}

// Submit records a new contribution in the pending state.
func (s *ContributionService) Submit(userID int64, username, description string, links *string) (*model.Contribution, error) {
	return s.store.CreateContribution(userID, username, description, links, timeutil.NowISO())
}

// ContributionByID returns a contribution, or nil if it does not exist.
func (s *ContributionService) ContributionByID(id uint) (*model.Contribution, error) {
	return s.store.ContributionByID(id)
}

// UserContributions lists a member's contributions, newest first. A limit
// of zero means no limit.
func (s *ContributionService) UserContributions(userID int64, limit int) ([]model.Contribution, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	return s.store.ContributionsByUser(userID, limit)
}

// AllContributions lists every contribution, newest first. A limit of
// zero means no limit.
func (s *ContributionService) AllContributions(limit int) ([]model.Contribution, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	return s.store.AllContributions(limit)
}

// LatestContributions lists the newest contributions. A limit of zero
// falls back to the default of 10.
func (s *ContributionService) LatestContributions(limit int) ([]model.Contribution, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultLatestLimit
	}
	return s.store.AllContributions(limit)
}

// PendingContributions lists contributions awaiting review.
func (s *ContributionService) PendingContributions() ([]model.Contribution, error) {
	return s.store.PendingContributions()
}

// Approve marks a contribution approved. Returns nil if it does not
// exist.
func (s *ContributionService) Approve(id uint, reviewerID int64) (*model.Contribution, error) {
	return s.store.UpdateContributionStatus(id, model.StatusApproved, true, reviewerID, timeutil.NowISO())
}

// Reject marks a contribution rejected. Returns nil if it does not exist.
func (s *ContributionService) Reject(id uint, reviewerID int64) (*model.Contribution, error) {
	return s.store.UpdateContributionStatus(id, model.StatusRejected, false, reviewerID, timeutil.NowISO())
}
