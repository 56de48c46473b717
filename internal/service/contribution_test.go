package service

import (
	"path/filepath"
	"testing"
	"time"

	"clubbot/internal/model"
	"clubbot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func TestSubmitContribution(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	contribution, err := svc.Submit(42, "alice", "Fixed login bug", nil)
	require.NoError(t, err)
	require.NotNil(t, contribution)

	assert.NotZero(t, contribution.ID)
	assert.Equal(t, model.StatusPending, contribution.Status)
	assert.False(t, contribution.Approved)
	assert.Nil(t, contribution.ReviewedBy)
	assert.Nil(t, contribution.ReviewedAt)
	assert.NotEmpty(t, contribution.Timestamp)
}

func TestApproveContribution(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	submitted, err := svc.Submit(42, "alice", "Fixed login bug", nil)
	require.NoError(t, err)

	approved, err := svc.Approve(submitted.ID, 999)
	require.NoError(t, err)
	require.NotNil(t, approved)

	assert.Equal(t, model.StatusApproved, approved.Status)
	assert.True(t, approved.Approved)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, int64(999), *approved.ReviewedBy)
	assert.NotNil(t, approved.ReviewedAt)
}

func TestRejectContribution(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	submitted, err := svc.Submit(42, "alice", "half-finished work", strPtr("https://example.com"))
	require.NoError(t, err)

	rejected, err := svc.Reject(submitted.ID, 999)
	require.NoError(t, err)
	require.NotNil(t, rejected)

	assert.Equal(t, model.StatusRejected, rejected.Status)
	assert.False(t, rejected.Approved)
	require.NotNil(t, rejected.ReviewedBy)
	assert.Equal(t, int64(999), *rejected.ReviewedBy)
}

func TestReviewAbsentContribution(t *testing.T) {
	st := newTestStore(t)
	svc := NewContributionService(st)

	approved, err := svc.Approve(12345, 999)
	require.NoError(t, err)
	assert.Nil(t, approved)

	rejected, err := svc.Reject(12345, 999)
	require.NoError(t, err)
	assert.Nil(t, rejected)

	all, err := svc.AllContributions(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUserContributionsLimit(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	for i := 0; i < 4; i++ {
		_, err := svc.Submit(7, "bob", "work", nil)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := svc.Submit(8, "carol", "other", nil)
	require.NoError(t, err)

	contributions, err := svc.UserContributions(7, 3)
	require.NoError(t, err)
	require.Len(t, contributions, 3)
	for _, contribution := range contributions {
		assert.Equal(t, int64(7), contribution.UserID)
	}
	for i := 1; i < len(contributions); i++ {
		assert.GreaterOrEqual(t, contributions[i-1].Timestamp, contributions[i].Timestamp)
	}
}

func TestUserContributionsNegativeLimit(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	_, err := svc.UserContributions(7, -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestLatestContributionsDefaultLimit(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	for i := 0; i < 12; i++ {
		_, err := svc.Submit(int64(i), "user", "work", nil)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	latest, err := svc.LatestContributions(0)
	require.NoError(t, err)
	assert.Len(t, latest, 10)

	_, err = svc.LatestContributions(-5)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestLatestContributionsFewerThanLimit(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(int64(i), "user", "work", nil)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	latest, err := svc.LatestContributions(5)
	require.NoError(t, err)
	require.Len(t, latest, 3)
	for i := 1; i < len(latest); i++ {
		assert.GreaterOrEqual(t, latest[i-1].Timestamp, latest[i].Timestamp)
	}
}

func TestPendingContributionsExcludesReviewed(t *testing.T) {
	svc := NewContributionService(newTestStore(t))

	first, err := svc.Submit(1, "a", "one", nil)
	require.NoError(t, err)
	_, err = svc.Submit(2, "b", "two", nil)
	require.NoError(t, err)

	_, err = svc.Approve(first.ID, 9)
	require.NoError(t, err)

	pending, err := svc.PendingContributions()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].UserID)
}
