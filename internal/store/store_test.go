package store

import (
	"path/filepath"
	"testing"
	"time"

	"clubbot/internal/model"
	"clubbot/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return s
}

func strPtr(s string) *string { return &s }

func TestCreateContributionDefaults(t *testing.T) {
	s := newTestStore(t)

	contribution, err := s.CreateContribution(42, "alice", "Fixed login bug", nil, timeutil.NowISO())
	require.NoError(t, err)
	require.NotNil(t, contribution)

	assert.NotZero(t, contribution.ID)
	assert.Equal(t, model.StatusPending, contribution.Status)
	assert.False(t, contribution.Approved)
	assert.Nil(t, contribution.ReviewedBy)
	assert.Nil(t, contribution.ReviewedAt)
}

func TestContributionByIDAbsent(t *testing.T) {
	s := newTestStore(t)

	contribution, err := s.ContributionByID(12345)
	require.NoError(t, err)
	assert.Nil(t, contribution)
}

func TestUpdateContributionStatus(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateContribution(42, "alice", "wrote docs", nil, timeutil.NowISO())
	require.NoError(t, err)

	updated, err := s.UpdateContributionStatus(created.ID, model.StatusApproved, true, 999, timeutil.NowISO())
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, model.StatusApproved, updated.Status)
	assert.True(t, updated.Approved)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, int64(999), *updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
}

func TestUpdateContributionStatusAbsent(t *testing.T) {
	s := newTestStore(t)

	updated, err := s.UpdateContributionStatus(9999, model.StatusApproved, true, 1, timeutil.NowISO())
	require.NoError(t, err)
	assert.Nil(t, updated)

	// Storage must be untouched.
	all, err := s.AllContributions(0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestContributionsByUserOrderAndLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.CreateContribution(7, "bob", "work", nil, timeutil.NowISO())
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := s.CreateContribution(8, "carol", "other", nil, timeutil.NowISO())
	require.NoError(t, err)

	contributions, err := s.ContributionsByUser(7, 2)
	require.NoError(t, err)
	require.Len(t, contributions, 2)
	for _, contribution := range contributions {
		assert.Equal(t, int64(7), contribution.UserID)
	}
	assert.GreaterOrEqual(t, contributions[0].Timestamp, contributions[1].Timestamp)
}

func TestPendingContributions(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateContribution(1, "a", "one", nil, timeutil.NowISO())
	require.NoError(t, err)
	_, err = s.CreateContribution(2, "b", "two", nil, timeutil.NowISO())
	require.NoError(t, err)

	_, err = s.UpdateContributionStatus(first.ID, model.StatusRejected, false, 9, timeutil.NowISO())
	require.NoError(t, err)

	pending, err := s.PendingContributions()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(2), pending[0].UserID)
}

func TestWarningsForUserOrder(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddWarning(100, 42, 9, "first", timeutil.NowISO())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = s.AddWarning(100, 42, 9, "second", timeutil.NowISO())
	require.NoError(t, err)
	_, err = s.AddWarning(200, 42, 9, "other guild", timeutil.NowISO())
	require.NoError(t, err)

	warnings, err := s.WarningsForUser(100, 42)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, "second", warnings[0].Reason)
	assert.Equal(t, "first", warnings[1].Reason)
}

func TestModerationLogNullableTarget(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.AddModerationLog(100, nil, 9, "clear", nil, strPtr("amount=10"), timeutil.NowISO())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Nil(t, entry.UserID)

	fetched, err := s.ModerationLogByID(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Nil(t, fetched.UserID)
	require.NotNil(t, fetched.Details)
	assert.Equal(t, "amount=10", *fetched.Details)
}

func TestModerationLogsAfter(t *testing.T) {
	s := newTestStore(t)

	target := int64(42)
	first, err := s.AddModerationLog(100, &target, 9, "warn", strPtr("spam"), nil, timeutil.NowISO())
	require.NoError(t, err)
	second, err := s.AddModerationLog(100, &target, 9, "mute", nil, nil, timeutil.NowISO())
	require.NoError(t, err)

	entries, err := s.ModerationLogsAfter(first.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second.ID, entries[0].ID)
}

func TestCreateClubRoleDuplicateName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateClubRole("Mentor", nil)
	require.NoError(t, err)

	_, err = s.CreateClubRole("Mentor", strPtr("second attempt"))
	assert.ErrorIs(t, err, ErrDuplicateName)

	roles, err := s.AllClubRoles()
	require.NoError(t, err)
	assert.Len(t, roles, 1)
}

func TestAllClubRolesOrderedByName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Zeta", "Alpha", "Mentor"} {
		_, err := s.CreateClubRole(name, nil)
		require.NoError(t, err)
	}

	roles, err := s.AllClubRoles()
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, "Alpha", roles[0].Name)
	assert.Equal(t, "Mentor", roles[1].Name)
	assert.Equal(t, "Zeta", roles[2].Name)
}

func TestAssignRoleDuplicate(t *testing.T) {
	s := newTestStore(t)

	role, err := s.CreateClubRole("Mentor", nil)
	require.NoError(t, err)

	_, err = s.AssignRole(42, role.ID, 1, timeutil.NowISO())
	require.NoError(t, err)

	_, err = s.AssignRole(42, role.ID, 1, timeutil.NowISO())
	assert.ErrorIs(t, err, ErrAlreadyAssigned)
}

func TestRemoveRole(t *testing.T) {
	s := newTestStore(t)

	role, err := s.CreateClubRole("Mentor", nil)
	require.NoError(t, err)
	_, err = s.AssignRole(42, role.ID, 1, timeutil.NowISO())
	require.NoError(t, err)

	removed, err := s.RemoveRole(42, role.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.RemoveRole(42, role.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeleteClubRoleCascades(t *testing.T) {
	s := newTestStore(t)

	role, err := s.CreateClubRole("Mentor", nil)
	require.NoError(t, err)
	other, err := s.CreateClubRole("Speaker", nil)
	require.NoError(t, err)

	for _, userID := range []int64{1, 2, 3} {
		_, err = s.AssignRole(userID, role.ID, 9, timeutil.NowISO())
		require.NoError(t, err)
	}
	_, err = s.AssignRole(1, other.ID, 9, timeutil.NowISO())
	require.NoError(t, err)

	deleted, err := s.DeleteClubRole(role.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	for _, userID := range []int64{1, 2, 3} {
		roles, err := s.RolesForMember(userID)
		require.NoError(t, err)
		for _, r := range roles {
			assert.NotEqual(t, role.ID, r.ID)
		}
	}

	// The unrelated assignment survives.
	roles, err := s.RolesForMember(1)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Speaker", roles[0].Name)
}

func TestDeleteClubRoleAbsent(t *testing.T) {
	s := newTestStore(t)

	deleted, err := s.DeleteClubRole(999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMembersWithRoleAssignmentOrder(t *testing.T) {
	s := newTestStore(t)

	role, err := s.CreateClubRole("Mentor", nil)
	require.NoError(t, err)

	for _, userID := range []int64{30, 10, 20} {
		_, err = s.AssignRole(userID, role.ID, 9, timeutil.NowISO())
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	members, err := s.MembersWithRole(role.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{30, 10, 20}, members)
}

func TestRolesForMemberOrderedByName(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"Zeta", "Alpha"} {
		role, err := s.CreateClubRole(name, nil)
		require.NoError(t, err)
		_, err = s.AssignRole(42, role.ID, 9, timeutil.NowISO())
		require.NoError(t, err)
	}

	roles, err := s.RolesForMember(42)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, "Alpha", roles[0].Name)
	assert.Equal(t, "Zeta", roles[1].Name)
}

func TestCreateAccountHashesPassword(t *testing.T) {
	s := newTestStore(t)

	account := model.Account{Username: "admin", Password: "admin123", Role: model.AccountRoleHR}
	require.NoError(t, s.CreateAccount(&account))

	fetched, err := s.AccountByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.NotEqual(t, "admin123", fetched.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fetched.Password), []byte("admin123")))
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.CreateAccount(&model.Account{Username: "admin", Password: "x", Role: model.AccountRoleHR}))
	err := s.CreateAccount(&model.Account{Username: "admin", Password: "y", Role: model.AccountRoleStaff})
	assert.ErrorIs(t, err, ErrDuplicateName)
}
