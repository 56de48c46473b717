package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWarnRecordsWarningAndLog(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	warning, err := svc.Warn(100, 42, 9, "spamming")
	require.NoError(t, err)
	require.NotNil(t, warning)
	assert.Equal(t, int64(42), warning.UserID)
	assert.Equal(t, int64(9), warning.ModeratorID)
	assert.Equal(t, "spamming", warning.Reason)

	logs, err := svc.RecentLogs(100, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.Equal(t, ActionWarn, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, int64(42), *entry.UserID)
	require.NotNil(t, entry.Details)
	assert.Equal(t, fmt.Sprintf("warning_id=%d", warning.ID), *entry.Details)
}

func TestWarningsForOrder(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	_, err := svc.Warn(100, 42, 9, "first")
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = svc.Warn(100, 42, 9, "second")
	require.NoError(t, err)

	warnings, err := svc.WarningsFor(100, 42)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Equal(t, "second", warnings[0].Reason)
	assert.Equal(t, "first", warnings[1].Reason)
}

func TestClearWarnings(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	_, err := svc.Warn(100, 42, 9, "first")
	require.NoError(t, err)
	_, err = svc.Warn(100, 42, 9, "second")
	require.NoError(t, err)
	_, err = svc.Warn(100, 77, 9, "unrelated")
	require.NoError(t, err)

	cleared, err := svc.ClearWarnings(100, 42, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), cleared)

	warnings, err := svc.WarningsFor(100, 42)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	other, err := svc.WarningsFor(100, 77)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	logs, err := svc.RecentLogs(100, 0)
	require.NoError(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, ActionClear, logs[0].Action)
	require.NotNil(t, logs[0].Details)
	assert.Equal(t, "cleared=2", *logs[0].Details)
}

func TestClearWarningsNone(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	cleared, err := svc.ClearWarnings(100, 42, 9, nil)
	require.NoError(t, err)
	assert.Zero(t, cleared)
}

func TestLogWithoutTarget(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	details := "amount=10"
	entry, err := svc.Log(100, nil, 9, ActionClear, nil, &details)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Nil(t, entry.UserID)

	fetched, err := svc.LogByID(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, ActionClear, fetched.Action)
}

func TestLogByIDAbsent(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	entry, err := svc.LogByID(999)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestLogsAfter(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	target := int64(42)
	reason := "spam"
	first, err := svc.Log(100, &target, 9, ActionMute, &reason, nil)
	require.NoError(t, err)
	second, err := svc.Log(100, &target, 9, ActionUnmute, nil, nil)
	require.NoError(t, err)
	third, err := svc.Log(100, &target, 9, ActionWarn, &reason, nil)
	require.NoError(t, err)

	entries, err := svc.LogsAfter(first.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, third.ID, entries[1].ID)
}

func TestRecentLogsNegativeLimit(t *testing.T) {
	svc := NewModerationService(newTestStore(t))

	_, err := svc.RecentLogs(100, -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
