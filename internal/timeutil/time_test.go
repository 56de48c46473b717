package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowISOFixedWidth(t *testing.T) {
	a := NowISO()
	time.Sleep(time.Millisecond)
	b := NowISO()

	require.Len(t, a, len(b))
	// Lexicographic order must match chronological order.
	assert.Less(t, a, b)

	parsed, err := time.Parse(time.RFC3339Nano, a)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestFormatDisplay(t *testing.T) {
	assert.Equal(t, "2025-01-01 12:34 UTC", FormatDisplay("2025-01-01T12:34:56.000000000Z"))
	// Unparseable input passes through untouched.
	assert.Equal(t, "not a timestamp", FormatDisplay("not a timestamp"))
}
