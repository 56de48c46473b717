package timeutil

import "time"

// Layout is the storage format for all timestamps. Fixed-width fractional
// seconds keep lexicographic order identical to chronological order, which
// the "latest N" queries rely on.
const Layout = "2006-01-02T15:04:05.000000000Z07:00"

// NowISO returns the current UTC time in the storage format.
func NowISO() string {
	return time.Now().UTC().Format(Layout)
}

// FormatDisplay formats a stored timestamp into a human-friendly form,
// e.g. "2025-01-01 12:34 UTC". Unparseable input is returned unchanged.
func FormatDisplay(iso string) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return iso
	}
	return t.UTC().Format("2006-01-02 15:04 UTC")
}
