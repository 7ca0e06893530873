package utils

import (
	"strings"
	"time"
)

const layoutDate = "2006-01-02"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDate formats an ISO-8601 timestamp as YYYY-MM-DD; unparsable input is
// returned trimmed.
func FormatDate(ts string) string {
	ts = strings.TrimSpace(ts)
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format(layoutDate)
}
