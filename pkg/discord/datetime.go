package discord

import (
	"strconv"
	"time"
)

const displayLayout = "Mon 02 Jan 2006, 15:04"

// FormatEventDateTime renders t in loc for announcements. The zero time
// renders as "".
func FormatEventDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(displayLayout)
}

// UnixTimestamp renders t as a Discord timestamp tag, shown to each reader
// in their own timezone.
func UnixTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return "<t:" + strconv.FormatInt(t.Unix(), 10) + ":F>"
}
