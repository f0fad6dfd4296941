package task

import (
	"strings"
	"time"
)

// Date layouts. Times are wall-clock values; no zone is recorded, so every
// timestamp is parsed and kept in UTC.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
	DisplayLayout  = "Jan 02 2006 15:04"
)

// ParseDate parses yyyy-MM-dd (midnight) or yyyy-MM-dd HH:mm.
func ParseDate(text string) (time.Time, error) {
	s := strings.Join(strings.Fields(text), " ")
	layout := DateLayout
	if strings.Contains(s, " ") {
		layout = DateTimeLayout
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, &DateError{Input: strings.TrimSpace(text), Err: err}
	}
	return t, nil
}

// FormatDisplay renders t as "Aug 30 2024 00:00".
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// FormatSave renders t as "2024-08-30 00:00".
func FormatSave(t time.Time) string {
	return t.Format(DateTimeLayout)
}
