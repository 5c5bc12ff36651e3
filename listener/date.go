package listener

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the layout of every date held in a person's tenure summaries.
const DateFormat = "2006-01-02T15:04:05.0000000Z"

var (
	MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, time.December, 31, 23, 59, 59, 999999900, time.UTC)
)

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := FormatDate(*t)
	return &formatted
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}

var upstreamLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseUpstreamTime accepts the date forms produced by the tenure and account services. Values without a
// zone are taken as UTC.
func ParseUpstreamTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range upstreamLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
