package util

import (
	"fmt"
	"time"
)

// date layouts accepted from clients
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a request date and truncates it to the calendar day
// (midnight UTC). Goal and money-log upserts key on date equality, so all
// stored dates must share the same granularity.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format: %q", s)
}
