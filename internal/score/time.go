// internal/score/time.go
package score

import (
	"fmt"
	"time"
)

// Accepted timestamp layouts, tried in order. Layouts without an offset
// parse as UTC, which is the documented contract for naive timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseTime parses a wire timestamp and normalizes it to UTC.
func ParseTime(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", value)
}
