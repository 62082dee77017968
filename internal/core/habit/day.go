// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package habit

import (
	"time"

	"github.com/taibuivan/hearth/internal/platform/apperr"
)

// dateLayouts are the accepted wire formats for the optional date parameter,
// tried in order. Zone-less layouts are interpreted in the server location.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DayInterval buckets an instant into its calendar day in the given location.
//
// It is pure: the input is never mutated and the result is the half-open
// interval [start, end) covering the local day, so 23:59:59.999 falls in the
// same bucket while the next midnight starts a new one.
func DayInterval(instant time.Time, location *time.Location) (start, end time.Time) {
	local := instant.In(location)
	start = time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	return start, start.AddDate(0, 0, 1)
}

// ParseDate resolves the optional caller-supplied date string. An empty value
// means "now" in the server location; anything unparseable is a 400.
func ParseDate(raw string, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Now().In(location), nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, location); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, apperr.ValidationError("Invalid date format")
}
