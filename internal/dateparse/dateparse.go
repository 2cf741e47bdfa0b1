// Package dateparse parses relative and absolute due-date inputs into a
// calendar date (midnight, local time).
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Parse parses a due-date input string using the current time as the
// reference point.
//
// Supported formats:
//   - Exact dates: "2026-03-01"
//   - Relative days: "+7d"
//   - Relative weeks: "+2w"
//   - Relative months: "+1m"
//   - Day names: "monday", "tuesday", etc. (next occurrence)
//   - Keywords: "today", "tomorrow", "next-week", "next-month"
func Parse(input string) (time.Time, error) {
	return ParseFrom(input, time.Now())
}

// ParseFrom parses a due-date input relative to the given reference time.
// This variant enables deterministic testing with a fixed "now".
func ParseFrom(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	// Exact date: YYYY-MM-DD
	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	// Keywords
	switch input {
	case "today":
		return midnight(now), nil
	case "tomorrow":
		return midnight(now.AddDate(0, 0, 1)), nil
	case "next-week":
		// Next Monday
		daysUntilMonday := (int(time.Monday) - int(now.Weekday()) + 7) % 7
		if daysUntilMonday == 0 {
			daysUntilMonday = 7
		}
		return midnight(now.AddDate(0, 0, daysUntilMonday)), nil
	case "next-month":
		// 1st of next month
		year, month, _ := now.Date()
		return time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location()), nil
	}

	// Relative offsets: +Nd, +Nw, +Nm
	if strings.HasPrefix(input, "+") && len(input) >= 3 {
		suffix := input[len(input)-1]
		numStr := input[1 : len(input)-1]
		n, err := strconv.Atoi(numStr)
		if err == nil && n >= 0 {
			switch suffix {
			case 'd':
				return midnight(now.AddDate(0, 0, n)), nil
			case 'w':
				return midnight(now.AddDate(0, 0, n*7)), nil
			case 'm':
				return midnight(now.AddDate(0, n, 0)), nil
			default:
				return time.Time{}, fmt.Errorf("unknown relative unit %q in %q (use d, w, or m)", string(suffix), input)
			}
		}
	}

	// Day names: next occurrence of that weekday
	dayMap := map[string]time.Weekday{
		"sunday":    time.Sunday,
		"monday":    time.Monday,
		"tuesday":   time.Tuesday,
		"wednesday": time.Wednesday,
		"thursday":  time.Thursday,
		"friday":    time.Friday,
		"saturday":  time.Saturday,
	}
	if target, ok := dayMap[input]; ok {
		daysAhead := (int(target) - int(now.Weekday()) + 7) % 7
		if daysAhead == 0 {
			daysAhead = 7 // always advance to next occurrence
		}
		return midnight(now.AddDate(0, 0, daysAhead)), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", input)
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
