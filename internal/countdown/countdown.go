// Package countdown computes the time remaining until a fixed target instant
// for the overlay shown on top of the video.
package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TargetLayout is the wall-clock layout of a configured target, read in the configured zone
const TargetLayout = "2006-01-02T15:04:05"

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// ErrInvalidOffset is returned when a UTC offset string cannot be parsed
var ErrInvalidOffset = errors.New("invalid utc offset")

// Value is the remaining time broken down for display. All fields are non-negative.
type Value struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// IsZero reports whether the target has been reached
func (v Value) IsZero() bool {
	return v == Value{}
}

// Format renders the value as "<days> <label>, HH:MM:SS"
func (v Value) Format(label string) string {
	return fmt.Sprintf("%d %s, %02d:%02d:%02d", v.Days, label, v.Hours, v.Minutes, v.Seconds)
}

// Tick computes the remaining time from now until target.
// Once the target has passed the value is all zero.
func Tick(now, target time.Time) Value {
	diff := target.Sub(now)
	if diff <= 0 {
		return Value{}
	}

	// Whole seconds only, fractions round down
	remaining := int64(diff / time.Second)

	return Value{
		Days:    remaining / secondsPerDay,
		Hours:   (remaining % secondsPerDay) / secondsPerHour,
		Minutes: (remaining % secondsPerHour) / secondsPerMinute,
		Seconds: remaining % secondsPerMinute,
	}
}

// ParseUTCOffset parses an offset like "-03:00", "+05:30" or "Z" into a fixed zone
func ParseUTCOffset(offset string) (*time.Location, error) {
	offset = strings.TrimSpace(offset)
	if offset == "" || offset == "Z" || strings.EqualFold(offset, "utc") {
		return time.UTC, nil
	}

	sign := 1
	switch offset[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("%w: %q (must start with + or -)", ErrInvalidOffset, offset)
	}

	hh, mm, found := strings.Cut(offset[1:], ":")
	if !found && len(hh) == 4 {
		hh, mm = hh[:2], hh[2:]
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 14 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}
	minutes := 0
	if mm != "" {
		minutes, err = strconv.Atoi(mm)
		if err != nil || minutes < 0 || minutes > 59 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
		}
	}

	return time.FixedZone("UTC"+offset, sign*(hours*secondsPerHour+minutes*secondsPerMinute)), nil
}

// ParseTarget reads a wall-clock target such as "2025-06-05T00:00:00" in the
// zone described by utcOffset. The result does not depend on the host's local zone.
func ParseTarget(target, utcOffset string) (time.Time, error) {
	loc, err := ParseUTCOffset(utcOffset)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.ParseInLocation(TargetLayout, strings.TrimSpace(target), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid countdown target %q: %w", target, err)
	}
	return t, nil
}
