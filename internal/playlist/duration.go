package playlist

import (
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
)

// ParseDuration converts an "hh:mm:ss", "mm:ss" or "ss" token into whole seconds.
// It never fails: absent or non-numeric segments contribute 0, and segments
// beyond hours are ignored.
func ParseDuration(token string) int64 {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0
	}

	parts := strings.Split(token, ":")

	// Walk from the rightmost segment: seconds, minutes, hours
	multipliers := []int64{1, secondsPerMinute, secondsPerHour}
	var total int64
	for i, mult := range multipliers {
		idx := len(parts) - 1 - i
		if idx < 0 {
			break
		}
		total += segmentValue(parts[idx]) * mult
	}

	return total
}

// segmentValue parses one duration segment, treating anything unparsable or negative as 0
func segmentValue(s string) int64 {
	val, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || val < 0 {
		return 0
	}
	return val
}
