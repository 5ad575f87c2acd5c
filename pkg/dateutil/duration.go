package dateutil

import (
	"fmt"
	"strconv"
	"time"
)

var unitDurations = map[byte]time.Duration{
	's': time.Second,
	'm': time.Minute,
	'h': time.Hour,
	'd': 24 * time.Hour,
	'w': 7 * 24 * time.Hour,
}

// ParseDuration parses a human duration of the form <number><unit>, where
// unit is one of s, m, h, d, w. For example "30m", "1h", "2d", "1w". The
// result is always positive.
func ParseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	unit, ok := unitDurations[s[len(s)-1]]
	if !ok {
		return 0, fmt.Errorf("invalid duration unit %q, use s, m, h, d, or w", s[len(s)-1:])
	}

	amount, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid duration amount %q", s[:len(s)-1])
	}

	if amount <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}

	return time.Duration(amount) * unit, nil
}
