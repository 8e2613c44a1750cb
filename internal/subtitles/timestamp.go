package subtitles

import (
	"fmt"
	"strconv"
	"strings"
)

// millisFromSeconds truncates a second offset to whole milliseconds.
// Truncation (not rounding) matches the integer floor-division cascade used
// by common subtitle tooling, so formatted output stays interoperable.
// Negative input clamps to zero.
func millisFromSeconds(seconds float64) int64 {
	ms := int64(seconds * 1000.0)
	if ms < 0 {
		return 0
	}
	return ms
}

// FormatTimestamp renders a second offset as an SRT timestamp (HH:MM:SS,mmm).
// Hours are not bounded; values of 100 hours or more render with extra digits
// rather than failing.
func FormatTimestamp(seconds float64) string {
	return FormatMillis(millisFromSeconds(seconds))
}

// FormatMillis renders a millisecond offset as an SRT timestamp.
func FormatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms %= 3_600_000
	minutes := ms / 60_000
	ms %= 60_000
	seconds := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}

// ParseTimestamp parses an HH:MM:SS,mmm timestamp into whole milliseconds.
// The sub-second delimiter may be either a comma or a period; the two styles
// are treated as equivalent on read.
func ParseTimestamp(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.ParseInt(hms[0], 10, 64)
	minutes, errM := strconv.ParseInt(hms[1], 10, 64)
	seconds, errS := strconv.ParseInt(hms[2], 10, 64)
	millis, errMS := strconv.ParseInt(timeParts[1], 10, 64)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return (hours*3600+minutes*60+seconds)*1000 + millis, nil
}

// ParseTimestampSeconds parses a timestamp into float seconds.
func ParseTimestampSeconds(value string) (float64, error) {
	ms, err := ParseTimestamp(value)
	if err != nil {
		return 0, err
	}
	return float64(ms) / 1000, nil
}
