// Package worktime reconciles logged work durations against an expected
// weekly schedule over a calendar period, accounting for weekends and
// region-specific public holidays. All computation is pure given its
// inputs; the only I/O is the HolidaySource consulted during adjustment.
package worktime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultRoundStep is the rounding granularity applied to manually entered
// durations unless configured otherwise.
const DefaultRoundStep = 15

var (
	ErrUnparsableDuration  = errors.New("unparsable duration")
	ErrNonPositiveDuration = errors.New("duration must be positive")
)

var (
	clockPattern   = regexp.MustCompile(`^(\d+):(\d{1,2})$`)
	minutesPattern = regexp.MustCompile(`^(\d+)$`)
	suffixPattern  = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?$`)
)

// ParseDuration converts duration text into whole minutes. Accepted forms,
// checked in this order: "H:MM" (1:30), bare minutes (90), and suffix
// notation (1h30m, 2h, 45m). Text matching none of these yields
// ErrUnparsableDuration; a matching but non-positive value yields
// ErrNonPositiveDuration. Zero is never returned silently.
func ParseDuration(raw string) (int, error) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty input", ErrUnparsableDuration)
	}

	minutes, ok := matchDuration(cleaned)
	if !ok {
		return 0, fmt.Errorf("%w: %q (expected e.g. 1:30, 90, 1h30m)", ErrUnparsableDuration, raw)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNonPositiveDuration, raw)
	}
	return minutes, nil
}

func matchDuration(value string) (int, bool) {
	if m := clockPattern.FindStringSubmatch(value); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes, true
	}
	if m := minutesPattern.FindStringSubmatch(value); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		return minutes, true
	}
	if m := suffixPattern.FindStringSubmatch(value); m != nil {
		// The suffix pattern matches the empty string; require at least
		// one of the two components.
		if m[1] == "" && m[2] == "" {
			return 0, false
		}
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes, true
	}
	return 0, false
}

// RoundDuration rounds minutes to the nearest multiple of step; an exact
// tie (remainder equals step/2) rounds up. Rounding an already-rounded
// value is a no-op. A step of zero or less disables rounding.
func RoundDuration(minutes, step int) int {
	if step <= 0 {
		return minutes
	}
	remainder := minutes % step
	if remainder*2 >= step {
		return minutes - remainder + step
	}
	return minutes - remainder
}

// FormatClock renders minutes in the "H:MM" form accepted by ParseDuration.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}
