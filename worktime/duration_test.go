package worktime

import (
	"errors"
	"testing"
)

func TestParseDuration_AcceptedGrammars(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  int
	}{
		{"1:30", 90},
		{"0:45", 45},
		{"10:05", 605},
		{"90", 90},
		{"1", 1},
		{"1h30m", 90},
		{"2h", 120},
		{"45m", 45},
		{" 1:30 ", 90},
		{"1H30M", 90},
	}

	for _, tc := range cases {
		got, err := ParseDuration(tc.input)
		if err != nil {
			t.Fatalf("ParseDuration(%q): unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParseDuration(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
}

func TestParseDuration_EquivalentForms(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"1:30", "90", "1h30m"} {
		got, err := ParseDuration(input)
		if err != nil {
			t.Fatalf("ParseDuration(%q): %v", input, err)
		}
		if got != 90 {
			t.Fatalf("ParseDuration(%q) = %d, want 90", input, got)
		}
	}
}

func TestParseDuration_RejectsUnparsableText(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"abc", "", "1:2:3", "h30m", "1h30", "-30", "12x"} {
		_, err := ParseDuration(input)
		if !errors.Is(err, ErrUnparsableDuration) {
			t.Fatalf("ParseDuration(%q): expected ErrUnparsableDuration, got %v", input, err)
		}
	}
}

func TestParseDuration_RejectsNonPositiveValues(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0", "0:00", "0h", "0m", "0h0m"} {
		_, err := ParseDuration(input)
		if !errors.Is(err, ErrNonPositiveDuration) {
			t.Fatalf("ParseDuration(%q): expected ErrNonPositiveDuration, got %v", input, err)
		}
	}
}

func TestParseDuration_RoundTripsThroughFormatClock(t *testing.T) {
	t.Parallel()

	for _, minutes := range []int{1, 45, 60, 90, 605, 1440} {
		parsed, err := ParseDuration(FormatClock(minutes))
		if err != nil {
			t.Fatalf("round trip of %d minutes: %v", minutes, err)
		}
		if parsed != minutes {
			t.Fatalf("round trip of %d minutes yielded %d", minutes, parsed)
		}
	}
}

func TestRoundDuration_NearestStepWithTieUp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minutes int
		step    int
		want    int
	}{
		{37, 15, 30},
		{38, 15, 45},
		{7, 15, 0},
		{8, 15, 15},
		{90, 15, 90},
		{0, 15, 0},
		{5, 10, 10}, // exact tie rounds up
		{4, 10, 0},
		{61, 0, 61}, // step disabled
	}

	for _, tc := range cases {
		if got := RoundDuration(tc.minutes, tc.step); got != tc.want {
			t.Fatalf("RoundDuration(%d, %d) = %d, want %d", tc.minutes, tc.step, got, tc.want)
		}
	}
}

func TestRoundDuration_Idempotent(t *testing.T) {
	t.Parallel()

	for minutes := 0; minutes <= 300; minutes++ {
		once := RoundDuration(minutes, DefaultRoundStep)
		twice := RoundDuration(once, DefaultRoundStep)
		if once != twice {
			t.Fatalf("rounding %d is not idempotent: %d != %d", minutes, once, twice)
		}
	}
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minutes int
		want    string
	}{
		{90, "1:30"},
		{60, "1:00"},
		{65, "1:05"},
		{0, "0:00"},
		{605, "10:05"},
	}

	for _, tc := range cases {
		if got := FormatClock(tc.minutes); got != tc.want {
			t.Fatalf("FormatClock(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}
