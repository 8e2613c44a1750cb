package subtitles

import "testing"

func TestFormatTimestampFixedPoints(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0.0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{3661.234, "01:01:01,234"},
		{59.999, "00:00:59,999"},
		{3600.0, "01:00:00,000"},
	}
	for _, tc := range cases {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatTimestampTruncatesMilliseconds(t *testing.T) {
	// 2.9996s must floor to 999ms, not round up to the next second.
	if got := FormatTimestamp(2.9996); got != "00:00:02,999" {
		t.Fatalf("expected truncation to 00:00:02,999, got %q", got)
	}
}

func TestFormatTimestampClampsNegative(t *testing.T) {
	if got := FormatTimestamp(-1.25); got != "00:00:00,000" {
		t.Fatalf("expected negative input to clamp to zero, got %q", got)
	}
}

func TestFormatMillisUnboundedHours(t *testing.T) {
	// 100 hours exceeds what most SRT consumers expect but must render, not crash.
	if got := FormatMillis(100 * 3_600_000); got != "100:00:00,000" {
		t.Fatalf("expected 100:00:00,000, got %q", got)
	}
}

func TestParseTimestampDelimiters(t *testing.T) {
	comma, err := ParseTimestamp("00:00:01,500")
	if err != nil {
		t.Fatalf("parse comma form: %v", err)
	}
	period, err := ParseTimestamp("00:00:01.500")
	if err != nil {
		t.Fatalf("parse period form: %v", err)
	}
	if comma != period || comma != 1500 {
		t.Fatalf("expected both delimiter styles to parse to 1500ms, got %d and %d", comma, period)
	}
}

func TestParseTimestampRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "00:00:01", "1:2", "aa:bb:cc,ddd", "00:00:01,500,9"} {
		if _, err := ParseTimestamp(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.001, 1.5, 59.999, 61.01, 3661.234, 86399.999} {
		formatted := FormatTimestamp(seconds)
		parsed, err := ParseTimestampSeconds(formatted)
		if err != nil {
			t.Fatalf("parse %q: %v", formatted, err)
		}
		if again := FormatTimestamp(parsed); again != formatted {
			t.Errorf("round trip for %v: %q != %q", seconds, again, formatted)
		}
	}
}
