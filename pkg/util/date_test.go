package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-01-15T14:30:00Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeFractional(t *testing.T) {
	got, ok := ParseTime("2025-01-15T14:30:00.123456Z")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Hour() != 14 || got.Nanosecond() == 0 {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeDateOnly(t *testing.T) {
	got, ok := ParseTime("01/15/2025")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}

	got, ok = ParseTime("2025-01-15")
	if !ok || !got.Equal(want) {
		t.Fatalf("got %v ok=%v", got, ok)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 1, 15, 16, 0, 0, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeUnixBeforeEpochFloor(t *testing.T) {
	// Small integers must not be mistaken for timestamps.
	if _, ok := ParseTime("12345"); ok {
		t.Fatalf("expected no match for pre-2000 epoch value")
	}
}

func TestParseTimeNoMatch(t *testing.T) {
	if _, ok := ParseTime("not-a-date"); ok {
		t.Fatalf("expected no match")
	}
	if _, ok := ParseTime(""); ok {
		t.Fatalf("expected no match for empty string")
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
	got := ParseTimeDefault("garbage", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}
