package middleware

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestParseAxRequestAt(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	got, err := parseAxRequestAt(strconv.FormatInt(now.Unix(), 10))
	if err != nil {
		t.Fatalf("epoch seconds: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("epoch seconds = %v, want %v", got, now)
	}

	got, err = parseAxRequestAt(strconv.FormatInt(now.UnixMilli(), 10))
	if err != nil {
		t.Fatalf("epoch millis: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("epoch millis = %v, want %v", got, now)
	}

	got, err = parseAxRequestAt(now.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("rfc3339: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("rfc3339 = %v, want %v", got, now)
	}

	// Offset timestamps normalize to UTC.
	got, err = parseAxRequestAt("2025-09-05T10:00:00+02:00")
	if err != nil {
		t.Fatalf("offset: %v", err)
	}
	if got.Hour() != 8 {
		t.Fatalf("offset hour = %d, want 8 UTC", got.Hour())
	}

	for _, raw := range []string{"", "not-a-time", "2025-09-05 10:00:00"} {
		if _, err := parseAxRequestAt(raw); err == nil {
			t.Fatalf("raw %q must be rejected", raw)
		}
	}
}

func TestValidReqID(t *testing.T) {
	if !validReqID(strings.Repeat("a", 32)) {
		t.Fatal("hex32 must be accepted")
	}
	if !validReqID("3f2a1d44-9c1b-4e5a-8f00-1a2b3c4d5e6f") {
		t.Fatal("uuid must be accepted")
	}
	if validReqID("short") || validReqID("") {
		t.Fatal("malformed ids must be rejected")
	}
}

func TestBuildKey(t *testing.T) {
	key := buildKey("POST", "/loans", "b1", "r1")
	if key != "microlend:idemp:post:/loans:b1:r1" {
		t.Fatalf("key = %q", key)
	}
}
