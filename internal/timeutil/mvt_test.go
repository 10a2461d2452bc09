package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay_CrossesUTCDate(t *testing.T) {
	// 21:30 UTC is 02:30 the next day in MVT (UTC+5).
	utc := time.Date(2025, time.June, 10, 21, 30, 0, 0, time.UTC)

	start := StartOfDay(utc)
	if start.Day() != 11 {
		t.Fatalf("StartOfDay day = %d, want 11", start.Day())
	}
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("StartOfDay = %v, want midnight", start)
	}
}

func TestEndOfDay(t *testing.T) {
	at := time.Date(2025, time.June, 10, 12, 0, 0, 0, MVT)
	end := EndOfDay(at)
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("EndOfDay = %v", end)
	}
	if end.Day() != 10 {
		t.Fatalf("EndOfDay day = %d, want 10", end.Day())
	}
}

func TestStartOfMonth(t *testing.T) {
	at := time.Date(2025, time.June, 17, 8, 45, 0, 0, MVT)
	start := StartOfMonth(at)
	if start.Day() != 1 || start.Month() != time.June || start.Hour() != 0 {
		t.Fatalf("StartOfMonth = %v", start)
	}
}

func TestSetNowFunc(t *testing.T) {
	fixed := time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC)
	restore := SetNowFunc(func() time.Time { return fixed })
	defer restore()

	now := Now()
	if !now.Equal(fixed) {
		t.Fatalf("Now() = %v, want %v", now, fixed)
	}
	if now.Location() != MVT {
		t.Fatalf("Now() location = %v, want MVT", now.Location())
	}

	restore()
	if Now().Equal(fixed) {
		t.Fatal("restore did not reset the clock")
	}
}

func TestParseInMVT(t *testing.T) {
	parsed, err := ParseInMVT(DateLayout, "2025-03-07")
	if err != nil {
		t.Fatalf("ParseInMVT error: %v", err)
	}
	if parsed.Location() != MVT {
		t.Fatalf("location = %v, want MVT", parsed.Location())
	}
	if _, err := ParseInMVT(DateLayout, "07/03/2025"); err == nil {
		t.Fatal("expected parse error for wrong layout")
	}
}
