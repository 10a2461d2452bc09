package timeutil

import (
	"time"
)

// MVT is the Maldives Time location (UTC+5)
var MVT *time.Location

// nowFunc is swappable so tests can pin the clock
var nowFunc = time.Now

func init() {
	var err error
	MVT, err = time.LoadLocation("Indian/Maldives")
	if err != nil {
		// Fallback: create fixed zone if Indian/Maldives not available
		MVT = time.FixedZone("MVT", 5*60*60) // UTC+5
	}
}

// Now returns the current time in MVT
func Now() time.Time {
	return nowFunc().In(MVT)
}

// SetNowFunc overrides the clock. It returns a restore function and is
// intended for tests only.
func SetNowFunc(f func() time.Time) func() {
	prev := nowFunc
	nowFunc = f
	return func() { nowFunc = prev }
}

// ToMVT converts any time to MVT
func ToMVT(t time.Time) time.Time {
	return t.In(MVT)
}

// ParseInMVT parses a time string and returns it in MVT
func ParseInMVT(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, MVT)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// StartOfDay returns the start of day (00:00:00) in MVT for the given time
func StartOfDay(t time.Time) time.Time {
	mvt := t.In(MVT)
	return time.Date(mvt.Year(), mvt.Month(), mvt.Day(), 0, 0, 0, 0, MVT)
}

// EndOfDay returns the end of day (23:59:59) in MVT for the given time
func EndOfDay(t time.Time) time.Time {
	mvt := t.In(MVT)
	return time.Date(mvt.Year(), mvt.Month(), mvt.Day(), 23, 59, 59, 999999999, MVT)
}

// StartOfMonth returns the first instant of the month containing t
func StartOfMonth(t time.Time) time.Time {
	mvt := t.In(MVT)
	return time.Date(mvt.Year(), mvt.Month(), 1, 0, 0, 0, 0, MVT)
}

// Common layouts for MVT formatting
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
)
