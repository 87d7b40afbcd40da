// Package calendar derives timezone-stable local-day keys and does civil
// date arithmetic on them.
package calendar

import (
	"fmt"
	"time"
)

// KeyLayout is the wire format of a day key.
const KeyLayout = "2006-01-02"

// Day is a civil calendar date. The zero value is 0001-01-01.
type Day struct {
	t time.Time // always 00:00 UTC
}

// NewDay returns the civil date y-m-d, normalizing out-of-range values.
func NewDay(y int, m time.Month, d int) Day {
	return Day{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDay parses a YYYY-MM-DD key.
func ParseDay(key string) (Day, error) {
	t, err := time.Parse(KeyLayout, key)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", key, err)
	}
	return Day{t: t}, nil
}

// MustParseDay is ParseDay for literals known to be valid.
func MustParseDay(key string) Day {
	d, err := ParseDay(key)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the YYYY-MM-DD key.
func (d Day) String() string { return d.t.Format(KeyLayout) }

// AddDays returns the day n days later (earlier for negative n).
func (d Day) AddDays(n int) Day {
	return Day{t: d.t.AddDate(0, 0, n)}
}

// DaysSince returns the number of days from other to d.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// Weekday returns the day of the week, Sunday = 0.
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }

func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool  { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool  { return d.t.Equal(other.t) }

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d.t.IsZero() }

// MarshalText implements encoding.TextMarshaler.
func (d Day) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Day) UnmarshalText(b []byte) error {
	parsed, err := ParseDay(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// LocalDayKey returns the key of the local calendar day containing instant.
// tzOffsetMinutes is the zone's offset in minutes behind UTC (positive west
// of Greenwich, e.g. 300 for UTC-5): the instant is shifted by that many
// minutes and the UTC date of the result is taken.
func LocalDayKey(instant time.Time, tzOffsetMinutes int) string {
	shifted := instant.UTC().Add(-time.Duration(tzOffsetMinutes) * time.Minute)
	return shifted.Format(KeyLayout)
}

// OffsetMinutes returns loc's offset at instant in LocalDayKey's convention.
func OffsetMinutes(instant time.Time, loc *time.Location) int {
	_, east := instant.In(loc).Zone()
	return -east / 60
}

// KeyIn returns the local-day key of instant in loc.
func KeyIn(instant time.Time, loc *time.Location) string {
	return LocalDayKey(instant, OffsetMinutes(instant, loc))
}

// DayIn returns the local calendar day of instant in loc.
func DayIn(instant time.Time, loc *time.Location) Day {
	return MustParseDay(KeyIn(instant, loc))
}
