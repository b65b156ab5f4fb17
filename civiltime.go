/*
Civil time.

Broken down wall clock time without zone information attached.
Local instants are plain shifted epochs, rendered thru UTC so golang
does not sneak any tz database offsets in.
*/

package dstgopher

import (
	"fmt"
	"time"
)

// SecEpoch is seconds since unix epoch. Common currency for offset arithmetic
type SecEpoch int64

const SECONDSPERHOUR = 60 * 60

// CivilTime is wall clock timestamp. No zone attached, immutable after creation
type CivilTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Min     int
	Sec     int
	Weekday time.Weekday //0=Sunday..6=Saturday, same convention everywhere
	Yearday int
}

// CivilFromTime breaks down UTC wall clock fields of t
func CivilFromTime(t time.Time) CivilTime {
	u := t.UTC()
	return CivilTime{
		Year:    u.Year(),
		Month:   u.Month(),
		Day:     u.Day(),
		Hour:    u.Hour(),
		Min:     u.Minute(),
		Sec:     u.Second(),
		Weekday: u.Weekday(),
		Yearday: u.YearDay(),
	}
}

// CivilFromEpoch converts epoch seconds to broken down wall time
func CivilFromEpoch(epoch SecEpoch) CivilTime {
	return CivilFromTime(time.Unix(int64(epoch), 0))
}

// Time converts back to time.Time, always in UTC location
func (p CivilTime) Time() time.Time {
	return time.Date(p.Year, p.Month, p.Day, p.Hour, p.Min, p.Sec, 0, time.UTC)
}

// Epoch converts to epoch seconds
func (p CivilTime) Epoch() SecEpoch {
	return SecEpoch(p.Time().Unix())
}

func (p CivilTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		p.Year, int(p.Month), p.Day, p.Hour, p.Min, p.Sec)
}
