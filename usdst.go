/*
US daylight saving rule.

DST runs from second Sunday of March 02:00 to first Sunday of November 02:00.
Pure calendar arithmetic, no tz database. Zones here have fixed standard
offsets and DST is computed, not looked up.
*/

package dstgopher

import "time"

// firstSunday gives day of month for first sunday. Canonical formula,
// weekday of day 1 with 0=Sunday convention
func firstSunday(year int, month time.Month) int {
	w := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
	return 1 + (7-int(w))%7
}

// DstStartDay is day of month of second Sunday in March
func DstStartDay(year int) int {
	return firstSunday(year, time.March) + 7
}

// DstEndDay is day of month of first Sunday in November
func DstEndDay(year int) int {
	return firstSunday(year, time.November)
}

// IsUsDst tells is given local wall time inside US daylight saving period.
// Transition hour is 02:00 on boundary day, >= on start and < on end
func IsUsDst(t CivilTime) bool {
	if t.Month < time.March || time.November < t.Month {
		return false
	}
	if time.March < t.Month && t.Month < time.November {
		return true
	}
	if t.Month == time.March {
		start := DstStartDay(t.Year)
		if start < t.Day {
			return true
		}
		if t.Day == start {
			return 2 <= t.Hour
		}
		return false
	}
	//November
	end := DstEndDay(t.Year)
	if t.Day < end {
		return true
	}
	if t.Day == end {
		return t.Hour < 2
	}
	return false
}
