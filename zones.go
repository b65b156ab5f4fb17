/*
Supported time zones.

Only four US zones with fixed standard offset. Not a tz database,
DST hour comes from usdst.go when needed.
*/

package dstgopher

import (
	"fmt"
	"sort"
	"strings"
)

const (
	ZONE_EASTERN  = "US/Eastern"
	ZONE_CENTRAL  = "US/Central"
	ZONE_MOUNTAIN = "US/Mountain"
	ZONE_PACIFIC  = "US/Pacific"
)

// DefaultZones gives fresh zone to standard UTC offset hour map.
// Fresh map on every call, so no shared package level mutable state
func DefaultZones() map[string]int {
	return map[string]int{
		ZONE_EASTERN:  -5,
		ZONE_CENTRAL:  -6,
		ZONE_MOUNTAIN: -7,
		ZONE_PACIFIC:  -8,
	}
}

// UnsupportedZoneError tells that zone name is not in table. Lists valid names
type UnsupportedZoneError struct {
	Name      string
	Supported []string
}

func (e *UnsupportedZoneError) Error() string {
	return fmt.Sprintf("unsupported timezone name %q (supported are: %s)", e.Name, strings.Join(e.Supported, ", "))
}

func newUnsupportedZoneError(name string, zones map[string]int) *UnsupportedZoneError {
	names := make([]string, 0, len(zones))
	for n := range zones {
		names = append(names, n)
	}
	sort.Strings(names)
	return &UnsupportedZoneError{Name: name, Supported: names}
}
