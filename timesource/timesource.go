/*
Timesource library for getting UTC time from external sources like NTP
*/
package timesource

import (
	"errors"
	"time"
)

// ErrNetworkUnavailable means address resolution failed. Network connection
// must be established before querying, so this is not worth retrying.
// Check with errors.Is, other errors from sources are transient
var ErrNetworkUnavailable = errors.New("you must be connected to a network to use this function")

type TimeSource interface {
	//Get current UTC time
	UTCNow() (time.Time, error)
}
