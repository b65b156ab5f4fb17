/*
Uptime reading.

Sync log entries carry uptime at sync moment. Helps diagnosing how long after
boot the network and time server were actually reachable.

/proc/uptime have 0.01s granularity, more than enough for one second RTC
*/
package dstgopher

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

func parseUptimeFile(content []byte) (int64, error) {
	a := strings.Fields(string(content))
	if len(a) != 2 {
		return 0, fmt.Errorf("invalid uptime format %s", content)
	}
	f, errParse := strconv.ParseFloat(a[0], 64)
	if errParse != nil {
		return 0, fmt.Errorf("invalid uptime format %s  (err %v)", content, errParse.Error())
	}
	return int64(f), nil
}

// Replace this global variable at tests
var procFS = os.DirFS("/proc")

// GetDirectUptime reads uptime in full seconds
func GetDirectUptime() (int64, error) {
	rawUptime, errRawUptime := fs.ReadFile(procFS, "uptime")
	if errRawUptime != nil {
		return 0, errRawUptime
	}
	return parseUptimeFile(rawUptime)
}
