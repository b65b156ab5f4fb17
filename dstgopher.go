/*
DstGopher

Syncs RTC of embedded linux device to US local time. Gets UTC from time
source, applies fixed standard offset of chosen zone and computed DST hour,
then writes result to clock device. Successful syncs go to optional sync log.
*/
package dstgopher

import (
	"errors"
	"fmt"
	"log"

	"github.com/hjkoskel/dstgopher/timesource"
)

const DEFAULTMAXRETRIES = 10

// ErrTimeSyncFailed means every retry attempt failed. Terminal, caller
// decides what to do. No backoff or reboot escalation happens here
var ErrTimeSyncFailed = errors.New("failed to get NTP time")

// Config is immutable settings for DstGopher. Explicit struct instead of
// package level globals, so tests and multi-instance use stay sane
type Config struct {
	ZoneOffsets map[string]int //Zone name to standard UTC offset in hours. Nil means DefaultZones()
	MaxRetries  int            //How many time source attempts before giving up. 0 means DEFAULTMAXRETRIES
}

type DstGopher struct {
	conf    Config
	source  timesource.TimeSource
	device  ClockDevice
	syncLog *SyncLog //Optional
	logger  *log.Logger
}

//NewDstGopher initializes DstGopher

//Parameters:
//	conf, zone table and retry policy. Zero value gets defaults
//	source, where UTC time comes from. SntpSource or NtpSource, or fake on tests
//	device, where synchronized local time is written. RtcDev or SysClock
//	syncLog, pointer for storing successful sync events. Nil if not needed
//	logger, sink for retry and recovery notices. Nil means log.Default()
func NewDstGopher(
	conf Config,
	source timesource.TimeSource,
	device ClockDevice,
	syncLog *SyncLog,
	logger *log.Logger,
) (DstGopher, error) {
	if source == nil {
		return DstGopher{}, fmt.Errorf("time source required")
	}
	if device == nil {
		return DstGopher{}, fmt.Errorf("clock device required")
	}
	if conf.ZoneOffsets == nil {
		conf.ZoneOffsets = DefaultZones()
	}
	if conf.MaxRetries <= 0 {
		conf.MaxRetries = DEFAULTMAXRETRIES
	}
	if logger == nil {
		logger = log.Default()
	}
	return DstGopher{conf: conf, source: source, device: device, syncLog: syncLog, logger: logger}, nil
}

// getUtcWithRetry runs bounded retry loop against time source.
// Network unavailable aborts immediately, that is precondition failure and
// retrying without connectivity is pointless
func (p *DstGopher) getUtcWithRetry() (SecEpoch, error) {
	for attempt := 0; attempt < p.conf.MaxRetries; attempt++ {
		t, errGet := p.source.UTCNow()
		if errGet == nil {
			if 0 < attempt {
				p.logger.Printf("Successfully retrieved NTP time on retry.")
			}
			return SecEpoch(t.Unix()), nil
		}
		if errors.Is(errGet, timesource.ErrNetworkUnavailable) {
			return 0, errGet
		}
		p.logger.Printf("Failed to get NTP time. Retrying... (%v)", errGet)
	}
	return 0, ErrTimeSyncFailed
}

// UtcToLocal converts UTC epoch to local wall time of zone with given
// standard offset, with DST hour applied when needed.
// DST is probed once with pre-DST local wall time, single one shot +1h
// correction. No iterating to fixed point
func UtcToLocal(utc SecEpoch, offsetHours int) (CivilTime, bool) {
	localEpoch := utc + SecEpoch(offsetHours*SECONDSPERHOUR)
	localTime := CivilFromEpoch(localEpoch)
	if IsUsDst(localTime) {
		return CivilFromEpoch(localEpoch + SECONDSPERHOUR), true
	}
	return localTime, false
}

// Sync gets UTC time, converts to local time of named zone and writes result
// to clock device. Returns written local time for confirmation.
// Zone name is checked before any network activity
func (p *DstGopher) Sync(zoneName string) (CivilTime, error) {
	offsetHours, ok := p.conf.ZoneOffsets[zoneName]
	if !ok {
		return CivilTime{}, newUnsupportedZoneError(zoneName, p.conf.ZoneOffsets)
	}

	utc, errUtc := p.getUtcWithRetry()
	if errUtc != nil {
		return CivilTime{}, errUtc
	}

	localTime, dst := UtcToLocal(utc, offsetHours)

	deviceTime := localTime
	deviceTime.Weekday = 0 //Device contract, placeholders
	deviceTime.Yearday = 0
	errSet := p.device.SetDatetime(deviceTime)
	if errSet != nil {
		return CivilTime{}, fmt.Errorf("setting clock device err=%v", errSet)
	}

	if p.syncLog != nil {
		offsetSec := int32(offsetHours * SECONDSPERHOUR)
		if dst {
			offsetSec += SECONDSPERHOUR
		}
		ut, _ := GetDirectUptime() //Best effort, 0 when /proc/uptime not there
		errLog := p.syncLog.Append(SyncEntry{UtcEpoch: utc, UptimeSec: ut, OffsetSec: offsetSec, Dst: dst})
		if errLog != nil {
			//Clock is already set, do not hide that success completely
			return localTime, fmt.Errorf("clock set but sync log append err=%v", errLog)
		}
	}
	return localTime, nil
}
