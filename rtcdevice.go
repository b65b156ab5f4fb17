/*
Clock devices.

Writing result of sync somewhere is the whole point. Two implementations:
kernel RTC character device and the system wall clock itself.

Checking is linux wall clock in sync depends on installation and hardware
configuration. Initial guess is that Adjtimex should work.
*/

package dstgopher

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ClockDevice is the target where synchronized local time is written.
// Device gets wall clock fields, weekday and subsecond are zero placeholders
type ClockDevice interface {
	SetDatetime(t CivilTime) error
}

const DEFAULTRTCDEVICE = "/dev/rtc"

// RtcDev writes to kernel RTC character device with RTC_SET_TIME ioctl
type RtcDev struct {
	Device string //empty means DEFAULTRTCDEVICE
}

func (p *RtcDev) devname() string {
	if p.Device == "" {
		return DEFAULTRTCDEVICE
	}
	return p.Device
}

// SetDatetime writes wall clock fields to RTC.
// Kernel rtc_time wants years since 1900 and 0 based months
func (p *RtcDev) SetDatetime(t CivilTime) error {
	f, errOpen := os.OpenFile(p.devname(), os.O_RDWR, 0)
	if errOpen != nil {
		return fmt.Errorf("opening rtc device %v err=%v", p.devname(), errOpen)
	}
	defer f.Close()

	rt := unix.RTCTime{
		Sec:  int32(t.Sec),
		Min:  int32(t.Min),
		Hour: int32(t.Hour),
		Mday: int32(t.Day),
		Mon:  int32(int(t.Month) - 1),
		Year: int32(t.Year - 1900),
		Wday: 0, //Placeholder, hardware does not track weekday here
		Yday: 0,
	}
	errIoctl := unix.IoctlSetRTCTime(int(f.Fd()), &rt)
	if errIoctl != nil {
		return fmt.Errorf("RTC_SET_TIME on %v err=%v", p.devname(), errIoctl)
	}
	return nil
}

// ReadDatetime reads what RTC has now. For diagnostics
func (p *RtcDev) ReadDatetime() (CivilTime, error) {
	f, errOpen := os.Open(p.devname())
	if errOpen != nil {
		return CivilTime{}, fmt.Errorf("opening rtc device %v err=%v", p.devname(), errOpen)
	}
	defer f.Close()

	rt, errIoctl := unix.IoctlGetRTCTime(int(f.Fd()))
	if errIoctl != nil {
		return CivilTime{}, fmt.Errorf("RTC_RD_TIME on %v err=%v", p.devname(), errIoctl)
	}
	result := CivilTime{
		Year:  int(rt.Year) + 1900,
		Month: time.Month(rt.Mon + 1),
		Day:   int(rt.Mday),
		Hour:  int(rt.Hour),
		Min:   int(rt.Min),
		Sec:   int(rt.Sec),
	}
	return result, nil
}

// SysClock sets kernel wall clock with settimeofday.
// For boards where "RTC" is the system clock itself. Needs CAP_SYS_TIME
type SysClock struct {
}

func (p *SysClock) SetDatetime(t CivilTime) error {
	tv := unix.NsecToTimeval(t.Time().UnixNano())
	errSet := unix.Settimeofday(&tv)
	if errSet != nil {
		return fmt.Errorf("settimeofday err=%v", errSet)
	}
	return nil
}

// https://man7.org/linux/man-pages/man2/adjtimex.2.html
const (
	TIME_OK   = iota //Clock synchronized, no leap second adjustment pending.
	TIME_INS         //Indicates that a leap second will be added at the end of the UTC day
	TIME_DEL         //Indicates that a leap second will be deleted at the end of the UTC day.
	TIME_OOP         //Insertion of a leap second is in progress.
	TIME_WAIT        // A leap-second insertion or deletion has been completed.
	TIME_ERROR
)

//SystemClockSynced_adjtimex uses adjtimex for checking is wall clock already
//disciplined by some NTP daemon. If it is, caller may skip syncing completely
func SystemClockSynced_adjtimex() (bool, error) {
	tx := unix.Timex{}
	clockState, err := unix.Adjtimex(&tx)
	if err != nil {
		return false, err
	}

	return (clockState <= 0) && (clockState != TIME_ERROR), nil
}
