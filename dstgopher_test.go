package dstgopher

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/hjkoskel/fixregsto"
	"github.com/stretchr/testify/assert"

	"github.com/hjkoskel/dstgopher/timesource"
)

// fakeSource fails first Fails calls, then returns Result
type fakeSource struct {
	Fails  int
	Result time.Time
	Err    error //Returned on failing calls, nil means generic transient

	calls int
}

func (p *fakeSource) UTCNow() (time.Time, error) {
	p.calls++
	if p.calls <= p.Fails {
		if p.Err != nil {
			return time.Time{}, p.Err
		}
		return time.Time{}, fmt.Errorf("no reply")
	}
	return p.Result, nil
}

type fakeDevice struct {
	sets []CivilTime
}

func (p *fakeDevice) SetDatetime(t CivilTime) error {
	p.sets = append(p.sets, t)
	return nil
}

func TestSyncDstActive(t *testing.T) {
	//Second Sunday of March 2024 is March 10, transition was 07:00 UTC in Eastern
	src := &fakeSource{Result: time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)}
	dev := &fakeDevice{}
	dut, errCreate := NewDstGopher(Config{}, src, dev, nil, nil)
	if errCreate != nil {
		t.Error(errCreate)
	}

	local, errSync := dut.Sync(ZONE_EASTERN)
	assert.Equal(t, nil, errSync)
	assert.Equal(t, "2024-03-10 04:00:00", local.String()) //-5h standard +1h DST
	assert.Equal(t, time.Sunday, local.Weekday)

	assert.Equal(t, 1, len(dev.sets))
	written := dev.sets[0]
	assert.Equal(t, "2024-03-10 04:00:00", written.String())
	assert.Equal(t, time.Weekday(0), written.Weekday) //Placeholder on device write
	assert.Equal(t, 0, written.Yearday)
}

func TestSyncStandardTime(t *testing.T) {
	src := &fakeSource{Result: time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)}
	dev := &fakeDevice{}
	dut, _ := NewDstGopher(Config{}, src, dev, nil, nil)

	local, errSync := dut.Sync(ZONE_PACIFIC)
	assert.Equal(t, nil, errSync)
	assert.Equal(t, "2024-01-15 04:00:00", local.String()) //-8h, no DST hour
}

func TestSyncFallBackOneShot(t *testing.T) {
	//First Sunday of November 2024 is November 3. Local standard probe is
	//01:30 which still counts as DST, so one shot correction gives 02:30.
	//No iterating to fixed point even when 02:30 itself would classify false
	src := &fakeSource{Result: time.Date(2024, time.November, 3, 6, 30, 0, 0, time.UTC)}
	dev := &fakeDevice{}
	dut, _ := NewDstGopher(Config{}, src, dev, nil, nil)

	local, errSync := dut.Sync(ZONE_EASTERN)
	assert.Equal(t, nil, errSync)
	assert.Equal(t, "2024-11-03 02:30:00", local.String())
}

func TestRetryRecovery(t *testing.T) {
	src := &fakeSource{Fails: 3, Result: time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)}
	dev := &fakeDevice{}
	buf := &bytes.Buffer{}
	dut, _ := NewDstGopher(Config{}, src, dev, nil, log.New(buf, "", 0))

	_, errSync := dut.Sync(ZONE_CENTRAL)
	assert.Equal(t, nil, errSync)
	assert.Equal(t, 4, src.calls)
	assert.Equal(t, 3, strings.Count(buf.String(), "Failed to get NTP time. Retrying..."))
	assert.Equal(t, 1, strings.Count(buf.String(), "Successfully retrieved NTP time on retry."))
}

func TestRetryNoticeNotOnFirstSuccess(t *testing.T) {
	src := &fakeSource{Result: time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)}
	buf := &bytes.Buffer{}
	dut, _ := NewDstGopher(Config{}, src, &fakeDevice{}, nil, log.New(buf, "", 0))

	_, errSync := dut.Sync(ZONE_CENTRAL)
	assert.Equal(t, nil, errSync)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, "", buf.String())
}

func TestRetryExhausted(t *testing.T) {
	src := &fakeSource{Fails: 1000} //Never succeeds inside retry budget
	dev := &fakeDevice{}
	dut, _ := NewDstGopher(Config{}, src, dev, nil, log.New(&bytes.Buffer{}, "", 0))

	_, errSync := dut.Sync(ZONE_MOUNTAIN)
	assert.True(t, errors.Is(errSync, ErrTimeSyncFailed))
	assert.Equal(t, DEFAULTMAXRETRIES, src.calls)
	assert.Equal(t, 0, len(dev.sets)) //Clock only written on full success
}

func TestNetworkUnavailableAbortsRetry(t *testing.T) {
	src := &fakeSource{Fails: 1000, Err: fmt.Errorf("resolving: %w", timesource.ErrNetworkUnavailable)}
	dut, _ := NewDstGopher(Config{}, src, &fakeDevice{}, nil, log.New(&bytes.Buffer{}, "", 0))

	_, errSync := dut.Sync(ZONE_EASTERN)
	assert.True(t, errors.Is(errSync, timesource.ErrNetworkUnavailable))
	assert.Equal(t, 1, src.calls) //Precondition failure, not worth retrying
}

func TestUnsupportedZone(t *testing.T) {
	src := &fakeSource{Result: time.Now()}
	dut, _ := NewDstGopher(Config{}, src, &fakeDevice{}, nil, nil)

	_, errSync := dut.Sync("Mars/Olympus")
	var zoneErr *UnsupportedZoneError
	assert.True(t, errors.As(errSync, &zoneErr))
	assert.Equal(t, "Mars/Olympus", zoneErr.Name)
	assert.Equal(t, []string{ZONE_CENTRAL, ZONE_EASTERN, ZONE_MOUNTAIN, ZONE_PACIFIC}, zoneErr.Supported)
	assert.Equal(t, 0, src.calls) //Fail fast before any network activity
}

func TestSyncLogGetsEntry(t *testing.T) {
	memconf := fixregsto.MemloopConf{
		RecordSize: RECORDSIZE_SYNCENTRY,
		MaxRecords: 8,
	}
	mem, memCreateErr := memconf.InitMemLoop()
	if memCreateErr != nil {
		t.Error(memCreateErr)
	}
	syncLog, errCreate := CreateSyncLog(&mem)
	if errCreate != nil {
		t.Error(errCreate)
	}

	utc := time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC)
	src := &fakeSource{Result: utc}
	dut, _ := NewDstGopher(Config{}, src, &fakeDevice{}, &syncLog, nil)

	_, errSync := dut.Sync(ZONE_EASTERN)
	assert.Equal(t, nil, errSync)

	n, errLen := syncLog.Len()
	assert.Equal(t, nil, errLen)
	assert.Equal(t, 1, n)

	latest, errLatest := syncLog.GetLatestN(1)
	assert.Equal(t, nil, errLatest)
	assert.Equal(t, SecEpoch(utc.Unix()), latest[0].UtcEpoch)
	assert.Equal(t, int32(-4*SECONDSPERHOUR), latest[0].OffsetSec) //-5h standard +1h DST
	assert.Equal(t, true, latest[0].Dst)
}
