/*
Sync log.

Device that rewrites its RTC should remember when and how it did that.
Struct SyncLog is conversion layer for storing SyncEntries in reliable way.
Current implementation persist data on disk but keeps content cached in mem
for fast access.
*/

package dstgopher

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/hjkoskel/fixregsto"
)

const RECORDSIZE_SYNCENTRY = 24

// SyncEntry is one successful synchronization. UtcEpoch is the UTC instant
// got from time source, OffsetSec includes DST hour when Dst is set
type SyncEntry struct {
	UtcEpoch  SecEpoch
	UptimeSec int64 //Uptime at sync for diagnostics, 0 if not known
	OffsetSec int32
	Dst       bool
}

// ToBinary creates fixed size binary presentation of sync entry
func (p *SyncEntry) ToBinary() ([]byte, error) {
	if p.UtcEpoch <= 0 {
		return nil, fmt.Errorf("ToBinary: UtcEpoch is %v", p.UtcEpoch)
	}
	buf := new(bytes.Buffer) //8+8+4+1+3 pad = 24
	err := binary.Write(buf, binary.LittleEndian, p.UtcEpoch)
	if err != nil {
		return nil, err
	}
	err = binary.Write(buf, binary.LittleEndian, p.UptimeSec)
	if err != nil {
		return nil, err
	}
	err = binary.Write(buf, binary.LittleEndian, p.OffsetSec)
	if err != nil {
		return nil, err
	}
	var dstByte uint8
	if p.Dst {
		dstByte = 1
	}
	err = binary.Write(buf, binary.LittleEndian, dstByte)
	if err != nil {
		return nil, err
	}
	buf.Write([]byte{0, 0, 0}) //pad to record size
	return buf.Bytes(), nil
}

// ParseSyncEntry parses SyncEntry from binary format
func ParseSyncEntry(raw []byte) (SyncEntry, error) {
	if len(raw) != RECORDSIZE_SYNCENTRY {
		return SyncEntry{}, fmt.Errorf("invalid size %v for sync entry", len(raw))
	}
	result := SyncEntry{
		UtcEpoch:  SecEpoch(binary.LittleEndian.Uint64(raw[0:8])),
		UptimeSec: int64(binary.LittleEndian.Uint64(raw[8:16])),
		OffsetSec: int32(binary.LittleEndian.Uint32(raw[16:20])),
		Dst:       raw[20] != 0,
	}
	if result.UtcEpoch <= 0 { //Catch errors early but return result still
		return result, fmt.Errorf("ParseSyncEntry: UtcEpoch is %v", result.UtcEpoch)
	}
	return result, nil
}

// ParseSyncEntryList splits raw storage content to entries
func ParseSyncEntryList(raw []byte) ([]SyncEntry, error) {
	if len(raw)%RECORDSIZE_SYNCENTRY != 0 {
		return nil, fmt.Errorf("raw sync log size %v is not multiple of %v", len(raw), RECORDSIZE_SYNCENTRY)
	}
	result := make([]SyncEntry, 0, len(raw)/RECORDSIZE_SYNCENTRY)
	for i := 0; i < len(raw); i += RECORDSIZE_SYNCENTRY {
		e, errParse := ParseSyncEntry(raw[i : i+RECORDSIZE_SYNCENTRY])
		if errParse != nil {
			return result, fmt.Errorf("entry %v parse err=%v", i/RECORDSIZE_SYNCENTRY, errParse.Error())
		}
		result = append(result, e)
	}
	return result, nil
}

type SyncLog struct {
	sto fixregsto.FixRegSto //Store and restore here
	mem []SyncEntry         //Primary place to keep values
}

// CreateSyncLog restores content from FixRegSto storage and initializes SyncLog struct
func CreateSyncLog(storage fixregsto.FixRegSto) (SyncLog, error) {
	raw, readErr := storage.ReadAll()
	if readErr != nil {
		return SyncLog{}, fmt.Errorf("error on ReadAll on CreateSyncLog err=%v", readErr.Error())
	}
	mem, errParse := ParseSyncEntryList(raw)
	return SyncLog{sto: storage, mem: mem}, errParse
}

func (p *SyncLog) Append(e SyncEntry) error {
	binarr, errbin := e.ToBinary()
	if errbin != nil {
		return fmt.Errorf("Append error, binary coding %#v failed %v", e, errbin)
	}
	n := len(p.mem)
	if 0 < n { //Sync times must move forward. Going backward means source lied
		if e.UtcEpoch < p.mem[n-1].UtcEpoch {
			return fmt.Errorf("appended entry %#v is before latest entry %#v", e, p.mem[n-1])
		}
	}
	_, errWrite := p.sto.Write(binarr)
	if errWrite != nil {
		return errWrite
	}
	p.mem = append(p.mem, e)

	return nil
}

func (p *SyncLog) GetLatestN(n int) ([]SyncEntry, error) {
	maxN := len(p.mem)
	if maxN < n {
		return p.mem, nil
	}
	return p.mem[maxN-n:], nil
}

func (p *SyncLog) All() ([]SyncEntry, error) {
	return p.mem, nil
}

func (p *SyncLog) Len() (int, error) {
	return len(p.mem), nil
}
