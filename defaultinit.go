/*
Default initialization

Helper function that does wiring that is good enough for many use cases
*/
package dstgopher

import (
	"fmt"
	"log"

	"github.com/hjkoskel/fixregsto"

	"github.com/hjkoskel/dstgopher/timesource"
)

const (
	DEFAULTDBFILE_SYNCLOG = "sync.rtc"
)

/*
Create default that is good for embedded linux use.
This function acts also as example use.
Writes to real /dev/rtc, so not possible to unit test well.
*/
func CreateDefaultDstGopher(conf ToolConf, logger *log.Logger) (DstGopher, error) {
	conf.Normalize()

	source := &timesource.SntpSource{
		Host:    conf.Host,
		Timeout: conf.QueryTimeout(),
	}

	device := &RtcDev{Device: conf.RtcDevice}

	var syncLogPtr *SyncLog
	if conf.SyncLogDir != "" {
		confLog := fixregsto.FileStorageConf{
			Name:         DEFAULTDBFILE_SYNCLOG,
			RecordSize:   RECORDSIZE_SYNCENTRY,
			MaxFileCount: 256,
			FileMaxSize:  512 * 4,
			Path:         conf.SyncLogDir,
		}
		stoLog, errSto := confLog.InitFileStorage()
		if errSto != nil {
			return DstGopher{}, fmt.Errorf("sync log init error %v", errSto)
		}
		syncLog, errLog := CreateSyncLog(&stoLog)
		if errLog != nil {
			return DstGopher{}, fmt.Errorf("sync log create error %v", errLog)
		}
		syncLogPtr = &syncLog
	}

	result, newErr := NewDstGopher(
		Config{MaxRetries: conf.MaxRetries}, //Zone table defaults
		source,
		device,
		syncLogPtr,
		logger,
	)
	if newErr != nil {
		return result, fmt.Errorf("NewDstGopher error %v", newErr)
	}
	return result, nil
}
