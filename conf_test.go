package dstgopher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadToolConfMissingFileGivesDefaults(t *testing.T) {
	conf, errLoad := LoadToolConf(filepath.Join(t.TempDir(), "nothere.yaml"))
	assert.Equal(t, nil, errLoad)
	assert.Equal(t, DefaultToolConf(), conf)
}

func TestLoadToolConf(t *testing.T) {
	content := `zone: US/Pacific
host: ntp.example.com:123
query_timeout_ms: 500
synclog_dir: /tmp/synclogs
schedule: "0 */6 * * *"
`
	fname := filepath.Join(t.TempDir(), "rtcsync.yaml")
	errWrite := os.WriteFile(fname, []byte(content), 0600)
	if errWrite != nil {
		t.Error(errWrite)
	}

	conf, errLoad := LoadToolConf(fname)
	assert.Equal(t, nil, errLoad)
	assert.Equal(t, ZONE_PACIFIC, conf.Zone)
	assert.Equal(t, "ntp.example.com:123", conf.Host)
	assert.Equal(t, 500*time.Millisecond, conf.QueryTimeout())
	assert.Equal(t, "/tmp/synclogs", conf.SyncLogDir)
	assert.Equal(t, "0 */6 * * *", conf.CronSchedule)
	assert.Equal(t, DEFAULTMAXRETRIES, conf.MaxRetries) //Normalized default
}

func TestLoadToolConfBadYaml(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "broken.yaml")
	errWrite := os.WriteFile(fname, []byte("zone: [unclosed"), 0600)
	if errWrite != nil {
		t.Error(errWrite)
	}
	_, errLoad := LoadToolConf(fname)
	assert.NotNil(t, errLoad)
}
