/*
Tool configuration.

YAML file for the rtcsync tool. Library users wire Config and sources
directly, this is convenience for the example CLI and similar tools
*/
package dstgopher

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DEFAULTNTPHOST = "pool.ntp.org"
	DEFAULTLOGDIR  = "/var/lib/dstgopher"
)

// ToolConf is on-disk configuration for sync tool
type ToolConf struct {
	Zone           string `yaml:"zone"`                 //One of four US zone names
	Host           string `yaml:"host"`                 //Time server, port 123 if not given
	QueryTimeoutMs int    `yaml:"query_timeout_ms"`     //Per attempt
	MaxRetries     int    `yaml:"max_retries"`          //Attempts before giving up
	SyncLogDir     string `yaml:"synclog_dir"`          //Empty disables sync log
	CronSchedule   string `yaml:"schedule,omitempty"`   //Empty means one shot run
	RtcDevice      string `yaml:"rtc_device,omitempty"` //Default /dev/rtc
}

func DefaultToolConf() ToolConf {
	return ToolConf{
		Zone:           ZONE_EASTERN,
		Host:           DEFAULTNTPHOST,
		QueryTimeoutMs: 2000,
		MaxRetries:     DEFAULTMAXRETRIES,
		SyncLogDir:     DEFAULTLOGDIR,
	}
}

// QueryTimeout converts configured milliseconds to duration
func (c *ToolConf) QueryTimeout() time.Duration {
	return time.Duration(c.QueryTimeoutMs) * time.Millisecond
}

// Normalize fills zero values so old or partial config files still work
func (c *ToolConf) Normalize() {
	if c.Zone == "" {
		c.Zone = ZONE_EASTERN
	}
	if c.Host == "" {
		c.Host = DEFAULTNTPHOST
	}
	if c.QueryTimeoutMs <= 0 {
		c.QueryTimeoutMs = 2000
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = DEFAULTMAXRETRIES
	}
}

// LoadToolConf reads YAML configuration. Missing file gives defaults
func LoadToolConf(path string) (ToolConf, error) {
	if path == "" {
		return ToolConf{}, errors.New("config path is empty")
	}
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		if errors.Is(errRead, fs.ErrNotExist) {
			return DefaultToolConf(), nil
		}
		return ToolConf{}, errRead
	}
	var c ToolConf
	errParse := yaml.Unmarshal(data, &c)
	if errParse != nil {
		return ToolConf{}, errParse
	}
	c.Normalize()
	return c, nil
}
