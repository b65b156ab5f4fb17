package timesource

import (
	"fmt"
	"strings"
	"time"

	"math/rand"

	"github.com/beevik/ntp"
)

// NtpSource uses full NTP client with validation. Tries servers in random
// order until one gives valid response
type NtpSource struct {
	Servers      []string
	QueryTimeout time.Duration
}

func GetDefaultPoolNtp() NtpSource {
	return NtpSource{
		Servers:      []string{"0.pool.ntp.org", "1.pool.ntp.org", "2.pool.ntp.org", "3.pool.ntp.org"},
		QueryTimeout: DEFAULTQUERYTIMEOUT,
	}
}

func (p *NtpSource) pickServerList() []string {
	shuffled := make([]string, len(p.Servers))
	copy(shuffled, p.Servers)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

func (p *NtpSource) UTCNow() (time.Time, error) {
	if p.QueryTimeout < time.Millisecond*100 {
		p.QueryTimeout = DEFAULTQUERYTIMEOUT
	}

	errList := []string{}
	lst := p.pickServerList()
	for i, name := range lst {
		resp, err := ntp.QueryWithOptions(name, ntp.QueryOptions{Timeout: p.QueryTimeout})
		if err != nil {
			errList = append(errList, fmt.Sprintf("server:%v name:%s error: %s", i, name, err))
			continue
		}
		errvalid := resp.Validate()
		if errvalid == nil {
			return time.Now().Add(resp.ClockOffset).UTC(), nil
		}
		errList = append(errList, fmt.Sprintf("server:%v name:%s invalid: %s", i, name, errvalid))
	}

	return time.Time{}, fmt.Errorf("failed NTP servers [%s]", strings.Join(errList, ","))
}
