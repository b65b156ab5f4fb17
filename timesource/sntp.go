/*
Minimal SNTP exchange.

Single 48 byte mode 3 request datagram, single reply. Only transmit timestamp
seconds are used, good enough for setting RTC with one second resolution.
Use NtpSource when full client with validation is wanted.
*/
package timesource

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"
)

const (
	NTPPORT = "123"

	//Offset between NTP era 1900 epoch and unix epoch in seconds
	NTPDELTA = 2208988800

	//Transmit timestamp seconds live at this byte offset in reply
	TRANSMITOFFSET = 40

	REQUESTSIZE = 48
	//Reply must reach end of transmit timestamp seconds
	MINREPLYSIZE = TRANSMITOFFSET + 4

	//LI=0 VN=3 mode=3 client request marker
	REQUESTMODE = 0x1B

	DEFAULTQUERYTIMEOUT = 2 * time.Second
)

// SntpSource queries one server with raw SNTP datagram exchange
type SntpSource struct {
	Host    string        //Plain host gets :123 appended, host:port used as is
	Timeout time.Duration //Zero means DEFAULTQUERYTIMEOUT
}

func hostPort(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, NTPPORT)
}

// UTCNow does one request/response exchange and returns UTC time from reply.
// Resolve failure wraps ErrNetworkUnavailable, everything else is transient
func (p *SntpSource) UTCNow() (time.Time, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DEFAULTQUERYTIMEOUT
	}

	raddr, errResolve := net.ResolveUDPAddr("udp", hostPort(p.Host))
	if errResolve != nil {
		return time.Time{}, fmt.Errorf("resolving %v: %w", p.Host, ErrNetworkUnavailable)
	}

	conn, errDial := net.DialUDP("udp", nil, raddr)
	if errDial != nil {
		return time.Time{}, fmt.Errorf("dial %v err=%v", raddr, errDial)
	}
	defer conn.Close() //Socket is scoped to this one attempt

	errDeadline := conn.SetDeadline(time.Now().Add(timeout))
	if errDeadline != nil {
		return time.Time{}, errDeadline
	}

	req := make([]byte, REQUESTSIZE)
	req[0] = REQUESTMODE
	_, errWrite := conn.Write(req)
	if errWrite != nil {
		return time.Time{}, fmt.Errorf("sending request to %v err=%v", raddr, errWrite)
	}

	reply := make([]byte, REQUESTSIZE)
	n, errRead := conn.Read(reply)
	if errRead != nil {
		return time.Time{}, fmt.Errorf("waiting reply from %v err=%v", raddr, errRead)
	}
	if n < MINREPLYSIZE {
		return time.Time{}, fmt.Errorf("reply from %v too short, %v bytes", raddr, n)
	}

	secs := binary.BigEndian.Uint32(reply[TRANSMITOFFSET : TRANSMITOFFSET+4])
	return time.Unix(int64(secs)-NTPDELTA, 0).UTC(), nil
}
