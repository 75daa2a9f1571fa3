package oob

import (
	"io"
	"log"
	"net"
	"time"
)

// Negotiate performs OOB protocol negotiation with a telnet client. It
// sends WILL for GMCP and MSSP, waits up to timeout for responses, and
// returns the negotiated capabilities.
func Negotiate(conn net.Conn, timeout time.Duration) *Capabilities {
	caps := NewCapabilities()

	conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	conn.Write([]byte{IAC, WILL, TeloptGMCP})
	conn.Write([]byte{IAC, WILL, TeloptMSSP})

	conn.SetReadDeadline(time.Now().Add(timeout))
	buf := make([]byte, 256)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				break
			}
			if err == io.EOF {
				break
			}
			log.Printf("oob: negotiate read: %v", err)
			break
		}

		for i := 0; i < n-2; i++ {
			if buf[i] != IAC {
				continue
			}
			cmd, opt := buf[i+1], buf[i+2]
			switch {
			case cmd == DO && opt == TeloptGMCP:
				caps.GMCP = true
			case cmd == DO && opt == TeloptMSSP:
				caps.MSSP = true
			}
			i += 2
		}

		if caps.GMCP && caps.MSSP {
			break
		}
	}

	// Clear deadlines for normal operation.
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	if caps.HasAny() {
		log.Printf("oob: negotiated gmcp=%v mssp=%v", caps.GMCP, caps.MSSP)
	}
	return caps
}
