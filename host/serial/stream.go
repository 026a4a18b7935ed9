//go:build !wasm

package serial

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// DialTimeout bounds connecting to a stream
const DialTimeout = 5 * time.Second

// timedConn gives every Read a deadline, the way ReadTimeout does for a
// serial port
type timedConn struct {
	net.Conn
	timeout time.Duration
}

func (c timedConn) Read(b []byte) (int, error) {
	if err := c.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(b)
}

// Dial connects to a TCP byte stream, such as the port a debugger forwards
// the target's semihosting output to. readTimeout bounds each Buffered poll.
func Dial(addr string, readTimeout time.Duration) (Port, error) {
	if readTimeout <= 0 {
		return nil, fmt.Errorf("read timeout must be positive, got %v", readTimeout)
	}
	conn, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return &NativePort{
		port: timedConn{Conn: conn, timeout: readTimeout},
		idle: func(err error) bool { return errors.Is(err, os.ErrDeadlineExceeded) },
	}, nil
}
