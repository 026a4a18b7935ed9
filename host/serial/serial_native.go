//go:build !wasm

package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port  io.ReadWriteCloser
	flush func() error
	cfg   *Config

	// idle reports whether a read error only means no data arrived in time.
	// nil means io.EOF, which is how tarm reports a read timeout.
	idle func(error) bool

	// read-ahead for Buffered
	buf     []byte
	scratch [64]byte
	err     error // held back for the next Read
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ReadTimeout <= 0 {
		// Buffered must not block forever
		return nil, fmt.Errorf("read timeout must be positive, got %dms", cfg.ReadTimeout)
	}

	serialConfig := &serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	}

	port, err := serial.OpenPort(serialConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port:  port,
		flush: port.Flush,
		cfg:   cfg,
	}, nil
}

// Read reads data from the serial port, read-ahead data first
func (p *NativePort) Read(b []byte) (int, error) {
	if len(p.buf) > 0 {
		n := copy(b, p.buf)
		p.buf = p.buf[n:]
		return n, nil
	}
	if p.err != nil {
		err := p.err
		p.err = nil
		return 0, err
	}
	return p.port.Read(b)
}

// Write writes data to the serial port
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Buffered returns the number of bytes ready to be read. When nothing is
// buffered it waits up to the read timeout for new data. A failed read
// counts as one readable byte so that the next Read reports the error.
func (p *NativePort) Buffered() int {
	if len(p.buf) == 0 && p.err == nil {
		n, err := p.port.Read(p.scratch[:])
		p.buf = append(p.buf, p.scratch[:n]...)
		if err != nil && !p.isIdle(err) {
			p.err = err
		}
	}
	if len(p.buf) == 0 && p.err != nil {
		return 1
	}
	return len(p.buf)
}

func (p *NativePort) isIdle(err error) bool {
	if p.idle != nil {
		return p.idle(err)
	}
	return errors.Is(err, io.EOF)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush drops read-ahead data and discards pending input
func (p *NativePort) Flush() error {
	p.buf = p.buf[:0]
	if p.flush != nil {
		return p.flush()
	}
	return nil
}
