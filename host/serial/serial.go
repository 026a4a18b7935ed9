package serial

import (
	"io"

	"tinygo.org/x/drivers"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
//
// A Port also satisfies drivers.UART, so code written against the TinyGo
// UART interface runs unchanged on the host.
type Port interface {
	io.ReadWriteCloser
	drivers.UART

	// Flush discards data received but not read yet
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate of the debug UART
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the baud rate of the XMC kits' on-board debugger UART bridge
const DefaultBaud = 115200

// DefaultConfig returns a default configuration for a kit's debug port
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100, // 100ms read timeout
	}
}
