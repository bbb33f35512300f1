package serial

import (
	"errors"
	"io"

	"boardcon/core"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Standard streams of the process (simulation)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyPS0", "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the console settings of the board: 115200 8N1
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// Console adapts a Port to the serial port interface of the command loop
type Console struct {
	port Port

	// timeouts is set when the port returns io.EOF on an expired read
	// timeout rather than at end of input
	timeouts bool
}

// NewConsole wraps a port. When the port was opened with a read timeout,
// an empty read reports no data instead of end of input.
func NewConsole(p Port, readTimeout bool) *Console {
	return &Console{port: p, timeouts: readTimeout}
}

// Recv reads whatever the port has, returning 0 when the read timed out
func (c *Console) Recv(buf []byte) (int, error) {
	n, err := c.port.Read(buf)
	if c.timeouts && n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	if n > 0 && errors.Is(err, io.EOF) {
		err = nil
	}
	return n, err
}

// Send writes buf to the port
func (c *Console) Send(buf []byte) (int, error) {
	return c.port.Write(buf)
}

// SetOperMode accepts only normal mode; a host tty has no loopback control
func (c *Console) SetOperMode(mode core.OperMode) error {
	if mode != core.OperModeNormal {
		return core.ErrUnsupported
	}
	return nil
}

// Close flushes and closes the port
func (c *Console) Close() error {
	ferr := c.port.Flush()
	if err := c.port.Close(); err != nil {
		return err
	}
	return ferr
}
