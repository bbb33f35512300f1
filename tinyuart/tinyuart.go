// Package tinyuart serves the command loop over any TinyGo UART driver.
package tinyuart

import (
	"tinygo.org/x/drivers"

	"boardcon/core"
)

// Port adapts a drivers.UART (machine.UART satisfies it) to
// core.SerialPort.
type Port struct {
	uart drivers.UART
}

// New wraps uart
func New(uart drivers.UART) *Port {
	return &Port{uart: uart}
}

// Recv returns whatever the receive buffer holds, never waiting
func (p *Port) Recv(buf []byte) (int, error) {
	n := p.uart.Buffered()
	if n == 0 || len(buf) == 0 {
		return 0, nil
	}
	if n < len(buf) {
		buf = buf[:n]
	}
	return p.uart.Read(buf)
}

// Send writes buf to the UART
func (p *Port) Send(buf []byte) (int, error) {
	return p.uart.Write(buf)
}

// SetOperMode accepts only normal mode; MCU UARTs expose no loopback control
// through the driver interface.
func (p *Port) SetOperMode(mode core.OperMode) error {
	if mode != core.OperModeNormal {
		return core.ErrUnsupported
	}
	return nil
}
