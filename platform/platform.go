// Package platform assembles core.Provider implementations from the
// register drivers and the host backends.
package platform

import (
	"errors"

	"boardcon/core"
)

// GPIOFactory resolves GPIO blocks by base address
type GPIOFactory interface {
	GPIO(base uint32) (core.GPIOBlock, error)
}

// UARTFactory resolves serial ports by base address
type UARTFactory interface {
	UART(base uint32) (core.SerialPort, error)
}

// Split is a Provider whose GPIO blocks and serial port come from different
// backends, e.g. Linux GPIO lines with a tty console.
type Split struct {
	GPIOs GPIOFactory
	UARTs UARTFactory
}

func (s Split) GPIO(base uint32) (core.GPIOBlock, error) {
	if s.GPIOs == nil {
		return nil, core.ErrDeviceNotFound
	}
	return s.GPIOs.GPIO(base)
}

func (s Split) UART(base uint32) (core.SerialPort, error) {
	if s.UARTs == nil {
		return nil, core.ErrDeviceNotFound
	}
	return s.UARTs.UART(base)
}

// Banks maps base addresses to GPIO blocks assembled elsewhere
type Banks map[uint32]core.GPIOBlock

func (b Banks) GPIO(base uint32) (core.GPIOBlock, error) {
	blk, ok := b[base]
	if !ok {
		return nil, core.ErrDeviceNotFound
	}
	return blk, nil
}

// Port serves one serial port for whatever base address the board names
type Port struct {
	SerialPort core.SerialPort
}

func (p Port) UART(uint32) (core.SerialPort, error) {
	if p.SerialPort == nil {
		return nil, core.ErrDeviceNotFound
	}
	return p.SerialPort, nil
}

// Closers collects resources to release once the console has finished
type Closers []func() error

// Add registers a release function
func (c *Closers) Add(fn func() error) {
	*c = append(*c, fn)
}

// Close releases every resource in reverse order of acquisition
func (c *Closers) Close() error {
	var errs []error
	for i := len(*c) - 1; i >= 0; i-- {
		if err := (*c)[i](); err != nil {
			errs = append(errs, err)
		}
	}
	*c = nil
	return errors.Join(errs...)
}
