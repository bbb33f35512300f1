// Package periphgpio assembles a GPIO channel from individual Linux GPIO
// lines through periph.io, for boards whose LEDs, buttons and switches are
// wired to SoC pins instead of an AXI GPIO block.
package periphgpio

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"boardcon/core"
)

// Bank is a single-channel GPIO block over a list of pins, least
// significant bit first.
type Bank struct {
	pins []gpio.PinIO
	dir  uint32
}

// NewBank creates a bank over pins. Every line starts as an input.
func NewBank(pins ...gpio.PinIO) *Bank {
	return &Bank{pins: pins, dir: allBits(len(pins))}
}

// Open initializes the periph host drivers and resolves each pin by name
// (e.g. "GPIO17").
func Open(names []string) (*Bank, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	pins := make([]gpio.PinIO, 0, len(names))
	for _, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, fmt.Errorf("pin %s: %w", n, core.ErrDeviceNotFound)
		}
		pins = append(pins, p)
	}
	return NewBank(pins...), nil
}

// Width returns the number of lines in the bank
func (b *Bank) Width() int {
	return len(b.pins)
}

func (b *Bank) check(channel int) error {
	if channel != 1 {
		return core.ErrInvalidChannel
	}
	return nil
}

// SetDataDirection configures each line: 1 = input, 0 = output driven low
func (b *Bank) SetDataDirection(channel int, mask uint32) error {
	if err := b.check(channel); err != nil {
		return err
	}
	if mask&^allBits(len(b.pins)) != 0 {
		return core.ErrInvalidParam
	}
	for i, p := range b.pins {
		var err error
		if mask&(1<<uint(i)) != 0 {
			err = p.In(gpio.PullNoChange, gpio.NoEdge)
		} else {
			err = p.Out(gpio.Low)
		}
		if err != nil {
			return fmt.Errorf("pin %s: %w", p.Name(), err)
		}
	}
	b.dir = mask
	return nil
}

// DiscreteRead samples every line of the bank
func (b *Bank) DiscreteRead(channel int) (uint32, error) {
	if err := b.check(channel); err != nil {
		return 0, err
	}
	var v uint32
	for i, p := range b.pins {
		if p.Read() == gpio.High {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// DiscreteWrite drives the output lines; input lines are left alone
func (b *Bank) DiscreteWrite(channel int, value uint32) error {
	if err := b.check(channel); err != nil {
		return err
	}
	for i, p := range b.pins {
		bit := uint32(1) << uint(i)
		if b.dir&bit != 0 {
			continue
		}
		if err := p.Out(gpio.Level(value&bit != 0)); err != nil {
			return fmt.Errorf("pin %s: %w", p.Name(), err)
		}
	}
	return nil
}

func allBits(n int) uint32 {
	if n >= 32 {
		return 0xFFFFFFFF
	}
	return uint32(1)<<uint(n) - 1
}
