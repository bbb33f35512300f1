//go:build rp2040

package main

import (
	"machine"

	"boardcon/core"
)

// PinBank implements core.GPIOBlock over a run of machine pins, least
// significant bit first. Only channel 1 exists.
type PinBank struct {
	pins  []machine.Pin
	input machine.PinMode
	dir   uint32
}

// NewPinBank creates a bank whose input lines use the given mode
// (machine.PinInputPulldown for active-high buttons).
func NewPinBank(input machine.PinMode, pins ...machine.Pin) *PinBank {
	return &PinBank{pins: pins, input: input}
}

func (b *PinBank) SetDataDirection(channel int, mask uint32) error {
	if channel != 1 {
		return core.ErrInvalidChannel
	}
	if len(b.pins) < 32 && mask>>uint(len(b.pins)) != 0 {
		return core.ErrInvalidParam
	}
	for i, p := range b.pins {
		if mask&(1<<uint(i)) != 0 {
			p.Configure(machine.PinConfig{Mode: b.input})
		} else {
			p.Configure(machine.PinConfig{Mode: machine.PinOutput})
			p.Low()
		}
	}
	b.dir = mask
	return nil
}

func (b *PinBank) DiscreteRead(channel int) (uint32, error) {
	if channel != 1 {
		return 0, core.ErrInvalidChannel
	}
	var v uint32
	for i, p := range b.pins {
		if p.Get() {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

func (b *PinBank) DiscreteWrite(channel int, value uint32) error {
	if channel != 1 {
		return core.ErrInvalidChannel
	}
	for i, p := range b.pins {
		bit := uint32(1) << uint(i)
		if b.dir&bit == 0 {
			p.Set(value&bit != 0)
		}
	}
	return nil
}
