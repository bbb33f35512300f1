// Package axigpio drives the AXI GPIO peripheral: one or two channels of up
// to 32 discrete lines, each channel with a data and a tri-state register.
package axigpio

import (
	"boardcon/core"
	"boardcon/mmio"
)

// Register offsets
const (
	DataOffset  uint32 = 0x00 // channel 1 data
	TriOffset   uint32 = 0x04 // channel 1 tri-state, 1 = input
	Data2Offset uint32 = 0x08 // channel 2 data
	Tri2Offset  uint32 = 0x0C // channel 2 tri-state

	channelStride uint32 = 0x08
)

// RegSize is the size of the register window used by the driver
const RegSize uint32 = 0x10

// Config describes one AXI GPIO instance of the hardware design
type Config struct {
	BaseAddress uint32
	IsDual      bool
}

// ConfigTable lists the AXI GPIO instances of the hardware design
type ConfigTable []Config

// LookupConfig finds the instance at base
func (t ConfigTable) LookupConfig(base uint32) (*Config, bool) {
	for i := range t {
		if t[i].BaseAddress == base {
			return &t[i], true
		}
	}
	return nil, false
}

// Device is an initialized AXI GPIO instance
type Device struct {
	cfg  Config
	regs mmio.Block
}

// CfgInitialize binds a device to its configuration and register window
func CfgInitialize(cfg *Config, regs mmio.Block) (*Device, error) {
	if cfg == nil || regs == nil {
		return nil, core.ErrDeviceNotFound
	}
	return &Device{cfg: *cfg, regs: regs}, nil
}

// Config returns the configuration the device was initialized with
func (d *Device) Config() Config {
	return d.cfg
}

// channelOffset returns the offset of the channel's register pair
func (d *Device) channelOffset(channel int) (uint32, error) {
	switch {
	case channel == 1:
		return 0, nil
	case channel == 2 && d.cfg.IsDual:
		return channelStride, nil
	default:
		return 0, core.ErrInvalidChannel
	}
}

// SetDataDirection writes the tri-state register of a channel.
// Bits set to 0 are output and bits set to 1 are input.
func (d *Device) SetDataDirection(channel int, mask uint32) error {
	off, err := d.channelOffset(channel)
	if err != nil {
		return err
	}
	d.regs.Write32(off+TriOffset, mask)
	return nil
}

// GetDataDirection reads back the tri-state register of a channel
func (d *Device) GetDataDirection(channel int) (uint32, error) {
	off, err := d.channelOffset(channel)
	if err != nil {
		return 0, err
	}
	return d.regs.Read32(off + TriOffset), nil
}

// DiscreteRead reads the data register of a channel
func (d *Device) DiscreteRead(channel int) (uint32, error) {
	off, err := d.channelOffset(channel)
	if err != nil {
		return 0, err
	}
	return d.regs.Read32(off + DataOffset), nil
}

// DiscreteWrite writes the data register of a channel
func (d *Device) DiscreteWrite(channel int, value uint32) error {
	off, err := d.channelOffset(channel)
	if err != nil {
		return err
	}
	d.regs.Write32(off+DataOffset, value)
	return nil
}

// DiscreteSet drives the lines in mask high, leaving the others alone
func (d *Device) DiscreteSet(channel int, mask uint32) error {
	off, err := d.channelOffset(channel)
	if err != nil {
		return err
	}
	v := d.regs.Read32(off + DataOffset)
	d.regs.Write32(off+DataOffset, v|mask)
	return nil
}

// DiscreteClear drives the lines in mask low, leaving the others alone
func (d *Device) DiscreteClear(channel int, mask uint32) error {
	off, err := d.channelOffset(channel)
	if err != nil {
		return err
	}
	v := d.regs.Read32(off + DataOffset)
	d.regs.Write32(off+DataOffset, v&^mask)
	return nil
}
