// Package uartps drives the processing-system UART of the Zynq-7000: a
// 64-byte FIFO UART polled through its channel status register.
package uartps

import (
	"boardcon/core"
	"boardcon/mmio"
)

// Register offsets
const (
	CROffset      uint32 = 0x00 // control
	MROffset      uint32 = 0x04 // mode
	IEROffset     uint32 = 0x08 // interrupt enable
	IDROffset     uint32 = 0x0C // interrupt disable
	IMROffset     uint32 = 0x10 // interrupt mask
	ISROffset     uint32 = 0x14 // interrupt status
	BaudGenOffset uint32 = 0x18 // baud rate generator
	RxTOutOffset  uint32 = 0x1C // receiver timeout
	RxWMOffset    uint32 = 0x20 // receiver FIFO trigger level
	SROffset      uint32 = 0x2C // channel status
	FIFOOffset    uint32 = 0x30 // transmit and receive FIFO
	BaudDivOffset uint32 = 0x34 // baud rate divider
)

// RegSize is the size of the register window used by the driver
const RegSize uint32 = 0x48

// Control register bits
const (
	CRRxRst   uint32 = 0x001
	CRTxRst   uint32 = 0x002
	CRRxEn    uint32 = 0x004
	CRRxDis   uint32 = 0x008
	CRTxEn    uint32 = 0x010
	CRTxDis   uint32 = 0x020
	CRStopBrk uint32 = 0x100

	crEnableMask = CRRxEn | CRRxDis | CRTxEn | CRTxDis
)

// Mode register fields
const (
	MRClkSel      uint32 = 0x001 // input clock divided by 8
	MRCharLen8    uint32 = 0x000
	MRParityNone  uint32 = 0x020
	MRStopMode1   uint32 = 0x000
	MRChModeNorm  uint32 = 0x000
	MRChModeEcho  uint32 = 0x100
	MRChModeLLoop uint32 = 0x200
	MRChModeRLoop uint32 = 0x300
	MRChModeMask  uint32 = 0x300
)

// Channel status bits
const (
	SRRxOvr   uint32 = 0x01
	SRRxEmpty uint32 = 0x02
	SRRxFull  uint32 = 0x04
	SRTxEmpty uint32 = 0x08
	SRTxFull  uint32 = 0x10
)

// IXRMask covers every interrupt source
const IXRMask uint32 = 0x3FFF

// Clock and baud defaults
const (
	DefaultInputClockHz uint32 = 100000000
	DefaultBaudRate     uint32 = 115200
	DefaultRxWatermark  uint32 = 8

	MinBaudRate uint32 = 110
	MaxBaudRate uint32 = 921600

	maxBaudErrorPercent = 3
)

// Config describes one PS UART instance of the hardware design
type Config struct {
	BaseAddress  uint32
	InputClockHz uint32
}

// ConfigTable lists the PS UART instances of the hardware design
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

// Device is an initialized PS UART
type Device struct {
	cfg  Config
	regs mmio.Block
	baud uint32
}

// CfgInitialize binds a device to its configuration and register window and
// applies the defaults: 115200 baud, 8N1, normal mode, FIFOs reset,
// interrupts disabled, receiver and transmitter enabled.
func CfgInitialize(cfg *Config, regs mmio.Block) (*Device, error) {
	if cfg == nil || regs == nil {
		return nil, core.ErrDeviceNotFound
	}
	d := &Device{cfg: *cfg, regs: regs}
	if d.cfg.InputClockHz == 0 {
		d.cfg.InputClockHz = DefaultInputClockHz
	}

	if err := d.SetBaudRate(DefaultBaudRate); err != nil {
		return nil, err
	}

	regs.Write32(CROffset, CRRxRst|CRTxRst)
	regs.Write32(MROffset, MRCharLen8|MRParityNone|MRStopMode1|MRChModeNorm)
	regs.Write32(RxWMOffset, DefaultRxWatermark)
	regs.Write32(RxTOutOffset, 0)
	regs.Write32(IDROffset, IXRMask)
	regs.Write32(CROffset, CRRxEn|CRTxEn|CRStopBrk)

	return d, nil
}

// Config returns the configuration the device was initialized with
func (d *Device) Config() Config {
	return d.cfg
}

// BaudRate returns the rate last programmed
func (d *Device) BaudRate() uint32 {
	return d.baud
}

// SetBaudRate programs the divider pair closest to baud. Rates that cannot
// be reached within 3% are rejected.
func (d *Device) SetBaudRate(baud uint32) error {
	if baud < MinBaudRate || baud > MaxBaudRate {
		return core.ErrInvalidParam
	}
	cd, bdiv, ok := baudDivisors(d.cfg.InputClockHz, baud)
	if !ok {
		return core.ErrInvalidParam
	}

	cr := d.regs.Read32(CROffset)
	d.regs.Write32(CROffset, (cr&^crEnableMask)|CRRxDis|CRTxDis)

	d.regs.Write32(MROffset, d.regs.Read32(MROffset)&^MRClkSel)
	d.regs.Write32(BaudGenOffset, cd)
	d.regs.Write32(BaudDivOffset, bdiv)

	d.regs.Write32(CROffset, (cr&^crEnableMask)|CRRxEn|CRTxEn)
	d.baud = baud
	return nil
}

// baudDivisors searches the generator/divider pair with the smallest rate
// error: baud = clk / (cd * (bdiv + 1)), cd in 2..65535, bdiv in 4..254.
func baudDivisors(clk, baud uint32) (cd, bdiv uint32, ok bool) {
	bestErr := baud
	for div := uint32(4); div < 255; div++ {
		c := clk / (baud * (div + 1))
		if c < 2 || c > 65535 {
			continue
		}
		actual := clk / (c * (div + 1))
		e := actual - baud
		if actual < baud {
			e = baud - actual
		}
		if e < bestErr {
			bestErr, cd, bdiv = e, c, div
		}
	}
	if cd == 0 || bestErr*100 > baud*maxBaudErrorPercent {
		return 0, 0, false
	}
	return cd, bdiv, true
}

// SetOperMode selects normal, auto-echo, local or remote loopback
func (d *Device) SetOperMode(mode core.OperMode) error {
	var chmode uint32
	switch mode {
	case core.OperModeNormal:
		chmode = MRChModeNorm
	case core.OperModeAutoEcho:
		chmode = MRChModeEcho
	case core.OperModeLocalLoop:
		chmode = MRChModeLLoop
	case core.OperModeRemoteLoop:
		chmode = MRChModeRLoop
	default:
		return core.ErrInvalidParam
	}
	mr := d.regs.Read32(MROffset)
	d.regs.Write32(MROffset, (mr&^MRChModeMask)|chmode)
	return nil
}

// GetOperMode reads the channel mode back from the mode register
func (d *Device) GetOperMode() core.OperMode {
	switch d.regs.Read32(MROffset) & MRChModeMask {
	case MRChModeEcho:
		return core.OperModeAutoEcho
	case MRChModeLLoop:
		return core.OperModeLocalLoop
	case MRChModeRLoop:
		return core.OperModeRemoteLoop
	default:
		return core.OperModeNormal
	}
}

// IsReceiveData reports whether the receive FIFO holds data
func (d *Device) IsReceiveData() bool {
	return d.regs.Read32(SROffset)&SRRxEmpty == 0
}

// IsTransmitEmpty reports whether the transmit FIFO has drained
func (d *Device) IsTransmitEmpty() bool {
	return d.regs.Read32(SROffset)&SRTxEmpty != 0
}

// Recv drains up to len(buf) bytes from the receive FIFO without waiting
func (d *Device) Recv(buf []byte) (int, error) {
	n := 0
	for n < len(buf) && d.IsReceiveData() {
		buf[n] = byte(d.regs.Read32(FIFOOffset))
		n++
	}
	return n, nil
}

// Send fills the transmit FIFO with up to len(buf) bytes without waiting
func (d *Device) Send(buf []byte) (int, error) {
	n := 0
	for n < len(buf) && d.regs.Read32(SROffset)&SRTxFull == 0 {
		d.regs.Write32(FIFOOffset, uint32(buf[n]))
		n++
	}
	return n, nil
}
