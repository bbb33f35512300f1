package platform

import (
	"io"

	"boardcon/axigpio"
	"boardcon/core"
	"boardcon/mmio"
	"boardcon/uartps"
)

// MapFunc maps the register window of a peripheral
type MapFunc func(base, size uint32) (mmio.Block, error)

// DevMem maps register windows from physical memory
func DevMem(base, size uint32) (mmio.Block, error) {
	m, err := mmio.Map(base, size)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// MMIO is a Provider over memory-mapped AXI GPIO blocks and PS UARTs. Each
// peripheral is looked up in its config table by base address, mapped and
// initialized.
type MMIO struct {
	GPIOTable axigpio.ConfigTable
	UARTTable uartps.ConfigTable

	// BaudRate is programmed after the UART is initialized. Zero keeps the
	// driver default.
	BaudRate uint32

	Map MapFunc

	closers Closers
}

// NewMMIO builds the provider for a board whose tables are given
func NewMMIO(gpios axigpio.ConfigTable, uarts uartps.ConfigTable, mapFn MapFunc) *MMIO {
	return &MMIO{GPIOTable: gpios, UARTTable: uarts, Map: mapFn}
}

func (p *MMIO) GPIO(base uint32) (core.GPIOBlock, error) {
	cfg, ok := p.GPIOTable.LookupConfig(base)
	if !ok {
		return nil, core.ErrDeviceNotFound
	}
	regs, err := p.mapBlock(base, axigpio.RegSize)
	if err != nil {
		return nil, err
	}
	dev, err := axigpio.CfgInitialize(cfg, regs)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func (p *MMIO) UART(base uint32) (core.SerialPort, error) {
	cfg, ok := p.UARTTable.LookupConfig(base)
	if !ok {
		return nil, core.ErrDeviceNotFound
	}
	regs, err := p.mapBlock(base, uartps.RegSize)
	if err != nil {
		return nil, err
	}
	dev, err := uartps.CfgInitialize(cfg, regs)
	if err != nil {
		return nil, err
	}
	if p.BaudRate != 0 && p.BaudRate != dev.BaudRate() {
		if err := dev.SetBaudRate(p.BaudRate); err != nil {
			return nil, err
		}
	}
	return dev, nil
}

func (p *MMIO) mapBlock(base, size uint32) (mmio.Block, error) {
	mapFn := p.Map
	if mapFn == nil {
		mapFn = DevMem
	}
	regs, err := mapFn(base, size)
	if err != nil {
		return nil, err
	}
	if c, ok := regs.(io.Closer); ok {
		p.closers.Add(c.Close)
	}
	return regs, nil
}

// Close unmaps every register window
func (p *MMIO) Close() error {
	return p.closers.Close()
}
