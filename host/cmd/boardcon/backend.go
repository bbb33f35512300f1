package main

import (
	"fmt"
	"io"
	"time"

	"boardcon/axigpio"
	"boardcon/config"
	"boardcon/core"
	"boardcon/host/periphgpio"
	"boardcon/host/serial"
	"boardcon/platform"
	"boardcon/uartps"
)

// uartPollInterval paces the busy-poll of the register-mapped UART
const uartPollInterval = 500 * time.Microsecond

// backends is everything the console needs from the host
type backends struct {
	provider core.Provider
	closers  platform.Closers

	// idle runs between empty polls of the console port
	idle func()
}

func openBackends(cfg *config.Config, stdin io.Reader, stdout io.Writer) (*backends, error) {
	be := &backends{}
	var split platform.Split
	var mm *platform.MMIO

	switch cfg.Backend.GPIO {
	case config.GPIODevMem:
		mm = platform.NewMMIO(gpioTable(cfg), uartTable(cfg), platform.DevMem)
		mm.BaudRate = cfg.Board.UART.Baud
		be.closers.Add(mm.Close)
		split.GPIOs = mm
	case config.GPIOSim:
		split.GPIOs = platform.NewSimBoard(cfg.Layout(), cfg.Sim.Buttons, cfg.Sim.Switches)
	case config.GPIOPeriph:
		banks, err := openBanks(cfg)
		if err != nil {
			return nil, err
		}
		split.GPIOs = banks
	default:
		return nil, fmt.Errorf("unknown gpio backend %q", cfg.Backend.GPIO)
	}

	switch cfg.Backend.Console {
	case config.ConsoleUARTPS:
		if mm == nil {
			be.closers.Close()
			return nil, fmt.Errorf("console %q needs gpio backend %q", config.ConsoleUARTPS, config.GPIODevMem)
		}
		split.UARTs = mm
		be.idle = func() { time.Sleep(uartPollInterval) }
	case config.ConsoleTTY:
		con, err := serial.OpenConsole(&serial.Config{
			Device:      cfg.TTY.Device,
			Baud:        cfg.TTY.Baud,
			ReadTimeout: cfg.TTY.ReadTimeoutMS,
		})
		if err != nil {
			be.closers.Close()
			return nil, err
		}
		be.closers.Add(con.Close)
		split.UARTs = platform.Port{SerialPort: con}
	case config.ConsoleStdio:
		split.UARTs = platform.Port{SerialPort: serial.NewConsole(serial.NewStream(stdin, stdout), false)}
	default:
		be.closers.Close()
		return nil, fmt.Errorf("unknown console backend %q", cfg.Backend.Console)
	}

	be.provider = split
	return be, nil
}

// gpioTable lists the AXI GPIO blocks named by the board file. Banks that
// share a block produce one entry.
func gpioTable(cfg *config.Config) axigpio.ConfigTable {
	var table axigpio.ConfigTable
	for _, g := range []config.GPIOConfig{cfg.Board.LEDs, cfg.Board.Buttons, cfg.Board.Switches} {
		if c, ok := table.LookupConfig(g.Base); ok {
			c.IsDual = c.IsDual || g.Dual
			continue
		}
		table = append(table, axigpio.Config{BaseAddress: g.Base, IsDual: g.Dual})
	}
	return table
}

func uartTable(cfg *config.Config) uartps.ConfigTable {
	return uartps.ConfigTable{{
		BaseAddress:  cfg.Board.UART.Base,
		InputClockHz: cfg.Board.UART.ClockHz,
	}}
}

func openBanks(cfg *config.Config) (platform.Banks, error) {
	banks := platform.Banks{}
	for _, b := range []struct {
		base uint32
		pins []string
	}{
		{cfg.Board.LEDs.Base, cfg.Periph.LEDs},
		{cfg.Board.Buttons.Base, cfg.Periph.Buttons},
		{cfg.Board.Switches.Base, cfg.Periph.Switches},
	} {
		bank, err := periphgpio.Open(b.pins)
		if err != nil {
			return nil, err
		}
		banks[b.base] = bank
	}
	return banks, nil
}
