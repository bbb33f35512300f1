//go:build rp2040

package main

import (
	"machine"
	"time"

	"boardcon/core"
	"boardcon/platform"
	"boardcon/tinyuart"
)

// Pin assignment of the bring-up board
var (
	ledPins    = []machine.Pin{machine.GPIO12, machine.GPIO13, machine.GPIO14, machine.GPIO15}
	buttonPins = []machine.Pin{machine.GPIO16, machine.GPIO17, machine.GPIO18, machine.GPIO19}
	switchPins = []machine.Pin{machine.GPIO20, machine.GPIO21}
)

const pollInterval = 100 * time.Microsecond

func main() {
	InitDebugUART()
	core.SetDebugWriter(DebugPrintln)
	core.SetDebugEnabled(debugEnabled)

	console := machine.UART0
	if err := console.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GPIO0,
		RX:       machine.GPIO1,
	}); err != nil {
		halt("console uart: " + err.Error())
	}

	// The board's base addresses key the pin banks so the default layout
	// applies unchanged.
	provider := platform.Split{
		GPIOs: platform.Banks{
			core.LEDsBaseAddr:     NewPinBank(machine.PinInputPulldown, ledPins...),
			core.ButtonsBaseAddr:  NewPinBank(machine.PinInputPulldown, buttonPins...),
			core.SwitchesBaseAddr: NewPinBank(machine.PinInputPulldown, switchPins...),
		},
		UARTs: platform.Port{SerialPort: tinyuart.New(console)},
	}

	periph, err := core.InitPeripherals(provider, core.DefaultBoard())
	if err != nil {
		halt(err.Error())
	}

	idle := func() { time.Sleep(pollInterval) }
	con := core.NewConsole(periph,
		&core.PollingReader{Port: periph.UART, Idle: idle},
		core.PortWriter{Port: periph.UART, Idle: idle},
	)
	if err := con.Run(); err != nil {
		halt("console: " + err.Error())
	}

	// Nothing to return to; keep the LEDs as the last command left them.
	for {
		time.Sleep(time.Hour)
	}
}

func halt(msg string) {
	DebugPrintln(msg)
	for {
		time.Sleep(time.Hour)
	}
}
