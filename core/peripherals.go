package core

// Base addresses of the board's peripherals, as generated by the hardware
// build. Board files may override them.
const (
	ButtonsBaseAddr  uint32 = 0x41200000
	LEDsBaseAddr     uint32 = 0x41210000
	SwitchesBaseAddr uint32 = 0x41220000
	UARTBaseAddr     uint32 = 0xE0001000
)

// All GPIO used by the board sits on channel 1 of its block
const (
	ButtonChannel = 1
	LEDChannel    = 1
	SwitchChannel = 1
)

// ChannelSpec describes one GPIO channel of the board
type ChannelSpec struct {
	Base      uint32
	Channel   int
	Width     int
	Direction uint32
}

// UARTSpec describes the console UART of the board
type UARTSpec struct {
	Base uint32
}

// Board is the peripheral layout brought up by InitPeripherals
type Board struct {
	LEDs     ChannelSpec
	Buttons  ChannelSpec
	Switches ChannelSpec
	UART     UARTSpec
}

// DefaultBoard returns the layout of the reference board: 4 LEDs, 4 buttons,
// 2 switches and the PS UART.
func DefaultBoard() Board {
	return Board{
		LEDs:     ChannelSpec{Base: LEDsBaseAddr, Channel: LEDChannel, Width: 4, Direction: LEDDirection},
		Buttons:  ChannelSpec{Base: ButtonsBaseAddr, Channel: ButtonChannel, Width: 4, Direction: ButtonDirection},
		Switches: ChannelSpec{Base: SwitchesBaseAddr, Channel: SwitchChannel, Width: 2, Direction: SwitchDirection},
		UART:     UARTSpec{Base: UARTBaseAddr},
	}
}

// Peripherals holds the bound handles for the lifetime of the console
type Peripherals struct {
	LEDs     *Channel
	Buttons  *Channel
	Switches *Channel
	UART     SerialPort

	// Status is the result of initialization, reported on the status line
	Status Status
}

// InitPeripherals looks up and binds every peripheral of the board, puts the
// UART in normal mode and programs the GPIO direction masks. The first
// failure aborts initialization with an *InitError.
func InitPeripherals(p Provider, b Board) (*Peripherals, error) {
	leds, err := bindChannel(p, "leds", b.LEDs)
	if err != nil {
		return nil, err
	}
	buttons, err := bindChannel(p, "buttons", b.Buttons)
	if err != nil {
		return nil, err
	}
	switches, err := bindChannel(p, "switches", b.Switches)
	if err != nil {
		return nil, err
	}

	uart, err := p.UART(b.UART.Base)
	if err != nil {
		return nil, newInitError("uart", b.UART.Base, err)
	}
	if err := uart.SetOperMode(OperModeNormal); err != nil {
		return nil, newInitError("uart", b.UART.Base, err)
	}

	// Inputs before outputs.
	for _, ch := range []struct {
		c    *Channel
		spec ChannelSpec
	}{
		{switches, b.Switches},
		{buttons, b.Buttons},
		{leds, b.LEDs},
	} {
		if err := ch.c.SetDirection(ch.spec.Direction); err != nil {
			return nil, newInitError(ch.c.Name, ch.spec.Base, err)
		}
	}

	DebugPrintln("peripherals ready: leds=" + hex32(b.LEDs.Base) +
		" buttons=" + hex32(b.Buttons.Base) +
		" switches=" + hex32(b.Switches.Base) +
		" uart=" + hex32(b.UART.Base))

	return &Peripherals{
		LEDs:     leds,
		Buttons:  buttons,
		Switches: switches,
		UART:     uart,
		Status:   StatusSuccess,
	}, nil
}

func bindChannel(p Provider, name string, spec ChannelSpec) (*Channel, error) {
	if spec.Channel != 1 && spec.Channel != 2 {
		return nil, newInitError(name, spec.Base, ErrInvalidChannel)
	}
	block, err := p.GPIO(spec.Base)
	if err != nil {
		return nil, newInitError(name, spec.Base, err)
	}
	return NewChannel(name, spec.Base, spec.Channel, spec.Width, block), nil
}
