package core

// GPIOBlock is the abstract GPIO peripheral interface that core code uses.
// A block exposes one or two channels of discrete lines. Platform-specific
// implementations handle actual hardware control.
type GPIOBlock interface {
	// SetDataDirection programs the direction mask of a channel.
	// Bits set to 1 are inputs, bits set to 0 are outputs.
	SetDataDirection(channel int, mask uint32) error

	// DiscreteRead reads the current levels of a channel's lines
	DiscreteRead(channel int) (uint32, error)

	// DiscreteWrite drives the output lines of a channel
	DiscreteWrite(channel int, value uint32) error
}

// Provider resolves peripherals by base address. Each call looks up the
// configuration of the peripheral at base and binds it to a handle.
type Provider interface {
	// GPIO returns the GPIO block at base
	GPIO(base uint32) (GPIOBlock, error)

	// UART returns the serial port at base
	UART(base uint32) (SerialPort, error)
}
