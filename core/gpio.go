package core

// Direction masks for the board's channels
const (
	LEDDirection    uint32 = 0      // all output
	ButtonDirection uint32 = 0b1111 // all input
	SwitchDirection uint32 = 0b11   // all input
)

// Channel is a bound GPIO channel. It enforces that the direction is
// programmed exactly once before any discrete access.
type Channel struct {
	Name   string // board name, e.g. "leds"
	Base   uint32 // base address of the owning block
	Number int    // channel number within the block (1 or 2)
	Width  int    // number of discrete lines

	block      GPIOBlock
	direction  uint32
	configured bool
}

// NewChannel binds channel number of block. Width is clamped to 1..32.
func NewChannel(name string, base uint32, number, width int, block GPIOBlock) *Channel {
	if width < 1 {
		width = 1
	}
	if width > 32 {
		width = 32
	}
	return &Channel{
		Name:   name,
		Base:   base,
		Number: number,
		Width:  width,
		block:  block,
	}
}

// lineMask covers the channel's lines
func (c *Channel) lineMask() uint32 {
	if c.Width >= 32 {
		return 0xffffffff
	}
	return (1 << uint(c.Width)) - 1
}

// SetDirection programs the direction mask. It may be called once.
func (c *Channel) SetDirection(mask uint32) error {
	if c.configured {
		return ErrAlreadyConfigured
	}
	if mask&^c.lineMask() != 0 {
		return ErrInvalidParam
	}
	if err := c.block.SetDataDirection(c.Number, mask); err != nil {
		return err
	}
	c.direction = mask
	c.configured = true
	return nil
}

// Direction returns the programmed mask and whether it has been set
func (c *Channel) Direction() (uint32, bool) {
	return c.direction, c.configured
}

// Read returns the current level of the channel's lines
func (c *Channel) Read() (uint32, error) {
	if !c.configured {
		return 0, ErrNotConfigured
	}
	v, err := c.block.DiscreteRead(c.Number)
	if err != nil {
		return 0, err
	}
	return v & c.lineMask(), nil
}

// Write drives the channel's lines. Values wider than the channel are rejected.
func (c *Channel) Write(value uint32) error {
	if !c.configured {
		return ErrNotConfigured
	}
	if value&^c.lineMask() != 0 {
		return ErrInvalidParam
	}
	return c.block.DiscreteWrite(c.Number, value)
}
