package core

import (
	"errors"
	"io"
)

// Console is the serial read-eval loop. It runs on a single goroutine and
// blocks on its input for every byte.
type Console struct {
	in       io.ByteReader
	out      io.Writer
	periph   *Peripherals
	dispatch *Dispatcher
	line     *LineBuffer
	ignoreLF bool

	// sampled once per line, before dispatch
	buttons  uint32
	switches uint32

	done bool
}

// Option configures a Console
type Option func(*Console)

// WithLineSize sets the command line capacity (LineSize by default)
func WithLineSize(n int) Option {
	return func(c *Console) { c.line = NewLineBuffer(n) }
}

// WithIgnoreLF drops '\n' bytes so CRLF terminals work
func WithIgnoreLF(ignore bool) Option {
	return func(c *Console) { c.ignoreLF = ignore }
}

// NewConsole creates a console that reads commands from in, writes replies
// to out and acts on p.
func NewConsole(p *Peripherals, in io.ByteReader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		in:       in,
		out:      out,
		periph:   p,
		dispatch: NewDispatcher(),
		line:     NewLineBuffer(LineSize),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewSerialConsole creates a console on the peripherals' own UART, polling it
// for input.
func NewSerialConsole(p *Peripherals, opts ...Option) *Console {
	return NewConsole(p, &PollingReader{Port: p.UART}, PortWriter{Port: p.UART}, opts...)
}

// Done reports whether the finish command has been received
func (c *Console) Done() bool {
	return c.done
}

// ReadLine blocks until a carriage return arrives and returns the line,
// carriage return included. A line longer than the buffer is consumed up to
// its carriage return and reported as ErrLineOverflow.
func (c *Console) ReadLine() ([]byte, error) {
	c.line.Reset()
	for {
		b, err := c.in.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == '\n' && c.ignoreLF {
			continue
		}
		// Once overflowed, bytes are dropped until the carriage return.
		_ = c.line.Append(b)
		if b == '\r' {
			break
		}
	}
	if c.line.Overflowed() {
		return nil, ErrLineOverflow
	}
	return c.line.Bytes(), nil
}

// Step reads and executes one command line
func (c *Console) Step() error {
	line, err := c.ReadLine()
	if errors.Is(err, ErrLineOverflow) {
		DebugPrintln("line overflow, capacity " + itoa(c.line.Cap()))
		return c.print(MsgLineTooLong)
	}
	if err != nil {
		return err
	}

	cmd := ParseCommand(line)
	traceCommand(&cmd)

	if err := c.sample(); err != nil {
		return err
	}
	return c.dispatch.Dispatch(c, &cmd)
}

// Run prints the banner and executes commands until finish. It returns nil
// after finish, or the first input, output or peripheral error.
func (c *Console) Run() error {
	if err := c.print("CfgInitialize returned (0 = success) " + itoa(int(c.periph.Status)) + "\r\n"); err != nil {
		return err
	}
	if err := c.print(MsgPrompt); err != nil {
		return err
	}

	for !c.done {
		if err := c.Step(); err != nil {
			return err
		}
	}

	return c.print(MsgExit)
}

// sample reads the button and switch channels
func (c *Console) sample() error {
	b, err := c.periph.Buttons.Read()
	if err != nil {
		return err
	}
	s, err := c.periph.Switches.Read()
	if err != nil {
		return err
	}
	c.buttons, c.switches = b, s
	return nil
}

func (c *Console) print(s string) error {
	_, err := io.WriteString(c.out, s)
	return err
}
