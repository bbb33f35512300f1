package core

import "errors"

// CommandHandler handles one parsed command line on a console
type CommandHandler func(c *Console, cmd *ParsedCommand) error

// Command is one entry of the console's command table
type Command struct {
	Name    string
	Match   func(cmd *ParsedCommand) bool
	Handler CommandHandler
}

// Console messages
const (
	MsgPrompt          = "---Enter a command---\r\n"
	MsgExit            = "---Exiting main---\r\n"
	MsgInvalidCommand  = "Command is invalid, re-enter below:\r\n"
	MsgInvalidLEDValue = "LED value is invalid, re-enter below:\r\n"
	MsgLineTooLong     = "Command is too long, re-enter below:\r\n"
)

// Dispatcher matches command lines against a fixed table. Entries are tried
// in order and the first match wins; lines matching nothing go to the
// fallback handler.
type Dispatcher struct {
	commands []*Command
	fallback CommandHandler
}

// NewDispatcher creates the console's command table
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		commands: []*Command{
			{
				Name:    "led",
				Match:   (*ParsedCommand).IsLED,
				Handler: handleLED,
			},
			{
				Name:    "button",
				Match:   matchWord("button"),
				Handler: handleButton,
			},
			{
				Name:    "switch",
				Match:   matchWord("switch"),
				Handler: handleSwitch,
			},
			{
				Name:    "finish",
				Match:   matchWord("finish"),
				Handler: handleFinish,
			},
		},
		fallback: handleInvalid,
	}
}

func matchWord(name string) func(cmd *ParsedCommand) bool {
	return func(cmd *ParsedCommand) bool { return cmd.Is(name) }
}

// Dispatch calls the handler of the first matching command
func (d *Dispatcher) Dispatch(c *Console, cmd *ParsedCommand) error {
	for _, entry := range d.commands {
		if entry.Match(cmd) {
			return entry.Handler(c, cmd)
		}
	}
	return d.fallback(c, cmd)
}

func handleLED(c *Console, cmd *ParsedCommand) error {
	v, err := ParseLEDValue(cmd.LEDNum)
	if err != nil {
		DebugPrintln("led: rejected value " + printable(cmd.LEDNum[:]))
		return c.print(MsgInvalidLEDValue)
	}
	// A value wider than the LED bank is rejected like a malformed one.
	if err := c.periph.LEDs.Write(v); err != nil {
		if errors.Is(err, ErrInvalidParam) {
			DebugPrintln("led: value " + utoa(v) + " exceeds " + itoa(c.periph.LEDs.Width) + " lines")
			return c.print(MsgInvalidLEDValue)
		}
		return err
	}
	return nil
}

func handleButton(c *Console, cmd *ParsedCommand) error {
	return c.print("Button Status: " + utoa(c.buttons) + "\r\n")
}

func handleSwitch(c *Console, cmd *ParsedCommand) error {
	return c.print("Switch Status: " + utoa(c.switches) + "\r\n")
}

func handleFinish(c *Console, cmd *ParsedCommand) error {
	c.done = true
	return nil
}

func handleInvalid(c *Console, cmd *ParsedCommand) error {
	return c.print(MsgInvalidCommand)
}
