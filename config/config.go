// Package config loads the board description used by the host console.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"boardcon/core"
)

// GPIO backends
const (
	GPIODevMem = "devmem" // AXI GPIO registers through /dev/mem
	GPIOPeriph = "periph" // Linux GPIO lines through periph.io
	GPIOSim    = "sim"    // in-memory register files
)

// Console backends
const (
	ConsoleUARTPS = "uartps" // PS UART registers through /dev/mem
	ConsoleTTY    = "tty"    // a serial device of the host
	ConsoleStdio  = "stdio"  // the process's stdin and stdout
)

// Config is the complete description of a console session
type Config struct {
	Board   BoardConfig   `yaml:"board" json:"board"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	TTY     TTYConfig     `yaml:"tty" json:"tty"`
	Periph  PeriphConfig  `yaml:"periph" json:"periph"`
	Sim     SimConfig     `yaml:"sim" json:"sim"`
	Console ConsoleConfig `yaml:"console" json:"console"`
}

// BoardConfig places the peripherals in the address map
type BoardConfig struct {
	LEDs     GPIOConfig `yaml:"leds" json:"leds"`
	Buttons  GPIOConfig `yaml:"buttons" json:"buttons"`
	Switches GPIOConfig `yaml:"switches" json:"switches"`
	UART     UARTConfig `yaml:"uart" json:"uart"`
}

// GPIOConfig describes one AXI GPIO block and the channel used on it
type GPIOConfig struct {
	Base    uint32 `yaml:"base" json:"base"`
	Channel int    `yaml:"channel" json:"channel"`
	Width   int    `yaml:"width" json:"width"`
	Dual    bool   `yaml:"dual" json:"dual"`
}

// UARTConfig describes the PS UART
type UARTConfig struct {
	Base    uint32 `yaml:"base" json:"base"`
	ClockHz uint32 `yaml:"clock_hz" json:"clock_hz"`
	Baud    uint32 `yaml:"baud" json:"baud"`
}

// BackendConfig selects how peripherals are reached
type BackendConfig struct {
	GPIO    string `yaml:"gpio" json:"gpio"`
	Console string `yaml:"console" json:"console"`
}

// TTYConfig configures the tty console backend
type TTYConfig struct {
	Device        string `yaml:"device" json:"device"`
	Baud          int    `yaml:"baud" json:"baud"`
	ReadTimeoutMS int    `yaml:"read_timeout_ms" json:"read_timeout_ms"`
}

// PeriphConfig names the GPIO lines of each bank, least significant bit first
type PeriphConfig struct {
	LEDs     []string `yaml:"leds" json:"leds"`
	Buttons  []string `yaml:"buttons" json:"buttons"`
	Switches []string `yaml:"switches" json:"switches"`
}

// SimConfig sets the input levels of the simulated board
type SimConfig struct {
	Buttons  uint32 `yaml:"buttons" json:"buttons"`
	Switches uint32 `yaml:"switches" json:"switches"`
}

// ConsoleConfig tunes the command loop
type ConsoleConfig struct {
	LineSize int  `yaml:"line_size" json:"line_size"`
	IgnoreLF bool `yaml:"ignore_lf" json:"ignore_lf"`
	Debug    bool `yaml:"debug" json:"debug"`
}

// Load reads a YAML (or JSON) board file and applies defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a board description and applies defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the reference board driven through /dev/mem
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in missing values from the hardware build constants
func applyDefaults(cfg *Config) {
	def := core.DefaultBoard()
	gpioDefaults(&cfg.Board.LEDs, def.LEDs)
	gpioDefaults(&cfg.Board.Buttons, def.Buttons)
	gpioDefaults(&cfg.Board.Switches, def.Switches)

	if cfg.Board.UART.Base == 0 {
		cfg.Board.UART.Base = def.UART.Base
	}
	if cfg.Board.UART.ClockHz == 0 {
		cfg.Board.UART.ClockHz = 100000000
	}
	if cfg.Board.UART.Baud == 0 {
		cfg.Board.UART.Baud = 115200
	}

	if cfg.Backend.GPIO == "" {
		cfg.Backend.GPIO = GPIODevMem
	}
	if cfg.Backend.Console == "" {
		cfg.Backend.Console = ConsoleUARTPS
	}

	if cfg.TTY.Device == "" {
		cfg.TTY.Device = "/dev/ttyPS0"
	}
	if cfg.TTY.Baud == 0 {
		cfg.TTY.Baud = 115200
	}
	if cfg.TTY.ReadTimeoutMS == 0 {
		cfg.TTY.ReadTimeoutMS = 100
	}

	if cfg.Console.LineSize == 0 {
		cfg.Console.LineSize = core.LineSize
	}
}

func gpioDefaults(g *GPIOConfig, def core.ChannelSpec) {
	if g.Base == 0 {
		g.Base = def.Base
	}
	if g.Channel == 0 {
		g.Channel = def.Channel
	}
	if g.Width == 0 {
		g.Width = def.Width
	}
}

// Validate checks the combination of backends and the board layout
func (c *Config) Validate() error {
	var errs []error

	switch c.Backend.GPIO {
	case GPIODevMem, GPIOPeriph, GPIOSim:
	default:
		errs = append(errs, fmt.Errorf("unknown gpio backend %q", c.Backend.GPIO))
	}
	switch c.Backend.Console {
	case ConsoleUARTPS:
		if c.Backend.GPIO != GPIODevMem {
			errs = append(errs, fmt.Errorf("console %q needs gpio backend %q", ConsoleUARTPS, GPIODevMem))
		}
	case ConsoleTTY, ConsoleStdio:
	default:
		errs = append(errs, fmt.Errorf("unknown console backend %q", c.Backend.Console))
	}

	banks := []struct {
		name string
		g    GPIOConfig
		pins []string
	}{
		{"leds", c.Board.LEDs, c.Periph.LEDs},
		{"buttons", c.Board.Buttons, c.Periph.Buttons},
		{"switches", c.Board.Switches, c.Periph.Switches},
	}
	for _, b := range banks {
		if b.g.Width < 1 || b.g.Width > 32 {
			errs = append(errs, fmt.Errorf("%s: width %d out of range 1..32", b.name, b.g.Width))
		}
		if b.g.Channel != 1 && b.g.Channel != 2 {
			errs = append(errs, fmt.Errorf("%s: channel %d is not 1 or 2", b.name, b.g.Channel))
		} else if b.g.Channel == 2 && !b.g.Dual {
			errs = append(errs, fmt.Errorf("%s: channel 2 on a single-channel block", b.name))
		}
		if c.Backend.GPIO == GPIOPeriph && len(b.pins) != b.g.Width {
			errs = append(errs, fmt.Errorf("%s: %d pins named for width %d", b.name, len(b.pins), b.g.Width))
		}
	}

	if c.Console.LineSize < 2 {
		errs = append(errs, fmt.Errorf("console: line_size %d too small", c.Console.LineSize))
	}

	return errors.Join(errs...)
}

// Layout converts the layout to the form InitPeripherals consumes
func (c *Config) Layout() core.Board {
	return core.Board{
		LEDs:     channelSpec(c.Board.LEDs, false),
		Buttons:  channelSpec(c.Board.Buttons, true),
		Switches: channelSpec(c.Board.Switches, true),
		UART:     core.UARTSpec{Base: c.Board.UART.Base},
	}
}

// channelSpec sets every bit of an input bank to input and every bit of an
// output bank to output.
func channelSpec(g GPIOConfig, input bool) core.ChannelSpec {
	spec := core.ChannelSpec{Base: g.Base, Channel: g.Channel, Width: g.Width}
	if input {
		spec.Direction = uint32(1<<uint(g.Width) - 1)
	}
	return spec
}
