// Command boardcon brings up the LEDs, buttons, switches and console UART of
// the board and serves the command loop on the console until "finish".
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"boardcon/config"
	"boardcon/core"
	"boardcon/host/serial"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	gpio       string
	console    string
	device     string
	baud       int
	listPorts  bool
	debug      bool
	verbose    bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("boardcon", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	fs.StringVar(&o.configPath, "config", "", "Board file (YAML or JSON)")
	fs.StringVar(&o.gpio, "gpio", "", "GPIO backend: devmem, periph or sim")
	fs.StringVar(&o.console, "console", "", "Console backend: uartps, tty or stdio")
	fs.StringVar(&o.device, "device", "", "Serial device for the tty console")
	fs.IntVar(&o.baud, "baud", 0, "Console baud rate")
	fs.BoolVar(&o.listPorts, "list-ports", false, "List serial ports and exit")
	fs.BoolVar(&o.debug, "debug", false, "Trace the fields of every command line")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable verbose output")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}

	level := slog.LevelInfo
	if opts.verbose || opts.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if opts.listPorts {
		ports, err := serial.ListPorts()
		if err != nil {
			logger.Error("list ports", "err", err)
			return 1
		}
		for _, p := range ports {
			fmt.Fprintln(stdout, p.String())
		}
		return 0
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error("load config", "err", err)
		return 1
	}

	core.SetDebugWriter(func(s string) { logger.Debug(s) })
	core.SetDebugEnabled(cfg.Console.Debug)
	defer core.SetDebugEnabled(false)

	logger.Debug("backends", "gpio", cfg.Backend.GPIO, "console", cfg.Backend.Console)

	be, err := openBackends(cfg, stdin, stdout)
	if err != nil {
		logger.Error("open backends", "err", err)
		return 1
	}
	defer func() {
		if err := be.closers.Close(); err != nil {
			logger.Warn("release resources", "err", err)
		}
	}()

	periph, err := core.InitPeripherals(be.provider, cfg.Layout())
	if err != nil {
		var ie *core.InitError
		if errors.As(err, &ie) {
			logger.Error("initialize peripherals",
				"peripheral", ie.Peripheral,
				"base", fmt.Sprintf("0x%08x", ie.BaseAddress),
				"status", int(ie.Status),
				"err", ie.Err)
		} else {
			logger.Error("initialize peripherals", "err", err)
		}
		return 1
	}

	con := core.NewConsole(periph,
		&core.PollingReader{Port: periph.UART, Idle: be.idle},
		core.PortWriter{Port: periph.UART, Idle: be.idle},
		core.WithLineSize(cfg.Console.LineSize),
		core.WithIgnoreLF(cfg.Console.IgnoreLF),
	)
	if err := con.Run(); err != nil {
		if errors.Is(err, io.EOF) {
			logger.Error("console input ended before finish")
		} else {
			logger.Error("console", "err", err)
		}
		return 1
	}

	logger.Debug("finished")
	return 0
}

// loadConfig reads the board file, if any, and applies flag overrides
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	if opts.gpio != "" {
		cfg.Backend.GPIO = opts.gpio
	}
	if opts.console != "" {
		cfg.Backend.Console = opts.console
	}
	if opts.device != "" {
		cfg.TTY.Device = opts.device
	}
	if opts.baud != 0 {
		cfg.TTY.Baud = opts.baud
		cfg.Board.UART.Baud = uint32(opts.baud)
	}
	if opts.debug {
		cfg.Console.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
