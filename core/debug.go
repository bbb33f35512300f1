package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to a logger, a second UART, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// traceCommand reports the fields extracted from a command line
func traceCommand(cmd *ParsedCommand) {
	if !debugEnabled {
		return
	}
	DebugPrintln("Command: " + printable(cmd.Command[:]))
	DebugPrintln("LED_cmd: " + printable(cmd.LEDCmd[:]))
	DebugPrintln("LED_num: " + printable(cmd.LEDNum[:]))
}
