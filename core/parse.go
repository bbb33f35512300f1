package core

// Fixed field offsets within a command line
const (
	commandLen = 6 // bytes [0,6): full command word
	ledCmdLen  = 3 // bytes [0,3): "led"
	ledNumOff  = 4 // bytes [4,6): two digit LED value
	ledNumLen  = 2
)

// MaxLEDValue is the largest value accepted by the led command
const MaxLEDValue = 15

// ParsedCommand holds the fixed-offset fields of a command line. Bytes past
// the end of the line read as zero.
type ParsedCommand struct {
	Command [commandLen]byte
	LEDCmd  [ledCmdLen]byte
	LEDNum  [ledNumLen]byte
}

// ParseCommand copies the command fields out of line
func ParseCommand(line []byte) ParsedCommand {
	var cmd ParsedCommand
	copyField(cmd.Command[:], line, 0)
	copyField(cmd.LEDCmd[:], line, 0)
	copyField(cmd.LEDNum[:], line, ledNumOff)
	return cmd
}

func copyField(dst, line []byte, off int) {
	if off < len(line) {
		copy(dst, line[off:])
	}
}

// Is reports whether the command field equals name exactly
func (p *ParsedCommand) Is(name string) bool {
	return fieldEquals(p.Command[:], name)
}

// IsLED reports whether the line starts with "led"
func (p *ParsedCommand) IsLED() bool {
	return fieldEquals(p.LEDCmd[:], "led")
}

func fieldEquals(field []byte, s string) bool {
	if len(field) != len(s) {
		return false
	}
	for i := range field {
		if field[i] != s[i] {
			return false
		}
	}
	return true
}

// ParseLEDValue decodes the two digit LED field. The tens digit must be
// '0' or '1' and the result must not exceed MaxLEDValue.
func ParseLEDValue(num [ledNumLen]byte) (uint32, error) {
	tens, units := num[0], num[1]
	if tens < '0' || tens > '1' || units < '0' || units > '9' {
		return 0, ErrInvalidLEDValue
	}
	v := uint32(tens-'0')*10 + uint32(units-'0')
	if v > MaxLEDValue {
		return 0, ErrInvalidLEDValue
	}
	return v, nil
}
