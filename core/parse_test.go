package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandFields(t *testing.T) {
	cmd := ParseCommand([]byte("led 07\r"))

	assert.Equal(t, "led 07", string(cmd.Command[:]))
	assert.Equal(t, "led", string(cmd.LEDCmd[:]))
	assert.Equal(t, "07", string(cmd.LEDNum[:]))
	assert.True(t, cmd.IsLED())
	assert.False(t, cmd.Is("button"))
}

func TestParseCommandShortLine(t *testing.T) {
	cmd := ParseCommand([]byte("led\r"))

	assert.True(t, cmd.IsLED())
	assert.Equal(t, [2]byte{0, 0}, cmd.LEDNum, "bytes past the line read as zero")

	empty := ParseCommand([]byte("\r"))
	assert.Equal(t, [6]byte{'\r'}, empty.Command)
	assert.False(t, empty.IsLED())
}

func TestParseCommandFixedOffsets(t *testing.T) {
	// Only the first six bytes take part in the match
	cmd := ParseCommand([]byte("buttonXYZ\r"))
	assert.True(t, cmd.Is("button"))

	// Case sensitive
	cmd = ParseCommand([]byte("Button\r"))
	assert.False(t, cmd.Is("button"))

	// Byte 3 is not inspected
	cmd = ParseCommand([]byte("led-03\r"))
	assert.True(t, cmd.IsLED())
	assert.Equal(t, "03", string(cmd.LEDNum[:]))
}

func TestParseLEDValueRange(t *testing.T) {
	for n := 0; n <= MaxLEDValue; n++ {
		digits := fmt.Sprintf("%02d", n)
		t.Run(digits, func(t *testing.T) {
			v, err := ParseLEDValue([2]byte{digits[0], digits[1]})
			require.NoError(t, err)
			assert.Equal(t, uint32(n), v)
		})
	}
}

func TestParseLEDValueRejects(t *testing.T) {
	tests := []struct {
		name string
		num  [2]byte
	}{
		{"tens digit two", [2]byte{'2', '5'}},
		{"above fifteen", [2]byte{'1', '6'}},
		{"nineteen", [2]byte{'1', '9'}},
		{"letter", [2]byte{'0', 'x'}},
		{"missing digits", [2]byte{0, 0}},
		{"carriage return", [2]byte{'7', '\r'}},
		{"single digit", [2]byte{'7', 0}},
		{"space", [2]byte{' ', '7'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLEDValue(tt.num)
			assert.ErrorIs(t, err, ErrInvalidLEDValue)
		})
	}
}
