package core

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBlock is an in-memory two-channel GPIO block
type fakeBlock struct {
	dir      map[int]uint32
	data     map[int]uint32
	reads    int
	writes   int
	dirErr   error
	readErr  error
	writeErr error
}

func newFakeBlock() *fakeBlock {
	return &fakeBlock{dir: make(map[int]uint32), data: make(map[int]uint32)}
}

func (b *fakeBlock) SetDataDirection(channel int, mask uint32) error {
	if b.dirErr != nil {
		return b.dirErr
	}
	b.dir[channel] = mask
	return nil
}

func (b *fakeBlock) DiscreteRead(channel int) (uint32, error) {
	if b.readErr != nil {
		return 0, b.readErr
	}
	b.reads++
	return b.data[channel], nil
}

func (b *fakeBlock) DiscreteWrite(channel int, value uint32) error {
	if b.writeErr != nil {
		return b.writeErr
	}
	b.writes++
	b.data[channel] = value
	return nil
}

// fakeUART replays scripted input and records output. Each input byte is
// preceded by gap empty polls. Exhausted input reads as io.EOF.
type fakeUART struct {
	in      []byte
	gap     int
	pending int
	polls   int
	out     []byte
	sendMax int
	mode    OperMode
	modeSet int
	modeErr error
}

func (u *fakeUART) Recv(buf []byte) (int, error) {
	u.polls++
	if len(u.in) == 0 {
		return 0, io.EOF
	}
	if u.pending < u.gap {
		u.pending++
		return 0, nil
	}
	u.pending = 0
	buf[0] = u.in[0]
	u.in = u.in[1:]
	return 1, nil
}

func (u *fakeUART) Send(buf []byte) (int, error) {
	n := len(buf)
	if u.sendMax > 0 && n > u.sendMax {
		n = u.sendMax
	}
	u.out = append(u.out, buf[:n]...)
	return n, nil
}

func (u *fakeUART) SetOperMode(mode OperMode) error {
	if u.modeErr != nil {
		return u.modeErr
	}
	u.mode = mode
	u.modeSet++
	return nil
}

// fakeProvider binds fake peripherals by base address and records the
// order of lookups.
type fakeProvider struct {
	blocks map[uint32]*fakeBlock
	uarts  map[uint32]*fakeUART
	calls  []string
}

func newFakeProvider(b Board) *fakeProvider {
	return &fakeProvider{
		blocks: map[uint32]*fakeBlock{
			b.LEDs.Base:     newFakeBlock(),
			b.Buttons.Base:  newFakeBlock(),
			b.Switches.Base: newFakeBlock(),
		},
		uarts: map[uint32]*fakeUART{
			b.UART.Base: {mode: OperModeLocalLoop},
		},
	}
}

func (p *fakeProvider) GPIO(base uint32) (GPIOBlock, error) {
	p.calls = append(p.calls, "gpio "+hex32(base))
	b, ok := p.blocks[base]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return b, nil
}

func (p *fakeProvider) UART(base uint32) (SerialPort, error) {
	p.calls = append(p.calls, "uart "+hex32(base))
	u, ok := p.uarts[base]
	if !ok {
		return nil, ErrDeviceNotFound
	}
	return u, nil
}

// testBoard brings up the default board on fakes with input queued on the
// UART.
type testBoard struct {
	periph   *Peripherals
	provider *fakeProvider
	leds     *fakeBlock
	buttons  *fakeBlock
	switches *fakeBlock
	uart     *fakeUART
}

func newTestBoard(t *testing.T, input string) *testBoard {
	t.Helper()
	return newTestBoardFor(t, DefaultBoard(), input)
}

// newTestBoardFor is newTestBoard with a custom layout
func newTestBoardFor(t *testing.T, board Board, input string) *testBoard {
	t.Helper()
	p := newFakeProvider(board)
	uart := p.uarts[board.UART.Base]
	uart.in = []byte(input)

	periph, err := InitPeripherals(p, board)
	require.NoError(t, err)

	return &testBoard{
		periph:   periph,
		provider: p,
		leds:     p.blocks[board.LEDs.Base],
		buttons:  p.blocks[board.Buttons.Base],
		switches: p.blocks[board.Switches.Base],
		uart:     uart,
	}
}
