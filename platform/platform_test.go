package platform

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardcon/axigpio"
	"boardcon/core"
	"boardcon/mmio"
	"boardcon/uartps"
)

// closingBlock is a register file that records being released
type closingBlock struct {
	*mmio.SimBlock
	closed *int
}

func (c closingBlock) Close() error {
	*c.closed++
	return nil
}

func TestMMIOProvider(t *testing.T) {
	closed := 0
	mapped := map[uint32]uint32{}
	p := NewMMIO(
		axigpio.ConfigTable{{BaseAddress: core.LEDsBaseAddr}},
		uartps.ConfigTable{{BaseAddress: core.UARTBaseAddr, InputClockHz: uartps.DefaultInputClockHz}},
		func(base, size uint32) (mmio.Block, error) {
			mapped[base] = size
			return closingBlock{mmio.NewSimBlock(size), &closed}, nil
		},
	)
	p.BaudRate = 9600

	blk, err := p.GPIO(core.LEDsBaseAddr)
	require.NoError(t, err)
	require.NoError(t, blk.DiscreteWrite(1, 0xA))

	port, err := p.UART(core.UARTBaseAddr)
	require.NoError(t, err)
	assert.Equal(t, uint32(9600), port.(*uartps.Device).BaudRate())

	_, err = p.GPIO(core.ButtonsBaseAddr)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)
	_, err = p.UART(0xE0000000)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)

	assert.Equal(t, map[uint32]uint32{
		core.LEDsBaseAddr: axigpio.RegSize,
		core.UARTBaseAddr: uartps.RegSize,
	}, mapped)

	require.NoError(t, p.Close())
	assert.Equal(t, 2, closed)
}

func TestMMIOMapFailure(t *testing.T) {
	boom := errors.New("permission denied")
	p := NewMMIO(axigpio.ConfigTable{{BaseAddress: core.LEDsBaseAddr}}, nil,
		func(uint32, uint32) (mmio.Block, error) { return nil, boom })

	_, err := p.GPIO(core.LEDsBaseAddr)
	assert.ErrorIs(t, err, boom)

	_, err = core.InitPeripherals(p, core.DefaultBoard())
	var initErr *core.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "leds", initErr.Peripheral)
	assert.Equal(t, core.StatusFailure, initErr.Status)
}

func TestClosersReverseOrder(t *testing.T) {
	var order []int
	var c Closers
	for i := 0; i < 3; i++ {
		c.Add(func() error { order = append(order, i); return nil })
	}
	c.Add(func() error { return errors.New("busy") })

	assert.EqualError(t, c.Close(), "busy")
	assert.Equal(t, []int{2, 1, 0}, order)
	assert.NoError(t, c.Close())
}

func TestSplitAndBanks(t *testing.T) {
	blk := mmio.NewSimBlock(axigpio.RegSize)
	dev, err := axigpio.CfgInitialize(&axigpio.Config{BaseAddress: 1}, blk)
	require.NoError(t, err)

	p := Split{GPIOs: Banks{1: dev}}
	got, err := p.GPIO(1)
	require.NoError(t, err)
	assert.Same(t, dev, got)

	_, err = p.GPIO(2)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)
	_, err = p.UART(core.UARTBaseAddr)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)
	_, err = Port{}.UART(core.UARTBaseAddr)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)
	_, err = Split{}.GPIO(1)
	assert.ErrorIs(t, err, core.ErrDeviceNotFound)
}

// nullPort accepts everything and never receives
type nullPort struct{}

func (nullPort) Recv([]byte) (int, error)        { return 0, nil }
func (nullPort) Send(b []byte) (int, error)      { return len(b), nil }
func (nullPort) SetOperMode(core.OperMode) error { return nil }

func TestSimBoardConsole(t *testing.T) {
	board := core.DefaultBoard()
	sim := NewSimBoard(board, 0b0101, 0b10)
	defer sim.Close()

	periph, err := core.InitPeripherals(Split{GPIOs: sim, UARTs: Port{nullPort{}}}, board)
	require.NoError(t, err)

	var out bytes.Buffer
	con := core.NewConsole(periph, bytes.NewReader([]byte("button\rswitch\rled 09\rfinish\r")), &out)
	require.NoError(t, con.Run())

	assert.Contains(t, out.String(), "Button Status: 5\r\n")
	assert.Contains(t, out.String(), "Switch Status: 2\r\n")
	assert.Equal(t, uint32(9), sim.Block(core.LEDsBaseAddr).Peek(axigpio.DataOffset))
	assert.Equal(t, uint32(0b1111), sim.Block(core.ButtonsBaseAddr).Peek(axigpio.TriOffset))
	assert.Equal(t, uint32(0), sim.Block(core.LEDsBaseAddr).Peek(axigpio.TriOffset))
}

func TestSimBoardDualChannel(t *testing.T) {
	board := core.DefaultBoard()
	board.Switches = core.ChannelSpec{Base: core.ButtonsBaseAddr, Channel: 2, Width: 2, Direction: core.SwitchDirection}
	sim := NewSimBoard(board, 0b1000, 0b01)

	blk, err := sim.GPIO(core.ButtonsBaseAddr)
	require.NoError(t, err)
	v, err := blk.DiscreteRead(2)
	require.NoError(t, err)
	assert.Equal(t, uint32(0b01), v)
	v, err = blk.DiscreteRead(1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0b1000), v)
	assert.Nil(t, sim.Block(core.SwitchesBaseAddr))
}
