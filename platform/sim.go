package platform

import (
	"boardcon/axigpio"
	"boardcon/core"
	"boardcon/mmio"
)

// SimBoard is the reference board with its AXI GPIO blocks replaced by
// in-memory register files. Button and switch levels are preset; LED writes
// land in the register file.
type SimBoard struct {
	*MMIO
	blocks map[uint32]*mmio.SimBlock
}

// NewSimBoard creates register files for the GPIO blocks of b with the
// inputs preset to buttons and switches.
func NewSimBoard(b core.Board, buttons, switches uint32) *SimBoard {
	s := &SimBoard{blocks: make(map[uint32]*mmio.SimBlock)}
	var table axigpio.ConfigTable
	for _, spec := range []core.ChannelSpec{b.LEDs, b.Buttons, b.Switches} {
		cfg, ok := table.LookupConfig(spec.Base)
		if !ok {
			s.blocks[spec.Base] = mmio.NewSimBlock(axigpio.RegSize)
			table = append(table, axigpio.Config{BaseAddress: spec.Base})
			cfg = &table[len(table)-1]
		}
		if spec.Channel == 2 {
			cfg.IsDual = true
		}
	}
	s.setInput(b.Buttons, buttons)
	s.setInput(b.Switches, switches)

	s.MMIO = NewMMIO(table, nil, func(base, _ uint32) (mmio.Block, error) {
		blk, ok := s.blocks[base]
		if !ok {
			return nil, core.ErrDeviceNotFound
		}
		return blk, nil
	})
	return s
}

func (s *SimBoard) setInput(spec core.ChannelSpec, v uint32) {
	off := axigpio.DataOffset
	if spec.Channel == 2 {
		off = axigpio.Data2Offset
	}
	s.blocks[spec.Base].Poke(off, v)
}

// Block returns the register file at base, nil if the board has none
func (s *SimBoard) Block(base uint32) *mmio.SimBlock {
	return s.blocks[base]
}
