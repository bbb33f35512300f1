// Package mmio provides 32-bit access to memory-mapped peripheral registers.
//
// Drivers address registers by byte offset from the peripheral's base
// address. A Block is either a real mapping of physical memory (see Map) or a
// simulated register file (see SimBlock) used on hosts without the hardware.
package mmio

import "strconv"

// Block is a window of 32-bit registers addressed by byte offset.
type Block interface {
	// Read32 reads the register at off
	Read32(off uint32) uint32

	// Write32 writes v to the register at off
	Write32(off uint32, v uint32)
}

// checkOffset panics on unaligned or out-of-window accesses, the software
// equivalent of a bus fault.
func checkOffset(off, size uint32) {
	if off%4 != 0 {
		panic("mmio: unaligned register offset 0x" + strconv.FormatUint(uint64(off), 16))
	}
	if off+4 > size {
		panic("mmio: register offset 0x" + strconv.FormatUint(uint64(off), 16) + " outside block")
	}
}
