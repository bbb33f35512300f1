//go:build linux && !baremetal

package mmio

import (
	"fmt"
	"os"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DevMem is the physical memory device opened by Map.
var DevMem = "/dev/mem"

// Mapping is a register window mapped from physical memory.
type Mapping struct {
	f    *os.File
	mem  []byte
	off  uint32 // offset of the base address inside mem
	size uint32
}

// Map maps size bytes of physical memory starting at base. The mapping is
// page aligned internally; offsets passed to Read32/Write32 are relative to
// base.
func Map(base uint32, size uint32) (*Mapping, error) {
	if size == 0 {
		return nil, fmt.Errorf("mmio: zero-sized mapping at 0x%08x", base)
	}

	page := uint32(os.Getpagesize())
	pageBase := base &^ (page - 1)
	delta := base - pageBase
	length := (delta + size + page - 1) &^ (page - 1)

	f, err := os.OpenFile(DevMem, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("mmio: open %s: %w", DevMem, err)
	}

	mem, err := unix.Mmap(int(f.Fd()), int64(pageBase), int(length),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmio: map 0x%08x+0x%x: %w", base, size, err)
	}

	return &Mapping{f: f, mem: mem, off: delta, size: size}, nil
}

func (m *Mapping) reg(off uint32) *uint32 {
	checkOffset(off, m.size)
	return (*uint32)(unsafe.Pointer(&m.mem[m.off+off]))
}

// Read32 reads the register at off with a single 32-bit load
func (m *Mapping) Read32(off uint32) uint32 {
	return atomic.LoadUint32(m.reg(off))
}

// Write32 writes the register at off with a single 32-bit store
func (m *Mapping) Write32(off uint32, v uint32) {
	atomic.StoreUint32(m.reg(off), v)
}

// Close unmaps the window and closes the memory device
func (m *Mapping) Close() error {
	if m.mem != nil {
		if err := unix.Munmap(m.mem); err != nil {
			return fmt.Errorf("mmio: unmap: %w", err)
		}
		m.mem = nil
	}
	if m.f != nil {
		err := m.f.Close()
		m.f = nil
		return err
	}
	return nil
}
