//go:build !linux || baremetal

package mmio

import "errors"

// DevMem is the physical memory device opened by Map.
var DevMem = "/dev/mem"

// ErrNoDevMem is returned by Map on platforms without /dev/mem.
var ErrNoDevMem = errors.New("mmio: physical memory mapping is only supported on linux")

// Mapping is a register window mapped from physical memory.
type Mapping struct{}

// Map always fails outside linux
func Map(base uint32, size uint32) (*Mapping, error) {
	return nil, ErrNoDevMem
}

func (m *Mapping) Read32(off uint32) uint32     { panic(ErrNoDevMem) }
func (m *Mapping) Write32(off uint32, v uint32) { panic(ErrNoDevMem) }
func (m *Mapping) Close() error                 { return nil }
