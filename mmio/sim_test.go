package mmio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimBlockStoresValues(t *testing.T) {
	b := NewSimBlock(0x10)

	b.Write32(0x4, 0xdeadbeef)
	assert.Equal(t, uint32(0xdeadbeef), b.Read32(0x4))
	assert.Equal(t, uint32(0), b.Read32(0x0))
	assert.Equal(t, 1, b.WriteCount(0x4))
	assert.Equal(t, 1, b.TotalWrites())
}

func TestSimBlockHooks(t *testing.T) {
	b := NewSimBlock(0x10)

	var got []uint32
	b.OnWrite(0x8, func(v uint32) { got = append(got, v) })
	n := uint32(0)
	b.OnRead(0xc, func() uint32 { n++; return n })

	b.Write32(0x8, 1)
	b.Write32(0x8, 2)
	assert.Equal(t, []uint32{1, 2}, got)
	assert.Equal(t, uint32(0), b.Peek(0x8), "hooked writes do not reach the backing store")

	assert.Equal(t, uint32(1), b.Read32(0xc))
	assert.Equal(t, uint32(2), b.Read32(0xc))
}

func TestSimBlockPokeIsNotAWrite(t *testing.T) {
	b := NewSimBlock(0x10)
	b.Poke(0x0, 5)

	assert.Equal(t, uint32(5), b.Read32(0x0))
	assert.Equal(t, 0, b.TotalWrites())
}

func TestSimBlockBusFault(t *testing.T) {
	b := NewSimBlock(0x10)

	require.Panics(t, func() { b.Read32(0x2) })
	require.Panics(t, func() { b.Read32(0x10) })
	require.Panics(t, func() { b.Write32(0x20, 1) })
}
