package mmio

// SimBlock is an in-memory register file. Hooks let tests and the simulated
// board model registers with side effects (FIFOs, status bits).
type SimBlock struct {
	size       uint32
	regs       map[uint32]uint32
	readHooks  map[uint32]func() uint32
	writeHooks map[uint32]func(uint32)
	writes     map[uint32]int
}

// NewSimBlock creates a zeroed register file spanning size bytes
func NewSimBlock(size uint32) *SimBlock {
	return &SimBlock{
		size:       size,
		regs:       make(map[uint32]uint32),
		readHooks:  make(map[uint32]func() uint32),
		writeHooks: make(map[uint32]func(uint32)),
		writes:     make(map[uint32]int),
	}
}

// Read32 returns the hooked value for off, or the stored one
func (b *SimBlock) Read32(off uint32) uint32 {
	checkOffset(off, b.size)
	if h, ok := b.readHooks[off]; ok {
		return h()
	}
	return b.regs[off]
}

// Write32 stores v, or hands it to the write hook for off
func (b *SimBlock) Write32(off uint32, v uint32) {
	checkOffset(off, b.size)
	b.writes[off]++
	if h, ok := b.writeHooks[off]; ok {
		h(v)
		return
	}
	b.regs[off] = v
}

// Poke sets the stored value of a register without running hooks or
// counting a write. Used to model external inputs such as pressed buttons.
func (b *SimBlock) Poke(off uint32, v uint32) {
	checkOffset(off, b.size)
	b.regs[off] = v
}

// Peek returns the stored value of a register without running hooks
func (b *SimBlock) Peek(off uint32) uint32 {
	checkOffset(off, b.size)
	return b.regs[off]
}

// OnRead installs a hook that computes the value of off on every read
func (b *SimBlock) OnRead(off uint32, fn func() uint32) {
	checkOffset(off, b.size)
	b.readHooks[off] = fn
}

// OnWrite installs a hook that receives every value written to off
func (b *SimBlock) OnWrite(off uint32, fn func(uint32)) {
	checkOffset(off, b.size)
	b.writeHooks[off] = fn
}

// WriteCount returns how many times off has been written through Write32
func (b *SimBlock) WriteCount(off uint32) int {
	return b.writes[off]
}

// TotalWrites returns the number of Write32 calls on the whole block
func (b *SimBlock) TotalWrites() int {
	n := 0
	for _, c := range b.writes {
		n += c
	}
	return n
}
