package core

// LineSize is the capacity of the console command line, carriage return
// included.
const LineSize = 40

// LineBuffer accumulates one command line a byte at a time
type LineBuffer struct {
	buf      []byte
	pos      int
	overflow bool
}

// NewLineBuffer creates a LineBuffer holding at most size bytes
func NewLineBuffer(size int) *LineBuffer {
	if size <= 0 {
		size = LineSize
	}
	return &LineBuffer{buf: make([]byte, size)}
}

// Append stores b at the current position. A full buffer rejects the byte
// with ErrLineOverflow and remembers that the line overflowed.
func (l *LineBuffer) Append(b byte) error {
	if l.pos >= len(l.buf) {
		l.overflow = true
		return ErrLineOverflow
	}
	l.buf[l.pos] = b
	l.pos++
	return nil
}

// Bytes returns the bytes accumulated so far
func (l *LineBuffer) Bytes() []byte {
	return l.buf[:l.pos]
}

// Len returns the number of bytes accumulated
func (l *LineBuffer) Len() int {
	return l.pos
}

// Cap returns the capacity of the buffer
func (l *LineBuffer) Cap() int {
	return len(l.buf)
}

// Overflowed reports whether a byte was rejected since the last Reset
func (l *LineBuffer) Overflowed() bool {
	return l.overflow
}

// Reset clears the buffer for the next line
func (l *LineBuffer) Reset() {
	for i := range l.buf {
		l.buf[i] = 0
	}
	l.pos = 0
	l.overflow = false
}
