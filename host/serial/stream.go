package serial

import "io"

// Stream is a Port over a pair of byte streams, typically the process's
// stdin and stdout. Line feeds read from the stream are delivered as
// carriage returns so a line-buffered terminal can drive the console.
type Stream struct {
	r io.Reader
	w io.Writer
}

// NewStream creates a Port reading r and writing w
func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{r: r, w: w}
}

func (s *Stream) Read(b []byte) (int, error) {
	n, err := s.r.Read(b)
	for i := 0; i < n; i++ {
		if b[i] == '\n' {
			b[i] = '\r'
		}
	}
	return n, err
}

func (s *Stream) Write(b []byte) (int, error) {
	return s.w.Write(b)
}

// Flush is a no-op; writes go straight to the underlying writer
func (s *Stream) Flush() error {
	return nil
}

// Close closes whichever of the streams are closers
func (s *Stream) Close() error {
	var err error
	if c, ok := s.r.(io.Closer); ok {
		err = c.Close()
	}
	if c, ok := s.w.(io.Closer); ok {
		if werr := c.Close(); err == nil {
			err = werr
		}
	}
	return err
}
