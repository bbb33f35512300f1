package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollingReaderWaitsForData(t *testing.T) {
	u := &fakeUART{in: []byte("ab"), gap: 2}
	idle := 0
	r := &PollingReader{Port: u, Idle: func() { idle++ }}

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)
	assert.Equal(t, 2, idle)

	b, err = r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), b)
	assert.Equal(t, 4, idle)
}

func TestPollingReaderError(t *testing.T) {
	r := &PollingReader{Port: &fakeUART{}}

	_, err := r.ReadByte()
	assert.Error(t, err)
}

func TestPortWriterPartialSends(t *testing.T) {
	u := &fakeUART{sendMax: 3}
	w := PortWriter{Port: u}

	n, err := w.Write([]byte("Button Status: 5\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 18, n)
	assert.Equal(t, "Button Status: 5\r\n", string(u.out))
}

type failingPort struct{ fakeUART }

func (p *failingPort) Send(buf []byte) (int, error) {
	return 1, errors.New("tx fault")
}

func TestPortWriterError(t *testing.T) {
	w := PortWriter{Port: &failingPort{}}

	n, err := w.Write([]byte("abc"))
	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

func TestOperModeString(t *testing.T) {
	assert.Equal(t, "normal", OperModeNormal.String())
	assert.Equal(t, "auto-echo", OperModeAutoEcho.String())
	assert.Equal(t, "local-loopback", OperModeLocalLoop.String())
	assert.Equal(t, "remote-loopback", OperModeRemoteLoop.String())
	assert.Equal(t, "unknown", OperMode(9).String())
}
