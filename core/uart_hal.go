package core

// OperMode is the operating mode of a serial port
type OperMode uint8

const (
	OperModeNormal     OperMode = iota // full duplex, no loopback
	OperModeAutoEcho                   // received bytes are echoed back
	OperModeLocalLoop                  // transmitter looped to receiver
	OperModeRemoteLoop                 // line RX looped to line TX
)

func (m OperMode) String() string {
	switch m {
	case OperModeNormal:
		return "normal"
	case OperModeAutoEcho:
		return "auto-echo"
	case OperModeLocalLoop:
		return "local-loopback"
	case OperModeRemoteLoop:
		return "remote-loopback"
	default:
		return "unknown"
	}
}

// SerialPort is the abstract UART interface that core code uses.
type SerialPort interface {
	// Recv copies received bytes into buf without waiting.
	// Returns 0 when nothing has been received.
	Recv(buf []byte) (int, error)

	// Send queues bytes for transmission. It may accept fewer than len(buf).
	Send(buf []byte) (int, error)

	// SetOperMode selects the operating mode
	SetOperMode(mode OperMode) error
}

// PollingReader reads one byte at a time from a SerialPort, blocking until a
// byte is available by polling Recv. It is the only place the console waits
// for input, so a port with event-driven delivery can replace it with any
// other io.ByteReader.
type PollingReader struct {
	Port SerialPort

	// Idle is called between empty polls. Nil means spin.
	Idle func()

	buf [1]byte
}

// ReadByte blocks until the port delivers a byte
func (r *PollingReader) ReadByte() (byte, error) {
	for {
		n, err := r.Port.Recv(r.buf[:])
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return r.buf[0], nil
		}
		if r.Idle != nil {
			r.Idle()
		}
	}
}

// PortWriter adapts a SerialPort to io.Writer, retrying Send until every
// byte has been accepted.
type PortWriter struct {
	Port SerialPort

	// Idle is called when the transmitter accepts nothing. Nil means spin.
	Idle func()
}

func (w PortWriter) Write(p []byte) (int, error) {
	sent := 0
	for sent < len(p) {
		n, err := w.Port.Send(p[sent:])
		sent += n
		if err != nil {
			return sent, err
		}
		if n == 0 && w.Idle != nil {
			w.Idle()
		}
	}
	return sent, nil
}
