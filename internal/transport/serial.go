package transport

import (
	"errors"
	"time"

	"go.bug.st/serial"
)

// Serial is a Transport backed by a real serial port via go.bug.st/serial,
// the same library cex/dev uses to talk to its target board.
type Serial struct {
	port serial.Port

	// go.bug.st/serial has no portable "bytes waiting" call, so
	// BytesAvailable opportunistically drains the OS buffer into pending
	// with a near-zero timeout and callers consume from pending first.
	pending []byte
}

// OpenSerial opens portName at baud with 8-N-1 framing, the configuration
// the OCD target expects.
func OpenSerial(portName string, baud int) (*Serial, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}
	return &Serial{port: port}, nil
}

func (s *Serial) Write(b []byte) error {
	n, err := s.port.Write(b)
	if err != nil {
		return err
	}
	if n != len(b) {
		return errors.New("transport: short write")
	}
	return nil
}

func (s *Serial) ReadExact(n int, timeout time.Duration) ([]byte, error) {
	out := make([]byte, 0, n)

	if len(s.pending) > 0 {
		take := len(s.pending)
		if take > n {
			take = n
		}
		out = append(out, s.pending[:take]...)
		s.pending = s.pending[take:]
	}

	deadline := time.Now().Add(timeout)
	for len(out) < n {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return out, &ErrTimeout{Wanted: n, Got: len(out), Timeout: timeout}
		}
		if err := s.port.SetReadTimeout(remaining); err != nil {
			return out, err
		}
		buf := make([]byte, n-len(out))
		k, err := s.port.Read(buf)
		if err != nil {
			return out, err
		}
		if k == 0 {
			return out, &ErrTimeout{Wanted: n, Got: len(out), Timeout: timeout}
		}
		out = append(out, buf[:k]...)
	}
	return out, nil
}

func (s *Serial) BytesAvailable() (int, error) {
	if len(s.pending) > 0 {
		return len(s.pending), nil
	}
	if err := s.port.SetReadTimeout(time.Millisecond); err != nil {
		return 0, err
	}
	buf := make([]byte, 4096)
	n, err := s.port.Read(buf)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.pending = append(s.pending, buf[:n]...)
	}
	return len(s.pending), nil
}

func (s *Serial) FlushInput() error {
	s.pending = nil
	return s.port.ResetInputBuffer()
}

func (s *Serial) FlushOutput() error {
	return s.port.ResetOutputBuffer()
}

func (s *Serial) Close() error {
	return s.port.Close()
}
