package serial

import (
	"log/slog"

	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// LogSink is a serial device with no peer on the other end of the link cable.
// Outgoing bytes are logged as text and handed to an optional observer, which
// is how conformance test ROMs make their pass/fail output visible.
type LogSink struct {
	irqHandler func()
	sb, sc     byte

	// OnByte, when set, receives every transmitted byte.
	OnByte func(b byte)

	logger *slog.Logger
	line   []byte
}

// NewLogSink creates a serial sink. The passed function is invoked when a
// transfer completes and should request the serial interrupt.
func NewLogSink(irq func()) *LogSink {
	s := &LogSink{
		irqHandler: irq,
		logger:     slog.Default(),
	}
	s.Reset()
	return s
}

// Write handles stores to SB or SC.
func (s *LogSink) Write(address uint16, value byte) {
	switch address {
	case addr.SB:
		s.sb = value
	case addr.SC:
		s.sc = value
		s.maybeStartTransfer()
	default:
		panic("serial.LogSink: invalid write address")
	}
}

// Read handles loads from SB or SC.
func (s *LogSink) Read(address uint16) byte {
	switch address {
	case addr.SB:
		return s.sb
	case addr.SC:
		return s.sc | 0x7E // unused bits read as 1
	default:
		panic("serial.LogSink: invalid read address")
	}
}

// Reset restores the power-on state.
func (s *LogSink) Reset() {
	s.sb = 0x00
	s.sc = 0x00
	s.line = s.line[:0]
}

func (s *LogSink) maybeStartTransfer() {
	// a transfer starts when both the start bit (7) and the internal clock
	// select (0) are set.
	if !bit.IsSet(7, s.sc) || !bit.IsSet(0, s.sc) {
		return
	}

	b := s.sb
	if s.OnByte != nil {
		s.OnByte(b)
	}

	// buffer printable output until a line break for readable logs
	if b == 0 || b == '\n' || b == '\r' {
		if len(s.line) > 0 {
			s.logger.Info("serial", "line", string(s.line))
			s.line = s.line[:0]
		}
	} else {
		s.line = append(s.line, b)
	}

	s.completeTransfer()
}

func (s *LogSink) completeTransfer() {
	// with no peer the received byte is all ones
	s.sb = 0xFF
	s.sc = bit.Clear(7, s.sc)
	if s.irqHandler != nil {
		s.irqHandler()
	}
}
