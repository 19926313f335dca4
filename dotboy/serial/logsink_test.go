package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreav/dotboy/dotboy/addr"
)

func TestTransferLifecycle(t *testing.T) {
	var irqs int
	s := NewLogSink(func() { irqs++ })

	s.Write(addr.SB, 'P')
	assert.Equal(t, byte('P'), s.Read(addr.SB))
	assert.Zero(t, irqs, "nothing happens until SC starts a transfer")

	s.Write(addr.SC, 0x81)

	assert.Equal(t, byte(0xFF), s.Read(addr.SB), "no peer: all ones received")
	assert.Equal(t, byte(0x7F), s.Read(addr.SC), "start bit cleared, unused bits high")
	assert.Equal(t, 1, irqs)
}

func TestTransferNeedsInternalClock(t *testing.T) {
	var irqs int
	s := NewLogSink(func() { irqs++ })

	s.Write(addr.SB, 'x')
	s.Write(addr.SC, 0x80) // start bit without clock select

	assert.Equal(t, byte('x'), s.Read(addr.SB))
	assert.Zero(t, irqs)
}

func TestOnByteObserver(t *testing.T) {
	s := NewLogSink(nil)

	var got []byte
	s.OnByte = func(b byte) { got = append(got, b) }

	for _, ch := range []byte("Passed") {
		s.Write(addr.SB, ch)
		s.Write(addr.SC, 0x81)
	}

	require.Equal(t, "Passed", string(got))
}

func TestReset(t *testing.T) {
	s := NewLogSink(nil)
	s.Write(addr.SB, 0x42)

	s.Reset()

	assert.Equal(t, byte(0x00), s.Read(addr.SB))
	assert.Equal(t, byte(0x7E), s.Read(addr.SC))
}
