package memory

import (
	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// tacLookup maps the TAC clock select (bits 1-0) to the bit of the internal
// 16-bit divider whose falling edge clocks TIMA:
//
//	00 -> bit 9  (4096 Hz)
//	01 -> bit 3  (262144 Hz)
//	10 -> bit 5  (65536 Hz)
//	11 -> bit 7  (16384 Hz)
var tacLookup = [4]uint16{9, 3, 5, 7}

// Timer derives DIV and the TIMA/TMA/TAC counter from the master clock.
// DIV is the upper byte of a free-running 16-bit counter; TIMA increments on
// falling edges of the TAC-selected divider bit while enabled.
type Timer struct {
	systemCounter uint16
	lastTimerBit  bool
	timaOverflow  int  // cycles remaining until TIMA reloads from TMA
	timaDelayIRQ  bool // interrupt request lands one cycle after the reload

	tima byte
	tma  byte
	tac  byte

	// RequestInterrupt is called when the overflow interrupt becomes visible.
	RequestInterrupt func()
}

// Tick advances the timer by the given number of clock cycles.
func (t *Timer) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		if t.timaDelayIRQ {
			if t.RequestInterrupt != nil {
				t.RequestInterrupt()
			}
			t.timaDelayIRQ = false
		}

		t.systemCounter++

		if t.timaOverflow > 0 {
			// TIMA reads 0x00 during the overflow window; the TMA reload and
			// the interrupt request become visible one cycle apart.
			t.timaOverflow--
			if t.timaOverflow == 0 {
				t.tima = t.tma
				t.timaDelayIRQ = true
			}
			continue
		}

		if bit.IsSet(2, t.tac) {
			current := bit.IsSet16(tacLookup[t.tac&0x03], t.systemCounter)
			if t.lastTimerBit && !current {
				t.incrementTIMA()
			}
			t.lastTimerBit = current
		} else {
			t.lastTimerBit = false
		}
	}
}

func (t *Timer) incrementTIMA() {
	if t.tima == 0xFF {
		t.timaOverflow = 4
	}
	t.tima++
}

// Read returns the value of one of the timer registers.
func (t *Timer) Read(address uint16) byte {
	switch address {
	case addr.DIV:
		return byte(t.systemCounter >> 8)
	case addr.TIMA:
		return t.tima
	case addr.TMA:
		return t.tma
	case addr.TAC:
		return t.tac | 0xF8 // unused bits read as 1
	default:
		return 0xFF
	}
}

// Write stores a value into one of the timer registers.
func (t *Timer) Write(address uint16, value byte) {
	switch address {
	case addr.DIV:
		// any write resets the whole internal counter
		t.systemCounter = 0
	case addr.TIMA:
		t.tima = value
	case addr.TMA:
		t.tma = value
	case addr.TAC:
		t.tac = value & 0x07
	}
}

// Divider exposes the internal 16-bit counter, used by tests.
func (t *Timer) Divider() uint16 {
	return t.systemCounter
}
