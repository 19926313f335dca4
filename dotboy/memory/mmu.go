package memory

import (
	"fmt"
	"log/slog"

	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
	"github.com/andreav/dotboy/dotboy/serial"
)

type memRegion uint8

const (
	regionROM memRegion = iota
	regionVRAM
	regionExtRAM
	regionWRAM
	regionEcho
	regionOAM
	regionIO
)

// JoypadKey identifies a key on the joypad.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// SerialPort is the minimal interface for a serial device connected to SB/SC.
// Implementations must only accept reads/writes to addr.SB and addr.SC.
type SerialPort interface {
	Write(address uint16, value byte)
	Read(address uint16) byte
	Reset()
}

// MMU owns the 64 KiB address space and every memory-mapped register bank.
// All component communication goes through Read/Write; address decode picks
// the owning component and applies its side effects.
type MMU struct {
	cart      *Cartridge
	memory    []byte
	regionMap [256]memRegion

	serial SerialPort
	timer  Timer

	joypadButtons uint8 // A/B/Select/Start, 0 = pressed
	joypadDpad    uint8 // Right/Left/Up/Down, 0 = pressed

	// access restrictions raised by the PPU while it owns OAM/VRAM
	oamBlocked  bool
	vramBlocked bool
}

// New creates a memory unit with no cartridge inserted.
func New() *MMU {
	m := &MMU{
		memory:        make([]byte, 0x10000),
		cart:          NewCartridge(),
		joypadButtons: 0x0F,
		joypadDpad:    0x0F,
	}
	m.serial = serial.NewLogSink(func() { m.RequestInterrupt(addr.SerialInterrupt) })
	m.timer.RequestInterrupt = func() { m.RequestInterrupt(addr.TimerInterrupt) }
	initRegionMap(m)
	m.initRegisters()
	return m
}

// NewWithCartridge creates a memory unit with the provided cartridge loaded.
func NewWithCartridge(cart *Cartridge) *MMU {
	m := New()
	m.cart = cart
	return m
}

// SetSerial attaches a serial device to SB/SC.
func (m *MMU) SetSerial(s SerialPort) {
	m.serial = s
}

// Timer exposes the timer unit, used by tests.
func (m *MMU) Timer() *Timer {
	return &m.timer
}

func initRegionMap(m *MMU) {
	for i := 0x00; i <= 0x7F; i++ {
		m.regionMap[i] = regionROM
	}
	for i := 0x80; i <= 0x9F; i++ {
		m.regionMap[i] = regionVRAM
	}
	for i := 0xA0; i <= 0xBF; i++ {
		m.regionMap[i] = regionExtRAM
	}
	for i := 0xC0; i <= 0xDF; i++ {
		m.regionMap[i] = regionWRAM
	}
	for i := 0xE0; i <= 0xFD; i++ {
		m.regionMap[i] = regionEcho
	}
	m.regionMap[0xFE] = regionOAM
	m.regionMap[0xFF] = regionIO
}

// initRegisters applies the post-boot register values a DMG is left with
// after its boot ROM hands over control.
func (m *MMU) initRegisters() {
	m.memory[addr.P1] = 0xCF
	m.memory[addr.IF] = 0xE1
	m.memory[addr.LCDC] = 0x91
	m.memory[addr.STAT] = 0x85
	m.memory[addr.BGP] = 0xFC
	m.memory[addr.OBP0] = 0xFF
	m.memory[addr.OBP1] = 0xFF
	m.memory[addr.IE] = 0x00
}

// Tick advances any memory-mapped peripheral that follows the master clock.
func (m *MMU) Tick(cycles int) {
	m.timer.Tick(cycles)
}

// SetAccessRestrictions is called by the PPU at mode transitions: while the
// PPU owns OAM (modes 2 and 3) or VRAM (mode 3), CPU reads see 0xFF and CPU
// writes are dropped. Raw accessors bypass the restriction.
func (m *MMU) SetAccessRestrictions(oamBlocked, vramBlocked bool) {
	m.oamBlocked = oamBlocked
	m.vramBlocked = vramBlocked
}

// RequestInterrupt sets the request bit of the chosen interrupt in IF.
func (m *MMU) RequestInterrupt(interrupt addr.Interrupt) {
	m.memory[addr.IF] = bit.Set(uint8(interrupt), m.memory[addr.IF]) | 0xE0
}

// Read returns the byte visible to the CPU at the given address.
func (m *MMU) Read(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM:
		return m.cart.Read(address)
	case regionVRAM:
		if m.vramBlocked {
			return 0xFF
		}
		return m.memory[address]
	case regionExtRAM:
		// no cartridge RAM without a bank controller
		return 0xFF
	case regionWRAM:
		return m.memory[address]
	case regionEcho:
		return m.memory[address-0x2000]
	case regionOAM:
		if address > addr.OAMEnd {
			return 0xFF
		}
		if m.oamBlocked {
			return 0xFF
		}
		return m.memory[address]
	case regionIO:
		return m.readIO(address)
	default:
		panic(fmt.Sprintf("unmapped read at 0x%04X", address))
	}
}

// Write stores a byte at the given address, applying register side effects.
func (m *MMU) Write(address uint16, value byte) {
	switch m.regionMap[address>>8] {
	case regionROM:
		// flat ROM, no bank controller to talk to
		slog.Debug("ignored ROM write", "addr", fmt.Sprintf("0x%04X", address),
			"value", fmt.Sprintf("0x%02X", value))
	case regionVRAM:
		if m.vramBlocked {
			return
		}
		m.memory[address] = value
	case regionExtRAM:
		// dropped, see Read
	case regionWRAM:
		m.memory[address] = value
	case regionEcho:
		m.memory[address-0x2000] = value
	case regionOAM:
		if address > addr.OAMEnd || m.oamBlocked {
			return
		}
		m.memory[address] = value
	case regionIO:
		m.writeIO(address, value)
	default:
		panic(fmt.Sprintf("unmapped write at 0x%04X", address))
	}
}

func (m *MMU) readIO(address uint16) byte {
	switch {
	case address == addr.P1:
		return m.memory[address]
	case address == addr.SB || address == addr.SC:
		return m.serial.Read(address)
	case address >= addr.DIV && address <= addr.TAC:
		return m.timer.Read(address)
	case address == addr.IF:
		// upper 3 bits are unused and always read as 1
		return m.memory[address] | 0xE0
	default:
		return m.memory[address]
	}
}

func (m *MMU) writeIO(address uint16, value byte) {
	switch {
	case address == addr.P1:
		m.writeJoypad(value)
	case address == addr.SB || address == addr.SC:
		m.serial.Write(address, value)
	case address >= addr.DIV && address <= addr.TAC:
		m.timer.Write(address, value)
	case address == addr.IF:
		m.memory[address] = value | 0xE0
	case address == addr.DMA:
		m.memory[address] = value
		m.runDMA(value)
	case address == addr.LY:
		// read only to the CPU; the PPU maintains it through WriteRaw
	case address == addr.STAT:
		// the low 3 bits (mode, coincidence) belong to the PPU
		m.memory[address] = (value & 0xF8) | (m.memory[address] & 0x07) | 0x80
	default:
		m.memory[address] = value
	}
}

// runDMA copies 160 bytes from value<<8 into OAM in one synchronous burst.
// It bypasses access restrictions: the copy is hardware-internal.
func (m *MMU) runDMA(value byte) {
	source := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		m.memory[addr.OAMStart+i] = m.ReadRaw(source + i)
	}
}

// ReadRaw reads without access restrictions or IO side effects. Used by the
// PPU, the DMA engine and debug tooling.
func (m *MMU) ReadRaw(address uint16) byte {
	switch m.regionMap[address>>8] {
	case regionROM:
		return m.cart.Read(address)
	case regionEcho:
		return m.memory[address-0x2000]
	default:
		return m.memory[address]
	}
}

// WriteRaw writes without access restrictions or IO side effects. Used by
// the PPU to maintain LY and the STAT mode bits.
func (m *MMU) WriteRaw(address uint16, value byte) {
	m.memory[address] = value
}

// ReadBit reports whether the given bit is set at the given address.
func (m *MMU) ReadBit(index uint8, address uint16) bool {
	return bit.IsSet(index, m.Read(address))
}
