// Package dotboy wires the emulation core together: one Emulator owns the
// memory unit, the CPU, the PPU and the serial device, and drives them
// cooperatively from the CPU's instruction stepping.
package dotboy

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/cpu"
	"github.com/andreav/dotboy/dotboy/memory"
	"github.com/andreav/dotboy/dotboy/serial"
	"github.com/andreav/dotboy/dotboy/video"
)

// Emulator is the emulation context. The CPU instruction loop is the sole
// clock: every other component advances by exactly the cycle count the
// just-executed instruction consumed. Nothing here is safe for concurrent
// use; renderers on other goroutines must take framebuffer snapshots.
type Emulator struct {
	bus    *memory.MMU
	cpu    *cpu.CPU
	ppu    *video.PPU
	serial *serial.LogSink

	logger *slog.Logger
}

// New creates an emulator with no cartridge inserted.
func New() *Emulator {
	return build(memory.New())
}

// NewWithROM creates an emulator with the given cartridge image loaded.
func NewWithROM(data []byte) (*Emulator, error) {
	cart, err := memory.NewCartridgeWithData(data)
	if err != nil {
		return nil, err
	}
	return build(memory.NewWithCartridge(cart)), nil
}

// NewWithFile loads a cartridge image from disk.
func NewWithFile(path string) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	e, err := NewWithROM(data)
	if err != nil {
		return nil, err
	}
	e.logger.Info("loaded ROM", "path", path, "size", len(data))
	return e, nil
}

func build(bus *memory.MMU) *Emulator {
	e := &Emulator{
		bus:    bus,
		logger: slog.Default(),
	}

	e.serial = serial.NewLogSink(func() { bus.RequestInterrupt(addr.SerialInterrupt) })
	bus.SetSerial(e.serial)

	e.cpu = cpu.New(bus)
	e.ppu = video.New(bus)

	return e
}

// Step executes one CPU instruction (or interrupt dispatch) and advances
// the timer, serial and video units by the cycles it consumed.
func (e *Emulator) Step() (int, error) {
	cycles, err := e.cpu.Step()
	if err != nil {
		text, _ := e.cpu.Disassemble(e.cpu.PC())
		e.logger.Error("execution fault", "err", err, "at", text, "flags", e.cpu.FlagString())
		return 0, err
	}

	e.bus.Tick(cycles)
	e.ppu.Tick(cycles)

	return cycles, nil
}

// RunUntilFrame steps until the PPU publishes the next frame.
func (e *Emulator) RunUntilFrame() error {
	start := e.ppu.Frames()
	for e.ppu.Frames() == start {
		if _, err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Framebuffer returns the live render target. Only complete at V-blank;
// use Snapshot for cross-goroutine hand-off.
func (e *Emulator) Framebuffer() *video.FrameBuffer {
	return e.ppu.Framebuffer()
}

// Frames returns the number of frames rendered so far.
func (e *Emulator) Frames() uint64 {
	return e.ppu.Frames()
}

// SetFrameListener registers a callback invoked at each V-blank.
func (e *Emulator) SetFrameListener(fn func(*video.FrameBuffer)) {
	e.ppu.SetFrameListener(fn)
}

// SetSerialObserver registers a callback receiving every byte written to
// the serial channel.
func (e *Emulator) SetSerialObserver(fn func(byte)) {
	e.serial.OnByte = fn
}

// HandleKeyPress records a joypad key going down.
func (e *Emulator) HandleKeyPress(key memory.JoypadKey) {
	e.bus.HandleKeyPress(key)
}

// HandleKeyRelease records a joypad key coming back up.
func (e *Emulator) HandleKeyRelease(key memory.JoypadKey) {
	e.bus.HandleKeyRelease(key)
}

// CPU exposes the processor, for debug tooling.
func (e *Emulator) CPU() *cpu.CPU {
	return e.cpu
}

// Bus exposes the memory unit, for debug tooling and tests.
func (e *Emulator) Bus() *memory.MMU {
	return e.bus
}
