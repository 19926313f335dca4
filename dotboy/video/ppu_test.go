package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// ppuBus is a raw 64 KiB memory with interrupt and blocking bookkeeping.
type ppuBus struct {
	mem [0x10000]byte

	requested   []addr.Interrupt
	oamBlocked  bool
	vramBlocked bool
}

func newPPUBus() *ppuBus {
	b := &ppuBus{}
	b.mem[addr.LCDC] = 0x91 // LCD on, BG on, unsigned tile data
	return b
}

func (b *ppuBus) ReadRaw(address uint16) byte         { return b.mem[address] }
func (b *ppuBus) WriteRaw(address uint16, value byte) { b.mem[address] = value }

func (b *ppuBus) RequestInterrupt(interrupt addr.Interrupt) {
	b.requested = append(b.requested, interrupt)
	b.mem[addr.IF] = bit.Set(uint8(interrupt), b.mem[addr.IF])
}

func (b *ppuBus) SetAccessRestrictions(oamBlocked, vramBlocked bool) {
	b.oamBlocked = oamBlocked
	b.vramBlocked = vramBlocked
}

func (b *ppuBus) countRequests(interrupt addr.Interrupt) int {
	n := 0
	for _, r := range b.requested {
		if r == interrupt {
			n++
		}
	}
	return n
}

func tickLine(p *PPU) {
	// advance one full line in instruction-sized increments
	for i := 0; i < lineDots/4; i++ {
		p.Tick(4)
	}
}

func TestModeDurationsSumToLine(t *testing.T) {
	assert.Equal(t, 456, oamScanDots+transferDots+hblankDots)
	assert.Equal(t, 456, lineDots)
	assert.Equal(t, 70224, FrameDots)
}

func TestFrameCadence(t *testing.T) {
	bus := newPPUBus()
	p := New(bus)

	for line := 0; line < FramebufferHeight; line++ {
		tickLine(p)
	}

	assert.Equal(t, uint64(1), p.Frames(), "frame published entering V-blank")
	assert.Equal(t, 1, bus.countRequests(addr.VBlankInterrupt))
	assert.Equal(t, VBlank, p.Mode())
	assert.Equal(t, uint8(FramebufferHeight), bus.mem[addr.LY])

	for line := FramebufferHeight; line < totalLines; line++ {
		tickLine(p)
	}

	assert.Equal(t, OAMScan, p.Mode(), "wrapped to the top of the next frame")
	assert.Equal(t, uint8(0), bus.mem[addr.LY])
	assert.Equal(t, 1, bus.countRequests(addr.VBlankInterrupt), "one request per frame")

	for line := 0; line < totalLines; line++ {
		tickLine(p)
	}
	assert.Equal(t, uint64(2), p.Frames(), "a frame is exactly 70224 cycles")
}

func TestModeSequenceWithinLine(t *testing.T) {
	bus := newPPUBus()
	p := New(bus)

	assert.Equal(t, OAMScan, p.Mode())

	p.Tick(oamScanDots)
	assert.Equal(t, PixelTransfer, p.Mode())
	assert.True(t, bus.oamBlocked)
	assert.True(t, bus.vramBlocked)

	p.Tick(transferDots)
	assert.Equal(t, HBlank, p.Mode())
	assert.False(t, bus.oamBlocked)
	assert.False(t, bus.vramBlocked)

	p.Tick(hblankDots)
	assert.Equal(t, OAMScan, p.Mode())
	assert.Equal(t, uint8(1), bus.mem[addr.LY])
	assert.True(t, bus.oamBlocked)
	assert.False(t, bus.vramBlocked)

	assert.Equal(t, uint8(OAMScan), bus.mem[addr.STAT]&0x03, "STAT exposes the mode")
}

func TestStatModeInterruptSelects(t *testing.T) {
	bus := newPPUBus()
	bus.mem[addr.STAT] = 1 << statHBlankSelect
	p := New(bus)

	p.Tick(oamScanDots)
	assert.Zero(t, bus.countRequests(addr.StatInterrupt))

	p.Tick(transferDots)
	assert.Equal(t, 1, bus.countRequests(addr.StatInterrupt), "H-blank entry fires when selected")
}

func TestLYCCoincidence(t *testing.T) {
	bus := newPPUBus()
	bus.mem[addr.LYC] = 2
	bus.mem[addr.STAT] = 1 << statLYCSelect
	p := New(bus)

	tickLine(p)
	assert.Zero(t, bus.mem[addr.STAT]&(1<<statLYCFlag), "no match on line 1")
	assert.Zero(t, bus.countRequests(addr.StatInterrupt))

	tickLine(p)
	assert.NotZero(t, bus.mem[addr.STAT]&(1<<statLYCFlag), "LY=LYC sets the flag")
	assert.Equal(t, 1, bus.countRequests(addr.StatInterrupt))

	tickLine(p)
	assert.Zero(t, bus.mem[addr.STAT]&(1<<statLYCFlag), "flag clears when LY moves on")
}

func TestLCDOff(t *testing.T) {
	bus := newPPUBus()
	p := New(bus)

	tickLine(p)
	tickLine(p)
	require.Equal(t, uint8(2), bus.mem[addr.LY])

	bus.mem[addr.LCDC] = bit.Clear(lcdDisplayEnable, bus.mem[addr.LCDC])
	p.Tick(4)

	assert.Equal(t, uint8(0), bus.mem[addr.LY], "LY holds 0 while off")
	assert.Zero(t, bus.mem[addr.STAT]&0x03, "mode reads 0 while off")
	assert.False(t, bus.oamBlocked)
	assert.False(t, bus.vramBlocked)

	frames := p.Frames()
	for i := 0; i < FrameDots/4; i++ {
		p.Tick(4)
	}
	assert.Equal(t, frames, p.Frames(), "no frames while off")

	bus.mem[addr.LCDC] = bit.Set(lcdDisplayEnable, bus.mem[addr.LCDC])
	p.Tick(4)
	assert.Equal(t, OAMScan, p.Mode(), "restart from the top of the frame")
}

func TestRenderScanlineBackground(t *testing.T) {
	bus := newPPUBus()
	// tile 1: every pixel color id 3
	for i := uint16(0); i < 16; i++ {
		bus.mem[addr.TileData0+16+i] = 0xFF
	}
	// tilemap 0, first row points at tile 1
	for i := uint16(0); i < 32; i++ {
		bus.mem[addr.TileMap0+i] = 1
	}
	bus.mem[addr.BGP] = identityPalette

	p := New(bus)
	p.Tick(oamScanDots)
	p.Tick(transferDots) // renders line 0

	for x := 0; x < FramebufferWidth; x++ {
		require.Equal(t, BlackColor, p.Framebuffer().GetPixel(x, 0), "x=%d", x)
	}
}

func TestRenderScanlineScrollsBackground(t *testing.T) {
	bus := newPPUBus()
	// tile 1 is solid color id 3; map row 1 (y 8-15) points at it
	for i := uint16(0); i < 16; i++ {
		bus.mem[addr.TileData0+16+i] = 0xFF
	}
	for i := uint16(0); i < 32; i++ {
		bus.mem[addr.TileMap0+32+i] = 1
	}
	bus.mem[addr.BGP] = identityPalette
	bus.mem[addr.SCY] = 8

	p := New(bus)
	p.Tick(oamScanDots)
	p.Tick(transferDots)

	assert.Equal(t, BlackColor, p.Framebuffer().GetPixel(0, 0), "SCY moves map row 1 onto line 0")
}

func TestRenderScanlineObjectOverBackground(t *testing.T) {
	bus := newPPUBus()
	bus.mem[addr.LCDC] = bit.Set(spriteDisplayEnable, bus.mem[addr.LCDC])
	bus.mem[addr.BGP] = identityPalette
	bus.mem[addr.OBP0] = identityPalette

	// object tile 2: solid color id 3
	for i := uint16(0); i < 16; i++ {
		bus.mem[addr.TileData0+2*16+i] = 0xFF
	}
	// sprite 0 at screen (0, 0)
	bus.mem[addr.OAMStart] = 16
	bus.mem[addr.OAMStart+1] = 8
	bus.mem[addr.OAMStart+2] = 2

	p := New(bus)
	p.Tick(oamScanDots)
	p.Tick(transferDots)

	for x := 0; x < 8; x++ {
		assert.Equal(t, BlackColor, p.Framebuffer().GetPixel(x, 0), "sprite pixel %d", x)
	}
	assert.Equal(t, WhiteColor, p.Framebuffer().GetPixel(8, 0), "background past the sprite")
}

func TestWindowOverridesBackground(t *testing.T) {
	bus := newPPUBus()
	lcdc := bus.mem[addr.LCDC]
	lcdc = bit.Set(windowDisplayEnable, lcdc)
	lcdc = bit.Set(windowTileMapSelect, lcdc) // window on map 1, background on map 0
	bus.mem[addr.LCDC] = lcdc
	bus.mem[addr.BGP] = identityPalette
	bus.mem[addr.WY] = 0
	bus.mem[addr.WX] = 7 + 80 // window starts at screen x 80

	// the window's map points at solid tile 1, the background map at tile 0
	for i := uint16(0); i < 16; i++ {
		bus.mem[addr.TileData0+16+i] = 0xFF
	}
	for i := uint16(0); i < 32; i++ {
		bus.mem[addr.TileMap1+i] = 1
	}

	p := New(bus)
	p.Tick(oamScanDots)
	p.Tick(transferDots)

	assert.Equal(t, WhiteColor, p.Framebuffer().GetPixel(79, 0), "background left of the window")
	assert.Equal(t, BlackColor, p.Framebuffer().GetPixel(80, 0), "window pixel")
	assert.Equal(t, BlackColor, p.Framebuffer().GetPixel(159, 0))
}

func TestWindowLineCounterAdvancesOnlyWhenRendered(t *testing.T) {
	bus := newPPUBus()
	lcdc := bus.mem[addr.LCDC]
	lcdc = bit.Set(windowDisplayEnable, lcdc)
	bus.mem[addr.LCDC] = lcdc
	bus.mem[addr.WY] = 2
	bus.mem[addr.WX] = 7

	p := New(bus)

	tickLine(p)
	assert.Equal(t, 0, p.windowLine, "window not yet triggered")

	tickLine(p)
	assert.Equal(t, 0, p.windowLine)

	tickLine(p) // line 2: LY met WY, window renders
	assert.Equal(t, 1, p.windowLine)

	tickLine(p)
	assert.Equal(t, 2, p.windowLine)
}
