package video

import (
	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

// Mode is one of the four PPU states, numbered as the low two STAT bits
// expose them.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	PixelTransfer
)

const (
	oamScanDots  = 80
	transferDots = 172
	hblankDots   = 204
	lineDots     = oamScanDots + transferDots + hblankDots

	totalLines = 154
	// FrameDots is the length of a full frame: 154 lines of 456 dots.
	FrameDots = lineDots * totalLines
)

// STAT register bits.
const (
	statLYCFlag        uint8 = 2 // coincidence flag, read only
	statHBlankSelect   uint8 = 3
	statVBlankSelect   uint8 = 4
	statOAMSelect      uint8 = 5
	statLYCSelect      uint8 = 6
)

// LCDC register bits.
const (
	bgDisplay           uint8 = 0
	spriteDisplayEnable uint8 = 1
	spriteSizeSelect    uint8 = 2
	bgTileMapSelect     uint8 = 3
	tileDataSelect      uint8 = 4
	windowDisplayEnable uint8 = 5
	windowTileMapSelect uint8 = 6
	lcdDisplayEnable    uint8 = 7
)

// Bus is the memory access the PPU needs: raw reads and writes that
// bypass the mode-based blocking it itself imposes on the CPU, interrupt
// requests, and control of that blocking.
type Bus interface {
	VRAMReader
	WriteRaw(address uint16, value byte)
	RequestInterrupt(interrupt addr.Interrupt)
	SetAccessRestrictions(oamBlocked, vramBlocked bool)
}

// PPU is the per-scanline video state machine. Tick advances it by the
// cycle count the CPU just consumed; a scanline is rendered into the
// framebuffer when pixel transfer hands over to H-blank, and the frame is
// published on entry to V-blank.
type PPU struct {
	bus         Bus
	framebuffer *FrameBuffer
	selector    spriteSelector

	mode Mode
	dots int
	line int

	// the window keeps its own line counter, advanced only on lines where
	// it actually rendered, and latches its WY trigger per frame
	windowLine      int
	windowTriggered bool

	lcdWasEnabled bool

	frames  uint64
	onFrame func(*FrameBuffer)
}

func New(bus Bus) *PPU {
	p := &PPU{
		bus:           bus,
		framebuffer:   NewFrameBuffer(),
		mode:          OAMScan,
		lcdWasEnabled: true,
	}
	p.selector.mem = bus
	return p
}

// Framebuffer exposes the live render target. Consistent as a full frame
// only at the V-blank hand-off.
func (p *PPU) Framebuffer() *FrameBuffer {
	return p.framebuffer
}

// Frames returns the number of frames published so far.
func (p *PPU) Frames() uint64 {
	return p.frames
}

// SetFrameListener registers a callback invoked at each V-blank with the
// completed frame.
func (p *PPU) SetFrameListener(fn func(*FrameBuffer)) {
	p.onFrame = fn
}

func (p *PPU) Mode() Mode {
	return p.mode
}

func (p *PPU) Line() int {
	return p.line
}

// Tick advances the state machine by the given cycle count.
func (p *PPU) Tick(cycles int) {
	if !bit.IsSet(lcdDisplayEnable, p.bus.ReadRaw(addr.LCDC)) {
		if p.lcdWasEnabled {
			p.shutDown()
		}
		return
	}
	if !p.lcdWasEnabled {
		// restart cleanly from the top of the frame
		p.lcdWasEnabled = true
		p.setMode(OAMScan)
	}

	p.dots += cycles

	switch p.mode {
	case OAMScan:
		if p.dots >= oamScanDots {
			p.dots -= oamScanDots
			p.setMode(PixelTransfer)
		}
	case PixelTransfer:
		if p.dots >= transferDots {
			p.dots -= transferDots
			p.renderScanline()
			p.setMode(HBlank)
		}
	case HBlank:
		if p.dots >= hblankDots {
			p.dots -= hblankDots
			p.advanceLine()

			if p.line == FramebufferHeight {
				p.setMode(VBlank)
				p.bus.RequestInterrupt(addr.VBlankInterrupt)
				p.publishFrame()
			} else {
				p.setMode(OAMScan)
			}
		}
	case VBlank:
		if p.dots >= lineDots {
			p.dots -= lineDots
			p.advanceLine()

			if p.line == totalLines {
				p.line = 0
				p.windowLine = 0
				p.windowTriggered = false
				p.bus.WriteRaw(addr.LY, 0)
				p.compareLYC()
				p.setMode(OAMScan)
			}
		}
	}
}

// shutDown parks the PPU while LCDC bit 7 is clear: LY reads 0, the mode
// bits read 0 and the CPU regains free access to VRAM and OAM.
func (p *PPU) shutDown() {
	p.lcdWasEnabled = false
	p.mode = HBlank
	p.dots = 0
	p.line = 0
	p.windowLine = 0
	p.windowTriggered = false

	p.bus.WriteRaw(addr.LY, 0)
	p.bus.WriteRaw(addr.STAT, p.bus.ReadRaw(addr.STAT)&^uint8(0x03))
	p.bus.SetAccessRestrictions(false, false)
}

func (p *PPU) advanceLine() {
	p.line++
	p.bus.WriteRaw(addr.LY, uint8(p.line))
	p.compareLYC()
}

// setMode updates the STAT mode bits, applies the access blocking for the
// new mode and raises a STAT request if the mode's select bit is on.
func (p *PPU) setMode(mode Mode) {
	p.mode = mode

	stat := p.bus.ReadRaw(addr.STAT)
	p.bus.WriteRaw(addr.STAT, stat&^uint8(0x03)|uint8(mode))

	switch mode {
	case OAMScan:
		p.bus.SetAccessRestrictions(true, false)
	case PixelTransfer:
		p.bus.SetAccessRestrictions(true, true)
	default:
		p.bus.SetAccessRestrictions(false, false)
	}

	var selectBit uint8
	switch mode {
	case HBlank:
		selectBit = statHBlankSelect
	case VBlank:
		selectBit = statVBlankSelect
	case OAMScan:
		selectBit = statOAMSelect
	default:
		return
	}
	if bit.IsSet(selectBit, stat) {
		p.bus.RequestInterrupt(addr.StatInterrupt)
	}
}

// compareLYC maintains the coincidence flag and raises the STAT request
// on a match when selected.
func (p *PPU) compareLYC() {
	stat := p.bus.ReadRaw(addr.STAT)
	ly := p.bus.ReadRaw(addr.LY)
	lyc := p.bus.ReadRaw(addr.LYC)

	if ly == lyc {
		p.bus.WriteRaw(addr.STAT, bit.Set(statLYCFlag, stat))
		if bit.IsSet(statLYCSelect, stat) {
			p.bus.RequestInterrupt(addr.StatInterrupt)
		}
	} else {
		p.bus.WriteRaw(addr.STAT, bit.Clear(statLYCFlag, stat))
	}
}

func (p *PPU) publishFrame() {
	p.frames++
	if p.onFrame != nil {
		p.onFrame(p.framebuffer)
	}
}

// renderScanline draws the current line: background and window color ids
// first, then the selected sprites, resolved per pixel.
func (p *PPU) renderScanline() {
	lcdc := p.bus.ReadRaw(addr.LCDC)
	line := p.line

	// the window turns on for the rest of the frame once LY meets WY
	if uint8(line) == p.bus.ReadRaw(addr.WY) {
		p.windowTriggered = true
	}

	var bgIDs [FramebufferWidth]int
	bgEnabled := bit.IsSet(bgDisplay, lcdc)

	if bgEnabled {
		p.fillBackgroundIDs(lcdc, line, &bgIDs)
		p.fillWindowIDs(lcdc, &bgIDs)
	}

	type objPixel struct {
		present  bool
		colorID  int
		palette  uint8
		behindBG bool
	}
	var objects [FramebufferWidth]objPixel

	if bit.IsSet(spriteDisplayEnable, lcdc) {
		obp0 := p.bus.ReadRaw(addr.OBP0)
		obp1 := p.bus.ReadRaw(addr.OBP1)

		for _, sprite := range p.selector.selectForScanline(line, bit.IsSet(spriteSizeSelect, lcdc)) {
			for column := 0; column < 8; column++ {
				x := sprite.X + column
				if x < 0 || x >= FramebufferWidth || !sprite.OwnsColumn(column) {
					continue
				}

				id := sprite.pixelID(p.bus, line, column)
				if id == 0 {
					continue
				}

				palette := obp0
				if sprite.UseOBP1 {
					palette = obp1
				}
				objects[x] = objPixel{present: true, colorID: id, palette: palette, behindBG: sprite.BehindBG}
			}
		}
	}

	bgp := p.bus.ReadRaw(addr.BGP)
	for x := 0; x < FramebufferWidth; x++ {
		p.framebuffer.SetPixel(x, line, ResolvePixel(PixelInput{
			BGEnabled:      bgEnabled,
			BGColorID:      bgIDs[x],
			BGPalette:      bgp,
			HasObject:      objects[x].present,
			ObjectColorID:  objects[x].colorID,
			ObjectPalette:  objects[x].palette,
			ObjectBehindBG: objects[x].behindBG,
		}))
	}
}

// fillBackgroundIDs computes the background color id for every pixel of
// the line from the scrolled tilemap position.
func (p *PPU) fillBackgroundIDs(lcdc uint8, line int, ids *[FramebufferWidth]int) {
	scy := int(p.bus.ReadRaw(addr.SCY))
	scx := int(p.bus.ReadRaw(addr.SCX))
	mapBase := tileMapBase(lcdc, bgTileMapSelect)

	y := (line + scy) & 0xFF
	tileY := y / 8
	rowInTile := y % 8

	for x := 0; x < FramebufferWidth; x++ {
		scrolledX := (x + scx) & 0xFF
		tileX := scrolledX / 8

		tileID := p.bus.ReadRaw(mapBase + uint16(tileY*32+tileX))
		row := fetchTileRow(p.bus, tileDataAddress(lcdc, tileID), rowInTile)
		ids[x] = row.GetPixel(scrolledX % 8)
	}
}

// fillWindowIDs overlays the window's color ids from its own tilemap and
// internal line counter, which advances only when the window rendered.
func (p *PPU) fillWindowIDs(lcdc uint8, ids *[FramebufferWidth]int) {
	if !bit.IsSet(windowDisplayEnable, lcdc) || !p.windowTriggered {
		return
	}

	wx := int(p.bus.ReadRaw(addr.WX)) - 7
	if wx >= FramebufferWidth {
		return
	}

	mapBase := tileMapBase(lcdc, windowTileMapSelect)
	tileY := p.windowLine / 8
	rowInTile := p.windowLine % 8

	for x := max(wx, 0); x < FramebufferWidth; x++ {
		windowX := x - wx
		tileID := p.bus.ReadRaw(mapBase + uint16(tileY*32+windowX/8))
		row := fetchTileRow(p.bus, tileDataAddress(lcdc, tileID), rowInTile)
		ids[x] = row.GetPixel(windowX % 8)
	}

	p.windowLine++
}

func tileMapBase(lcdc, selectBit uint8) uint16 {
	if bit.IsSet(selectBit, lcdc) {
		return addr.TileMap1
	}
	return addr.TileMap0
}

// tileDataAddress resolves a tilemap id to the start of its 16-byte tile,
// using unsigned addressing from 0x8000 or signed addressing around
// 0x9000 per LCDC bit 4.
func tileDataAddress(lcdc uint8, tileID uint8) uint16 {
	if bit.IsSet(tileDataSelect, lcdc) {
		return addr.TileData0 + uint16(tileID)*16
	}
	return uint16(int(addr.TileData2) + int(int8(tileID))*16)
}
