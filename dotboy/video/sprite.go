package video

import (
	"github.com/andreav/dotboy/dotboy/addr"
	"github.com/andreav/dotboy/dotboy/bit"
)

const (
	oamEntryCount     = 40
	oamEntrySize      = 4
	maxSpritesPerLine = 10
)

// Sprite is one OAM entry with its attribute byte unpacked and screen
// coordinates adjusted for the hardware offsets (Y-16, X-8).
type Sprite struct {
	Y         int
	X         int
	TileIndex uint8
	OAMIndex  int
	Height    int // 8 or 16, from LCDC bit 2

	UseOBP1  bool
	FlipX    bool
	FlipY    bool
	BehindBG bool

	// PixelMask marks which of the sprite's 8 columns this sprite owns
	// after sprite-to-sprite priority resolution. Bit 7 is the leftmost.
	PixelMask uint8
}

// OwnsColumn reports whether this sprite won priority for its local
// column (0 = leftmost).
func (s *Sprite) OwnsColumn(column int) bool {
	return s.PixelMask&(1<<(7-uint(column))) != 0
}

// spritePriorityBuffer resolves sprite-to-sprite priority with per-pixel
// ownership instead of sorting: a sprite with a lower X wins a pixel, and
// on equal X the lower OAM index wins. Claims happen in OAM order during
// selection, so after all claims each pixel holds its final owner.
type spritePriorityBuffer struct {
	ownerIndex [FramebufferWidth]int
	ownerX     [FramebufferWidth]int
}

func (b *spritePriorityBuffer) clear() {
	for i := range b.ownerIndex {
		b.ownerIndex[i] = -1
		b.ownerX[i] = 0xFF
	}
}

func (b *spritePriorityBuffer) claim(pixelX, oamIndex, spriteX int) {
	if pixelX < 0 || pixelX >= FramebufferWidth {
		return
	}

	switch owner := b.ownerIndex[pixelX]; {
	case owner == -1,
		spriteX < b.ownerX[pixelX],
		spriteX == b.ownerX[pixelX] && oamIndex < owner:
		b.ownerIndex[pixelX] = oamIndex
		b.ownerX[pixelX] = spriteX
	}
}

func (b *spritePriorityBuffer) owner(pixelX int) int {
	if pixelX < 0 || pixelX >= FramebufferWidth {
		return -1
	}
	return b.ownerIndex[pixelX]
}

// spriteSelector scans OAM for the sprites overlapping a scanline.
type spriteSelector struct {
	mem      VRAMReader
	priority spritePriorityBuffer
	selected [maxSpritesPerLine]Sprite
}

// selectForScanline returns up to 10 sprites whose vertical extent covers
// line, in OAM order, each with its ownership mask resolved. The hardware
// stops scanning once 10 sprites match, whatever comes later in OAM.
func (sel *spriteSelector) selectForScanline(line int, tall bool) []Sprite {
	sprites := sel.selected[:0]
	sel.priority.clear()

	height := 8
	if tall {
		height = 16
	}

	for i := 0; i < oamEntryCount && len(sprites) < maxSpritesPerLine; i++ {
		base := addr.OAMStart + uint16(i*oamEntrySize)

		spriteY := int(sel.mem.ReadRaw(base)) - 16
		if line < spriteY || line >= spriteY+height {
			continue
		}

		spriteX := int(sel.mem.ReadRaw(base+1)) - 8
		flags := sel.mem.ReadRaw(base + 3)

		sprite := Sprite{
			Y:         spriteY,
			X:         spriteX,
			TileIndex: sel.mem.ReadRaw(base + 2),
			OAMIndex:  i,
			Height:    height,
			UseOBP1:   bit.IsSet(4, flags),
			FlipX:     bit.IsSet(5, flags),
			FlipY:     bit.IsSet(6, flags),
			BehindBG:  bit.IsSet(7, flags),
		}
		sprites = append(sprites, sprite)

		for column := 0; column < 8; column++ {
			sel.priority.claim(spriteX+column, i, spriteX)
		}
	}

	for i := range sprites {
		var mask uint8
		for column := 0; column < 8; column++ {
			if sel.priority.owner(sprites[i].X+column) == sprites[i].OAMIndex {
				mask |= 1 << (7 - uint(column))
			}
		}
		sprites[i].PixelMask = mask
	}

	return sprites
}

// rowAddress returns the VRAM address of the sprite's tile row covering
// line, with Y-flip applied to the local row before the 8x16 half is
// chosen. Tall sprites force an even tile index.
func (s *Sprite) rowAddress(line int) uint16 {
	row := line - s.Y
	if s.FlipY {
		row = s.Height - 1 - row
	}

	tile := s.TileIndex
	if s.Height == 16 {
		tile &= 0xFE
		if row >= 8 {
			tile |= 0x01
			row -= 8
		}
	}

	return addr.TileData0 + uint16(tile)*16 + uint16(row)*2
}

// pixelID extracts the sprite's color id at its local column.
func (s *Sprite) pixelID(mem VRAMReader, line, column int) int {
	address := s.rowAddress(line)
	row := TileRow{Low: mem.ReadRaw(address), High: mem.ReadRaw(address + 1)}

	if s.FlipX {
		return row.GetPixelFlipped(column)
	}
	return row.GetPixel(column)
}
