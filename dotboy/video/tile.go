package video

import "github.com/andreav/dotboy/dotboy/bit"

// TileRow is one row of a tile pattern: 8 pixels packed across two
// bit planes. Bit (7 - column) of Low is the low bit of a pixel's color
// id and the same bit of High is the high bit:
//
//	Low  (0x3C): 0 0 1 1 1 1 0 0
//	High (0x7E): 0 1 1 1 1 1 1 0
//	            -----------------
//	Color ids:   0 2 3 3 3 3 2 0
//
// A full 8x8 tile is 8 such rows, 16 bytes in VRAM. The id is an index
// into a palette register, not a color; for objects id 0 is transparent.
type TileRow struct {
	Low  byte
	High byte
}

// GetPixel extracts the color id (0-3) of a column, 0 being leftmost.
func (t TileRow) GetPixel(column int) int {
	index := uint8(7 - column)

	id := 0
	if bit.IsSet(index, t.Low) {
		id |= 1
	}
	if bit.IsSet(index, t.High) {
		id |= 2
	}

	return id
}

// GetPixelFlipped extracts a color id with the row mirrored, for the
// object X-flip attribute.
func (t TileRow) GetPixelFlipped(column int) int {
	return t.GetPixel(7 - column)
}

// VRAMReader is the read access the renderer needs into video memory.
// It must bypass any mode-based access blocking.
type VRAMReader interface {
	ReadRaw(address uint16) byte
}

// fetchTileRow reads one 2-byte row of the tile starting at base.
func fetchTileRow(mem VRAMReader, base uint16, row int) TileRow {
	address := base + uint16(row)*2
	return TileRow{
		Low:  mem.ReadRaw(address),
		High: mem.ReadRaw(address + 1),
	}
}
