package video

// GBColor is one of the four shades the display can produce, as an
// ARGB value ready for the presentation layer.
type GBColor uint32

const (
	WhiteColor     GBColor = 0xFFFFFFFF
	LightGreyColor GBColor = 0xFF989898
	DarkGreyColor  GBColor = 0xFF4C4C4C
	BlackColor     GBColor = 0xFF000000
)

const (
	FramebufferWidth  = 160
	FramebufferHeight = 144
)

// FrameBuffer is the 160x144 pixel grid the PPU renders into. It is only
// consistent as a whole at the V-blank hand-off; presentation code must
// take a Snapshot rather than read the live buffer.
type FrameBuffer struct {
	buffer [FramebufferWidth * FramebufferHeight]uint32
}

func NewFrameBuffer() *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Clear()
	return fb
}

func (fb *FrameBuffer) GetPixel(x, y int) GBColor {
	return GBColor(fb.buffer[y*FramebufferWidth+x])
}

func (fb *FrameBuffer) SetPixel(x, y int, color GBColor) {
	fb.buffer[y*FramebufferWidth+x] = uint32(color)
}

// Clear fills the buffer with the lightest shade, the color of a blank LCD.
func (fb *FrameBuffer) Clear() {
	for i := range fb.buffer {
		fb.buffer[i] = uint32(WhiteColor)
	}
}

// ToSlice exposes the live pixels. Only safe to read between V-blank and
// the next line 0.
func (fb *FrameBuffer) ToSlice() []uint32 {
	return fb.buffer[:]
}

// Snapshot copies the current pixels, for hand-off to a renderer running
// on another goroutine.
func (fb *FrameBuffer) Snapshot() []uint32 {
	out := make([]uint32, len(fb.buffer))
	copy(out, fb.buffer[:])
	return out
}
