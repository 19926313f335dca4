package video

// PixelInput is everything that determines the final color of one screen
// pixel. It is assembled by the scanline renderer but carries no PPU
// state, so resolution can be exercised directly with synthetic values.
type PixelInput struct {
	// BGEnabled mirrors LCDC bit 0. When clear the background and window
	// render as color id 0 and never win priority.
	BGEnabled bool
	// BGColorID is the background or window color id at this pixel (0-3).
	BGColorID int
	// BGPalette is the BGP register value.
	BGPalette uint8

	// HasObject reports whether a selected sprite owning this pixel
	// covers it.
	HasObject bool
	// ObjectColorID is the object's color id at this pixel (0-3).
	// Id 0 is always transparent, regardless of the priority attribute.
	ObjectColorID int
	// ObjectPalette is the OBP0 or OBP1 register value, per the object's
	// palette attribute.
	ObjectPalette uint8
	// ObjectBehindBG is the object's priority attribute: when set, a
	// nonzero background pixel hides the object.
	ObjectBehindBG bool
}

// ResolvePixel computes the displayed color for one pixel. It is a pure
// function of its input: the object wins unless its priority attribute is
// set while the background is enabled and nonzero at this pixel.
func ResolvePixel(in PixelInput) GBColor {
	bgID := in.BGColorID
	if !in.BGEnabled {
		bgID = 0
	}

	objectVisible := in.HasObject && in.ObjectColorID != 0
	if objectVisible && in.ObjectBehindBG && in.BGEnabled && bgID != 0 {
		objectVisible = false
	}

	if objectVisible {
		return ApplyPalette(in.ObjectPalette, in.ObjectColorID)
	}
	return ApplyPalette(in.BGPalette, bgID)
}
