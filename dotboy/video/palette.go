package video

// shades maps the 2-bit shade value held in a palette register to a
// display color. 0 is the lightest shade, 3 the darkest.
var shades = [4]GBColor{WhiteColor, LightGreyColor, DarkGreyColor, BlackColor}

// ApplyPalette maps a color id (0-3) through a palette register. Each
// palette byte holds four 2-bit shade values, id 0 in the low bits.
func ApplyPalette(palette uint8, colorID int) GBColor {
	shade := (palette >> (uint(colorID) * 2)) & 0x3
	return shades[shade]
}
