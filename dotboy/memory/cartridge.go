package memory

import (
	"errors"
	"fmt"
	"strings"
)

const (
	romWindowSize = 0x8000
	minROMSize    = 0x0150 // enough to contain the full cartridge header

	titleAddress         = 0x134
	titleLength          = 16
	cartridgeTypeAddress = 0x147
)

// ErrROMTooLarge is returned when a ROM image does not fit the fixed
// 32 KiB window. Bank-switching controllers are not supported.
var ErrROMTooLarge = errors.New("ROM image exceeds the 32 KiB window")

// ErrROMTooSmall is returned when a ROM image is too small to contain a
// cartridge header.
var ErrROMTooSmall = errors.New("ROM image too small to contain a header")

// Cartridge is a flat ROM image mapped at 0x0000-0x7FFF. There is no memory
// bank controller: only images that fit the fixed window load.
type Cartridge struct {
	data  [romWindowSize]byte
	title string
}

// NewCartridge returns an empty cartridge, as if the console was switched on
// with nothing inserted. Reads return 0xFF like a floating bus would.
func NewCartridge() *Cartridge {
	c := &Cartridge{}
	for i := range c.data {
		c.data[i] = 0xFF
	}
	return c
}

// NewCartridgeWithData validates and loads a raw ROM dump.
func NewCartridgeWithData(rom []byte) (*Cartridge, error) {
	if len(rom) < minROMSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(rom))
	}
	if len(rom) > romWindowSize {
		return nil, fmt.Errorf("%w: %d bytes (type 0x%02X)", ErrROMTooLarge,
			len(rom), rom[cartridgeTypeAddress])
	}

	c := NewCartridge()
	copy(c.data[:], rom)
	c.title = parseTitle(rom)
	return c, nil
}

// Title returns the game title from the cartridge header.
func (c *Cartridge) Title() string {
	return c.title
}

// Read returns the byte at the given ROM address.
func (c *Cartridge) Read(address uint16) byte {
	return c.data[address&(romWindowSize-1)]
}

func parseTitle(rom []byte) string {
	raw := rom[titleAddress : titleAddress+titleLength]
	end := len(raw)
	for i, b := range raw {
		if b == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(raw[:end]))
}
