//go:build !sdl2

package render

import (
	"fmt"

	"github.com/andreav/dotboy/dotboy"
)

// SDLRenderer is a stub used when SDL2 support is not compiled in.
type SDLRenderer struct{}

func NewSDLRenderer(emu *dotboy.Emulator, scale int) (*SDLRenderer, error) {
	return nil, fmt.Errorf("SDL2 renderer not available - compile with -tags sdl2 (requires SDL2 development libraries)")
}

func (s *SDLRenderer) Run() error {
	return fmt.Errorf("SDL2 renderer not available")
}
