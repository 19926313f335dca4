//go:build sdl2

package render

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/andreav/dotboy/dotboy"
	"github.com/andreav/dotboy/dotboy/memory"
	"github.com/andreav/dotboy/dotboy/video"
)

// SDLRenderer draws frames into a hardware-accelerated window.
// Building it requires the SDL2 development libraries; default builds
// use the stub instead, see build tags (sdl2).
type SDLRenderer struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	emulator *dotboy.Emulator
	running  bool
}

func NewSDLRenderer(emu *dotboy.Emulator, scale int) (*SDLRenderer, error) {
	if scale < 1 {
		scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL2: %v", err)
	}

	window, err := sdl.CreateWindow(
		"dotboy",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(video.FramebufferWidth*scale),
		int32(video.FramebufferHeight*scale),
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %v", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %v", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %v", err)
	}

	slog.Info("SDL2 renderer initialized", "scale", scale)

	return &SDLRenderer{
		window:   window,
		renderer: renderer,
		texture:  texture,
		emulator: emu,
		running:  true,
	}, nil
}

func (s *SDLRenderer) Run() error {
	defer s.cleanup()

	for s.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			s.handleEvent(event)
		}
		if !s.running {
			return nil
		}

		if err := s.emulator.RunUntilFrame(); err != nil {
			return err
		}
		s.renderFrame()
	}

	return nil
}

func (s *SDLRenderer) cleanup() {
	slog.Info("closing SDL2 renderer")

	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
}

func (s *SDLRenderer) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		s.running = false
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			if e.Keysym.Sym == sdl.K_ESCAPE {
				s.running = false
				return
			}
			if key, ok := joypadKey(e.Keysym.Sym); ok {
				s.emulator.HandleKeyPress(key)
			}
		} else if e.Type == sdl.KEYUP {
			if key, ok := joypadKey(e.Keysym.Sym); ok {
				s.emulator.HandleKeyRelease(key)
			}
		}
	}
}

func joypadKey(sym sdl.Keycode) (memory.JoypadKey, bool) {
	switch sym {
	case sdl.K_RETURN:
		return memory.JoypadStart, true
	case sdl.K_RIGHT:
		return memory.JoypadRight, true
	case sdl.K_LEFT:
		return memory.JoypadLeft, true
	case sdl.K_UP:
		return memory.JoypadUp, true
	case sdl.K_DOWN:
		return memory.JoypadDown, true
	case sdl.K_a:
		return memory.JoypadA, true
	case sdl.K_s:
		return memory.JoypadB, true
	case sdl.K_q:
		return memory.JoypadSelect, true
	}
	return 0, false
}

func (s *SDLRenderer) renderFrame() {
	// the framebuffer already holds ARGB words, matching the texture format
	frame := s.emulator.Framebuffer().ToSlice()

	s.texture.Update(nil, unsafe.Pointer(&frame[0]), video.FramebufferWidth*4)

	s.renderer.SetDrawColor(0, 0, 0, 0xFF)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
}
