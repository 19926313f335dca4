// Package render holds the presentation backends. They drive the emulator
// frame by frame and are strictly outside the core: a backend failure
// never touches emulation state.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/andreav/dotboy/dotboy"
	"github.com/andreav/dotboy/dotboy/memory"
	"github.com/andreav/dotboy/dotboy/video"
)

const frameTime = time.Second / 60

// keyHoldTime approximates a key press duration, since terminals only
// report key-down events.
const keyHoldTime = 100 * time.Millisecond

var shadeChars = []rune{'█', '▓', '▒', '░'}

// TerminalRenderer draws frames as character cells. Two columns per pixel
// keeps the aspect ratio roughly square.
type TerminalRenderer struct {
	screen   tcell.Screen
	emulator *dotboy.Emulator
	running  bool
}

func NewTerminalRenderer(emu *dotboy.Emulator) (*TerminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return &TerminalRenderer{
		screen:   screen,
		emulator: emu,
		running:  true,
	}, nil
}

func (t *TerminalRenderer) Run() error {
	defer func() {
		slog.Info("closing terminal renderer")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		case <-ticker.C:
			if err := t.emulator.RunUntilFrame(); err != nil {
				return err
			}
			t.render()
			t.screen.Show()
		case <-signals:
			slog.Info("received signal to stop")
			t.running = false
		}
	}

	return nil
}

func (t *TerminalRenderer) handleInput() {
	for t.running {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				t.running = false
			case tcell.KeyEnter:
				t.tap(memory.JoypadStart)
			case tcell.KeyRight:
				t.tap(memory.JoypadRight)
			case tcell.KeyLeft:
				t.tap(memory.JoypadLeft)
			case tcell.KeyUp:
				t.tap(memory.JoypadUp)
			case tcell.KeyDown:
				t.tap(memory.JoypadDown)
			case tcell.KeyRune:
				switch ev.Rune() {
				case 'a':
					t.tap(memory.JoypadA)
				case 's':
					t.tap(memory.JoypadB)
				case 'q':
					t.tap(memory.JoypadSelect)
				}
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// tap presses a key and releases it shortly after.
func (t *TerminalRenderer) tap(key memory.JoypadKey) {
	t.emulator.HandleKeyPress(key)
	time.AfterFunc(keyHoldTime, func() { t.emulator.HandleKeyRelease(key) })
}

func (t *TerminalRenderer) render() {
	frame := t.emulator.Framebuffer().ToSlice()

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			pixel := frame[y*video.FramebufferWidth+x]

			// any channel works: the four shades are grey levels
			shade := 3 - (pixel&0xFF)/64

			char := shadeChars[shade]
			t.screen.SetContent(x*2, y, char, nil, tcell.StyleDefault)
			t.screen.SetContent(x*2+1, y, char, nil, tcell.StyleDefault)
		}
	}
}
