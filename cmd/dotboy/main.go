package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/andreav/dotboy/dotboy"
	"github.com/andreav/dotboy/dotboy/render"
	"github.com/andreav/dotboy/dotboy/video"
)

const defaultTestFrames = 1200

func main() {
	app := cli.NewApp()
	app.Name = "dotboy"
	app.Description = "A Game Boy (DMG) emulator"
	app.Usage = "dotboy [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a graphical interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "serial",
			Usage: "Echo serial port output to stdout",
		},
		cli.BoolFlag{
			Name:  "test",
			Usage: "Run a test ROM and exit with its verdict (0 pass, 1 fail, 2 no verdict)",
		},
		cli.BoolFlag{
			Name:  "sdl",
			Usage: "Use the SDL2 renderer (requires a build with -tags sdl2)",
		},
		cli.IntFlag{
			Name:  "scale",
			Usage: "Window scale factor for the SDL2 renderer",
			Value: 4,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
	}
	app.Action = runEmulator

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := dotboy.NewWithFile(romPath)
	if err != nil {
		return err
	}

	if c.Bool("serial") {
		emu.SetSerialObserver(func(value byte) {
			fmt.Printf("%c", value)
		})
	}

	if c.Bool("test") {
		return runTestROM(c, emu)
	}

	if c.Bool("headless") {
		return runHeadless(c, emu, romPath)
	}

	if c.Bool("sdl") {
		renderer, err := render.NewSDLRenderer(emu, c.Int("scale"))
		if err != nil {
			return err
		}
		return renderer.Run()
	}

	renderer, err := render.NewTerminalRenderer(emu)
	if err != nil {
		return err
	}
	return renderer.Run()
}

// runTestROM drives a test ROM until it reports a verdict over the serial
// port, then maps the verdict to the process exit status.
func runTestROM(c *cli.Context, emu *dotboy.Emulator) error {
	frames := c.Int("frames")
	if frames <= 0 {
		frames = defaultTestFrames
	}

	outcome, transcript, err := emu.RunConformanceTest(frames)
	if err != nil && !errors.Is(err, dotboy.ErrNoVerdict) {
		return err
	}

	fmt.Print(transcript)
	if !strings.HasSuffix(transcript, "\n") {
		fmt.Println()
	}

	switch outcome {
	case dotboy.TestPassed:
		slog.Info("test ROM passed")
		os.Exit(0)
	case dotboy.TestFailed:
		slog.Error("test ROM failed")
		os.Exit(1)
	default:
		slog.Error("test ROM gave no verdict", "frames", frames)
		os.Exit(2)
	}
	return nil
}

func runHeadless(c *cli.Context, emu *dotboy.Emulator, romPath string) error {
	frames := c.Int("frames")
	if frames <= 0 {
		return errors.New("headless mode requires --frames option with a positive value")
	}

	snapshotInterval := c.Int("snapshot-interval")
	snapshotDir := c.String("snapshot-dir")

	if snapshotInterval > 0 {
		if snapshotDir == "" {
			tempDir, err := os.MkdirTemp("", "dotboy-snapshots-*")
			if err != nil {
				return fmt.Errorf("failed to create snapshot directory: %v", err)
			}
			snapshotDir = tempDir
		} else {
			if err := os.MkdirAll(snapshotDir, 0755); err != nil {
				return fmt.Errorf("failed to create snapshot directory: %v", err)
			}
		}
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))

	romName := filepath.Base(romPath)
	romName = strings.TrimSuffix(romName, filepath.Ext(romName))

	slog.Info("Running headless mode", "frames", frames, "snapshot_interval", snapshotInterval, "snapshot_dir", snapshotDir)

	for i := 0; i < frames; i++ {
		if err := emu.RunUntilFrame(); err != nil {
			return err
		}

		if snapshotInterval > 0 && (i+1)%snapshotInterval == 0 {
			snapshotPath := filepath.Join(snapshotDir, fmt.Sprintf("%s_frame_%d.txt", romName, i+1))
			if err := saveFrameSnapshot(emu, snapshotPath); err != nil {
				slog.Error("Failed to save snapshot", "frame", i+1, "path", snapshotPath, "error", err)
			} else {
				slog.Info("Saved frame snapshot", "frame", i+1, "path", snapshotPath)
			}
		}

		if i%10 == 0 {
			slog.Info("Frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("Headless execution completed", "frames", frames)
	return nil
}

// saveFrameSnapshot saves the current frame as a text representation.
func saveFrameSnapshot(emu *dotboy.Emulator, filename string) error {
	frame := emu.Framebuffer().ToSlice()

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "# Frame Snapshot\n")
	fmt.Fprintf(file, "# Frame: %d\n", emu.Frames())
	fmt.Fprintf(file, "# Resolution: %dx%d pixels\n", video.FramebufferWidth, video.FramebufferHeight)
	fmt.Fprintf(file, "# Legend: █=black ▓=dark ▒=light ░=white\n")
	fmt.Fprintf(file, "#\n")

	shadeChars := []rune{'█', '▓', '▒', '░'}

	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			pixel := frame[y*video.FramebufferWidth+x]

			var shade int
			switch video.GBColor(pixel) {
			case video.BlackColor:
				shade = 0
			case video.DarkGreyColor:
				shade = 1
			case video.LightGreyColor:
				shade = 2
			default:
				shade = 3
			}

			fmt.Fprintf(file, "%c", shadeChars[shade])
		}
		fmt.Fprintf(file, "\n")
	}

	return nil
}
