package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/flake-8/emulator/chip8"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// The CHIP-8 virtual machine.
	///
	VM *chip8.VM

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Path of the loaded ROM.
	///
	ROM string

	/// Addresses that pause emulation, set by BREAK in assembled sources.
	///
	Breakpoints map[uint16]bool

	/// Instructions per second and the ticker running them.
	///
	Speed int
	Clock *time.Ticker

	config Config
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cmd := &cobra.Command{
		Use:          "flake8 [rom]",
		Short:        "flake8 is a CHIP-8 emulator",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				config.ROM = args[0]
			}

			Logger = CreateLogger(config.Debug, config.Quiet)

			if err := config.Validate(); err != nil {
				return err
			}

			return run(app.Context(), &config)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&config.Debug, "debug", "d", false, "log every executed instruction")
	flags.BoolVarP(&config.Quiet, "quiet", "q", false, "only log errors")
	flags.StringVarP(&config.Foreground, "fg", "f", "", "foreground color as #RRGGBB")
	flags.StringVarP(&config.Background, "bg", "b", "", "background color as #RRGGBB")
	flags.BoolVarP(&config.ETI, "eti-mode", "e", false, "load the program at 0x600 for the ETI 660")
	flags.IntVar(&config.Speed, "speed", DefaultSpeed, "instructions per second")
	flags.IntVar(&config.Scale, "scale", DefaultScale, "window pixels per CHIP-8 pixel")
	flags.Int64Var(&config.Seed, "seed", 0, "random number seed, 0 for the clock")
	flags.BoolVar(&config.ShiftUsesVY, "shift-vy", false, "8XY6/8XYE shift VY into VX")
	flags.BoolVar(&config.JumpUsesVX, "jump-vx", false, "BXNN jumps to XNN + VX")
	flags.BoolVar(&config.LoadStoreIncrementsI, "increment-i", false, "FX55/FX65 advance I")
	flags.StringVar(&config.WAV, "wav", "", "record the audio to a WAV file")
	flags.BoolVar(&config.StatsView, "statsview", false, "serve runtime stats at "+StatsAddress)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config) error {
	if cfg.ROM == "" {
		file, err := OpenDialog()
		if err != nil {
			return err
		}

		cfg.ROM = file
	}

	if err := LoadROM(cfg.ROM); err != nil {
		return err
	}

	// initialize SDL
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	// create the main window and renderer
	scale := int32(cfg.Scale)
	w, h := chip8.Width*scale, chip8.Height*scale

	var err error
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(w, h, sdl.WINDOW_SHOWN); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer Window.Destroy()

	SetTitle()

	// initialize subsystems
	if err := InitScreen(cfg.Colors()); err != nil {
		return err
	}

	if err := InitFont(); err != nil {
		return err
	}

	if err := InitAudio(cfg.WAV); err != nil {
		Logger.Warn("Audio disabled", log.Err(err))
	}
	defer func() {
		if err := CloseAudio(); err != nil {
			Logger.Error("Writing audio failed", log.Err(err))
		}
	}()

	if cfg.StatsView {
		LaunchStats()
	}

	// set processor speed and refresh rate
	Speed = cfg.Speed
	Clock = time.NewTicker(time.Second / time.Duration(Speed))
	defer Clock.Stop()

	video := time.NewTicker(time.Second / 60)
	defer video.Stop()

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case <-ctx.Done():
			Logger.Info("Interrupted")
			return nil
		case <-video.C:
			if !Paused {
				VM.TickTimers()
			}

			RefreshAudio(!Paused && VM.ToneActive())
			Refresh(scale)
		case <-Clock.C:
			if !Paused {
				Step()
			}
		}
	}

	return nil
}

/// LoadROM creates a new virtual machine running the ROM at path. Source
/// files are assembled first.
///
func LoadROM(path string) error {
	var (
		vm  *chip8.VM
		asm *chip8.Assembly
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".c8s", ".asm":
		vm, asm, err = chip8.AssembleFile(path, config.Mode(), config.Quirks())
	default:
		vm, err = chip8.LoadFile(path, config.Mode(), config.Quirks())
	}
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	Breakpoints = make(map[uint16]bool)
	if asm != nil {
		for _, addr := range asm.Breakpoints {
			Breakpoints[addr] = true
		}
	}

	if config.Seed != 0 {
		vm.Seed(config.Seed)
	}

	if config.Debug {
		vm.Trace = DebugTrace
	}

	VM, ROM, Paused = vm, path, false

	Logger.Info("Loaded ROM",
		log.String("rom", path),
		log.String("mode", vm.Mode().String()),
		log.Hex("origin", vm.Mode().Origin()))

	return nil
}

/// OpenDialog asks the user for a ROM file.
///
func OpenDialog() (string, error) {
	file, err := dialog.File().Filter("CHIP-8 ROM", "ch8", "c8").Filter("CHIP-8 source", "c8s", "asm").Filter("All files", "*").Title("Load ROM").Load()
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			return "", errors.New("no ROM selected")
		}
		return "", fmt.Errorf("open dialog: %w", err)
	}

	return file, nil
}

/// LoadDialog replaces the running ROM with one chosen by the user.
///
func LoadDialog() {
	file, err := OpenDialog()
	if err != nil {
		Logger.Warn("ROM not loaded", log.Err(err))
		return
	}

	if err := LoadROM(file); err != nil {
		Logger.Error("ROM not loaded", log.Err(err))
		return
	}

	SetTitle()
}

/// Step the virtual machine once, pausing emulation on error.
///
func Step() {
	if _, err := VM.Step(); err != nil {
		Paused = true

		Logger.Error("Emulation paused", log.Err(err), log.Hex("pc", VM.PC))
		return
	}

	if Breakpoints[VM.PC] && !Paused {
		Paused = true

		Logger.Info("Breakpoint", log.String("instruction", VM.Disassemble(VM.PC)))
	}
}

/// SetSpeed changes the number of instructions run per second.
///
func SetSpeed(speed int) {
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}

	Speed = speed
	Clock.Reset(time.Second / time.Duration(Speed))

	Logger.Info("Speed", log.String("ips", strconv.Itoa(Speed)))
}

/// SetTitle shows the ROM name in the window title.
///
func SetTitle() {
	Window.SetTitle("FLAKE-8 - " + filepath.Base(ROM))
}

/// Refresh the window with the CHIP-8 display.
///
func Refresh(scale int32) {
	if err := RefreshScreen(VM.Display()); err != nil {
		Logger.Error("Refreshing screen failed", log.Err(err))
		return
	}

	_ = Renderer.SetDrawColor(0, 0, 0, 255)
	_ = Renderer.Clear()

	CopyScreen(scale)

	// show where emulation stopped
	if Paused {
		DrawText(fmt.Sprintf("%04X", VM.PC), scale, scale, (scale+2)/3, Color{R: 0xFF, G: 0x40, B: 0x40})
	}

	// show the new frame
	Renderer.Present()
}
