// Command gridiron runs the football sim in a terminal
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/gridiron/audio"
	"github.com/lixenwraith/gridiron/config"
	"github.com/lixenwraith/gridiron/engine"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/logging"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/menu"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/render/tui"
	"github.com/lixenwraith/gridiron/status"
	"go.uber.org/zap"
)

var (
	configFlag = flag.String("config", "", "Path to YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug log to the configured log file")
	colorFlag  = flag.String("color", "", "Color mode override: auto, truecolor, 256")
	teamFlag   = flag.String("team", "", "Preselect home team key")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridiron: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return cfg, err
		}
	}
	if *debugFlag {
		cfg.Log.Debug = true
	}
	if *colorFlag != "" {
		cfg.Render.ColorMode = *colorFlag
	}
	if *teamFlag != "" {
		cfg.Match.HomeTeam = *teamFlag
	}
	return cfg, cfg.Validate()
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	teams, err := cfg.TeamRegistry()
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	cam, err := cfg.NewCamera()
	if err != nil {
		return err
	}
	world, err := physics.NewWorld(cfg.PhysicsConfig(), log.Named("physics"))
	if err != nil {
		return err
	}
	mn, err := menu.New(teams, cfg.Match.Quarters, cfg.Match.DefaultQuarter)
	if err != nil {
		return err
	}
	if cfg.Match.HomeTeam != "" && !mn.SelectTeam(cfg.Match.HomeTeam) {
		return fmt.Errorf("%w: home team %q", match.ErrUnknownTeam, cfg.Match.HomeTeam)
	}

	switch cfg.Render.ColorMode {
	case "256":
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case "truecolor":
		os.Setenv("COLORTERM", "truecolor")
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panic recovery: restore the terminal before printing the crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			log.Error("crash", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			fmt.Fprintf(os.Stderr, "\n\x1b[31mGRIDIRON CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.HideCursor()
	surface := tui.New(screen, log.Named("tui"))
	surface.SetScale(cfg.Render.Scale)
	surface.Resize(screen.Size())

	game, err := match.New(cfg.MatchConfig(), match.Deps{
		Surface: surface,
		World:   world,
		Teams:   teams,
		Camera:  cam,
		Logger:  log.Named("match"),
	})
	if err != nil {
		return err
	}
	game.SetOverlay(mn.Lines())

	sound := audio.NewSoundManager(cfg.AudioConfig(), log.Named("audio"))
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer sound.Cleanup()
	game.AddListener(sound)

	interval := cfg.FrameInterval()
	clock := engine.NewTimeProvider()
	a := &app{
		screen:   screen,
		surface:  surface,
		game:     game,
		menu:     mn,
		sound:    sound,
		bindings: bindings,
		latch:    input.NewLatch(cfg.HoldWindow()),
		runner:   engine.NewRunner(game, clock, interval, log.Named("engine")),
		log:      log,
	}
	stats := status.NewRegistry()
	a.runner.Publish(stats)

	events := make(chan tcell.Event, 256)
	// Input polling blocks on the terminal, so it gets its own goroutine and only forwards
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	log.Info("started",
		zap.Duration("interval", interval),
		zap.Int("teams", teams.Len()),
		zap.String("camera", cam.Mode().String()),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev, clock.Now()) {
				log.Info("quit", stats.Fields()...)
				return nil
			}
		case <-ticker.C:
			a.frame(clock.Now())
		}
	}
}
