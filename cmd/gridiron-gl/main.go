// Command gridiron-gl runs the football sim in a window
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/lixenwraith/gridiron/audio"
	"github.com/lixenwraith/gridiron/config"
	"github.com/lixenwraith/gridiron/engine"
	"github.com/lixenwraith/gridiron/input"
	"github.com/lixenwraith/gridiron/logging"
	"github.com/lixenwraith/gridiron/match"
	"github.com/lixenwraith/gridiron/menu"
	"github.com/lixenwraith/gridiron/physics"
	"github.com/lixenwraith/gridiron/render/gl"
	"github.com/lixenwraith/gridiron/status"
	"go.uber.org/zap"
)

var (
	configFlag = flag.String("config", "", "Path to YAML config file")
	debugFlag  = flag.Bool("debug", false, "Write debug log to the configured log file")
)

// game adapts the match to ebiten.Game
type game struct {
	match   *match.Match
	menu    *menu.Menu
	surface *gl.Surface
	sound   *audio.SoundManager
	runner  *engine.Runner
	keys    []input.KeyCode
	log     *zap.Logger
}

// keyTable lists every bound Ebiten key in key order
func keyTable(b input.Bindings) []input.KeyCode {
	return b.Table(int(ebiten.KeyMax)+1, func(code int) string {
		return ebiten.Key(code).String()
	})
}

func (g *game) Update() error {
	for _, kb := range g.keys {
		if !inpututil.IsKeyJustPressed(ebiten.Key(kb.Code)) {
			continue
		}
		a := kb.Action
		switch a {
		case input.ActionQuit:
			return ebiten.Termination
		case input.ActionMute:
			g.sound.ToggleMute()
		default:
			if g.match.Phase() != match.PhaseMenu {
				continue
			}
			if g.menu.Handle(a) {
				if err := g.menu.Start(g.match); err != nil {
					g.log.Warn("start game failed", zap.Error(err))
				}
			} else {
				g.sound.PlayBlip()
				g.match.SetOverlay(g.menu.Lines())
			}
		}
	}

	// A window reports real releases, so the snapshot mirrors held keys directly
	if g.match.Phase() == match.PhasePlaying {
		snap := g.match.Input()
		snap.Clear()
		for _, kb := range g.keys {
			if key, ok := kb.Action.Key(); ok && ebiten.IsKeyPressed(ebiten.Key(kb.Code)) {
				snap.Press(key)
			}
		}
	}

	g.runner.Frame()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surface.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gridiron-gl: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFlag != "" {
		var err error
		if cfg, err = config.Load(*configFlag); err != nil {
			return err
		}
	}
	if *debugFlag {
		cfg.Log.Debug = true
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
	mn.SelectTeam(cfg.Match.HomeTeam)

	surface := gl.New(cfg.Render.Width, cfg.Render.Height, log.Named("gl"))
	m, err := match.New(cfg.MatchConfig(), match.Deps{
		Surface: surface,
		World:   world,
		Teams:   teams,
		Camera:  cam,
		Logger:  log.Named("match"),
	})
	if err != nil {
		return err
	}
	m.SetOverlay(mn.Lines())

	sound := audio.NewSoundManager(cfg.AudioConfig(), log.Named("audio"))
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer sound.Cleanup()
	m.AddListener(sound)

	g := &game{
		match:   m,
		menu:    mn,
		surface: surface,
		sound:   sound,
		runner:  engine.NewRunner(m, engine.NewTimeProvider(), cfg.FrameInterval(), log.Named("engine")),
		keys:    keyTable(bindings),
		log:     log,
	}
	stats := status.NewRegistry()
	g.runner.Publish(stats)

	ebiten.SetWindowSize(cfg.Render.Width, cfg.Render.Height)
	ebiten.SetWindowTitle("Gridiron")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Render.FPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info("window closed", stats.Fields()...)
	return nil
}
