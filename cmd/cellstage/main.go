package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/Versifine/cellstage/internal/camera"
	"github.com/Versifine/cellstage/internal/config"
	"github.com/Versifine/cellstage/internal/console"
	"github.com/Versifine/cellstage/internal/control"
	"github.com/Versifine/cellstage/internal/event"
	"github.com/Versifine/cellstage/internal/keys"
	"github.com/Versifine/cellstage/internal/logger"
	"github.com/Versifine/cellstage/internal/organelle"
	"github.com/Versifine/cellstage/internal/script"
	"github.com/Versifine/cellstage/internal/system"
	"github.com/Versifine/cellstage/internal/vmath"
	"github.com/Versifine/cellstage/internal/world"
)

var errNoTerminal = errors.New("console needs an interactive terminal")

func main() {

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, term.IsTerminal(int(os.Stdin.Fd())))
	stop()
	if err != nil {
		logger.Fatal("Microbe stage stopped", "error", err)
	}
}

// run wires the stage and drives the console until it stops. Every resource
// it opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, interactive bool) error {
	session := uuid.NewString()
	log := logger.L().With("session", session)

	bindings, err := keys.NewConfiguration(cfg.Keys)
	if err != nil {
		return fmt.Errorf("key configuration: %w", err)
	}

	stage := world.New()
	if !cfg.Camera.Disabled {
		cam, err := camera.NewCamera(vec3(cfg.Camera.Position), vec3(cfg.Camera.LookAt), vec3(cfg.Camera.Up), cfg.Camera.FOVY, cfg.Camera.Aspect)
		if err != nil {
			return fmt.Errorf("camera configuration: %w", err)
		}
		stage.SetCamera(cam)
	}

	hexes := make([]organelle.Hex, 0, len(cfg.Player.Organelles))
	for _, qr := range cfg.Player.Organelles {
		hexes = append(hexes, organelle.NewHex(qr[0], qr[1], cfg.Player.HexRadius))
	}
	player := stage.Player()
	player.SetActiveCreature(stage.SpawnMicrobe(cfg.Player.Name, world.Position{}, hexes))

	scripts, err := script.LoadLuaModule(cfg.Scripts.Microbe)
	if err != nil {
		return err
	}
	defer scripts.Close()

	bus := event.NewBus()
	bus.Subscribe(event.EventPlayerReadyToEnterEditor, func(raw any) {
		req, ok := raw.(event.EditorRequest)
		if !ok {
			return
		}
		log.Info("Player ready to enter editor", "entity", req.Entity, "at", req.At)
	})

	pmc := control.NewPlayerMicrobeControl(bindings, bus,
		control.WithCreatureSource(player),
		control.WithSession(session),
	)
	cursor := &console.Cursor{}
	sys := system.NewPlayerMicrobeControlSystem(player, pmc, cursor, scripts)

	if !interactive {
		return errNoTerminal
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	log.Info("Microbe stage started", "world", stage.String())
	c := console.New(screen, pmc, sys, stage, player, cursor, console.Options{
		TickInterval: cfg.Loop.TickInterval.Std(),
		MovePulse:    cfg.Loop.MovePulse.Std(),
		Session:      session,
	})
	if err := c.Run(ctx); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	log.Info("Microbe stage stopped", "world", stage.String())
	return nil
}

func vec3(v [3]float64) vmath.Vec3 {
	return vmath.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
