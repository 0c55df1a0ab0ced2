package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dilemma/config"
	"github.com/pthm-cable/dilemma/game"
	"github.com/pthm-cable/dilemma/sim"
	"github.com/pthm-cable/dilemma/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	metricsAddr := flag.String("metrics-addr", "", "Serve /metrics, /stats and /healthz on this address (empty = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	dt := flag.Float64("dt", 0, "Seconds per tick (0 = config in headless mode, frame time in graphical mode)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var metrics *telemetry.Metrics
	var latest telemetry.Latest
	if cfg.Metrics.Addr != "" {
		metrics = telemetry.NewMetrics(cfg.Metrics.Namespace)
	}

	s, err := sim.New(cfg, sim.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
		Metrics:   metrics,
		OnWindow:  latest.Set,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := s.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           telemetry.NewRouter(metrics, &latest),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("metrics endpoint listening", "addr", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
	}

	if *headless {
		runHeadless(s, rngSeed, *dt, *maxTicks, *stepsPerUpdate)
		return
	}
	runGraphical(s, cfg, rngSeed, *dt, *maxTicks, *stepsPerUpdate)
}

// runHeadless steps the simulation as fast as possible until max ticks or an
// interrupt.
func runHeadless(s *sim.Simulation, seed int64, dt float64, maxTicks int64, steps int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if dt <= 0 {
		dt = s.Config().Physics.DT
	}
	steps = max(steps, 1)

	slog.Info("starting headless simulation",
		"seed", seed,
		"dt", dt,
		"max_ticks", maxTicks,
		"steps_per_update", steps,
		"population", s.Population(),
	)

	for ctx.Err() == nil {
		for i := 0; i < steps; i++ {
			s.Step(dt)
		}
		if maxTicks > 0 && s.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", s.Tick(), "population", s.Population())
			return
		}
	}
	slog.Info("interrupted", "tick", s.Tick(), "population", s.Population())
}

// runGraphical opens a raylib window and runs the viewer until it closes.
func runGraphical(s *sim.Simulation, cfg *config.Config, seed int64, dt float64, maxTicks int64, steps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Dilemma")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.SetExitKey(0)

	g := game.New(s, game.Options{Seed: seed, StepsPerUpdate: steps, DT: dt})
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
}
