package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kitchensim/server/internal/component"
	"github.com/kitchensim/server/internal/config"
	coresys "github.com/kitchensim/server/internal/core/system"
	"github.com/kitchensim/server/internal/data"
	"github.com/kitchensim/server/internal/metrics"
	"github.com/kitchensim/server/internal/scripting"
	"github.com/kitchensim/server/internal/system"
	"github.com/kitchensim/server/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

var printer = message.NewPrinter(language.English)

func printBanner(name string, runID string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             kitchensim  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        restaurant service simulator       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mname:\033[0m %s \033[90m(run: %s)\033[0m\n\n", name, runID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	var numStr string
	switch v := value.(type) {
	case float64:
		numStr = printer.Sprintf("%.2f", v)
	default:
		numStr = printer.Sprintf("%v", v)
	}
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Simulation ────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/kitchensim.toml"
	if p := os.Getenv("KITCHENSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	runID := uuid.NewString()
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = log.With(zap.String("run_id", runID))
	defer log.Sync()

	printBanner(cfg.Server.Name, runID)

	// 3. Floor layout
	printSection("floor")
	layout, err := loadLayout(cfg.Floor)
	if err != nil {
		return err
	}
	printStat("tables", len(layout))
	printStat("chefs", cfg.Staff.Chefs)
	printStat("waiters", cfg.Staff.Waiters)
	fmt.Println()

	// 4. Formulas
	printSection("formulas")
	var formulas system.Formulas = scripting.Builtin{}
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		formulas = engine
		printOK("Lua scripts loaded from " + cfg.Scripting.Dir)
	} else {
		printOK("built-in formulas")
	}
	fmt.Println()

	// 5. World and rules
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	ws := world.NewState()
	ws.Populate(layout, cfg.Staff.Chefs, cfg.Staff.Waiters)

	deps := system.NewDeps(ws, cfg.Rules(), seed, log)
	deps.Formulas = formulas
	deps.ReportEvery = cfg.Simulation.ReportEvery.Duration

	collector := metrics.NewCollector(runID)
	collector.Subscribe(deps.Bus)

	runner := coresys.NewRunner()
	system.RegisterAll(runner, deps, collector)

	// 6. Run until signalled or the simulated time limit is reached
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("ready")
	printReady(printer.Sprintf("seed %d", seed))
	if cfg.Simulation.Realtime {
		printReady(fmt.Sprintf("simulation loop started (tick: %s, scale: %gx)", cfg.Simulation.TickRate, cfg.Simulation.TimeScale))
	} else {
		printReady(fmt.Sprintf("simulation loop started (fixed step: %s)", cfg.Simulation.TickRate))
	}
	fmt.Println()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return loop(gctx, cfg.Simulation, runner)
	})
	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	// Deliver what the last tick emitted so the summary is complete.
	deps.Bus.Drain()

	log.Info("simulation stopped",
		zap.Uint64("ticks", runner.Ticks()),
		zap.Duration("simulated", runner.Elapsed()))
	printSummary(collector.Summary(), ws.Snapshot(), runner.Elapsed())
	return nil
}

// loop drives the runner. In realtime mode each tick advances the simulation
// by the measured wall time times the time scale; otherwise ticks run back to
// back with a fixed step.
func loop(ctx context.Context, sim config.SimulationConfig, runner *coresys.Runner) error {
	limit := sim.RunFor.Duration
	done := func() bool { return limit > 0 && runner.Elapsed() >= limit }

	if !sim.Realtime {
		step := time.Duration(float64(sim.TickRate.Duration) * sim.TimeScale)
		for !done() {
			if err := ctx.Err(); err != nil {
				return err
			}
			runner.Tick(step)
		}
		return nil
	}

	ticker := time.NewTicker(sim.TickRate.Duration)
	defer ticker.Stop()
	last := time.Now()
	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := time.Duration(float64(now.Sub(last)) * sim.TimeScale)
			last = now
			runner.Tick(dt)
		}
	}
	return nil
}

func loadLayout(cfg config.FloorConfig) ([]component.Position, error) {
	if cfg.LayoutFile == "" {
		return world.GridLayout(cfg.TableXCount, cfg.TableYCount, cfg.TableSpacing), nil
	}
	fl, err := data.LoadFloorLayout(cfg.LayoutFile)
	if err != nil {
		return nil, fmt.Errorf("load floor layout: %w", err)
	}
	printOK("layout loaded from " + cfg.LayoutFile)
	return fl.Positions(), nil
}

func printSummary(sum metrics.Summary, snap world.Snapshot, elapsed time.Duration) {
	fmt.Println()
	printSection("summary")
	printStat("simulated time", elapsed.Round(time.Second).String())
	printStat("parties arrived", sum.PartiesArrived)
	printStat("guests arrived", sum.GuestsArrived)
	printStat("plates served", sum.PlatesServed)
	printStat("cold plates", sum.ColdPlates)
	printStat("parties departed", sum.PartiesDeparted)
	printStat("mean rating", sum.MeanRating())
	printStat("guests still seated", snap.Guests)
	fmt.Println()
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
