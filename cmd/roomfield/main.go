package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/roomfield/config"
	"github.com/lixenwraith/roomfield/levelgen"
	"github.com/lixenwraith/roomfield/logging"
	"github.com/lixenwraith/roomfield/metrics"
	"github.com/lixenwraith/roomfield/navigation"
	"github.com/lixenwraith/roomfield/render"
	"github.com/lixenwraith/roomfield/scenario"
	"github.com/lixenwraith/roomfield/tilemap"
)

func main() {
	var (
		configPath   = flag.String("config", "", "TOML config file")
		envPath      = flag.String("env", "", "dotenv file with ROOMFIELD_* overrides")
		scenarioPath = flag.String("scenario", "", "YAML scenario to replay (default: generated level)")
		seed         = flag.Int64("seed", 0, "level seed when no scenario is given (0 = random)")
		rooms        = flag.Int("rooms", 0, "room count when no scenario is given (0 = default)")
		dumpField    = flag.Bool("field", true, "print the piece field after the run")
		dumpTiles    = flag.Bool("tiles", false, "print the tile occupancy after the run")
	)
	flag.Parse()

	if err := run(*configPath, *envPath, *scenarioPath, *seed, *rooms, *dumpField, *dumpTiles); err != nil {
		fmt.Fprintf(os.Stderr, "roomfield: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envPath, scenarioPath string, seed int64, rooms int, dumpField, dumpTiles bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := config.LoadEnv(cfg, envPath); err != nil {
		return err
	}

	sc, err := loadScenario(scenarioPath, cfg, seed, rooms)
	if err != nil {
		return err
	}
	// Scenario values win over configuration
	if sc.MaxDistance > 0 {
		cfg.Field.MaxDistance = sc.MaxDistance
	}
	if sc.Subdivision > 0 {
		cfg.Field.Subdivision = sc.Subdivision
	}
	cfg.Map.Width, cfg.Map.Height = sc.Map.Width, sc.Map.Height
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	collector := metrics.NewCollector()
	field, err := navigation.New(tilemap.NewGrid(cfg.Map.Width, cfg.Map.Height), cfg.Field.MaxDistance,
		navigation.WithSubdivision(cfg.Field.Subdivision),
		navigation.WithLogger(logger.Named("field")),
		navigation.WithObserver(collector))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Map %dx%d tiles, subdivision %d, max distance %.2f, %d steps\n",
		cfg.Map.Width, cfg.Map.Height, cfg.Field.Subdivision, cfg.Field.MaxDistance, len(sc.Steps))

	var total time.Duration
	runner := scenario.NewRunner(field, sc, logger.Named("scenario"))
	err = runner.Run(ctx, func(i int, st scenario.Step, s navigation.UpdateStats) {
		total += s.Duration
		fmt.Printf("%3d %-28s +%d/-%d tiles  %5d pops  %4d roots removed  %v\n",
			i, st, s.TilesActivated, s.TilesDeactivated, s.PointsProcessed, s.RootsRemoved, s.Duration)
	})
	if err != nil {
		return err
	}
	fmt.Printf("Done in %v, %d active tiles\n", total, len(field.ActiveTiles()))
	logger.Info("scenario replayed", zap.Int("steps", len(sc.Steps)), zap.Duration("field_time", total))

	if dumpTiles {
		fmt.Println()
		if err := render.DumpTiles(os.Stdout, field); err != nil {
			return err
		}
	}
	if dumpField {
		fmt.Println()
		if err := render.Dump(os.Stdout, field); err != nil {
			return err
		}
	}
	return nil
}

// loadScenario reads path, or builds an insert-only scenario from a generated level
func loadScenario(path string, cfg *config.Config, seed int64, rooms int) (*scenario.Scenario, error) {
	if path != "" {
		return scenario.Load(path)
	}

	gen := levelgen.DefaultConfig()
	gen.Width, gen.Height = cfg.Map.Width, cfg.Map.Height
	gen.Seed = seed
	if rooms > 0 {
		gen.Rooms = rooms
	}
	res := levelgen.Generate(gen)
	fmt.Printf("Generated %d rooms with seed %d\n", len(res.Regions), res.Seed)

	sc := &scenario.Scenario{Map: scenario.MapSize{Width: gen.Width, Height: gen.Height}}
	for i, r := range res.Regions {
		a := res.Areas[i]
		sc.Regions = append(sc.Regions, scenario.RegionSpec{
			ID:   r.ID,
			Rect: &scenario.Rect{X: a.X, Y: a.Y, W: a.Width, H: a.Height},
		})
		sc.Steps = append(sc.Steps, scenario.Step{Op: scenario.OpInsert, Region: r.ID})
	}
	return sc, sc.Validate()
}
