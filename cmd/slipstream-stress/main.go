// slipstream-stress soaks the phase scheduler and busy arbiter with a large
// population of movers and puddle spawners and reports cadence spread,
// per-system timings and memory behavior.
package main

import (
	"flag"
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/slipstream/behave"
	"github.com/plus3/slipstream/component"
	"github.com/plus3/slipstream/systems"
	"github.com/plus3/slipstream/world"
)

func main() {
	cfgPath := flag.String("config", "", "Path to a TOML scenario file.")
	ticks := flag.Int("ticks", 0, "Number of ticks to simulate (overrides the config).")
	movers := flag.Int("movers", 0, "Number of moving entities (overrides the config).")
	spawners := flag.Int("spawners", 0, "Number of puddle spawners (overrides the config).")
	seed := flag.Int64("seed", 0, "PRNG seed (overrides the config).")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatal("bad config", zap.Error(err))
	}
	if *ticks > 0 {
		cfg.Ticks = *ticks
	}
	if *movers > 0 {
		cfg.Movers = *movers
	}
	if *spawners > 0 {
		cfg.Spawners = *spawners
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	runID := uuid.New()
	log.Info("starting stress run",
		zap.String("run_id", runID.String()),
		zap.Int("ticks", cfg.Ticks),
		zap.Int("movers", cfg.Movers),
		zap.Int("spawners", cfg.Spawners),
		zap.Int64("seed", cfg.Seed),
	)

	reg := behave.NewKindRegistry()
	kinds := component.Register(reg)

	w := world.New(reg, world.WithCellSize(cfg.CellSize))
	w.TrackPositions(kinds.Position, component.PositionOf)

	sched := behave.NewScheduler(behave.WithSeed(cfg.Seed), behave.WithLogger(log))
	arb := behave.NewArbiter()
	w.Observe(sched)
	w.Observe(arb)

	if err := systems.RegisterAll(sched, w, kinds, arb, cfg.Seed+1, nil); err != nil {
		log.Fatal("register behaviors", zap.Error(err))
	}
	if err := sched.Register(wanderSystem(w, kinds, cfg.WorldSize)); err != nil {
		log.Fatal("register wander", zap.Error(err))
	}

	populate(w, kinds, cfg)
	log.Info("world populated", zap.Int("entities", w.Len()))

	report := &Report{
		RunID:  runID.String(),
		Config: cfg,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	start := time.Now()
	for i := 0; i < cfg.Ticks; i++ {
		stepStart := time.Now()
		w.Step(sched)
		report.StepTime.Samples = append(report.StepTime.Samples, time.Since(stepStart))

		if n := arb.Len(); n > report.PeakClaims {
			report.PeakClaims = n
		}
	}
	report.TotalTime = time.Since(start)
	report.StepTime.Finalize()
	report.FinalEntities = w.Len()
	report.FinalClaims = arb.Len()
	report.Scheduler = sched.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("stress run finished", zap.Duration("elapsed", report.TotalTime))
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("generate report", zap.Error(err))
	}
}

func populate(w *world.World, kinds component.Kinds, cfg Config) {
	rng := rand.New(rand.NewSource(cfg.Seed + 2))
	at := func() mgl64.Vec2 {
		return mgl64.Vec2{rng.Float64() * cfg.WorldSize, rng.Float64() * cfg.WorldSize}
	}

	for i := 0; i < cfg.Spawners; i++ {
		e := w.Spawn()
		w.Add(e, kinds.Position, &component.Position{At: at()})
		w.Add(e, kinds.PuddleSpawner, &component.PuddleSpawner{
			Chance:       cfg.Spawner.Chance,
			Spread:       cfg.Spawner.Spread,
			PuddleRadius: cfg.Spawner.PuddleRadius,
			DryAfter:     behave.Tick(cfg.Spawner.DryAfter),
		})
	}
	for i := 0; i < cfg.Movers; i++ {
		a := rng.Float64() * 2 * math.Pi
		e := w.Spawn()
		w.Add(e, kinds.Position, &component.Position{At: at()})
		w.Add(e, kinds.Physics, &component.Physics{
			Heading: mgl64.Vec2{math.Cos(a), math.Sin(a)},
			Speed:   1 + rng.Float64()*2,
		})
	}
}

// wanderSystem integrates mover positions so the population keeps drifting
// through puddles. Stand-in for the host's physics; clamps to the world
// bounds by bouncing.
func wanderSystem(w *world.World, kinds component.Kinds, size float64) behave.System {
	return behave.System{
		Name:   "wander",
		Aspect: behave.MustAspect([]behave.Kind{kinds.Position, kinds.Physics}, nil),
		Phase:  2,
		Hooks: []behave.Hook{{Name: "integrate", Run: func(e behave.Entity) error {
			posData, ok := w.Get(e, kinds.Position)
			if !ok {
				return nil
			}
			physData, ok := w.Get(e, kinds.Physics)
			if !ok {
				return nil
			}
			phys := physData.(*component.Physics)

			p := posData.(*component.Position).At.Add(phys.Heading.Mul(phys.Speed))
			for i := 0; i < 2; i++ {
				if p[i] < 0 {
					p[i] = -p[i]
					phys.Heading[i] = -phys.Heading[i]
				}
				if p[i] > size {
					p[i] = 2*size - p[i]
					phys.Heading[i] = -phys.Heading[i]
				}
			}
			w.Add(e, kinds.Position, &component.Position{At: p})
			return nil
		}}},
	}
}
