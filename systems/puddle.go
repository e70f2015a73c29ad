package systems

import (
	"math"
	"math/rand"

	"github.com/plus3/slipstream/assets"
	"github.com/plus3/slipstream/behave"
	"github.com/plus3/slipstream/component"
	"github.com/plus3/slipstream/world"
)

// PuddleSpawnSystem makes entities carrying a PuddleSpawner component leak
// puddles around themselves.
type PuddleSpawnSystem struct {
	world *world.World
	kinds component.Kinds
	rng   *rand.Rand
}

// NewPuddleSpawnSystem creates the spawner behavior.
func NewPuddleSpawnSystem(w *world.World, kinds component.Kinds, rng *rand.Rand) *PuddleSpawnSystem {
	return &PuddleSpawnSystem{world: w, kinds: kinds, rng: rng}
}

// System returns the scheduler registration.
func (s *PuddleSpawnSystem) System() behave.System {
	return behave.System{
		Name:   "puddle_spawn",
		Aspect: behave.MustAspect([]behave.Kind{s.kinds.PuddleSpawner, s.kinds.Position}, nil),
		Phase:  PuddleSpawnPhase,
		Hooks:  []behave.Hook{{Name: "spawn", Run: s.spawn}},
	}
}

func (s *PuddleSpawnSystem) spawn(e behave.Entity) error {
	data, ok := s.world.Get(e, s.kinds.PuddleSpawner)
	if !ok {
		return nil
	}
	cfg := data.(*component.PuddleSpawner)
	if s.rng.Float64() >= cfg.Chance {
		return nil
	}
	posData, ok := s.world.Get(e, s.kinds.Position)
	if !ok {
		return nil
	}
	origin := posData.(*component.Position).At

	// Uniform point in the spawn disc.
	r := cfg.Spread * math.Sqrt(s.rng.Float64())
	at := origin.Add(randUnit(s.rng).Mul(r))
	driesAt := s.world.Now() + cfg.DryAfter

	radius := cfg.PuddleRadius
	s.world.Defer(func() {
		p := s.world.Spawn()
		s.world.Add(p, s.kinds.Position, &component.Position{At: at})
		s.world.Add(p, s.kinds.Puddle, &component.Puddle{
			Radius:  radius,
			DriesAt: driesAt,
			Sprite:  assets.SpritePuddle,
		})
	})
	return nil
}

// PuddleDrySystem evaporates puddles once their deadline passes.
type PuddleDrySystem struct {
	world *world.World
	kinds component.Kinds
}

// NewPuddleDrySystem creates the drying behavior.
func NewPuddleDrySystem(w *world.World, kinds component.Kinds) *PuddleDrySystem {
	return &PuddleDrySystem{world: w, kinds: kinds}
}

// System returns the scheduler registration.
func (s *PuddleDrySystem) System() behave.System {
	return behave.System{
		Name:   "puddle_dry",
		Aspect: behave.MustAspect([]behave.Kind{s.kinds.Puddle}, nil),
		Phase:  PuddleDryPhase,
		Hooks:  []behave.Hook{{Name: "dry", Run: s.dry}},
	}
}

func (s *PuddleDrySystem) dry(e behave.Entity) error {
	data, ok := s.world.Get(e, s.kinds.Puddle)
	if !ok {
		return nil
	}
	if s.world.Now() < data.(*component.Puddle).DriesAt {
		return nil
	}
	s.world.Defer(func() { s.world.Destroy(e) })
	return nil
}
