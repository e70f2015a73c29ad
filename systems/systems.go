// Package systems contains the puddle and slide behavior systems: spawners
// leak puddles, puddles make nearby movers lose their footing, and sliders
// eventually recover. Each system registers independently with the scheduler
// and coordinates entity ownership solely through the busy arbiter, never by
// knowing about the other systems.
package systems

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/slipstream/behave"
	"github.com/plus3/slipstream/component"
	"github.com/plus3/slipstream/world"
)

// Cadences, in ticks. Low-frequency on purpose: the scheduler staggers
// entities across each window, so even thousands of spawners or sliders cost
// only population/phase invocations per tick.
const (
	PuddleSpawnPhase behave.Tick = 50
	PuddleDryPhase   behave.Tick = 20
	SlidePhase       behave.Tick = 10
	RecoverPhase     behave.Tick = 5
)

// SlideDuration is how long an induced slide lasts before recovery, absent
// an earlier stop.
const SlideDuration behave.Tick = 30

// SlidePriority is the busy-claim priority used when a puddle takes control
// of a mover. Higher-priority claims (combat, scripted sequences) preempt
// it; lower-priority ones (idle jobs) are blocked while sliding.
const SlidePriority = 300

// SlideOwner is the claim owner identity shared by the slide inducer and
// the recovery system.
const SlideOwner behave.Owner = "slide_system"

// Localizer resolves user-facing strings, such as busy-claim descriptions.
// Lookup failures fall back to built-in English text.
type Localizer interface {
	Lookup(key string) (string, bool)
}

func describe(loc Localizer, key, fallback string) string {
	if loc != nil {
		if s, ok := loc.Lookup(key); ok {
			return s
		}
	}
	return fallback
}

// randUnit returns a uniformly random unit vector.
func randUnit(rng *rand.Rand) mgl64.Vec2 {
	a := rng.Float64() * 2 * math.Pi
	return mgl64.Vec2{math.Cos(a), math.Sin(a)}
}

// RegisterAll wires the full behavior set into the scheduler: puddle
// spawning, puddle drying, slide induction and slide recovery. The seed
// feeds the behaviors' own randomness (spawn rolls, slide headings),
// independent of the scheduler's staggering seed.
func RegisterAll(s *behave.Scheduler, w *world.World, kinds component.Kinds, arb *behave.Arbiter, seed int64, loc Localizer) error {
	rng := rand.New(rand.NewSource(seed))
	regs := []behave.System{
		NewPuddleSpawnSystem(w, kinds, rng).System(),
		NewPuddleDrySystem(w, kinds).System(),
		NewSlideSystem(w, kinds, arb, rng, loc).System(),
		NewSlideRecoverSystem(w, kinds, arb).System(),
	}
	for _, reg := range regs {
		if err := s.Register(reg); err != nil {
			return err
		}
	}
	return nil
}
