package systems

import (
	"math/rand"

	"github.com/plus3/slipstream/behave"
	"github.com/plus3/slipstream/component"
	"github.com/plus3/slipstream/world"
)

// slideSpeedBoost is applied to a mover's speed when it starts sliding.
const slideSpeedBoost = 1.5

// SlideSystem processes puddles and makes movers standing in them slide.
// It claims each victim through the busy arbiter before touching its
// movement state; movers already owned at SlidePriority or above are left
// alone.
type SlideSystem struct {
	world *world.World
	kinds component.Kinds
	arb   *behave.Arbiter
	rng   *rand.Rand
	loc   Localizer
}

// NewSlideSystem creates the slide-inducing behavior.
func NewSlideSystem(w *world.World, kinds component.Kinds, arb *behave.Arbiter, rng *rand.Rand, loc Localizer) *SlideSystem {
	return &SlideSystem{world: w, kinds: kinds, arb: arb, rng: rng, loc: loc}
}

// System returns the scheduler registration.
func (s *SlideSystem) System() behave.System {
	return behave.System{
		Name:   "slide",
		Aspect: behave.MustAspect([]behave.Kind{s.kinds.Puddle, s.kinds.Position}, nil),
		Phase:  SlidePhase,
		Hooks:  []behave.Hook{{Name: "trip", Run: s.trip}},
	}
}

func (s *SlideSystem) trip(puddle behave.Entity) error {
	data, ok := s.world.Get(puddle, s.kinds.Puddle)
	if !ok {
		return nil
	}
	center, ok := s.world.Position(puddle)
	if !ok {
		return nil
	}
	radius := data.(*component.Puddle).Radius

	victims := s.world.Query(
		[]behave.Kind{s.kinds.Position, s.kinds.Physics},
		[]behave.Kind{s.kinds.Sliding},
		world.Circle(center, radius),
	)
	for _, v := range victims {
		if v == puddle {
			continue
		}
		s.induce(v)
	}
	return nil
}

func (s *SlideSystem) induce(v behave.Entity) {
	if !s.arb.CanBecomeBusy(v, SlidePriority, SlideOwner) {
		return
	}
	physData, ok := s.world.Get(v, s.kinds.Physics)
	if !ok {
		return
	}
	phys := physData.(*component.Physics)

	// Check-then-act: any state cleanup owed to a lower-priority incumbent
	// happens here, before the claim transfers. The slide behaviors keep
	// all their state in the Sliding component, and the victims query
	// excludes it, so there is nothing of ours to tear down.
	s.arb.MakeBusy(behave.Claim{
		Entity:      v,
		Owner:       SlideOwner,
		Priority:    SlidePriority,
		Description: describe(s.loc, "slide.busy", "slipping on a puddle"),
	})

	now := s.world.Now()
	s.world.Add(v, s.kinds.Sliding, &component.Sliding{
		Since:        now,
		RecoverAt:    now + SlideDuration,
		PriorHeading: phys.Heading,
		PriorSpeed:   phys.Speed,
	})
	phys.Heading = randUnit(s.rng)
	phys.Speed = phys.Speed*slideSpeedBoost + 0.5
}
