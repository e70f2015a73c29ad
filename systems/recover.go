package systems

import (
	"github.com/plus3/slipstream/behave"
	"github.com/plus3/slipstream/component"
	"github.com/plus3/slipstream/world"
)

// SlideRecoverSystem returns sliding entities to normal once they stop or
// their slide runs out, and cleans up after a preemption: if a
// higher-priority system has taken the claim, the Sliding component is
// stripped without touching the claim or the movement state the new owner
// now controls.
type SlideRecoverSystem struct {
	world *world.World
	kinds component.Kinds
	arb   *behave.Arbiter
}

// NewSlideRecoverSystem creates the recovery behavior.
func NewSlideRecoverSystem(w *world.World, kinds component.Kinds, arb *behave.Arbiter) *SlideRecoverSystem {
	return &SlideRecoverSystem{world: w, kinds: kinds, arb: arb}
}

// System returns the scheduler registration.
func (s *SlideRecoverSystem) System() behave.System {
	return behave.System{
		Name:   "slide_recover",
		Aspect: behave.MustAspect([]behave.Kind{s.kinds.Sliding, s.kinds.Physics}, nil),
		Phase:  RecoverPhase,
		Hooks:  []behave.Hook{{Name: "recover", Run: s.recover}},
	}
}

func (s *SlideRecoverSystem) recover(e behave.Entity) error {
	data, ok := s.world.Get(e, s.kinds.Sliding)
	if !ok {
		return nil
	}
	sl := data.(*component.Sliding)

	if !s.arb.IsBusyWithOwner(e, SlideOwner) {
		// Preempted. The new owner directs the entity now; just drop the
		// slide marker without releasing the claim.
		s.world.Remove(e, s.kinds.Sliding)
		return nil
	}

	physData, ok := s.world.Get(e, s.kinds.Physics)
	if !ok {
		s.world.Remove(e, s.kinds.Sliding)
		s.arb.Release(e, SlideOwner)
		return nil
	}
	phys := physData.(*component.Physics)

	if !phys.Stopped() && s.world.Now() < sl.RecoverAt {
		return nil
	}

	phys.Heading = sl.PriorHeading
	phys.Speed = sl.PriorSpeed
	s.world.Remove(e, s.kinds.Sliding)
	s.arb.Release(e, SlideOwner)
	return nil
}
