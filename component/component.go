// Package component defines the component types the behavior systems attach
// to entities, and the kind registration glue binding them to a world's kind
// arena.
package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/slipstream/behave"
)

// Position places an entity in the world.
type Position struct {
	At mgl64.Vec2
}

// Physics carries an entity's movement state. Heading is a unit vector.
type Physics struct {
	Heading mgl64.Vec2
	Speed   float64
}

// Stopped reports whether the entity has effectively come to rest.
func (p *Physics) Stopped() bool { return p.Speed < 0.01 }

// Puddle marks an entity as a puddle on the ground.
type Puddle struct {
	Radius  float64
	DriesAt behave.Tick
	Sprite  string
}

// PuddleSpawner makes an entity periodically leak puddles around itself.
type PuddleSpawner struct {
	// Chance is the probability of spawning a puddle per spawner cycle.
	Chance float64
	// Spread is the maximum distance from the spawner a puddle appears at.
	Spread float64
	// PuddleRadius is the radius of spawned puddles.
	PuddleRadius float64
	// DryAfter is how many ticks a spawned puddle lasts.
	DryAfter behave.Tick
}

// Sliding marks an entity as having lost its footing. The prior movement
// state is kept so recovery can restore it.
type Sliding struct {
	Since        behave.Tick
	RecoverAt    behave.Tick
	PriorHeading mgl64.Vec2
	PriorSpeed   float64
}

// Kinds holds the registered component kinds the behavior systems share.
type Kinds struct {
	Position      behave.Kind
	Physics       behave.Kind
	Puddle        behave.Kind
	PuddleSpawner behave.Kind
	Sliding       behave.Kind
}

// Register registers every behavior component kind in the arena and returns
// the handles. Safe to call more than once per registry.
func Register(reg *behave.KindRegistry) Kinds {
	return Kinds{
		Position:      reg.Register("position"),
		Physics:       reg.Register("physics"),
		Puddle:        reg.Register("puddle"),
		PuddleSpawner: reg.Register("puddle_spawner"),
		Sliding:       reg.Register("sliding"),
	}
}

// PositionOf reads the position vector out of Position component data, for
// wiring into World.TrackPositions.
func PositionOf(data any) mgl64.Vec2 {
	return data.(*Position).At
}
