package systems_test

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/slipstream/assets"
	"github.com/plus3/slipstream/behave"
	"github.com/plus3/slipstream/component"
	"github.com/plus3/slipstream/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) spawnSpawner(x, y float64, cfg component.PuddleSpawner) behave.Entity {
	e := f.w.Spawn()
	f.w.Add(e, f.kinds.Position, &component.Position{At: mgl64.Vec2{x, y}})
	f.w.Add(e, f.kinds.PuddleSpawner, &cfg)
	return e
}

func TestPuddleSpawn(t *testing.T) {
	f := newFixture()
	spawner := f.spawnSpawner(10, 10, component.PuddleSpawner{
		Chance:       1.0,
		Spread:       3,
		PuddleRadius: 2,
		DryAfter:     100,
	})

	sys := systems.NewPuddleSpawnSystem(f.w, f.kinds, rand.New(rand.NewSource(1)))
	spawn := sys.System().Hooks[0].Run

	require.NoError(t, spawn(spawner))
	// The spawn is deferred until the end of the step.
	require.Empty(t, f.w.Query([]behave.Kind{f.kinds.Puddle}, nil, nil))

	f.w.Step(f.s)
	puddles := f.w.Query([]behave.Kind{f.kinds.Puddle}, nil, nil)
	require.Len(t, puddles, 1)

	data, _ := f.w.Get(puddles[0], f.kinds.Puddle)
	p := data.(*component.Puddle)
	assert.Equal(t, 2.0, p.Radius)
	assert.Equal(t, assets.SpritePuddle, p.Sprite)
	assert.Equal(t, behave.Tick(100), p.DriesAt)

	at, ok := f.w.Position(puddles[0])
	require.True(t, ok)
	assert.LessOrEqual(t, at.Sub(mgl64.Vec2{10, 10}).Len(), 3.0)
}

func TestPuddleSpawnRespectsChance(t *testing.T) {
	f := newFixture()
	spawner := f.spawnSpawner(0, 0, component.PuddleSpawner{Chance: 0, Spread: 3, PuddleRadius: 2, DryAfter: 100})

	sys := systems.NewPuddleSpawnSystem(f.w, f.kinds, rand.New(rand.NewSource(1)))
	require.NoError(t, sys.System().Hooks[0].Run(spawner))
	f.w.Step(f.s)

	assert.Empty(t, f.w.Query([]behave.Kind{f.kinds.Puddle}, nil, nil))
}

func TestPuddleDries(t *testing.T) {
	f := newFixture()
	e := f.w.Spawn()
	f.w.Add(e, f.kinds.Position, &component.Position{})
	f.w.Add(e, f.kinds.Puddle, &component.Puddle{Radius: 2, DriesAt: 5})

	sys := systems.NewPuddleDrySystem(f.w, f.kinds)
	dry := sys.System().Hooks[0].Run

	// Before the deadline the puddle stays.
	require.NoError(t, dry(e))
	f.w.Step(f.s) // tick 1
	assert.True(t, f.w.Alive(e))

	for f.w.Now() < 5 {
		f.w.Step(f.s)
	}
	require.NoError(t, dry(e))
	f.w.Step(f.s)
	assert.False(t, f.w.Alive(e))
}

// Full integration: spawner leaks puddles, movers slip in them and recover,
// all driven through the scheduler's staggered cadences.
func TestBehaviorsEndToEnd(t *testing.T) {
	f := newFixture()
	require.NoError(t, systems.RegisterAll(f.s, f.w, f.kinds, f.arb, 99, nil))
	assert.Equal(t, []string{"puddle_spawn", "puddle_dry", "slide", "slide_recover"}, f.s.Systems())

	f.spawnSpawner(0, 0, component.PuddleSpawner{
		Chance:       1.0,
		Spread:       1,
		PuddleRadius: 5,
		DryAfter:     60,
	})
	mover := f.spawnMover(0.5, 0, 1.0)

	var (
		sawPuddle  bool
		sawSliding bool
		sawClaim   bool
	)
	for i := 0; i < 300; i++ {
		f.w.Step(f.s)
		if len(f.w.Query([]behave.Kind{f.kinds.Puddle}, nil, nil)) > 0 {
			sawPuddle = true
		}
		if f.w.Has(mover, f.kinds.Sliding) {
			sawSliding = true
		}
		if f.arb.IsBusyWithOwner(mover, systems.SlideOwner) {
			sawClaim = true
		}
	}

	assert.True(t, sawPuddle, "no puddle was ever spawned")
	assert.True(t, sawSliding, "the mover never slid")
	assert.True(t, sawClaim, "the mover was never claimed")

	// Dry up the world, stop the mover and let recovery run its course.
	for _, p := range f.w.Query([]behave.Kind{f.kinds.PuddleSpawner}, nil, nil) {
		f.w.Destroy(p)
	}
	for _, p := range f.w.Query([]behave.Kind{f.kinds.Puddle}, nil, nil) {
		f.w.Destroy(p)
	}
	f.physics(mover).Speed = 0
	for i := 0; i < 20 && f.w.Has(mover, f.kinds.Sliding); i++ {
		f.w.Step(f.s)
	}
	assert.False(t, f.w.Has(mover, f.kinds.Sliding))
	assert.False(t, f.arb.IsBusyWithOwner(mover, systems.SlideOwner))
}
