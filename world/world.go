// Package world is a reference in-memory entity/component store for the
// behave package. It implements the collaborator contracts the core is
// written against: component access, spatial region queries and the tick
// clock. Production hosts bring their own store; this one backs the tests,
// the examples and the stress tool.
//
// Like the core, the world is single-threaded: all mutation happens from the
// goroutine driving Step.
package world

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"
	"github.com/plus3/slipstream/behave"
)

type record struct {
	mask   behave.Mask
	comps  map[behave.Kind]any
	pos    mgl64.Vec2
	hasPos bool
}

// World owns entities, their components and the spatial index.
type World struct {
	kinds     *behave.KindRegistry
	recs      *intmap.Map[behave.Entity, *record]
	observers []behave.StoreObserver

	grid     *grid
	posKind  behave.Kind
	posOf    func(any) mgl64.Vec2
	trackPos bool

	next     uint64
	tick     behave.Tick
	deferred []func()
}

// Option configures a World.
type Option func(*World)

// WithCellSize sets the spatial grid cell size in world units. The default
// of 20 suits query radii up to roughly one cell.
func WithCellSize(size float64) Option {
	return func(w *World) { w.grid = newGrid(size) }
}

// New creates an empty world whose components are drawn from the given kind
// arena.
func New(kinds *behave.KindRegistry, opts ...Option) *World {
	w := &World{
		kinds: kinds,
		recs:  intmap.New[behave.Entity, *record](256),
		grid:  newGrid(defaultCellSize),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Kinds returns the kind arena this world was built with.
func (w *World) Kinds() *behave.KindRegistry { return w.kinds }

// Observe registers an observer for component-set changes. The scheduler and
// the arbiter both implement behave.StoreObserver.
func (w *World) Observe(o behave.StoreObserver) {
	w.observers = append(w.observers, o)
}

// TrackPositions tells the world which component kind carries an entity's
// position and how to read it, enabling region queries. Position updates
// must go through Add (replacing the component) so the grid stays current.
func (w *World) TrackPositions(k behave.Kind, at func(data any) mgl64.Vec2) {
	w.posKind = k
	w.posOf = at
	w.trackPos = true
}

// Spawn creates a new empty entity.
func (w *World) Spawn() behave.Entity {
	w.next++
	e := behave.Entity(w.next)
	w.recs.Put(e, &record{comps: make(map[behave.Kind]any)})
	w.notifyUpdated(e)
	return e
}

// Destroy removes the entity and all its components.
func (w *World) Destroy(e behave.Entity) {
	r, ok := w.recs.Get(e)
	if !ok {
		return
	}
	if r.hasPos {
		w.grid.remove(e, r.pos)
	}
	w.recs.Del(e)
	for _, o := range w.observers {
		o.EntityDropped(e)
	}
}

// Alive reports whether the entity exists.
func (w *World) Alive(e behave.Entity) bool {
	return w.recs.Has(e)
}

// Add attaches component data of the given kind, replacing any existing
// data of that kind. Observers are notified only when the entity's kind set
// actually changes; replacing data in place is not a set change.
func (w *World) Add(e behave.Entity, k behave.Kind, data any) {
	r, ok := w.recs.Get(e)
	if !ok {
		return
	}
	fresh := !r.mask.Has(k)
	r.comps[k] = data
	r.mask.Set(k)

	if w.trackPos && k == w.posKind {
		p := w.posOf(data)
		if r.hasPos {
			w.grid.move(e, r.pos, p)
		} else {
			w.grid.add(e, p)
		}
		r.pos = p
		r.hasPos = true
	}

	if fresh {
		w.notifyUpdated(e)
	}
}

// Remove detaches the component of the given kind, if present.
func (w *World) Remove(e behave.Entity, k behave.Kind) {
	r, ok := w.recs.Get(e)
	if !ok || !r.mask.Has(k) {
		return
	}
	delete(r.comps, k)
	r.mask.Clear(k)

	if w.trackPos && k == w.posKind && r.hasPos {
		w.grid.remove(e, r.pos)
		r.hasPos = false
	}

	w.notifyUpdated(e)
}

// Get returns the component data of the given kind.
func (w *World) Get(e behave.Entity, k behave.Kind) (any, bool) {
	r, ok := w.recs.Get(e)
	if !ok {
		return nil, false
	}
	data, ok := r.comps[k]
	return data, ok
}

// Has reports whether the entity carries the given kind.
func (w *World) Has(e behave.Entity, k behave.Kind) bool {
	r, ok := w.recs.Get(e)
	return ok && r.mask.Has(k)
}

// KindsOf returns a copy of the entity's current component-kind set.
func (w *World) KindsOf(e behave.Entity) behave.Mask {
	r, ok := w.recs.Get(e)
	if !ok {
		return behave.Mask{}
	}
	return r.mask.Clone()
}

// Position returns the tracked position of the entity, if any.
func (w *World) Position(e behave.Entity) (mgl64.Vec2, bool) {
	r, ok := w.recs.Get(e)
	if !ok || !r.hasPos {
		return mgl64.Vec2{}, false
	}
	return r.pos, true
}

// Len returns the number of live entities.
func (w *World) Len() int { return w.recs.Len() }

// Query returns the entities carrying every kind in must and none in
// exclude, restricted to the given region when one is supplied. A nil region
// means everywhere. Results are sorted by entity identity. An empty result
// is normal, not an error.
func (w *World) Query(must, exclude []behave.Kind, region Region) []behave.Entity {
	req := behave.MaskOf(must...)
	exc := behave.MaskOf(exclude...)

	var out []behave.Entity
	keep := func(e behave.Entity, r *record) {
		if r.mask.ContainsAll(req) && !r.mask.ContainsAny(exc) {
			out = append(out, e)
		}
	}

	if region == nil {
		w.recs.ForEach(func(e behave.Entity, r *record) bool {
			keep(e, r)
			return true
		})
	} else {
		if !w.trackPos {
			return nil
		}
		for _, e := range w.grid.candidates(region.bounds()) {
			r, ok := w.recs.Get(e)
			if ok && r.hasPos && region.Contains(r.pos) {
				keep(e, r)
			}
		}
	}

	slices.Sort(out)
	return out
}

// Now implements behave.Clock.
func (w *World) Now() behave.Tick { return w.tick }

// Defer queues a structural change to run after the current step's systems
// have all finished, so a hook can spawn or destroy entities without the
// tick observing its own churn mid-iteration.
func (w *World) Defer(fn func()) {
	w.deferred = append(w.deferred, fn)
}

// Step advances the clock by one tick, drives the scheduler, then flushes
// deferred changes. Changes deferred while flushing wait for the next step.
func (w *World) Step(s *behave.Scheduler) behave.Tick {
	w.tick++
	s.Tick(w.tick)

	queued := w.deferred
	w.deferred = nil
	for _, fn := range queued {
		fn()
	}
	return w.tick
}

func (w *World) notifyUpdated(e behave.Entity) {
	r, ok := w.recs.Get(e)
	if !ok {
		return
	}
	for _, o := range w.observers {
		o.EntityUpdated(e, r.mask)
	}
}
