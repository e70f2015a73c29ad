package behave

// HookFunc is one unit of per-entity processing. It runs synchronously
// inside a tick; returning an error (or panicking) skips the system's
// remaining hooks for that entity for the rest of the current tick.
type HookFunc func(e Entity) error

// Hook pairs a processing function with a name used in logs and failure
// reports. Hooks are carried as direct closures; there is no name-based
// convention lookup.
type Hook struct {
	Name string
	Run  HookFunc
}

// System is a behavior registration: a unique name, the aspect selecting its
// entities, the cadence in ticks between invocations for the same entity,
// and the hooks invoked in order per due entity.
type System struct {
	Name   string
	Aspect Aspect
	Phase  Tick
	Hooks  []Hook
}

// StoreObserver receives component-set changes from the entity store. The
// Scheduler implements it; the store must call EntityUpdated after every
// component add or remove (and on entity creation) and EntityDropped when an
// entity is destroyed.
type StoreObserver interface {
	EntityUpdated(e Entity, kinds Mask)
	EntityDropped(e Entity)
}

// Clock exposes the host's tick counter to behavior systems.
type Clock interface {
	Now() Tick
}
