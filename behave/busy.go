package behave

// Claim grants one system exclusive behavioral control of an entity. The
// description is free-form text for diagnostics and UI, not interpreted by
// the arbiter.
type Claim struct {
	Entity      Entity
	Owner       Owner
	Priority    int
	Description string
}

// Arbiter enforces single-owner semantics over which system currently
// directs an entity's high-level behavior. Preemption is governed purely by
// integer priority; no system needs to know another system exists.
//
// The check-then-act split between CanBecomeBusy and MakeBusy is deliberate:
// between the two calls the preempting system is expected to clean up the
// incumbent's behavior-specific state (cancel pathing, strip its components),
// which only the preempting system can know how to do. The arbiter itself
// never inspects components. Under the single-threaded tick model the split
// is safe; a host that processes entities concurrently must wrap the pair in
// a per-entity critical section.
type Arbiter struct {
	claims map[Entity]Claim
}

// NewArbiter creates an arbiter with no claims.
func NewArbiter() *Arbiter {
	return &Arbiter{claims: make(map[Entity]Claim)}
}

// CanBecomeBusy reports whether a claim at the given priority could take the
// entity: true when the entity is unclaimed or the incumbent's priority is
// strictly lower. Equal priority never preempts, so ties cannot oscillate
// ownership back and forth. Pure query; no state change.
func (a *Arbiter) CanBecomeBusy(e Entity, priority int, owner Owner) bool {
	incumbent, ok := a.claims[e]
	if !ok {
		return true
	}
	return priority > incumbent.Priority
}

// MakeBusy unconditionally installs the claim, replacing any prior claim.
// Callers must have checked CanBecomeBusy first and performed whatever
// cleanup of the previous owner's state they require; MakeBusy does not
// re-check.
func (a *Arbiter) MakeBusy(c Claim) {
	a.claims[c.Entity] = c
}

// IsBusyWithOwner reports whether the entity is currently claimed by owner.
// The owning system calls this each cycle to detect it has been preempted.
func (a *Arbiter) IsBusyWithOwner(e Entity, owner Owner) bool {
	c, ok := a.claims[e]
	return ok && c.Owner == owner
}

// Release removes the claim iff it is currently held by owner. A release
// with a non-matching owner is a silent no-op, so a stale reference can
// never clear someone else's newer claim. Idempotent.
func (a *Arbiter) Release(e Entity, owner Owner) {
	if c, ok := a.claims[e]; ok && c.Owner == owner {
		delete(a.claims, e)
	}
}

// Claim returns the entity's current claim, if any.
func (a *Arbiter) Claim(e Entity) (Claim, bool) {
	c, ok := a.claims[e]
	return c, ok
}

// Drop removes the entity's claim regardless of owner. The store calls this
// when an entity is destroyed; behavior systems use Release.
func (a *Arbiter) Drop(e Entity) {
	delete(a.claims, e)
}

// Len returns the number of entities with an active claim.
func (a *Arbiter) Len() int { return len(a.claims) }

// EntityUpdated implements StoreObserver. Component changes never affect
// claims.
func (a *Arbiter) EntityUpdated(Entity, Mask) {}

// EntityDropped implements StoreObserver, releasing the claim of a destroyed
// entity. Registering the arbiter as a store observer keeps the claim table
// free of dead entities without any system having to remember them.
func (a *Arbiter) EntityDropped(e Entity) { a.Drop(e) }
