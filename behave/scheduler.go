package behave

import (
	"fmt"
	"math/rand"
	"runtime/debug"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// Scheduler drives registered systems on their per-system cadence. For a
// system with phase P, each matched entity's hooks run once per P ticks, and
// entities are phase-shifted against each other with a random offset so the
// host pays roughly population/P invocations per tick per system instead of
// the whole population at once.
//
// The scheduler learns about entities through the StoreObserver interface;
// the store must report every component-set change. All methods are meant to
// be called from the host's single tick-driving goroutine.
type Scheduler struct {
	log    *zap.Logger
	rng    *rand.Rand
	onFail func(*HookError)

	now    Tick
	order  []*systemState
	byName map[string]*systemState
	masks  *intmap.Map[Entity, Mask]
}

type systemState struct {
	sys   System
	due   *intmap.Map[Entity, Tick]
	stats systemStats
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used to report hook failures. Defaults to a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithSeed seeds the scheduler's PRNG, making entity staggering reproducible.
// Each scheduler owns its generator; nothing here touches the process-wide
// rand source.
func WithSeed(seed int64) Option {
	return func(s *Scheduler) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithFailureHandler installs a callback invoked for every hook failure,
// after it has been logged.
func WithFailureHandler(fn func(*HookError)) Option {
	return func(s *Scheduler) { s.onFail = fn }
}

// NewScheduler creates an empty scheduler.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		log:    zap.NewNop(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		byName: make(map[string]*systemState),
		masks:  intmap.New[Entity, Mask](256),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a system to the active set. It returns
// ErrDuplicateSystemName if the name is taken, ErrPhaseNotPositive for a
// non-positive phase and ErrNoHooks for an empty hook list; a failed
// registration leaves already-registered systems untouched. Entities already
// known to the scheduler are matched immediately.
func (s *Scheduler) Register(sys System) error {
	if sys.Name == "" {
		return fmt.Errorf("register: system name must not be empty")
	}
	if _, ok := s.byName[sys.Name]; ok {
		return fmt.Errorf("register %q: %w", sys.Name, ErrDuplicateSystemName)
	}
	if sys.Phase <= 0 {
		return fmt.Errorf("register %q: %w (got %d)", sys.Name, ErrPhaseNotPositive, sys.Phase)
	}
	if len(sys.Hooks) == 0 {
		return fmt.Errorf("register %q: %w", sys.Name, ErrNoHooks)
	}
	for _, h := range sys.Hooks {
		if h.Run == nil {
			return fmt.Errorf("register %q: %w: hook %q has no function", sys.Name, ErrNoHooks, h.Name)
		}
	}

	st := &systemState{
		sys: sys,
		due: intmap.New[Entity, Tick](256),
	}
	s.masks.ForEach(func(e Entity, m Mask) bool {
		if sys.Aspect.Matches(m) {
			st.due.Put(e, s.offset(sys.Phase))
		}
		return true
	})
	s.byName[sys.Name] = st
	s.order = append(s.order, st)
	return nil
}

// Systems returns the registered system names in registration order.
func (s *Scheduler) Systems() []string {
	names := make([]string, len(s.order))
	for i, st := range s.order {
		names[i] = st.sys.Name
	}
	return names
}

// Now returns the tick value of the most recent Tick call.
func (s *Scheduler) Now() Tick { return s.now }

// EntityUpdated implements StoreObserver. It re-evaluates every system's
// aspect against the entity's new component set: a fresh match is scheduled
// with a random offset in [0, phase), a lost match is dropped from the
// schedule immediately.
func (s *Scheduler) EntityUpdated(e Entity, kinds Mask) {
	s.masks.Put(e, kinds.Clone())
	for _, st := range s.order {
		matched := st.sys.Aspect.Matches(kinds)
		scheduled := st.due.Has(e)
		switch {
		case matched && !scheduled:
			st.due.Put(e, s.offset(st.sys.Phase))
		case !matched && scheduled:
			st.due.Del(e)
		}
	}
}

// EntityDropped implements StoreObserver. The entity stops being scheduled
// by every system.
func (s *Scheduler) EntityDropped(e Entity) {
	s.masks.Del(e)
	for _, st := range s.order {
		st.due.Del(e)
	}
}

func (s *Scheduler) offset(phase Tick) Tick {
	return s.now + Tick(s.rng.Int63n(int64(phase)))
}

// Tick processes every (system, entity) pair whose next-due tick is at or
// before now, in system registration order, then reschedules each processed
// pair to now+phase. Rescheduling from now rather than from the pair's
// previous due tick means a stalled host never triggers a catch-up storm.
// The host must call Tick with a monotonically increasing value, once per
// simulation step.
func (s *Scheduler) Tick(now Tick) {
	s.now = now
	for _, st := range s.order {
		s.runDue(st, now)
	}
}

func (s *Scheduler) runDue(st *systemState, now Tick) {
	var due []Entity
	st.due.ForEach(func(e Entity, at Tick) bool {
		if at <= now {
			due = append(due, e)
		}
		return true
	})
	// Stable processing order; staggering already comes from the offsets.
	slices.Sort(due)

	for _, e := range due {
		// A hook run earlier this tick may have unmatched or destroyed e.
		if !st.due.Has(e) {
			continue
		}
		start := time.Now()
		s.invoke(st, e)
		st.stats.observe(time.Since(start))
		if st.due.Has(e) {
			st.due.Put(e, now+st.sys.Phase)
		}
	}
}

// invoke runs the system's hooks for one entity, in registration order. The
// first failing hook ends the entity's processing for this tick; the pair is
// naturally retried at its next cadence, never inside the same tick.
func (s *Scheduler) invoke(st *systemState, e Entity) {
	for _, h := range st.sys.Hooks {
		if err := runHook(h, e); err != nil {
			st.stats.failures++
			s.reportFailure(&HookError{
				System: st.sys.Name,
				Hook:   h.Name,
				Entity: e,
				Err:    err,
			})
			return
		}
		// The hook may have changed the entity's component set.
		if !st.due.Has(e) {
			return
		}
	}
}

func runHook(h Hook, e Entity) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return h.Run(e)
}

func (s *Scheduler) reportFailure(he *HookError) {
	s.log.Error("behavior hook failed",
		zap.String("system", he.System),
		zap.String("hook", he.Hook),
		zap.Uint64("entity", uint64(he.Entity)),
		zap.Error(he.Err),
	)
	if s.onFail != nil {
		s.onFail(he)
	}
}
