// Package behave implements phased scheduling and busy arbitration for
// entity behaviors.
//
// The package is the glue between an entity/component store (external; see
// the world package for a reference in-memory host) and an open-ended set of
// behavior systems that are mutually unaware of each other. It provides three
// cooperating pieces:
//
//   - Aspect: a required/excluded component-kind filter deciding which
//     entities a system processes.
//   - Scheduler: drives each registered system's hooks for each matched
//     entity on a fixed per-system cadence, staggering entities across the
//     cadence window so a large population never runs on a single tick.
//   - Arbiter: grants at most one system at a time exclusive behavioral
//     control of an entity, with preemption decided purely by an integer
//     priority.
//
// All operations are synchronous and single-threaded; the host drives
// discrete simulation ticks and nothing here blocks or spawns goroutines.
package behave

import "time"

// TickDuration is the wall-clock length of one simulation tick in the
// reference domain.
const TickDuration = 100 * time.Millisecond

// Entity is an opaque entity identity. Zero is never a valid entity.
type Entity uint64

// Tick is the simulation clock value in fixed time units. The host advances
// it exactly once per simulation step; all phase and claim timing is
// expressed relative to it.
type Tick int64

// Owner identifies the system holding a busy claim. It is opaque to the
// arbiter; systems pick a stable string and use it consistently.
type Owner string
