package behave

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSystemName is returned by Scheduler.Register when a system
	// name is already registered. The existing registration is unaffected.
	ErrDuplicateSystemName = errors.New("behave: duplicate system name")

	// ErrPhaseNotPositive is returned when a system is registered with a
	// phase of zero or below.
	ErrPhaseNotPositive = errors.New("behave: phase must be positive")

	// ErrNoHooks is returned when a system is registered without any hooks.
	ErrNoHooks = errors.New("behave: system has no hooks")

	// ErrAspectOverlap is returned by NewAspect when the required and
	// excluded kind sets intersect.
	ErrAspectOverlap = errors.New("behave: aspect kind sets overlap")
)

// HookError describes a hook invocation that failed, either by returning an
// error or by panicking. It is reported to the host via the scheduler's
// logger and failure handler; the remaining due pairs of the tick continue
// to be processed.
type HookError struct {
	System string
	Hook   string
	Entity Entity
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("behave: hook %s/%s failed for entity %d: %v", e.System, e.Hook, e.Entity, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }
