package behave_test

import (
	"testing"

	"github.com/plus3/slipstream/behave"
	"github.com/stretchr/testify/assert"
)

func TestArbiterClaimLifecycle(t *testing.T) {
	arb := behave.NewArbiter()
	e := behave.Entity(7)

	assert.True(t, arb.CanBecomeBusy(e, 300, "slide_system"))
	_, ok := arb.Claim(e)
	assert.False(t, ok)

	arb.MakeBusy(behave.Claim{Entity: e, Owner: "slide_system", Priority: 300, Description: "sliding on a puddle"})

	assert.True(t, arb.IsBusyWithOwner(e, "slide_system"))
	assert.False(t, arb.IsBusyWithOwner(e, "job_system"))

	claim, ok := arb.Claim(e)
	assert.True(t, ok)
	assert.Equal(t, behave.Owner("slide_system"), claim.Owner)
	assert.Equal(t, 300, claim.Priority)
	assert.Equal(t, "sliding on a puddle", claim.Description)

	arb.Release(e, "slide_system")
	assert.False(t, arb.IsBusyWithOwner(e, "slide_system"))
	assert.Equal(t, 0, arb.Len())
}

func TestArbiterPriorityPreemption(t *testing.T) {
	tests := []struct {
		name       string
		incumbent  int
		challenger int
		want       bool
	}{
		{"higher priority preempts", 100, 200, true},
		{"equal priority never preempts", 100, 100, false},
		{"lower priority loses", 100, 50, false},
		{"barely higher wins", 100, 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arb := behave.NewArbiter()
			e := behave.Entity(1)
			arb.MakeBusy(behave.Claim{Entity: e, Owner: "incumbent", Priority: tt.incumbent})
			assert.Equal(t, tt.want, arb.CanBecomeBusy(e, tt.challenger, "challenger"))
		})
	}
}

func TestArbiterSingleClaimInvariant(t *testing.T) {
	arb := behave.NewArbiter()
	e := behave.Entity(1)

	arb.MakeBusy(behave.Claim{Entity: e, Owner: "a", Priority: 10})
	arb.MakeBusy(behave.Claim{Entity: e, Owner: "b", Priority: 20})

	// The second claim replaced the first; it did not stack.
	assert.Equal(t, 1, arb.Len())
	assert.False(t, arb.IsBusyWithOwner(e, "a"))
	assert.True(t, arb.IsBusyWithOwner(e, "b"))

	// The old owner's release must not clear the new claim.
	arb.Release(e, "a")
	assert.True(t, arb.IsBusyWithOwner(e, "b"))
}

func TestArbiterReleaseIdempotent(t *testing.T) {
	arb := behave.NewArbiter()
	e := behave.Entity(1)
	arb.MakeBusy(behave.Claim{Entity: e, Owner: "a", Priority: 10})

	arb.Release(e, "a")
	arb.Release(e, "a")

	assert.Equal(t, 0, arb.Len())
	assert.True(t, arb.CanBecomeBusy(e, 1, "anyone"))
}

func TestArbiterDrop(t *testing.T) {
	arb := behave.NewArbiter()
	e := behave.Entity(1)
	arb.MakeBusy(behave.Claim{Entity: e, Owner: "a", Priority: 10})

	arb.Drop(e)
	assert.False(t, arb.IsBusyWithOwner(e, "a"))
	assert.Equal(t, 0, arb.Len())
}

// The scenario from the slide/job interaction: a high-priority slide claim
// blocks a low-priority job claim until released.
func TestArbiterSlideScenario(t *testing.T) {
	arb := behave.NewArbiter()
	e := behave.Entity(42)

	assert.True(t, arb.CanBecomeBusy(e, 300, "slide_system"))
	arb.MakeBusy(behave.Claim{Entity: e, Owner: "slide_system", Priority: 300, Description: "slipping"})

	assert.False(t, arb.CanBecomeBusy(e, 20, "job_system"))

	arb.Release(e, "slide_system")
	assert.False(t, arb.IsBusyWithOwner(e, "slide_system"))
	assert.True(t, arb.CanBecomeBusy(e, 20, "job_system"))
}
