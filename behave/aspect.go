package behave

import "fmt"

// Aspect is an immutable filter deciding whether an entity's component set
// qualifies for a system: every required kind must be present and no excluded
// kind may be present. The required and excluded sets are disjoint.
type Aspect struct {
	require Mask
	exclude Mask
}

// NewAspect builds an aspect from required and excluded kinds. It returns
// ErrAspectOverlap if any kind appears in both sets.
func NewAspect(require, exclude []Kind) (Aspect, error) {
	req := MaskOf(require...)
	exc := MaskOf(exclude...)
	if req.ContainsAny(exc) {
		return Aspect{}, fmt.Errorf("required and excluded kinds overlap: %w", ErrAspectOverlap)
	}
	return Aspect{require: req, exclude: exc}, nil
}

// MustAspect is NewAspect panicking on overlap, for aspects built from
// compile-time constant kind sets.
func MustAspect(require, exclude []Kind) Aspect {
	a, err := NewAspect(require, exclude)
	if err != nil {
		panic(err)
	}
	return a
}

// Matches reports whether an entity carrying exactly the kinds in m
// qualifies. Pure; absence of a kind is never an error.
func (a Aspect) Matches(m Mask) bool {
	return m.ContainsAll(a.require) && !m.ContainsAny(a.exclude)
}

// Requires returns a copy of the required-kind mask.
func (a Aspect) Requires() Mask { return a.require.Clone() }

// Excludes returns a copy of the excluded-kind mask.
func (a Aspect) Excludes() Mask { return a.exclude.Clone() }
