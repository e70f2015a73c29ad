package behave

import "math/bits"

const maskWordBits = 64

// Mask is a growable bitset over kind arena indices. The zero value is an
// empty mask ready for use.
type Mask struct {
	words []uint64
}

// MaskOf builds a mask with the given kinds set.
func MaskOf(kinds ...Kind) Mask {
	var m Mask
	for _, k := range kinds {
		m.Set(k)
	}
	return m
}

// Set marks the kind as present, growing the mask if needed.
func (m *Mask) Set(k Kind) {
	w := int(k.index) / maskWordBits
	for len(m.words) <= w {
		m.words = append(m.words, 0)
	}
	m.words[w] |= 1 << (k.index % maskWordBits)
}

// Clear marks the kind as absent.
func (m *Mask) Clear(k Kind) {
	w := int(k.index) / maskWordBits
	if w < len(m.words) {
		m.words[w] &^= 1 << (k.index % maskWordBits)
	}
}

// Has reports whether the kind is present.
func (m Mask) Has(k Kind) bool {
	w := int(k.index) / maskWordBits
	return w < len(m.words) && m.words[w]&(1<<(k.index%maskWordBits)) != 0
}

// ContainsAll reports whether every bit set in other is also set in m.
func (m Mask) ContainsAll(other Mask) bool {
	for i, w := range other.words {
		if w == 0 {
			continue
		}
		if i >= len(m.words) || m.words[i]&w != w {
			return false
		}
	}
	return true
}

// ContainsAny reports whether any bit set in other is also set in m.
func (m Mask) ContainsAny(other Mask) bool {
	n := min(len(m.words), len(other.words))
	for i := 0; i < n; i++ {
		if m.words[i]&other.words[i] != 0 {
			return true
		}
	}
	return false
}

// IsZero reports whether no bits are set.
func (m Mask) IsZero() bool {
	for _, w := range m.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of bits set.
func (m Mask) Count() int {
	n := 0
	for _, w := range m.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy of the mask.
func (m Mask) Clone() Mask {
	if len(m.words) == 0 {
		return Mask{}
	}
	words := make([]uint64, len(m.words))
	copy(words, m.words)
	return Mask{words: words}
}
