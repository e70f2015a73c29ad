package behave

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Kind names a category of data attachable to an entity. A Kind is produced
// by KindRegistry.Register and carries two identities: a stable content hash
// of its name, equal across processes and registries, and a small arena index
// unique within its registry, used for fast set membership in masks.
//
// Kinds are value objects; two Kinds registered under the same name in the
// same registry compare equal.
type Kind struct {
	name  string
	index uint32
	hash  uint64
}

// Name returns the human-readable name the kind was registered under.
func (k Kind) Name() string { return k.name }

// Index returns the kind's arena index within its registry.
func (k Kind) Index() uint32 { return k.index }

// Hash returns the stable content hash derived from the kind's name.
func (k Kind) Hash() uint64 { return k.hash }

func (k Kind) String() string { return k.name }

// KindRegistry is an arena of component kinds. Each world/session owns its
// own registry; kinds from different registries must not be mixed in one
// scheduler or store.
type KindRegistry struct {
	byName map[string]Kind
	byHash map[uint64]string
	names  []string
}

// NewKindRegistry creates an empty kind arena.
func NewKindRegistry() *KindRegistry {
	return &KindRegistry{
		byName: make(map[string]Kind),
		byHash: make(map[uint64]string),
	}
}

// Register returns the Kind for name, allocating the next arena index on
// first registration. Registering the same name again returns the identical
// Kind, so independent systems referencing the same name agree on it.
func (r *KindRegistry) Register(name string) Kind {
	if k, ok := r.byName[name]; ok {
		return k
	}
	h := xxhash.Sum64String(name)
	if prev, ok := r.byHash[h]; ok && prev != name {
		panic(fmt.Sprintf("behave: kind name hash collision: %q vs %q", name, prev))
	}
	k := Kind{
		name:  name,
		index: uint32(len(r.names)),
		hash:  h,
	}
	r.byName[name] = k
	r.byHash[h] = name
	r.names = append(r.names, name)
	return k
}

// Lookup returns the Kind registered under name, if any.
func (r *KindRegistry) Lookup(name string) (Kind, bool) {
	k, ok := r.byName[name]
	return k, ok
}

// Len returns the number of registered kinds.
func (r *KindRegistry) Len() int { return len(r.names) }

// NameAt returns the name of the kind with the given arena index.
func (r *KindRegistry) NameAt(index uint32) string {
	if int(index) >= len(r.names) {
		return ""
	}
	return r.names[index]
}
