package entity

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrDuplicateID is matched by DuplicateIDError via errors.Is.
	ErrDuplicateID = errors.New("entity: duplicate id")

	// ErrMutationDuringIteration is the panic value raised when the registry
	// is modified while an Iterate sequence is being consumed.
	ErrMutationDuringIteration = errors.New("entity: registry mutated during iteration")
)

// DuplicateIDError reports an insertion with an id that is already live.
type DuplicateIDError struct {
	ID ID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("entity: duplicate id %d", e.ID)
}

// Is makes errors.Is(err, ErrDuplicateID) hold.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID
}

// Registry owns all live entities, keyed by ID, in insertion order.
// It is not safe for concurrent use; the frame loop is its only writer.
type Registry struct {
	entities  map[ID]*Entity
	order     []ID
	lastID    ID
	iterating int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entities: make(map[ID]*Entity),
	}
}

// Add inserts an entity. A zero e.ID is replaced by the next free id;
// a preset id is accepted unless it is already present.
func (r *Registry) Add(e *Entity) (ID, error) {
	r.checkMutable()

	if e.ID == 0 {
		r.lastID++
		e.ID = r.lastID
	} else {
		if _, exists := r.entities[e.ID]; exists {
			return 0, &DuplicateIDError{ID: e.ID}
		}
		// Preset ids advance the counter so generated ids never collide.
		if e.ID > r.lastID {
			r.lastID = e.ID
		}
	}

	r.entities[e.ID] = e
	r.order = append(r.order, e.ID)
	return e.ID, nil
}

// Remove deletes an entity. Removing an absent id is a no-op.
func (r *Registry) Remove(id ID) {
	r.checkMutable()

	if _, ok := r.entities[id]; !ok {
		return
	}
	delete(r.entities, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

// RemoveAll deletes every listed id in one pass. Absent ids are ignored.
func (r *Registry) RemoveAll(ids []ID) {
	r.checkMutable()

	if len(ids) == 0 {
		return
	}
	drop := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := r.entities[id]; ok {
			drop[id] = struct{}{}
			delete(r.entities, id)
		}
	}
	if len(drop) == 0 {
		return
	}
	r.order = slices.DeleteFunc(r.order, func(id ID) bool {
		_, ok := drop[id]
		return ok
	})
}

// Get returns the entity with the given id.
func (r *Registry) Get(id ID) (*Entity, bool) {
	e, ok := r.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return len(r.entities)
}

// IDs returns a snapshot of live ids in insertion order.
func (r *Registry) IDs() []ID {
	return slices.Clone(r.order)
}

// Iterate lazily yields entities having all capabilities in c, in insertion
// order. A zero c yields every entity. The registry must not be modified
// until the sequence is done; collect ids and call RemoveAll afterwards.
func (r *Registry) Iterate(c Capability) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		r.iterating++
		defer func() { r.iterating-- }()

		for _, id := range r.order {
			e := r.entities[id]
			if !e.Caps.Has(c) {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// First returns the first entity having capabilities c.
func (r *Registry) First(c Capability) (*Entity, bool) {
	for e := range r.Iterate(c) {
		return e, true
	}
	return nil, false
}

func (r *Registry) checkMutable() {
	if r.iterating > 0 {
		panic(ErrMutationDuringIteration)
	}
}
