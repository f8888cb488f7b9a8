package treedelta

// promiseID is the small integer key a sibPromise lives under in the
// tracker's side-table, keeping the Sibling slot itself trivially
// copyable (Design Notes §9, "promise as tagged union").
type promiseID uint64

// sibPromise is a deferred search: origin is still looking for its
// *original* sibling in direction dir; ptr is the MutatedNode whose
// mutated[dir] slot currently holds this promise. A promise is placed
// by writing ptr.Mutated.{Prev,Next} := promiseSibling(id); it resolves
// by writing origin.Original.{Prev,Next} := v and being discarded.
type sibPromise[H comparable] struct {
	origin *MutatedNode[H]
	dir    Direction
	ptr    *MutatedNode[H]
}

type promiseTable[H comparable] struct {
	nextID   promiseID
	promises map[promiseID]*sibPromise[H]
}

func newPromiseTable[H comparable]() *promiseTable[H] {
	return &promiseTable[H]{promises: make(map[promiseID]*sibPromise[H])}
}

// place records a new promise and writes its marker into ptr's mutated
// slot for dir, returning the id.
func (t *promiseTable[H]) place(origin *MutatedNode[H], dir Direction, ptr *MutatedNode[H]) promiseID {
	t.nextID++
	id := t.nextID
	t.promises[id] = &sibPromise[H]{origin: origin, dir: dir, ptr: ptr}
	ptr.Mutated = ptr.Mutated.withSide(dir, promiseSibling[H](id))
	return id
}

func (t *promiseTable[H]) get(id promiseID) (*sibPromise[H], bool) {
	p, ok := t.promises[id]
	return p, ok
}

// discard removes a promise without resolving it (used when its origin
// transitions to fixed, per invariant I5).
func (t *promiseTable[H]) discard(id promiseID) {
	delete(t.promises, id)
}
