// Package treedelta tracks incremental mutations to a live tree against
// its state at an initial observation point, and maintains that
// difference in minimal delta form. It answers whether anything has
// changed, what the smallest contiguous region containing the changes
// is, what the per-node delta is, and how to patch or revert the tree.
//
// The package is generic over the tree-node handle type H: any
// comparable type usable as a map key can be tracked, so a caller is
// never forced through an adapter layer just to get a different node
// representation tracked.
package treedelta

// Direction names a side of a child list.
type Direction int

const (
	DirPrev Direction = iota
	DirNext
)

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == DirPrev {
		return DirNext
	}
	return DirPrev
}

func (d Direction) String() string {
	if d == DirPrev {
		return "prev"
	}
	return "next"
}

// dimension names which position a value belongs to: the node's
// position before any mutation (original) or its position now (mutated).
type dimension int

const (
	dimOriginal dimension = iota
	dimMutated
)

func (d dimension) String() string {
	if d == dimOriginal {
		return "original"
	}
	return "mutated"
}

// SiblingKind tags the variant held by a Sibling value.
type SiblingKind int

const (
	// SiblingNone marks a child-list boundary (no sibling on that side).
	SiblingNone SiblingKind = iota
	// SiblingHandle holds a concrete node handle.
	SiblingHandle
	// SiblingUnknown means the engine has never been told what sits there.
	SiblingUnknown
	// SiblingPromise means a deferred search for the value is in flight.
	SiblingPromise
)

// Sibling is the tagged union described by the data model: a concrete
// handle, the list boundary, an unresolved unknown, or a deferred
// promise. Kept as a plain struct (not an interface) so it stays
// trivially copyable and promises live in a side-table keyed by
// promiseID rather than as embedded pointers, avoiding reference
// cycles between records.
type Sibling[H comparable] struct {
	Kind    SiblingKind
	Handle  H
	Promise promiseID
}

// HandleSibling wraps a concrete node handle.
func HandleSibling[H comparable](h H) Sibling[H] {
	return Sibling[H]{Kind: SiblingHandle, Handle: h}
}

// NoneSibling represents a child-list boundary.
func NoneSibling[H comparable]() Sibling[H] {
	return Sibling[H]{Kind: SiblingNone}
}

// UnknownSibling represents a side never reported to the engine.
func UnknownSibling[H comparable]() Sibling[H] {
	return Sibling[H]{Kind: SiblingUnknown}
}

func promiseSibling[H comparable](id promiseID) Sibling[H] {
	return Sibling[H]{Kind: SiblingPromise, Promise: id}
}

func (s Sibling[H]) IsHandle() bool  { return s.Kind == SiblingHandle }
func (s Sibling[H]) IsNone() bool    { return s.Kind == SiblingNone }
func (s Sibling[H]) IsUnknown() bool { return s.Kind == SiblingUnknown }
func (s Sibling[H]) IsPromise() bool { return s.Kind == SiblingPromise }

// resolved reports whether this slot holds a concrete value (handle or
// none) rather than an unknown or an in-flight promise.
func (s Sibling[H]) resolved() bool {
	return s.Kind == SiblingHandle || s.Kind == SiblingNone
}

func (s Sibling[H]) Equal(o Sibling[H]) bool {
	if s.Kind != o.Kind {
		return false
	}
	switch s.Kind {
	case SiblingHandle:
		return s.Handle == o.Handle
	case SiblingPromise:
		return s.Promise == o.Promise
	default:
		return true
	}
}

// PositionKind tags the variant held by a Position value.
type PositionKind int

const (
	// PositionAbsent means the node has no position in this dimension.
	PositionAbsent PositionKind = iota
	// PositionKnown means parent, prev and next are all resolved.
	PositionKnown
	// PositionPartial means parent is known but at least one side isn't.
	PositionPartial
)

// Position is one of Absent, Known{parent, prev, next} or
// Partial{parent, and at least one unresolved side}.
type Position[H comparable] struct {
	Kind   PositionKind
	Parent H
	Prev   Sibling[H]
	Next   Sibling[H]
}

// AbsentPosition returns the zero, untracked position.
func AbsentPosition[H comparable]() Position[H] {
	return Position[H]{Kind: PositionAbsent}
}

// KnownPosition returns a fully-resolved position.
func KnownPosition[H comparable](parent H, prev, next Sibling[H]) Position[H] {
	p := Position[H]{Kind: PositionPartial, Parent: parent, Prev: prev, Next: next}
	p.refineKind()
	return p
}

func (p Position[H]) IsAbsent() bool { return p.Kind == PositionAbsent }
func (p Position[H]) IsKnown() bool  { return p.Kind == PositionKnown }

// Side returns the sibling slot named by dir.
func (p Position[H]) Side(dir Direction) Sibling[H] {
	if dir == DirPrev {
		return p.Prev
	}
	return p.Next
}

// withSide returns a copy of p with the dir slot set to s, with Kind
// recomputed.
func (p Position[H]) withSide(dir Direction, s Sibling[H]) Position[H] {
	if dir == DirPrev {
		p.Prev = s
	} else {
		p.Next = s
	}
	p.refineKind()
	return p
}

// refineKind recomputes Kind from Prev/Next for a non-absent position:
// Partial if either side is unresolved, Known otherwise.
func (p *Position[H]) refineKind() {
	if p.Kind == PositionAbsent {
		return
	}
	if !p.Prev.resolved() || !p.Next.resolved() {
		p.Kind = PositionPartial
	} else {
		p.Kind = PositionKnown
	}
}
