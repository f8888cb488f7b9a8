package treedelta

// BoundaryFlag marks which side of a node a BoundaryPoint sits on,
// mirroring the four-way "before/after, open/close tag" scheme a range
// needs to express "starts inside this element" distinctly from
// "starts before this element".
type BoundaryFlag int

const (
	BeforeOpen BoundaryFlag = iota
	AfterOpen
	BeforeClose
	AfterClose
)

func (f BoundaryFlag) String() string {
	switch f {
	case BeforeOpen:
		return "before-open"
	case AfterOpen:
		return "after-open"
	case BeforeClose:
		return "before-close"
	default:
		return "after-close"
	}
}

// BoundaryPoint names a position in the tree relative to a node, not a
// (node, offset) pair: the engine only ever needs to say "just inside
// this node's start" or "just outside this node's end", never an
// arbitrary character offset.
type BoundaryPoint[H comparable] struct {
	Node H
	Flag BoundaryFlag
}

// BoundaryRange is the minimal bounding range of a set of changes: a
// start and end BoundaryPoint. It implements RangeCollaborator against
// a caller-supplied order/containment oracle, so the same type serves
// any tree implementation without treedelta depending on it.
type BoundaryRange[H comparable] struct {
	start, end   BoundaryPoint[H]
	null         bool
	disconnected bool
	compareOrder func(a, b BoundaryPoint[H]) int
	contains     func(ancestor, node H) bool
	sameRoot     func(a, b H) bool
}

// NewBoundaryRange constructs an empty (null) range. compareOrder must
// return <0, 0, >0 for document-order comparisons of two boundary
// points in the same tree; contains reports ancestor-or-self. sameRoot
// reports whether two nodes belong to the same root tree; it may be
// nil, which disables disconnected-root detection in Extend (every
// union is then assumed same-tree).
func NewBoundaryRange[H comparable](compareOrder func(a, b BoundaryPoint[H]) int, contains func(ancestor, node H) bool, sameRoot func(a, b H) bool) *BoundaryRange[H] {
	return &BoundaryRange[H]{null: true, compareOrder: compareOrder, contains: contains, sameRoot: sameRoot}
}

func (r *BoundaryRange[H]) Start() BoundaryPoint[H] { return r.start }
func (r *BoundaryRange[H]) End() BoundaryPoint[H]   { return r.end }

// SelectNode collapses the range to exactly surround node: from just
// before its open tag to just after its close tag.
func (r *BoundaryRange[H]) SelectNode(node H) {
	r.start = BoundaryPoint[H]{Node: node, Flag: BeforeOpen}
	r.end = BoundaryPoint[H]{Node: node, Flag: AfterClose}
	r.null = false
}

// Extend widens the range to also cover other, taking the
// document-order minimum start and maximum end. If other sits in a
// different root tree, the union is ambiguous (spec §4.5 "throw if
// contributions span more than one root tree"/§6 "ambiguous range");
// this is recorded via disconnected rather than returned as an error
// here, since Extend has no error return, and surfaces through IsNull.
func (r *BoundaryRange[H]) Extend(other RangeCollaborator[H]) {
	o, ok := other.(*BoundaryRange[H])
	if !ok || o.IsNull() {
		return
	}
	if r.null {
		r.start, r.end, r.null = o.start, o.end, false
		return
	}
	if r.sameRoot != nil && !r.sameRoot(r.start.Node, o.start.Node) {
		r.disconnected = true
		return
	}
	if r.compareOrder(o.start, r.start) < 0 {
		r.start = o.start
	}
	if r.compareOrder(o.end, r.end) > 0 {
		r.end = o.end
	}
}

func (r *BoundaryRange[H]) SetStart(node H, flag BoundaryFlag) {
	r.start = BoundaryPoint[H]{Node: node, Flag: flag}
	r.null = false
}

func (r *BoundaryRange[H]) SetEnd(node H, flag BoundaryFlag) {
	r.end = BoundaryPoint[H]{Node: node, Flag: flag}
	r.null = false
}

func (r *BoundaryRange[H]) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
}

// Normalize marks the range null when its start comes after its end in
// document order. It moves neither endpoint and never clears an existing
// null mark; without a compareOrder it does nothing.
func (r *BoundaryRange[H]) Normalize() {
	if r.compareOrder == nil {
		return
	}
	if r.compareOrder(r.start, r.end) > 0 {
		r.null = true
	}
}

func (r *BoundaryRange[H]) IsNull() bool { return r.null || r.disconnected }

// RangeCollaborator is the contract a tree implementation provides so
// treedelta can compute and report boundary ranges without depending on
// that tree's concrete node type beyond H.
type RangeCollaborator[H comparable] interface {
	SelectNode(node H)
	Extend(other RangeCollaborator[H])
	SetStart(node H, flag BoundaryFlag)
	SetEnd(node H, flag BoundaryFlag)
	Collapse(toStart bool)
	Normalize()
	IsNull() bool
}
