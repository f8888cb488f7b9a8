package treedelta

// Tracker is the tree-mutation engine and top-level coordinator: it
// holds the ledger of floating nodes (records), the two sibling
// indices (one per dimension), the promise side-table, and the
// attribute/character/custom property cache, and exposes the query API
// callers use (Mutated, Range, Diff, ...; see coordinator.go).
type Tracker[H comparable] struct {
	records map[H]*MutatedNode[H]

	original *SiblingIndex[H]
	mutated  *SiblingIndex[H]

	promises *promiseTable[H]
	props    *propertyCache[H]

	// pendingResolved accumulates the origins of promises resolved
	// during the current RecordChildren call; step 5 treats them as
	// reversion-check candidates.
	pendingResolved []*MutatedNode[H]

	// Logger receives patch warnings and other non-fatal diagnostics.
	// Defaults to a no-op.
	Logger func(format string, args ...any)
	// CustomSet writes custom properties back during Revert (unless Revert
	// is given its own writer). CustomGet is stored but not read by the
	// tracker; RecordCustom takes both values from its caller. Both nil by
	// default.
	CustomGet func(node H, key string) (value string, ok bool)
	CustomSet func(node H, key, value string)
	// NativeGet reads the live value of an attribute (or, for dataKey,
	// character data) at RecordAttribute/RecordData time.
	NativeGet func(node H, key string) (value string, ok bool)
	// Contains reports ancestor-or-self containment in the live tree;
	// used by Mutated/Range when scoped to a root.
	Contains func(ancestor, node H) bool
	// NewRange constructs an empty tree-specific RangeCollaborator; used
	// by Range. Nil disables Range.
	NewRange func() RangeCollaborator[H]
	// liveSiblings backs Synchronize; installed via WithLiveReader.
	liveSiblings LiveSiblings[H]
	// SelfCheck runs the debug integrity check after every
	// RecordChildren call, returning ErrInvariantViolation on failure.
	SelfCheck bool
}

// Option configures a Tracker at construction time.
type Option[H comparable] func(*Tracker[H])

// WithLogger installs a diagnostic sink for patch warnings.
func WithLogger[H comparable](logger func(format string, args ...any)) Option[H] {
	return func(t *Tracker[H]) { t.Logger = logger }
}

// WithCustomAccessors installs the custom-property hooks: set becomes
// CustomSet, which Revert uses to write caller-defined node properties
// back; get becomes CustomGet, which the tracker does not read.
func WithCustomAccessors[H comparable](get func(H, string) (string, bool), set func(H, string, string)) Option[H] {
	return func(t *Tracker[H]) { t.CustomGet = get; t.CustomSet = set }
}

// WithSelfCheck enables the debug integrity self-check after each
// RecordChildren call.
func WithSelfCheck[H comparable](enabled bool) Option[H] {
	return func(t *Tracker[H]) { t.SelfCheck = enabled }
}

// WithNativeAccessor installs the hook RecordAttribute/RecordData use to
// read a property's current live value for dirty-bit computation.
func WithNativeAccessor[H comparable](get func(H, string) (string, bool)) Option[H] {
	return func(t *Tracker[H]) { t.NativeGet = get }
}

// WithContainment installs the ancestor-or-self oracle Mutated/Range use
// when scoped to a root.
func WithContainment[H comparable](contains func(ancestor, node H) bool) Option[H] {
	return func(t *Tracker[H]) { t.Contains = contains }
}

// WithRangeFactory installs the constructor Range uses to build a fresh,
// tree-specific RangeCollaborator.
func WithRangeFactory[H comparable](newRange func() RangeCollaborator[H]) Option[H] {
	return func(t *Tracker[H]) { t.NewRange = newRange }
}

// New creates an empty Tracker.
func New[H comparable](opts ...Option[H]) *Tracker[H] {
	t := &Tracker[H]{
		records:  make(map[H]*MutatedNode[H]),
		original: newSiblingIndex[H](),
		mutated:  newSiblingIndex[H](),
		promises: newPromiseTable[H](),
		props:    newPropertyCache[H](),
		Logger:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker[H]) idx(d dimension) *SiblingIndex[H] {
	if d == dimOriginal {
		return t.original
	}
	return t.mutated
}

func (t *Tracker[H]) get(h H) (*MutatedNode[H], bool) {
	mn, ok := t.records[h]
	return mn, ok
}

func (t *Tracker[H]) getOrCreate(h H) *MutatedNode[H] {
	mn, ok := t.records[h]
	if !ok {
		mn = newMutatedNode[H](h)
		t.records[h] = mn
	}
	return mn
}

// maybeDestroy deletes mn's record once it's no longer floating (I1).
func (t *Tracker[H]) maybeDestroy(mn *MutatedNode[H]) {
	if !mn.floating() {
		delete(t.records, mn.Handle)
	}
}

// setOriginalSide overwrites mn's original side and keeps the original
// index consistent.
func (t *Tracker[H]) setOriginalSide(mn *MutatedNode[H], dir Direction, sib Sibling[H]) {
	old := mn.Original.Side(dir)
	mn.Original = mn.Original.withSide(dir, sib)
	t.idx(dimOriginal).reindexSide(dir, mn, old, sib)
}

// setMutatedSide overwrites mn's mutated side and keeps the mutated
// index consistent (Step 4's "disconnect-by-overwrite"). Changing a side
// gives it a fresh shot at reversion: the dead bit only means "already
// failed against the value checked last", not "can never revert".
func (t *Tracker[H]) setMutatedSide(mn *MutatedNode[H], dir Direction, sib Sibling[H]) {
	old := mn.Mutated.Side(dir)
	mn.Mutated = mn.Mutated.withSide(dir, sib)
	t.idx(dimMutated).reindexSide(dir, mn, old, sib)
	if dir == DirPrev {
		mn.leftDead = false
	} else {
		mn.rightDead = false
	}
}

// placePromise parks a new promise on ptr's mutated[dir] slot, clearing
// whatever handle-valued entry was previously indexed there.
func (t *Tracker[H]) placePromise(origin *MutatedNode[H], dir Direction, ptr *MutatedNode[H]) promiseID {
	old := ptr.Mutated.Side(dir)
	if old.IsHandle() {
		t.idx(dimMutated).clear(dir, old.Handle, ptr)
	}
	return t.promises.place(origin, dir, ptr)
}

// resolvePromise resolves a placed promise to value, writing it into
// both the origin's original side and the ptr's mutated side.
func (t *Tracker[H]) resolvePromise(id promiseID, value Sibling[H]) {
	p, ok := t.promises.get(id)
	if !ok {
		return
	}
	t.setOriginalSide(p.origin, p.dir, value)
	t.setMutatedSide(p.ptr, p.dir, value)
	t.promises.discard(id)
	t.pendingResolved = append(t.pendingResolved, p.origin)
	t.maybeDestroy(p.origin)
}

// resolveMeeting handles two promises found back-to-back in a walk:
// each origin becomes the other's sibling.
func (t *Tracker[H]) resolveMeeting(aID, bID promiseID) {
	a, ok1 := t.promises.get(aID)
	b, ok2 := t.promises.get(bID)
	if !ok1 || !ok2 {
		return
	}
	aOrigin, bOrigin := a.origin, b.origin
	t.resolvePromise(aID, HandleSibling(bOrigin.Handle))
	t.resolvePromise(bID, HandleSibling(aOrigin.Handle))
}

// resumeOutward advances a promise's frontier through contiguous
// floating mutated-siblings until it meets a fixed handle, a list
// boundary, another unresolved unknown, or an opposite-facing promise.
func (t *Tracker[H]) resumeOutward(id promiseID) {
	p, ok := t.promises.get(id)
	if !ok {
		return
	}
	dir := p.dir
	cur := p.ptr
	for {
		side := cur.Mutated.Side(dir)
		switch side.Kind {
		case SiblingNone:
			t.resolvePromise(id, NoneSibling[H]())
			return
		case SiblingHandle:
			nmn, ok := t.get(side.Handle)
			if !ok || !nmn.floating() {
				t.resolvePromise(id, side)
				return
			}
			t.idx(dimMutated).clear(dir, side.Handle, cur)
			cur.Mutated = cur.Mutated.withSide(dir, promiseSibling[H](id))
			p.ptr = nmn
			cur = nmn
		case SiblingUnknown:
			return
		case SiblingPromise:
			if side.Promise == id {
				return
			}
			if other, ok := t.promises.get(side.Promise); ok && other.dir == dir.Opposite() {
				t.resolveMeeting(id, side.Promise)
			}
			return
		}
	}
}

// fix transitions mn from floating to fixed: its record and index
// entries are removed atomically (I5), and any promise it still held is
// discarded or, if it was itself the parking spot (ptr) for someone
// else's promise, falls back to Unknown for that promise's origin.
func (t *Tracker[H]) fix(mn *MutatedNode[H]) {
	t.idx(dimOriginal).unindex(mn, mn.Original)
	t.idx(dimMutated).unindex(mn, mn.Mutated)

	for _, dir := range [2]Direction{DirPrev, DirNext} {
		if mn.Original.Side(dir).IsPromise() {
			t.promises.discard(mn.Original.Side(dir).Promise)
		}
		if side := mn.Mutated.Side(dir); side.IsPromise() {
			if p, ok := t.promises.get(side.Promise); ok {
				t.setOriginalSide(p.origin, p.dir, UnknownSibling[H]())
				t.promises.discard(side.Promise)
			}
		}
	}
	delete(t.records, mn.Handle)
}

// RecordChildren reports that, at some point in time, parent's children
// were the contiguous run [prev, removed..., next] and are now
// [prev, added..., next]. This is the engine's six-step pipeline.
func (t *Tracker[H]) RecordChildren(parent H, removed, added []H, prev, next Sibling[H]) error {
	t.pendingResolved = nil

	t.stepPromiseResolution(removed, prev, next)
	fixedNew, revertPossible := t.stepProcessRemovals(parent, removed)
	t.stepOriginalSiblingsForNew(fixedNew, prev, next)
	candidates := t.stepProcessAdditions(parent, added, prev, next)
	t.stepReversionPropagation(parent, candidates, revertPossible, prev, next)

	if t.SelfCheck {
		return t.selfCheck()
	}
	return nil
}

// stepPromiseResolution walks [prev, removed..., next] and resolves any
// promise belonging to a record in that neighborhood against its
// immediate walk-neighbor, or resumes the search outward at either end.
func (t *Tracker[H]) stepPromiseResolution(removed []H, prev, next Sibling[H]) {
	walk := make([]Sibling[H], 0, len(removed)+2)
	walk = append(walk, prev)
	for _, h := range removed {
		walk = append(walk, HandleSibling(h))
	}
	walk = append(walk, next)

	for i, s := range walk {
		if !s.IsHandle() {
			continue
		}
		mn, ok := t.get(s.Handle)
		if !ok {
			continue
		}
		for _, dir := range [2]Direction{DirPrev, DirNext} {
			side := mn.Mutated.Side(dir)
			if !side.IsPromise() {
				continue
			}
			neighborIdx := i - 1
			if dir == DirNext {
				neighborIdx = i + 1
			}
			if neighborIdx < 0 || neighborIdx >= len(walk) {
				t.resumeOutward(side.Promise)
				continue
			}
			neighbor := walk[neighborIdx]
			switch {
			case neighbor.IsNone():
				t.resolvePromise(side.Promise, NoneSibling[H]())
			case neighbor.IsHandle():
				if nmn, ok := t.get(neighbor.Handle); ok && nmn.floating() {
					if oppSide := nmn.Mutated.Side(dir.Opposite()); oppSide.IsPromise() {
						t.resolveMeeting(side.Promise, oppSide.Promise)
					}
				} else {
					t.resolvePromise(side.Promise, neighbor)
				}
			default:
				t.resumeOutward(side.Promise)
			}
		}
	}
}

// stepProcessRemovals handles each removed handle: an already-floating
// node goes back to absent on the mutated side (or is destroyed outright
// if it never had an original, the add+remove-cancels case); a
// previously-fixed node gets a brand-new record with a partially-known
// original position, and is collected into fixedNew for step 3.
func (t *Tracker[H]) stepProcessRemovals(parent H, removed []H) (fixedNew []*MutatedNode[H], revertPossible bool) {
	for _, h := range removed {
		if mn, ok := t.get(h); ok {
			t.idx(dimMutated).unindex(mn, mn.Mutated)
			if mn.Original.IsAbsent() {
				for _, dir := range [2]Direction{DirPrev, DirNext} {
					if mn.Mutated.Side(dir).IsPromise() {
						t.promises.discard(mn.Mutated.Side(dir).Promise)
					}
				}
				delete(t.records, h)
				continue
			}
			mn.setPosition(dimMutated, AbsentPosition[H]())
			if mn.Original.Parent == parent {
				revertPossible = true
			}
			continue
		}

		mn := t.getOrCreate(h)
		mn.setPosition(dimOriginal, Position[H]{Kind: PositionPartial, Parent: parent, Prev: UnknownSibling[H](), Next: UnknownSibling[H]()})
		mn.setPosition(dimMutated, AbsentPosition[H]())
		fixedNew = append(fixedNew, mn)
		revertPossible = true
	}
	return
}

// stepOriginalSiblingsForNew links adjacent members of a freshly-removed
// run to each other directly, then resolves the two open ends: from the
// original index if a floating node already claims that side, directly if
// the neighbor is None or a non-floating handle, via a fresh
// SiblingPromise if the neighbor is floating, and as Unknown otherwise.
func (t *Tracker[H]) stepOriginalSiblingsForNew(fixedNew []*MutatedNode[H], prev, next Sibling[H]) {
	if len(fixedNew) == 0 {
		return
	}
	for i, mn := range fixedNew {
		if i > 0 {
			t.setOriginalSide(mn, DirPrev, HandleSibling(fixedNew[i-1].Handle))
		}
		if i < len(fixedNew)-1 {
			t.setOriginalSide(mn, DirNext, HandleSibling(fixedNew[i+1].Handle))
		}
	}
	t.resolveBoundarySide(fixedNew[0], DirPrev, prev)
	t.resolveBoundarySide(fixedNew[len(fixedNew)-1], DirNext, next)
}

// resolveBoundarySide fills in mn.Original.Side(dir) for an end member
// of a freshly-removed run.
func (t *Tracker[H]) resolveBoundarySide(mn *MutatedNode[H], dir Direction, neighbor Sibling[H]) {
	if y, ok := t.idx(dimOriginal).lookup(dir.Opposite(), mn.Handle); ok {
		t.setOriginalSide(mn, dir, HandleSibling(y.Handle))
		return
	}
	switch {
	case neighbor.IsNone():
		t.setOriginalSide(mn, dir, NoneSibling[H]())
	case neighbor.IsHandle():
		if nmn, ok := t.get(neighbor.Handle); ok && nmn.floating() {
			id := t.placePromise(mn, dir, nmn)
			t.resumeOutward(id)
		} else {
			t.setOriginalSide(mn, dir, neighbor)
		}
	default:
		t.setOriginalSide(mn, dir, UnknownSibling[H]())
	}
}

// stepProcessAdditions relinks the mutated-side boundary and gives every
// added handle a fresh, fully-known mutated position; handles that were
// already floating with a matching original parent are collected as
// reversion candidates for step 5.
func (t *Tracker[H]) stepProcessAdditions(parent H, added []H, prev, next Sibling[H]) (candidates []*MutatedNode[H]) {
	firstAdded, lastAdded := next, prev
	if len(added) > 0 {
		firstAdded = HandleSibling(added[0])
		lastAdded = HandleSibling(added[len(added)-1])
	}
	if prev.IsHandle() {
		if prevMN, ok := t.get(prev.Handle); ok {
			t.setMutatedSide(prevMN, DirNext, firstAdded)
		}
	}
	if next.IsHandle() {
		if nextMN, ok := t.get(next.Handle); ok {
			t.setMutatedSide(nextMN, DirPrev, lastAdded)
		}
	}

	for i, h := range added {
		mn, existed := t.get(h)
		if !existed {
			mn = t.getOrCreate(h)
			mn.setPosition(dimOriginal, AbsentPosition[H]())
		} else if !mn.Original.IsAbsent() && mn.Original.Parent == parent {
			candidates = append(candidates, mn)
		}

		leftSib, rightSib := prev, next
		if i > 0 {
			leftSib = HandleSibling(added[i-1])
		}
		if i < len(added)-1 {
			rightSib = HandleSibling(added[i+1])
		}

		t.idx(dimMutated).unindex(mn, mn.Mutated)
		mn.setPosition(dimMutated, Position[H]{Kind: PositionPartial, Parent: parent})
		t.setMutatedSide(mn, DirPrev, leftSib)
		t.setMutatedSide(mn, DirNext, rightSib)
	}
	return
}

// stepReversionPropagation runs the reversion checks the spec
// enumerates: the addition candidates, a boundary-hint check when a
// removal or a promise resolution may have newly exposed a revert, and
// a per-node check for every promise resolved earlier in this call.
func (t *Tracker[H]) stepReversionPropagation(parent H, candidates []*MutatedNode[H], revertPossible bool, prev, next Sibling[H]) {
	checked := make(map[H]bool)

	if len(candidates) > 0 {
		t.reversionCheck(parent, candidates, checked)
	}
	if revertPossible || len(t.pendingResolved) > 0 {
		if hints := t.boundaryHints(prev, next); len(hints) > 0 {
			t.reversionCheck(parent, hints, checked)
		}
	}
	for _, mn := range t.pendingResolved {
		if mn.floating() && mn.Mutated.Parent == parent {
			t.reversionCheck(parent, []*MutatedNode[H]{mn}, checked)
		}
	}
}

func (t *Tracker[H]) boundaryHints(prev, next Sibling[H]) []*MutatedNode[H] {
	var out []*MutatedNode[H]
	if prev.IsHandle() {
		if mn, ok := t.get(prev.Handle); ok && mn.floating() {
			out = append(out, mn)
		}
	}
	if next.IsHandle() {
		if mn, ok := t.get(next.Handle); ok && mn.floating() {
			out = append(out, mn)
		}
	}
	return out
}

// reversionCheck tests each candidate for reversion to its original
// position, propagating fixedness outward through the mutated-next
// chain whenever a match is confirmed. Per spec §4.3 step 5, a side
// already marked dead on a candidate is known to still disagree (its
// mutated value hasn't changed since it last failed, per
// setMutatedSide's bookkeeping) and is skipped rather than
// recomputed; only a side that changes since its last failure gets a
// fresh check.
func (t *Tracker[H]) reversionCheck(parent H, candidates []*MutatedNode[H], checked map[H]bool) {
	for _, seed := range candidates {
		cur := seed
		for cur != nil {
			if checked[cur.Handle] {
				break
			}
			checked[cur.Handle] = true
			if cur.dead() {
				break
			}
			left, right, wrongList := t.sidesReverted(parent, cur)
			if wrongList || !left || !right {
				if wrongList || !left {
					cur.markDead(DirPrev)
				}
				if wrongList || !right {
					cur.markDead(DirNext)
				}
				break
			}
			nextCur := t.floatingNeighbor(cur, DirNext, parent)
			t.fix(cur)
			cur = nextCur
		}
	}
}

// sidesReverted reports, for each direction not already marked dead,
// whether cur's mutated-side anchor matches its recorded original
// sibling on that side; a dead side is reported as still-failing
// without recomputation. wrongList means cur isn't even a candidate
// for this parent's list, so both sides are unconditionally failing.
func (t *Tracker[H]) sidesReverted(parent H, cur *MutatedNode[H]) (left, right, wrongList bool) {
	if cur.Original.Parent != parent || cur.Mutated.IsAbsent() || cur.Mutated.Parent != parent {
		return false, false, true
	}
	left = !cur.deadFor(DirPrev) && t.sideReverted(parent, cur, DirPrev)
	right = !cur.deadFor(DirNext) && t.sideReverted(parent, cur, DirNext)
	return left, right, false
}

// sideReverted reports whether cur's dir-side mutated anchor agrees
// with its recorded original sibling on that side, walking through
// same-parent floating runs via anchor.
func (t *Tracker[H]) sideReverted(parent H, cur *MutatedNode[H], dir Direction) bool {
	anchor, ok := t.anchor(cur, dir, parent)
	if !ok {
		return false
	}
	return anchor.Equal(cur.Original.Side(dir))
}

// anchor walks cur's mutated dir-chain through floating, same-parent
// nodes until reaching a fixed handle or a list boundary; ok is false
// if the chain runs into an unresolved unknown or promise.
func (t *Tracker[H]) anchor(cur *MutatedNode[H], dir Direction, parent H) (sib Sibling[H], ok bool) {
	side := cur.Mutated.Side(dir)
	for {
		switch side.Kind {
		case SiblingNone:
			return side, true
		case SiblingHandle:
			nmn, tracked := t.get(side.Handle)
			if !tracked || !nmn.floating() || nmn.Mutated.Parent != parent {
				return side, true
			}
			side = nmn.Mutated.Side(dir)
		default:
			return Sibling[H]{}, false
		}
	}
}

// floatingNeighbor returns cur's dir-side mutated neighbor if it is
// itself a floating, same-parent record (used to keep propagating
// fixedness outward once a match is confirmed).
func (t *Tracker[H]) floatingNeighbor(cur *MutatedNode[H], dir Direction, parent H) *MutatedNode[H] {
	side := cur.Mutated.Side(dir)
	if !side.IsHandle() {
		return nil
	}
	nmn, ok := t.get(side.Handle)
	if !ok || !nmn.floating() || nmn.Mutated.Parent != parent {
		return nil
	}
	return nmn
}

// selfCheck cross-validates I1-I3 for debug builds driven by
// WithSelfCheck(true).
func (t *Tracker[H]) selfCheck() error {
	for h, mn := range t.records {
		if mn.Handle != h {
			return ErrInvariantViolation("record keyed under the wrong handle")
		}
		if !mn.floating() {
			return ErrInvariantViolation("record exists for a non-floating node")
		}
	}
	for _, dim := range [2]dimension{dimOriginal, dimMutated} {
		idx := t.idx(dim)
		for h, mn := range idx.prevOf {
			p := mn.position(dim)
			if p.Prev.Kind != SiblingHandle || p.Prev.Handle != h {
				return ErrInvariantViolation("prev index entry does not match its record")
			}
		}
		for h, mn := range idx.nextOf {
			p := mn.position(dim)
			if p.Next.Kind != SiblingHandle || p.Next.Handle != h {
				return ErrInvariantViolation("next index entry does not match its record")
			}
		}
	}
	for id, p := range t.promises.promises {
		if !p.origin.floating() {
			return ErrInvariantViolation("placed promise's origin is not floating")
		}
		ptrSide := p.ptr.Mutated.Side(p.dir)
		if ptrSide.Kind != SiblingPromise || ptrSide.Promise != id {
			return ErrInvariantViolation("promise ptr slot does not point back at the promise")
		}
	}
	return nil
}
