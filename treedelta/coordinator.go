package treedelta

// Delta is one node's materialized changes, as returned by Diff. Nil
// fields/maps mean "not requested by the filter" or "nothing dirty",
// not "unchanged" — callers should only read what they asked for.
type Delta[H comparable] struct {
	Original *Position[H]
	Mutated  *Position[H]

	Attributes map[string]string
	DataOld    *string
	Custom     map[string]string
}

// RecordAttribute reports that node's key attribute held oldValue just
// before this change; the new value is read live via NativeGet. hadOld
// false means the old value couldn't be captured (spec §7's "missing
// old value" case) and the report is dropped.
func (t *Tracker[H]) RecordAttribute(node H, key, oldValue string, hadOld bool) {
	newValue := absentValue()
	if t.NativeGet != nil {
		if v, ok := t.NativeGet(node, key); ok {
			newValue = presentValue(v)
		}
	}
	old := absentValue()
	if hadOld {
		old = presentValue(oldValue)
	}
	t.props.markNative(node, key, newValue, old, hadOld)
}

// RecordData reports a character-data change, under the reserved
// dataKey slot of the native property map.
func (t *Tracker[H]) RecordData(node H, oldValue string, hadOld bool) {
	t.RecordAttribute(node, dataKey, oldValue, hadOld)
}

// RecordCustom reports a caller-defined property change where both the
// old and new values are already known.
func (t *Tracker[H]) RecordCustom(node H, key, newValue, oldValue string) {
	t.props.markCustom(node, key, newValue, oldValue)
}

// Mutated reports whether anything has changed. With no roots, true iff
// any child-list record or dirty property exists at all. With roots,
// true iff some record's original or mutated parent, or some dirty
// property's node, is one of the roots or contained in one (via
// Contains).
func (t *Tracker[H]) Mutated(roots ...H) bool {
	if len(roots) == 0 {
		return len(t.records) > 0 || t.props.dirtyTotal > 0
	}
	within := func(h H) bool {
		for _, r := range roots {
			if r == h || (t.Contains != nil && t.Contains(r, h)) {
				return true
			}
		}
		return false
	}
	for _, mn := range t.records {
		if !mn.Original.IsAbsent() && within(mn.Original.Parent) {
			return true
		}
		if !mn.Mutated.IsAbsent() && within(mn.Mutated.Parent) {
			return true
		}
	}
	for _, h := range t.props.dirtyNodes() {
		if within(h) {
			return true
		}
	}
	return false
}

// fixedOriginalBoundary resolves one side (dir) of a node's original
// position into a boundary point for Range's original-location
// contribution (spec §4.5), reporting whether that side is "fixed": a
// list boundary (None) is always fixed (anchored to the parent
// itself); a concrete sibling is fixed only if it isn't itself still
// floating, i.e. it hasn't moved since the original observation.
// Unknown/promise sides are never fixed.
func (t *Tracker[H]) fixedOriginalBoundary(parent H, s Sibling[H], dir Direction) (node H, flag BoundaryFlag, fixed bool) {
	switch {
	case s.IsNone():
		if dir == DirPrev {
			return parent, AfterOpen, true
		}
		return parent, BeforeClose, true
	case s.IsHandle():
		if _, floating := t.records[s.Handle]; floating {
			var zero H
			return zero, 0, false
		}
		if dir == DirPrev {
			return s.Handle, AfterClose, true
		}
		return s.Handle, BeforeOpen, true
	default:
		var zero H
		return zero, 0, false
	}
}

// Range computes the inclusive outer bounds of all changes scoped to
// roots (or the whole tracked set, if none given), using NewRange to
// build a tree-specific collaborator. Implements spec §4.5: the union
// of selectNode(node) over every dirty-property node and every node
// currently positioned inside root, plus, for every floating record,
// the span between its original neighbors when those neighbors are
// still fixed (covering nodes that moved away or were removed
// outright, which selectNode on their current/absent position can't
// express). Returns (nil, nil) when nothing is mutated, and
// ErrAmbiguousRange if the changes don't reduce to a single connected
// range — including when contributions span more than one root tree.
func (t *Tracker[H]) Range(roots ...H) (RangeCollaborator[H], error) {
	if t.NewRange == nil {
		return nil, ErrInvariantViolation("no range factory configured")
	}

	within := func(h H) bool {
		if len(roots) == 0 {
			return true
		}
		for _, r := range roots {
			if r == h || (t.Contains != nil && t.Contains(r, h)) {
				return true
			}
		}
		return false
	}

	var fr RangeCollaborator[H]
	extend := func(sr RangeCollaborator[H]) {
		if fr == nil {
			fr = sr
			return
		}
		fr.Extend(sr)
	}

	propertyNode := make(map[H]bool, len(t.props.nodes))
	for _, h := range t.props.dirtyNodes() {
		if !within(h) {
			continue
		}
		propertyNode[h] = true
		sr := t.NewRange()
		sr.SelectNode(h)
		extend(sr)
	}

	for h, mn := range t.records {
		if !mn.Mutated.IsAbsent() && !propertyNode[h] && within(mn.Mutated.Parent) {
			sr := t.NewRange()
			sr.SelectNode(h)
			extend(sr)
		}

		if mn.Original.IsAbsent() {
			continue
		}
		startNode, startFlag, prevFixed := t.fixedOriginalBoundary(mn.Original.Parent, mn.Original.Prev, DirPrev)
		endNode, endFlag, nextFixed := t.fixedOriginalBoundary(mn.Original.Parent, mn.Original.Next, DirNext)
		if !prevFixed && !nextFixed {
			continue
		}
		sr := t.NewRange()
		switch {
		case prevFixed && nextFixed:
			sr.SetStart(startNode, startFlag)
			sr.SetEnd(endNode, endFlag)
		case prevFixed:
			sr.SetStart(startNode, startFlag)
			sr.Collapse(true)
		default:
			sr.SetEnd(endNode, endFlag)
			sr.Collapse(false)
		}
		extend(sr)
	}

	if fr == nil {
		return nil, nil
	}
	fr.Normalize()
	if fr.IsNull() {
		return nil, ErrAmbiguousRange("changes do not reduce to a single connected range")
	}
	return fr, nil
}

// Diff materializes a snapshot of the current delta, filtered by which
// parts of it the caller cares about.
func (t *Tracker[H]) Diff(filter FilterFlags) map[H]Delta[H] {
	out := make(map[H]Delta[H])

	if filter.has(FilterChildren) {
		for h, mn := range t.records {
			d := out[h]
			if filter.has(FilterOriginal) {
				o := mn.Original
				d.Original = &o
			}
			if filter.has(FilterMutated) {
				m := mn.Mutated
				d.Mutated = &m
			}
			out[h] = d
		}
	}

	if filter.has(FilterProperty) {
		for h, np := range t.props.nodes {
			d := out[h]
			changed := false
			if filter.has(FilterAttribute) || filter.has(FilterData) {
				for k, e := range np.native {
					if !e.dirty {
						continue
					}
					if k == dataKey {
						if !filter.has(FilterData) {
							continue
						}
						v := e.value.value
						d.DataOld = &v
						changed = true
						continue
					}
					if !filter.has(FilterAttribute) || !e.value.present {
						continue
					}
					if d.Attributes == nil {
						d.Attributes = make(map[string]string)
					}
					d.Attributes[k] = e.value.value
					changed = true
				}
			}
			if filter.has(FilterCustom) {
				for k, e := range np.custom {
					if !e.dirty {
						continue
					}
					if d.Custom == nil {
						d.Custom = make(map[string]string)
					}
					d.Custom[k] = e.value.value
					changed = true
				}
			}
			if changed {
				out[h] = d
			}
		}
	}

	return out
}

// Revert rolls every tracked change back through mutator: every dirty
// property is restored (custom ones via CustomSet), nodes added since
// tracking began are detached, the changed child groups of the original
// dimension are patched back via PatchGroupedChildren, and the tracker is
// then cleared. customSet lets the caller supply a one-off
// custom-property writer instead of the Tracker-wide one.
func (t *Tracker[H]) Revert(mutator TreeMutator[H], customSet func(H, string, string)) error {
	if customSet == nil {
		customSet = t.CustomSet
	}
	for h, np := range t.props.nodes {
		for k, e := range np.native {
			if !e.dirty {
				continue
			}
			if k == dataKey {
				if e.value.present {
					if err := mutator.SetCharacterData(h, e.value.value); err != nil {
						return err
					}
				}
				continue
			}
			if e.value.present {
				if err := mutator.SetAttribute(h, k, e.value.value); err != nil {
					return err
				}
			} else {
				if err := mutator.RemoveAttribute(h, k); err != nil {
					return err
				}
			}
		}
		if customSet != nil {
			for k, e := range np.custom {
				if e.dirty {
					customSet(h, k, e.value.value)
				}
			}
		}
	}

	groups, err := t.DiffGroupedChildrenSlice(Original, true)
	if err != nil {
		return err
	}
	for h, mn := range t.records {
		if mn.Original.IsAbsent() && !mn.Mutated.IsAbsent() {
			if err := mutator.Remove(mn.Mutated.Parent, h); err != nil {
				return err
			}
		}
	}
	if err := PatchGroupedChildren(groups, mutator, t.Logger); err != nil {
		return err
	}

	t.Clear()
	return nil
}

// Clear discards all tracked state: every child-list record, every
// sibling-index entry, every outstanding promise, and every property
// entry.
func (t *Tracker[H]) Clear() {
	t.records = make(map[H]*MutatedNode[H])
	t.original = newSiblingIndex[H]()
	t.mutated = newSiblingIndex[H]()
	t.promises = newPromiseTable[H]()
	t.props.clear()
	t.pendingResolved = nil
}
