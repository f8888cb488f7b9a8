package treedelta

// LiveSiblings reads a handle's current position straight from the live
// tree: used by Synchronize to resolve slots no RecordChildren call ever
// pinned down. ok is false if the handle is no longer live.
type LiveSiblings[H comparable] func(h H) (parent H, prev, next Sibling[H], ok bool)

// WithLiveReader installs the accessor Synchronize uses to resolve
// outstanding unknowns directly from the live tree.
func WithLiveReader[H comparable](reader LiveSiblings[H]) Option[H] {
	return func(t *Tracker[H]) { t.liveSiblings = reader }
}

func sideOf[H comparable](dir Direction, prev, next Sibling[H]) Sibling[H] {
	if dir == DirPrev {
		return prev
	}
	return next
}

// Synchronize reconciles every outstanding unknown and promise against
// the live tree in one pass (spec §4.4): first resolving mutated
// unknowns directly, then collecting reversion candidates per parent,
// then resolving any promise chains that can now be walked to
// completion, then running reversion checks over the candidates plus the
// origins any promise resolution newly exposed, and finally discarding
// every property-cache entry that is no longer dirty.
func (t *Tracker[H]) Synchronize() error {
	if t.liveSiblings == nil {
		return ErrInvariantViolation("no live reader configured")
	}
	t.pendingResolved = nil

	for _, mn := range t.records {
		for _, dir := range [2]Direction{DirPrev, DirNext} {
			if !mn.Mutated.Side(dir).IsUnknown() {
				continue
			}
			if _, prev, next, ok := t.liveSiblings(mn.Handle); ok {
				t.setMutatedSide(mn, dir, sideOf(dir, prev, next))
			}
		}
	}

	byParent := make(map[H][]*MutatedNode[H])
	for _, mn := range t.records {
		if !mn.Mutated.IsAbsent() {
			byParent[mn.Mutated.Parent] = append(byParent[mn.Mutated.Parent], mn)
		}
	}

	ids := make([]promiseID, 0, len(t.promises.promises))
	for id := range t.promises.promises {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if _, ok := t.promises.get(id); ok {
			t.resumeOutward(id)
		}
	}

	checked := make(map[H]bool)
	for parent, group := range byParent {
		t.reversionCheck(parent, group, checked)
	}
	for _, mn := range t.pendingResolved {
		if mn.floating() && !mn.Mutated.IsAbsent() {
			t.reversionCheck(mn.Mutated.Parent, []*MutatedNode[H]{mn}, checked)
		}
	}
	t.props.synchronize()
	return nil
}
