package treedelta

// MutatedNode is the per-handle ledger entry (MN in the design): it
// holds a node's original and mutated positions. Invariant I1 (record
// existence iff floating) means a MutatedNode only exists in a
// Tracker's records map while Original and Mutated disagree; the
// moment they're reconciled the record is deleted.
type MutatedNode[H comparable] struct {
	Handle   H
	Original Position[H]
	Mutated  Position[H]

	// leftDead/rightDead are reversion-propagation skip bits (spec
	// §4.3 step 5): once a side has failed to propagate fixedness against
	// its current value, later passes in the same pass don't retry it.
	// setMutatedSide clears the relevant bit whenever that side's value
	// actually changes, so a later mutation gets a fresh chance. When
	// both are set the node drops out of the candidate pool.
	leftDead  bool
	rightDead bool
}

func newMutatedNode[H comparable](h H) *MutatedNode[H] {
	return &MutatedNode[H]{Handle: h, Original: AbsentPosition[H](), Mutated: AbsentPosition[H]()}
}

func (mn *MutatedNode[H]) dead() bool { return mn.leftDead && mn.rightDead }

func (mn *MutatedNode[H]) deadFor(dir Direction) bool {
	if dir == DirPrev {
		return mn.leftDead
	}
	return mn.rightDead
}

func (mn *MutatedNode[H]) markDead(dir Direction) {
	if dir == DirPrev {
		mn.leftDead = true
	} else {
		mn.rightDead = true
	}
}

// position returns the position in dimension d.
func (mn *MutatedNode[H]) position(d dimension) Position[H] {
	if d == dimOriginal {
		return mn.Original
	}
	return mn.Mutated
}

// setPosition overwrites the position in dimension d.
func (mn *MutatedNode[H]) setPosition(d dimension, p Position[H]) {
	if d == dimOriginal {
		mn.Original = p
	} else {
		mn.Mutated = p
	}
}

// floating reports whether this node still differs from its original
// position, i.e. whether its record should still exist.
func (mn *MutatedNode[H]) floating() bool {
	return !mn.Original.IsAbsent() || !mn.Mutated.IsAbsent()
}
