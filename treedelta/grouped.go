package treedelta

import "iter"

// Dimension selects which axis of positions DiffGroupedChildren and
// Revert group against: Mutated describes the tree as it stands now,
// Original describes how to rebuild the tree as it stood before any
// recorded mutation.
type Dimension int

const (
	Original Dimension = iota
	Mutated
)

func (d Dimension) internal() dimension {
	if d == Original {
		return dimOriginal
	}
	return dimMutated
}

func oppositeDim(d dimension) dimension {
	if d == dimOriginal {
		return dimMutated
	}
	return dimOriginal
}

// Group is a maximal contiguous run of handles that share a target
// parent in the grouped dimension, along with the handles' own
// boundary siblings in that dimension (used by PatchGroupedChildren to
// anchor the reinsertion).
type Group[H comparable] struct {
	Parent H
	Nodes  []H
	Prev   Sibling[H]
	Next   Sibling[H]
}

// TreeMutator is the contract a tree implementation provides so
// PatchGroupedChildren and Revert can apply changes without treedelta
// depending on that tree's concrete node type beyond H.
type TreeMutator[H comparable] interface {
	Remove(parent, child H) error
	InsertBefore(parent, child, before H) error
	Append(parent, child H) error
	Prepend(parent, child H) error
	SetAttribute(node H, key, value string) error
	RemoveAttribute(node H, key string) error
	SetCharacterData(node H, value string) error
}

// buildGroups walks every record whose position(mode) is non-absent,
// chaining adjacent same-parent handles into runs via that dimension's
// Prev/Next links (a greedy neighbor-linking walk). includeRemoved
// controls whether to include nodes with no corresponding position in
// the opposite dimension (fully removed nodes, for mode Original; newly
// added nodes with no original existence, for mode Mutated).
func (t *Tracker[H]) buildGroups(mode dimension, includeRemoved bool) []Group[H] {
	inSet := make(map[H]*MutatedNode[H])
	for _, mn := range t.records {
		if mn.position(mode).IsAbsent() {
			continue
		}
		if !includeRemoved && mn.position(oppositeDim(mode)).IsAbsent() {
			continue
		}
		inSet[mn.Handle] = mn
	}

	visited := make(map[H]bool, len(inSet))
	var groups []Group[H]
	for _, mn := range inSet {
		if visited[mn.Handle] {
			continue
		}
		parent := mn.position(mode).Parent

		start := mn
		for {
			prevSide := start.position(mode).Side(DirPrev)
			if !prevSide.IsHandle() {
				break
			}
			prevMN, ok := inSet[prevSide.Handle]
			if !ok || prevMN.position(mode).Parent != parent {
				break
			}
			start = prevMN
		}

		g := Group[H]{Parent: parent, Prev: start.position(mode).Side(DirPrev)}
		cur := start
		for {
			visited[cur.Handle] = true
			g.Nodes = append(g.Nodes, cur.Handle)
			nextSide := cur.position(mode).Side(DirNext)
			if nextSide.IsHandle() {
				if nextMN, ok := inSet[nextSide.Handle]; ok && nextMN.position(mode).Parent == parent && !visited[nextMN.Handle] {
					cur = nextMN
					continue
				}
			}
			g.Next = nextSide
			break
		}
		groups = append(groups, g)
	}
	return groups
}

// DiffGroupedChildren yields every contiguous group of changed children,
// grouped by parent in the named dimension. All groups are computed when
// DiffGroupedChildren is called; the returned sequence iterates over them.
func (t *Tracker[H]) DiffGroupedChildren(mode Dimension, includeRemoved bool) iter.Seq[Group[H]] {
	groups := t.buildGroups(mode.internal(), includeRemoved)
	return func(yield func(Group[H]) bool) {
		for _, g := range groups {
			if !yield(g) {
				return
			}
		}
	}
}

// DiffGroupedChildrenSlice returns the same groups as DiffGroupedChildren
// as a slice; used internally by Revert.
func (t *Tracker[H]) DiffGroupedChildrenSlice(mode Dimension, includeRemoved bool) ([]Group[H], error) {
	return t.buildGroups(mode.internal(), includeRemoved), nil
}

// PatchGroupedChildren applies a set of groups to a live tree via
// mutator. Per spec §4.6, every node in every group is detached first,
// across all groups, and only then is any group reinserted — before Next
// if Next is a handle, appended if Next is None, prepended if Next is
// unresolved and Prev is None. A group whose Next is unresolved and whose
// Prev is not None is skipped with a logged warning and left untouched,
// including when Prev is a handle: TreeMutator has no insert-after
// operation, so Prev is used only as a list-start anchor. Detaching
// everything before reinserting anything avoids the ancestor/descendant
// hazard of a node that migrated between a group and one of its own
// descendants: reinserting group A while group B (an ancestor of one of
// A's nodes) still holds its old children could otherwise insert a node
// under itself.
func PatchGroupedChildren[H comparable](groups []Group[H], mutator TreeMutator[H], logger func(format string, args ...any)) error {
	if logger == nil {
		logger = func(string, ...any) {}
	}

	var patchable []Group[H]
	for _, g := range groups {
		if len(g.Nodes) == 0 {
			continue
		}
		if !g.Next.IsHandle() && !g.Next.IsNone() && !g.Prev.IsNone() {
			logger("skipping unpatchable group under %v: next unresolved and prev not none", g.Parent)
			continue
		}
		patchable = append(patchable, g)
	}

	for _, g := range patchable {
		for _, n := range g.Nodes {
			if err := mutator.Remove(g.Parent, n); err != nil {
				return err
			}
		}
	}

	for _, g := range patchable {
		switch {
		case g.Next.IsHandle():
			for _, n := range g.Nodes {
				if err := mutator.InsertBefore(g.Parent, n, g.Next.Handle); err != nil {
					return err
				}
			}
		case g.Next.IsNone():
			for _, n := range g.Nodes {
				if err := mutator.Append(g.Parent, n); err != nil {
					return err
				}
			}
		case g.Prev.IsNone():
			for i := len(g.Nodes) - 1; i >= 0; i-- {
				if err := mutator.Prepend(g.Parent, g.Nodes[i]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
