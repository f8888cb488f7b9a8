package treeobserve

import (
	"github.com/chrisuehlinger/viberowser/dom"
	"github.com/chrisuehlinger/viberowser/treedelta"
)

// newRange builds a treedelta.RangeCollaborator backed by document-order
// comparison, ancestor-or-self containment, and same-root detection
// over dom.Node.
func newRange() treedelta.RangeCollaborator[*dom.Node] {
	return treedelta.NewBoundaryRange[*dom.Node](compareOrder, func(ancestor, node *dom.Node) bool {
		return ancestor.Contains(node)
	}, sameRoot)
}

// sameRoot reports whether a and b hang off the same root node, i.e.
// the topmost ancestor in each chain (ancestorChain[0], since
// ancestorChain prepends as it climbs) is identical. compareOrder's
// sibling-index fallback cannot itself distinguish "disconnected
// trees" from "equal position" when two chains diverge at the very
// root, so this is checked separately before a union is attempted.
func sameRoot(a, b *dom.Node) bool {
	ca, cb := ancestorChain(a), ancestorChain(b)
	return ca[0] == cb[0]
}

func ancestorChain(n *dom.Node) []*dom.Node {
	var chain []*dom.Node
	for cur := n; cur != nil; cur = cur.ParentNode() {
		chain = append([]*dom.Node{cur}, chain...)
	}
	return chain
}

func siblingIndex(n *dom.Node) int {
	i := 0
	for cur := n.PreviousSibling(); cur != nil; cur = cur.PreviousSibling() {
		i++
	}
	return i
}

// compareOrder orders two boundary points by document position: equal
// nodes compare by flag (BeforeOpen < AfterOpen < BeforeClose <
// AfterClose); an ancestor/descendant pair compares by whether the
// ancestor's flag is on its open or close side; otherwise the points
// diverge at some shared ancestor and compare by child index there.
func compareOrder(a, b treedelta.BoundaryPoint[*dom.Node]) int {
	if a.Node == b.Node {
		return int(a.Flag) - int(b.Flag)
	}
	ca, cb := ancestorChain(a.Node), ancestorChain(b.Node)
	i := 0
	for i < len(ca) && i < len(cb) && ca[i] == cb[i] {
		i++
	}
	switch {
	case i == len(ca):
		if a.Flag == treedelta.BeforeOpen || a.Flag == treedelta.AfterOpen {
			return -1
		}
		return 1
	case i == len(cb):
		if b.Flag == treedelta.BeforeOpen || b.Flag == treedelta.AfterOpen {
			return 1
		}
		return -1
	default:
		return siblingIndex(ca[i]) - siblingIndex(cb[i])
	}
}
