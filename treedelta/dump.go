package treedelta

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// Dump renders the tracker's current internal state — every floating
// record, its original/mutated positions, dirty property counts, and
// outstanding promises — as an indented tree, for debugging and tests.
func (t *Tracker[H]) Dump() string {
	root := treeprint.New()
	root.SetValue("tracker")

	records := root.AddBranch(fmt.Sprintf("records (%d)", len(t.records)))
	for h, mn := range t.records {
		node := records.AddBranch(fmt.Sprintf("%v", h))
		node.AddNode(fmt.Sprintf("original: %s", dumpPosition(mn.Original)))
		node.AddNode(fmt.Sprintf("mutated:  %s", dumpPosition(mn.Mutated)))
		if mn.leftDead || mn.rightDead {
			node.AddNode(fmt.Sprintf("dead: left=%v right=%v", mn.leftDead, mn.rightDead))
		}
	}

	promises := root.AddBranch(fmt.Sprintf("promises (%d)", len(t.promises.promises)))
	for id, p := range t.promises.promises {
		promises.AddNode(fmt.Sprintf("#%d: origin=%v dir=%s ptr=%v", id, p.origin.Handle, p.dir, p.ptr.Handle))
	}

	props := root.AddBranch(fmt.Sprintf("dirty properties (%d nodes)", len(t.props.dirtyNodes())))
	for h, np := range t.props.nodes {
		if np.dirtyCount() == 0 {
			continue
		}
		node := props.AddBranch(fmt.Sprintf("%v", h))
		for k, e := range np.native {
			if e.dirty {
				node.AddNode(fmt.Sprintf("native %q was %s", k, dumpPropValue(e.value)))
			}
		}
		for k, e := range np.custom {
			if e.dirty {
				node.AddNode(fmt.Sprintf("custom %q was %s", k, dumpPropValue(e.value)))
			}
		}
	}

	return root.String()
}

func dumpPosition[H comparable](p Position[H]) string {
	if p.IsAbsent() {
		return "absent"
	}
	return fmt.Sprintf("parent=%v prev=%s next=%s", p.Parent, dumpSibling(p.Prev), dumpSibling(p.Next))
}

func dumpSibling[H comparable](s Sibling[H]) string {
	switch s.Kind {
	case SiblingNone:
		return "none"
	case SiblingHandle:
		return fmt.Sprintf("%v", s.Handle)
	case SiblingUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("promise#%d", s.Promise)
	}
}

func dumpPropValue(v propValue) string {
	if !v.present {
		return "(absent)"
	}
	return fmt.Sprintf("%q", v.value)
}
