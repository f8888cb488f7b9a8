package main

import (
	"fmt"
	"io"

	"github.com/chrisuehlinger/viberowser/dom"
	"github.com/chrisuehlinger/viberowser/treedelta"
	"github.com/xlab/treeprint"
)

func describeNode(n *dom.Node) string {
	if n == nil {
		return "<nil>"
	}
	if n.NodeType() == dom.ElementNode {
		el := (*dom.Element)(n)
		if id := el.Id(); id != "" {
			return fmt.Sprintf("<%s id=%s>", el.TagName(), id)
		}
		return fmt.Sprintf("<%s>", el.TagName())
	}
	return fmt.Sprintf("%s(%q)", n.NodeName(), n.NodeValue())
}

func describeSibling(s treedelta.Sibling[*dom.Node]) string {
	switch {
	case s.IsHandle():
		return describeNode(s.Handle)
	case s.IsNone():
		return "(boundary)"
	case s.IsUnknown():
		return "(unknown)"
	default:
		return "(pending)"
	}
}

func describePosition(p *treedelta.Position[*dom.Node]) string {
	if p == nil {
		return "(not requested)"
	}
	if p.IsAbsent() {
		return "absent"
	}
	return fmt.Sprintf("parent=%s prev=%s next=%s", describeNode(p.Parent), describeSibling(p.Prev), describeSibling(p.Next))
}

// dumpTree renders root and its live descendants as an indented tree,
// walking each level's current NodeList rather than a snapshot, so the
// output always reflects the script's final DOM state.
func dumpTree(root *dom.Node) string {
	out := treeprint.New()
	out.SetValue(describeNode(root))
	addChildBranches(out, root)
	return out.String()
}

func addChildBranches(parent treeprint.Tree, n *dom.Node) {
	n.ChildNodes().ForEach(func(child *dom.Node, _ int) {
		addChildBranches(parent.AddBranch(describeNode(child)), child)
	})
}

func printResult(w io.Writer, result *replayResult, filter treedelta.FilterFlags, showTree bool) error {
	t := result.tracker

	if showTree {
		fmt.Fprintln(w, "tree:")
		fmt.Fprint(w, dumpTree(result.root.AsNode()))
	}

	fmt.Fprintf(w, "mutated: %v\n", t.Mutated())

	rng, err := t.Range()
	if err != nil {
		fmt.Fprintf(w, "range: error: %v\n", err)
	} else if rng == nil {
		fmt.Fprintln(w, "range: (none)")
	} else if br, ok := rng.(*treedelta.BoundaryRange[*dom.Node]); ok {
		start, end := br.Start(), br.End()
		fmt.Fprintf(w, "range: [%s %s] .. [%s %s]\n", describeNode(start.Node), start.Flag, describeNode(end.Node), end.Flag)
	}

	diff := t.Diff(filter)
	fmt.Fprintf(w, "diff (%d nodes):\n", len(diff))
	for n, d := range diff {
		fmt.Fprintf(w, "  %s\n", describeNode(n))
		if d.Original != nil {
			fmt.Fprintf(w, "    original: %s\n", describePosition(d.Original))
		}
		if d.Mutated != nil {
			fmt.Fprintf(w, "    mutated:  %s\n", describePosition(d.Mutated))
		}
		for k, v := range d.Attributes {
			fmt.Fprintf(w, "    attribute %s was %q\n", k, v)
		}
		if d.DataOld != nil {
			fmt.Fprintf(w, "    data was %q\n", *d.DataOld)
		}
		for k, v := range d.Custom {
			fmt.Fprintf(w, "    custom %s was %q\n", k, v)
		}
	}
	return nil
}
