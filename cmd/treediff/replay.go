package main

import (
	"fmt"

	"github.com/chrisuehlinger/viberowser/dom"
	"github.com/chrisuehlinger/viberowser/treedelta"
	"github.com/chrisuehlinger/viberowser/treeobserve"
)

type replayResult struct {
	tracker *treedelta.Tracker[*dom.Node]
	root    *dom.Element
}

// replay builds the document from script.HTML, then registers an
// Observer and applies script.Ops in order: everything up to
// registration is the original snapshot, everything after is tracked.
func replay(s *script, selfCheck bool) (*replayResult, error) {
	doc := dom.NewDocument()
	root := doc.CreateElement("div")
	if _, err := doc.AsNode().AppendChild(root.AsNode()); err != nil {
		return nil, err
	}
	if err := root.SetInnerHTML(s.HTML); err != nil {
		return nil, err
	}

	observer := treeobserve.New(treedelta.WithSelfCheck[*dom.Node](selfCheck))
	dom.RegisterMutationCallback(doc, observer)

	for i, o := range s.Ops {
		if err := applyOp(doc, o); err != nil {
			return nil, fmt.Errorf("op %d (%s): %w", i, o.Op, err)
		}
	}

	return &replayResult{tracker: observer.Tracker, root: root}, nil
}

func resolveElement(doc *dom.Document, id string) (*dom.Element, error) {
	el := doc.GetElementById(id)
	if el == nil {
		return nil, fmt.Errorf("no element with id %q", id)
	}
	return el, nil
}

func applyOp(doc *dom.Document, o op) error {
	switch o.Op {
	case "setAttribute":
		el, err := resolveElement(doc, o.Node)
		if err != nil {
			return err
		}
		el.SetAttribute(o.Key, o.Value)
		return nil

	case "removeAttribute":
		el, err := resolveElement(doc, o.Node)
		if err != nil {
			return err
		}
		el.RemoveAttribute(o.Key)
		return nil

	case "setText":
		el, err := resolveElement(doc, o.Node)
		if err != nil {
			return err
		}
		if first := el.AsNode().FirstChild(); first != nil {
			first.SetNodeValue(o.Value)
			return nil
		}
		_, err = el.AsNode().AppendChild(doc.CreateTextNode(o.Value))
		return err

	case "remove":
		el, err := resolveElement(doc, o.Node)
		if err != nil {
			return err
		}
		el.Remove()
		return nil

	case "append":
		parent, err := resolveElement(doc, o.Parent)
		if err != nil {
			return err
		}
		return moveFragmentInto(doc, parent.AsNode(), nil, o.HTML)

	case "insertBefore":
		parent, err := resolveElement(doc, o.Parent)
		if err != nil {
			return err
		}
		before, err := resolveElement(doc, o.Before)
		if err != nil {
			return err
		}
		return moveFragmentInto(doc, parent.AsNode(), before.AsNode(), o.HTML)

	default:
		return fmt.Errorf("unknown op %q", o.Op)
	}
}

// moveFragmentInto parses html in a scratch element and moves each
// resulting top-level node into parent (before before, or at the end),
// one ordinary AppendChild/InsertBefore call at a time, so the observer
// sees normal per-node child-list mutations rather than a single
// document-fragment move. The top-level nodes are snapshotted into a
// static NodeList first, since moving a child out of scratch during a
// live walk would shift scratch's own firstChild/nextSibling chain out
// from under the iteration.
func moveFragmentInto(doc *dom.Document, parent, before *dom.Node, html string) error {
	scratch := doc.CreateElement("div")
	if err := scratch.SetInnerHTML(html); err != nil {
		return err
	}
	topLevel := dom.NewStaticNodeList(scratch.AsNode().ChildNodes().ToSlice())
	var moveErr error
	topLevel.ForEach(func(child *dom.Node, _ int) {
		if moveErr != nil {
			return
		}
		_, moveErr = parent.InsertBefore(child, before)
	})
	return moveErr
}
