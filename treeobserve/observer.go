// Package treeobserve bridges the dom package's MutationCallback
// collaborator to a treedelta.Tracker[*dom.Node]: it translates
// point-in-time DOM mutation notifications into RecordChildren /
// RecordAttribute / RecordData calls, and supplies the live-tree
// accessors (TreeMutator, LiveSiblings, RangeCollaborator, containment)
// treedelta needs to patch, revert, and range against a real tree.
package treeobserve

import (
	"github.com/chrisuehlinger/viberowser/dom"
	"github.com/chrisuehlinger/viberowser/treedelta"
)

// Observer wraps a treedelta.Tracker[*dom.Node] and implements
// dom.MutationCallback, so it can be registered directly against a
// dom.Document via dom.RegisterMutationCallback.
type Observer struct {
	Tracker *treedelta.Tracker[*dom.Node]
}

// New builds an Observer with every dom-specific accessor wired: native
// attribute/data reads, ancestor containment, document-order ranges,
// and live-sibling reads all go through the dom package directly.
func New(opts ...treedelta.Option[*dom.Node]) *Observer {
	base := []treedelta.Option[*dom.Node]{
		treedelta.WithNativeAccessor[*dom.Node](nativeGet),
		treedelta.WithContainment[*dom.Node](func(ancestor, node *dom.Node) bool { return ancestor.Contains(node) }),
		treedelta.WithRangeFactory[*dom.Node](newRange),
		treedelta.WithLiveReader[*dom.Node](liveSiblings),
	}
	return &Observer{Tracker: treedelta.New(append(base, opts...)...)}
}

func nodeSibling(n *dom.Node) treedelta.Sibling[*dom.Node] {
	if n == nil {
		return treedelta.NoneSibling[*dom.Node]()
	}
	return treedelta.HandleSibling(n)
}

func nativeGet(node *dom.Node, key string) (string, bool) {
	if node.NodeType() != dom.ElementNode {
		return node.NodeValue(), true
	}
	el := (*dom.Element)(node)
	if !el.HasAttribute(key) {
		return "", false
	}
	return el.GetAttribute(key), true
}

func liveSiblings(n *dom.Node) (parent *dom.Node, prev, next treedelta.Sibling[*dom.Node], ok bool) {
	p := n.ParentNode()
	if p == nil {
		return nil, treedelta.Sibling[*dom.Node]{}, treedelta.Sibling[*dom.Node]{}, false
	}
	return p, nodeSibling(n.PreviousSibling()), nodeSibling(n.NextSibling()), true
}

// OnChildListMutation implements dom.MutationCallback.
func (o *Observer) OnChildListMutation(target *dom.Node, added, removed []*dom.Node, prevSibling, nextSibling *dom.Node) {
	addedHandles := make([]*dom.Node, len(added))
	copy(addedHandles, added)
	removedHandles := make([]*dom.Node, len(removed))
	copy(removedHandles, removed)

	_ = o.Tracker.RecordChildren(target, removedHandles, addedHandles, nodeSibling(prevSibling), nodeSibling(nextSibling))
}

// OnAttributeMutation implements dom.MutationCallback. The dom package
// always reports a concrete oldValue string at this call site (see
// NamedNodeMap.SetAttr/RemoveNamedItem), so hadOld is always true here.
func (o *Observer) OnAttributeMutation(target *dom.Node, attributeName, _ string, oldValue string) {
	o.Tracker.RecordAttribute(target, attributeName, oldValue, true)
}

// OnCharacterDataMutation implements dom.MutationCallback.
func (o *Observer) OnCharacterDataMutation(target *dom.Node, oldValue string) {
	o.Tracker.RecordData(target, oldValue, true)
}

// DOMTreeMutator implements treedelta.TreeMutator[*dom.Node], letting
// PatchGroupedChildren/Revert apply changes to a live dom.Document.
type DOMTreeMutator struct{}

// Remove detaches child from whichever parent currently holds it (the
// parent argument is not consulted); a child with no parent is left as is.
func (DOMTreeMutator) Remove(_, child *dom.Node) error {
	if p := child.ParentNode(); p != nil {
		_, err := p.RemoveChild(child)
		return err
	}
	return nil
}

func (DOMTreeMutator) InsertBefore(parent, child, before *dom.Node) error {
	_, err := parent.InsertBefore(child, before)
	return err
}

func (DOMTreeMutator) Append(parent, child *dom.Node) error {
	_, err := parent.AppendChild(child)
	return err
}

func (DOMTreeMutator) Prepend(parent, child *dom.Node) error {
	_, err := parent.InsertBefore(child, parent.FirstChild())
	return err
}

func (DOMTreeMutator) SetAttribute(node *dom.Node, key, value string) error {
	if node.NodeType() != dom.ElementNode {
		return dom.ErrHierarchyRequest("SetAttribute on a non-element node")
	}
	(*dom.Element)(node).SetAttribute(key, value)
	return nil
}

func (DOMTreeMutator) RemoveAttribute(node *dom.Node, key string) error {
	if node.NodeType() != dom.ElementNode {
		return dom.ErrHierarchyRequest("RemoveAttribute on a non-element node")
	}
	(*dom.Element)(node).RemoveAttribute(key)
	return nil
}

func (DOMTreeMutator) SetCharacterData(node *dom.Node, value string) error {
	node.SetNodeValue(value)
	return nil
}
