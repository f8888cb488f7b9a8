package dom

import "strings"

// Node represents a node in the DOM tree. It is the base type from which
// Document, Element, Text, Comment, and DocumentFragment are built; the
// node kind is distinguished by nodeType rather than by separate Go types,
// matching the DOM's own single-interface-many-node-types shape.
type Node struct {
	nodeType  NodeType
	nodeName  string
	nodeValue *string // nil for Element, Document, DocumentFragment

	ownerDoc   *Document
	parentNode *Node
	childNodes *NodeList

	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node

	// Type-specific data; only one is non-nil based on nodeType.
	elementData  *elementData
	charData     *string
	documentData *documentData
}

// newNode creates a new node with the given type and name.
func newNode(nodeType NodeType, nodeName string, ownerDoc *Document) *Node {
	n := &Node{
		nodeType: nodeType,
		nodeName: nodeName,
		ownerDoc: ownerDoc,
	}
	n.childNodes = newNodeList(n)
	return n
}

// NodeType returns the type of the node.
func (n *Node) NodeType() NodeType { return n.nodeType }

// NodeName returns the name of the node (tag name for elements, "#text" for
// text nodes, "#comment" for comments, "#document" for the document).
func (n *Node) NodeName() string { return n.nodeName }

// NodeValue returns the character data of the node, or "" for node types
// that don't carry one.
func (n *Node) NodeValue() string {
	if n.nodeValue != nil {
		return *n.nodeValue
	}
	return ""
}

// SetNodeValue sets the character data of the node. This is a no-op for
// node types that don't carry character data (elements, documents,
// fragments), matching the DOM spec.
func (n *Node) SetNodeValue(value string) {
	if n.charData == nil {
		return
	}
	oldValue := *n.charData
	*n.charData = value
	n.nodeValue = &value
	notifyCharacterDataMutation(n, oldValue)
}

// OwnerDocument returns the Document that owns this node. Document nodes
// return nil for themselves.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// ParentNode returns the parent of this node, or nil if detached.
func (n *Node) ParentNode() *Node { return n.parentNode }

// ParentElement returns the parent Element, or nil if the parent is absent
// or not an element.
func (n *Node) ParentElement() *Element {
	if n.parentNode != nil && n.parentNode.nodeType == ElementNode {
		return (*Element)(n.parentNode)
	}
	return nil
}

// ChildNodes returns a live NodeList of child nodes.
func (n *Node) ChildNodes() *NodeList { return n.childNodes }

// FirstChild returns the first child node, or nil if there are no children.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child node, or nil if there are no children.
func (n *Node) LastChild() *Node { return n.lastChild }

// PreviousSibling returns the previous sibling, or nil if this is the first child.
func (n *Node) PreviousSibling() *Node { return n.prevSibling }

// NextSibling returns the next sibling, or nil if this is the last child.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// HasChildNodes reports whether this node has any children.
func (n *Node) HasChildNodes() bool { return n.firstChild != nil }

// Contains reports whether other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	for cur := other; cur != nil; cur = cur.parentNode {
		if cur == n {
			return true
		}
	}
	return false
}

// GetRootNode walks up to and returns the furthest ancestor of this node
// (itself, if detached).
func (n *Node) GetRootNode() *Node {
	cur := n
	for cur.parentNode != nil {
		cur = cur.parentNode
	}
	return cur
}

// TextContent returns the concatenated character data of this node and its
// descendants (or of just this node, for text/comment nodes).
func (n *Node) TextContent() string {
	switch n.nodeType {
	case DocumentNode:
		return ""
	case TextNode, CommentNode:
		return n.NodeValue()
	default:
		var sb strings.Builder
		n.collectTextContent(&sb)
		return sb.String()
	}
}

func (n *Node) collectTextContent(sb *strings.Builder) {
	for child := n.firstChild; child != nil; child = child.nextSibling {
		switch child.nodeType {
		case TextNode:
			sb.WriteString(child.NodeValue())
		case ElementNode, DocumentFragmentNode:
			child.collectTextContent(sb)
		}
	}
}

// AppendChild adds child to the end of this node's children.
func (n *Node) AppendChild(child *Node) (*Node, error) {
	return n.InsertBefore(child, nil)
}

// InsertBefore inserts newChild before refChild (or at the end, if refChild
// is nil). If newChild already has a parent it is first detached from it,
// generating a separate mutation notification for that parent, matching the
// DOM's "pre-insert" steps.
func (n *Node) InsertBefore(newChild, refChild *Node) (*Node, error) {
	if newChild == nil {
		return nil, ErrNotFound("the node to insert is null")
	}
	if refChild != nil && refChild.parentNode != n {
		return nil, ErrNotFound("refChild is not a child of this node")
	}
	if newChild == refChild {
		return newChild, nil
	}
	if newChild.Contains(n) {
		return nil, ErrHierarchyRequest("the new child contains the parent")
	}

	if newChild.nodeType == DocumentFragmentNode {
		return n.insertFragment(newChild, refChild)
	}

	if newChild.parentNode != nil {
		if _, err := newChild.parentNode.RemoveChild(newChild); err != nil {
			return nil, err
		}
	}

	var prevSib *Node
	if refChild != nil {
		prevSib = refChild.prevSibling
	} else {
		prevSib = n.lastChild
	}

	n.linkChild(newChild, refChild)
	notifyChildListMutation(n, []*Node{newChild}, nil, prevSib, refChild)
	return newChild, nil
}

// insertFragment inserts every child of a DocumentFragment as a single
// mutation, then empties the fragment (per the DOM's document-fragment
// insertion algorithm).
func (n *Node) insertFragment(fragment, refChild *Node) (*Node, error) {
	var prevSib *Node
	if refChild != nil {
		prevSib = refChild.prevSibling
	} else {
		prevSib = n.lastChild
	}

	var moved []*Node
	for child := fragment.firstChild; child != nil; {
		next := child.nextSibling
		fragment.unlinkChild(child)
		n.linkChild(child, refChild)
		moved = append(moved, child)
		child = next
	}

	if len(moved) > 0 {
		notifyChildListMutation(n, moved, nil, prevSib, refChild)
	}
	return fragment, nil
}

// linkChild splices newChild into this node's child list immediately before
// refChild (or at the end, if refChild is nil), without notifying.
func (n *Node) linkChild(newChild, refChild *Node) {
	newChild.parentNode = n
	if n.ownerDoc != nil {
		adoptNode(newChild, n.ownerDoc)
	} else if n.nodeType == DocumentNode {
		adoptNode(newChild, (*Document)(n))
	}

	if refChild == nil {
		newChild.prevSibling = n.lastChild
		newChild.nextSibling = nil
		if n.lastChild != nil {
			n.lastChild.nextSibling = newChild
		} else {
			n.firstChild = newChild
		}
		n.lastChild = newChild
		return
	}

	newChild.prevSibling = refChild.prevSibling
	newChild.nextSibling = refChild
	if refChild.prevSibling != nil {
		refChild.prevSibling.nextSibling = newChild
	} else {
		n.firstChild = newChild
	}
	refChild.prevSibling = newChild
}

// adoptNode recursively reassigns the owner document of node and its
// descendants.
func adoptNode(node *Node, doc *Document) {
	node.ownerDoc = doc
	for child := node.firstChild; child != nil; child = child.nextSibling {
		adoptNode(child, doc)
	}
}

// RemoveChild detaches child from this node's children.
func (n *Node) RemoveChild(child *Node) (*Node, error) {
	if child == nil {
		return nil, ErrNotFound("the node to remove is null")
	}
	if child.parentNode != n {
		return nil, ErrNotFound("the node to remove is not a child of this node")
	}

	prevSib := child.prevSibling
	nextSib := child.nextSibling
	n.unlinkChild(child)
	notifyChildListMutation(n, nil, []*Node{child}, prevSib, nextSib)
	return child, nil
}

// unlinkChild splices child out of this node's child list without
// notifying.
func (n *Node) unlinkChild(child *Node) {
	if child.prevSibling != nil {
		child.prevSibling.nextSibling = child.nextSibling
	} else {
		n.firstChild = child.nextSibling
	}
	if child.nextSibling != nil {
		child.nextSibling.prevSibling = child.prevSibling
	} else {
		n.lastChild = child.prevSibling
	}
	child.parentNode = nil
	child.prevSibling = nil
	child.nextSibling = nil
}

// ReplaceChild replaces oldChild with newChild, reporting the removal and
// the insertion as two separate mutations (as the DOM spec's replace
// algorithm does internally: a removal record for oldChild, then an
// insertion record for newChild).
func (n *Node) ReplaceChild(newChild, oldChild *Node) (*Node, error) {
	if oldChild == nil || oldChild.parentNode != n {
		return nil, ErrNotFound("the node to replace is not a child of this node")
	}
	refChild := oldChild.nextSibling
	if _, err := n.RemoveChild(oldChild); err != nil {
		return nil, err
	}
	if _, err := n.InsertBefore(newChild, refChild); err != nil {
		return nil, err
	}
	return oldChild, nil
}
