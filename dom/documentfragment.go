package dom

// DocumentFragment represents a minimal document object that has no parent.
// It is used to hold a portion of a document tree before it is moved into
// a document in one insertion.
type DocumentFragment Node

// AsNode returns the underlying Node.
func (df *DocumentFragment) AsNode() *Node { return (*Node)(df) }

// NodeType returns DocumentFragmentNode (11).
func (df *DocumentFragment) NodeType() NodeType { return DocumentFragmentNode }

// NodeName returns "#document-fragment".
func (df *DocumentFragment) NodeName() string { return "#document-fragment" }

// Append moves each node into this fragment, in order.
func (df *DocumentFragment) Append(nodes ...*Node) {
	for _, n := range nodes {
		df.AsNode().AppendChild(n)
	}
}

// NewDocumentFragment creates a new detached document fragment.
func NewDocumentFragment() *DocumentFragment {
	node := newNode(DocumentFragmentNode, "#document-fragment", nil)
	return (*DocumentFragment)(node)
}
