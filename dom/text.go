package dom

// Text represents a text node in the DOM.
type Text Node

// AsNode returns the underlying Node.
func (t *Text) AsNode() *Node { return (*Node)(t) }

// NodeType returns TextNode (3).
func (t *Text) NodeType() NodeType { return TextNode }

// NodeName returns "#text".
func (t *Text) NodeName() string { return "#text" }

// Data returns the text content.
func (t *Text) Data() string { return t.AsNode().NodeValue() }

// SetData replaces the text content, notifying character-data mutation
// callbacks with the previous value.
func (t *Text) SetData(data string) { t.AsNode().SetNodeValue(data) }

// Length returns the length of the text content.
func (t *Text) Length() int { return len(t.Data()) }

// Remove detaches this text node from its parent, if any.
func (t *Text) Remove() {
	if t.AsNode().parentNode != nil {
		t.AsNode().parentNode.RemoveChild(t.AsNode())
	}
}

// NewTextNode creates a new detached text node with the given data. The
// node has no owner document until inserted.
func NewTextNode(data string) *Node {
	node := newNode(TextNode, "#text", nil)
	node.charData = &data
	node.nodeValue = &data
	return node
}
