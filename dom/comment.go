package dom

// Comment represents a comment node in the DOM.
type Comment Node

// AsNode returns the underlying Node.
func (c *Comment) AsNode() *Node { return (*Node)(c) }

// NodeType returns CommentNode (8).
func (c *Comment) NodeType() NodeType { return CommentNode }

// NodeName returns "#comment".
func (c *Comment) NodeName() string { return "#comment" }

// Data returns the comment content.
func (c *Comment) Data() string { return c.AsNode().NodeValue() }

// SetData replaces the comment content, notifying character-data mutation
// callbacks with the previous value.
func (c *Comment) SetData(data string) { c.AsNode().SetNodeValue(data) }

// Length returns the length of the comment content.
func (c *Comment) Length() int { return len(c.Data()) }

// Remove detaches this comment node from its parent, if any.
func (c *Comment) Remove() {
	if c.AsNode().parentNode != nil {
		c.AsNode().parentNode.RemoveChild(c.AsNode())
	}
}

// NewCommentNode creates a new detached comment node with the given data.
func NewCommentNode(data string) *Node {
	node := newNode(CommentNode, "#comment", nil)
	node.charData = &data
	node.nodeValue = &data
	return node
}
