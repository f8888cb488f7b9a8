package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// elementData holds data specific to Element nodes.
type elementData struct {
	localName    string
	namespaceURI string
	prefix       string
	tagName      string
	attributes   *NamedNodeMap
}

// Element represents an element in the DOM tree. Element inherits from Node
// and provides element-specific properties and methods.
type Element Node

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node { return (*Node)(e) }

// NodeType returns ElementNode (1).
func (e *Element) NodeType() NodeType { return ElementNode }

// NodeName returns the tag name.
func (e *Element) NodeName() string { return e.TagName() }

// TagName returns the tag name in uppercase (for HTML elements).
func (e *Element) TagName() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.tagName
	}
	return strings.ToUpper(e.AsNode().nodeName)
}

// LocalName returns the local name of the element (lowercase for HTML).
func (e *Element) LocalName() string {
	if e.AsNode().elementData != nil {
		return e.AsNode().elementData.localName
	}
	return strings.ToLower(e.AsNode().nodeName)
}

// Id returns the id attribute value.
func (e *Element) Id() string { return e.GetAttribute("id") }

// SetId sets the id attribute value.
func (e *Element) SetId(id string) { e.SetAttribute("id", id) }

// Attributes returns the NamedNodeMap of attributes, creating it on first use.
func (e *Element) Attributes() *NamedNodeMap {
	if e.AsNode().elementData == nil {
		e.AsNode().elementData = &elementData{}
	}
	if e.AsNode().elementData.attributes == nil {
		e.AsNode().elementData.attributes = newNamedNodeMap(e)
	}
	return e.AsNode().elementData.attributes
}

// GetAttribute returns the value of the attribute with the given name, or "".
func (e *Element) GetAttribute(name string) string {
	return e.Attributes().GetValue(strings.ToLower(name))
}

// SetAttribute sets the value of the attribute with the given name,
// notifying attribute-mutation callbacks with the previous value.
func (e *Element) SetAttribute(name, value string) {
	e.Attributes().SetValue(strings.ToLower(name), value)
}

// HasAttribute reports whether the element has the given attribute.
func (e *Element) HasAttribute(name string) bool {
	return e.Attributes().Has(strings.ToLower(name))
}

// RemoveAttribute removes the attribute with the given name, notifying
// attribute-mutation callbacks with the removed value.
func (e *Element) RemoveAttribute(name string) {
	e.Attributes().RemoveNamedItem(strings.ToLower(name))
}

// InnerHTML serializes the element's children to an HTML string.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for child := e.AsNode().firstChild; child != nil; child = child.nextSibling {
		serializeNode(child, &sb)
	}
	return sb.String()
}

// SetInnerHTML replaces the element's children with the parsed contents of
// htmlContent, using golang.org/x/net/html to parse the fragment in this
// element's tag context. Each replaced child is reported as a removal, and
// each parsed node as an addition, via the ordinary child-list mutation
// path (RemoveChild/AppendChild), so an observer sees the same notifications
// it would for equivalent DOM calls.
func (e *Element) SetInnerHTML(htmlContent string) error {
	for e.AsNode().firstChild != nil {
		e.AsNode().RemoveChild(e.AsNode().firstChild)
	}
	if htmlContent == "" {
		return nil
	}
	if e.AsNode().ownerDoc == nil {
		return nil
	}

	nodes, err := parseHTMLFragment(htmlContent, e)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		e.AsNode().AppendChild(node)
	}
	return nil
}

// TextContent returns the text content of the element and its descendants.
func (e *Element) TextContent() string { return e.AsNode().TextContent() }

// serializeNode serializes a node to HTML.
func serializeNode(n *Node, sb *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		sb.WriteString(html.EscapeString(n.NodeValue()))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.NodeValue())
		sb.WriteString("-->")
	case ElementNode:
		el := (*Element)(n)
		tagName := strings.ToLower(el.TagName())
		sb.WriteString("<")
		sb.WriteString(tagName)

		attrs := el.Attributes()
		for i := 0; i < attrs.Length(); i++ {
			if attr := attrs.Item(i); attr != nil {
				sb.WriteString(" ")
				sb.WriteString(attr.name)
				sb.WriteString("=\"")
				sb.WriteString(html.EscapeString(attr.value))
				sb.WriteString("\"")
			}
		}

		if isVoidElement(tagName) {
			sb.WriteString(">")
			return
		}
		sb.WriteString(">")
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
		sb.WriteString("</")
		sb.WriteString(tagName)
		sb.WriteString(">")
	case DocumentFragmentNode:
		for child := n.firstChild; child != nil; child = child.nextSibling {
			serializeNode(child, sb)
		}
	}
}

// isVoidElement reports whether tagName is an HTML void element.
func isVoidElement(tagName string) bool {
	switch tagName {
	case "area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr":
		return true
	}
	return false
}

// parseHTMLFragment parses an HTML fragment in the tag context of element.
func parseHTMLFragment(htmlContent string, context *Element) ([]*Node, error) {
	tagName := strings.ToLower(context.TagName())
	contextNode := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(tagName)),
		Data:     tagName,
	}

	nodes, err := html.ParseFragment(strings.NewReader(htmlContent), contextNode)
	if err != nil {
		return nil, err
	}

	result := make([]*Node, 0, len(nodes))
	doc := context.AsNode().ownerDoc
	for _, n := range nodes {
		result = append(result, convertHTMLNode(n, doc))
	}
	return result, nil
}

// convertHTMLNode converts an x/net/html.Node (and its descendants) into a
// dom.Node tree owned by doc.
func convertHTMLNode(n *html.Node, doc *Document) *Node {
	var node *Node
	switch n.Type {
	case html.TextNode:
		node = doc.CreateTextNode(n.Data)
	case html.ElementNode:
		el := doc.CreateElement(n.Data)
		for _, attr := range n.Attr {
			el.SetAttribute(attr.Key, attr.Val)
		}
		node = el.AsNode()
	case html.CommentNode:
		node = doc.CreateComment(n.Data)
	default:
		node = doc.CreateTextNode(n.Data)
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.AppendChild(convertHTMLNode(c, doc))
	}
	return node
}

// Remove detaches this element from its parent, if any.
func (e *Element) Remove() {
	if e.AsNode().parentNode != nil {
		e.AsNode().parentNode.RemoveChild(e.AsNode())
	}
}
