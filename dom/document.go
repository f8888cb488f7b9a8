package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Document represents the root of a DOM tree. Document inherits from Node
// and owns the factory methods used to build the rest of the tree.
type Document Node

// documentData holds data specific to Document nodes.
type documentData struct {
	contentType string
}

// HTMLNamespace is the namespace URI shared by all HTML elements.
const HTMLNamespace = "http://www.w3.org/1999/xhtml"

// toASCIILowercase converts ASCII letters A-Z to lowercase a-z, leaving
// everything else unchanged.
func toASCIILowercase(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 32
		}
		b.WriteByte(c)
	}
	return b.String()
}

// toASCIIUppercase converts ASCII letters a-z to uppercase A-Z, leaving
// everything else unchanged.
func toASCIIUppercase(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 32
		}
		b.WriteByte(c)
	}
	return b.String()
}

// NewDocument creates a new empty HTML document.
func NewDocument() *Document {
	node := newNode(DocumentNode, "#document", nil)
	node.documentData = &documentData{contentType: "text/html"}
	doc := (*Document)(node)
	node.ownerDoc = doc
	return doc
}

// IsHTML reports whether this is an HTML document (as opposed to XML).
func (d *Document) IsHTML() bool {
	return d.AsNode().documentData.contentType == "text/html"
}

// AsNode returns the underlying Node.
func (d *Document) AsNode() *Node { return (*Node)(d) }

// NodeType returns DocumentNode (9).
func (d *Document) NodeType() NodeType { return DocumentNode }

// NodeName returns "#document".
func (d *Document) NodeName() string { return "#document" }

// DocumentElement returns the root element of the document, or nil.
func (d *Document) DocumentElement() *Element {
	for child := d.AsNode().firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			return (*Element)(child)
		}
	}
	return nil
}

// CreateElement creates a new element with the given tag name. For HTML
// documents the tag name is ASCII-lowercased for storage and ASCII-
// uppercased for TagName, matching createElement's documented casing.
func (d *Document) CreateElement(tagName string) *Element {
	localName, resultTagName := tagName, tagName
	if d.IsHTML() {
		localName = toASCIILowercase(tagName)
		resultTagName = toASCIIUppercase(tagName)
	}

	node := newNode(ElementNode, resultTagName, d)
	node.elementData = &elementData{
		localName:    localName,
		tagName:      resultTagName,
		namespaceURI: HTMLNamespace,
	}
	node.elementData.attributes = newNamedNodeMap((*Element)(node))
	return (*Element)(node)
}

// CreateTextNode creates a new text node with the given data.
func (d *Document) CreateTextNode(data string) *Node {
	node := newNode(TextNode, "#text", d)
	node.charData = &data
	node.nodeValue = &data
	return node
}

// CreateComment creates a new comment node with the given data.
func (d *Document) CreateComment(data string) *Node {
	node := newNode(CommentNode, "#comment", d)
	node.charData = &data
	node.nodeValue = &data
	return node
}

// CreateDocumentFragment creates a new, empty document fragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	node := newNode(DocumentFragmentNode, "#document-fragment", d)
	return (*DocumentFragment)(node)
}

// CreateAttribute creates a new, valueless attribute with the given name.
// For HTML documents the name is lowercased.
func (d *Document) CreateAttribute(name string) *Attr {
	localName := name
	if d.IsHTML() {
		localName = strings.ToLower(name)
	}
	return NewAttr(localName, "")
}

// GetElementById returns the first element in document order with the
// given id attribute, or nil. Per the DOM spec, an empty id never matches.
func (d *Document) GetElementById(id string) *Element {
	if id == "" {
		return nil
	}
	return findElementById(d.AsNode(), id)
}

func findElementById(node *Node, id string) *Element {
	for child := node.firstChild; child != nil; child = child.nextSibling {
		if child.nodeType == ElementNode {
			el := (*Element)(child)
			if el.Id() == id {
				return el
			}
			if result := findElementById(child, id); result != nil {
				return result
			}
		}
	}
	return nil
}

// ParseHTML parses a full HTML document using golang.org/x/net/html and
// converts the result into this package's DOM tree.
func ParseHTML(htmlContent string) (*Document, error) {
	doc := NewDocument()

	netDoc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	convertHTMLTree(netDoc, doc.AsNode(), doc)
	return doc, nil
}

// convertHTMLTree converts an x/net/html.Node tree into dom.Node children
// of parent, appending each converted child in document order.
func convertHTMLTree(src *html.Node, parent *Node, doc *Document) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		var node *Node

		switch c.Type {
		case html.TextNode:
			node = doc.CreateTextNode(c.Data)
		case html.CommentNode:
			node = doc.CreateComment(c.Data)
		case html.ElementNode:
			el := doc.CreateElement(c.Data)
			for _, attr := range c.Attr {
				el.SetAttribute(attr.Key, attr.Val)
			}
			node = el.AsNode()
			convertHTMLTree(c, node, doc)
		case html.DoctypeNode:
			continue
		default:
			continue
		}

		parent.AppendChild(node)
	}
}
