package dom

import (
	"testing"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument()
	if doc == nil {
		t.Fatal("NewDocument returned nil")
	}
	if doc.NodeType() != DocumentNode {
		t.Errorf("Expected DocumentNode, got %v", doc.NodeType())
	}
	if doc.NodeName() != "#document" {
		t.Errorf("Expected '#document', got %s", doc.NodeName())
	}
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	if el == nil {
		t.Fatal("CreateElement returned nil")
	}
	if el.TagName() != "DIV" {
		t.Errorf("Expected tagName 'DIV', got '%s'", el.TagName())
	}
	if el.LocalName() != "div" {
		t.Errorf("Expected localName 'div', got '%s'", el.LocalName())
	}
	if el.NodeType() != ElementNode {
		t.Errorf("Expected ElementNode, got %v", el.NodeType())
	}
}

func TestDocument_CreateTextNode(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("Hello, World!")

	if text == nil {
		t.Fatal("CreateTextNode returned nil")
	}
	if text.NodeType() != TextNode {
		t.Errorf("Expected TextNode, got %v", text.NodeType())
	}
	if text.NodeValue() != "Hello, World!" {
		t.Errorf("Expected 'Hello, World!', got '%s'", text.NodeValue())
	}
}

func TestDocument_CreateComment(t *testing.T) {
	doc := NewDocument()
	comment := doc.CreateComment("This is a comment")

	if comment == nil {
		t.Fatal("CreateComment returned nil")
	}
	if comment.NodeType() != CommentNode {
		t.Errorf("Expected CommentNode, got %v", comment.NodeType())
	}
	if comment.NodeValue() != "This is a comment" {
		t.Errorf("Expected 'This is a comment', got '%s'", comment.NodeValue())
	}
}

func TestDocument_CreateDocumentFragment(t *testing.T) {
	doc := NewDocument()
	frag := doc.CreateDocumentFragment()

	if frag == nil {
		t.Fatal("CreateDocumentFragment returned nil")
	}
	if frag.NodeType() != DocumentFragmentNode {
		t.Errorf("Expected DocumentFragmentNode, got %v", frag.NodeType())
	}
}

func TestElement_Attributes(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.SetAttribute("id", "main")
	el.SetAttribute("class", "container")
	el.SetAttribute("data-value", "123")

	if el.GetAttribute("id") != "main" {
		t.Errorf("Expected id='main', got '%s'", el.GetAttribute("id"))
	}
	if el.GetAttribute("class") != "container" {
		t.Errorf("Expected class='container', got '%s'", el.GetAttribute("class"))
	}
	if el.GetAttribute("data-value") != "123" {
		t.Errorf("Expected data-value='123', got '%s'", el.GetAttribute("data-value"))
	}
	if !el.HasAttribute("id") {
		t.Error("Expected HasAttribute('id') to be true")
	}

	el.RemoveAttribute("id")
	if el.HasAttribute("id") {
		t.Error("Expected HasAttribute('id') to be false after removal")
	}
}

func TestNode_AppendChildAndSiblings(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	a := doc.CreateElement("li")
	b := doc.CreateElement("li")
	c := doc.CreateElement("li")

	for _, child := range []*Element{a, b, c} {
		if _, err := parent.AsNode().AppendChild(child.AsNode()); err != nil {
			t.Fatalf("AppendChild failed: %v", err)
		}
	}

	if parent.AsNode().FirstChild() != a.AsNode() {
		t.Error("Expected a to be the first child")
	}
	if parent.AsNode().LastChild() != c.AsNode() {
		t.Error("Expected c to be the last child")
	}
	if a.AsNode().NextSibling() != b.AsNode() {
		t.Error("Expected b to follow a")
	}
	if c.AsNode().PreviousSibling() != b.AsNode() {
		t.Error("Expected b to precede c")
	}
	if b.AsNode().ParentNode() != parent.AsNode() {
		t.Error("Expected parent to be b's parent")
	}
}

func TestNode_InsertBefore(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	a := doc.CreateElement("li")
	c := doc.CreateElement("li")
	b := doc.CreateElement("li")

	if _, err := parent.AsNode().AppendChild(a.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if _, err := parent.AsNode().AppendChild(c.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if _, err := parent.AsNode().InsertBefore(b.AsNode(), c.AsNode()); err != nil {
		t.Fatalf("InsertBefore failed: %v", err)
	}

	if a.AsNode().NextSibling() != b.AsNode() {
		t.Error("Expected b to follow a")
	}
	if b.AsNode().NextSibling() != c.AsNode() {
		t.Error("Expected c to follow b")
	}
}

func TestNode_RemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("ul")
	a := doc.CreateElement("li")
	b := doc.CreateElement("li")

	if _, err := parent.AsNode().AppendChild(a.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if _, err := parent.AsNode().AppendChild(b.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	if _, err := parent.AsNode().RemoveChild(a.AsNode()); err != nil {
		t.Fatalf("RemoveChild failed: %v", err)
	}

	if parent.AsNode().FirstChild() != b.AsNode() {
		t.Error("Expected b to be the only remaining child")
	}
	if a.AsNode().ParentNode() != nil {
		t.Error("Expected a to be detached after removal")
	}
}

func TestNode_Contains(t *testing.T) {
	doc := NewDocument()
	parent := doc.CreateElement("div")
	child := doc.CreateElement("span")
	if _, err := parent.AsNode().AppendChild(child.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if !parent.AsNode().Contains(child.AsNode()) {
		t.Error("Expected parent to contain child")
	}
	if child.AsNode().Contains(parent.AsNode()) {
		t.Error("Expected child to not contain parent")
	}
}

func TestElement_SetInnerHTML(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	if _, err := doc.AsNode().AppendChild(root.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	if err := root.SetInnerHTML("<p id=\"greeting\">hi</p>"); err != nil {
		t.Fatalf("SetInnerHTML failed: %v", err)
	}

	p := doc.GetElementById("greeting")
	if p == nil {
		t.Fatal("Expected to find element with id 'greeting'")
	}
	if p.TextContent() != "hi" {
		t.Errorf("Expected text content 'hi', got '%s'", p.TextContent())
	}
}

type recordingCallback struct {
	childListCalls int
	attrCalls      int
	dataCalls      int
}

func (r *recordingCallback) OnChildListMutation(target *Node, added, removed []*Node, prevSibling, nextSibling *Node) {
	r.childListCalls++
}

func (r *recordingCallback) OnAttributeMutation(target *Node, attributeName, namespaceURI, oldValue string) {
	r.attrCalls++
}

func (r *recordingCallback) OnCharacterDataMutation(target *Node, oldValue string) {
	r.dataCalls++
}

func TestMutationCallback_FiresOnChildListAndAttribute(t *testing.T) {
	doc := NewDocument()
	root := doc.CreateElement("div")
	if _, err := doc.AsNode().AppendChild(root.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}

	cb := &recordingCallback{}
	RegisterMutationCallback(doc, cb)

	child := doc.CreateElement("span")
	if _, err := root.AsNode().AppendChild(child.AsNode()); err != nil {
		t.Fatalf("AppendChild failed: %v", err)
	}
	child.SetAttribute("class", "x")

	if cb.childListCalls != 1 {
		t.Errorf("Expected 1 child-list callback, got %d", cb.childListCalls)
	}
	if cb.attrCalls != 1 {
		t.Errorf("Expected 1 attribute callback, got %d", cb.attrCalls)
	}

	UnregisterMutationCallback(doc, cb)
	child.SetAttribute("class", "y")
	if cb.attrCalls != 1 {
		t.Errorf("Expected no further callbacks after unregister, got %d", cb.attrCalls)
	}
}
