package dom

import "strings"

// Attr represents an attribute of an Element.
type Attr struct {
	ownerElement *Element
	namespaceURI string
	prefix       string
	localName    string
	name         string
	value        string
}

// NewAttr creates a new Attr with the given name and value.
func NewAttr(name, value string) *Attr {
	return &Attr{localName: name, name: name, value: value}
}

// NewAttrNS creates a new Attr with the given namespace, qualified name,
// and value, splitting the qualified name into prefix and local name.
func NewAttrNS(namespaceURI, qualifiedName, value string) *Attr {
	prefix, localName := "", qualifiedName
	if idx := strings.Index(qualifiedName, ":"); idx >= 0 {
		prefix = qualifiedName[:idx]
		localName = qualifiedName[idx+1:]
	}
	return &Attr{
		namespaceURI: namespaceURI,
		prefix:       prefix,
		localName:    localName,
		name:         qualifiedName,
		value:        value,
	}
}

// OwnerElement returns the element that owns this attribute.
func (a *Attr) OwnerElement() *Element { return a.ownerElement }

// NamespaceURI returns the namespace URI of the attribute.
func (a *Attr) NamespaceURI() string { return a.namespaceURI }

// LocalName returns the local name of the attribute.
func (a *Attr) LocalName() string { return a.localName }

// Name returns the qualified name of the attribute.
func (a *Attr) Name() string { return a.name }

// Value returns the attribute value.
func (a *Attr) Value() string { return a.value }
