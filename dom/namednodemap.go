package dom

// NamedNodeMap represents a collection of Attr objects. It is used for the
// Element.attributes property. SetAttr matches an existing attribute by
// namespace + local name; GetNamedItem, RemoveNamedItem, GetValue,
// SetValue and Has match by qualified name.
type NamedNodeMap struct {
	ownerElement *Element
	attrs        []*Attr
}

// newNamedNodeMap creates a new NamedNodeMap for the given element.
func newNamedNodeMap(element *Element) *NamedNodeMap {
	return &NamedNodeMap{
		ownerElement: element,
		attrs:        make([]*Attr, 0),
	}
}

// Length returns the number of attributes in the map.
func (nm *NamedNodeMap) Length() int { return len(nm.attrs) }

// Item returns the attribute at the given index, or nil if out of bounds.
func (nm *NamedNodeMap) Item(index int) *Attr {
	if index < 0 || index >= len(nm.attrs) {
		return nil
	}
	return nm.attrs[index]
}

// GetNamedItem returns the attribute with the given qualified name, or nil.
func (nm *NamedNodeMap) GetNamedItem(name string) *Attr {
	for _, attr := range nm.attrs {
		if attr.name == name {
			return attr
		}
	}
	return nil
}

// SetAttr adds or replaces an attribute using an Attr object, notifying
// attribute-mutation callbacks with the attribute's previous value (or ""
// if the attribute is new).
func (nm *NamedNodeMap) SetAttr(attr *Attr) *Attr {
	if attr == nil {
		return nil
	}
	attr.ownerElement = nm.ownerElement

	for i, existing := range nm.attrs {
		if existing.namespaceURI == attr.namespaceURI && existing.localName == attr.localName {
			oldValue := existing.value
			nm.attrs[i] = attr
			existing.ownerElement = nil
			if nm.ownerElement != nil {
				notifyAttributeMutation(nm.ownerElement.AsNode(), attr.localName, attr.namespaceURI, oldValue)
			}
			return existing
		}
	}

	nm.attrs = append(nm.attrs, attr)
	if nm.ownerElement != nil {
		notifyAttributeMutation(nm.ownerElement.AsNode(), attr.localName, attr.namespaceURI, "")
	}
	return nil
}

// RemoveNamedItem removes the attribute with the given qualified name,
// notifying attribute-mutation callbacks before clearing the attribute's
// owner.
func (nm *NamedNodeMap) RemoveNamedItem(name string) *Attr {
	for i, attr := range nm.attrs {
		if attr.name == name {
			oldValue := attr.value
			nm.attrs = append(nm.attrs[:i], nm.attrs[i+1:]...)
			if nm.ownerElement != nil {
				notifyAttributeMutation(nm.ownerElement.AsNode(), attr.localName, attr.namespaceURI, oldValue)
			}
			attr.ownerElement = nil
			return attr
		}
	}
	return nil
}

// GetValue returns the value of the attribute with the given name, or "".
func (nm *NamedNodeMap) GetValue(name string) string {
	if attr := nm.GetNamedItem(name); attr != nil {
		return attr.value
	}
	return ""
}

// SetValue sets the value of the attribute with the given name, creating it
// if absent.
func (nm *NamedNodeMap) SetValue(name, value string) {
	if attr := nm.GetNamedItem(name); attr != nil {
		oldValue := attr.value
		attr.value = value
		if nm.ownerElement != nil {
			notifyAttributeMutation(nm.ownerElement.AsNode(), attr.localName, attr.namespaceURI, oldValue)
		}
		return
	}
	nm.SetAttr(NewAttr(name, value))
}

// Has reports whether an attribute with the given name exists.
func (nm *NamedNodeMap) Has(name string) bool { return nm.GetNamedItem(name) != nil }

// Names returns the qualified names of all attributes.
func (nm *NamedNodeMap) Names() []string {
	names := make([]string, len(nm.attrs))
	for i, attr := range nm.attrs {
		names[i] = attr.name
	}
	return names
}

// OwnerElement returns the element that owns this NamedNodeMap.
func (nm *NamedNodeMap) OwnerElement() *Element { return nm.ownerElement }
