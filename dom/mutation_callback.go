package dom

// MutationCallback is the observed-tree driver collaborator: an adapter
// registered against a Document receives one notification per child-list,
// attribute, or character-data mutation performed through the Node/Element
// API. Each notification is point-in-time: the sibling and value arguments
// describe the state at the moment of the call, not a promise to be
// resolved later by the callback.
type MutationCallback interface {
	// OnChildListMutation is called when children are added or removed.
	OnChildListMutation(
		target *Node,
		addedNodes []*Node,
		removedNodes []*Node,
		previousSibling *Node,
		nextSibling *Node,
	)

	// OnAttributeMutation is called when an attribute is changed, added, or removed.
	OnAttributeMutation(
		target *Node,
		attributeName string,
		attributeNamespace string,
		oldValue string,
	)

	// OnCharacterDataMutation is called when a text or comment node's data
	// is replaced wholesale (setData/nodeValue).
	OnCharacterDataMutation(
		target *Node,
		oldValue string,
	)
}

// mutationCallbacks stores registered mutation callbacks for a document.
var mutationCallbacks = make(map[*Document][]MutationCallback)

// RegisterMutationCallback registers a callback to receive mutation notifications for a document.
func RegisterMutationCallback(doc *Document, callback MutationCallback) {
	if doc == nil || callback == nil {
		return
	}
	mutationCallbacks[doc] = append(mutationCallbacks[doc], callback)
}

// UnregisterMutationCallback removes a callback from a document.
func UnregisterMutationCallback(doc *Document, callback MutationCallback) {
	if doc == nil {
		return
	}
	callbacks := mutationCallbacks[doc]
	for i, cb := range callbacks {
		if cb == callback {
			mutationCallbacks[doc] = append(callbacks[:i], callbacks[i+1:]...)
			return
		}
	}
}

// ClearMutationCallbacks removes all callbacks for a document.
func ClearMutationCallbacks(doc *Document) {
	delete(mutationCallbacks, doc)
}

// notifyChildListMutation notifies all registered callbacks about a childList mutation.
func notifyChildListMutation(
	target *Node,
	addedNodes []*Node,
	removedNodes []*Node,
	previousSibling *Node,
	nextSibling *Node,
) {
	if target == nil || target.ownerDoc == nil {
		return
	}
	for _, cb := range mutationCallbacks[target.ownerDoc] {
		cb.OnChildListMutation(target, addedNodes, removedNodes, previousSibling, nextSibling)
	}
}

// notifyAttributeMutation notifies all registered callbacks about an attribute mutation.
func notifyAttributeMutation(
	target *Node,
	attributeName string,
	attributeNamespace string,
	oldValue string,
) {
	if target == nil || target.ownerDoc == nil {
		return
	}
	for _, cb := range mutationCallbacks[target.ownerDoc] {
		cb.OnAttributeMutation(target, attributeName, attributeNamespace, oldValue)
	}
}

// notifyCharacterDataMutation notifies all registered callbacks about a character data mutation.
func notifyCharacterDataMutation(
	target *Node,
	oldValue string,
) {
	if target == nil || target.ownerDoc == nil {
		return
	}
	for _, cb := range mutationCallbacks[target.ownerDoc] {
		cb.OnCharacterDataMutation(target, oldValue)
	}
}
