package treeobserve

import (
	"testing"

	"github.com/chrisuehlinger/viberowser/dom"
	"github.com/chrisuehlinger/viberowser/treedelta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObservedDocument(t *testing.T) (*dom.Document, *dom.Element, *Observer) {
	t.Helper()
	doc := dom.NewDocument()
	root := doc.CreateElement("div")
	_, err := doc.AsNode().AppendChild(root.AsNode())
	require.NoError(t, err)

	observer := New()
	dom.RegisterMutationCallback(doc, observer)
	return doc, root, observer
}

func TestObserver_ChildListMutationIsTracked(t *testing.T) {
	doc, root, observer := newObservedDocument(t)

	child := doc.CreateElement("span")
	_, err := root.AsNode().AppendChild(child.AsNode())
	require.NoError(t, err)

	assert.True(t, observer.Tracker.Mutated())
}

func TestObserver_AttributeMutationIsTracked(t *testing.T) {
	doc, root, observer := newObservedDocument(t)

	child := doc.CreateElement("span")
	child.SetAttribute("class", "a")
	_, err := root.AsNode().AppendChild(child.AsNode())
	require.NoError(t, err)
	observer.Tracker.Clear() // only interested in the attribute change below

	child.SetAttribute("class", "b")

	assert.True(t, observer.Tracker.Mutated())
	diff := observer.Tracker.Diff(treedelta.FilterAttribute)
	d, ok := diff[child.AsNode()]
	require.True(t, ok)
	assert.Equal(t, "a", d.Attributes["class"])
}

func TestObserver_RevertRestoresAttribute(t *testing.T) {
	doc, root, observer := newObservedDocument(t)

	child := doc.CreateElement("span")
	child.SetAttribute("class", "a")
	_, err := root.AsNode().AppendChild(child.AsNode())
	require.NoError(t, err)
	observer.Tracker.Clear()

	child.SetAttribute("class", "b")
	require.Equal(t, "b", child.GetAttribute("class"))

	require.NoError(t, observer.Tracker.Revert(DOMTreeMutator{}, nil))
	assert.Equal(t, "a", child.GetAttribute("class"))
	assert.False(t, observer.Tracker.Mutated())
}

func TestObserver_CharacterDataMutationIsTracked(t *testing.T) {
	doc, root, observer := newObservedDocument(t)

	text := doc.CreateTextNode("hello")
	_, err := root.AsNode().AppendChild(text)
	require.NoError(t, err)
	observer.Tracker.Clear()

	text.SetNodeValue("goodbye")

	assert.True(t, observer.Tracker.Mutated())
	diff := observer.Tracker.Diff(treedelta.FilterData)
	d, ok := diff[text]
	require.True(t, ok)
	require.NotNil(t, d.DataOld)
	assert.Equal(t, "hello", *d.DataOld)
}
