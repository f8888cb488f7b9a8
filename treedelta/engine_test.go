package treedelta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordChildren_SimpleRemoval(t *testing.T) {
	tr := New[string]()

	require.NoError(t, tr.RecordChildren("P", []string{"A"}, nil, NoneSibling[string](), HandleSibling("B")))

	assert.True(t, tr.Mutated())

	mnA, ok := tr.get("A")
	require.True(t, ok)
	assert.True(t, mnA.Original.IsKnown())
	assert.Equal(t, "P", mnA.Original.Parent)
	assert.True(t, mnA.Original.Prev.IsNone())
	assert.Equal(t, HandleSibling("B"), mnA.Original.Next)
	assert.True(t, mnA.Mutated.IsAbsent())
}

func TestRecordChildren_SimpleRearrangement(t *testing.T) {
	tr := New[string]()

	require.NoError(t, tr.RecordChildren("P",
		[]string{"A", "B"}, []string{"B", "A"},
		NoneSibling[string](), NoneSibling[string]()))

	assert.True(t, tr.Mutated())

	mnA, ok := tr.get("A")
	require.True(t, ok)
	mnB, ok := tr.get("B")
	require.True(t, ok)

	assert.Equal(t, KnownPosition("P", NoneSibling[string](), HandleSibling("B")), mnA.Original)
	assert.Equal(t, KnownPosition("P", HandleSibling("B"), NoneSibling[string]()), mnA.Mutated)

	assert.Equal(t, KnownPosition("P", HandleSibling("A"), NoneSibling[string]()), mnB.Original)
	assert.Equal(t, KnownPosition("P", NoneSibling[string](), HandleSibling("A")), mnB.Mutated)

	diff := tr.Diff(FilterAll)
	assert.Len(t, diff, 2)
}

func TestRecordChildren_AddThenRemoveCancels(t *testing.T) {
	tr := New[string]()

	require.NoError(t, tr.RecordChildren("P", nil, []string{"X"}, NoneSibling[string](), NoneSibling[string]()))
	_, ok := tr.get("X")
	require.True(t, ok)

	require.NoError(t, tr.RecordChildren("P", []string{"X"}, nil, NoneSibling[string](), NoneSibling[string]()))
	_, ok = tr.get("X")
	assert.False(t, ok)
	assert.False(t, tr.Mutated())
}

func TestRecordChildren_ReturnToOriginalSpotFixes(t *testing.T) {
	tr := New[string]()

	// B is removed from between untracked siblings A and C...
	require.NoError(t, tr.RecordChildren("P", []string{"B"}, nil, HandleSibling("A"), HandleSibling("C")))
	require.True(t, tr.Mutated())

	// ...then reinserted in exactly the same spot: the record should
	// collapse back to fixed.
	require.NoError(t, tr.RecordChildren("P", nil, []string{"B"}, HandleSibling("A"), HandleSibling("C")))

	assert.False(t, tr.Mutated())
	_, ok := tr.get("B")
	assert.False(t, ok)
}

func TestRecordChildren_SelfCheckPasses(t *testing.T) {
	tr := New[string](WithSelfCheck[string](true))

	require.NoError(t, tr.RecordChildren("P", []string{"A", "B"}, nil, NoneSibling[string](), NoneSibling[string]()))
	require.NoError(t, tr.RecordChildren("P", nil, []string{"B", "A"}, NoneSibling[string](), NoneSibling[string]()))
}

func TestPropertyCache_DirtyTracking(t *testing.T) {
	tr := New[string]()

	tr.RecordAttribute("n", "class", "old", true)
	// no NativeGet configured, so the new value read is absentValue(),
	// which differs from the captured old value and marks the entry dirty.
	assert.True(t, tr.Mutated())

	diff := tr.Diff(FilterAttribute)
	require.Contains(t, diff, "n")
	assert.Equal(t, "old", diff["n"].Attributes["class"])

	tr.RecordCustom("n", "selected", "true", "false")
	diff = tr.Diff(FilterCustom)
	assert.Equal(t, "false", diff["n"].Custom["selected"])
}

func TestClear(t *testing.T) {
	tr := New[string]()
	require.NoError(t, tr.RecordChildren("P", []string{"A"}, nil, NoneSibling[string](), NoneSibling[string]()))
	tr.RecordAttribute("n", "class", "old", true)
	require.True(t, tr.Mutated())

	tr.Clear()
	assert.False(t, tr.Mutated())
	assert.Empty(t, tr.records)
}
