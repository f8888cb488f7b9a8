package treedelta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linearOrder is a tiny document-order oracle over a fixed node sequence,
// enough to exercise BoundaryRange's compare-driven logic without a real
// tree implementation.
func linearOrder(order []string) func(a, b BoundaryPoint[string]) int {
	index := make(map[string]int, len(order))
	for i, n := range order {
		index[n] = i
	}
	return func(a, b BoundaryPoint[string]) int {
		if a.Node == b.Node {
			return int(a.Flag) - int(b.Flag)
		}
		return index[a.Node] - index[b.Node]
	}
}

// sameLinearRoot treats every node in order as belonging to root "root"
// and anything outside it as belonging to its own root, so tests can
// exercise the disconnected-root path.
func sameLinearRoot(roots map[string]string) func(a, b string) bool {
	return func(a, b string) bool { return roots[a] == roots[b] }
}

func TestBoundaryRange_SelectNode(t *testing.T) {
	r := NewBoundaryRange(linearOrder([]string{"a", "b", "c"}), nil, nil)
	assert.True(t, r.IsNull())

	r.SelectNode("b")
	assert.False(t, r.IsNull())
	assert.Equal(t, BoundaryPoint[string]{Node: "b", Flag: BeforeOpen}, r.Start())
	assert.Equal(t, BoundaryPoint[string]{Node: "b", Flag: AfterClose}, r.End())
}

func TestBoundaryRange_ExtendTakesOuterBounds(t *testing.T) {
	order := linearOrder([]string{"a", "b", "c", "d"})

	r := NewBoundaryRange(order, nil, nil)
	r.SelectNode("b")

	other := NewBoundaryRange(order, nil, nil)
	other.SelectNode("a")
	r.Extend(other)

	other2 := NewBoundaryRange(order, nil, nil)
	other2.SelectNode("c")
	r.Extend(other2)

	assert.Equal(t, BoundaryPoint[string]{Node: "a", Flag: BeforeOpen}, r.Start())
	assert.Equal(t, BoundaryPoint[string]{Node: "c", Flag: AfterClose}, r.End())
}

func TestBoundaryRange_ExtendIgnoresNullOther(t *testing.T) {
	order := linearOrder([]string{"a", "b"})
	r := NewBoundaryRange(order, nil, nil)
	r.SelectNode("a")

	null := NewBoundaryRange(order, nil, nil)
	r.Extend(null)

	assert.Equal(t, BoundaryPoint[string]{Node: "a", Flag: BeforeOpen}, r.Start())
}

func TestBoundaryRange_ExtendAcrossRootsIsDisconnected(t *testing.T) {
	order := linearOrder([]string{"a", "b"})
	roots := sameLinearRoot(map[string]string{"a": "R1", "b": "R2"})

	r := NewBoundaryRange(order, nil, roots)
	r.SelectNode("a")

	other := NewBoundaryRange(order, nil, roots)
	other.SelectNode("b")

	r.Extend(other)
	assert.True(t, r.IsNull())
}

func TestBoundaryRange_NormalizeDetectsInversion(t *testing.T) {
	order := linearOrder([]string{"a", "b"})
	r := NewBoundaryRange(order, nil, nil)
	r.SetStart("b", BeforeOpen)
	r.SetEnd("a", AfterClose)

	r.Normalize()
	assert.True(t, r.IsNull())
}

func TestTracker_RangeUsesConfiguredFactory(t *testing.T) {
	order := linearOrder([]string{"a", "X", "b"})
	tr := New[string](WithRangeFactory[string](func() RangeCollaborator[string] {
		return NewBoundaryRange(order, nil, nil)
	}))

	require.NoError(t, tr.RecordChildren("P", []string{"X"}, nil, HandleSibling("a"), HandleSibling("b")))

	rng, err := tr.Range()
	require.NoError(t, err)
	require.NotNil(t, rng)

	// X was removed from between a and b, and neither neighbor has
	// itself moved, so the range covers X's original gap rather than
	// X's own (now absent) position: after a's close through before
	// b's open.
	br, ok := rng.(*BoundaryRange[string])
	require.True(t, ok)
	assert.Equal(t, BoundaryPoint[string]{Node: "a", Flag: AfterClose}, br.Start())
	assert.Equal(t, BoundaryPoint[string]{Node: "b", Flag: BeforeOpen}, br.End())
}

func TestTracker_RangeCoversMovedNodesNewSlot(t *testing.T) {
	// Current (mutated) physical order after the move below.
	order := linearOrder([]string{"B", "C", "D", "A"})
	tr := New[string](WithRangeFactory[string](func() RangeCollaborator[string] {
		return NewBoundaryRange(order, nil, nil)
	}))

	// A starts between B and C, is removed, then appended after D. Its
	// original neighbors B and C are both still fixed, contributing
	// after(B)..before(C); its current position contributes
	// selectNode(A). The union must span both, not just A's new slot.
	require.NoError(t, tr.RecordChildren("P", []string{"A"}, nil, HandleSibling("B"), HandleSibling("C")))
	require.NoError(t, tr.RecordChildren("P", nil, []string{"A"}, HandleSibling("D"), NoneSibling[string]()))

	rng, err := tr.Range()
	require.NoError(t, err)
	require.NotNil(t, rng)

	br, ok := rng.(*BoundaryRange[string])
	require.True(t, ok)
	assert.Equal(t, BoundaryPoint[string]{Node: "B", Flag: AfterClose}, br.Start())
	assert.Equal(t, BoundaryPoint[string]{Node: "A", Flag: AfterClose}, br.End())
}

func TestTracker_RangeAcrossTwoRootsIsAmbiguous(t *testing.T) {
	order := linearOrder([]string{"R1", "R2"})
	roots := sameLinearRoot(map[string]string{"R1": "R1", "R2": "R2"})
	tr := New[string](WithRangeFactory[string](func() RangeCollaborator[string] {
		return NewBoundaryRange(order, nil, roots)
	}))

	require.NoError(t, tr.RecordChildren("R1", []string{"X"}, nil, NoneSibling[string](), NoneSibling[string]()))
	require.NoError(t, tr.RecordChildren("R2", []string{"Y"}, nil, NoneSibling[string](), NoneSibling[string]()))

	rng, err := tr.Range()
	require.Error(t, err)
	assert.Nil(t, rng)
	assert.IsType(t, &TrackerError{}, err)
}

func TestTracker_RangeNilWhenNothingMutated(t *testing.T) {
	tr := New[string](WithRangeFactory[string](func() RangeCollaborator[string] {
		return NewBoundaryRange(linearOrder(nil), nil, nil)
	}))
	rng, err := tr.Range()
	require.NoError(t, err)
	assert.Nil(t, rng)
}
