package treedelta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronize_ResolvesUnknownsAndFixesReverted(t *testing.T) {
	live := map[string]struct {
		parent     string
		prev, next Sibling[string]
	}{
		"X": {parent: "P", prev: HandleSibling("A"), next: HandleSibling("B")},
	}

	tr := New[string](WithLiveReader[string](func(h string) (string, Sibling[string], Sibling[string], bool) {
		v, ok := live[h]
		return v.parent, v.prev, v.next, ok
	}))

	require.NoError(t, tr.RecordChildren("P", []string{"X"}, nil, HandleSibling("A"), HandleSibling("B")))
	require.True(t, tr.Mutated())

	require.NoError(t, tr.RecordChildren("P", nil, []string{"X"}, UnknownSibling[string](), UnknownSibling[string]()))

	mnX, ok := tr.get("X")
	require.True(t, ok)
	assert.True(t, mnX.Mutated.Prev.IsUnknown())
	assert.True(t, mnX.Mutated.Next.IsUnknown())

	require.NoError(t, tr.Synchronize())

	_, ok = tr.get("X")
	assert.False(t, ok)
	assert.False(t, tr.Mutated())
}

func TestSynchronize_RequiresLiveReader(t *testing.T) {
	tr := New[string]()
	err := tr.Synchronize()
	require.Error(t, err)
}
