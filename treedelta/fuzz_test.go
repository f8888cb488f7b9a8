package treedelta

import (
	"fmt"
	"sort"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

// TestFuzzRecordAttribute checks, across random key/old/new triples, that
// RecordAttribute's dirty bit agrees with a plain "old != new" comparison
// and that Clear always brings Mutated back to false.
func TestFuzzRecordAttribute(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(50, 50)

	for i := 0; i < 200; i++ {
		var key, oldValue, newValue string
		f.Fuzz(&key)
		f.Fuzz(&oldValue)
		f.Fuzz(&newValue)
		if key == "" {
			continue
		}

		tr := New[string](WithNativeAccessor[string](func(string, string) (string, bool) {
			return newValue, true
		}))
		tr.RecordAttribute("node", key, oldValue, true)

		wantDirty := oldValue != newValue
		require.Equal(t, wantDirty, tr.Mutated(), "key=%q old=%q new=%q", key, oldValue, newValue)

		tr.Clear()
		require.False(t, tr.Mutated())
	}
}

// TestFuzzRecordChildrenNoPanic drives RecordChildren with random
// shuffles of a small, fixed handle pool and asserts the self-check
// invariants hold after every call.
func TestFuzzRecordChildrenNoPanic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	pool := []string{"n0", "n1", "n2", "n3", "n4"}

	for trial := 0; trial < 100; trial++ {
		tr := New[string](WithSelfCheck[string](true))

		keys := make([]int, len(pool))
		for i := range keys {
			f.Fuzz(&keys[i])
		}

		order := make([]int, len(pool))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool { return keys[order[a]] < keys[order[b]] })

		removed := append([]string(nil), pool...)
		added := make([]string, len(pool))
		for i, idx := range order {
			added[i] = pool[idx]
		}

		err := tr.RecordChildren("root", removed, added, NoneSibling[string](), NoneSibling[string]())
		require.NoError(t, err, fmt.Sprintf("trial %d order %v", trial, order))
	}
}
