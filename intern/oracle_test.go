package intern

import (
	"fmt"
	"math/rand"
	"testing"

	oracle "github.com/derekparker/trie"
	"github.com/stretchr/testify/require"
)

// Differential check against an independent trie implementation: every
// sequence maps to exactly one identifier, identifiers resolve back to
// their sequence, and the distinct count agrees with the oracle.
func TestDifferentialAgainstOracle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alphabet := []string{"alpha", "beta", "2024", "2025", "-", ".", "x", "yz", "long-component-"}

	tr := New()
	or := oracle.New()
	ids := make(map[string]uint32)

	for i := 0; i < 20000; i++ {
		var key string
		parts := 1 + rng.Intn(4)
		for j := 0; j < parts; j++ {
			key += alphabet[rng.Intn(len(alphabet))]
		}
		id := tr.Intern([]byte(key))

		if node, found := or.Find(key); found {
			require.Equal(t, node.Meta().(uint32), id, "re-interning %q changed its identifier", key)
		} else {
			or.Add(key, id)
			require.Equal(t, ids[key], uint32(0), "oracle lost key %q", key)
			ids[key] = id
		}
	}

	distinct := len(ids)
	require.Equal(t, distinct+1, tr.Count(), "distinct count disagrees with oracle")

	// identifiers are dense and resolve back to their sequences
	seen := make([]bool, tr.Count())
	for key, id := range ids {
		require.Equal(t, key, string(tr.Content(id)), "content mismatch for id %d", id)
		require.False(t, seen[id], "identifier %d assigned twice", id)
		seen[id] = true
	}
	for id := 1; id < len(seen); id++ {
		require.True(t, seen[id], "identifier %d never assigned", id)
	}
}

func BenchmarkInternDistinct(b *testing.B) {
	keys := make([][]byte, 4096)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("column-value-%d", i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr := New()
		for _, k := range keys {
			tr.Intern(k)
		}
	}
}

func BenchmarkInternRepeated(b *testing.B) {
	tr := New()
	keys := make([][]byte, 64)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("repeated-%d", i))
		tr.Intern(keys[i])
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tr.Intern(keys[i%len(keys)])
	}
}
