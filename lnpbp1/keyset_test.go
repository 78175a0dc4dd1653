package lnpbp1

import (
	"testing"

	"github.com/lnp-bp/go-dbc/internal/test"
	"github.com/stretchr/testify/require"
)

// TestKeysetOrderIndependence asserts that the canonical ordering of a keyset
// does not depend on insertion order.
func TestKeysetOrderIndependence(t *testing.T) {
	t.Parallel()

	keys := test.DeterministicPubKeys(t, 5)

	forward := NewKeyset(keys...)
	backward := NewKeyset()
	for i := len(keys) - 1; i >= 0; i-- {
		backward.Insert(keys[i])
	}

	require.True(t, forward.Equal(backward))

	forwardKeys := forward.Keys()
	backwardKeys := backward.Keys()
	require.Len(t, backwardKeys, len(forwardKeys))
	for i := range forwardKeys {
		require.True(t, forwardKeys[i].IsEqual(backwardKeys[i]))
	}
}

// TestKeysetUniqueness asserts that duplicate keys collapse into a single
// member.
func TestKeysetUniqueness(t *testing.T) {
	t.Parallel()

	keys := test.DeterministicPubKeys(t, 3)

	set := NewKeyset(keys[0], keys[1], keys[2], keys[1], keys[0])
	require.Equal(t, 3, set.Size())

	require.False(t, set.Insert(keys[2]))
	require.Equal(t, 3, set.Size())
}

func TestKeysetMembership(t *testing.T) {
	t.Parallel()

	keys := test.DeterministicPubKeys(t, 4)
	set := NewKeyset(keys[:3]...)

	require.True(t, set.Contains(keys[0]))
	require.False(t, set.Contains(keys[3]))

	require.True(t, set.Remove(keys[1]))
	require.False(t, set.Contains(keys[1]))
	require.False(t, set.Remove(keys[1]))
	require.Equal(t, 2, set.Size())
}

// TestKeysetCopyIsolation asserts that mutating a copy leaves the original
// untouched.
func TestKeysetCopyIsolation(t *testing.T) {
	t.Parallel()

	keys := test.DeterministicPubKeys(t, 3)
	original := NewKeyset(keys...)

	setCopy := original.Copy()
	require.True(t, setCopy.Remove(keys[0]))

	require.True(t, original.Contains(keys[0]))
	require.Equal(t, 3, original.Size())
	require.Equal(t, 2, setCopy.Size())
}
