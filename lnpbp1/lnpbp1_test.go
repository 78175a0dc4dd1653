package lnpbp1

import (
	"crypto/hmac"
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnp-bp/go-dbc/internal/test"
	"github.com/stretchr/testify/require"
)

// TestHashedTag pins the fixed scheme tag to SHA256("LNPBP1") and asserts
// that near-miss spellings of the tag source string hash differently.
func TestHashedTag(t *testing.T) {
	t.Parallel()

	require.Equal(t, sha256.Sum256([]byte("LNPBP1")), HashedTag)

	for _, variant := range []string{
		"LNPBP2", "LNPBP-1", "LNPBP_1", "lnpbp1", "lnpbp-1", "lnpbp_1",
	} {
		require.NotEqual(
			t, sha256.Sum256([]byte(variant)), HashedTag, variant,
		)
	}
}

// handComputedFactor derives the single-key tweaking factor outside of
// Commit, byte for byte per the standard.
func handComputedFactor(t *testing.T, keyedWith []byte, tag *chainhash.Hash,
	msg []byte) TweakFactor {

	mac := hmac.New(sha256.New, keyedWith)
	mac.Write(HashedTag[:])
	mac.Write(tag[:])
	msgDigest := sha256.Sum256(msg)
	mac.Write(msgDigest[:])

	var factor TweakFactor
	copy(factor[:], mac.Sum(nil))

	return factor
}

func TestSingleKeyCommit(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("ProtoTag"))
	tag2 := chainhash.HashH([]byte("Prototag"))
	messages := test.Messages(t)
	allKeys := test.DeterministicPubKeys(t, 6)
	otherKey := allKeys[0]

	for _, msg := range messages {
		for _, original := range allKeys[1:] {
			keyset := NewKeyset(original)
			tweaked, factor, err := Commit(
				keyset, original, &tag, msg,
			)
			require.NoError(t, err)

			keyset2 := NewKeyset(original)
			tweaked2, factor2, err := Commit(
				keyset2, original, &tag2, msg,
			)
			require.NoError(t, err)

			// Changing the protocol tag must change both the
			// factor and the resulting key; the tag is case
			// sensitive.
			require.NotEqual(t, factor, factor2)
			require.False(t, tweaked.IsEqual(tweaked2))

			// The factor must not be trivial.
			require.NotEqual(t, TweakFactor{}, factor)
			require.NotEqual(t, TweakFactor(tag), factor)

			// The key was tweaked and replaced inside the set.
			require.False(t, tweaked.IsEqual(original))
			require.Equal(t, 1, keyset.Size())
			require.True(t, keyset.Contains(tweaked))
			require.False(t, keyset.Contains(original))

			// For a singleton keyset the sum is the key itself,
			// so the factor must match the hand-computed HMAC.
			expected := handComputedFactor(
				t, original.SerializeCompressed(), &tag, msg,
			)
			require.Equal(t, expected, factor)

			altKey, err := addTweak(original, expected)
			require.NoError(t, err)
			require.True(t, altKey.IsEqual(tweaked))

			// A different key with the same tag and message must
			// commit to a different value.
			if !otherKey.IsEqual(original) {
				otherKeyset := NewKeyset(otherKey)
				otherTweaked, otherFactor, err := Commit(
					otherKeyset, otherKey, &tag, msg,
				)
				require.NoError(t, err)
				require.NotEqual(t, factor, otherFactor)
				require.False(t, tweaked.IsEqual(otherTweaked))

				require.False(t, Verify(
					otherTweaked, NewKeyset(original),
					original, &tag, msg,
				))
			}

			// The commitment verifies only against the exact
			// tuple used at commit time.
			require.True(t, Verify(
				tweaked, NewKeyset(original), original, &tag,
				msg,
			))
			require.False(t, Verify(
				tweaked, NewKeyset(original), original, &tag2,
				msg,
			))
			require.False(t, Verify(
				tweaked, NewKeyset(original), original, &tag,
				[]byte("some other message"),
			))
		}
	}
}

func TestKeysetCommit(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("ProtoTag"))
	tag2 := chainhash.HashH([]byte("Prototag"))
	messages := test.Messages(t)
	allKeys := test.DeterministicPubKeys(t, 6)
	otherKey := allKeys[0]
	originalKeyset := NewKeyset(allKeys[1:]...)

	for _, msg := range messages {
		for _, original := range originalKeyset.Keys() {
			keyset := originalKeyset.Copy()
			tweaked, factor, err := Commit(
				keyset, original, &tag, msg,
			)
			require.NoError(t, err)

			keyset2 := originalKeyset.Copy()
			tweaked2, factor2, err := Commit(
				keyset2, original, &tag2, msg,
			)
			require.NoError(t, err)

			require.NotEqual(t, factor, factor2)
			require.False(t, tweaked.IsEqual(tweaked2))
			require.False(t, tweaked.IsEqual(original))

			// Only the target key was replaced in the set.
			require.False(t, keyset.Equal(originalKeyset))
			restored := keyset.Copy()
			require.True(t, restored.Remove(tweaked))
			require.True(t, restored.Insert(original))
			require.True(t, restored.Equal(originalKeyset))

			// The multi-key commitment binds the sum of all set
			// members, so the single-key hand computation must
			// not reproduce the factor.
			singleKey := handComputedFactor(
				t, original.SerializeCompressed(), &tag, msg,
			)
			require.NotEqual(t, singleKey, factor)

			// A substituted target key prevents cross
			// verification.
			if !otherKey.IsEqual(original) {
				otherKeyset := originalKeyset.Copy()
				require.True(t, otherKeyset.Remove(original))
				require.True(t, otherKeyset.Insert(otherKey))
				otherTweaked, otherFactor, err := Commit(
					otherKeyset, otherKey, &tag, msg,
				)
				require.NoError(t, err)
				require.NotEqual(t, factor, otherFactor)
				require.False(t, tweaked.IsEqual(otherTweaked))

				require.False(t, Verify(
					otherTweaked, originalKeyset,
					original, &tag, msg,
				))
			}

			require.True(t, Verify(
				tweaked, originalKeyset, original, &tag, msg,
			))

			// A singleton set with the same target key verifies
			// a different commitment.
			require.False(t, Verify(
				tweaked, NewKeyset(original), original, &tag,
				msg,
			))
			require.False(t, Verify(
				tweaked, originalKeyset, original, &tag2, msg,
			))
			require.False(t, Verify(
				tweaked, originalKeyset, original, &tag,
				[]byte("some other message"),
			))
		}
	}
}

// TestCommitDeterminism asserts that repeated commits over fresh keyset
// copies are bit-identical and that distinct corpus messages never collide.
func TestCommitDeterminism(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("ProtoTag"))
	keys := test.DeterministicPubKeys(t, 4)
	originalKeyset := NewKeyset(keys...)

	seen := make(map[TweakFactor]struct{})
	for _, msg := range test.Messages(t) {
		tweaked, factor, err := Commit(
			originalKeyset.Copy(), keys[0], &tag, msg,
		)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			replica, replicaFactor, err := Commit(
				originalKeyset.Copy(), keys[0], &tag, msg,
			)
			require.NoError(t, err)
			require.Equal(t, factor, replicaFactor)
			require.True(t, tweaked.IsEqual(replica))
		}

		_, collision := seen[factor]
		require.False(t, collision)
		seen[factor] = struct{}{}
	}
}

func TestCommitNotKeysetMember(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("ProtoTag"))
	allKeys := test.DeterministicPubKeys(t, 6)
	keyset := NewKeyset(allKeys[1:]...)

	_, _, err := Commit(keyset, allKeys[0], &tag, []byte("Message"))
	require.ErrorIs(t, err, ErrNotKeysetMember)
}

// TestCraftedNegation asserts that a keyset holding a key together with its
// negation is rejected: their sum is the point at infinity.
func TestCraftedNegation(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("ProtoTag"))
	pubKey := test.ParsePubKey(t, "0218845781f631c48f1c9709e23092067d06"+
		"837f30aa0cd0544ac887fe91ddd166")
	negKey := test.ParsePubKey(t, "0318845781f631c48f1c9709e23092067d06"+
		"837f30aa0cd0544ac887fe91ddd166")

	keyset := NewKeyset(pubKey, negKey)
	_, _, err := Commit(keyset, pubKey, &tag, []byte("Message"))
	require.ErrorIs(t, err, ErrSumInfiniteResult)
}
