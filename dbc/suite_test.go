package dbc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// assertEmbedCommitVerify runs the commitment round trip over a message
// corpus for a single container: commitments must be deterministic, verify
// only against their own message and never collide across the corpus.
func assertEmbedCommitVerify[C Commitment[C], S Container[C, S]](t *testing.T,
	messages [][]byte, container S) {

	var accumulated []C
	for _, msg := range messages {
		commitment, err := container.Clone().EmbedCommit(msg)
		require.NoError(t, err)

		// Commitments must be deterministic.
		for i := 0; i < 10; i++ {
			replica, err := container.Clone().EmbedCommit(msg)
			require.NoError(t, err)
			require.True(t, commitment.Equal(replica))
		}

		ok, err := VerifyCommitment(commitment, container, msg)
		require.NoError(t, err)
		require.True(t, ok)

		// Verification succeeds only for the original message.
		for _, other := range messages {
			ok, err := VerifyCommitment(
				commitment, container, other,
			)
			require.NoError(t, err)
			require.Equal(t, bytes.Equal(other, msg), ok)
		}

		// Verification against other commitments fails, and no two
		// corpus messages may collide into one commitment.
		for _, previous := range accumulated {
			ok, err := VerifyCommitment(previous, container, msg)
			require.NoError(t, err)
			require.False(t, ok)

			require.False(t, commitment.Equal(previous))
		}

		accumulated = append(accumulated, commitment)
	}
}
