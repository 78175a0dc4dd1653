package dbc

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnp-bp/go-dbc/internal/test"
	"github.com/stretchr/testify/require"
)

func TestTaprootCommitment(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("TEST_TAG"))
	scriptRoot := chainhash.HashH([]byte("tapscript merkle root"))

	for _, pubKey := range test.DeterministicPubKeys(t, 6) {
		assertEmbedCommitVerify[*TaprootCommitment](
			t, test.Messages(t), &TaprootContainer{
				ScriptRoot:      scriptRoot,
				IntermediateKey: pubKey,
				Tag:             tag,
			},
		)
	}
}

// TestTaprootDelegation asserts that the taproot layer commits through the
// pubkey layer on the intermediate key and carries the script root along
// unchanged.
func TestTaprootDelegation(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("TEST_TAG"))
	scriptRoot := chainhash.HashH([]byte("tapscript merkle root"))
	intermediateKey := test.RandPubKey(t)
	msg := []byte("test message")

	container := &TaprootContainer{
		ScriptRoot:      scriptRoot,
		IntermediateKey: intermediateKey,
		Tag:             tag,
	}
	commitment, err := container.EmbedCommit(msg)
	require.NoError(t, err)

	pubkeyContainer := &PubkeyContainer{
		PubKey: intermediateKey,
		Tag:    tag,
	}
	pubkeyCommitment, err := pubkeyContainer.EmbedCommit(msg)
	require.NoError(t, err)

	require.True(t, commitment.IntermediateKeyCommitment.Equal(
		pubkeyCommitment,
	))
	require.Equal(t, scriptRoot, commitment.ScriptRoot)

	// The inner layer's tweaking factor is copied up.
	require.NotNil(t, container.TweakingFactor)
	require.Equal(
		t, *pubkeyContainer.TweakingFactor, *container.TweakingFactor,
	)
}

// TestTaprootReconstruct asserts that reconstruction demands the taproot
// source variant.
func TestTaprootReconstruct(t *testing.T) {
	t.Parallel()

	tag := chainhash.HashH([]byte("TEST_TAG"))
	scriptRoot := chainhash.HashH([]byte("tapscript merkle root"))
	pubKey := test.RandPubKey(t)

	container := &TaprootContainer{
		ScriptRoot:      scriptRoot,
		IntermediateKey: pubKey,
		Tag:             tag,
	}

	proof, supplement := container.Deconstruct()
	reconstructed, err := ReconstructTaprootContainer(proof, supplement)
	require.NoError(t, err)
	require.Equal(t, container.ScriptRoot, reconstructed.ScriptRoot)
	require.True(
		t, reconstructed.IntermediateKey.IsEqual(pubKey),
	)

	// Any other source variant is a structural error.
	_, err = ReconstructTaprootContainer(
		NewProof(pubKey, SinglePubkeySource()), tag,
	)
	require.ErrorIs(t, err, ErrInvalidProofStructure)

	_, err = ReconstructTaprootContainer(
		NewProof(pubKey, LockScriptSource([]byte{0x51})), tag,
	)
	require.ErrorIs(t, err, ErrInvalidProofStructure)
}
