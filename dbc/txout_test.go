package dbc

import (
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/lnp-bp/go-dbc/internal/test"
	"github.com/lnp-bp/go-dbc/pkscript"
	"github.com/stretchr/testify/require"
)

func TestTxoutCommitment(t *testing.T) {
	t.Parallel()

	container := NewTxoutContainer(
		100_000, testSpkKey(t), SinglePubkeySource(),
		MethodWPubkeyHash, testSpkTag(),
	)

	assertEmbedCommitVerify[*TxoutCommitment](
		t, test.Messages(t), container,
	)
}

// TestTxoutValueInvariance asserts that the output value flows into the
// committed output unchanged, never influences the commitment script and
// comes back from the observed host output on reconstruction.
func TestTxoutValueInvariance(t *testing.T) {
	t.Parallel()

	msg := []byte("test message")
	tag := testSpkTag()
	pubKey := testSpkKey(t)

	first := NewTxoutContainer(
		546, pubKey, SinglePubkeySource(), MethodPubkeyHash, tag,
	)
	second := NewTxoutContainer(
		21_000_000, pubKey, SinglePubkeySource(), MethodPubkeyHash, tag,
	)

	firstCommitment, err := first.Clone().EmbedCommit(msg)
	require.NoError(t, err)
	secondCommitment, err := second.Clone().EmbedCommit(msg)
	require.NoError(t, err)

	require.EqualValues(t, 546, firstCommitment.TxOut.Value)
	require.EqualValues(t, 21_000_000, secondCommitment.TxOut.Value)

	// Only the value differs, so the commitments differ as outputs but
	// carry identical script-pubkeys.
	require.False(t, firstCommitment.Equal(secondCommitment))
	require.Equal(
		t, firstCommitment.TxOut.PkScript,
		secondCommitment.TxOut.PkScript,
	)
}

func TestTxoutReconstruct(t *testing.T) {
	t.Parallel()

	msg := []byte("test message")
	tag := testSpkTag()
	pubKey := testSpkKey(t)

	container := NewTxoutContainer(
		50_000, pubKey, SinglePubkeySource(), MethodWPubkeyHash, tag,
	)
	commitment, err := container.Clone().EmbedCommit(msg)
	require.NoError(t, err)

	proof, proofTag := container.Deconstruct()
	require.Equal(t, tag, proofTag)

	reconstructed, err := ReconstructTxoutContainer(
		proof, proofTag, commitment.TxOut,
	)
	require.NoError(t, err)

	// The value is picked up from the observed output, not the proof.
	require.EqualValues(t, 50_000, reconstructed.Value)
	require.Equal(
		t, MethodWPubkeyHash, reconstructed.ScriptContainer.Method,
	)

	ok, err := VerifyCommitment(commitment, reconstructed, msg)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyCommitment(
		commitment, reconstructed, []byte("some other message"),
	)
	require.NoError(t, err)
	require.False(t, ok)

	// A script hash host that does not match the proof key's nested
	// rendering surfaces as a structural error.
	badScript, err := pkscript.FromLockScript(
		[]byte{txscript.OP_1}, pkscript.CategoryHashed,
	)
	require.NoError(t, err)

	badHost := wire.NewTxOut(50_000, badScript)
	_, err = ReconstructTxoutContainer(proof, proofTag, badHost)
	require.ErrorIs(t, err, ErrInvalidProofStructure)
}

// TestTxoutTweakingFactorCopiedUp asserts the factor recorded by the inner
// layers ends up on the outermost container.
func TestTxoutTweakingFactorCopiedUp(t *testing.T) {
	t.Parallel()

	container := NewTxoutContainer(
		1_000, testSpkKey(t), SinglePubkeySource(),
		MethodPubkeyHash, testSpkTag(),
	)
	_, err := container.EmbedCommit([]byte("test message"))
	require.NoError(t, err)
	require.NotNil(t, container.TweakingFactor)
	require.NotNil(t, container.ScriptContainer.TweakingFactor)
	require.Equal(
		t, container.ScriptContainer.TweakingFactor,
		container.TweakingFactor,
	)
}
