// Package dbc implements deterministic bitcoin commitments: embedding of
// arbitrary messages into public keys, taproot outputs, script-pubkeys and
// whole transaction outputs by deterministically tweaking the underlying
// elliptic curve key material.
//
// Every commitment layer follows the same protocol. A Container carries the
// layer-specific working state for a single commitment attempt: the original
// key material plus the tweaking factor that gets recorded once EmbedCommit
// succeeds. Containers are either built fresh by a committer or reconstructed
// from a Proof together with the externally observed host object (the actual
// script-pubkey or transaction output) by a verifier. Verification is always
// mirror execution: re-run EmbedCommit on a copy of the container and compare
// the result, never a separate algorithm that could diverge from the commit
// path.
package dbc

import "errors"

var (
	// ErrInvalidProofStructure is returned when the source variant of a
	// proof is inconsistent with the resolved script encoding method, or
	// when the proof cannot be matched against the host script bytes.
	ErrInvalidProofStructure = errors.New("invalid proof structure")

	// ErrInvalidOpReturnKey is returned when a tweaked public key cannot
	// be embedded into an OP_RETURN output because its compressed
	// serialization does not start with the even-Y 0x02 prefix byte.
	ErrInvalidOpReturnKey = errors.New(
		"tweaked public key is unsuitable for OP_RETURN embedding",
	)

	// ErrTaprootUnsupported is returned when a commitment requires
	// rendering a final taproot script-pubkey. The rendering is pending
	// external standardization and must not be guessed.
	ErrTaprootUnsupported = errors.New(
		"taproot script-pubkey rendering is not yet supported",
	)
)

// Commitment is the immutable output of a commitment layer. Two commitments
// to the same container and message must be byte-identical, which is what
// makes mirror-execution verification sound.
type Commitment[C any] interface {
	// Equal reports whether two commitments are identical.
	Equal(C) bool
}

// Container is the mutable working state of one commitment layer for a
// single embed-commit attempt.
type Container[C any, Self any] interface {
	// Clone returns an independent copy of the container, used to re-run
	// the commitment procedure without mutating the original.
	Clone() Self

	// EmbedCommit embeds a commitment to msg into the container's key
	// material, records the tweaking factor inside the container and
	// returns the resulting commitment.
	EmbedCommit(msg []byte) (C, error)

	// Proof extracts the minimal witness needed to later reconstruct the
	// container from the on-chain host object.
	Proof() *Proof
}

// VerifyCommitment checks a commitment against a container and message by
// re-running the embedding procedure on a copy of the container and comparing
// the results. Unlike the tweak engine's boolean verification, a failure of
// the inner commitment procedure here indicates structurally malformed inputs
// and surfaces as an error.
func VerifyCommitment[C Commitment[C], S Container[C, S]](commitment C,
	container S, msg []byte) (bool, error) {

	replica, err := container.Clone().EmbedCommit(msg)
	if err != nil {
		return false, err
	}

	return commitment.Equal(replica), nil
}
