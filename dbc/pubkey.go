package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnp-bp/go-dbc/lnpbp1"
)

// PubkeyContainer is the working state of a single-key commitment: the
// original public key hosting the commitment and the pre-hashed
// protocol-specific tag. The tag is pre-hashed once per protocol so repeated
// commitments do not re-hash it.
type PubkeyContainer struct {
	// PubKey is the original public key: the host of the commitment.
	PubKey *btcec.PublicKey

	// Tag is the single SHA256 hash of the protocol-specific tag.
	Tag chainhash.Hash

	// TweakingFactor is recorded by EmbedCommit after a successful
	// commitment, nil before.
	TweakingFactor *lnpbp1.TweakFactor
}

// ReconstructPubkeyContainer rebuilds a pubkey container from a proof and the
// protocol tag. The proof itself contains the host key, so no external host
// object is needed at this layer.
func ReconstructPubkeyContainer(proof *Proof,
	tag chainhash.Hash) (*PubkeyContainer, error) {

	return &PubkeyContainer{
		PubKey: proof.PubKey,
		Tag:    tag,
	}, nil
}

// Clone returns an independent copy of the container.
func (c *PubkeyContainer) Clone() *PubkeyContainer {
	containerCopy := *c
	return &containerCopy
}

// Deconstruct splits the container into its proof and the protocol tag.
func (c *PubkeyContainer) Deconstruct() (*Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

// Proof returns the minimal witness of the commitment, which for a pubkey
// commitment is just the original public key.
func (c *PubkeyContainer) Proof() *Proof {
	return NewProof(c.PubKey, SinglePubkeySource())
}

// EmbedCommit tweaks the container's public key with a commitment to msg,
// delegating to the tweak engine with a singleton keyset.
func (c *PubkeyContainer) EmbedCommit(msg []byte) (*PubkeyCommitment, error) {
	keyset := lnpbp1.NewKeyset(c.PubKey)

	tweakedPubKey, factor, err := lnpbp1.Commit(
		keyset, c.PubKey, &c.Tag, msg,
	)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = &factor

	return &PubkeyCommitment{PubKey: tweakedPubKey}, nil
}

// PubkeyCommitment is a public key tweaked with a message commitment.
type PubkeyCommitment struct {
	// PubKey is the tweaked public key.
	PubKey *btcec.PublicKey
}

// Equal reports whether two pubkey commitments are identical.
func (c *PubkeyCommitment) Equal(other *PubkeyCommitment) bool {
	return c.PubKey.IsEqual(other.PubKey)
}
