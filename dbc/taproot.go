package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lnp-bp/go-dbc/lnpbp1"
)

// TaprootContainer is the working state of a taproot output commitment. The
// commitment is embedded into the taproot intermediate (internal) key; the
// merkle root of the tapscript tree travels along unchanged and is carried
// by the proof so the container can be rebuilt later.
type TaprootContainer struct {
	// ScriptRoot is the merkle root of the tapscript tree.
	ScriptRoot chainhash.Hash

	// IntermediateKey is the internal key hosting the commitment.
	IntermediateKey *btcec.PublicKey

	// Tag is the single SHA256 hash of the protocol-specific tag.
	Tag chainhash.Hash

	// TweakingFactor is recorded by EmbedCommit after a successful
	// commitment, nil before.
	TweakingFactor *lnpbp1.TweakFactor
}

// ReconstructTaprootContainer rebuilds a taproot container from a proof and
// the protocol tag. The proof must carry the taproot source variant.
func ReconstructTaprootContainer(proof *Proof,
	tag chainhash.Hash) (*TaprootContainer, error) {

	if proof.Source.Type != SourceTaproot {
		return nil, ErrInvalidProofStructure
	}

	return &TaprootContainer{
		ScriptRoot:      proof.Source.TaprootRoot,
		IntermediateKey: proof.PubKey,
		Tag:             tag,
	}, nil
}

// Clone returns an independent copy of the container.
func (c *TaprootContainer) Clone() *TaprootContainer {
	containerCopy := *c
	return &containerCopy
}

// Deconstruct splits the container into its proof and the protocol tag.
func (c *TaprootContainer) Deconstruct() (*Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

// Proof returns the minimal witness of the commitment: the intermediate key
// together with the tapscript merkle root.
func (c *TaprootContainer) Proof() *Proof {
	return NewProof(c.IntermediateKey, TaprootSource(c.ScriptRoot))
}

// EmbedCommit embeds a commitment to msg into the intermediate key by
// delegating to the pubkey layer and re-attaches the script root unchanged.
func (c *TaprootContainer) EmbedCommit(msg []byte) (*TaprootCommitment,
	error) {

	pubkeyContainer := &PubkeyContainer{
		PubKey: c.IntermediateKey,
		Tag:    c.Tag,
	}

	commitment, err := pubkeyContainer.EmbedCommit(msg)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = pubkeyContainer.TweakingFactor

	return &TaprootCommitment{
		ScriptRoot:                c.ScriptRoot,
		IntermediateKeyCommitment: commitment,
	}, nil
}

// TaprootCommitment is a taproot intermediate key tweaked with a message
// commitment plus the unchanged tapscript merkle root. Assembling the final
// taproot script-pubkey from these parts is not yet supported, pending
// external standardization.
type TaprootCommitment struct {
	// ScriptRoot is the merkle root of the tapscript tree.
	ScriptRoot chainhash.Hash

	// IntermediateKeyCommitment is the tweaked intermediate key.
	IntermediateKeyCommitment *PubkeyCommitment
}

// Equal reports whether two taproot commitments are identical.
func (c *TaprootCommitment) Equal(other *TaprootCommitment) bool {
	return c.ScriptRoot == other.ScriptRoot &&
		c.IntermediateKeyCommitment.Equal(
			other.IntermediateKeyCommitment,
		)
}
