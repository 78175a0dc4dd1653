package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/lnp-bp/go-dbc/lnpbp1"
)

// TxoutContainer is the working state of a whole transaction output
// commitment: the output value plus the nested script-pubkey container. The
// value is observed directly from the host output and is never committed to,
// so the proof never needs to carry it.
type TxoutContainer struct {
	// Value is the output value in satoshi.
	Value int64

	// ScriptContainer is the nested script-pubkey container.
	ScriptContainer *SpkContainer

	// TweakingFactor is copied up from the nested script container by
	// EmbedCommit.
	TweakingFactor *lnpbp1.TweakFactor
}

// NewTxoutContainer assembles a transaction output container for a fresh
// commitment.
func NewTxoutContainer(value int64, pubKey *btcec.PublicKey,
	source ScriptEncodeData, method ScriptEncodeMethod,
	tag chainhash.Hash) *TxoutContainer {

	return &TxoutContainer{
		Value:           value,
		ScriptContainer: NewSpkContainer(pubKey, source, method, tag),
	}
}

// ReconstructTxoutContainer rebuilds a transaction output container from a
// proof, the protocol tag and the observed host output.
func ReconstructTxoutContainer(proof *Proof, tag chainhash.Hash,
	host *wire.TxOut) (*TxoutContainer, error) {

	scriptContainer, err := ReconstructSpkContainer(
		proof, tag, host.PkScript,
	)
	if err != nil {
		return nil, err
	}

	return &TxoutContainer{
		Value:           host.Value,
		ScriptContainer: scriptContainer,
	}, nil
}

// Clone returns an independent copy of the container.
func (c *TxoutContainer) Clone() *TxoutContainer {
	containerCopy := *c
	containerCopy.ScriptContainer = c.ScriptContainer.Clone()

	return &containerCopy
}

// Deconstruct forwards to the nested script container: the output value is
// observable from the host output and does not belong to the proof.
func (c *TxoutContainer) Deconstruct() (*Proof, chainhash.Hash) {
	return c.ScriptContainer.Deconstruct()
}

// Proof forwards to the nested script container.
func (c *TxoutContainer) Proof() *Proof {
	return c.ScriptContainer.Proof()
}

// EmbedCommit embeds a commitment to msg into the nested script container
// and reassembles the full transaction output around the resulting
// script-pubkey.
func (c *TxoutContainer) EmbedCommit(msg []byte) (*TxoutCommitment, error) {
	commitment, err := c.ScriptContainer.EmbedCommit(msg)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = c.ScriptContainer.TweakingFactor

	return &TxoutCommitment{
		TxOut: wire.NewTxOut(c.Value, commitment.PkScript),
	}, nil
}

// TxoutCommitment is a transaction output containing an embedded commitment.
type TxoutCommitment struct {
	// TxOut is the full transaction output.
	TxOut *wire.TxOut
}

// Equal reports whether two transaction output commitments are identical.
func (c *TxoutCommitment) Equal(other *TxoutCommitment) bool {
	return c.TxOut.Value == other.TxOut.Value &&
		string(c.TxOut.PkScript) == string(other.TxOut.PkScript)
}
