package dbc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/tlv"
)

// ScriptSourceType is the tag distinguishing how the script-pubkey hosting a
// commitment was built from the proof data.
type ScriptSourceType uint8

const (
	// SourceSinglePubkey marks outputs built from a single public key.
	// The original key is already part of the proof, so no extra payload
	// is needed.
	SourceSinglePubkey ScriptSourceType = 0

	// SourceLockScript marks outputs built from a script. The full
	// original script must be kept, since the output may still be unspent
	// at verification time and the script is not otherwise recoverable.
	SourceLockScript ScriptSourceType = 1

	// SourceTaproot marks taproot outputs. Only the merkle root of the
	// tapscript tree is kept.
	SourceTaproot ScriptSourceType = 2
)

// String returns a human-readable name of the script source type.
func (t ScriptSourceType) String() string {
	switch t {
	case SourceSinglePubkey:
		return "SinglePubkey"
	case SourceLockScript:
		return "LockScript"
	case SourceTaproot:
		return "Taproot"
	default:
		return fmt.Sprintf("UnknownSourceType(%d)", t)
	}
}

// ScriptEncodeData is the tagged payload distinguishing how a script-pubkey
// was built. Exactly one variant is consistent with any given
// ScriptEncodeMethod.
type ScriptEncodeData struct {
	// Type selects the variant.
	Type ScriptSourceType

	// LockScript is the original script. Set only for SourceLockScript.
	LockScript []byte

	// TaprootRoot is the merkle root of the tapscript tree. Set only for
	// SourceTaproot.
	TaprootRoot chainhash.Hash
}

// SinglePubkeySource returns the source data of a single-pubkey output.
func SinglePubkeySource() ScriptEncodeData {
	return ScriptEncodeData{Type: SourceSinglePubkey}
}

// LockScriptSource returns the source data of a script based output.
func LockScriptSource(lockScript []byte) ScriptEncodeData {
	return ScriptEncodeData{
		Type:       SourceLockScript,
		LockScript: lockScript,
	}
}

// TaprootSource returns the source data of a taproot output.
func TaprootSource(scriptRoot chainhash.Hash) ScriptEncodeData {
	return ScriptEncodeData{
		Type:        SourceTaproot,
		TaprootRoot: scriptRoot,
	}
}

// Copy returns an independent copy of the source data.
func (d ScriptEncodeData) Copy() ScriptEncodeData {
	dataCopy := d
	if d.LockScript != nil {
		dataCopy.LockScript = make([]byte, len(d.LockScript))
		copy(dataCopy.LockScript, d.LockScript)
	}

	return dataCopy
}

// Equal reports whether two source data values are identical.
func (d ScriptEncodeData) Equal(other ScriptEncodeData) bool {
	return d.Type == other.Type &&
		bytes.Equal(d.LockScript, other.LockScript) &&
		d.TaprootRoot == other.TaprootRoot
}

// ScriptEncodeMethod is the closed enumeration of output encoding styles a
// commitment can be embedded into. The method determines both which source
// variant is legal and how the final script-pubkey is constructed. It is
// deliberately not part of the proof: it can be recovered from the proof and
// the host script-pubkey, and client-validated data should stay minimal.
type ScriptEncodeMethod uint8

const (
	// MethodPublicKey renders a bare P2PK script.
	MethodPublicKey ScriptEncodeMethod = iota

	// MethodPubkeyHash renders a P2PKH script.
	MethodPubkeyHash

	// MethodScriptHash renders a P2SH script.
	MethodScriptHash

	// MethodWPubkeyHash renders a P2WPKH witness program.
	MethodWPubkeyHash

	// MethodWScriptHash renders a P2WSH witness program.
	MethodWScriptHash

	// MethodShWPubkeyHash renders a P2WPKH program nested in P2SH.
	MethodShWPubkeyHash

	// MethodShWScriptHash renders a P2WSH program nested in P2SH.
	MethodShWScriptHash

	// MethodTaproot renders a taproot output.
	MethodTaproot

	// MethodOpReturn renders an OP_RETURN push of the tweaked public key.
	MethodOpReturn

	// MethodBare renders the lock script directly as the script-pubkey.
	MethodBare
)

// String returns a human-readable name of the script encoding method.
func (m ScriptEncodeMethod) String() string {
	switch m {
	case MethodPublicKey:
		return "PublicKey"
	case MethodPubkeyHash:
		return "PubkeyHash"
	case MethodScriptHash:
		return "ScriptHash"
	case MethodWPubkeyHash:
		return "WPubkeyHash"
	case MethodWScriptHash:
		return "WScriptHash"
	case MethodShWPubkeyHash:
		return "ShWPubkeyHash"
	case MethodShWScriptHash:
		return "ShWScriptHash"
	case MethodTaproot:
		return "Taproot"
	case MethodOpReturn:
		return "OpReturn"
	case MethodBare:
		return "Bare"
	default:
		return fmt.Sprintf("UnknownMethod(%d)", m)
	}
}

// Proof is the minimal reconstructable witness of a commitment: the original
// untweaked public key together with the script encoding source data. Given a
// proof and the externally observed host object, a verifier can rebuild the
// exact container the committer used.
type Proof struct {
	// PubKey is the original public key before the tweak was applied.
	PubKey *btcec.PublicKey

	// Source describes how the host script-pubkey was built.
	Source ScriptEncodeData
}

// NewProof creates a proof from an original public key and source data.
func NewProof(pubKey *btcec.PublicKey, source ScriptEncodeData) *Proof {
	return &Proof{
		PubKey: pubKey,
		Source: source,
	}
}

// Copy returns an independent copy of the proof.
func (p *Proof) Copy() *Proof {
	return &Proof{
		PubKey: p.PubKey,
		Source: p.Source.Copy(),
	}
}

// Equal reports whether two proofs are identical.
func (p *Proof) Equal(other *Proof) bool {
	return p.PubKey.IsEqual(other.PubKey) && p.Source.Equal(other.Source)
}

// Encode serializes the proof as a TLV stream.
func (p *Proof) Encode(w io.Writer) error {
	records := []tlv.Record{
		ProofPubKeyRecord(&p.PubKey),
		ProofSourceRecord(&p.Source),
	}
	stream, err := tlv.NewStream(records...)
	if err != nil {
		return err
	}

	return stream.Encode(w)
}

// Decode deserializes the proof from a TLV stream.
func (p *Proof) Decode(r io.Reader) error {
	records := []tlv.Record{
		ProofPubKeyRecord(&p.PubKey),
		ProofSourceRecord(&p.Source),
	}
	stream, err := tlv.NewStream(records...)
	if err != nil {
		return err
	}

	return stream.Decode(r)
}
