package dbc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/lnp-bp/go-dbc/lnpbp1"
	"github.com/lnp-bp/go-dbc/pkscript"
)

// SpkContainer is the working state of a script-pubkey commitment. It binds
// together the original public key, the source data describing how the
// script-pubkey is built and the resolved encoding method. The method is
// never persisted: verifiers recover it from the proof and the observed host
// script via ReconstructSpkContainer.
type SpkContainer struct {
	// PubKey is the original public key hosting the commitment.
	PubKey *btcec.PublicKey

	// Method is the output encoding style of the host script-pubkey.
	Method ScriptEncodeMethod

	// Source describes how the script-pubkey is built.
	Source ScriptEncodeData

	// Tag is the single SHA256 hash of the protocol-specific tag.
	Tag chainhash.Hash

	// TweakingFactor is copied up from the nested commitment layer by
	// EmbedCommit, so the outer container alone is enough to audit the
	// commitment.
	TweakingFactor *lnpbp1.TweakFactor
}

// NewSpkContainer assembles a script-pubkey container for a fresh commitment.
func NewSpkContainer(pubKey *btcec.PublicKey, source ScriptEncodeData,
	method ScriptEncodeMethod, tag chainhash.Hash) *SpkContainer {

	return &SpkContainer{
		PubKey: pubKey,
		Method: method,
		Source: source,
		Tag:    tag,
	}
}

// ReconstructSpkContainer rebuilds a script-pubkey container from a proof,
// the protocol tag and the observed host script-pubkey. The host script is
// classified into a coarse category, P2SH outputs are disambiguated by
// re-rendering the candidate forms from the proof and matching byte for byte,
// and bare outputs are split into OP_RETURN and arbitrary bare scripts. The
// resolved method is finally cross-checked against the proof's source
// variant.
func ReconstructSpkContainer(proof *Proof, tag chainhash.Hash,
	hostScript []byte) (*SpkContainer, error) {

	descriptor, err := pkscript.Classify(hostScript)
	if err != nil {
		return nil, err
	}

	var lockScript []byte
	if proof.Source.Type == SourceLockScript {
		lockScript = proof.Source.LockScript
	}

	proofCopy := proof.Copy()

	var method ScriptEncodeMethod
	switch descriptor.Class {
	case pkscript.ClassScriptHash:
		method, err = resolveScriptHash(
			hostScript, lockScript, proof.PubKey,
		)
		if err != nil {
			return nil, err
		}

	case pkscript.ClassBare:
		if descriptor.IsOpReturn() {
			method = MethodOpReturn
			break
		}

		// An arbitrary bare script is re-tagged as a lock script
		// source. When the proof does not carry the script itself,
		// the observed host bytes are the script the commitment
		// lives in. The bytes are copied so the container does not
		// alias the caller's host script buffer.
		method = MethodBare
		if proofCopy.Source.Type != SourceLockScript {
			proofCopy.Source = LockScriptSource(
				descriptor.Payload,
			).Copy()
		}

	case pkscript.ClassPubKey:
		method = MethodPublicKey

	case pkscript.ClassPubKeyHash:
		method = MethodPubkeyHash

	case pkscript.ClassWitnessPubKeyHash:
		method = MethodWPubkeyHash

	case pkscript.ClassWitnessScriptHash:
		method = MethodWScriptHash

	case pkscript.ClassTaproot:
		method = MethodTaproot

	default:
		return nil, ErrInvalidProofStructure
	}

	// Each resolved method admits exactly one source variant.
	if sourceTypeForMethod(method) != proofCopy.Source.Type {
		return nil, ErrInvalidProofStructure
	}

	return &SpkContainer{
		PubKey: proofCopy.PubKey,
		Method: method,
		Source: proofCopy.Source,
		Tag:    tag,
	}, nil
}

// resolveScriptHash disambiguates a P2SH host script between the three
// methods that render into it, by re-computing the candidate script-pubkeys
// from the proof data and matching against the host bytes.
func resolveScriptHash(hostScript, lockScript []byte,
	pubKey *btcec.PublicKey) (ScriptEncodeMethod, error) {

	if lockScript != nil {
		hashed, err := pkscript.FromLockScript(
			lockScript, pkscript.CategoryHashed,
		)
		if err != nil {
			return 0, err
		}
		if bytes.Equal(hashed, hostScript) {
			return MethodScriptHash, nil
		}

		nested, err := pkscript.FromLockScript(
			lockScript, pkscript.CategoryNested,
		)
		if err != nil {
			return 0, err
		}
		if bytes.Equal(nested, hostScript) {
			return MethodShWScriptHash, nil
		}

		return 0, ErrInvalidProofStructure
	}

	nested, err := pkscript.FromPubKey(pubKey, pkscript.CategoryNested)
	if err != nil {
		return 0, err
	}
	if bytes.Equal(nested, hostScript) {
		return MethodShWPubkeyHash, nil
	}

	return 0, ErrInvalidProofStructure
}

// sourceTypeForMethod returns the single source variant that is legal for
// the given script encoding method.
func sourceTypeForMethod(method ScriptEncodeMethod) ScriptSourceType {
	switch method {
	case MethodBare, MethodScriptHash, MethodWScriptHash,
		MethodShWScriptHash:

		return SourceLockScript

	case MethodTaproot:
		return SourceTaproot

	default:
		return SourceSinglePubkey
	}
}

// Clone returns an independent copy of the container.
func (c *SpkContainer) Clone() *SpkContainer {
	containerCopy := *c
	containerCopy.Source = c.Source.Copy()

	return &containerCopy
}

// Deconstruct splits the container into its proof and the protocol tag.
func (c *SpkContainer) Deconstruct() (*Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

// Proof returns the minimal witness of the commitment. The encoding method
// is deliberately left out: it is recoverable from the proof and the host
// script.
func (c *SpkContainer) Proof() *Proof {
	return NewProof(c.PubKey, c.Source.Copy())
}

// EmbedCommit embeds a commitment to msg by dispatching on the source
// variant to the lockscript, taproot or pubkey layer, then renders the
// nested commitment into a script-pubkey using the category implied by the
// container's method. The nested layer's tweaking factor is copied up into
// this container.
func (c *SpkContainer) EmbedCommit(msg []byte) (*SpkCommitment, error) {
	var (
		script []byte
		err    error
	)

	switch c.Source.Type {
	case SourceLockScript:
		script, err = c.embedLockScript(msg)

	case SourceTaproot:
		script, err = c.embedTaproot(msg)

	case SourceSinglePubkey:
		script, err = c.embedPubKey(msg)

	default:
		return nil, ErrInvalidProofStructure
	}
	if err != nil {
		return nil, err
	}

	return &SpkCommitment{PkScript: script}, nil
}

func (c *SpkContainer) embedLockScript(msg []byte) ([]byte, error) {
	lockscriptContainer := &LockscriptContainer{
		Script: c.Source.LockScript,
		PubKey: c.PubKey,
		Tag:    c.Tag,
	}
	commitment, err := lockscriptContainer.EmbedCommit(msg)
	if err != nil {
		return nil, err
	}
	c.TweakingFactor = lockscriptContainer.TweakingFactor

	var category pkscript.Category
	switch c.Method {
	case MethodBare:
		category = pkscript.CategoryBare
	case MethodScriptHash:
		category = pkscript.CategoryHashed
	case MethodWScriptHash:
		category = pkscript.CategorySegWit
	case MethodShWScriptHash:
		category = pkscript.CategoryNested
	default:
		return nil, ErrInvalidProofStructure
	}

	return pkscript.FromLockScript(commitment.Script, category)
}

func (c *SpkContainer) embedTaproot(msg []byte) ([]byte, error) {
	if c.Method != MethodTaproot {
		return nil, ErrInvalidProofStructure
	}

	taprootContainer := &TaprootContainer{
		ScriptRoot:      c.Source.TaprootRoot,
		IntermediateKey: c.PubKey,
		Tag:             c.Tag,
	}
	if _, err := taprootContainer.EmbedCommit(msg); err != nil {
		return nil, err
	}
	c.TweakingFactor = taprootContainer.TweakingFactor

	// The commitment itself succeeded, but there is no standardized way
	// yet to assemble the final taproot script-pubkey from the tweaked
	// intermediate key and the script root.
	return nil, ErrTaprootUnsupported
}

func (c *SpkContainer) embedPubKey(msg []byte) ([]byte, error) {
	pubkeyContainer := &PubkeyContainer{
		PubKey: c.PubKey,
		Tag:    c.Tag,
	}
	commitment, err := pubkeyContainer.EmbedCommit(msg)
	if err != nil {
		return nil, err
	}
	c.TweakingFactor = pubkeyContainer.TweakingFactor

	switch c.Method {
	case MethodPublicKey:
		return pkscript.FromPubKey(
			commitment.PubKey, pkscript.CategoryBare,
		)

	case MethodPubkeyHash:
		return pkscript.FromPubKey(
			commitment.PubKey, pkscript.CategoryHashed,
		)

	case MethodWPubkeyHash:
		return pkscript.FromPubKey(
			commitment.PubKey, pkscript.CategorySegWit,
		)

	case MethodShWPubkeyHash:
		return pkscript.FromPubKey(
			commitment.PubKey, pkscript.CategoryNested,
		)

	case MethodOpReturn:
		serialized := commitment.PubKey.SerializeCompressed()
		if serialized[0] != 0x02 {
			return nil, ErrInvalidOpReturnKey
		}
		return txscript.NullDataScript(serialized)

	default:
		return nil, ErrInvalidProofStructure
	}
}

// SpkCommitment is a script-pubkey containing an embedded commitment.
type SpkCommitment struct {
	// PkScript is the rendered script-pubkey.
	PkScript []byte
}

// Equal reports whether two script-pubkey commitments are identical.
func (c *SpkCommitment) Equal(other *SpkCommitment) bool {
	return bytes.Equal(c.PkScript, other.PkScript)
}
