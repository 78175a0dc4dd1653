package dbc

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/lnp-bp/go-dbc/lnpbp1"
)

// LockscriptContainer is the working state of a commitment embedded into an
// arbitrary lock script rather than a bare key. The keyset of the commitment
// consists of all compressed public keys appearing in the script, and the
// target key must be one of them; after the tweak, the tweaked key replaces
// the original everywhere it appears in the script.
//
// Only compressed keys participate. Uncompressed key pushes are left alone,
// exactly as any other script data.
type LockscriptContainer struct {
	// Script is the original lock script.
	Script []byte

	// PubKey is the target key inside the script that hosts the
	// commitment.
	PubKey *btcec.PublicKey

	// Tag is the single SHA256 hash of the protocol-specific tag.
	Tag chainhash.Hash

	// TweakingFactor is recorded by EmbedCommit after a successful
	// commitment, nil before.
	TweakingFactor *lnpbp1.TweakFactor
}

// ReconstructLockscriptContainer rebuilds a lockscript container from a proof
// and the protocol tag. The proof must carry the lock script source variant.
func ReconstructLockscriptContainer(proof *Proof,
	tag chainhash.Hash) (*LockscriptContainer, error) {

	if proof.Source.Type != SourceLockScript {
		return nil, ErrInvalidProofStructure
	}

	return &LockscriptContainer{
		Script: proof.Source.LockScript,
		PubKey: proof.PubKey,
		Tag:    tag,
	}, nil
}

// Clone returns an independent copy of the container.
func (c *LockscriptContainer) Clone() *LockscriptContainer {
	containerCopy := *c
	containerCopy.Script = make([]byte, len(c.Script))
	copy(containerCopy.Script, c.Script)

	return &containerCopy
}

// Deconstruct splits the container into its proof and the protocol tag.
func (c *LockscriptContainer) Deconstruct() (*Proof, chainhash.Hash) {
	return c.Proof(), c.Tag
}

// Proof returns the minimal witness of the commitment: the target key and
// the full original script.
func (c *LockscriptContainer) Proof() *Proof {
	return NewProof(c.PubKey, LockScriptSource(c.Script))
}

// EmbedCommit embeds a commitment to msg into the script's target key. The
// keyset consists of every compressed public key found in the script; the
// tweak engine enforces that the target is among them.
func (c *LockscriptContainer) EmbedCommit(msg []byte) (*LockscriptCommitment,
	error) {

	scriptKeys, err := extractScriptKeys(c.Script)
	if err != nil {
		return nil, err
	}
	keyset := lnpbp1.NewKeyset(scriptKeys...)

	tweakedPubKey, factor, err := lnpbp1.Commit(
		keyset, c.PubKey, &c.Tag, msg,
	)
	if err != nil {
		return nil, err
	}

	script, err := replaceScriptKey(c.Script, c.PubKey, tweakedPubKey)
	if err != nil {
		return nil, err
	}

	c.TweakingFactor = &factor

	return &LockscriptCommitment{Script: script}, nil
}

// LockscriptCommitment is a lock script whose target key was tweaked with a
// message commitment.
type LockscriptCommitment struct {
	// Script is the lock script with the tweaked key spliced in.
	Script []byte
}

// Equal reports whether two lockscript commitments are identical.
func (c *LockscriptCommitment) Equal(other *LockscriptCommitment) bool {
	return string(c.Script) == string(other.Script)
}

// extractScriptKeys collects every valid compressed public key pushed by the
// script, in script order.
func extractScriptKeys(script []byte) ([]*btcec.PublicKey, error) {
	var keys []*btcec.PublicKey

	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		data := tokenizer.Data()
		if len(data) != btcec.PubKeyBytesLenCompressed {
			continue
		}
		if data[0] != 0x02 && data[0] != 0x03 {
			continue
		}

		pubKey, err := btcec.ParsePubKey(data)
		if err != nil {
			// A 33-byte push with a key-like prefix that is not a
			// valid curve point is ordinary script data.
			continue
		}
		keys = append(keys, pubKey)
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}

	return keys, nil
}

// replaceScriptKey rebuilds the script with every push of the original key
// replaced by the tweaked key. Non-push opcodes and unrelated data pushes are
// carried over unchanged.
func replaceScriptKey(script []byte, original,
	tweaked *btcec.PublicKey) ([]byte, error) {

	originalBytes := original.SerializeCompressed()
	builder := txscript.NewScriptBuilder()

	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		data := tokenizer.Data()
		switch {
		case data == nil:
			builder.AddOp(tokenizer.Opcode())

		case string(data) == string(originalBytes):
			builder.AddData(tweaked.SerializeCompressed())

		default:
			builder.AddData(data)
		}
	}
	if err := tokenizer.Err(); err != nil {
		return nil, err
	}

	return builder.Script()
}
