package pkscript

import (
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
)

var (
	// ErrUnsupportedCategory is returned when a key or script cannot be
	// rendered with the requested encoding category.
	ErrUnsupportedCategory = errors.New(
		"unsupported script encoding category",
	)
)

// Category is the rendering style used to turn a public key or a lock script
// into a script-pubkey.
type Category uint8

const (
	// CategoryBare renders the source directly into the script-pubkey:
	// P2PK for keys, the script itself for lock scripts.
	CategoryBare Category = iota

	// CategoryHashed renders the hash of the source: P2PKH for keys,
	// P2SH for lock scripts.
	CategoryHashed

	// CategorySegWit renders a version 0 witness program: P2WPKH for
	// keys, P2WSH for lock scripts.
	CategorySegWit

	// CategoryNested renders the segwit form wrapped into P2SH for
	// backward compatibility: P2SH-P2WPKH for keys, P2SH-P2WSH for lock
	// scripts.
	CategoryNested
)

// FromPubKey renders a public key into a script-pubkey of the given category.
func FromPubKey(pubKey *btcec.PublicKey, category Category) ([]byte, error) {
	serialized := pubKey.SerializeCompressed()

	switch category {
	case CategoryBare:
		return txscript.NewScriptBuilder().
			AddData(serialized).
			AddOp(txscript.OP_CHECKSIG).
			Script()

	case CategoryHashed:
		return payToPubKeyHash(btcutil.Hash160(serialized))

	case CategorySegWit:
		return payToWitness(btcutil.Hash160(serialized))

	case CategoryNested:
		witnessProgram, err := payToWitness(
			btcutil.Hash160(serialized),
		)
		if err != nil {
			return nil, err
		}
		return payToScriptHash(btcutil.Hash160(witnessProgram))

	default:
		return nil, ErrUnsupportedCategory
	}
}

// FromLockScript renders a lock script into a script-pubkey of the given
// category.
func FromLockScript(lockScript []byte, category Category) ([]byte, error) {
	switch category {
	case CategoryBare:
		pkScript := make([]byte, len(lockScript))
		copy(pkScript, lockScript)
		return pkScript, nil

	case CategoryHashed:
		return payToScriptHash(btcutil.Hash160(lockScript))

	case CategorySegWit:
		scriptHash := sha256.Sum256(lockScript)
		return payToWitness(scriptHash[:])

	case CategoryNested:
		scriptHash := sha256.Sum256(lockScript)
		witnessProgram, err := payToWitness(scriptHash[:])
		if err != nil {
			return nil, err
		}
		return payToScriptHash(btcutil.Hash160(witnessProgram))

	default:
		return nil, ErrUnsupportedCategory
	}
}

func payToPubKeyHash(pubKeyHash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pubKeyHash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}

func payToScriptHash(scriptHash []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_HASH160).
		AddData(scriptHash).
		AddOp(txscript.OP_EQUAL).
		Script()
}

func payToWitness(program []byte) ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_0).
		AddData(program).
		Script()
}
