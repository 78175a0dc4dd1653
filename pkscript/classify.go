// Package pkscript deals with the transaction output side of deterministic
// bitcoin commitments: classifying an existing script-pubkey into a compact
// descriptor and rendering keys or scripts back into a script-pubkey using
// one of the four encoding categories (bare, hashed, segwit, nested).
package pkscript

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"
)

var (
	// ErrMalformedScript is returned when a script-pubkey cannot be
	// tokenized at all, which means it cannot host any commitment.
	ErrMalformedScript = errors.New("malformed script-pubkey")
)

// Class is the coarse script category recognized by Classify. It mirrors the
// compact output descriptor set: anything that is not one of the standard
// single-key or hash based templates falls back to ClassBare.
type Class uint8

const (
	// ClassBare is an arbitrary bare script, including OP_RETURN outputs.
	ClassBare Class = iota

	// ClassPubKey is a bare public key push followed by OP_CHECKSIG.
	ClassPubKey

	// ClassPubKeyHash is a pay-to-pubkey-hash template.
	ClassPubKeyHash

	// ClassScriptHash is a pay-to-script-hash template.
	ClassScriptHash

	// ClassWitnessPubKeyHash is a version 0 witness program with a
	// 20-byte key hash.
	ClassWitnessPubKeyHash

	// ClassWitnessScriptHash is a version 0 witness program with a
	// 32-byte script hash.
	ClassWitnessScriptHash

	// ClassTaproot is a version 1 witness program with a 32-byte x-only
	// output key.
	ClassTaproot
)

// String returns a human-readable name of the script class.
func (c Class) String() string {
	switch c {
	case ClassBare:
		return "Bare"
	case ClassPubKey:
		return "PubKey"
	case ClassPubKeyHash:
		return "PubKeyHash"
	case ClassScriptHash:
		return "ScriptHash"
	case ClassWitnessPubKeyHash:
		return "WitnessPubKeyHash"
	case ClassWitnessScriptHash:
		return "WitnessScriptHash"
	case ClassTaproot:
		return "Taproot"
	default:
		return fmt.Sprintf("UnknownClass(%d)", c)
	}
}

// Descriptor is the result of classifying a script-pubkey: the recognized
// class together with the payload relevant for it. The payload holds the
// serialized public key for ClassPubKey, the 20-byte hash for the hash based
// classes, the 32-byte program for witness classes and the full script for
// ClassBare.
type Descriptor struct {
	// Class is the recognized script category.
	Class Class

	// Payload is the class-specific script payload.
	Payload []byte
}

// IsOpReturn reports whether a bare descriptor is an OP_RETURN output.
func (d *Descriptor) IsOpReturn() bool {
	return d.Class == ClassBare && len(d.Payload) > 0 &&
		d.Payload[0] == txscript.OP_RETURN
}

// Classify maps a raw script-pubkey to its compact descriptor. Scripts that
// do not parse fail with ErrMalformedScript; scripts that parse but match no
// standard template are classified as ClassBare with the whole script as the
// payload.
func Classify(pkScript []byte) (*Descriptor, error) {
	// Any script hosting a commitment must at least tokenize; scripts
	// with truncated pushes cannot be matched against re-rendered
	// candidates later on.
	tokenizer := txscript.MakeScriptTokenizer(0, pkScript)
	for tokenizer.Next() {
	}
	if err := tokenizer.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedScript, err)
	}

	switch {
	case txscript.IsPayToScriptHash(pkScript):
		return &Descriptor{
			Class:   ClassScriptHash,
			Payload: pkScript[2:22],
		}, nil

	case txscript.IsPayToWitnessPubKeyHash(pkScript):
		return &Descriptor{
			Class:   ClassWitnessPubKeyHash,
			Payload: pkScript[2:22],
		}, nil

	case txscript.IsPayToWitnessScriptHash(pkScript):
		return &Descriptor{
			Class:   ClassWitnessScriptHash,
			Payload: pkScript[2:34],
		}, nil

	case txscript.IsPayToTaproot(pkScript):
		return &Descriptor{
			Class:   ClassTaproot,
			Payload: pkScript[2:34],
		}, nil

	case isPayToPubKey(pkScript):
		return &Descriptor{
			Class:   ClassPubKey,
			Payload: pkScript[1 : len(pkScript)-1],
		}, nil

	case isPayToPubKeyHash(pkScript):
		return &Descriptor{
			Class:   ClassPubKeyHash,
			Payload: pkScript[3:23],
		}, nil

	default:
		return &Descriptor{
			Class:   ClassBare,
			Payload: pkScript,
		}, nil
	}
}

// isPayToPubKey matches the two P2PK templates: a compressed or an
// uncompressed key push followed by OP_CHECKSIG.
func isPayToPubKey(pkScript []byte) bool {
	switch {
	case len(pkScript) == 35 &&
		pkScript[0] == txscript.OP_DATA_33 &&
		pkScript[34] == txscript.OP_CHECKSIG &&
		(pkScript[1] == 0x02 || pkScript[1] == 0x03):

		_, err := btcec.ParsePubKey(pkScript[1:34])
		return err == nil

	case len(pkScript) == 67 &&
		pkScript[0] == txscript.OP_DATA_65 &&
		pkScript[66] == txscript.OP_CHECKSIG &&
		pkScript[1] == 0x04:

		_, err := btcec.ParsePubKey(pkScript[1:66])
		return err == nil

	default:
		return false
	}
}

// isPayToPubKeyHash matches the canonical 25-byte P2PKH template.
func isPayToPubKeyHash(pkScript []byte) bool {
	return len(pkScript) == 25 &&
		pkScript[0] == txscript.OP_DUP &&
		pkScript[1] == txscript.OP_HASH160 &&
		pkScript[2] == txscript.OP_DATA_20 &&
		pkScript[23] == txscript.OP_EQUALVERIFY &&
		pkScript[24] == txscript.OP_CHECKSIG
}
