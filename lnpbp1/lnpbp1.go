// Package lnpbp1 implements the LNPBP-1 elliptic curve public key tweaking
// procedure used to create deterministic, collision-resistant cryptographic
// commitments that are indistinguishable from ordinary public keys.
//
// The commitment is bound to the sum of all public keys in a keyset, not to a
// single key, so cooperative multi-party outputs can carry a commitment that
// any single party is unable to forge. A single-key set degenerates to the
// plain single-key commitment.
//
// See https://github.com/LNP-BP/LNPBPs/blob/master/lnpbp-0001.md for the
// standard this package must stay bit-exact with.
package lnpbp1

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// HashedTag is the single SHA256 hash of the ASCII string "LNPBP1". It
// prefixes the data of every HMAC computed by Commit, binding all
// commitments, across all protocols, to this specific scheme.
var HashedTag = [32]byte{
	245, 8, 242, 142, 252, 192, 113, 82, 108, 168, 134, 200, 224, 124,
	105, 212, 149, 78, 46, 201, 252, 82, 171, 140, 204, 209, 41, 17, 12,
	0, 64, 175,
}

var (
	// ErrNotKeysetMember is returned when the target public key is not a
	// member of the keyset provided to Commit.
	ErrNotKeysetMember = errors.New(
		"target public key is not a keyset member",
	)

	// ErrSumInfiniteResult is returned when summation of the keyset
	// produces the point at infinity, which happens when the set was
	// deliberately crafted so that some keys negate the others.
	ErrSumInfiniteResult = errors.New(
		"keyset summation produced point at infinity",
	)

	// ErrInvalidTweak is returned when the derived tweaking factor is
	// outside the secp256k1 group order, or when adding it to the target
	// public key produces the point at infinity. Both events have
	// negligible probability but still must be rejected.
	ErrInvalidTweak = errors.New(
		"tweaking factor is invalid for the target public key",
	)
)

// TweakFactor is the HMAC-SHA256 output that Commit adds to the target public
// key, interpreted as a scalar on the secp256k1 group.
type TweakFactor [32]byte

// Commit performs the LNPBP-1 commitment procedure, embedding a commitment to
// msg into the target public key.
//
// The target key must be a member of keyset. The procedure removes it from
// the set, computes the elliptic curve sum of the target and all remaining
// members, derives the tweaking factor as
//
//	HMAC-SHA256(key=sum, data=HashedTag || protocolTag || SHA256(msg))
//
// and adds the factor (times the generator) to the target key. The tweaked
// key replaces the original one in the keyset. Message hashing happens here;
// callers must not pre-hash msg.
//
// On success the tweaked public key and the tweaking factor are returned. On
// failure the keyset may have been partially mutated and must be discarded
// together with the target key.
func Commit(keyset *Keyset, targetPubKey *btcec.PublicKey,
	protocolTag *chainhash.Hash,
	msg []byte) (*btcec.PublicKey, TweakFactor, error) {

	var factor TweakFactor

	if !keyset.Remove(targetPubKey) {
		return nil, factor, ErrNotKeysetMember
	}

	// We commit to the sum of all public keys, not a single pubkey. For a
	// single key the set is represented by the key itself.
	pubKeySum := targetPubKey
	for _, pubKey := range keyset.Keys() {
		var err error
		pubKeySum, err = addPoints(pubKeySum, pubKey)
		if err != nil {
			return nil, factor, ErrSumInfiniteResult
		}
	}

	// The HMAC is keyed with the compressed serialization of the key sum.
	// The hashed data starts with the fixed scheme tag, continues with the
	// protocol-specific tag of the calling standard and ends with a single
	// SHA256 of the message.
	mac := hmac.New(sha256.New, pubKeySum.SerializeCompressed())
	mac.Write(HashedTag[:])
	mac.Write(protocolTag[:])
	msgDigest := sha256.Sum256(msg)
	mac.Write(msgDigest[:])
	copy(factor[:], mac.Sum(nil))

	tweakedPubKey, err := addTweak(targetPubKey, factor)
	if err != nil {
		return nil, factor, err
	}

	keyset.Insert(tweakedPubKey)

	return tweakedPubKey, factor, nil
}

// Verify checks a commitment created with Commit by re-running the commitment
// procedure on a copy of the original keyset and comparing the produced
// tweaked key against verifiedPubKey.
//
// A failure of the inner commitment procedure means the commitment could not
// have been produced from the given inputs, so it is reported as a plain
// false and never as an error.
func Verify(verifiedPubKey *btcec.PublicKey, originalKeyset *Keyset,
	targetPubKey *btcec.PublicKey, protocolTag *chainhash.Hash,
	msg []byte) bool {

	tweakedPubKey, _, err := Commit(
		originalKeyset.Copy(), targetPubKey, protocolTag, msg,
	)
	if err != nil {
		return false
	}

	return tweakedPubKey.IsEqual(verifiedPubKey)
}

// addPoints returns the elliptic curve sum a + b, failing if the result is
// the point at infinity.
func addPoints(a, b *btcec.PublicKey) (*btcec.PublicKey, error) {
	var pointA, pointB, sum btcec.JacobianPoint
	a.AsJacobian(&pointA)
	b.AsJacobian(&pointB)
	btcec.AddNonConst(&pointA, &pointB, &sum)

	if sum.Z.IsZero() {
		return nil, ErrSumInfiniteResult
	}
	sum.ToAffine()

	return btcec.NewPublicKey(&sum.X, &sum.Y), nil
}

// addTweak returns pubKey + factor*G, failing with ErrInvalidTweak if the
// factor overflows the group order or the result is the point at infinity.
func addTweak(pubKey *btcec.PublicKey, factor TweakFactor) (*btcec.PublicKey,
	error) {

	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(factor[:]); overflow {
		return nil, ErrInvalidTweak
	}

	var tweakPoint, point, result btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(&scalar, &tweakPoint)
	pubKey.AsJacobian(&point)
	btcec.AddNonConst(&point, &tweakPoint, &result)

	if result.Z.IsZero() {
		return nil, ErrInvalidTweak
	}
	result.ToAffine()

	return btcec.NewPublicKey(&result.X, &result.Y), nil
}
