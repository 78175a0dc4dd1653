package lnpbp1

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/exp/slices"
)

// Keyset is a deterministically ordered set of secp256k1 public keys. Keys
// are unique by value and kept sorted lexicographically on their compressed
// serialization, so the elliptic curve sum computed over the set does not
// depend on insertion order.
type Keyset struct {
	keys []*btcec.PublicKey
}

// NewKeyset creates a new key set from the given public keys. Duplicate keys
// are collapsed into a single entry.
func NewKeyset(keys ...*btcec.PublicKey) *Keyset {
	set := &Keyset{
		keys: make([]*btcec.PublicKey, 0, len(keys)),
	}
	for _, key := range keys {
		set.Insert(key)
	}

	return set
}

// Insert adds a public key to the set, reporting whether the set grew. The
// canonical ordering is restored after every insertion.
func (s *Keyset) Insert(key *btcec.PublicKey) bool {
	if s.Contains(key) {
		return false
	}

	s.keys = append(s.keys, key)
	slices.SortFunc(s.keys, func(a, b *btcec.PublicKey) bool {
		return bytes.Compare(
			a.SerializeCompressed(), b.SerializeCompressed(),
		) < 0
	})

	return true
}

// Remove deletes a public key from the set, reporting whether the key was
// present.
func (s *Keyset) Remove(key *btcec.PublicKey) bool {
	for i, member := range s.keys {
		if member.IsEqual(key) {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return true
		}
	}

	return false
}

// Contains reports whether the given public key is a member of the set.
func (s *Keyset) Contains(key *btcec.PublicKey) bool {
	for _, member := range s.keys {
		if member.IsEqual(key) {
			return true
		}
	}

	return false
}

// Size returns the number of keys in the set.
func (s *Keyset) Size() int {
	return len(s.keys)
}

// Keys returns the members of the set in canonical order. The returned slice
// is a copy and can be modified freely by the caller.
func (s *Keyset) Keys() []*btcec.PublicKey {
	keys := make([]*btcec.PublicKey, len(s.keys))
	copy(keys, s.keys)

	return keys
}

// Copy returns an independent copy of the key set. Public keys themselves are
// immutable, so the members are shared between the two sets.
func (s *Keyset) Copy() *Keyset {
	return &Keyset{keys: s.Keys()}
}

// Equal reports whether two key sets have identical members.
func (s *Keyset) Equal(other *Keyset) bool {
	if len(s.keys) != len(other.keys) {
		return false
	}
	for i, key := range s.keys {
		if !key.IsEqual(other.keys[i]) {
			return false
		}
	}

	return true
}
