package test

import (
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
)

func RandPrivKey(t *testing.T) *btcec.PrivateKey {
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return privKey
}

func RandPubKey(t *testing.T) *btcec.PublicKey {
	return RandPrivKey(t).PubKey()
}

func RandBytes(num int) []byte {
	randBytes := make([]byte, num)
	_, _ = rand.Read(randBytes)
	return randBytes
}

// ParsePubKey parses a hex-encoded compressed public key.
func ParsePubKey(t *testing.T, keyHex string) *btcec.PublicKey {
	keyBytes, err := hex.DecodeString(keyHex)
	require.NoError(t, err)

	pubKey, err := btcec.ParsePubKey(keyBytes)
	require.NoError(t, err)

	return pubKey
}

// DeterministicPubKeys derives n public keys from fixed small secret keys, so
// tests exercising keyset behavior stay reproducible across runs.
func DeterministicPubKeys(t *testing.T, n int) []*btcec.PublicKey {
	keys := make([]*btcec.PublicKey, 0, n)
	var secret [32]byte

	for i := 1; i <= n; i++ {
		secret[0] = byte(i)
		secret[1] = byte(i >> 8)
		secret[2] = byte(i >> 16)

		privKey, pubKey := btcec.PrivKeyFromBytes(secret[:])
		require.NotNil(t, privKey)
		keys = append(keys, pubKey)
	}

	return keys
}

// Messages is a corpus of commitment messages that must all produce distinct
// commitments: empty and zero-byte messages, text with length extension and
// binary data that includes serialized public keys in both encodings.
func Messages(t *testing.T) [][]byte {
	fromHex := func(s string) []byte {
		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		return b
	}

	return [][]byte{
		[]byte(""),
		[]byte("\x00"),
		[]byte("test"),
		[]byte("test*"),
		fromHex("deadbeef"),
		fromHex("deadbeef00"),
		fromHex("00deadbeef"),
		[]byte("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d95" +
			"9f2815b16f81798"),
		fromHex("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d95" +
			"9f2815b16f81798"),
		fromHex("02f9308a019258c31049344f85f89d5229b531c845836f99b08" +
			"601f113bce036f9"),
	}
}
