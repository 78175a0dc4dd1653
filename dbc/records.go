package dbc

import (
	"bytes"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd/tlv"
)

const (
	// ProofPubKeyType is the TLV type of the original public key record.
	ProofPubKeyType tlv.Type = 0

	// ProofSourceType is the TLV type of the script source data record.
	ProofSourceType tlv.Type = 2

	// SourceTypeType is the TLV type of the source variant tag inside the
	// nested source stream.
	SourceTypeType tlv.Type = 0

	// SourceLockScriptType is the TLV type of the lock script payload
	// inside the nested source stream.
	SourceLockScriptType tlv.Type = 2

	// SourceTaprootRootType is the TLV type of the tapscript merkle root
	// payload inside the nested source stream.
	SourceTaprootRootType tlv.Type = 4
)

// ProofPubKeyRecord returns the TLV record of the original public key.
func ProofPubKeyRecord(pubKey **btcec.PublicKey) tlv.Record {
	return tlv.MakePrimitiveRecord(ProofPubKeyType, pubKey)
}

// ProofSourceRecord returns the TLV record of the script source data, encoded
// as a nested TLV stream.
func ProofSourceRecord(source *ScriptEncodeData) tlv.Record {
	sizeFunc := func() uint64 {
		var buf bytes.Buffer
		err := ScriptEncodeDataEncoder(&buf, source, &[8]byte{})
		if err != nil {
			panic(err)
		}
		return uint64(len(buf.Bytes()))
	}
	return tlv.MakeDynamicRecord(
		ProofSourceType, source, sizeFunc,
		ScriptEncodeDataEncoder, ScriptEncodeDataDecoder,
	)
}
