package dbc

import (
	"bytes"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/tlv"
)

// ScriptEncodeDataEncoder encodes a ScriptEncodeData as a nested TLV stream.
// The variant tag is always present; the payload record is included only for
// the variant that carries one.
func ScriptEncodeDataEncoder(w io.Writer, val any, buf *[8]byte) error {
	if t, ok := val.(*ScriptEncodeData); ok {
		sourceType := uint8(t.Type)
		records := []tlv.Record{
			tlv.MakePrimitiveRecord(SourceTypeType, &sourceType),
		}

		switch t.Type {
		case SourceLockScript:
			records = append(records, tlv.MakePrimitiveRecord(
				SourceLockScriptType, &t.LockScript,
			))

		case SourceTaproot:
			root := [32]byte(t.TaprootRoot)
			records = append(records, tlv.MakePrimitiveRecord(
				SourceTaprootRootType, &root,
			))
		}

		stream, err := tlv.NewStream(records...)
		if err != nil {
			return err
		}
		return stream.Encode(w)
	}
	return tlv.NewTypeForEncodingErr(val, "*dbc.ScriptEncodeData")
}

// ScriptEncodeDataDecoder decodes a ScriptEncodeData from a nested TLV
// stream, enforcing that the payload matches the variant tag.
func ScriptEncodeDataDecoder(r io.Reader, val any, buf *[8]byte,
	l uint64) error {

	if typ, ok := val.(*ScriptEncodeData); ok {
		var streamBytes []byte
		if err := tlv.DVarBytes(r, &streamBytes, buf, l); err != nil {
			return err
		}

		var (
			sourceType uint8
			lockScript []byte
			root       [32]byte
		)
		records := []tlv.Record{
			tlv.MakePrimitiveRecord(SourceTypeType, &sourceType),
			tlv.MakePrimitiveRecord(
				SourceLockScriptType, &lockScript,
			),
			tlv.MakePrimitiveRecord(SourceTaprootRootType, &root),
		}
		stream, err := tlv.NewStream(records...)
		if err != nil {
			return err
		}
		parsed, err := stream.DecodeWithParsedTypes(
			bytes.NewReader(streamBytes),
		)
		if err != nil {
			return err
		}

		_, hasLockScript := parsed[SourceLockScriptType]
		_, hasRoot := parsed[SourceTaprootRootType]

		source := ScriptEncodeData{Type: ScriptSourceType(sourceType)}
		switch source.Type {
		case SourceSinglePubkey:
			if hasLockScript || hasRoot {
				return ErrInvalidProofStructure
			}

		case SourceLockScript:
			if !hasLockScript || hasRoot {
				return ErrInvalidProofStructure
			}
			source.LockScript = lockScript

		case SourceTaproot:
			if hasLockScript || !hasRoot {
				return ErrInvalidProofStructure
			}
			source.TaprootRoot = chainhash.Hash(root)

		default:
			return ErrInvalidProofStructure
		}

		*typ = source
		return nil
	}
	return tlv.NewTypeForEncodingErr(val, "*dbc.ScriptEncodeData")
}
