package txbuilder

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
)

// Sign signs every input with SigHashAllForkID.
func (b *Builder) Sign() error {
	return b.SignWithSigHash(SigHashAllForkID)
}

// SignWithSigHash signs every input with flag. Only SigHashAllForkID is implemented.
func (b *Builder) SignWithSigHash(flag SigHashType) error {
	if flag != SigHashAllForkID {
		return fmt.Errorf("sighash 0x%x: %w", uint32(flag), ErrUnsupportedSigHash)
	}
	hashes := b.sigHashes()
	for idx, in := range b.Inputs {
		preimage, err := b.preimage(idx, hashes, flag)
		if err != nil {
			return fmt.Errorf("input %d preimage: %w", idx, err)
		}
		sig := signatureBytes(in.Payment.Key, preimage, flag)
		pub := in.Payment.Key.PublicKeyBytes()

		if in.kind == inputP2PKH {
			in.Unlocking = script.NewBuilder().AddData(sig).AddData(pub).Bytes()
			continue
		}
		sb, err := b.stasUnlocking(idx, preimage, sig, pub, false)
		if err != nil {
			return fmt.Errorf("input %d unlocking script: %w", idx, err)
		}
		in.Unlocking = sb.Bytes()
	}
	return nil
}

func signatureBytes(key *model.PrivateKey, preimage []byte, flag SigHashType) []byte {
	sig := ecdsa.Sign(key.Key(), chainhash.DoubleHashB(preimage))
	return append(sig.Serialize(), byte(flag))
}

// stasUnlocking lays out a token unlocking script:
// per output <amount> <receiver> (or <note> for data outputs), funding <vout> <txid>,
// merge proof segments and count (or OP_0), then <preimage> <sig> <pubkey>.
func (b *Builder) stasUnlocking(idx int, preimage, sig, pub []byte, estimate bool) (*script.Builder, error) {
	sb := script.NewBuilder()
	for _, out := range b.Outputs {
		if out.Type == model.NullData {
			sb.AddData(nullDataNote(out.Script))
			continue
		}
		sb.AddNumber(int64(out.Satoshis))
		sb.AddData(out.Receiver)
	}

	switch {
	case b.funding >= 0:
		funding := b.Inputs[b.funding]
		sb.AddNumber(int64(funding.Payment.OutPoint.Vout))
		sb.AddData(funding.prevHash[:])
	case estimate:
		sb.AddNumber(0)
		sb.AddData(make([]byte, chainhash.HashSize))
	default:
		return nil, ErrNoFundingInput
	}

	if b.Inputs[idx].kind == inputMerge {
		segments, err := b.mergeProof(idx)
		if err != nil {
			return nil, err
		}
		for _, seg := range segments {
			sb.AddData(seg)
		}
		sb.AddNumber(int64(len(segments)))
	} else {
		sb.AddOpcode(script.OpFalse)
	}

	sb.AddData(preimage)
	sb.AddData(sig)
	sb.AddData(pub)
	return sb, nil
}

func nullDataNote(s []byte) []byte {
	if i := bytes.IndexByte(s, script.OpReturn); i >= 0 {
		return s[i+1:]
	}
	return s
}

// mergeProof splits the other merge input's source transaction around its
// locking script body and returns the pieces last first.
func (b *Builder) mergeProof(idx int) ([][]byte, error) {
	var other *Input
	for i, in := range b.Inputs {
		if i != idx && in.kind == inputMerge {
			other = in
			break
		}
	}
	if other == nil {
		return nil, fmt.Errorf("merge input %d has no counterpart", idx)
	}

	body := other.Payment.OutPoint.ScriptPubKey[script.P2STASBodyOffset:]
	pieces := bytes.Split(other.Payment.SourceTx, body)
	if len(pieces) < 2 {
		return nil, fmt.Errorf("source transaction of %s does not contain its locking script", other.Payment.OutPoint.Key())
	}
	segments := make([][]byte, len(pieces))
	for i, p := range pieces {
		segments[len(pieces)-1-i] = p
	}
	return segments, nil
}
