package txbuilder

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
)

// SigHashType is the signature hash flag appended to preimages and signatures.
type SigHashType uint32

// SigHashAllForkID commits to every input and output.
const SigHashAllForkID SigHashType = 0x41

type sigHashes struct {
	prevouts  chainhash.Hash
	sequences chainhash.Hash
	outputs   chainhash.Hash
}

func (b *Builder) sigHashes() sigHashes {
	prevouts := codec.NewWriter(len(b.Inputs) * outpointSize)
	sequences := codec.NewWriter(len(b.Inputs) * 4)
	for _, in := range b.Inputs {
		prevouts.WriteBytes(in.prevHash[:])
		prevouts.WriteUint32(in.Payment.OutPoint.Vout)
		sequences.WriteUint32(in.Sequence)
	}

	outputs := codec.NewWriter(outputsSize(b.Outputs) - codec.VarIntLength(uint64(len(b.Outputs))))
	for _, out := range b.Outputs {
		outputs.WriteUint64(out.Satoshis)
		outputs.WriteVarInt(uint64(len(out.Script)))
		outputs.WriteBytes(out.Script)
	}

	p, _ := prevouts.Finish()
	s, _ := sequences.Finish()
	o, _ := outputs.Finish()
	return sigHashes{
		prevouts:  chainhash.DoubleHashH(p),
		sequences: chainhash.DoubleHashH(s),
		outputs:   chainhash.DoubleHashH(o),
	}
}

func preimageSize(scriptLen int) int {
	return 4 + 32 + 32 + outpointSize + codec.VarIntLength(uint64(scriptLen)) + scriptLen + 8 + 4 + 32 + 4 + 4
}

// Preimage returns the bytes signed for input idx.
func (b *Builder) Preimage(idx int) ([]byte, error) {
	return b.preimage(idx, b.sigHashes(), SigHashAllForkID)
}

func (b *Builder) preimage(idx int, hashes sigHashes, flag SigHashType) ([]byte, error) {
	if idx < 0 || idx >= len(b.Inputs) {
		return nil, fmt.Errorf("input %d out of range", idx)
	}
	if flag != SigHashAllForkID {
		return nil, fmt.Errorf("sighash 0x%x: %w", uint32(flag), ErrUnsupportedSigHash)
	}
	in := b.Inputs[idx]
	prevScript := in.Payment.OutPoint.ScriptPubKey

	w := codec.NewWriter(preimageSize(len(prevScript)))
	w.WriteUint32(b.Version)
	w.WriteBytes(hashes.prevouts[:])
	w.WriteBytes(hashes.sequences[:])
	w.WriteBytes(in.prevHash[:])
	w.WriteUint32(in.Payment.OutPoint.Vout)
	w.WriteVarInt(uint64(len(prevScript)))
	w.WriteBytes(prevScript)
	w.WriteUint64(in.Payment.OutPoint.Satoshis)
	w.WriteUint32(in.Sequence)
	w.WriteBytes(hashes.outputs[:])
	w.WriteUint32(b.LockTime)
	w.WriteUint32(uint32(flag))
	return w.Finish()
}
