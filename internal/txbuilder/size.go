package txbuilder

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

const (
	// DER signature upper bound plus the sighash byte
	maxSignatureSize = 73
	pubKeySize       = 33
	// push(signature) push(pubkey)
	p2pkhUnlockingSize = 1 + maxSignatureSize + 1 + pubKeySize

	outpointSize = 32 + 4
)

// Size returns the serialised size. Unsigned inputs are counted with an upper
// bound estimate of their unlocking script.
func (b *Builder) Size() int {
	size := 4 + codec.VarIntLength(uint64(len(b.Inputs)))
	for idx, in := range b.Inputs {
		n := len(in.Unlocking)
		if !in.Signed() {
			n = b.estimateUnlockingSize(idx)
		}
		size += inputSize(n)
	}
	return size + outputsSize(b.Outputs) + 4
}

func (b *Builder) serializedSize() int {
	size := 4 + codec.VarIntLength(uint64(len(b.Inputs)))
	for _, in := range b.Inputs {
		size += inputSize(len(in.Unlocking))
	}
	return size + outputsSize(b.Outputs) + 4
}

func inputSize(unlocking int) int {
	return outpointSize + codec.VarIntLength(uint64(unlocking)) + unlocking + 4
}

func outputsSize(outputs []*Output) int {
	size := codec.VarIntLength(uint64(len(outputs)))
	for _, out := range outputs {
		size += 8 + codec.VarIntLength(uint64(len(out.Script))) + len(out.Script)
	}
	return size
}

func (b *Builder) estimateUnlockingSize(idx int) int {
	in := b.Inputs[idx]
	if in.kind == inputP2PKH {
		return p2pkhUnlockingSize
	}
	placeholderSig := make([]byte, maxSignatureSize)
	placeholderKey := make([]byte, pubKeySize)
	preimage := make([]byte, preimageSize(len(in.Payment.OutPoint.ScriptPubKey)))
	sb, err := b.stasUnlocking(idx, preimage, placeholderSig, placeholderKey, true)
	if err != nil {
		return p2pkhUnlockingSize
	}
	return sb.Size()
}

// Fee returns ceil(Size() * satsPerByte).
func (b *Builder) Fee(satsPerByte decimal.Decimal) uint64 {
	return feeForSize(b.Size(), satsPerByte)
}

func feeForSize(size int, satsPerByte decimal.Decimal) uint64 {
	fee := decimal.NewFromInt(int64(size)).Mul(satsPerByte).Ceil()
	if fee.Sign() <= 0 {
		return 0
	}
	return uint64(fee.IntPart())
}

// AddChangeOutputWithFee appends a P2PKH change output of change satoshis to addr
// and lowers it by the fee of the resulting transaction.
func (b *Builder) AddChangeOutputWithFee(addr *model.Address, change uint64, satsPerByte decimal.Decimal) error {
	return b.addChangeOutput(addr, change, func() uint64 { return b.Fee(satsPerByte) })
}

func (b *Builder) addChangeOutput(addr *model.Address, change uint64, fee func() uint64) error {
	if err := b.AddP2PKHOutput(addr, change); err != nil {
		return err
	}
	out := b.Outputs[len(b.Outputs)-1]
	f := fee()
	if f >= change {
		b.Outputs = b.Outputs[:len(b.Outputs)-1]
		return fmt.Errorf("change %d, fee %d: %w", change, f, ErrFeeExceedsChange)
	}
	out.Satoshis = change - f
	return nil
}
