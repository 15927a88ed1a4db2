// Package txbuilder assembles, sizes and signs transactions input by input, then
// re-parses the serialised bytes into a transaction.Transaction.
package txbuilder

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
)

var (
	// ErrFeeExceedsChange is returned when the fee would consume the whole change output.
	ErrFeeExceedsChange = errors.New("fee >= change")
	// ErrUnsupportedSigHash is returned for any sighash type other than SigHashAllForkID.
	ErrUnsupportedSigHash = errors.New("unsupported sighash type")
	// ErrNoFundingInput is returned when a token input is signed without a P2PKH
	// input paying the fee.
	ErrNoFundingInput = errors.New("no funding input")
)

const (
	defaultVersion  = 1
	defaultSequence = 0xffffffff
)

type inputKind int

const (
	inputP2PKH inputKind = iota
	inputP2STAS
	inputMerge
)

// Input is a payment being spent together with its unlocking script once signed.
type Input struct {
	Payment   model.Payment
	Sequence  uint32
	Unlocking []byte

	kind     inputKind
	prevHash chainhash.Hash
}

// Signed reports whether the unlocking script has been produced.
func (i *Input) Signed() bool {
	return i.Unlocking != nil
}

// Output is a locking script with its value.
type Output struct {
	Satoshis uint64
	Script   []byte
	Type     model.ScriptType
	Receiver []byte
}

// Builder accumulates inputs and outputs in the order they will be serialised.
type Builder struct {
	Network  model.Network
	Version  uint32
	LockTime uint32
	Inputs   []*Input
	Outputs  []*Output

	funding int
}

// New returns an empty builder for network.
func New(network model.Network) *Builder {
	return &Builder{Network: network, Version: defaultVersion, funding: -1}
}

func (b *Builder) addInput(p model.Payment, kind inputKind) (*Input, error) {
	hash, err := chainhash.NewHashFromStr(p.OutPoint.TxID)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", p.OutPoint.Key(), err)
	}
	if p.Key == nil {
		return nil, fmt.Errorf("input %s: missing private key", p.OutPoint.Key())
	}
	in := &Input{Payment: p, Sequence: defaultSequence, kind: kind, prevHash: *hash}
	b.Inputs = append(b.Inputs, in)
	return in, nil
}

// AddP2PKHInput adds a plain input. The last one added funds token inputs.
func (b *Builder) AddP2PKHInput(p model.Payment) error {
	if _, err := b.addInput(p, inputP2PKH); err != nil {
		return err
	}
	b.funding = len(b.Inputs) - 1
	return nil
}

// AddP2STASInput adds a token input.
func (b *Builder) AddP2STASInput(p model.Payment) error {
	_, err := b.addInput(p, inputP2STAS)
	return err
}

// AddMergeInput adds a token input that is merged with the other merge input.
// Its source transaction proves its locking script to the counterparty.
func (b *Builder) AddMergeInput(p model.Payment) error {
	if len(p.SourceTx) == 0 {
		return fmt.Errorf("merge input %s: source transaction required", p.OutPoint.Key())
	}
	if len(p.OutPoint.ScriptPubKey) <= script.P2STASBodyOffset {
		return fmt.Errorf("merge input %s: locking script too short", p.OutPoint.Key())
	}
	_, err := b.addInput(p, inputMerge)
	return err
}

func (b *Builder) addOutput(sats uint64, s []byte, t model.ScriptType, receiver []byte) *Output {
	out := &Output{Satoshis: sats, Script: s, Type: t, Receiver: receiver}
	b.Outputs = append(b.Outputs, out)
	return out
}

// AddP2PKHOutput pays sats to addr, with an optional OP_RETURN note after the template.
func (b *Builder) AddP2PKHOutput(addr *model.Address, sats uint64, note ...[]byte) error {
	sb, err := script.NewTemplate(model.P2PKH, addr.Hash160)
	if err != nil {
		return fmt.Errorf("p2pkh output: %w", err)
	}
	if len(note) > 0 {
		sb.AddReturnData(note...)
	}
	b.addOutput(sats, sb.Bytes(), model.P2PKH, addr.Hash160)
	return nil
}

// AddNullDataOutput adds a zero value OP_0 OP_RETURN data carrier.
func (b *Builder) AddNullDataOutput(data ...[]byte) {
	s := script.NewBuilder().AddOpcode(script.OpFalse).AddReturnData(data...).Bytes()
	b.addOutput(0, s, model.NullData, nil)
}

// AddP2STASOutput adds a token output built from the STAS template.
func (b *Builder) AddP2STASOutput(addr *model.Address, sats uint64, tokenID []byte, symbol string, data ...[]byte) error {
	if len(tokenID) != model.Hash160Size {
		return fmt.Errorf("p2stas output: token id must be %d bytes", model.Hash160Size)
	}
	sb, err := script.NewTemplate(model.P2STAS, addr.Hash160)
	if err != nil {
		return fmt.Errorf("p2stas output: %w", err)
	}
	fields := append([][]byte{tokenID, []byte(symbol)}, data...)
	sb.AddReturnData(fields...)
	b.addOutput(sats, sb.Bytes(), model.P2STAS, addr.Hash160)
	return nil
}

// AddP2STASCopyOutput reuses an existing token locking script with the receiver
// replaced by addr.
func (b *Builder) AddP2STASCopyOutput(addr *model.Address, sats uint64, lockingScript []byte) error {
	sb, err := script.FromScript(lockingScript, addr.Hash160)
	if err != nil {
		return fmt.Errorf("p2stas copy output: %w", err)
	}
	b.addOutput(sats, sb.Bytes(), model.P2STAS, addr.Hash160)
	return nil
}

// InputSatoshis sums the values being spent.
func (b *Builder) InputSatoshis() uint64 {
	var total uint64
	for _, in := range b.Inputs {
		total += in.Payment.OutPoint.Satoshis
	}
	return total
}

// OutputSatoshis sums the values being paid.
func (b *Builder) OutputSatoshis() uint64 {
	var total uint64
	for _, out := range b.Outputs {
		total += out.Satoshis
	}
	return total
}

// Serialize writes the transaction with the unlocking scripts produced so far;
// unsigned inputs are written with an empty script.
func (b *Builder) Serialize() ([]byte, error) {
	w := codec.NewWriter(b.serializedSize())
	w.WriteUint32(b.Version)
	w.WriteVarInt(uint64(len(b.Inputs)))
	for _, in := range b.Inputs {
		w.WriteBytes(in.prevHash[:])
		w.WriteUint32(in.Payment.OutPoint.Vout)
		w.WriteVarInt(uint64(len(in.Unlocking)))
		w.WriteBytes(in.Unlocking)
		w.WriteUint32(in.Sequence)
	}
	writeOutputs(w, b.Outputs)
	w.WriteUint32(b.LockTime)

	raw, err := w.Finish()
	if err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}
	return raw, nil
}

func writeOutputs(w *codec.Writer, outputs []*Output) {
	w.WriteVarInt(uint64(len(outputs)))
	for _, out := range outputs {
		w.WriteUint64(out.Satoshis)
		w.WriteVarInt(uint64(len(out.Script)))
		w.WriteBytes(out.Script)
	}
}

// Build serialises the transaction and parses the bytes back.
func (b *Builder) Build() (*transaction.Transaction, error) {
	raw, err := b.Serialize()
	if err != nil {
		return nil, err
	}
	tx, err := transaction.Parse(raw, b.Network)
	if err != nil {
		return nil, fmt.Errorf("reparse built transaction: %w", err)
	}
	return tx, nil
}
