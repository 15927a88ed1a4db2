// Package transaction parses raw transactions into an immutable view whose scripts
// are slices of the original buffer.
package transaction

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/pkg/safe"
)

const (
	// upper bounds that keep a hostile count from allocating before the stream runs dry
	maxItemCount  = 1 << 20
	maxScriptSize = 1 << 26
)

// Transaction is a parsed transaction.
type Transaction struct {
	Raw      []byte
	Network  model.Network
	Version  uint32
	LockTime uint32
	Inputs   []*Input
	Outputs  []*Output

	idOnce sync.Once
	id     string
}

// Parse decodes raw. The whole buffer must be consumed.
func Parse(raw []byte, network model.Network) (*Transaction, error) {
	r := bytes.NewReader(raw)
	tx, err := Read(r, network)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("parse transaction: %d trailing bytes: %w", r.Len(), codec.ErrSizeMismatch)
	}
	return tx, nil
}

// ParseHex decodes a hex encoded transaction.
func ParseHex(s string, network model.Network) (*Transaction, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode transaction hex: %w", err)
	}
	return Parse(raw, network)
}

// Read decodes one transaction from src, consuming exactly its bytes.
func Read(src io.Reader, network model.Network) (*Transaction, error) {
	r := codec.NewReader(src)
	raw := codec.NewBufferReceiver(256)
	r.PushReceiver(raw)
	defer r.PopReceiver()

	tx := &Transaction{Network: network}
	var err error
	if tx.Version, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}

	inCount, err := readCount(r, "input")
	if err != nil {
		return nil, err
	}
	inputs := make([]*Input, 0, inCount)
	for i := 0; i < inCount; i++ {
		in, err := readInput(r)
		if err != nil {
			return nil, fmt.Errorf("read input %d: %w", i, err)
		}
		inputs = append(inputs, in)
	}

	outCount, err := readCount(r, "output")
	if err != nil {
		return nil, err
	}
	outputs := make([]*Output, 0, outCount)
	for i := 0; i < outCount; i++ {
		out, err := readOutput(r, i)
		if err != nil {
			return nil, fmt.Errorf("read output %d: %w", i, err)
		}
		out.network = network
		outputs = append(outputs, out)
	}

	if tx.LockTime, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read lock time: %w", err)
	}

	tx.Raw = raw.Bytes()
	for _, in := range inputs {
		in.ScriptSig.buf = tx.Raw
		in.network = network
	}
	for _, out := range outputs {
		out.ScriptPubKey.buf = tx.Raw
	}
	tx.Inputs = inputs
	tx.Outputs = outputs
	return tx, nil
}

func readCount(r *codec.Reader, what string) (int, error) {
	v, err := r.ReadVarInt()
	if err != nil {
		return 0, fmt.Errorf("read %s count: %w", what, err)
	}
	n, err := safe.Int(v, maxItemCount)
	if err != nil {
		return 0, fmt.Errorf("%s count: %w", what, err)
	}
	return n, nil
}

func readScript(r *codec.Reader) (*Slice, error) {
	v, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("read script length: %w", err)
	}
	n, err := safe.Int(v, maxScriptSize)
	if err != nil {
		return nil, fmt.Errorf("script length: %w", err)
	}
	start := r.Position()
	if _, err := r.ReadBytes(n); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return newSlice(nil, start, n), nil
}

func readInput(r *codec.Reader) (*Input, error) {
	prev, err := r.ReadBytes(chainhash.HashSize)
	if err != nil {
		return nil, fmt.Errorf("read previous txid: %w", err)
	}
	in := &Input{PrevTxID: hex.EncodeToString(codec.ReverseBytes(prev))}
	if in.Vout, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read vout: %w", err)
	}
	if in.ScriptSig, err = readScript(r); err != nil {
		return nil, err
	}
	if in.Sequence, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}
	return in, nil
}

func readOutput(r *codec.Reader, index int) (*Output, error) {
	out := &Output{Index: uint32(index)}
	var err error
	if out.Satoshis, err = r.ReadUint64(); err != nil {
		return nil, fmt.Errorf("read value: %w", err)
	}
	if out.ScriptPubKey, err = readScript(r); err != nil {
		return nil, err
	}
	return out, nil
}

// ID returns the transaction id: the byte-reversed double SHA-256 of Raw, in hex.
func (t *Transaction) ID() string {
	t.idOnce.Do(func() {
		t.id = chainhash.DoubleHashH(t.Raw).String()
	})
	return t.id
}

// Hex returns Raw hex encoded.
func (t *Transaction) Hex() string {
	return hex.EncodeToString(t.Raw)
}

// Size is the serialised length.
func (t *Transaction) Size() int {
	return len(t.Raw)
}

// OutPoint dereferences output vout.
func (t *Transaction) OutPoint(vout uint32) (model.OutPoint, error) {
	if int(vout) >= len(t.Outputs) {
		return model.OutPoint{}, fmt.Errorf("transaction %s has no output %d", t.ID(), vout)
	}
	return t.Outputs[vout].OutPoint(t.ID()), nil
}
