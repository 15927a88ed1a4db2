package transaction

import (
	"sync"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
)

// Output is a parsed transaction output. Classification happens on first access.
type Output struct {
	Index        uint32
	Satoshis     uint64
	ScriptPubKey *Slice

	network     model.Network
	lockingOnce sync.Once
	locking     script.LockingScript
}

// Script returns the locking script bytes.
func (o *Output) Script() []byte {
	return o.ScriptPubKey.Bytes()
}

// Locking returns the classified locking script.
func (o *Output) Locking() script.LockingScript {
	o.lockingOnce.Do(func() {
		o.locking = script.Classify(o.Script())
	})
	return o.locking
}

// ScriptType returns the classified script type.
func (o *Output) ScriptType() model.ScriptType {
	return o.Locking().Type
}

// Address returns the receiver address, or nil for scripts without one.
func (o *Output) Address() *model.Address {
	return o.Locking().Address(o.network)
}

// TokenID returns the token redeem address for P2STAS outputs, otherwise "".
func (o *Output) TokenID() string {
	addr := o.Locking().TokenAddress(o.network)
	if addr == nil {
		return ""
	}
	return addr.String()
}

// OutPoint dereferences the output into a self-contained outpoint.
func (o *Output) OutPoint(txid string) model.OutPoint {
	op := model.OutPoint{
		TxID:         txid,
		Vout:         o.Index,
		Satoshis:     o.Satoshis,
		TokenID:      o.TokenID(),
		ScriptPubKey: o.Script(),
		ScriptType:   o.ScriptType(),
	}
	if addr := o.Address(); addr != nil {
		op.Address = addr.String()
	}
	return op
}
