package model

import "strconv"

// OutPoint is a self-contained reference to a spendable output.
type OutPoint struct {
	TxID         string
	Vout         uint32
	Satoshis     uint64
	Address      string
	TokenID      string
	ScriptPubKey []byte
	ScriptType   ScriptType
}

// Key identifies the outpoint as "txid:vout".
func (o OutPoint) Key() string {
	return o.TxID + ":" + strconv.FormatUint(uint64(o.Vout), 10)
}

// SumSatoshis adds up the value of outpoints.
func SumSatoshis(outpoints []OutPoint) uint64 {
	var total uint64
	for _, o := range outpoints {
		total += o.Satoshis
	}
	return total
}
