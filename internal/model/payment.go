package model

// Destination pairs an amount with its receiver and optional data pushes.
type Destination struct {
	Address  *Address
	Satoshis uint64
	Data     [][]byte
}

// Payment is an outpoint together with the key that can spend it.
// SourceTx holds the raw transaction that created the outpoint; merges need it
// to prove the counterparty's locking script.
type Payment struct {
	Key      *PrivateKey
	OutPoint OutPoint
	SourceTx []byte
}
