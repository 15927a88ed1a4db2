package transaction

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
)

const coinbaseVout = 0xffffffff

// Input is a parsed transaction input.
type Input struct {
	PrevTxID  string
	Vout      uint32
	Sequence  uint32
	ScriptSig *Slice

	network model.Network
}

// IsCoinbase reports whether the input spends no previous output.
func (i *Input) IsCoinbase() bool {
	return i.Vout == coinbaseVout
}

// UnlockingScript returns the script sig bytes.
func (i *Input) UnlockingScript() []byte {
	return i.ScriptSig.Bytes()
}

// SenderAddress derives the spender's address from a trailing public key push.
// It returns nil when the unlocking script does not end with a public key.
func (i *Input) SenderAddress() *model.Address {
	if i.IsCoinbase() {
		return nil
	}
	tokens, err := script.Tokens(i.UnlockingScript())
	if err != nil || len(tokens) == 0 {
		return nil
	}
	last := tokens[len(tokens)-1]
	if n := len(last.Data); n != btcec.PubKeyBytesLenCompressed && n != secp256k1.PubKeyBytesLenUncompressed {
		return nil
	}
	if _, err := btcec.ParsePubKey(last.Data); err != nil {
		return nil
	}
	addr, err := model.NewAddressFromHash160(btcutil.Hash160(last.Data), i.network)
	if err != nil {
		return nil
	}
	return addr
}
