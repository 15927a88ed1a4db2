package txbuilder

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
)

var testTokenID = bytes.Repeat([]byte{0x42}, model.Hash160Size)

func testKey(t *testing.T, seed byte) *model.PrivateKey {
	t.Helper()
	key, err := model.PrivateKeyFromBytes(bytes.Repeat([]byte{seed}, 32), model.Testnet)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes: %v", err)
	}
	return key
}

func testTxID(label string) string {
	return chainhash.DoubleHashH([]byte(label)).String()
}

func p2pkhPayment(t *testing.T, key *model.PrivateKey, label string, vout uint32, sats uint64) model.Payment {
	t.Helper()
	sb, err := script.NewTemplate(model.P2PKH, key.Address().Hash160)
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}
	return model.Payment{
		Key: key,
		OutPoint: model.OutPoint{
			TxID:         testTxID(label),
			Vout:         vout,
			Satoshis:     sats,
			Address:      key.Address().String(),
			ScriptPubKey: sb.Bytes(),
			ScriptType:   model.P2PKH,
		},
	}
}

func stasScript(t *testing.T, receiver []byte) []byte {
	t.Helper()
	sb, err := script.NewTemplate(model.P2STAS, receiver)
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}
	return sb.AddReturnData(testTokenID, []byte("TST")).Bytes()
}

func stasPayment(t *testing.T, key *model.PrivateKey, label string, vout uint32, sats uint64) model.Payment {
	t.Helper()
	locking := stasScript(t, key.Address().Hash160)
	return model.Payment{
		Key: key,
		OutPoint: model.OutPoint{
			TxID:         testTxID(label),
			Vout:         vout,
			Satoshis:     sats,
			Address:      key.Address().String(),
			ScriptPubKey: locking,
			ScriptType:   model.P2STAS,
		},
		// stand-in source transaction: some bytes around the locking script
		SourceTx: append(append([]byte("head-"+label), locking...), []byte("-tail")...),
	}
}
