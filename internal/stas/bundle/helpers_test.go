package bundle

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
	"github.com/goodnatureofminers/stas-toolkit/internal/stas/factory"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
	"github.com/goodnatureofminers/stas-toolkit/internal/txbuilder"
)

var testRate = decimal.RequireFromString("0.05")

func testKey(t *testing.T, seed byte) *model.PrivateKey {
	t.Helper()
	key, err := model.PrivateKeyFromBytes(bytes.Repeat([]byte{seed}, 32), model.Testnet)
	require.NoError(t, err)
	return key
}

func plainOutPoint(t *testing.T, key *model.PrivateKey, label string, sats uint64) model.OutPoint {
	t.Helper()
	sb, err := script.NewTemplate(model.P2PKH, key.Address().Hash160)
	require.NoError(t, err)
	return model.OutPoint{
		TxID:         chainhash.DoubleHashH([]byte(label)).String(),
		Satoshis:     sats,
		Address:      key.Address().String(),
		ScriptPubKey: sb.Bytes(),
		ScriptType:   model.P2PKH,
	}
}

// fixture issues token outputs to sender in a single transaction.
type fixture struct {
	t       *testing.T
	issuer  *model.PrivateKey
	sender  *model.PrivateKey
	funder  *model.PrivateKey
	dest    *model.Address
	tokenID string
	funding model.Payment
	issue   *transaction.Transaction
}

func newFixture(t *testing.T, amounts ...uint64) *fixture {
	t.Helper()
	f := &fixture{
		t:      t,
		issuer: testKey(t, 0x01),
		sender: testKey(t, 0x02),
		funder: testKey(t, 0x03),
		dest:   testKey(t, 0x04).Address(),
	}
	f.tokenID = f.issuer.Address().String()
	f.funding = model.Payment{Key: f.funder, OutPoint: plainOutPoint(t, f.funder, "issue funding", 1_000_000)}
	schema := model.TokenSchema{Name: "Bundle Token", TokenID: f.tokenID, Symbol: "BTK", SatoshisPerToken: 1}

	var total uint64
	destinations := make([]model.Destination, 0, len(amounts))
	for _, a := range amounts {
		total += a
		destinations = append(destinations, model.Destination{Address: f.sender.Address(), Satoshis: a})
	}

	supply := model.Payment{Key: f.issuer, OutPoint: plainOutPoint(t, f.issuer, "supply", total)}
	contractTx := f.build(factory.CreateContract(supply, f.funding, schema, total, testRate))
	contract := model.Payment{Key: f.issuer, OutPoint: contractTx.Outputs[0].OutPoint(contractTx.ID())}
	f.issue = f.build(factory.Issue(contract, f.funding, destinations, schema, testRate))
	return f
}

// build signs a step and moves the fixture funding to its change output.
func (f *fixture) build(b *txbuilder.Builder, err error) *transaction.Transaction {
	f.t.Helper()
	require.NoError(f.t, err)
	tx, err := b.Build()
	require.NoError(f.t, err)
	f.funding, err = factory.FundingOutPoint(tx, f.funder)
	require.NoError(f.t, err)
	return tx
}

func (f *fixture) tokens(vouts ...int) []model.OutPoint {
	out := make([]model.OutPoint, 0, len(vouts))
	for _, v := range vouts {
		out = append(out, f.issue.Outputs[v].OutPoint(f.issue.ID()))
	}
	return out
}

func (f *fixture) payment(vout int) model.Payment {
	f.t.Helper()
	p, err := factory.TokenPayment(f.issue, vout, f.sender)
	require.NoError(f.t, err)
	return p
}

func (f *fixture) fundingOutPoint(label string) *model.OutPoint {
	op := plainOutPoint(f.t, f.funder, label, 10_000_000)
	return &op
}
