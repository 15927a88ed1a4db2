// Package factory builds the signed transactions of the STAS token protocol.
// Every operation spends one plain funding payment for the fee and returns its
// change to the funding key as the last output.
package factory

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
	"github.com/goodnatureofminers/stas-toolkit/internal/txbuilder"
)

// MaxSplitDestinations bounds the outputs of a split.
const MaxSplitDestinations = 4

var (
	ErrTokenConservation   = errors.New("token value is not conserved")
	ErrScriptMismatch      = errors.New("merge inputs have different locking scripts")
	ErrTooManyDestinations = errors.New("too many destinations")
	ErrNoDestinations      = errors.New("no destinations")
	ErrNotRedeemable       = errors.New("token output is not owned by its redeem address")
	ErrNotTokenOutput      = errors.New("not a token output")
	ErrNoFundingOutput     = errors.New("transaction has no funding output")
)

func requireKey(p model.Payment, role string) error {
	if p.Key == nil {
		return fmt.Errorf("%s payment %s has no key", role, p.OutPoint.Key())
	}
	return nil
}

func newBuilder(funding model.Payment) (*txbuilder.Builder, error) {
	if err := requireKey(funding, "funding"); err != nil {
		return nil, err
	}
	return txbuilder.New(funding.Key.Network()), nil
}

// finish adds the funding input last so it is the one token inputs reference,
// pays the change back to the funding key and signs.
func finish(b *txbuilder.Builder, funding model.Payment, rate decimal.Decimal) (*txbuilder.Builder, error) {
	if err := b.AddP2PKHInput(funding); err != nil {
		return nil, fmt.Errorf("funding input: %w", err)
	}
	in, out := b.InputSatoshis(), b.OutputSatoshis()
	if out > in {
		return nil, fmt.Errorf("outputs %d exceed inputs %d", out, in)
	}
	if err := b.AddChangeOutputWithFee(funding.Key.Address(), in-out, rate); err != nil {
		return nil, err
	}
	if err := b.Sign(); err != nil {
		return nil, fmt.Errorf("sign: %w", err)
	}
	return b, nil
}

func sumDestinations(destinations []model.Destination) uint64 {
	var total uint64
	for _, d := range destinations {
		total += d.Satoshis
	}
	return total
}

func tokenLocking(p model.Payment) (script.LockingScript, error) {
	locking := script.Classify(p.OutPoint.ScriptPubKey)
	if locking.Type != model.P2STAS {
		return locking, fmt.Errorf("%s is %s: %w", p.OutPoint.Key(), locking.Type, ErrNotTokenOutput)
	}
	return locking, nil
}

func addCopyOutputs(b *txbuilder.Builder, lockingScript []byte, destinations []model.Destination) error {
	for i, d := range destinations {
		if err := b.AddP2STASCopyOutput(d.Address, d.Satoshis, lockingScript); err != nil {
			return fmt.Errorf("destination %d: %w", i, err)
		}
	}
	return nil
}

// CreateContract locks satoshis of the issuer into a P2PKH output carrying the
// token schema. The output is later spent by Issue.
func CreateContract(issuer, funding model.Payment, schema model.TokenSchema, satoshis uint64, rate decimal.Decimal) (*txbuilder.Builder, error) {
	if err := requireKey(issuer, "issuer"); err != nil {
		return nil, err
	}
	redeem, err := schema.RedeemAddress()
	if err != nil {
		return nil, fmt.Errorf("token id: %w", err)
	}
	if !redeem.Equal(issuer.Key.Address()) {
		return nil, fmt.Errorf("token id %s is not the issuer address %s", schema.TokenID, issuer.Key.Address())
	}
	if satoshis == 0 || satoshis > issuer.OutPoint.Satoshis {
		return nil, fmt.Errorf("contract value %d out of range (issuer has %d)", satoshis, issuer.OutPoint.Satoshis)
	}
	data, err := schema.Marshal()
	if err != nil {
		return nil, err
	}

	b, err := newBuilder(funding)
	if err != nil {
		return nil, err
	}
	if err := b.AddP2PKHInput(issuer); err != nil {
		return nil, fmt.Errorf("issuer input: %w", err)
	}
	if err := b.AddP2PKHOutput(redeem, satoshis, data); err != nil {
		return nil, err
	}
	return finish(b, funding, rate)
}

// Issue spends a contract output into token outputs worth exactly its value.
func Issue(contract, funding model.Payment, destinations []model.Destination, schema model.TokenSchema, rate decimal.Decimal) (*txbuilder.Builder, error) {
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}
	if total := sumDestinations(destinations); total != contract.OutPoint.Satoshis {
		return nil, fmt.Errorf("issue %d of contract %d: %w", total, contract.OutPoint.Satoshis, ErrTokenConservation)
	}
	redeem, err := schema.RedeemAddress()
	if err != nil {
		return nil, fmt.Errorf("token id: %w", err)
	}

	b, err := newBuilder(funding)
	if err != nil {
		return nil, err
	}
	if err := b.AddP2PKHInput(contract); err != nil {
		return nil, fmt.Errorf("contract input: %w", err)
	}
	for i, d := range destinations {
		if err := b.AddP2STASOutput(d.Address, d.Satoshis, redeem.Hash160, schema.Symbol, d.Data...); err != nil {
			return nil, fmt.Errorf("destination %d: %w", i, err)
		}
	}
	return finish(b, funding, rate)
}

// Transfer moves the whole value of a token output to to. A note becomes a
// data output after the token output.
func Transfer(from model.Payment, to *model.Address, funding model.Payment, rate decimal.Decimal, note ...[]byte) (*txbuilder.Builder, error) {
	if _, err := tokenLocking(from); err != nil {
		return nil, err
	}

	b, err := newBuilder(funding)
	if err != nil {
		return nil, err
	}
	if err := b.AddP2STASInput(from); err != nil {
		return nil, fmt.Errorf("token input: %w", err)
	}
	if err := b.AddP2STASCopyOutput(to, from.OutPoint.Satoshis, from.OutPoint.ScriptPubKey); err != nil {
		return nil, err
	}
	if len(note) > 0 {
		b.AddNullDataOutput(note...)
	}
	return finish(b, funding, rate)
}

// Split moves a token output into up to MaxSplitDestinations outputs.
func Split(from model.Payment, destinations []model.Destination, funding model.Payment, rate decimal.Decimal) (*txbuilder.Builder, error) {
	if len(destinations) == 0 {
		return nil, ErrNoDestinations
	}
	if len(destinations) > MaxSplitDestinations {
		return nil, fmt.Errorf("split into %d: %w", len(destinations), ErrTooManyDestinations)
	}
	if total := sumDestinations(destinations); total != from.OutPoint.Satoshis {
		return nil, fmt.Errorf("split %d into %d: %w", from.OutPoint.Satoshis, total, ErrTokenConservation)
	}
	if _, err := tokenLocking(from); err != nil {
		return nil, err
	}

	b, err := newBuilder(funding)
	if err != nil {
		return nil, err
	}
	if err := b.AddP2STASInput(from); err != nil {
		return nil, fmt.Errorf("token input: %w", err)
	}
	if err := addCopyOutputs(b, from.OutPoint.ScriptPubKey, destinations); err != nil {
		return nil, err
	}
	return finish(b, funding, rate)
}

// Merge combines two token outputs with the same script body into one or two
// outputs. Both payments need their source transactions.
func Merge(first, second model.Payment, destinations []model.Destination, funding model.Payment, rate decimal.Decimal) (*txbuilder.Builder, error) {
	switch {
	case len(destinations) == 0:
		return nil, ErrNoDestinations
	case len(destinations) > 2:
		return nil, fmt.Errorf("merge into %d: %w", len(destinations), ErrTooManyDestinations)
	}
	in := first.OutPoint.Satoshis + second.OutPoint.Satoshis
	if total := sumDestinations(destinations); total != in {
		return nil, fmt.Errorf("merge %d into %d: %w", in, total, ErrTokenConservation)
	}
	for _, p := range []model.Payment{first, second} {
		if _, err := tokenLocking(p); err != nil {
			return nil, err
		}
	}
	if !bytes.Equal(first.OutPoint.ScriptPubKey[script.P2STASBodyOffset:], second.OutPoint.ScriptPubKey[script.P2STASBodyOffset:]) {
		return nil, fmt.Errorf("%s and %s: %w", first.OutPoint.Key(), second.OutPoint.Key(), ErrScriptMismatch)
	}

	b, err := newBuilder(funding)
	if err != nil {
		return nil, err
	}
	for _, p := range []model.Payment{first, second} {
		if err := b.AddMergeInput(p); err != nil {
			return nil, err
		}
	}
	if err := addCopyOutputs(b, first.OutPoint.ScriptPubKey, destinations); err != nil {
		return nil, err
	}
	return finish(b, funding, rate)
}

// Redeem returns token value to the redeem address as output 0. Remainders stay
// tokens and are paid after it.
func Redeem(from model.Payment, funding model.Payment, rate decimal.Decimal, remainders ...model.Destination) (*txbuilder.Builder, error) {
	if err := requireKey(from, "token"); err != nil {
		return nil, err
	}
	locking, err := tokenLocking(from)
	if err != nil {
		return nil, err
	}
	redeem := locking.TokenAddress(from.Key.Network())
	if redeem == nil || !redeem.Equal(from.Key.Address()) {
		return nil, fmt.Errorf("%s: %w", from.OutPoint.Key(), ErrNotRedeemable)
	}
	kept := sumDestinations(remainders)
	if kept >= from.OutPoint.Satoshis {
		return nil, fmt.Errorf("remainders %d of %d leave nothing to redeem: %w", kept, from.OutPoint.Satoshis, ErrTokenConservation)
	}
	if len(remainders) >= MaxSplitDestinations {
		return nil, fmt.Errorf("redeem with %d remainders: %w", len(remainders), ErrTooManyDestinations)
	}

	b, err := newBuilder(funding)
	if err != nil {
		return nil, err
	}
	if err := b.AddP2STASInput(from); err != nil {
		return nil, fmt.Errorf("token input: %w", err)
	}
	if err := b.AddP2PKHOutput(redeem, from.OutPoint.Satoshis-kept); err != nil {
		return nil, err
	}
	if err := addCopyOutputs(b, from.OutPoint.ScriptPubKey, remainders); err != nil {
		return nil, err
	}
	return finish(b, funding, rate)
}

// FundingOutPoint returns the change output of tx as the next funding payment
// for key.
func FundingOutPoint(tx *transaction.Transaction, key *model.PrivateKey) (model.Payment, error) {
	if len(tx.Outputs) == 0 {
		return model.Payment{}, ErrNoFundingOutput
	}
	out := tx.Outputs[len(tx.Outputs)-1]
	addr := out.Address()
	if out.ScriptType() != model.P2PKH || addr == nil || !addr.Equal(key.Address()) {
		return model.Payment{}, fmt.Errorf("last output of %s: %w", tx.ID(), ErrNoFundingOutput)
	}
	return model.Payment{Key: key, OutPoint: out.OutPoint(tx.ID()), SourceTx: tx.Raw}, nil
}

// TokenPayment returns output vout of tx as a spendable token payment for key.
func TokenPayment(tx *transaction.Transaction, vout int, key *model.PrivateKey) (model.Payment, error) {
	if vout < 0 || vout >= len(tx.Outputs) {
		return model.Payment{}, fmt.Errorf("output %d of %s does not exist", vout, tx.ID())
	}
	out := tx.Outputs[vout]
	if out.ScriptType() != model.P2STAS {
		return model.Payment{}, fmt.Errorf("output %d of %s: %w", vout, tx.ID(), ErrNotTokenOutput)
	}
	return model.Payment{Key: key, OutPoint: out.OutPoint(tx.ID()), SourceTx: tx.Raw}, nil
}
