// Package bundle turns scattered token outputs of a sender into a chain of
// transactions that pays an exact amount to one destination.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/stas/factory"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
	"github.com/goodnatureofminers/stas-toolkit/internal/txbuilder"
)

// ErrNoFundingOutput is returned when the funder has no unreserved plain output
// to pay fees with.
var ErrNoFundingOutput = errors.New("no funding output available")

// TransferRequest moves Satoshis of TokenID from Sender to Destination. Funder
// pays the fees. Note is attached when the last step is a plain transfer.
type TransferRequest struct {
	Sender      *model.PrivateKey
	Funder      *model.PrivateKey
	TokenID     string
	Destination *model.Address
	Satoshis    uint64
	Note        [][]byte
}

// Bundle is a chain of signed transactions in broadcast order.
type Bundle struct {
	Transactions []*transaction.Transaction
	Fee          uint64
	// SpentOutPoints are the selected outputs the bundle consumes.
	SpentOutPoints []model.OutPoint
}

// Bundler builds transfer bundles from the sender's selected outputs.
type Bundler struct {
	logger  *zap.Logger
	metrics Metrics
	utxos   UtxoSource
	fees    FeeRateProvider
	raw     RawTransactionProvider
	cfg     Config
}

// New constructs a Bundler. Config.RemainderSlices is clamped so a split never
// exceeds the destination limit.
func New(logger *zap.Logger, metrics Metrics, utxos UtxoSource, fees FeeRateProvider, raw RawTransactionProvider, cfg Config) *Bundler {
	if cfg.RemainderSlices < 1 {
		cfg.RemainderSlices = 1
	}
	if cfg.RemainderSlices > factory.MaxSplitDestinations-1 {
		cfg.RemainderSlices = factory.MaxSplitDestinations - 1
	}
	return &Bundler{
		logger:  logger.Named("bundler"),
		metrics: metrics,
		utxos:   utxos,
		fees:    fees,
		raw:     raw,
		cfg:     cfg,
	}
}

// run carries the state of one bundle build.
type run struct {
	*Bundler
	req     TransferRequest
	rate    decimal.Decimal
	funding model.Payment
	bundle  *Bundle
}

// Transfer selects the sender's token outputs and a funding output, merges the
// token outputs into one and pays the destination. Selected outputs are
// released back to the source when the build fails.
func (b *Bundler) Transfer(ctx context.Context, req TransferRequest) (_ *Bundle, err error) {
	started := time.Now()
	r := &run{Bundler: b, req: req, bundle: &Bundle{}}
	defer func() {
		b.metrics.Observe(err, len(r.bundle.Transactions), r.bundle.Fee, started)
	}()

	if req.Sender == nil || req.Funder == nil || req.Destination == nil {
		return nil, errors.New("sender, funder and destination are required")
	}
	if req.Satoshis == 0 {
		return nil, errors.New("amount must be positive")
	}

	r.rate, err = b.fees.SatoshisPerByte(ctx)
	if err != nil {
		return nil, fmt.Errorf("fee rate: %w", err)
	}

	sender := req.Sender.Address().String()
	tokens, err := b.utxos.GetStasUtxos(ctx, sender, req.TokenID, req.Satoshis)
	if err != nil {
		return nil, fmt.Errorf("select token outputs: %w", err)
	}
	r.bundle.SpentOutPoints = append(r.bundle.SpentOutPoints, tokens...)
	defer func() {
		if err != nil {
			b.utxos.Release(r.bundle.SpentOutPoints...)
		}
	}()

	funder := req.Funder.Address().String()
	fundingOut, err := b.utxos.GetNextUtxoOrNull(ctx, funder)
	if err != nil {
		return nil, fmt.Errorf("select funding output: %w", err)
	}
	if fundingOut == nil {
		return nil, fmt.Errorf("%s: %w", funder, ErrNoFundingOutput)
	}
	r.bundle.SpentOutPoints = append(r.bundle.SpentOutPoints, *fundingOut)
	r.funding = model.Payment{Key: req.Funder, OutPoint: *fundingOut}

	payments, err := r.tokenPayments(ctx, tokens)
	if err != nil {
		return nil, err
	}
	merged, err := r.mergeTree(payments)
	if err != nil {
		return nil, err
	}
	if err = r.pay(merged); err != nil {
		return nil, err
	}

	if err = Validate(r.bundle, req.Sender.Address(), req.Destination, req.Satoshis); err != nil {
		return nil, err
	}

	b.logger.Info("bundle built",
		zap.String("token_id", req.TokenID),
		zap.String("destination", req.Destination.String()),
		zap.Uint64("satoshis", req.Satoshis),
		zap.Int("inputs", len(tokens)),
		zap.Int("transactions", len(r.bundle.Transactions)),
		zap.Uint64("fee", r.bundle.Fee),
	)
	return r.bundle, nil
}

// tokenPayments attaches the creating transaction to every selected output when
// they will be merged.
func (r *run) tokenPayments(ctx context.Context, tokens []model.OutPoint) ([]model.Payment, error) {
	payments := make([]model.Payment, 0, len(tokens))
	sources := make(map[string][]byte)
	for _, op := range tokens {
		p := model.Payment{Key: r.req.Sender, OutPoint: op}
		if len(tokens) > 1 {
			raw, ok := sources[op.TxID]
			if !ok {
				var err error
				if raw, err = r.sourceTx(ctx, op.TxID); err != nil {
					return nil, err
				}
				sources[op.TxID] = raw
			}
			p.SourceTx = raw
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func (r *run) sourceTx(ctx context.Context, txid string) ([]byte, error) {
	raw, err := r.raw.GetRawTransaction(ctx, txid)
	if err != nil {
		return nil, fmt.Errorf("source transaction %s: %w", txid, err)
	}
	tx, err := transaction.Parse(raw, r.req.Sender.Network())
	if err != nil {
		return nil, fmt.Errorf("source transaction %s: %w", txid, err)
	}
	if tx.ID() != txid {
		return nil, fmt.Errorf("source transaction %s: provider returned %s", txid, tx.ID())
	}
	return raw, nil
}

// add appends a built step to the bundle and moves funding to its change.
func (r *run) add(b *txbuilder.Builder, err error) (*transaction.Transaction, error) {
	if err != nil {
		return nil, err
	}
	tx, err := b.Build()
	if err != nil {
		return nil, err
	}
	r.bundle.Fee += b.InputSatoshis() - b.OutputSatoshis()
	r.bundle.Transactions = append(r.bundle.Transactions, tx)
	if r.funding, err = factory.FundingOutPoint(tx, r.req.Funder); err != nil {
		return nil, err
	}
	return tx, nil
}

// mergeTree merges pairs level by level until one output is left. An odd output
// carries over to the next level.
func (r *run) mergeTree(level []model.Payment) (model.Payment, error) {
	sender := r.req.Sender.Address()
	for depth := 1; len(level) > 1; depth++ {
		next := make([]model.Payment, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			a, b := level[i], level[i+1]
			dest := []model.Destination{{Address: sender, Satoshis: a.OutPoint.Satoshis + b.OutPoint.Satoshis}}
			tx, err := r.add(factory.Merge(a, b, dest, r.funding, r.rate))
			if err != nil {
				return model.Payment{}, fmt.Errorf("merge level %d: %w", depth, err)
			}
			p, err := factory.TokenPayment(tx, 0, r.req.Sender)
			if err != nil {
				return model.Payment{}, err
			}
			next = append(next, p)
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next

		if r.cfg.MergeTransferInterval > 0 && depth%r.cfg.MergeTransferInterval == 0 && len(level) > 1 {
			for i, p := range level {
				moved, err := r.transferToSelf(p)
				if err != nil {
					return model.Payment{}, fmt.Errorf("level %d: %w", depth, err)
				}
				level[i] = moved
			}
		}
	}
	if len(level) == 0 {
		return model.Payment{}, errors.New("no token outputs")
	}
	return level[0], nil
}

func (r *run) transferToSelf(p model.Payment) (model.Payment, error) {
	tx, err := r.add(factory.Transfer(p, r.req.Sender.Address(), r.funding, r.rate))
	if err != nil {
		return model.Payment{}, fmt.Errorf("transfer to self: %w", err)
	}
	return factory.TokenPayment(tx, 0, r.req.Sender)
}

// pay splits p when it is worth more than requested, otherwise transfers it.
func (r *run) pay(p model.Payment) error {
	amount := r.req.Satoshis
	if p.OutPoint.Satoshis < amount {
		return &model.NotEnoughFundsError{
			Requested: amount,
			Available: p.OutPoint.Satoshis,
			Address:   r.req.Sender.Address().String(),
			TokenID:   r.req.TokenID,
		}
	}
	if p.OutPoint.Satoshis == amount {
		_, err := r.add(factory.Transfer(p, r.req.Destination, r.funding, r.rate, r.req.Note...))
		if err != nil {
			return fmt.Errorf("transfer: %w", err)
		}
		return nil
	}

	destinations := append(
		[]model.Destination{{Address: r.req.Destination, Satoshis: amount}},
		r.remainder(p.OutPoint.Satoshis-amount)...,
	)
	if _, err := r.add(factory.Split(p, destinations, r.funding, r.rate)); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	return nil
}

// remainder spreads change back to the sender over RemainderSlices outputs, the
// division remainder going to the last one.
func (r *run) remainder(change uint64) []model.Destination {
	sender := r.req.Sender.Address()
	slices := uint64(r.cfg.RemainderSlices)
	if change < r.cfg.MinSplitRemainder || change < slices {
		slices = 1
	}
	out := make([]model.Destination, slices)
	for i := range out {
		out[i] = model.Destination{Address: sender, Satoshis: change / slices}
	}
	out[len(out)-1].Satoshis += change % slices
	return out
}
