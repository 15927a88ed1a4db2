package bundle

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
)

// ErrRejected is returned when the node refuses a transaction of the bundle.
var ErrRejected = errors.New("transaction rejected")

// Publisher broadcasts bundles in order and records their effect on the
// spendable set.
type Publisher struct {
	logger      *zap.Logger
	broadcaster Broadcaster
	store       Store
	tracker     SpendTracker
}

func NewPublisher(logger *zap.Logger, broadcaster Broadcaster, store Store, tracker SpendTracker) *Publisher {
	return &Publisher{
		logger:      logger.Named("publisher"),
		broadcaster: broadcaster,
		store:       store,
		tracker:     tracker,
	}
}

// Publish broadcasts every transaction of b and stops at the first failure.
// Selected outputs are released when nothing was accepted; otherwise the
// accepted prefix is recorded in the store.
func (p *Publisher) Publish(ctx context.Context, b *Bundle) error {
	accepted := 0
	var failure error
	for i, tx := range b.Transactions {
		res, err := p.broadcaster.Broadcast(ctx, tx.Hex())
		if err == nil && !res.Success {
			err = fmt.Errorf("%w: %s (code %d)", ErrRejected, res.Message, res.Code)
		}
		if err != nil {
			failure = fmt.Errorf("broadcast %d/%d %s: %w", i+1, len(b.Transactions), tx.ID(), err)
			break
		}
		if i == 0 {
			p.tracker.MarkBroadcasted(b.SpentOutPoints...)
		}
		accepted++
	}

	if accepted == 0 {
		p.tracker.Release(b.SpentOutPoints...)
		return failure
	}
	if failure != nil {
		p.logger.Error("bundle partially broadcast",
			zap.Int("accepted", accepted),
			zap.Int("transactions", len(b.Transactions)),
			zap.Error(failure),
		)
	}

	created, spent := effects(b.Transactions[:accepted], b.SpentOutPoints)
	if err := p.store.MarkSpent(ctx, spent); err != nil {
		return errors.Join(failure, fmt.Errorf("mark spent: %w", err))
	}
	if err := p.store.SaveOutputs(ctx, created); err != nil {
		return errors.Join(failure, fmt.Errorf("save outputs: %w", err))
	}

	invalidated := make(map[[2]string]struct{})
	for _, op := range append(spent, created...) {
		key := [2]string{op.Address, op.TokenID}
		if _, ok := invalidated[key]; ok {
			continue
		}
		invalidated[key] = struct{}{}
		p.tracker.Invalidate(op.Address, op.TokenID)
	}

	p.logger.Info("bundle published",
		zap.Int("transactions", accepted),
		zap.Int("created", len(created)),
		zap.Int("spent", len(spent)),
	)
	return failure
}

// effects returns the outputs txs leave unspent and the known outputs they
// spend. Outputs without an address are skipped.
func effects(txs []*transaction.Transaction, selected []model.OutPoint) (created, spent []model.OutPoint) {
	known := make(map[string]model.OutPoint, len(selected))
	for _, op := range selected {
		known[op.Key()] = op
	}
	var order []string
	for _, tx := range txs {
		for _, in := range tx.Inputs {
			key := model.OutPoint{TxID: in.PrevTxID, Vout: in.Vout}.Key()
			if op, ok := known[key]; ok {
				spent = append(spent, op)
				delete(known, key)
			}
		}
		id := tx.ID()
		for _, out := range tx.Outputs {
			op := out.OutPoint(id)
			if op.Address == "" {
				continue
			}
			known[op.Key()] = op
			order = append(order, op.Key())
		}
	}
	for _, key := range order {
		if op, ok := known[key]; ok {
			created = append(created, op)
		}
	}
	return created, spent
}
