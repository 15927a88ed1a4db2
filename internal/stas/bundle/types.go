package bundle

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/provider/node"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// UtxoSource selects and reserves spendable outputs; *cache.Cache implements it.
	UtxoSource interface {
		GetStasUtxos(ctx context.Context, address, tokenID string, satoshis uint64) ([]model.OutPoint, error)
		GetNextUtxoOrNull(ctx context.Context, address string) (*model.OutPoint, error)
		Release(outpoints ...model.OutPoint)
	}

	FeeRateProvider interface {
		SatoshisPerByte(ctx context.Context) (decimal.Decimal, error)
	}

	// RawTransactionProvider returns serialized transactions by id. Merges need
	// the transactions that created their inputs.
	RawTransactionProvider interface {
		GetRawTransaction(ctx context.Context, txid string) ([]byte, error)
	}

	Metrics interface {
		Observe(err error, transactions int, fee uint64, started time.Time)
	}

	Broadcaster interface {
		Broadcast(ctx context.Context, rawHex string) (node.BroadcastResult, error)
	}

	// Store persists outputs created and spent by published bundles.
	Store interface {
		SaveOutputs(ctx context.Context, outpoints []model.OutPoint) error
		MarkSpent(ctx context.Context, outpoints []model.OutPoint) error
	}

	// SpendTracker hides spent outputs from selection until Store catches up;
	// *cache.Cache implements it.
	SpendTracker interface {
		MarkBroadcasted(outpoints ...model.OutPoint)
		Release(outpoints ...model.OutPoint)
		Invalidate(address, tokenID string)
	}
)
