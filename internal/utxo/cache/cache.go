// Package cache keeps per-address and per-token lists of spendable outputs and
// selects coins from them under a per-key lock.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/clock"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/pkg/keyedmutex"
	"github.com/goodnatureofminers/stas-toolkit/pkg/workerpool"
)

var (
	// ErrLockTimeout is returned when the per-key lock is not acquired within
	// Config.LockTimeout. The whole operation is safe to retry.
	ErrLockTimeout = errors.New("utxo cache lock timeout")
	// ErrZeroAmount is returned for a selection of nothing.
	ErrZeroAmount = errors.New("requested amount must be positive")
)

// Key names one cached list: plain outputs of Address when TokenID is empty,
// otherwise the token outputs of Address.
type Key struct {
	Address string
	TokenID string
}

func (k Key) String() string {
	if k.TokenID == "" {
		return k.Address
	}
	return k.Address + "/" + k.TokenID
}

// Cache is safe for concurrent use.
type Cache struct {
	logger   *zap.Logger
	metrics  Metrics
	provider Provider
	clock    clock.Clock
	cfg      Config

	locks   *keyedmutex.Mutex
	lists   sync.Map // Key -> []model.OutPoint, replaced wholesale on refresh
	markers *markers

	seqMu     sync.Mutex
	sequences map[string]*sequence
}

// New constructs a Cache.
func New(logger *zap.Logger, metrics Metrics, provider Provider, cfg Config) *Cache {
	return &Cache{
		logger:    logger.Named("utxo_cache"),
		metrics:   metrics,
		provider:  provider,
		clock:     clock.Real{},
		cfg:       cfg,
		locks:     keyedmutex.New(),
		markers:   newMarkers(cfg),
		sequences: make(map[string]*sequence),
	}
}

func (c *Cache) lock(ctx context.Context, key string) (func(), error) {
	lockCtx := ctx
	if c.cfg.LockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, c.cfg.LockTimeout)
		defer cancel()
	}
	unlock, err := c.locks.Lock(lockCtx, key)
	if err != nil {
		if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("lock %s after %s: %w", key, c.cfg.LockTimeout, ErrLockTimeout)
		}
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	return unlock, nil
}

func (c *Cache) refresh(ctx context.Context, key Key) ([]model.OutPoint, error) {
	list, err := c.provider.GetUtxoSet(ctx, key.Address, key.TokenID)
	if err != nil {
		return nil, fmt.Errorf("get utxo set %s: %w", key, err)
	}
	c.lists.Store(key, list)
	c.logger.Debug("utxo set refreshed", zap.Stringer("key", key), zap.Int("outputs", len(list)))
	return list, nil
}

func (c *Cache) cached(key Key) []model.OutPoint {
	v, ok := c.lists.Load(key)
	if !ok {
		return nil
	}
	return v.([]model.OutPoint)
}

// GetStasUtxos selects unreserved token outputs of address worth at least
// satoshis and reserves them. The provider is consulted when the cached list is
// empty or does not cover the request.
func (c *Cache) GetStasUtxos(ctx context.Context, address, tokenID string, satoshis uint64) (_ []model.OutPoint, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("get_stas_utxos", err, started) }()

	key := Key{Address: address, TokenID: tokenID}
	unlock, err := c.lock(ctx, key.String())
	if err != nil {
		return nil, err
	}
	defer unlock()

	candidates := c.markers.filter(c.cached(key))
	if model.SumSatoshis(candidates) < satoshis || len(candidates) == 0 {
		list, err := c.refresh(ctx, key)
		if err != nil {
			return nil, err
		}
		candidates = c.markers.filter(list)
	}

	selected, err := selectExact(candidates, satoshis)
	if err != nil {
		var funds *model.NotEnoughFundsError
		if errors.As(err, &funds) {
			funds.Address = address
			funds.TokenID = tokenID
		}
		return nil, err
	}

	c.metrics.ObserveReserved(markerEnumerated.String(), c.markers.reserve(selected, markerEnumerated))
	c.metrics.ObserveSelected(len(selected))
	c.logger.Debug("token outputs selected",
		zap.String("address", address),
		zap.String("token_id", tokenID),
		zap.Uint64("requested", satoshis),
		zap.Int("outputs", len(selected)),
	)
	return selected, nil
}

// MarkBroadcasted reserves outputs spent by a transaction sent to the network.
func (c *Cache) MarkBroadcasted(outpoints ...model.OutPoint) {
	c.metrics.ObserveReserved(markerBroadcasted.String(), c.markers.reserve(outpoints, markerBroadcasted))
}

// Release returns selected but unspent outputs to the pool.
func (c *Cache) Release(outpoints ...model.OutPoint) {
	c.markers.release(outpoints)
}

// IsReserved reports whether op carries a live marker.
func (c *Cache) IsReserved(op model.OutPoint) bool {
	return c.markers.reserved(op)
}

// Invalidate drops the cached list of a key so the next selection refreshes it.
func (c *Cache) Invalidate(address, tokenID string) {
	c.lists.Delete(Key{Address: address, TokenID: tokenID})
}

// Warm refreshes keys concurrently with Config.WarmupWorkers workers.
func (c *Cache) Warm(ctx context.Context, keys []Key) (err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("warm", err, started) }()

	return workerpool.Process(ctx, c.cfg.WarmupWorkers, keys, func(ctx context.Context, key Key) error {
		unlock, err := c.lock(ctx, key.String())
		if err != nil {
			return err
		}
		defer unlock()
		_, err = c.refresh(ctx, key)
		return err
	}, func() {
		c.logger.Warn("cache warm-up canceled")
	})
}
