package cache

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

// sequence is the restartable funding-output walk of one address. queue holds
// the unreserved outputs of the last provider scan.
type sequence struct {
	queue       []model.OutPoint
	emptyCycles int
}

func (c *Cache) sequenceFor(address string) *sequence {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	s, ok := c.sequences[address]
	if !ok {
		s = &sequence{}
		c.sequences[address] = s
	}
	return s
}

// ResetSequence restarts the funding walk of address.
func (c *Cache) ResetSequence(address string) {
	c.seqMu.Lock()
	defer c.seqMu.Unlock()
	delete(c.sequences, address)
}

// GetNextUtxoOrNull returns the next unreserved plain output of address, largest
// first, rescanning the provider when the current cycle is used up. It returns nil
// after Config.MaxEmptyCycles consecutive scans find every output reserved.
// Released outputs and outputs whose marker expired are offered again.
func (c *Cache) GetNextUtxoOrNull(ctx context.Context, address string) (_ *model.OutPoint, err error) {
	started := time.Now()
	defer func() { c.metrics.Observe("get_next_utxo", err, started) }()

	key := Key{Address: address}
	for {
		op, exhausted, err := c.nextInCycle(ctx, key)
		if err != nil {
			return nil, err
		}
		if op != nil || exhausted {
			return op, nil
		}
		if err := c.clock.Sleep(ctx, c.cfg.CycleDelay); err != nil {
			return nil, err
		}
	}
}

// nextInCycle pops the next output or runs one provider scan. It reports
// exhausted once the empty cycle budget is spent.
func (c *Cache) nextInCycle(ctx context.Context, key Key) (*model.OutPoint, bool, error) {
	unlock, err := c.lock(ctx, key.String())
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	seq := c.sequenceFor(key.Address)
	if op := c.popUnreserved(seq); op != nil {
		return op, false, nil
	}

	list, err := c.refresh(ctx, key)
	if err != nil {
		return nil, false, err
	}
	fresh := c.markers.filter(list)

	if len(fresh) == 0 {
		seq.emptyCycles++
		c.logger.Debug("empty funding cycle", zap.String("address", key.Address), zap.Int("cycle", seq.emptyCycles))
		return nil, seq.emptyCycles >= c.cfg.MaxEmptyCycles, nil
	}

	seq.emptyCycles = 0
	sort.SliceStable(fresh, func(i, j int) bool { return fresh[i].Satoshis > fresh[j].Satoshis })
	seq.queue = fresh
	return c.popUnreserved(seq), false, nil
}

func (c *Cache) popUnreserved(seq *sequence) *model.OutPoint {
	for len(seq.queue) > 0 {
		op := seq.queue[0]
		seq.queue = seq.queue[1:]
		if c.markers.reserved(op) {
			continue
		}
		c.metrics.ObserveReserved(markerEnumerated.String(), c.markers.reserve([]model.OutPoint{op}, markerEnumerated))
		c.metrics.ObserveSelected(1)
		return &op
	}
	return nil
}
