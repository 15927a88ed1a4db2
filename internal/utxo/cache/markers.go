package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

type marker int

const (
	markerEnumerated marker = iota + 1
	markerBroadcasted
)

func (m marker) String() string {
	if m == markerBroadcasted {
		return "broadcasted"
	}
	return "enumerated"
}

type markers struct {
	store *gocache.Cache
	cfg   Config
}

func newMarkers(cfg Config) *markers {
	return &markers{store: gocache.New(gocache.NoExpiration, cfg.MarkerCleanupInterval), cfg: cfg}
}

// reserve marks outpoints and returns how many markers were written.
// A marker never downgrades an existing one; broadcasting refreshes the TTL.
func (m *markers) reserve(outpoints []model.OutPoint, kind marker) int {
	ttl := m.cfg.EnumeratedTTL
	if kind == markerBroadcasted {
		ttl = m.cfg.BroadcastedTTL
	}
	if ttl <= 0 {
		return 0
	}

	written := 0
	for _, op := range outpoints {
		key := op.Key()
		if cur, ok := m.store.Get(key); ok && cur.(marker) > kind {
			continue
		}
		m.store.Set(key, kind, ttl)
		written++
	}
	return written
}

// release drops enumerated markers; broadcasted ones stay until they expire.
func (m *markers) release(outpoints []model.OutPoint) {
	for _, op := range outpoints {
		key := op.Key()
		if cur, ok := m.store.Get(key); ok && cur.(marker) == markerEnumerated {
			m.store.Delete(key)
		}
	}
}

func (m *markers) reserved(op model.OutPoint) bool {
	_, ok := m.store.Get(op.Key())
	return ok
}

func (m *markers) filter(outpoints []model.OutPoint) []model.OutPoint {
	out := make([]model.OutPoint, 0, len(outpoints))
	for _, op := range outpoints {
		if !m.reserved(op) {
			out = append(out, op)
		}
	}
	return out
}
