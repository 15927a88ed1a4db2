package cache

import "time"

// Config tunes the cache. A zero marker TTL disables that marker kind.
type Config struct {
	// EnumeratedTTL hides outputs picked by a selection from concurrent selections.
	EnumeratedTTL time.Duration
	// BroadcastedTTL hides outputs spent by a broadcast transaction until the
	// provider catches up.
	BroadcastedTTL time.Duration
	// MarkerCleanupInterval is how often expired markers are purged; zero disables
	// the background purge, expired markers are then ignored on read.
	MarkerCleanupInterval time.Duration
	// LockTimeout bounds the wait for the per-key lock. Zero waits for ctx only.
	LockTimeout time.Duration
	// MaxEmptyCycles stops sequential selection after this many provider scans
	// without a new output.
	MaxEmptyCycles int
	CycleDelay     time.Duration
	WarmupWorkers  int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		EnumeratedTTL:         30 * time.Second,
		BroadcastedTTL:        10 * time.Minute,
		MarkerCleanupInterval: time.Minute,
		LockTimeout:           10 * time.Second,
		MaxEmptyCycles:        3,
		CycleDelay:            time.Second,
		WarmupWorkers:         4,
	}
}
