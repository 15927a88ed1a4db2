package bundle

// Config tunes how bundles are shaped.
type Config struct {
	// MergeTransferInterval forces a transfer to self after this many merge
	// levels. Zero disables it.
	MergeTransferInterval int
	// MinSplitRemainder is the smallest change that is split into several
	// outputs; smaller change stays in one output.
	MinSplitRemainder uint64
	// RemainderSlices is how many outputs larger change is split into.
	RemainderSlices int
}

// DefaultConfig returns the settings used by the command line tools.
func DefaultConfig() Config {
	return Config{
		MergeTransferInterval: 3,
		MinSplitRemainder:     100,
		RemainderSlices:       3,
	}
}
