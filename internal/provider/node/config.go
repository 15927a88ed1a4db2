package node

import "github.com/shopspring/decimal"

// Config holds the node client settings.
type Config struct {
	// RequestsPerSecond caps calls to the node. Zero disables the limit.
	RequestsPerSecond int
	// ConfirmationTarget is passed to estimatesmartfee.
	ConfirmationTarget int64
	// FallbackSatoshisPerByte is used when the node has no estimate.
	FallbackSatoshisPerByte decimal.Decimal
	AllowHighFees           bool
}

// DefaultConfig returns the settings used by the command line tools.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond:       20,
		ConfirmationTarget:      6,
		FallbackSatoshisPerByte: decimal.RequireFromString("0.5"),
	}
}
