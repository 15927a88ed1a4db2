package node

import (
	"context"

	"github.com/shopspring/decimal"
)

// FixedFeeRate serves a constant fee rate, for offline builds and tests.
type FixedFeeRate struct {
	Rate decimal.Decimal
}

func (f FixedFeeRate) SatoshisPerByte(context.Context) (decimal.Decimal, error) {
	return f.Rate, nil
}
