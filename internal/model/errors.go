package model

import "fmt"

// NotEnoughFundsError reports that the known spendable set cannot cover a request.
type NotEnoughFundsError struct {
	Requested uint64
	Available uint64
	Address   string
	TokenID   string
}

func (e *NotEnoughFundsError) Error() string {
	if e.TokenID == "" {
		return fmt.Sprintf("not enough funds on %s: requested %d, available %d", e.Address, e.Requested, e.Available)
	}
	return fmt.Sprintf("not enough funds on %s for token %s: requested %d, available %d", e.Address, e.TokenID, e.Requested, e.Available)
}
