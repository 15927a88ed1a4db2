package cache

import (
	"context"
	"time"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Provider is the authoritative UTXO set source. An empty tokenID asks for
	// plain outputs of address.
	Provider interface {
		GetUtxoSet(ctx context.Context, address, tokenID string) ([]model.OutPoint, error)
	}

	Metrics interface {
		Observe(operation string, err error, started time.Time)
		ObserveSelected(count int)
		ObserveReserved(kind string, count int)
	}
)
