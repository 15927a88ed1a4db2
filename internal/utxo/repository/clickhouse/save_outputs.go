package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

const insertOutputsQuery = `
INSERT INTO stas_unspent_outputs (
	network,
	address,
	token_id,
	txid,
	vout,
	satoshis,
	script_hex,
	script_type,
	spent,
	updated_at
) VALUES`

// SaveOutputs records new spendable outputs.
func (r *Repository) SaveOutputs(ctx context.Context, outpoints []model.OutPoint) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("save_outputs", err, start)
	}()

	return r.insertOutputs(ctx, outpoints, false)
}

// MarkSpent writes a newer version of each outpoint with the spent flag set.
// ReplacingMergeTree keeps the latest version, so reads with FINAL skip them.
func (r *Repository) MarkSpent(ctx context.Context, outpoints []model.OutPoint) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("mark_spent", err, start)
	}()

	return r.insertOutputs(ctx, outpoints, true)
}

func (r *Repository) insertOutputs(ctx context.Context, outpoints []model.OutPoint, spent bool) (err error) {
	if len(outpoints) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertOutputsQuery)
	if err != nil {
		return fmt.Errorf("prepare unspent outputs batch: %w", err)
	}
	defer func() {
		if err != nil {
			_ = batch.Abort()
		}
	}()

	var flag uint8
	if spent {
		flag = 1
	}
	updated := time.Now().UTC()
	for _, op := range outpoints {
		if err = batch.Append(
			string(r.network),
			op.Address,
			op.TokenID,
			op.TxID,
			op.Vout,
			op.Satoshis,
			hex.EncodeToString(op.ScriptPubKey),
			string(op.ScriptType),
			flag,
			updated,
		); err != nil {
			return fmt.Errorf("append unspent output %s: %w", op.Key(), err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert unspent outputs: %w", err)
	}
	return nil
}
