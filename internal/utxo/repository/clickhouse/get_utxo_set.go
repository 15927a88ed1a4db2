package clickhouse

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/script"
)

const getUtxoSetQuery = `
SELECT
	txid,
	vout,
	satoshis,
	script_hex,
	script_type
FROM stas_unspent_outputs FINAL
WHERE network = ? AND address = ? AND token_id = ? AND spent = 0
ORDER BY satoshis DESC, txid ASC, vout ASC`

// GetUtxoSet returns the unspent outputs of address. An empty tokenID selects
// plain outputs. Rows whose locking script does not classify as the stored
// script type, or does not pay address, are skipped.
func (r *Repository) GetUtxoSet(ctx context.Context, address, tokenID string) (_ []model.OutPoint, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("get_utxo_set", err, start)
	}()

	rows, err := r.conn.Query(ctx, getUtxoSetQuery, string(r.network), address, tokenID)
	if err != nil {
		return nil, fmt.Errorf("query utxo set: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var (
		outpoints []model.OutPoint
		rejected  int
	)
	for rows.Next() {
		var (
			op         model.OutPoint
			scriptHex  string
			scriptType string
		)
		if err = rows.Scan(
			&op.TxID,
			&op.Vout,
			&op.Satoshis,
			&scriptHex,
			&scriptType,
		); err != nil {
			return nil, fmt.Errorf("scan unspent output: %w", err)
		}

		op.Address = address
		op.TokenID = tokenID
		op.ScriptType = model.ScriptType(scriptType)
		if op.ScriptPubKey, err = hex.DecodeString(scriptHex); err != nil {
			return nil, fmt.Errorf("decode script of %s: %w", op.Key(), err)
		}

		if verr := r.verify(op); verr != nil {
			rejected++
			r.logger.Warn("unspent output rejected", zap.String("outpoint", op.Key()), zap.Error(verr))
			continue
		}
		outpoints = append(outpoints, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unspent outputs: %w", err)
	}

	r.metrics.ObserveRejected(rejected)
	return outpoints, nil
}

func (r *Repository) verify(op model.OutPoint) error {
	locking := script.Classify(op.ScriptPubKey)
	if locking.Type != op.ScriptType {
		return fmt.Errorf("stored script type %s, classified %s", op.ScriptType, locking.Type)
	}
	if addr := locking.Address(r.network); addr == nil || addr.String() != op.Address {
		return fmt.Errorf("locking script does not pay %s", op.Address)
	}
	if op.TokenID == "" {
		return nil
	}
	if token := locking.TokenAddress(r.network); token == nil || token.String() != op.TokenID {
		return fmt.Errorf("locking script is not token %s", op.TokenID)
	}
	return nil
}
