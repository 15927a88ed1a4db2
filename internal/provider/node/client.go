// Package node talks to a full node over JSON-RPC: it broadcasts signed
// transactions, fetches raw transactions for merge proofs and estimates fees.
package node

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/shopspring/decimal"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// satoshis per byte in one BTC per kilobyte
var btcPerKBToSatsPerByte = decimal.NewFromInt(100_000)

// BroadcastResult is the node's verdict on a transaction. A rejected
// transaction is a result, not an error.
type BroadcastResult struct {
	Success bool
	TxID    string
	Message string
	Code    int
}

// Client is a rate limited node RPC client. Every call is observed by Metrics.
type Client struct {
	rpc     RPC
	metrics Metrics
	limiter ratelimit.Limiter
	logger  *zap.Logger
	cfg     Config
}

// New wraps rpc. A zero Config.RequestsPerSecond leaves calls unlimited.
func New(logger *zap.Logger, rpc RPC, metrics Metrics, cfg Config) *Client {
	limiter := ratelimit.NewUnlimited()
	if cfg.RequestsPerSecond > 0 {
		limiter = ratelimit.New(cfg.RequestsPerSecond)
	}
	return &Client{
		rpc:     rpc,
		metrics: metrics,
		limiter: limiter,
		logger:  logger.Named("node_client"),
		cfg:     cfg,
	}
}

func (c *Client) take(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.limiter.Take()
	return ctx.Err()
}

// Broadcast sends a serialized transaction to the node.
func (c *Client) Broadcast(ctx context.Context, rawHex string) (_ BroadcastResult, err error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("decode transaction hex: %w", err)
	}
	var msg wire.MsgTx
	if err = msg.Deserialize(bytes.NewReader(raw)); err != nil {
		return BroadcastResult{}, fmt.Errorf("decode transaction: %w", err)
	}
	if err = c.take(ctx); err != nil {
		return BroadcastResult{}, err
	}

	started := time.Now()
	defer func() {
		c.metrics.Observe("send_raw_transaction", err, started)
	}()

	hash, err := c.rpc.SendRawTransaction(&msg, c.cfg.AllowHighFees)
	if err != nil {
		var rpcErr *btcjson.RPCError
		if errors.As(err, &rpcErr) {
			c.logger.Warn("transaction rejected",
				zap.String("txid", msg.TxHash().String()),
				zap.Int("code", int(rpcErr.Code)),
				zap.String("message", rpcErr.Message),
			)
			return BroadcastResult{
				TxID:    msg.TxHash().String(),
				Message: rpcErr.Message,
				Code:    int(rpcErr.Code),
			}, nil
		}
		return BroadcastResult{}, fmt.Errorf("send raw transaction: %w", err)
	}

	c.logger.Debug("transaction broadcast", zap.Stringer("txid", hash))
	return BroadcastResult{Success: true, TxID: hash.String()}, nil
}

// GetRawTransaction returns the serialized transaction with id txid.
func (c *Client) GetRawTransaction(ctx context.Context, txid string) (_ []byte, err error) {
	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return nil, fmt.Errorf("parse txid %q: %w", txid, err)
	}
	if err = c.take(ctx); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() {
		c.metrics.Observe("get_raw_transaction", err, started)
	}()

	tx, err := c.rpc.GetRawTransaction(hash)
	if err != nil {
		return nil, fmt.Errorf("get raw transaction %s: %w", txid, err)
	}

	var buf bytes.Buffer
	buf.Grow(tx.MsgTx().SerializeSize())
	if err = tx.MsgTx().Serialize(&buf); err != nil {
		return nil, fmt.Errorf("serialize transaction %s: %w", txid, err)
	}
	return buf.Bytes(), nil
}

// SatoshisPerByte asks the node for a fee estimate and falls back to the
// configured rate when the node cannot provide one.
func (c *Client) SatoshisPerByte(ctx context.Context) (decimal.Decimal, error) {
	if err := c.take(ctx); err != nil {
		return decimal.Zero, err
	}

	rate, err := c.estimate()
	if err != nil {
		c.logger.Warn("fee estimate unavailable, using fallback",
			zap.Stringer("fallback", c.cfg.FallbackSatoshisPerByte),
			zap.Error(err),
		)
		return c.cfg.FallbackSatoshisPerByte, nil
	}
	return rate, nil
}

// estimate converts the node estimate from BTC per kilobyte.
func (c *Client) estimate() (_ decimal.Decimal, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("estimate_smart_fee", err, started)
	}()

	res, err := c.rpc.EstimateSmartFee(c.cfg.ConfirmationTarget, &btcjson.EstimateModeConservative)
	if err != nil {
		return decimal.Zero, fmt.Errorf("estimate smart fee: %w", err)
	}
	if res.FeeRate == nil || *res.FeeRate <= 0 {
		return decimal.Zero, fmt.Errorf("estimate smart fee: no rate %v", res.Errors)
	}
	return decimal.NewFromFloat(*res.FeeRate).Mul(btcPerKBToSatsPerByte), nil
}
