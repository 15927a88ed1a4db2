package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/metrics"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/provider/node"
	"github.com/goodnatureofminers/stas-toolkit/internal/stas/bundle"
	"github.com/goodnatureofminers/stas-toolkit/internal/utxo/cache"
	"github.com/goodnatureofminers/stas-toolkit/internal/utxo/repository/clickhouse"
)

type config struct {
	ClickhouseDSN string  `long:"clickhouse-dsn" env:"STAS_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Network       string  `long:"network" env:"STAS_NETWORK" description:"network name" default:"mainnet"`
	RPCURL        string  `long:"rpc-url" env:"STAS_RPC_URL" description:"node RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser       string  `long:"rpc-user" env:"STAS_RPC_USER" description:"node RPC username"`
	RPCPassword   string  `long:"rpc-password" env:"STAS_RPC_PASSWORD" description:"node RPC password"`
	RPCRate       int     `long:"rpc-rate" env:"STAS_RPC_RATE" description:"RPC requests per second, 0 for unlimited" default:"20"`
	FallbackFee   float64 `long:"fallback-fee" env:"STAS_FALLBACK_FEE" description:"satoshis per byte when the node has no estimate" default:"0.5"`
	SenderWIF     string  `long:"sender-wif" env:"STAS_SENDER_WIF" description:"WIF key owning the tokens" required:"true"`
	FunderWIF     string  `long:"funder-wif" env:"STAS_FUNDER_WIF" description:"WIF key paying the fees" required:"true"`
	TokenID       string  `long:"token-id" description:"token id (redeem address)" required:"true"`
	Destination   string  `long:"destination" description:"receiving address" required:"true"`
	Satoshis      uint64  `long:"satoshis" description:"token satoshis to send" required:"true"`
	Note          string  `long:"note" description:"note attached to a whole-output transfer"`
	Broadcast     bool    `long:"broadcast" description:"broadcast the bundle and record it in ClickHouse"`
	MetricsAddr   string  `long:"metrics-addr" env:"STAS_METRICS_ADDR" description:"address for metrics server, empty to disable"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("stas transfer failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}
	sender, err := model.PrivateKeyFromWIF(cfg.SenderWIF, network)
	if err != nil {
		return fmt.Errorf("sender key: %w", err)
	}
	funder, err := model.PrivateKeyFromWIF(cfg.FunderWIF, network)
	if err != nil {
		return fmt.Errorf("funder key: %w", err)
	}
	destination, err := model.DecodeAddress(cfg.Destination)
	if err != nil {
		return fmt.Errorf("destination: %w", err)
	}
	if destination.Network != network {
		return fmt.Errorf("destination %s is not a %s address", destination, network)
	}

	if cfg.MetricsAddr != "" {
		startMetricsServer(ctx, cfg.MetricsAddr, logger)
	}

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, network, logger, metrics.NewClickhouseRepository(network))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close repository", zap.Error(err))
		}
	}()

	rpcClient, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()

	nodeCfg := node.DefaultConfig()
	nodeCfg.RequestsPerSecond = cfg.RPCRate
	nodeCfg.FallbackSatoshisPerByte = decimal.NewFromFloat(cfg.FallbackFee)
	nodeClient := node.New(logger, rpcClient, metrics.NewRPCClient(network), nodeCfg)

	utxos := cache.New(logger, metrics.NewUtxoCache(network), repo, cache.DefaultConfig())
	bundler := bundle.New(logger, metrics.NewBundle(network), utxos, nodeClient, nodeClient, bundle.DefaultConfig())

	req := bundle.TransferRequest{
		Sender:      sender,
		Funder:      funder,
		TokenID:     cfg.TokenID,
		Destination: destination,
		Satoshis:    cfg.Satoshis,
	}
	if cfg.Note != "" {
		req.Note = [][]byte{[]byte(cfg.Note)}
	}

	if err := utxos.Warm(ctx, cacheKeys(req)); err != nil {
		logger.Warn("failed to warm utxo cache", zap.Error(err))
	}

	b, err := bundler.Transfer(ctx, req)
	if err != nil {
		return err
	}

	if cfg.Broadcast {
		publisher := bundle.NewPublisher(logger, nodeClient, repo, utxos)
		if err := publisher.Publish(ctx, b); err != nil {
			return err
		}
	} else {
		utxos.Release(b.SpentOutPoints...)
	}

	return printBundle(b, cfg.Broadcast)
}

// cacheKeys lists the sender's token outputs and the funder's plain outputs.
func cacheKeys(req bundle.TransferRequest) []cache.Key {
	return []cache.Key{
		{Address: req.Sender.Address().String(), TokenID: req.TokenID},
		{Address: req.Funder.Address().String()},
	}
}

type bundleOutput struct {
	Broadcast    bool                `json:"broadcast"`
	Fee          uint64              `json:"fee"`
	Transactions []transactionOutput `json:"transactions"`
}

type transactionOutput struct {
	TxID string `json:"txid"`
	Size int    `json:"size"`
	Hex  string `json:"hex"`
}

func printBundle(b *bundle.Bundle, broadcast bool) error {
	out := bundleOutput{Broadcast: broadcast, Fee: b.Fee}
	for _, tx := range b.Transactions {
		out.Transactions = append(out.Transactions, transactionOutput{TxID: tx.ID(), Size: tx.Size(), Hex: tx.Hex()})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("rpc url scheme %q not supported", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   parsed.Scheme == "http",
	}, nil)
}
