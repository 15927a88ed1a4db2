package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
)

type config struct {
	Hex     string `long:"hex" description:"raw transaction hex, read from --file or stdin when empty"`
	File    string `long:"file" description:"file holding raw transaction hex"`
	Network string `long:"network" env:"STAS_NETWORK" description:"network name" default:"mainnet"`
}

func main() {
	cfg := config{}

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

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		logger.Fatal("txinspect failed", zap.Error(err))
	}
}

func run(cfg config, stdin io.Reader, stdout io.Writer) error {
	network, err := model.ParseNetwork(cfg.Network)
	if err != nil {
		return err
	}

	raw := cfg.Hex
	if raw == "" {
		src := stdin
		if cfg.File != "" {
			f, err := os.Open(cfg.File)
			if err != nil {
				return err
			}
			defer f.Close()
			src = f
		}
		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("read transaction: %w", err)
		}
		raw = string(data)
	}

	tx, err := transaction.ParseHex(strings.TrimSpace(raw), network)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(describe(tx, network))
}
