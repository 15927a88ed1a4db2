// Package model defines the domain values shared by the STAS transaction toolkit.
package model

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network selects address version bytes and key-encoding prefixes.
type Network string

var (
	Testnet Network = "testnet"
	Mainnet Network = "mainnet"
)

// ParseNetwork maps user supplied network names onto a Network.
func ParseNetwork(name string) (Network, error) {
	switch strings.ToLower(name) {
	case "main", "mainnet", "bsv":
		return Mainnet, nil
	case "test", "testnet", "testnet3":
		return Testnet, nil
	default:
		return "", fmt.Errorf("unsupported network %q", name)
	}
}

// Params returns chain parameters carrying the network's version bytes.
func (n Network) Params() *chaincfg.Params {
	if n == Testnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

func networkForAddressVersion(version byte) (Network, bool) {
	switch version {
	case chaincfg.MainNetParams.PubKeyHashAddrID:
		return Mainnet, true
	case chaincfg.TestNet3Params.PubKeyHashAddrID:
		return Testnet, true
	default:
		return "", false
	}
}
