package model

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
)

// Hash160Size is the length of an address hash.
const Hash160Size = 20

var (
	// ErrInvalidAddress is returned for malformed address strings or hashes.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrChecksumMismatch is returned when a base58check checksum does not verify.
	ErrChecksumMismatch = errors.New("address checksum mismatch")
)

// Address is a base58check encoded hash160 together with the network and script
// type it was derived for.
type Address struct {
	Value      string
	Hash160    []byte
	Network    Network
	ScriptType ScriptType
}

// NewAddressFromHash160 encodes hash for network.
func NewAddressFromHash160(hash []byte, network Network) (*Address, error) {
	if len(hash) != Hash160Size {
		return nil, fmt.Errorf("hash160 length %d: %w", len(hash), ErrInvalidAddress)
	}
	h := append([]byte(nil), hash...)
	return &Address{
		Value:      base58.CheckEncode(h, network.Params().PubKeyHashAddrID),
		Hash160:    h,
		Network:    network,
		ScriptType: P2PKH,
	}, nil
}

// NewAddressFromPublicKey derives the address of a compressed public key.
func NewAddressFromPublicKey(pub *btcec.PublicKey, network Network) *Address {
	addr, _ := NewAddressFromHash160(btcutil.Hash160(pub.SerializeCompressed()), network)
	return addr
}

// DecodeAddress parses a base58check address. The decoded payload must be exactly
// 25 bytes: version, 20 byte hash and a 4 byte double-SHA256 checksum.
func DecodeAddress(value string) (*Address, error) {
	decoded := base58.Decode(value)
	if len(decoded) != 1+Hash160Size+4 {
		return nil, fmt.Errorf("address %q decodes to %d bytes: %w", value, len(decoded), ErrInvalidAddress)
	}
	hash, version, err := base58.CheckDecode(value)
	if err != nil {
		if errors.Is(err, base58.ErrChecksum) {
			return nil, fmt.Errorf("address %q: %w", value, ErrChecksumMismatch)
		}
		return nil, fmt.Errorf("address %q: %w", value, ErrInvalidAddress)
	}
	network, ok := networkForAddressVersion(version)
	if !ok {
		return nil, fmt.Errorf("address %q version %#x: %w", value, version, ErrInvalidAddress)
	}
	return &Address{
		Value:      value,
		Hash160:    hash,
		Network:    network,
		ScriptType: P2PKH,
	}, nil
}

// String returns the base58check form.
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return a.Value
}

// Equal compares hash and network.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Network == other.Network && bytes.Equal(a.Hash160, other.Hash160)
}
