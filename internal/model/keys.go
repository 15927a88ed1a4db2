package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
)

// ErrInvalidPrivateKey is returned for undecodable or foreign-network keys.
var ErrInvalidPrivateKey = errors.New("invalid private key")

// PrivateKey owns a secp256k1 secret scalar bound to a network.
type PrivateKey struct {
	key     *btcec.PrivateKey
	network Network

	pubOnce sync.Once
	pub     *btcec.PublicKey
	address *Address
}

// NewPrivateKey generates a fresh key.
func NewPrivateKey(network Network) (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate private key: %w", err)
	}
	return &PrivateKey{key: key, network: network}, nil
}

// PrivateKeyFromBytes wraps a 32 byte secret.
func PrivateKeyFromBytes(secret []byte, network Network) (*PrivateKey, error) {
	if len(secret) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("secret length %d: %w", len(secret), ErrInvalidPrivateKey)
	}
	key, _ := btcec.PrivKeyFromBytes(secret)
	return &PrivateKey{key: key, network: network}, nil
}

// PrivateKeyFromWIF decodes a wallet import format key for network.
func PrivateKeyFromWIF(wif string, network Network) (*PrivateKey, error) {
	decoded, err := btcutil.DecodeWIF(wif)
	if err != nil {
		return nil, fmt.Errorf("decode wif: %w: %w", ErrInvalidPrivateKey, err)
	}
	if !decoded.IsForNet(network.Params()) {
		return nil, fmt.Errorf("wif is not for %s: %w", network, ErrInvalidPrivateKey)
	}
	return &PrivateKey{key: decoded.PrivKey, network: network}, nil
}

// WIF encodes the key with the compressed-public-key flag.
func (k *PrivateKey) WIF() string {
	wif, err := btcutil.NewWIF(k.key, k.network.Params(), true)
	if err != nil {
		return ""
	}
	return wif.String()
}

// Network returns the key's network.
func (k *PrivateKey) Network() Network {
	return k.network
}

// Key exposes the underlying secp256k1 key for signing.
func (k *PrivateKey) Key() *btcec.PrivateKey {
	return k.key
}

func (k *PrivateKey) derive() {
	k.pubOnce.Do(func() {
		k.pub = k.key.PubKey()
		k.address = NewAddressFromPublicKey(k.pub, k.network)
	})
}

// PublicKey returns the cached public key.
func (k *PrivateKey) PublicKey() *btcec.PublicKey {
	k.derive()
	return k.pub
}

// PublicKeyBytes returns the compressed public key encoding.
func (k *PrivateKey) PublicKeyBytes() []byte {
	return k.PublicKey().SerializeCompressed()
}

// Address returns the P2PKH address of the key.
func (k *PrivateKey) Address() *Address {
	k.derive()
	return k.address
}

// Equal reports whether both keys hold the same secret on the same network.
func (k *PrivateKey) Equal(other *PrivateKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.network == other.network && k.key.Key.Equals(&other.key.Key)
}
