package model

import (
	"encoding/json"
	"fmt"
)

// TokenSchema describes a token and is stored in the contract transaction.
// TokenID is the redeem address of the token, a hash160 address.
type TokenSchema struct {
	Name             string `json:"name"`
	TokenID          string `json:"tokenId"`
	Symbol           string `json:"symbol"`
	SatoshisPerToken uint64 `json:"satsPerToken"`
	Decimals         uint8  `json:"decimals"`
}

// Marshal serialises the schema for the contract data field.
func (s TokenSchema) Marshal() ([]byte, error) {
	if s.SatoshisPerToken == 0 {
		return nil, fmt.Errorf("token %s: satoshis per token must be positive", s.Symbol)
	}
	return json.Marshal(s)
}

// UnmarshalTokenSchema parses a contract data field.
func UnmarshalTokenSchema(data []byte) (TokenSchema, error) {
	var s TokenSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return TokenSchema{}, fmt.Errorf("decode token schema: %w", err)
	}
	return s, nil
}

// RedeemAddress decodes the token id into its canonical redeem address.
func (s TokenSchema) RedeemAddress() (*Address, error) {
	return DecodeAddress(s.TokenID)
}
