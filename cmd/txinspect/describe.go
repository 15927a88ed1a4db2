package main

import (
	"encoding/hex"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
	"github.com/goodnatureofminers/stas-toolkit/internal/transaction"
)

type txView struct {
	TxID    string       `json:"txid"`
	Size    int          `json:"size"`
	Inputs  []inputView  `json:"inputs"`
	Outputs []outputView `json:"outputs"`
}

type inputView struct {
	PrevTxID string `json:"prevTxId"`
	Vout     uint32 `json:"vout"`
	Sender   string `json:"sender,omitempty"`
}

type outputView struct {
	Index      uint32           `json:"index"`
	Satoshis   uint64           `json:"satoshis"`
	Type       model.ScriptType `json:"type"`
	Address    string           `json:"address,omitempty"`
	TokenID    string           `json:"tokenId,omitempty"`
	Symbol     string           `json:"symbol,omitempty"`
	Splittable *bool            `json:"splittable,omitempty"`
	Data       []string         `json:"data,omitempty"`
}

func describe(tx *transaction.Transaction, network model.Network) txView {
	view := txView{TxID: tx.ID(), Size: tx.Size()}
	for _, in := range tx.Inputs {
		view.Inputs = append(view.Inputs, inputView{
			PrevTxID: in.PrevTxID,
			Vout:     in.Vout,
			Sender:   in.SenderAddress().String(),
		})
	}
	for _, out := range tx.Outputs {
		locking := out.Locking()
		ov := outputView{
			Index:    out.Index,
			Satoshis: out.Satoshis,
			Type:     locking.Type,
			Address:  locking.Address(network).String(),
		}
		if locking.Type == model.P2STAS {
			ov.TokenID = out.TokenID()
			ov.Symbol = locking.Symbol()
			if ok, err := locking.IsSplittable(); err == nil {
				ov.Splittable = &ok
			}
		}
		for _, d := range locking.Data {
			ov.Data = append(ov.Data, hex.EncodeToString(d))
		}
		view.Outputs = append(view.Outputs, ov)
	}
	return view
}
