package script

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

// ErrNoSplitFlag is returned by IsSplittable when the token fields stop before the
// flag position.
var ErrNoSplitFlag = errors.New("locking script has no split flag field")

// LockingScript is the classification result of a locking script.
type LockingScript struct {
	Type     model.ScriptType
	Receiver []byte
	// Data holds the pushes after OP_RETURN. For P2STAS: 0 token id, 1 split flag
	// or symbol, 2 note.
	Data [][]byte
}

type candidate struct {
	tmpl     *template
	alive    bool
	tail     bool
	seen     int
	receiver []byte
	data     [][]byte
}

func (c *candidate) feed(tok Token, index int) {
	if !c.alive {
		return
	}
	c.seen++
	if c.tail {
		if tok.IsPush() {
			c.data = append(c.data, append([]byte{}, tok.Data...))
		}
		return
	}
	if index >= len(c.tmpl.tokens) {
		if index == len(c.tmpl.tokens) && tok.Opcode == OpReturn {
			c.tail = true
			return
		}
		c.alive = false
		return
	}

	want := c.tmpl.tokens[index]
	switch {
	case want.dataLen == anyLength:
		c.alive = tok.IsPush() && tok.Opcode != OpFalse
	case want.receiver:
		c.alive = tok.IsPush() && len(tok.Data) == receiverLength
		if c.alive {
			c.receiver = tok.Data
		}
	default:
		c.alive = tok.Opcode == want.opcode && len(tok.Data) == want.dataLen &&
			(want.data == nil || bytes.Equal(tok.Data, want.data))
	}
}

func (c *candidate) matched() bool {
	if !c.alive || c.seen < len(c.tmpl.tokens) {
		return false
	}
	return c.tail || !c.tmpl.tailRequired
}

// Classify matches script against every template in a single pass.
func Classify(script []byte) LockingScript {
	ls, err := ClassifyReader(codec.NewBytesReader(script), len(script))
	if err != nil {
		// an in-memory reader of exactly len(script) bytes cannot run dry
		return LockingScript{Type: model.Unknown}
	}
	return ls
}

// ClassifyReader classifies length bytes of script read from r.
func ClassifyReader(r *codec.Reader, length int) (LockingScript, error) {
	var candidates [8]candidate
	n := len(templates)
	for i := range templates {
		candidates[i] = candidate{tmpl: &templates[i], alive: true}
	}

	err := ReadTokens(r, length, func(tok Token, index int, _ bool) {
		for i := 0; i < n; i++ {
			candidates[i].feed(tok, index)
		}
	})
	if err != nil {
		return LockingScript{Type: model.Unknown}, fmt.Errorf("classify locking script: %w", err)
	}

	for i := 0; i < n; i++ {
		if c := candidates[i]; c.matched() {
			return LockingScript{Type: c.tmpl.scriptType, Receiver: c.receiver, Data: c.data}, nil
		}
	}
	return LockingScript{Type: model.Unknown}, nil
}

// Address returns the receiver address, if the template has one.
func (l LockingScript) Address(network model.Network) *model.Address {
	if len(l.Receiver) != receiverLength {
		return nil
	}
	addr, err := model.NewAddressFromHash160(l.Receiver, network)
	if err != nil {
		return nil
	}
	addr.ScriptType = l.Type
	return addr
}

// TokenID returns the token id hash of a P2STAS script.
func (l LockingScript) TokenID() []byte {
	if l.Type != model.P2STAS || len(l.Data) == 0 || len(l.Data[0]) != receiverLength {
		return nil
	}
	return l.Data[0]
}

// TokenAddress returns the token id as a redeem address.
func (l LockingScript) TokenAddress(network model.Network) *model.Address {
	id := l.TokenID()
	if id == nil {
		return nil
	}
	addr, err := model.NewAddressFromHash160(id, network)
	if err != nil {
		return nil
	}
	return addr
}

// Symbol returns the second token field as text.
func (l LockingScript) Symbol() string {
	if len(l.Data) < 2 {
		return ""
	}
	return string(l.Data[1])
}

// Note returns the third token field.
func (l LockingScript) Note() []byte {
	if len(l.Data) < 3 {
		return nil
	}
	return l.Data[2]
}

// IsSplittable reads the split flag: a one byte field 1 equal to 0x00. Scripts
// with fewer than two fields report ErrNoSplitFlag.
func (l LockingScript) IsSplittable() (bool, error) {
	if len(l.Data) < 2 {
		return false, ErrNoSplitFlag
	}
	if len(l.Data[1]) != 1 {
		return false, nil
	}
	return l.Data[1][0] == 0x00, nil
}
