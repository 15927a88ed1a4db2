package script

import (
	"encoding/hex"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
)

// Token is a single script instruction: an opcode, or a data push with its payload.
// IsReceiverID marks a template push that must be replaced by a receiver hash.
type Token struct {
	Opcode       byte
	Data         []byte
	IsReceiverID bool
}

// NewOpcode returns an opcode-only token.
func NewOpcode(op byte) Token {
	return Token{Opcode: op}
}

// NewPush returns a push of data using the shortest push opcode for its length.
func NewPush(data []byte) Token {
	n := len(data)
	var op byte
	switch {
	case n == 0:
		op = OpFalse
	case n <= int(OpData75):
		op = byte(n)
	case n <= 0xff:
		op = OpPushData1
	case n <= 0xffff:
		op = OpPushData2
	default:
		op = OpPushData4
	}
	return Token{Opcode: op, Data: data}
}

func newReceiverPlaceholder() Token {
	return Token{Opcode: OpData20, Data: make([]byte, 20), IsReceiverID: true}
}

// IsPush reports whether the token pushes data (OP_0 included).
func (t Token) IsPush() bool {
	return t.Opcode <= OpPushData4
}

// Size is the serialised length of the token.
func (t Token) Size() int {
	n := len(t.Data)
	switch {
	case !t.IsPush() || t.Opcode == OpFalse:
		return 1
	case t.Opcode <= OpData75:
		return 1 + n
	case t.Opcode == OpPushData1:
		return 2 + n
	case t.Opcode == OpPushData2:
		return 3 + n
	default:
		return 5 + n
	}
}

// Write serialises the token.
func (t Token) Write(w *codec.Writer) {
	w.WriteUint8(t.Opcode)
	if !t.IsPush() || t.Opcode == OpFalse {
		return
	}
	switch t.Opcode {
	case OpPushData1:
		w.WriteUint8(uint8(len(t.Data)))
	case OpPushData2:
		w.WriteUint16(uint16(len(t.Data)))
	case OpPushData4:
		w.WriteUint32(uint32(len(t.Data)))
	}
	w.WriteBytes(t.Data)
}

func (t Token) String() string {
	if t.IsPush() && t.Opcode != OpFalse {
		return hex.EncodeToString(t.Data)
	}
	return OpcodeName(t.Opcode)
}
