package script

import (
	"fmt"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

// Builder assembles a script from tokens.
type Builder struct {
	tokens []Token
	size   int
}

// NewBuilder returns an empty script builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewTemplate starts a script from the build template of t with receiver in its
// receiver slot.
func NewTemplate(t model.ScriptType, receiver []byte) (*Builder, error) {
	tmpl, err := buildTemplate(t)
	if err != nil {
		return nil, err
	}
	if len(receiver) != receiverLength {
		return nil, fmt.Errorf("receiver must be %d bytes, got %d", receiverLength, len(receiver))
	}

	b := &Builder{tokens: make([]Token, 0, len(tmpl)+4)}
	for _, tok := range tmpl {
		if tok.IsReceiverID {
			tok = NewPush(append([]byte(nil), receiver...))
		}
		b.add(tok)
	}
	return b, nil
}

// FromScript copies script verbatim, tail included, and replaces its receiver hash.
func FromScript(script, receiver []byte) (*Builder, error) {
	if len(receiver) != receiverLength {
		return nil, fmt.Errorf("receiver must be %d bytes, got %d", receiverLength, len(receiver))
	}
	ls := Classify(script)
	idx, ok := receiverIndex(ls.Type)
	if !ok {
		return nil, fmt.Errorf("script type %q has no receiver", ls.Type)
	}

	tokens, err := Tokens(script)
	if err != nil {
		return nil, fmt.Errorf("tokenize source script: %w", err)
	}

	b := &Builder{tokens: make([]Token, 0, len(tokens))}
	for i, tok := range tokens {
		if i == idx {
			tok = NewPush(append([]byte(nil), receiver...))
		}
		b.add(tok)
	}
	return b, nil
}

func (b *Builder) add(tok Token) *Builder {
	b.tokens = append(b.tokens, tok)
	b.size += tok.Size()
	return b
}

// AddOpcode appends a bare opcode.
func (b *Builder) AddOpcode(op byte) *Builder {
	return b.add(NewOpcode(op))
}

// AddData appends a push of data.
func (b *Builder) AddData(data []byte) *Builder {
	return b.add(NewPush(data))
}

// AddNumber appends n using the small-integer opcodes where possible.
func (b *Builder) AddNumber(n int64) *Builder {
	switch {
	case n == 0:
		return b.AddOpcode(OpFalse)
	case n == -1:
		return b.AddOpcode(Op1Negate)
	case n >= 1 && n <= 16:
		return b.AddOpcode(Op1 + byte(n-1))
	default:
		return b.AddData(codec.EncodeScriptNumber(n))
	}
}

// AddReturnData appends OP_RETURN followed by a push per field.
func (b *Builder) AddReturnData(fields ...[]byte) *Builder {
	b.AddOpcode(OpReturn)
	for _, f := range fields {
		b.AddData(f)
	}
	return b
}

// Size is the serialised script length.
func (b *Builder) Size() int {
	return b.size
}

// Tokens returns the accumulated tokens.
func (b *Builder) Tokens() []Token {
	return b.tokens
}

// WriteTo serialises the script into w.
func (b *Builder) WriteTo(w *codec.Writer) {
	for _, tok := range b.tokens {
		tok.Write(w)
	}
}

// Bytes returns the serialised script.
func (b *Builder) Bytes() []byte {
	w := codec.NewWriter(b.size)
	b.WriteTo(w)
	out, err := w.Finish()
	if err != nil {
		// size is maintained on every append
		panic(fmt.Sprintf("script builder: %v", err))
	}
	return out
}
