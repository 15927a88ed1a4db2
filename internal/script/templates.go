package script

import (
	"encoding/hex"
	"fmt"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

// P2STASBodyOffset is where the template-constant part of a STAS locking script
// starts: OP_DUP OP_HASH160 <20 byte receiver> occupy the first 23 bytes.
const P2STASBodyOffset = 23

// receiver hash pushes are 20 bytes in every template
const receiverLength = model.Hash160Size

// stasBodyHex is everything after OP_CHECKSIG in a STAS locking script up to the
// OP_RETURN that introduces the token fields.
const stasBodyHex = "69" +
	"76aa607f5f7f7c5e7f7c5d7f7c5c7f7c5b7f7c5a7f7c597f7c587f7c577f7c567f7c557f7c547f7c537f7c527f7c517f7c" +
	"7e7e7e7e7e7e7e7e7e7e7e7e7e7e7e" +
	"01007e81" +
	"7b" +
	"21414136d08c5ed2bf3ba048afe6dcaebafeffffffffffffffffffffffffffffff00" +
	"7d976e9694" +
	"21414136d08c5ed2bf3ba048afe6dcaebafeffffffffffffffffffffffffffffff00" +
	"93" +
	"210279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
	"7c7e7bab" +
	"01307c7e01027e7b7c7e7e01417e" +
	"7cad" +
	"8201247f75" +
	"7f7ca87c7eaa" +
	"76817c01287f757c7eaa88" +
	"0114" +
	"7f7578877c" +
	"6e7e7ea9" +
	"7b88"

// any-length push slot in a match template
const anyLength = -1

type templateToken struct {
	opcode   byte
	dataLen  int
	data     []byte
	receiver bool
}

type template struct {
	scriptType model.ScriptType
	tokens     []templateToken
	// tailRequired means the script must continue with OP_RETURN right after the
	// template; otherwise an OP_RETURN tail is optional.
	tailRequired bool
}

var (
	p2pkhBuild = []Token{
		NewOpcode(OpDup),
		NewOpcode(OpHash160),
		newReceiverPlaceholder(),
		NewOpcode(OpEqualVerify),
		NewOpcode(OpCheckSig),
	}
	p2stasBuild = append(append([]Token(nil), p2pkhBuild...), mustTokens(stasBodyHex)...)

	// templates in classification priority order
	templates = []template{
		{scriptType: model.P2STAS, tokens: matchTokens(p2stasBuild), tailRequired: true},
		{scriptType: model.P2PKH, tokens: matchTokens(p2pkhBuild)},
		{scriptType: model.Mnee1Sat, tokens: mnee1SatTemplate()},
		{scriptType: model.NullData, tokens: []templateToken{{opcode: OpFalse}}, tailRequired: true},
		{scriptType: model.NullData, tailRequired: true},
	}
)

func mustTokens(h string) []Token {
	raw, err := hex.DecodeString(h)
	if err != nil {
		panic(fmt.Sprintf("script template: %v", err))
	}
	tokens, err := Tokens(raw)
	if err != nil {
		panic(fmt.Sprintf("script template: %v", err))
	}
	return tokens
}

func matchTokens(build []Token) []templateToken {
	out := make([]templateToken, len(build))
	for i, t := range build {
		out[i] = templateToken{opcode: t.Opcode, dataLen: len(t.Data), receiver: t.IsReceiverID}
		if !t.IsReceiverID && len(t.Data) > 0 {
			out[i].data = t.Data
		}
	}
	return out
}

// 1Sat ordinal envelope: OP_0 OP_IF "ord" OP_1 <content type> OP_0 <content> OP_ENDIF, then P2PKH.
func mnee1SatTemplate() []templateToken {
	envelope := []templateToken{
		{opcode: OpFalse},
		{opcode: OpIf},
		{opcode: 0x03, dataLen: 3, data: []byte("ord")},
		{opcode: Op1},
		{dataLen: anyLength},
		{opcode: OpFalse},
		{dataLen: anyLength},
		{opcode: OpEndIf},
	}
	return append(envelope, matchTokens(p2pkhBuild)...)
}

func buildTemplate(t model.ScriptType) ([]Token, error) {
	switch t {
	case model.P2PKH:
		return p2pkhBuild, nil
	case model.P2STAS:
		return p2stasBuild, nil
	default:
		return nil, fmt.Errorf("no build template for script type %q", t)
	}
}

// receiverIndex returns the token index of the receiver slot in t's template.
func receiverIndex(t model.ScriptType) (int, bool) {
	for _, tmpl := range templates {
		if tmpl.scriptType != t {
			continue
		}
		for i, tok := range tmpl.tokens {
			if tok.receiver {
				return i, true
			}
		}
	}
	return 0, false
}
