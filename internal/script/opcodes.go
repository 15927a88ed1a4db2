// Package script models script tokens, the recognised locking-script templates and
// the single-pass classifier that matches a script against all of them.
package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

const (
	OpFalse          byte = txscript.OP_0
	OpData1          byte = txscript.OP_DATA_1
	OpData20         byte = txscript.OP_DATA_20
	OpData75         byte = txscript.OP_DATA_75
	OpPushData1      byte = txscript.OP_PUSHDATA1
	OpPushData2      byte = txscript.OP_PUSHDATA2
	OpPushData4      byte = txscript.OP_PUSHDATA4
	Op1Negate        byte = txscript.OP_1NEGATE
	Op1              byte = txscript.OP_1
	Op16             byte = txscript.OP_16
	OpIf             byte = txscript.OP_IF
	OpEndIf          byte = txscript.OP_ENDIF
	OpVerify         byte = txscript.OP_VERIFY
	OpReturn         byte = txscript.OP_RETURN
	OpDup            byte = txscript.OP_DUP
	OpEqualVerify    byte = txscript.OP_EQUALVERIFY
	OpHash160        byte = txscript.OP_HASH160
	OpCheckSig       byte = txscript.OP_CHECKSIG
	OpCheckSigVerify byte = txscript.OP_CHECKSIGVERIFY
)

// names that differ between the btcd table and the ledger this toolkit targets
var opcodeOverrides = map[byte]string{
	txscript.OP_0:   "OP_0",
	txscript.OP_1:   "OP_1",
	txscript.OP_CAT: "OP_CAT",
	0x7f:            "OP_SPLIT",
	0x80:            "OP_NUM2BIN",
	0x81:            "OP_BIN2NUM",
}

var opcodeNames = buildOpcodeNames()

func buildOpcodeNames() [256]string {
	var names [256]string
	keys := make([]string, 0, len(txscript.OpcodeByName))
	for name := range txscript.OpcodeByName {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	for _, name := range keys {
		op := txscript.OpcodeByName[name]
		if names[op] == "" {
			names[op] = name
		}
	}
	for op, name := range opcodeOverrides {
		names[op] = name
	}
	for i := range names {
		if names[i] == "" {
			names[i] = fmt.Sprintf("OP_UNKNOWN%d", i)
		}
	}
	return names
}

// OpcodeName returns the mnemonic of op.
func OpcodeName(op byte) string {
	return opcodeNames[op]
}

// FormatAsm renders tokens in the usual space separated assembly form.
func FormatAsm(tokens []Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, " ")
}
