package model

// ScriptType classifies a locking script by the template it matches.
type ScriptType string

var (
	P2PKH    ScriptType = "p2pkh"
	P2STAS   ScriptType = "p2stas"
	NullData ScriptType = "nulldata"
	Mnee1Sat ScriptType = "mnee1sat"
	Unknown  ScriptType = "unknown"
)

// IsToken reports whether outputs of this type carry token value.
func (t ScriptType) IsToken() bool {
	return t == P2STAS || t == Mnee1Sat
}
