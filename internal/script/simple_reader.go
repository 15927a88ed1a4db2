package script

import "github.com/goodnatureofminers/stas-toolkit/internal/codec"

// Tokens returns the flat token list of script without classifying it.
func Tokens(script []byte) ([]Token, error) {
	return ReadSimple(codec.NewBytesReader(script), len(script))
}

// ReadSimple reads length bytes of script from r into a token list.
func ReadSimple(r *codec.Reader, length int) ([]Token, error) {
	tokens := make([]Token, 0, 8)
	err := ReadTokens(r, length, func(tok Token, _ int, _ bool) {
		tokens = append(tokens, tok)
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}
