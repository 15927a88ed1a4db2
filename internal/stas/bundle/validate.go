package bundle

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

// ErrValidation marks a bundle that must not be broadcast.
var ErrValidation = errors.New("bundle validation failed")

// Validate checks that intermediate transactions keep every token output with
// sender and that the last transaction pays exactly satoshis to destination in
// a single token output. Plain outputs such as fee change are not counted.
func Validate(b *Bundle, sender, destination *model.Address, satoshis uint64) error {
	if b == nil || len(b.Transactions) == 0 {
		return fmt.Errorf("%w: no transactions", ErrValidation)
	}

	last := len(b.Transactions) - 1
	for _, tx := range b.Transactions[:last] {
		for _, out := range tx.Outputs {
			if out.ScriptType() != model.P2STAS {
				continue
			}
			if !out.Address().Equal(sender) {
				return fmt.Errorf("%w: output %d of %s leaves the sender", ErrValidation, out.Index, tx.ID())
			}
		}
	}

	final := b.Transactions[last]
	found := 0
	for _, out := range final.Outputs {
		if out.ScriptType() != model.P2STAS {
			continue
		}
		addr := out.Address()
		switch {
		case addr.Equal(destination):
			found++
			if found > 1 {
				return fmt.Errorf("%w: more than one output to destination", ErrValidation)
			}
			if out.Satoshis != satoshis {
				return fmt.Errorf("%w: destination receives %d, requested %d", ErrValidation, out.Satoshis, satoshis)
			}
		case !addr.Equal(sender):
			return fmt.Errorf("%w: output %d pays a third party", ErrValidation, out.Index)
		}
	}
	if found == 0 {
		return fmt.Errorf("%w: no token output to destination", ErrValidation)
	}
	return nil
}
