package script

import (
	"fmt"

	"github.com/goodnatureofminers/stas-toolkit/internal/codec"
)

// TokenHandler receives each decoded token with its position; last is set on the
// token that consumes the final byte of the script.
type TokenHandler func(tok Token, index int, last bool)

// ReadTokens decodes a script of exactly length bytes from r.
//
// A push whose declared size runs past the end of the script is truncated to the
// remaining bytes; such scripts exist on chain with mis-encoded data after OP_RETURN.
func ReadTokens(r *codec.Reader, length int, handle TokenHandler) error {
	consumed := 0
	for index := 0; consumed < length; index++ {
		op, err := r.ReadUint8()
		if err != nil {
			return fmt.Errorf("read opcode %d: %w", index, err)
		}
		consumed++

		tok := Token{Opcode: op}
		if op >= OpData1 && op <= OpPushData4 {
			size, width := 0, 0
			switch op {
			case OpPushData1:
				width = 1
			case OpPushData2:
				width = 2
			case OpPushData4:
				width = 4
			default:
				size = int(op)
			}

			if width > length-consumed {
				width = 0
				size = length - consumed
			}
			switch width {
			case 1:
				v, err := r.ReadUint8()
				if err != nil {
					return fmt.Errorf("read push length %d: %w", index, err)
				}
				size = int(v)
			case 2:
				v, err := r.ReadUint16()
				if err != nil {
					return fmt.Errorf("read push length %d: %w", index, err)
				}
				size = int(v)
			case 4:
				v, err := r.ReadUint32()
				if err != nil {
					return fmt.Errorf("read push length %d: %w", index, err)
				}
				size = int(v)
			}
			consumed += width

			if size > length-consumed {
				size = length - consumed
			}
			data, err := r.ReadBytes(size)
			if err != nil {
				return fmt.Errorf("read push data %d: %w", index, err)
			}
			consumed += size
			tok.Data = data
		}

		handle(tok, index, consumed == length)
	}
	return nil
}
