package codec

import (
	"encoding/binary"
	"fmt"
)

// Writer serialises primitives into a buffer whose size is computed up front.
// The first failed write is sticky: later writes are ignored and Finish reports it.
type Writer struct {
	buf []byte
	pos int
	err error
}

// NewWriter allocates a buffer of exactly size bytes.
func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, size)}
}

// Position returns the write cursor.
func (w *Writer) Position() int {
	return w.pos
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) reserve(n int) []byte {
	if w.err != nil {
		return nil
	}
	if w.pos+n > len(w.buf) {
		w.err = fmt.Errorf("write %d bytes at %d of %d: %w", n, w.pos, len(w.buf), ErrBufferOverflow)
		return nil
	}
	p := w.buf[w.pos : w.pos+n]
	w.pos += n
	return p
}

// WriteBytes copies p into the buffer.
func (w *Writer) WriteBytes(p []byte) {
	if dst := w.reserve(len(p)); dst != nil {
		copy(dst, p)
	}
}

// WriteUint8 writes one byte.
func (w *Writer) WriteUint8(v uint8) {
	if dst := w.reserve(1); dst != nil {
		dst[0] = v
	}
}

// WriteUint16 writes a little-endian uint16.
func (w *Writer) WriteUint16(v uint16) {
	if dst := w.reserve(2); dst != nil {
		binary.LittleEndian.PutUint16(dst, v)
	}
}

// WriteUint32 writes a little-endian uint32.
func (w *Writer) WriteUint32(v uint32) {
	if dst := w.reserve(4); dst != nil {
		binary.LittleEndian.PutUint32(dst, v)
	}
}

// WriteUint64 writes a little-endian uint64.
func (w *Writer) WriteUint64(v uint64) {
	if dst := w.reserve(8); dst != nil {
		binary.LittleEndian.PutUint64(dst, v)
	}
}

// WriteUint16BE writes a big-endian uint16.
func (w *Writer) WriteUint16BE(v uint16) {
	if dst := w.reserve(2); dst != nil {
		binary.BigEndian.PutUint16(dst, v)
	}
}

// WriteUint32BE writes a big-endian uint32.
func (w *Writer) WriteUint32BE(v uint32) {
	if dst := w.reserve(4); dst != nil {
		binary.BigEndian.PutUint32(dst, v)
	}
}

// WriteVarInt writes v as CompactSize.
func (w *Writer) WriteVarInt(v uint64) {
	switch VarIntLength(v) {
	case 1:
		w.WriteUint8(uint8(v))
	case 3:
		w.WriteUint8(varIntMarker16)
		w.WriteUint16(uint16(v))
	case 5:
		w.WriteUint8(varIntMarker32)
		w.WriteUint32(uint32(v))
	default:
		w.WriteUint8(varIntMarker64)
		w.WriteUint64(v)
	}
}

// WriteScriptNumber writes v with the minimal little-endian sign-magnitude encoding
// used by script number pushes. The byte count equals MinimumRequiredBytes(v).
func (w *Writer) WriteScriptNumber(v int64) {
	n := MinimumRequiredBytes(v)
	dst := w.reserve(n)
	if dst == nil {
		return
	}
	copy(dst, EncodeScriptNumber(v))
}

// EncodeScriptNumber returns the minimal script number encoding of v, padded to at
// least one byte.
func EncodeScriptNumber(v int64) []byte {
	n := MinimumRequiredBytes(v)
	out := make([]byte, n)
	negative := v < 0
	magnitude := uint64(v)
	if negative {
		magnitude = uint64(-v)
	}
	for i := 0; i < n && magnitude > 0; i++ {
		out[i] = byte(magnitude)
		magnitude >>= 8
	}
	if negative {
		out[n-1] |= 0x80
	}
	return out
}

// Finish returns the buffer once it has been filled exactly.
func (w *Writer) Finish() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.pos != len(w.buf) {
		return nil, fmt.Errorf("wrote %d of %d bytes: %w", w.pos, len(w.buf), ErrSizeMismatch)
	}
	return w.buf, nil
}
