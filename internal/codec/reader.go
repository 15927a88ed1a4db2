package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Reader consumes a byte stream and decodes wire primitives.
type Reader struct {
	src       io.Reader
	pos       int
	receivers []Receiver
	scratch   [8]byte
}

// NewReader creates a Reader over src.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// NewBytesReader creates a Reader over an in-memory buffer.
func NewBytesReader(p []byte) *Reader {
	return NewReader(bytes.NewReader(p))
}

// PushReceiver starts delivering consumed bytes to rc in addition to the active receivers.
func (r *Reader) PushReceiver(rc Receiver) {
	r.receivers = append(r.receivers, rc)
}

// PopReceiver detaches the most recently pushed receiver.
func (r *Reader) PopReceiver() {
	if len(r.receivers) == 0 {
		return
	}
	r.receivers = r.receivers[:len(r.receivers)-1]
}

// Position reports how many bytes have been consumed.
func (r *Reader) Position() int {
	return r.pos
}

func (r *Reader) fill(p []byte) error {
	n, err := io.ReadFull(r.src, p)
	if n > 0 {
		r.pos += n
		for _, rc := range r.receivers {
			rc.Receive(p[:n])
		}
	}
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("read %d bytes at offset %d: %w", len(p), r.pos-n, ErrEndOfStream)
		}
		return err
	}
	return nil
}

// ReadBytes reads exactly n bytes into a new slice.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative read length %d", n)
	}
	p := make([]byte, n)
	if n == 0 {
		return p, nil
	}
	if err := r.fill(p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReadUint8 reads a single byte.
func (r *Reader) ReadUint8() (uint8, error) {
	if err := r.fill(r.scratch[:1]); err != nil {
		return 0, err
	}
	return r.scratch[0], nil
}

// ReadUint16 reads a little-endian uint16.
func (r *Reader) ReadUint16() (uint16, error) {
	if err := r.fill(r.scratch[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(r.scratch[:2]), nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if err := r.fill(r.scratch[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.scratch[:4]), nil
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if err := r.fill(r.scratch[:8]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(r.scratch[:8]), nil
}

// ReadVarInt reads a CompactSize integer.
func (r *Reader) ReadVarInt() (uint64, error) {
	marker, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	switch marker {
	case varIntMarker16:
		v, err := r.ReadUint16()
		return uint64(v), err
	case varIntMarker32:
		v, err := r.ReadUint32()
		return uint64(v), err
	case varIntMarker64:
		return r.ReadUint64()
	default:
		return uint64(marker), nil
	}
}
