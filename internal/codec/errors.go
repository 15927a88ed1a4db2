// Package codec implements the byte-level reader and writer for the transaction wire format.
package codec

import "errors"

var (
	// ErrEndOfStream is returned when the source is exhausted in the middle of a read.
	ErrEndOfStream = errors.New("unexpected end of stream")
	// ErrBufferOverflow is returned when a write does not fit into the pre-sized buffer.
	ErrBufferOverflow = errors.New("write past end of buffer")
	// ErrSizeMismatch is returned when a writer is finished before the buffer is filled.
	ErrSizeMismatch = errors.New("written size does not match buffer size")
)
