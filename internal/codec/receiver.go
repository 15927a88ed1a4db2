package codec

// Receiver observes every byte consumed by a Reader, in read order.
type Receiver interface {
	Receive(p []byte)
}

// BufferReceiver accumulates received bytes.
type BufferReceiver struct {
	buf []byte
}

// NewBufferReceiver returns a receiver with capacity preallocated for sizeHint bytes.
func NewBufferReceiver(sizeHint int) *BufferReceiver {
	return &BufferReceiver{buf: make([]byte, 0, sizeHint)}
}

// Receive implements Receiver.
func (b *BufferReceiver) Receive(p []byte) {
	b.buf = append(b.buf, p...)
}

// Bytes returns the collected bytes. The slice is owned by the receiver.
func (b *BufferReceiver) Bytes() []byte {
	return b.buf
}

// Len returns the number of collected bytes.
func (b *BufferReceiver) Len() int {
	return len(b.buf)
}
