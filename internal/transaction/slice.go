package transaction

import "sync"

// Slice is a byte range inside a transaction's raw buffer. The range is copied out
// on first use and the copy is kept.
type Slice struct {
	Start  int
	Length int

	buf  []byte
	once sync.Once
	data []byte
}

func newSlice(buf []byte, start, length int) *Slice {
	return &Slice{Start: start, Length: length, buf: buf}
}

// Bytes returns the materialised range.
func (s *Slice) Bytes() []byte {
	s.once.Do(func() {
		s.data = make([]byte, s.Length)
		copy(s.data, s.buf[s.Start:s.Start+s.Length])
		s.buf = nil
	})
	return s.data
}
