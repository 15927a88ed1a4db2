package codec

// ReverseBytes returns a reversed copy of p.
func ReverseBytes(p []byte) []byte {
	out := make([]byte, len(p))
	for i, b := range p {
		out[len(p)-1-i] = b
	}
	return out
}
