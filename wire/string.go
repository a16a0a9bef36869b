package wire

import "fmt"

// DefaultMaxStringLen is the largest string length (in bytes) accepted by
// [DecodeString] when the caller has no tighter field-specific bound.
const DefaultMaxStringLen = 32767

// EncodeString appends s to sink as a VarInt byte length followed by its
// UTF-8 bytes.
func EncodeString(sink *Sink, s string) {
	EncodeVarInt(sink, int32(len(s)))
	sink.buf = append(sink.buf, s...)
}

// DecodeString reads a VarInt-length-prefixed UTF-8 string from src,
// rejecting a declared length greater than maxLen.
func DecodeString(src *Source, maxLen int) (string, error) {
	n, err := DecodeVarInt(src, DefaultVarIntBudget)
	if err != nil {
		return "", err
	}
	if n < 0 || int(n) > maxLen {
		return "", fmt.Errorf("wire: string length %d exceeds bound %d", n, maxLen)
	}
	b, err := src.ReadN(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
