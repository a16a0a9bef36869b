package wire

import "encoding/binary"

// EncodeUint16 appends v as two big-endian bytes (used for fields such as
// the handshake's server port, which is fixed-width, not a VarInt).
func EncodeUint16(sink *Sink, v uint16) {
	sink.buf = binary.BigEndian.AppendUint16(sink.buf, v)
}

// DecodeUint16 reads two big-endian bytes.
func DecodeUint16(src *Source) (uint16, error) {
	b, err := src.ReadN(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// EncodeLong appends v as eight big-endian bytes (used for fields such as
// the ping/pong and keep-alive payloads, which the real protocol carries as
// a fixed-width Long rather than a VarInt).
func EncodeLong(sink *Sink, v int64) {
	sink.buf = binary.BigEndian.AppendUint64(sink.buf, uint64(v))
}

// DecodeLong reads eight big-endian bytes.
func DecodeLong(src *Source) (int64, error) {
	b, err := src.ReadN(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}
