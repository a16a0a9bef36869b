package wire

import "github.com/google/uuid"

// EncodeUUID appends u as 16 big-endian bytes.
func EncodeUUID(sink *Sink, u uuid.UUID) {
	sink.buf = append(sink.buf, u[:]...)
}

// DecodeUUID reads 16 big-endian bytes from src into a [uuid.UUID]. The
// value is otherwise handled entirely through the uuid package; the wire
// codec only ever touches its raw bytes.
func DecodeUUID(src *Source) (uuid.UUID, error) {
	b, err := src.ReadN(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	var u uuid.UUID
	copy(u[:], b)
	return u, nil
}
