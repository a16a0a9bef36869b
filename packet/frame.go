package packet

import (
	"errors"
	"io"

	"github.com/mcserver-go/mcserver/wire"
)

// ErrIncompleteFrame indicates the buffer handed to [DecodeFrame] does not
// yet contain a full frame; the caller should read more bytes from the
// transport and retry, not treat this as a protocol violation.
var ErrIncompleteFrame = errors.New("packet: incomplete frame")

// EncodeFrame renders id and payload as `[length VarInt][id VarInt][payload]`.
func EncodeFrame(id int32, payload []byte) []byte {
	body := wire.NewSink()
	wire.EncodeVarInt(body, id)
	body.Write(payload)

	frame := wire.NewSink()
	wire.EncodeVarInt(frame, int32(len(body.Bytes())))
	frame.Write(body.Bytes())
	return frame.Bytes()
}

// DecodeFrame reads one frame's length, id, and payload from the head of
// buf. It returns (id, payload, consumed, nil) on success, where consumed
// is the number of bytes of buf the frame occupied, or
// (0, nil, 0, ErrIncompleteFrame) if buf does not yet hold a complete
// frame.
func DecodeFrame(buf []byte) (id int32, payload []byte, consumed int, err error) {
	src := wire.NewSource(buf)
	length, err := wire.DecodeVarInt(src, wire.FrameLengthBudget)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, 0, ErrIncompleteFrame
		}
		return 0, nil, 0, err
	}
	lengthBytes := len(buf) - src.Len()

	body, err := src.ReadN(int(length))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, 0, ErrIncompleteFrame
		}
		return 0, nil, 0, err
	}

	bodySrc := wire.NewSource(body)
	id, err = wire.DecodeVarInt(bodySrc, wire.DefaultVarIntBudget)
	if err != nil {
		return 0, nil, 0, err
	}
	return id, bodySrc.Remaining(), lengthBytes + int(length), nil
}
