package conn_test

import (
	"errors"
	"net"

	"github.com/mcserver-go/mcserver/packet"
	"github.com/mcserver-go/mcserver/wire"
)

// writeFrame encodes p as a frame and writes it to nc in one call.
func writeFrame(nc net.Conn, p packet.Packet) error {
	sink := wire.NewSink()
	p.Encode(sink)
	_, err := nc.Write(packet.EncodeFrame(p.ID(), sink.Bytes()))
	return err
}

// readFrame blocks until one full frame has arrived on nc and decodes it
// against (dir, phase).
func readFrame(nc net.Conn, dir packet.Direction, phase packet.Phase) (packet.Packet, error) {
	buf := make([]byte, 4096)
	have := 0
	for {
		id, payload, consumed, err := packet.DecodeFrame(buf[:have])
		if err == nil {
			p, decErr := packet.Decode(dir, phase, id, payload)
			if decErr != nil {
				return nil, decErr
			}
			copy(buf, buf[consumed:have])
			have -= consumed
			return p, nil
		}
		if !errors.Is(err, packet.ErrIncompleteFrame) {
			return nil, err
		}
		n, readErr := nc.Read(buf[have:])
		if readErr != nil {
			return nil, readErr
		}
		have += n
	}
}
