package packet

import "github.com/mcserver-go/mcserver/wire"

// HandshakeID is the only packet accepted in the Handshaking phase.
const HandshakeID int32 = 0x00

// NextState is the handshake's requested destination phase.
type NextState int32

const (
	NextStatus NextState = 1
	NextLogin  NextState = 2
)

// Handshake is the server-bound packet that opens every connection,
// selecting the protocol version claimed by the client and whether it is
// headed for Status or Login.
type Handshake struct {
	ProtocolVersion int32
	ServerAddress   string
	ServerPort      uint16
	NextState       NextState
}

func (p *Handshake) ID() int32 { return HandshakeID }

func (p *Handshake) Encode(sink *wire.Sink) {
	wire.EncodeVarInt(sink, p.ProtocolVersion)
	wire.EncodeString(sink, p.ServerAddress)
	wire.EncodeUint16(sink, p.ServerPort)
	wire.EncodeVarInt(sink, int32(p.NextState))
}

func decodeHandshake(src *wire.Source) (Packet, error) {
	version, err := wire.DecodeVarInt(src, wire.DefaultVarIntBudget)
	if err != nil {
		return nil, err
	}
	addr, err := wire.DecodeString(src, 255)
	if err != nil {
		return nil, err
	}
	port, err := wire.DecodeUint16(src)
	if err != nil {
		return nil, err
	}
	next, err := wire.DecodeVarInt(src, wire.DefaultVarIntBudget)
	if err != nil {
		return nil, err
	}
	return &Handshake{
		ProtocolVersion: version,
		ServerAddress:   addr,
		ServerPort:      port,
		NextState:       NextState(next),
	}, nil
}

func init() {
	register(ServerBound, Handshaking, HandshakeID, decodeHandshake)
}
