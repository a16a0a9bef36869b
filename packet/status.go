package packet

import "github.com/mcserver-go/mcserver/wire"

const (
	StatusRequestID  int32 = 0x00
	PingRequestID    int32 = 0x01
	StatusResponseID int32 = 0x00
	PongID           int32 = 0x01
)

// maxStatusJSONLen bounds the status-response JSON document; the real
// protocol has no hard cap here beyond the frame length budget, but an
// unbounded string decode is its own kind of trouble.
const maxStatusJSONLen = 1 << 20

// StatusRequest carries no fields; its mere arrival triggers a
// StatusResponse.
type StatusRequest struct{}

func (p *StatusRequest) ID() int32         { return StatusRequestID }
func (p *StatusRequest) Encode(*wire.Sink) {}
func decodeStatusRequest(*wire.Source) (Packet, error) {
	return &StatusRequest{}, nil
}

// PingRequest carries an opaque payload the server must echo back
// unchanged in a Pong.
type PingRequest struct {
	Payload int64
}

func (p *PingRequest) ID() int32 { return PingRequestID }
func (p *PingRequest) Encode(sink *wire.Sink) {
	wire.EncodeLong(sink, p.Payload)
}
func decodePingRequest(src *wire.Source) (Packet, error) {
	v, err := wire.DecodeLong(src)
	if err != nil {
		return nil, err
	}
	return &PingRequest{Payload: v}, nil
}

// StatusResponse carries the server list ping's JSON document (version,
// players, description, favicon). The JSON schema itself lives at the
// status-response boundary only, per the core's scope.
type StatusResponse struct {
	JSON string
}

func (p *StatusResponse) ID() int32 { return StatusResponseID }
func (p *StatusResponse) Encode(sink *wire.Sink) {
	wire.EncodeString(sink, p.JSON)
}
func decodeStatusResponse(src *wire.Source) (Packet, error) {
	s, err := wire.DecodeString(src, maxStatusJSONLen)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{JSON: s}, nil
}

// Pong echoes a PingRequest's payload back to the client.
type Pong struct {
	Payload int64
}

func (p *Pong) ID() int32 { return PongID }
func (p *Pong) Encode(sink *wire.Sink) {
	wire.EncodeLong(sink, p.Payload)
}
func decodePong(src *wire.Source) (Packet, error) {
	v, err := wire.DecodeLong(src)
	if err != nil {
		return nil, err
	}
	return &Pong{Payload: v}, nil
}

func init() {
	register(ServerBound, Status, StatusRequestID, decodeStatusRequest)
	register(ServerBound, Status, PingRequestID, decodePingRequest)
	register(ClientBound, Status, StatusResponseID, decodeStatusResponse)
	register(ClientBound, Status, PongID, decodePong)
}
