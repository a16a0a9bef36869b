package packet

import "github.com/mcserver-go/mcserver/wire"

const (
	KeepAliveResponseID int32 = 0x00
	ChatMessageID       int32 = 0x01

	KeepAliveRequestID int32 = 0x00
	DisconnectID       int32 = 0x01
)

// maxChatMessageLen bounds a chat message's length in bytes.
const maxChatMessageLen = 256

// KeepAliveResponse is the server-bound echo of a KeepAliveRequest's id,
// proving the connection is still alive.
type KeepAliveResponse struct {
	KeepAliveID int64
}

func (p *KeepAliveResponse) ID() int32 { return KeepAliveResponseID }
func (p *KeepAliveResponse) Encode(sink *wire.Sink) {
	wire.EncodeLong(sink, p.KeepAliveID)
}
func decodeKeepAliveResponse(src *wire.Source) (Packet, error) {
	v, err := wire.DecodeLong(src)
	if err != nil {
		return nil, err
	}
	return &KeepAliveResponse{KeepAliveID: v}, nil
}

// ChatMessage is a server-bound plain chat line.
type ChatMessage struct {
	Message string
}

func (p *ChatMessage) ID() int32 { return ChatMessageID }
func (p *ChatMessage) Encode(sink *wire.Sink) {
	wire.EncodeString(sink, p.Message)
}
func decodeChatMessage(src *wire.Source) (Packet, error) {
	s, err := wire.DecodeString(src, maxChatMessageLen)
	if err != nil {
		return nil, err
	}
	return &ChatMessage{Message: s}, nil
}

// KeepAliveRequest is the client-bound probe the server periodically sends
// to detect a dead connection; the client must answer with a
// KeepAliveResponse carrying the same id.
type KeepAliveRequest struct {
	KeepAliveID int64
}

func (p *KeepAliveRequest) ID() int32 { return KeepAliveRequestID }
func (p *KeepAliveRequest) Encode(sink *wire.Sink) {
	wire.EncodeLong(sink, p.KeepAliveID)
}
func decodeKeepAliveRequest(src *wire.Source) (Packet, error) {
	v, err := wire.DecodeLong(src)
	if err != nil {
		return nil, err
	}
	return &KeepAliveRequest{KeepAliveID: v}, nil
}

// Disconnect closes the connection with a human-readable (JSON text
// component) reason.
type Disconnect struct {
	Reason string
}

func (p *Disconnect) ID() int32 { return DisconnectID }
func (p *Disconnect) Encode(sink *wire.Sink) {
	wire.EncodeString(sink, p.Reason)
}
func decodeDisconnect(src *wire.Source) (Packet, error) {
	s, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return nil, err
	}
	return &Disconnect{Reason: s}, nil
}

func init() {
	register(ServerBound, Play, KeepAliveResponseID, decodeKeepAliveResponse)
	register(ServerBound, Play, ChatMessageID, decodeChatMessage)
	register(ClientBound, Play, KeepAliveRequestID, decodeKeepAliveRequest)
	register(ClientBound, Play, DisconnectID, decodeDisconnect)
}
