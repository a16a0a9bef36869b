package packet

import "github.com/mcserver-go/mcserver/wire"

const (
	ClientInformationID   int32 = 0x00
	PluginMessageServerID int32 = 0x02
	AcknowledgeFinishID   int32 = 0x03
	KnownPacksResponseID  int32 = 0x07

	KnownPacksRequestID int32 = 0x0E
	FinishID            int32 = 0x03
)

// ClientInformation carries the client's negotiated display preferences,
// remembered on the connection but otherwise inert to the core.
type ClientInformation struct {
	Locale      string
	ViewDistance int8
	ChatMode    int32
	ChatColors  bool
	SkinParts   byte
	MainHand    int32
}

func (p *ClientInformation) ID() int32 { return ClientInformationID }
func (p *ClientInformation) Encode(sink *wire.Sink) {
	wire.EncodeString(sink, p.Locale)
	sink.WriteByte(byte(p.ViewDistance))
	wire.EncodeVarInt(sink, p.ChatMode)
	wire.EncodeBool(sink, p.ChatColors)
	sink.WriteByte(p.SkinParts)
	wire.EncodeVarInt(sink, p.MainHand)
}
func decodeClientInformation(src *wire.Source) (Packet, error) {
	locale, err := wire.DecodeString(src, 16)
	if err != nil {
		return nil, err
	}
	viewDist, err := src.ReadByte()
	if err != nil {
		return nil, err
	}
	chatMode, err := wire.DecodeVarInt(src, wire.DefaultVarIntBudget)
	if err != nil {
		return nil, err
	}
	chatColors, err := wire.DecodeBool(src)
	if err != nil {
		return nil, err
	}
	skinParts, err := src.ReadByte()
	if err != nil {
		return nil, err
	}
	mainHand, err := wire.DecodeVarInt(src, wire.DefaultVarIntBudget)
	if err != nil {
		return nil, err
	}
	return &ClientInformation{
		Locale:       locale,
		ViewDistance: int8(viewDist),
		ChatMode:     chatMode,
		ChatColors:   chatColors,
		SkinParts:    skinParts,
		MainHand:     mainHand,
	}, nil
}

// PluginMessage is an arbitrary, channel-identified binary payload; the
// core observes it but does not interpret the payload.
type PluginMessage struct {
	Channel string
	Data    []byte
}

func (p *PluginMessage) ID() int32 { return PluginMessageServerID }
func (p *PluginMessage) Encode(sink *wire.Sink) {
	wire.EncodeString(sink, p.Channel)
	sink.Write(p.Data)
}
func decodePluginMessage(src *wire.Source) (Packet, error) {
	channel, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return nil, err
	}
	data, err := wire.DecodeArray(src, wire.ArrayRemainingBytes, 0, func(s *wire.Source) (byte, error) {
		return s.ReadByte()
	})
	if err != nil {
		return nil, err
	}
	return &PluginMessage{Channel: channel, Data: data}, nil
}

// AcknowledgeFinish is the server-bound counterpart to Finish, advancing
// the connection from Configuration to Play.
type AcknowledgeFinish struct{}

func (p *AcknowledgeFinish) ID() int32         { return AcknowledgeFinishID }
func (p *AcknowledgeFinish) Encode(*wire.Sink) {}
func decodeAcknowledgeFinish(*wire.Source) (Packet, error) {
	return &AcknowledgeFinish{}, nil
}

// Pack identifies one resource/data pack by namespace, id, and version —
// the entry shape the registry's known-packs table carries.
type Pack struct {
	Namespace string
	ID        string
	Version   string
}

func encodePack(sink *wire.Sink, p Pack) {
	wire.EncodeString(sink, p.Namespace)
	wire.EncodeString(sink, p.ID)
	wire.EncodeString(sink, p.Version)
}

func decodePack(src *wire.Source) (Pack, error) {
	ns, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return Pack{}, err
	}
	id, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return Pack{}, err
	}
	version, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return Pack{}, err
	}
	return Pack{Namespace: ns, ID: id, Version: version}, nil
}

// KnownPacksResponse is the server-bound echo of the packs the client
// claims to already have. Its id ([KnownPacksResponseID]) differs from that
// of the client-bound [KnownPacksRequest] ([KnownPacksRequestID]).
type KnownPacksResponse struct {
	Packs []Pack
}

func (p *KnownPacksResponse) ID() int32 { return KnownPacksResponseID }
func (p *KnownPacksResponse) Encode(sink *wire.Sink) {
	wire.EncodeArray(sink, wire.ArrayLengthPrefixedVarInt, p.Packs, encodePack)
}
func decodeKnownPacksResponse(src *wire.Source) (Packet, error) {
	packs, err := wire.DecodeArray(src, wire.ArrayLengthPrefixedVarInt, 0, decodePack)
	if err != nil {
		return nil, err
	}
	return &KnownPacksResponse{Packs: packs}, nil
}

// KnownPacksRequest is the client-bound announcement of the packs the
// server has available; the server sends its registry's table here
// immediately after Login acknowledgement.
type KnownPacksRequest struct {
	Packs []Pack
}

func (p *KnownPacksRequest) ID() int32 { return KnownPacksRequestID }
func (p *KnownPacksRequest) Encode(sink *wire.Sink) {
	wire.EncodeArray(sink, wire.ArrayLengthPrefixedVarInt, p.Packs, encodePack)
}
func decodeKnownPacksRequest(src *wire.Source) (Packet, error) {
	packs, err := wire.DecodeArray(src, wire.ArrayLengthPrefixedVarInt, 0, decodePack)
	if err != nil {
		return nil, err
	}
	return &KnownPacksRequest{Packs: packs}, nil
}

// Finish is the client-bound "you may acknowledge now" signal, answered by
// the client's AcknowledgeFinish.
type Finish struct{}

func (p *Finish) ID() int32         { return FinishID }
func (p *Finish) Encode(*wire.Sink) {}
func decodeFinish(*wire.Source) (Packet, error) {
	return &Finish{}, nil
}

func init() {
	register(ServerBound, Configuration, ClientInformationID, decodeClientInformation)
	register(ServerBound, Configuration, PluginMessageServerID, decodePluginMessage)
	register(ServerBound, Configuration, AcknowledgeFinishID, decodeAcknowledgeFinish)
	register(ServerBound, Configuration, KnownPacksResponseID, decodeKnownPacksResponse)
	register(ClientBound, Configuration, KnownPacksRequestID, decodeKnownPacksRequest)
	register(ClientBound, Configuration, FinishID, decodeFinish)
}
