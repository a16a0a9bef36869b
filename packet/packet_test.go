package packet_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcserver-go/mcserver/packet"
	"github.com/mcserver-go/mcserver/wire"
)

func roundTrip(t *testing.T, dir packet.Direction, phase packet.Phase, p packet.Packet) packet.Packet {
	t.Helper()
	sink := wire.NewSink()
	p.Encode(sink)
	frame := packet.EncodeFrame(p.ID(), sink.Bytes())

	id, payload, consumed, err := packet.DecodeFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, len(frame), consumed)
	assert.Equal(t, p.ID(), id)

	got, err := packet.Decode(dir, phase, id, payload)
	require.NoError(t, err)
	return got
}

func TestHandshakeRoundTrip(t *testing.T) {
	t.Parallel()

	in := &packet.Handshake{
		ProtocolVersion: 767,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       packet.NextStatus,
	}
	got := roundTrip(t, packet.ServerBound, packet.Handshaking, in)
	assert.Equal(t, in, got)
}

func TestStatusRoundTrip(t *testing.T) {
	t.Parallel()

	req := roundTrip(t, packet.ServerBound, packet.Status, &packet.StatusRequest{})
	assert.Equal(t, &packet.StatusRequest{}, req)

	ping := roundTrip(t, packet.ServerBound, packet.Status, &packet.PingRequest{Payload: 42})
	assert.Equal(t, &packet.PingRequest{Payload: 42}, ping)

	resp := roundTrip(t, packet.ClientBound, packet.Status, &packet.StatusResponse{JSON: `{"version":{}}`})
	assert.Equal(t, &packet.StatusResponse{JSON: `{"version":{}}`}, resp)

	pong := roundTrip(t, packet.ClientBound, packet.Status, &packet.Pong{Payload: 42})
	assert.Equal(t, &packet.Pong{Payload: 42}, pong)
}

func TestLoginRoundTrip(t *testing.T) {
	t.Parallel()

	u := uuid.New()
	start := roundTrip(t, packet.ServerBound, packet.Login, &packet.LoginStart{Name: "alice", UUID: u})
	assert.Equal(t, &packet.LoginStart{Name: "alice", UUID: u}, start)

	ack := roundTrip(t, packet.ServerBound, packet.Login, &packet.LoginAcknowledged{})
	assert.Equal(t, &packet.LoginAcknowledged{}, ack)

	success := &packet.LoginSuccess{
		UUID:                u,
		Username:            "alice",
		Properties:          []packet.Property{},
		StrictErrorHandling: true,
	}
	got := roundTrip(t, packet.ClientBound, packet.Login, success)
	assert.Equal(t, success, got)
}

func TestLoginSuccessWithProperties(t *testing.T) {
	t.Parallel()

	sig := "deadbeef"
	success := &packet.LoginSuccess{
		UUID:     uuid.New(),
		Username: "bob",
		Properties: []packet.Property{
			{Name: "textures", Value: "abc123", Signature: &sig},
			{Name: "nosig", Value: "x"},
		},
	}
	got := roundTrip(t, packet.ClientBound, packet.Login, success)
	assert.Equal(t, success, got)
}

func TestConfigurationRoundTrip(t *testing.T) {
	t.Parallel()

	info := &packet.ClientInformation{
		Locale:       "en_US",
		ViewDistance: 10,
		ChatMode:     0,
		ChatColors:   true,
		SkinParts:    0x7F,
		MainHand:     1,
	}
	assert.Equal(t, info, roundTrip(t, packet.ServerBound, packet.Configuration, info))

	plugin := &packet.PluginMessage{Channel: "minecraft:brand", Data: []byte("fabric")}
	assert.Equal(t, plugin, roundTrip(t, packet.ServerBound, packet.Configuration, plugin))

	ack := &packet.AcknowledgeFinish{}
	assert.Equal(t, ack, roundTrip(t, packet.ServerBound, packet.Configuration, ack))

	packs := []packet.Pack{{Namespace: "minecraft", ID: "core", Version: "1.21"}}
	resp := &packet.KnownPacksResponse{Packs: packs}
	assert.Equal(t, resp, roundTrip(t, packet.ServerBound, packet.Configuration, resp))

	req := &packet.KnownPacksRequest{Packs: packs}
	assert.Equal(t, req, roundTrip(t, packet.ClientBound, packet.Configuration, req))

	finish := &packet.Finish{}
	assert.Equal(t, finish, roundTrip(t, packet.ClientBound, packet.Configuration, finish))
}

func TestPlayRoundTrip(t *testing.T) {
	t.Parallel()

	resp := &packet.KeepAliveResponse{KeepAliveID: 99}
	assert.Equal(t, resp, roundTrip(t, packet.ServerBound, packet.Play, resp))

	chat := &packet.ChatMessage{Message: "hello"}
	assert.Equal(t, chat, roundTrip(t, packet.ServerBound, packet.Play, chat))

	req := &packet.KeepAliveRequest{KeepAliveID: 99}
	assert.Equal(t, req, roundTrip(t, packet.ClientBound, packet.Play, req))

	disc := &packet.Disconnect{Reason: `{"text":"bye"}`}
	assert.Equal(t, disc, roundTrip(t, packet.ClientBound, packet.Play, disc))
}

func TestDecodeInvalidPacketId(t *testing.T) {
	t.Parallel()

	_, err := packet.Decode(packet.ClientBound, packet.Handshaking, 0, nil)
	require.Error(t, err)
	var invalid *packet.ErrInvalidPacketId
	assert.ErrorAs(t, err, &invalid)
}

func TestDecodeFrameIncomplete(t *testing.T) {
	t.Parallel()

	full := packet.EncodeFrame(packet.StatusRequestID, nil)
	_, _, _, err := packet.DecodeFrame(full[:len(full)-1])
	assert.ErrorIs(t, err, packet.ErrIncompleteFrame)
}

func TestDecodeFrameConsumesOnlyOneFrame(t *testing.T) {
	t.Parallel()

	sink := wire.NewSink()
	wire.EncodeLong(sink, 7)
	frame := packet.EncodeFrame(packet.PingRequestID, sink.Bytes())

	trailing := append(append([]byte{}, frame...), 0xFF, 0xFF)
	id, payload, consumed, err := packet.DecodeFrame(trailing)
	require.NoError(t, err)
	assert.Equal(t, packet.PingRequestID, id)
	assert.Equal(t, len(frame), consumed)

	got, err := packet.Decode(packet.ServerBound, packet.Status, id, payload)
	require.NoError(t, err)
	assert.Equal(t, &packet.PingRequest{Payload: 7}, got)
}
