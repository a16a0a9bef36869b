package conn_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcserver-go/mcserver/conn"
	"github.com/mcserver-go/mcserver/packet"
	"github.com/mcserver-go/mcserver/registry"
)

func newDefaultHandler(t *testing.T) *conn.DefaultHandler {
	t.Helper()
	reg, err := registry.Load()
	require.NoError(t, err)
	return conn.NewDefaultHandler(reg)
}

func TestHandshakeSelectsNextPhase(t *testing.T) {
	t.Parallel()

	h := newDefaultHandler(t)
	c, _ := newTestConnection(t)

	result, err := h.Handle(c, &packet.Handshake{
		ProtocolVersion: conn.CompiledProtocolVersion,
		ServerAddress:   "localhost",
		ServerPort:      25565,
		NextState:       packet.NextStatus,
	})
	require.NoError(t, err)
	assert.Equal(t, conn.ShortCircuit, result)
	assert.Equal(t, packet.Status, c.Phase())
}

func TestIncompatibleProtocolVersionNeverAdvancesPhase(t *testing.T) {
	t.Parallel()

	h := newDefaultHandler(t)
	c, _ := newTestConnection(t)

	_, err := h.Handle(c, &packet.Handshake{
		ProtocolVersion: conn.CompiledProtocolVersion + 1,
		NextState:       packet.NextStatus,
	})
	require.Error(t, err)
	var mismatch *conn.ErrIncompatibleProtocolVersion
	assert.ErrorAs(t, err, &mismatch)
	assert.Equal(t, packet.Handshaking, c.Phase())
}

func TestNoClientBoundPacketRegisteredInHandshaking(t *testing.T) {
	t.Parallel()

	_, err := packet.Decode(packet.ClientBound, packet.Handshaking, packet.HandshakeID, nil)
	require.Error(t, err)
	var invalid *packet.ErrInvalidPacketId
	assert.ErrorAs(t, err, &invalid)
}

func TestStatusServedAtMostOnce(t *testing.T) {
	t.Parallel()

	h := newDefaultHandler(t)
	c, client := newTestConnection(t)
	_, err := h.Handle(c, &packet.Handshake{ProtocolVersion: conn.CompiledProtocolVersion, NextState: packet.NextStatus})
	require.NoError(t, err)

	replyCh := make(chan packet.Packet, 1)
	go func() {
		p, err := readFrame(client, packet.ClientBound, packet.Status)
		require.NoError(t, err)
		replyCh <- p
	}()

	result, err := h.Handle(c, &packet.StatusRequest{})
	require.NoError(t, err)
	assert.Equal(t, conn.ShortCircuit, result)
	reply := <-replyCh
	_, ok := reply.(*packet.StatusResponse)
	assert.True(t, ok)
	assert.True(t, c.StatusServed())

	_, err = h.Handle(c, &packet.StatusRequest{})
	require.Error(t, err)
}

func TestLoginThenAcknowledgedEntersConfiguration(t *testing.T) {
	t.Parallel()

	h := newDefaultHandler(t)
	c, client := newTestConnection(t)

	_, err := h.Handle(c, &packet.Handshake{ProtocolVersion: conn.CompiledProtocolVersion, NextState: packet.NextLogin})
	require.NoError(t, err)
	assert.Equal(t, packet.Login, c.Phase())

	id := uuid.New()
	successCh := make(chan packet.Packet, 1)
	go func() {
		p, err := readFrame(client, packet.ClientBound, packet.Login)
		require.NoError(t, err)
		successCh <- p
	}()
	_, err = h.Handle(c, &packet.LoginStart{Name: "alice", UUID: id})
	require.NoError(t, err)
	success := (<-successCh).(*packet.LoginSuccess)
	assert.Equal(t, id, success.UUID)
	assert.Equal(t, "alice", success.Username)
	assert.Empty(t, success.Properties)
	assert.True(t, success.StrictErrorHandling)

	packsCh := make(chan packet.Packet, 1)
	go func() {
		p, err := readFrame(client, packet.ClientBound, packet.Configuration)
		require.NoError(t, err)
		packsCh <- p
	}()
	_, err = h.Handle(c, &packet.LoginAcknowledged{})
	require.NoError(t, err)
	assert.Equal(t, packet.Configuration, c.Phase())
	packs := (<-packsCh).(*packet.KnownPacksRequest)
	require.Len(t, packs.Packs, 1)
	assert.Equal(t, packet.Pack{Namespace: "minecraft", ID: "core", Version: "1.21"}, packs.Packs[0])
}

func TestConfigurationKnownPacksResponseTriggersFinish(t *testing.T) {
	t.Parallel()

	h := newDefaultHandler(t)
	c, client := newTestConnection(t)

	_, err := h.Handle(c, &packet.Handshake{ProtocolVersion: conn.CompiledProtocolVersion, NextState: packet.NextLogin})
	require.NoError(t, err)

	packsCh := make(chan packet.Packet, 1)
	go func() {
		p, err := readFrame(client, packet.ClientBound, packet.Configuration)
		require.NoError(t, err)
		packsCh <- p
	}()
	_, err = h.Handle(c, &packet.LoginAcknowledged{})
	require.NoError(t, err)
	<-packsCh

	finishCh := make(chan packet.Packet, 1)
	go func() {
		p, err := readFrame(client, packet.ClientBound, packet.Configuration)
		require.NoError(t, err)
		finishCh <- p
	}()
	result, err := h.Handle(c, &packet.KnownPacksResponse{})
	require.NoError(t, err)
	assert.Equal(t, conn.ShortCircuit, result)
	finish := <-finishCh
	_, ok := finish.(*packet.Finish)
	assert.True(t, ok)
	assert.Equal(t, packet.Configuration, c.Phase())

	result, err = h.Handle(c, &packet.AcknowledgeFinish{})
	require.NoError(t, err)
	assert.Equal(t, conn.ShortCircuit, result)
	assert.Equal(t, packet.Play, c.Phase())
}
