package conn_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mcserver-go/mcserver/conn"
	"github.com/mcserver-go/mcserver/packet"
	"github.com/mcserver-go/mcserver/registry"
)

func TestServerServesStatusOverRealListener(t *testing.T) {
	t.Parallel()

	reg, err := registry.Load()
	require.NoError(t, err)

	s, err := conn.NewServer("127.0.0.1:0", zap.NewNop(), reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	serveErrs := make(chan error, 1)
	go func() { serveErrs <- s.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-serveErrs)
	})

	nc, err := net.DialTimeout("tcp", s.Addr().String(), 2*time.Second)
	require.NoError(t, err)
	defer nc.Close()

	require.NoError(t, writeFrame(nc, &packet.Handshake{
		ProtocolVersion: conn.CompiledProtocolVersion,
		ServerAddress:   "127.0.0.1",
		ServerPort:      25565,
		NextState:       packet.NextStatus,
	}))
	require.NoError(t, writeFrame(nc, &packet.StatusRequest{}))

	reply, err := readFrame(nc, packet.ClientBound, packet.Status)
	require.NoError(t, err)
	_, ok := reply.(*packet.StatusResponse)
	assert.True(t, ok)
}

func TestServerDropsConnectionOnProtocolMismatch(t *testing.T) {
	t.Parallel()

	reg, err := registry.Load()
	require.NoError(t, err)

	s, err := conn.NewServer("127.0.0.1:0", zap.NewNop(), reg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	serveErrs := make(chan error, 1)
	go func() { serveErrs <- s.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-serveErrs)
	})

	nc, err := net.DialTimeout("tcp", s.Addr().String(), 2*time.Second)
	require.NoError(t, err)
	defer nc.Close()

	require.NoError(t, writeFrame(nc, &packet.Handshake{
		ProtocolVersion: conn.CompiledProtocolVersion + 1,
		ServerAddress:   "127.0.0.1",
		ServerPort:      25565,
		NextState:       packet.NextStatus,
	}))

	nc.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 16)
	_, err = nc.Read(buf)
	assert.Error(t, err, "server must close the connection after a protocol-version mismatch")
}
