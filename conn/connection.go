// Package conn implements the per-connection protocol state machine and the
// handler chain that drives it: reading frames off a transport, decoding
// them against the current phase, and dispatching each to a shared,
// mutex-serialized chain of handlers.
package conn

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mcserver-go/mcserver/internal/stats"
	"github.com/mcserver-go/mcserver/internal/sync2"
	"github.com/mcserver-go/mcserver/internal/trace"
	"github.com/mcserver-go/mcserver/internal/zc"
	"github.com/mcserver-go/mcserver/packet"
	"github.com/mcserver-go/mcserver/wire"
)

// initialReadBufSize is the connection's starting inbound buffer capacity;
// it grows by doubling whenever a frame doesn't fit.
const initialReadBufSize = 4096

// sinkPool recycles the scratch [wire.Sink] each [Connection.Send] call
// encodes into, so a busy connection doesn't allocate one per outbound
// packet.
var sinkPool = sync2.NewPool(func(s *wire.Sink) { s.Reset() })

// Connection holds one accepted transport's protocol state: the current
// phase, the status-response guard, negotiated client preferences, and the
// inbound buffer backing frame decoding. None of this is shared across
// connections or synchronized — only one goroutine ever touches a given
// Connection's fields, since the connection's own read loop is the sole
// caller of everything here except [Chain.Dispatch], which it also calls
// serially.
type Connection struct {
	transport net.Conn
	log       *zap.Logger

	phase        packet.Phase
	statusServed bool
	identity     uuid.UUID
	username     string
	prefs        *packet.ClientInformation

	readBuf []byte
	readLen int

	frameSize      stats.Mean
	handlerLatency *stats.Median
}

// NewConnection wraps transport as a fresh connection in the Handshaking
// phase.
func NewConnection(transport net.Conn, log *zap.Logger) *Connection {
	return &Connection{
		transport:      transport,
		log:            log,
		phase:          packet.Handshaking,
		readBuf:        make([]byte, initialReadBufSize),
		handlerLatency: stats.NewMedian(256),
	}
}

// Phase reports the connection's current protocol phase.
func (c *Connection) Phase() packet.Phase { return c.phase }

func (c *Connection) setPhase(p packet.Phase) { c.phase = p }

// StatusServed reports whether a status response has already been sent on
// this connection.
func (c *Connection) StatusServed() bool { return c.statusServed }

func (c *Connection) markStatusServed() { c.statusServed = true }

func (c *Connection) setIdentity(id uuid.UUID, username string) {
	c.identity = id
	c.username = username
}

func (c *Connection) setPrefs(p *packet.ClientInformation) { c.prefs = p }

// Prefs returns the client's negotiated display preferences, or nil if the
// client hasn't sent any yet.
func (c *Connection) Prefs() *packet.ClientInformation { return c.prefs }

// Log returns the connection's peer-attributed logger.
func (c *Connection) Log() *zap.Logger { return c.log }

// Stats returns the running mean inbound frame size in bytes and the
// running median handler-dispatch latency in seconds.
func (c *Connection) Stats() (meanFrameSize, p50HandlerLatency float64) {
	return c.frameSize.Get(), c.handlerLatency.Get()
}

// Send encodes p as a frame and writes it to the transport in one call,
// per the ordering guarantee that outbound writes happen in call order.
func (c *Connection) Send(p packet.Packet) error {
	sink, drop := sinkPool.Get()
	defer drop()
	p.Encode(sink)
	frame := packet.EncodeFrame(p.ID(), sink.Bytes())
	if trace.Enabled {
		c.log.Debug("frame sent", zap.Stringer("frame", trace.Dict("frame",
			"id", p.ID(), "phase", c.phase, "bytes", len(frame))))
	}
	if _, err := c.transport.Write(frame); err != nil {
		return fmt.Errorf("conn: write: %w", err)
	}
	return nil
}

// Receive blocks until one full frame has arrived, decodes it against the
// connection's current phase and server-bound direction, and returns the
// resulting packet. It never returns a packet decoded with a stale phase:
// the phase used is read only once a complete frame is in hand.
func (c *Connection) Receive(ctx context.Context) (packet.Packet, error) {
	for {
		id, payload, consumed, err := packet.DecodeFrame(c.readBuf[:c.readLen])
		if err == nil {
			p, decErr := packet.Decode(packet.ServerBound, c.phase, id, payload)
			c.frameSize.Record(float64(consumed))
			if trace.Enabled {
				frameRange := zc.New(0, consumed)
				c.log.Debug("frame received", zap.Stringer("frame", trace.Dict("frame",
					"id", id, "phase", c.phase, "range", frameRange)))
			}
			c.compact(consumed)
			return p, decErr
		}
		if !errors.Is(err, packet.ErrIncompleteFrame) {
			return nil, fmt.Errorf("conn: decode frame: %w", err)
		}
		if err := c.fill(ctx); err != nil {
			return nil, err
		}
	}
}

// compact discards the first n bytes of the read buffer, sliding any
// remaining unconsumed bytes to the front.
func (c *Connection) compact(n int) {
	copy(c.readBuf, c.readBuf[n:c.readLen])
	c.readLen -= n
}

// fill reads more bytes from the transport into the read buffer, growing
// it first if it's already full. A blocked Read is interrupted by closing
// the transport, which the connection's owning goroutine does when ctx is
// cancelled; fill itself only short-circuits on an already-cancelled ctx.
func (c *Connection) fill(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.readLen == len(c.readBuf) {
		grown := make([]byte, len(c.readBuf)*2)
		copy(grown, c.readBuf[:c.readLen])
		c.readBuf = grown
	}
	n, err := c.transport.Read(c.readBuf[c.readLen:])
	if err != nil {
		return fmt.Errorf("conn: read: %w", err)
	}
	c.readLen += n
	return nil
}
