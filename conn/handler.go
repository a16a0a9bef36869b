package conn

import (
	"sync"
	"time"

	"github.com/mcserver-go/mcserver/packet"
)

// Result is a handler's disposition after processing one packet.
type Result int

const (
	// Continue lets the next handler in the chain run.
	Continue Result = iota
	// ShortCircuit stops the chain without error; the packet was fully
	// handled.
	ShortCircuit
	// Cancelled stops the chain and surfaces an [ErrHandlerCancelled].
	Cancelled
)

// Handler processes one packet against a connection's mutable state. It may
// reply by calling [Connection.Send].
type Handler interface {
	Handle(c *Connection, p packet.Packet) (Result, error)
	// Name identifies the handler for [ErrHandlerCancelled]'s message.
	Name() string
}

// HandlerFunc adapts a plain function to [Handler].
type HandlerFunc struct {
	FuncName string
	Func     func(c *Connection, p packet.Packet) (Result, error)
}

func (f HandlerFunc) Handle(c *Connection, p packet.Packet) (Result, error) { return f.Func(c, p) }
func (f HandlerFunc) Name() string                                         { return f.FuncName }

// Chain is a list of handlers invoked in reverse insertion order: the last
// handler pushed runs first and may short-circuit the rest. The chain is
// typically shared across every connection a [Server] accepts, so dispatch
// is serialized by mu — at most one handler invocation runs at a time
// across the whole process, matching the per-connection state (phase,
// buffer, guard, prefs) staying lock-free.
type Chain struct {
	mu       sync.Mutex
	handlers []Handler
}

// Push appends h to the chain. Handlers pushed later run first.
func (c *Chain) Push(h Handler) {
	c.handlers = append(c.handlers, h)
}

// Dispatch runs the chain against one packet. It holds the chain's lock for
// the duration of the call and records the elapsed time into conn's handler
// latency statistic.
func (c *Chain) Dispatch(conn *Connection, p packet.Packet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	defer func() { conn.handlerLatency.Record(time.Since(start).Seconds()) }()

	for i := len(c.handlers) - 1; i >= 0; i-- {
		h := c.handlers[i]
		result, err := h.Handle(conn, p)
		if err != nil {
			return err
		}
		switch result {
		case ShortCircuit:
			return nil
		case Cancelled:
			return &ErrHandlerCancelled{Handler: h.Name()}
		}
	}
	return nil
}
