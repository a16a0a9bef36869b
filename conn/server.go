package conn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mcserver-go/mcserver/registry"
)

// Server accepts transport connections on a bound listener and drives each
// through a shared handler [Chain] until its transport closes or the
// server's context is cancelled.
type Server struct {
	ln    net.Listener
	log   *zap.Logger
	chain *Chain
}

// NewServer binds addr and builds a server whose chain is pre-seeded with
// [NewDefaultHandler] sourced from reg. Callers may push additional
// handlers onto [Server.Chain] before calling [Server.Serve].
func NewServer(addr string, log *zap.Logger, reg *registry.Registry) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("conn: listen on %s: %w", addr, err)
	}
	chain := &Chain{}
	chain.Push(NewDefaultHandler(reg))
	return &Server{ln: ln, log: log, chain: chain}, nil
}

// Addr returns the server's bound listening address, useful when addr was
// passed to [NewServer] as ":0".
func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Chain returns the server's handler chain.
func (s *Server) Chain() *Chain { return s.chain }

// Serve runs the accept loop until ctx is cancelled or the listener fails.
// Each accepted connection runs as an independent supervised task: a
// per-connection error is logged and that connection is dropped, without
// tearing down the other connections or the accept loop.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return s.ln.Close()
	})

	for {
		nc, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("conn: accept: %w", err)
		}
		g.Go(func() error {
			s.serveOne(ctx, nc)
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// serveOne drives one accepted connection until it errors or closes. ctx
// cancellation is applied by closing the transport, which interrupts any
// in-flight blocking Read.
func (s *Server) serveOne(ctx context.Context, nc net.Conn) {
	defer nc.Close()

	log := s.log.With(zap.String("remote", nc.RemoteAddr().String()))
	c := NewConnection(nc, log)

	stop := context.AfterFunc(ctx, func() { nc.Close() })
	defer stop()

	for {
		p, err := c.Receive(ctx)
		if err != nil {
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				log.Error("connection closed with error", zap.Error(err))
			}
			return
		}
		if err := s.chain.Dispatch(c, p); err != nil {
			log.Error("handler chain error", zap.Error(err))
			return
		}
	}
}
