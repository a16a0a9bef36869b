package conn

import "fmt"

// CompiledProtocolVersion is the only handshake protocol version this
// server accepts; any other value is fatal to the connection.
const CompiledProtocolVersion int32 = 767

// ErrIncompatibleProtocolVersion is returned when a handshake claims a
// protocol version other than [CompiledProtocolVersion]. The connection's
// phase is never advanced past Handshaking when this occurs.
type ErrIncompatibleProtocolVersion struct {
	Got int32
}

func (e *ErrIncompatibleProtocolVersion) Error() string {
	return fmt.Sprintf("conn: incompatible protocol version %d, want %d", e.Got, CompiledProtocolVersion)
}

// ErrHandlerCancelled is returned by [Chain.Dispatch] when a handler
// reports [Cancelled]; it terminates the chain without running any
// remaining handlers.
type ErrHandlerCancelled struct {
	// Handler is the [Handler.Name] of the handler that cancelled the chain.
	Handler string
}

func (e *ErrHandlerCancelled) Error() string {
	return fmt.Sprintf("conn: handler %s cancelled the chain", e.Handler)
}
