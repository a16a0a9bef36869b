// Package packet implements the frame format and the direction/phase
// packet catalogue: the decoded representation of every packet this server
// understands, keyed by (direction, phase, packet id) the way the protocol
// itself keys them.
package packet

import (
	"fmt"

	"github.com/mcserver-go/mcserver/wire"
)

// Direction is which end of the connection originated a packet.
type Direction int

const (
	ServerBound Direction = iota
	ClientBound
)

func (d Direction) String() string {
	if d == ClientBound {
		return "client-bound"
	}
	return "server-bound"
}

// Phase is one of the five connection states of the handshake/status/login/
// configuration/play state machine.
type Phase int

const (
	Handshaking Phase = iota
	Status
	Login
	Configuration
	Play
)

func (p Phase) String() string {
	switch p {
	case Handshaking:
		return "Handshaking"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Configuration:
		return "Configuration"
	case Play:
		return "Play"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Packet is implemented by every decoded packet variant.
type Packet interface {
	// ID returns this packet's catalogue id, used to re-encode the frame.
	ID() int32
	// Encode writes this packet's payload (not the frame length or id) to
	// sink.
	Encode(sink *wire.Sink)
}

// ErrInvalidPacketId is returned when a frame's id has no registered
// variant for the (direction, phase) pair it arrived under.
type ErrInvalidPacketId struct {
	Direction Direction
	Phase     Phase
	ID        int32
}

func (e *ErrInvalidPacketId) Error() string {
	return fmt.Sprintf("packet: no %s packet with id %d in phase %s", e.Direction, e.ID, e.Phase)
}

type catalogueKey struct {
	dir   Direction
	phase Phase
	id    int32
}

// DecodeFunc decodes one packet's payload (the frame's length and id
// already consumed) into a concrete [Packet].
type DecodeFunc func(src *wire.Source) (Packet, error)

var catalogue = make(map[catalogueKey]DecodeFunc)

// register adds a packet variant to the catalogue. Called from each
// packet-file's init; a (direction, phase, id) triple registered twice is a
// programming error and panics rather than silently shadowing.
func register(dir Direction, phase Phase, id int32, fn DecodeFunc) {
	key := catalogueKey{dir, phase, id}
	if _, exists := catalogue[key]; exists {
		panic(fmt.Sprintf("packet: duplicate registration for %s/%s/%d", dir, phase, id))
	}
	catalogue[key] = fn
}

// Decode looks up the catalogue entry for (dir, phase, id) and decodes
// payload with it.
func Decode(dir Direction, phase Phase, id int32, payload []byte) (Packet, error) {
	fn, ok := catalogue[catalogueKey{dir, phase, id}]
	if !ok {
		return nil, &ErrInvalidPacketId{Direction: dir, Phase: phase, ID: id}
	}
	return fn(wire.NewSource(payload))
}
