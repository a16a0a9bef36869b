package conn

import (
	"encoding/json"
	"fmt"

	"github.com/mcserver-go/mcserver/packet"
	"github.com/mcserver-go/mcserver/registry"
)

// DefaultHandler implements the connection state machine: the
// packet-to-transition table for each of the five phases. It is installed
// first on a fresh [Chain], so any handler pushed afterward runs before it
// and may short-circuit it.
type DefaultHandler struct {
	registry *registry.Registry
}

// NewDefaultHandler builds the default handler, sourcing the Configuration
// phase's known-packs announcement from reg.
func NewDefaultHandler(reg *registry.Registry) *DefaultHandler {
	return &DefaultHandler{registry: reg}
}

func (h *DefaultHandler) Name() string { return "default" }

func (h *DefaultHandler) Handle(c *Connection, p packet.Packet) (Result, error) {
	switch c.Phase() {
	case packet.Handshaking:
		return h.handshaking(c, p)
	case packet.Status:
		return h.status(c, p)
	case packet.Login:
		return h.login(c, p)
	case packet.Configuration:
		return h.configuration(c, p)
	case packet.Play:
		return h.play(c, p)
	default:
		return Continue, fmt.Errorf("conn: connection in unknown phase %v", c.Phase())
	}
}

func invalidPacket(dir packet.Direction, phase packet.Phase, p packet.Packet) (Result, error) {
	return Continue, &packet.ErrInvalidPacketId{Direction: dir, Phase: phase, ID: p.ID()}
}

func (h *DefaultHandler) handshaking(c *Connection, p packet.Packet) (Result, error) {
	hs, ok := p.(*packet.Handshake)
	if !ok {
		return invalidPacket(packet.ServerBound, packet.Handshaking, p)
	}
	if hs.ProtocolVersion != CompiledProtocolVersion {
		return Continue, &ErrIncompatibleProtocolVersion{Got: hs.ProtocolVersion}
	}
	switch hs.NextState {
	case packet.NextStatus:
		c.setPhase(packet.Status)
	case packet.NextLogin:
		c.setPhase(packet.Login)
	default:
		return Continue, fmt.Errorf("conn: handshake requested unknown next state %d", hs.NextState)
	}
	return ShortCircuit, nil
}

func (h *DefaultHandler) status(c *Connection, p packet.Packet) (Result, error) {
	switch req := p.(type) {
	case *packet.StatusRequest:
		if c.StatusServed() {
			return Continue, fmt.Errorf("conn: status already served on this connection")
		}
		doc, err := json.Marshal(statusDocument{
			Version:     statusVersion{Name: "1.21", Protocol: CompiledProtocolVersion},
			Players:     statusPlayers{Max: 20, Online: 0},
			Description: statusDescription{Text: ""},
		})
		if err != nil {
			return Continue, fmt.Errorf("conn: encode status response: %w", err)
		}
		if err := c.Send(&packet.StatusResponse{JSON: string(doc)}); err != nil {
			return Continue, err
		}
		c.markStatusServed()
		return ShortCircuit, nil
	case *packet.PingRequest:
		if err := c.Send(&packet.Pong{Payload: req.Payload}); err != nil {
			return Continue, err
		}
		return ShortCircuit, nil
	default:
		return invalidPacket(packet.ServerBound, packet.Status, p)
	}
}

type statusVersion struct {
	Name     string `json:"name"`
	Protocol int32  `json:"protocol"`
}

type statusPlayers struct {
	Max    int `json:"max"`
	Online int `json:"online"`
}

type statusDescription struct {
	Text string `json:"text"`
}

type statusDocument struct {
	Version     statusVersion     `json:"version"`
	Players     statusPlayers     `json:"players"`
	Description statusDescription `json:"description"`
}

func (h *DefaultHandler) login(c *Connection, p packet.Packet) (Result, error) {
	switch req := p.(type) {
	case *packet.LoginStart:
		c.setIdentity(req.UUID, req.Name)
		success := &packet.LoginSuccess{
			UUID:                req.UUID,
			Username:            req.Name,
			Properties:          []packet.Property{},
			StrictErrorHandling: true,
		}
		if err := c.Send(success); err != nil {
			return Continue, err
		}
		return ShortCircuit, nil
	case *packet.LoginAcknowledged:
		c.setPhase(packet.Configuration)
		packs, err := h.knownPacks()
		if err != nil {
			return Continue, err
		}
		if err := c.Send(&packet.KnownPacksRequest{Packs: packs}); err != nil {
			return Continue, err
		}
		return ShortCircuit, nil
	default:
		return invalidPacket(packet.ServerBound, packet.Login, p)
	}
}

func (h *DefaultHandler) knownPacks() ([]packet.Pack, error) {
	entries, err := h.registry.Packs()
	if err != nil {
		return nil, err
	}
	packs := make([]packet.Pack, len(entries))
	for i, e := range entries {
		packs[i] = packet.Pack{Namespace: e.Namespace, ID: e.ID, Version: e.Version}
	}
	return packs, nil
}

func (h *DefaultHandler) configuration(c *Connection, p packet.Packet) (Result, error) {
	switch req := p.(type) {
	case *packet.ClientInformation:
		c.setPrefs(req)
		return ShortCircuit, nil
	case *packet.PluginMessage:
		return ShortCircuit, nil
	case *packet.KnownPacksResponse:
		if err := c.Send(&packet.Finish{}); err != nil {
			return Continue, err
		}
		return ShortCircuit, nil
	case *packet.AcknowledgeFinish:
		c.setPhase(packet.Play)
		return ShortCircuit, nil
	default:
		return invalidPacket(packet.ServerBound, packet.Configuration, p)
	}
}

func (h *DefaultHandler) play(c *Connection, p packet.Packet) (Result, error) {
	switch p.(type) {
	case *packet.KeepAliveResponse:
		return ShortCircuit, nil
	case *packet.ChatMessage:
		return ShortCircuit, nil
	default:
		return invalidPacket(packet.ServerBound, packet.Play, p)
	}
}
