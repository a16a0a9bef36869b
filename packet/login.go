package packet

import (
	"github.com/google/uuid"

	"github.com/mcserver-go/mcserver/wire"
)

const (
	LoginStartID        int32 = 0x00
	LoginAcknowledgedID int32 = 0x03
	LoginSuccessID      int32 = 0x02
)

// LoginStart is the server-bound packet that names the connecting player
// and their pre-generated UUID.
type LoginStart struct {
	Name string
	UUID uuid.UUID
}

func (p *LoginStart) ID() int32 { return LoginStartID }
func (p *LoginStart) Encode(sink *wire.Sink) {
	wire.EncodeString(sink, p.Name)
	wire.EncodeUUID(sink, p.UUID)
}
func decodeLoginStart(src *wire.Source) (Packet, error) {
	name, err := wire.DecodeString(src, 16)
	if err != nil {
		return nil, err
	}
	id, err := wire.DecodeUUID(src)
	if err != nil {
		return nil, err
	}
	return &LoginStart{Name: name, UUID: id}, nil
}

// LoginAcknowledged has no fields; its arrival advances the connection from
// Login to Configuration.
type LoginAcknowledged struct{}

func (p *LoginAcknowledged) ID() int32         { return LoginAcknowledgedID }
func (p *LoginAcknowledged) Encode(*wire.Sink) {}
func decodeLoginAcknowledged(*wire.Source) (Packet, error) {
	return &LoginAcknowledged{}, nil
}

// Property is one entry of a LoginSuccess's properties array: a named
// value with an optional cryptographic signature. These travel as plain
// wire primitives (VarInt-counted array of String/String/Option<String>),
// not as embedded NBT — the NBT adapter is exercised independently by its
// own round-trip tests.
type Property struct {
	Name      string
	Value     string
	Signature *string
}

func encodeProperty(sink *wire.Sink, p Property) {
	wire.EncodeString(sink, p.Name)
	wire.EncodeString(sink, p.Value)
	wire.EncodeOption(sink, wire.OptionBoolPrefixed, p.Signature, wire.EncodeString)
}

func decodeProperty(src *wire.Source) (Property, error) {
	name, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return Property{}, err
	}
	value, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	if err != nil {
		return Property{}, err
	}
	sig, err := wire.DecodeOption(src, wire.OptionBoolPrefixed, func(s *wire.Source) (string, error) {
		return wire.DecodeString(s, wire.DefaultMaxStringLen)
	})
	if err != nil {
		return Property{}, err
	}
	return Property{Name: name, Value: value, Signature: sig}, nil
}

// LoginSuccess is the client-bound reply confirming the player's identity
// and completing the Login phase's handshake with the client.
type LoginSuccess struct {
	UUID                uuid.UUID
	Username            string
	Properties          []Property
	StrictErrorHandling bool
}

func (p *LoginSuccess) ID() int32 { return LoginSuccessID }
func (p *LoginSuccess) Encode(sink *wire.Sink) {
	wire.EncodeUUID(sink, p.UUID)
	wire.EncodeString(sink, p.Username)
	wire.EncodeArray(sink, wire.ArrayLengthPrefixedVarInt, p.Properties, encodeProperty)
	wire.EncodeBool(sink, p.StrictErrorHandling)
}
func decodeLoginSuccess(src *wire.Source) (Packet, error) {
	id, err := wire.DecodeUUID(src)
	if err != nil {
		return nil, err
	}
	name, err := wire.DecodeString(src, 16)
	if err != nil {
		return nil, err
	}
	props, err := wire.DecodeArray(src, wire.ArrayLengthPrefixedVarInt, 0, decodeProperty)
	if err != nil {
		return nil, err
	}
	strict, err := wire.DecodeBool(src)
	if err != nil {
		return nil, err
	}
	return &LoginSuccess{UUID: id, Username: name, Properties: props, StrictErrorHandling: strict}, nil
}

func init() {
	register(ServerBound, Login, LoginStartID, decodeLoginStart)
	register(ServerBound, Login, LoginAcknowledgedID, decodeLoginAcknowledged)
	register(ClientBound, Login, LoginSuccessID, decodeLoginSuccess)
}
