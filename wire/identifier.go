package wire

import (
	"fmt"
	"strings"
)

// DefaultNamespace is used by [Identifier.Namespace] whenever an identifier
// was constructed or parsed without an explicit namespace.
const DefaultNamespace = "minecraft"

// Identifier is a (namespace, value) pair. The protocol draws the namespace
// from [a-z0-9._-] and the value from [a-z0-9._-/], with a combined length of
// at most 32767; this type does not check the character classes, and only
// [ParseIdentifier] checks the length. An identifier parsed or built without a
// namespace renders without one: [Identifier.String] omits the namespace
// and its colon entirely in that case, even though [Identifier.Namespace]
// still reports the default.
type Identifier struct {
	namespace string // "" means absent, not merely equal to the default
	value     string
}

// NewIdentifier returns an Identifier with an explicit namespace.
func NewIdentifier(namespace, value string) Identifier {
	return Identifier{namespace: namespace, value: value}
}

// NewIdentifierDefaultNamespace returns an Identifier with no explicit
// namespace; [Namespace] still reports [DefaultNamespace], but [String]
// omits it.
func NewIdentifierDefaultNamespace(value string) Identifier {
	return Identifier{value: value}
}

// ParseIdentifier splits s on the first colon into namespace and value; a
// string with no colon is treated as having no explicit namespace.
func ParseIdentifier(s string) (Identifier, error) {
	if len(s) > 32767 {
		return Identifier{}, fmt.Errorf("wire: identifier %q exceeds max length", s)
	}
	ns, value, ok := strings.Cut(s, ":")
	if !ok {
		return Identifier{value: ns}, nil
	}
	return Identifier{namespace: ns, value: value}, nil
}

// Namespace returns this identifier's namespace, or [DefaultNamespace] if
// none was given.
func (id Identifier) Namespace() string {
	if id.namespace == "" {
		return DefaultNamespace
	}
	return id.namespace
}

// Value returns this identifier's path component.
func (id Identifier) Value() string { return id.value }

// String renders the identifier as it appears on the wire: "namespace:value"
// if a namespace was given, or just "value" if it was not.
func (id Identifier) String() string {
	if id.namespace == "" {
		return id.value
	}
	return id.namespace + ":" + id.value
}

// EncodeIdentifierString writes id as a single length-prefixed
// "namespace:value" (or bare "value") string — the single-string wire form.
func EncodeIdentifierString(sink *Sink, id Identifier) {
	EncodeString(sink, id.String())
}

// DecodeIdentifierString reads the single-string wire form of an
// identifier.
func DecodeIdentifierString(src *Source, maxLen int) (Identifier, error) {
	s, err := DecodeString(src, maxLen)
	if err != nil {
		return Identifier{}, err
	}
	return ParseIdentifier(s)
}

// EncodeIdentifierPair writes id as two consecutive length-prefixed
// strings, namespace then value — the two-string wire form used by fields
// whose schema calls for it.
func EncodeIdentifierPair(sink *Sink, id Identifier) {
	EncodeString(sink, id.Namespace())
	EncodeString(sink, id.value)
}

// DecodeIdentifierPair reads the two-string wire form of an identifier.
func DecodeIdentifierPair(src *Source, maxLen int) (Identifier, error) {
	ns, err := DecodeString(src, maxLen)
	if err != nil {
		return Identifier{}, err
	}
	value, err := DecodeString(src, maxLen)
	if err != nil {
		return Identifier{}, err
	}
	return Identifier{namespace: ns, value: value}, nil
}
