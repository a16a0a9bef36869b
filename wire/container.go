package wire

import "fmt"

// ArrayPolicy selects how a field's element count is communicated on the
// wire; the choice is part of the field's schema, not the value.
type ArrayPolicy int

const (
	// ArrayLengthPrefixedVarInt precedes the elements with a VarInt count.
	ArrayLengthPrefixedVarInt ArrayPolicy = iota
	// ArrayRemainingBytes has no explicit count: elements are decoded
	// until the source is exhausted.
	ArrayRemainingBytes
	// ArrayFixedLength has a schema-known, constant element count.
	ArrayFixedLength
)

// DecodeArray reads a sequence of elements from src according to policy,
// using decodeElem for each one. n is the fixed length for
// [ArrayFixedLength] and is ignored by the other policies.
func DecodeArray[T any](src *Source, policy ArrayPolicy, n int, decodeElem func(*Source) (T, error)) ([]T, error) {
	switch policy {
	case ArrayLengthPrefixedVarInt:
		count, err := DecodeVarInt(src, DefaultVarIntBudget)
		if err != nil {
			return nil, err
		}
		if count < 0 {
			return nil, fmt.Errorf("wire: negative array length %d", count)
		}
		n = int(count)
	case ArrayFixedLength:
		// n supplied by caller.
	case ArrayRemainingBytes:
		var out []T
		for src.Len() > 0 {
			v, err := decodeElem(src)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("wire: unknown array policy %d", policy)
	}

	out := make([]T, n)
	for i := range out {
		v, err := decodeElem(src)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// EncodeArray writes items to sink according to policy, using encodeElem
// for each one.
func EncodeArray[T any](sink *Sink, policy ArrayPolicy, items []T, encodeElem func(*Sink, T)) {
	if policy == ArrayLengthPrefixedVarInt {
		EncodeVarInt(sink, int32(len(items)))
	}
	for _, v := range items {
		encodeElem(sink, v)
	}
}

// OptionPolicy selects how a field's presence is communicated on the wire.
// A single field is never governed by both interpretations at once.
type OptionPolicy int

const (
	// OptionBoolPrefixed precedes the value with a presence byte.
	OptionBoolPrefixed OptionPolicy = iota
	// OptionPresentIfBytesRemain has no presence marker: the value is
	// decoded iff the source still has unread bytes (valid only as a
	// frame's trailing field).
	OptionPresentIfBytesRemain
)

// DecodeOption reads an optional value from src according to policy.
func DecodeOption[T any](src *Source, policy OptionPolicy, decodeElem func(*Source) (T, error)) (*T, error) {
	switch policy {
	case OptionBoolPrefixed:
		present, err := DecodeBool(src)
		if err != nil {
			return nil, err
		}
		if !present {
			return nil, nil
		}
	case OptionPresentIfBytesRemain:
		if src.Len() == 0 {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("wire: unknown option policy %d", policy)
	}
	v, err := decodeElem(src)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// EncodeOption writes an optional value to sink according to policy. A nil
// v emits only the bool-prefixed case's false byte; it emits nothing under
// [OptionPresentIfBytesRemain], since absence there is the absence of
// bytes.
func EncodeOption[T any](sink *Sink, policy OptionPolicy, v *T, encodeElem func(*Sink, T)) {
	switch policy {
	case OptionBoolPrefixed:
		EncodeBool(sink, v != nil)
		if v != nil {
			encodeElem(sink, *v)
		}
	case OptionPresentIfBytesRemain:
		if v != nil {
			encodeElem(sink, *v)
		}
	}
}
