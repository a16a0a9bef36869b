package wire_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcserver-go/mcserver/wire"
)

func TestUUIDRoundTrip(t *testing.T) {
	t.Parallel()

	u := uuid.New()
	sink := wire.NewSink()
	wire.EncodeUUID(sink, u)
	assert.Len(t, sink.Bytes(), 16)

	got, err := wire.DecodeUUID(wire.NewSource(sink.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestVarIntCanonicalVectors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value int32
		bytes []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{255, []byte{0xFF, 0x01}},
		{25565, []byte{0xDD, 0xC7, 0x01}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2147483647, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x07}},
		{-1, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
		{-2147483648, []byte{0x80, 0x80, 0x80, 0x80, 0x08}},
	}

	for _, c := range cases {
		sink := wire.NewSink()
		wire.EncodeVarInt(sink, c.value)
		assert.Equal(t, c.bytes, sink.Bytes(), "encode(%d)", c.value)
		assert.Equal(t, len(c.bytes), wire.SizeVarInt(c.value))

		src := wire.NewSource(c.bytes)
		got, err := wire.DecodeVarInt(src, 4)
		if len(c.bytes) > 4 {
			require.Error(t, err, "decode(%d) with budget 4", c.value)
			var tooBig *wire.ErrVarIntTooBig
			assert.ErrorAs(t, err, &tooBig)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.value, got)
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range []int32{0, 1, -1, 42, -42, 1 << 20, -(1 << 20), 2147483647, -2147483648} {
		sink := wire.NewSink()
		wire.EncodeVarInt(sink, v)
		src := wire.NewSource(sink.Bytes())
		got, err := wire.DecodeVarInt(src, wire.DefaultVarIntBudget)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestVarIntTooBigOverLongEncoding(t *testing.T) {
	t.Parallel()

	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
	src := wire.NewSource(buf)
	_, err := wire.DecodeVarInt(src, 4)
	require.Error(t, err)
	var tooBig *wire.ErrVarIntTooBig
	assert.ErrorAs(t, err, &tooBig)
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	sink := wire.NewSink()
	wire.EncodeString(sink, "localhost")
	src := wire.NewSource(sink.Bytes())
	got, err := wire.DecodeString(src, wire.DefaultMaxStringLen)
	require.NoError(t, err)
	assert.Equal(t, "localhost", got)
}

func TestBoolRoundTrip(t *testing.T) {
	t.Parallel()

	for _, b := range []bool{true, false} {
		sink := wire.NewSink()
		wire.EncodeBool(sink, b)
		got, err := wire.DecodeBool(wire.NewSource(sink.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestIdentifierFormatting(t *testing.T) {
	t.Parallel()

	withNS := wire.NewIdentifier("minecraft", "stone")
	assert.Equal(t, "minecraft:stone", withNS.String())
	assert.Equal(t, "minecraft", withNS.Namespace())

	noNS := wire.NewIdentifierDefaultNamespace("stone")
	assert.Equal(t, "stone", noNS.String())
	assert.Equal(t, "minecraft", noNS.Namespace())

	parsed, err := wire.ParseIdentifier("custom:thing")
	require.NoError(t, err)
	assert.Equal(t, "custom", parsed.Namespace())
	assert.Equal(t, "custom:thing", parsed.String())

	bare, err := wire.ParseIdentifier("thing")
	require.NoError(t, err)
	assert.Equal(t, "minecraft", bare.Namespace())
	assert.Equal(t, "thing", bare.String())
}

func TestFixedWidthNumberRoundTrip(t *testing.T) {
	t.Parallel()

	sink := wire.NewSink()
	wire.EncodeUint16(sink, 25565)
	wire.EncodeLong(sink, -123456789)

	src := wire.NewSource(sink.Bytes())
	port, err := wire.DecodeUint16(src)
	require.NoError(t, err)
	assert.Equal(t, uint16(25565), port)

	payload, err := wire.DecodeLong(src)
	require.NoError(t, err)
	assert.Equal(t, int64(-123456789), payload)
}

func TestArrayLengthPrefixedRoundTrip(t *testing.T) {
	t.Parallel()

	items := []int32{1, 2, 3}
	sink := wire.NewSink()
	wire.EncodeArray(sink, wire.ArrayLengthPrefixedVarInt, items, func(s *wire.Sink, v int32) {
		wire.EncodeVarInt(s, v)
	})

	src := wire.NewSource(sink.Bytes())
	got, err := wire.DecodeArray(src, wire.ArrayLengthPrefixedVarInt, 0, func(s *wire.Source) (int32, error) {
		return wire.DecodeVarInt(s, wire.DefaultVarIntBudget)
	})
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestOptionBoolPrefixedRoundTrip(t *testing.T) {
	t.Parallel()

	sink := wire.NewSink()
	val := int32(7)
	wire.EncodeOption(sink, wire.OptionBoolPrefixed, &val, func(s *wire.Sink, v int32) {
		wire.EncodeVarInt(s, v)
	})
	src := wire.NewSource(sink.Bytes())
	got, err := wire.DecodeOption(src, wire.OptionBoolPrefixed, func(s *wire.Source) (int32, error) {
		return wire.DecodeVarInt(s, wire.DefaultVarIntBudget)
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int32(7), *got)

	sink2 := wire.NewSink()
	wire.EncodeOption[int32](sink2, wire.OptionBoolPrefixed, nil, func(s *wire.Sink, v int32) {
		wire.EncodeVarInt(s, v)
	})
	src2 := wire.NewSource(sink2.Bytes())
	got2, err := wire.DecodeOption(src2, wire.OptionBoolPrefixed, func(s *wire.Source) (int32, error) {
		return wire.DecodeVarInt(s, wire.DefaultVarIntBudget)
	})
	require.NoError(t, err)
	assert.Nil(t, got2)
}
