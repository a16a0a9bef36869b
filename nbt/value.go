package nbt

import "math"

// Value is a cheap-to-copy tagged handle to a parsed NBT value. Scalar kinds
// (Byte..Double) embed their payload directly; the six "large" kinds
// (ByteArray, String, List, Compound, IntArray, LongArray) materialize their
// contents through a [Parser]'s cache rather than the handle itself. Every
// kind, scalar or large, also carries its own tape index, so a Node built
// from a Value can still answer questions (such as its own name) that
// require walking back to the tape.
type Value struct {
	tag       Tag
	tapeIndex int
	scalar    uint64
}

// Tag reports the kind of this value.
func (v Value) Tag() Tag { return v.tag }

// Byte returns the payload reinterpreted as a signed byte. Only meaningful
// when Tag() == TagByte.
func (v Value) Byte() int8 { return int8(v.scalar) }

// Short returns the payload reinterpreted as a signed 16-bit integer. Only
// meaningful when Tag() == TagShort.
func (v Value) Short() int16 { return int16(v.scalar) }

// Int32 returns the payload reinterpreted as a signed 32-bit integer. Only
// meaningful when Tag() == TagInt.
func (v Value) Int32() int32 { return int32(v.scalar) }

// Long returns the payload reinterpreted as a signed 64-bit integer. Only
// meaningful when Tag() == TagLong.
func (v Value) Long() int64 { return int64(v.scalar) }

// Float32 returns the payload reinterpreted as an IEEE-754 single-precision
// float. Only meaningful when Tag() == TagFloat.
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.scalar)) }

// Float64 returns the payload reinterpreted as an IEEE-754 double-precision
// float. Only meaningful when Tag() == TagDouble.
func (v Value) Float64() float64 { return math.Float64frombits(v.scalar) }
