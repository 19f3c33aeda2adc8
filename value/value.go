// Package value defines the tagged-union Value type used to build and
// inspect typed key/value pairs independent of the wire-format entry
// record that package section serializes them into.
package value

import (
	"fmt"

	"github.com/espflash/nvs/errs"
	"github.com/espflash/nvs/format"
)

// Value is a tagged union over the eight entry types the format
// supports. Zero value is not valid; construct with the package's
// constructor functions.
type Value struct {
	kind format.EntryType
	num  uint64 // numeric types, sign-extended as needed on read
	str  string // TypeStr payload, without the null terminator
	blob []byte // TypeBlob payload
}

// Kind reports the entry type tag this value carries.
func (v Value) Kind() format.EntryType {
	return v.kind
}

// U8 constructs an unsigned 8-bit value.
func U8(n uint8) Value { return Value{kind: format.TypeU8, num: uint64(n)} }

// I8 constructs a signed 8-bit value.
func I8(n int8) Value { return Value{kind: format.TypeI8, num: uint64(uint8(n))} }

// U16 constructs an unsigned 16-bit value.
func U16(n uint16) Value { return Value{kind: format.TypeU16, num: uint64(n)} }

// I16 constructs a signed 16-bit value.
func I16(n int16) Value { return Value{kind: format.TypeI16, num: uint64(uint16(n))} }

// U32 constructs an unsigned 32-bit value.
func U32(n uint32) Value { return Value{kind: format.TypeU32, num: uint64(n)} }

// I32 constructs a signed 32-bit value.
func I32(n int32) Value { return Value{kind: format.TypeI32, num: uint64(uint32(n))} }

// Str constructs a string value. The trailing null terminator the wire
// format requires is added at encode time, not stored here.
func Str(s string) Value { return Value{kind: format.TypeStr, str: s} }

// Blob constructs a raw binary value.
func Blob(b []byte) Value {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Value{kind: format.TypeBlob, blob: cp}
}

// AutoInt picks the narrowest signed integer type that can represent v:
// I8, then I16, then I32. It returns errs.ErrValueTooLarge if v does not
// fit in an int32.
func AutoInt(v int64) (Value, error) {
	switch {
	case v >= -1<<7 && v <= 1<<7-1:
		return I8(int8(v)), nil
	case v >= -1<<15 && v <= 1<<15-1:
		return I16(int16(v)), nil
	case v >= -1<<31 && v <= 1<<31-1:
		return I32(int32(v)), nil
	default:
		return Value{}, fmt.Errorf("%w: %d does not fit in a 32-bit signed integer", errs.ErrValueTooLarge, v)
	}
}

// AutoUint picks the narrowest unsigned integer type that can represent
// v: U8, then U16, then U32. It returns errs.ErrValueTooLarge if v does
// not fit in a uint32.
func AutoUint(v uint64) (Value, error) {
	switch {
	case v <= 1<<8-1:
		return U8(uint8(v)), nil
	case v <= 1<<16-1:
		return U16(uint16(v)), nil
	case v <= 1<<32-1:
		return U32(uint32(v)), nil
	default:
		return Value{}, fmt.Errorf("%w: %d does not fit in a 32-bit unsigned integer", errs.ErrValueTooLarge, v)
	}
}

// Uint8 returns the value as a uint8, panicking if Kind() != TypeU8.
// Accessors follow this narrow-panic convention deliberately: callers
// that dispatch on Kind() (the encoder, CLI dump) never call the wrong
// one.
func (v Value) Uint8() uint8 { v.mustBe(format.TypeU8); return uint8(v.num) }

// Int8 returns the value as an int8, panicking if Kind() != TypeI8.
func (v Value) Int8() int8 { v.mustBe(format.TypeI8); return int8(uint8(v.num)) }

// Uint16 returns the value as a uint16, panicking if Kind() != TypeU16.
func (v Value) Uint16() uint16 { v.mustBe(format.TypeU16); return uint16(v.num) }

// Int16 returns the value as an int16, panicking if Kind() != TypeI16.
func (v Value) Int16() int16 { v.mustBe(format.TypeI16); return int16(uint16(v.num)) }

// Uint32 returns the value as a uint32, panicking if Kind() != TypeU32.
func (v Value) Uint32() uint32 { v.mustBe(format.TypeU32); return uint32(v.num) }

// Int32 returns the value as an int32, panicking if Kind() != TypeI32.
func (v Value) Int32() int32 { v.mustBe(format.TypeI32); return int32(uint32(v.num)) }

// String returns the value as a string, panicking if Kind() != TypeStr.
func (v Value) String() string { v.mustBe(format.TypeStr); return v.str }

// Bytes returns the value as a byte slice, panicking if Kind() != TypeBlob.
// The returned slice is a defensive copy.
func (v Value) Bytes() []byte {
	v.mustBe(format.TypeBlob)
	cp := make([]byte, len(v.blob))
	copy(cp, v.blob)
	return cp
}

func (v Value) mustBe(k format.EntryType) {
	if v.kind != k {
		panic(fmt.Sprintf("value: accessor for %s called on a %s value", k, v.kind))
	}
}

// PayloadLen reports the on-wire payload length this value occupies
// for span computation: FixedWidth for numeric types, len(string)+1
// (the null terminator) for TypeStr, len(bytes) for TypeBlob.
func (v Value) PayloadLen() int {
	switch v.kind {
	case format.TypeStr:
		return len(v.str) + 1
	case format.TypeBlob:
		return len(v.blob)
	default:
		return v.kind.FixedWidth()
	}
}
