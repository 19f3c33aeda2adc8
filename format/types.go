// Package format defines the small fixed enumerations used throughout the
// NVS partition wire format: entry type tags, page states, and the
// compression tags used by the optional export codecs in package compress.
package format

// EntryType identifies the shape of the 32-byte entry record that follows
// an entry's namespace/type/span/reserved header bytes. The numeric values
// match the ESP-IDF NVS on-flash format exactly and must never change.
type EntryType uint8

const (
	// TypeU8 tags a single unsigned byte stored inline at offset 24.
	// The same tag also marks a namespace-definition entry (namespace
	// index byte 0, see section.Entry.IsNamespaceDef).
	TypeU8 EntryType = 0x01
	// TypeI8 tags a single signed byte stored inline at offset 24.
	TypeI8 EntryType = 0x11
	// TypeU16 tags a little-endian uint16 stored inline at offset 24.
	TypeU16 EntryType = 0x02
	// TypeI16 tags a little-endian int16 stored inline at offset 24.
	TypeI16 EntryType = 0x12
	// TypeU32 tags a little-endian uint32 stored inline at offset 24.
	TypeU32 EntryType = 0x04
	// TypeI32 tags a little-endian int32 stored inline at offset 24.
	TypeI32 EntryType = 0x14
	// TypeStr tags a null-terminated UTF-8 string spanning one or more
	// continuation slots after the entry record.
	TypeStr EntryType = 0x21
	// TypeBlob tags a raw byte payload spanning one or more continuation
	// slots after the entry record.
	TypeBlob EntryType = 0x41
)

// String renders the type tag the way the wire format names it, useful in
// diagnostics and CLI dumps.
func (t EntryType) String() string {
	switch t {
	case TypeU8:
		return "u8"
	case TypeI8:
		return "i8"
	case TypeU16:
		return "u16"
	case TypeI16:
		return "i16"
	case TypeU32:
		return "u32"
	case TypeI32:
		return "i32"
	case TypeStr:
		return "string"
	case TypeBlob:
		return "binary"
	default:
		return "unknown"
	}
}

// FixedWidth reports the inline payload width in bytes for numeric types,
// or 0 for TypeStr/TypeBlob (whose payload lives in continuation slots).
func (t EntryType) FixedWidth() int {
	switch t {
	case TypeU8, TypeI8:
		return 1
	case TypeU16, TypeI16:
		return 2
	case TypeU32, TypeI32:
		return 4
	default:
		return 0
	}
}

// IsSpanning reports whether the type stores its payload across
// continuation slots (STR/BLOB) rather than inline at offset 24.
func (t EntryType) IsSpanning() bool {
	return t == TypeStr || t == TypeBlob
}

// slotSize mirrors section.EntrySize. Duplicated rather than imported:
// package section already imports format, and format must not import
// section back.
const slotSize = 32

// SpanFor computes the number of 32-byte slots an entry of this type
// occupies, including the entry record itself, for a payload of the
// given length in bytes. Numeric types always span exactly one slot
// regardless of length. STR/BLOB span 1 + ceil(length/32) slots.
//
// The result is returned as a plain int, not the uint8 the wire format's
// Span field ultimately holds: a payload near section.MaxPayloadLen
// yields a true span in the thousands, and callers must reject that
// against section.MaxUsableSlots before ever narrowing it to uint8 (see
// partition.writeValueEntry) rather than let it wrap silently.
func (t EntryType) SpanFor(length int) int {
	if !t.IsSpanning() {
		return 1
	}

	return 1 + (length+slotSize-1)/slotSize
}

// PageState is the 4-byte page-header state field. Values match the
// on-flash ESP-IDF NVS convention exactly.
type PageState uint32

const (
	// StateActive marks a page the encoder has written entries into and
	// sealed. This tool only ever produces Active pages.
	StateActive PageState = 0xFFFFFFFE
	// StateFull marks a page the on-device firmware has exhausted.
	// Recognized, never produced, by this tool.
	StateFull PageState = 0xFFFFFFFC
	// StateEmpty marks a page that has never been written, i.e. still
	// all 0xFF. Recognized, never produced, by this tool.
	StateEmpty PageState = 0xFFFFFFFF
)

// String renders the page state for diagnostics.
func (s PageState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateFull:
		return "full"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// CompressionType tags the algorithm used by an exported, compressed copy
// of a finished partition image (package compress). This has no on-flash
// meaning, and it is not written into the compressed output either: it
// only selects the codec in compress.CreateCodec.
type CompressionType uint8

const (
	CompressionNone CompressionType = iota
	CompressionZstd
)

// String renders the compression tag for diagnostics and CLI flags.
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}
