package section

import (
	"encoding/binary"

	"github.com/espflash/nvs/errs"
	"github.com/espflash/nvs/format"
	"github.com/espflash/nvs/internal/chksum"
)

// Entry represents the fixed 32-byte record that begins every logical
// entry (namespace-definition or data). For STR/BLOB entries, Entry
// covers only the first slot; the remaining span-1 slots are raw
// continuation payload, written/read directly by package partition.
type Entry struct {
	// Namespace is the namespace index: 0 for a namespace-definition
	// entry, 1..254 for a data entry.
	Namespace uint8
	// Type is the entry's type tag.
	Type format.EntryType
	// Span is the number of consecutive 32-byte slots this entry
	// occupies, including this one. Always >= 1.
	Span uint8
	// Key is the ASCII key, at most MaxKeyLen significant bytes.
	Key string
	// Inline holds the raw 8 payload-window bytes (offset 24-31): either
	// a fixed-width numeric value (low bytes, remainder 0xFF) or, for
	// STR/BLOB, the little-endian uint16 payload length in bytes 0-1
	// with bytes 2-7 set to 0xFF.
	Inline [8]byte
}

// IsNamespaceDef reports whether this entry is a namespace-definition
// entry (namespace index 0, type tag U8).
func (e Entry) IsNamespaceDef() bool {
	return e.Namespace == 0 && e.Type == format.TypeU8
}

// Bytes serializes the entry's fixed 32-byte record, including its CRC32
// at offset 4-7. It does not include continuation slots for STR/BLOB
// payloads.
func (e Entry) Bytes() ([]byte, error) {
	if len(e.Key) > MaxKeyLen {
		return nil, errs.ErrKeyTooLong
	}

	b := make([]byte, EntrySize)
	b[0] = e.Namespace
	b[1] = byte(e.Type)
	b[2] = e.Span
	b[3] = Erased

	for i := 8; i < 24; i++ {
		b[i] = 0
	}
	copy(b[8:24], e.Key)

	copy(b[24:32], e.Inline[:])

	binary.LittleEndian.PutUint32(b[4:8], chksum.EntryCRC(b))

	return b, nil
}

// ParseEntry parses a 32-byte entry record. It does not validate the
// trailing CRC32; callers needing CRC validation compare the stored CRC
// (bytes 4-7) against chksum.EntryCRC themselves.
func ParseEntry(record []byte) (Entry, error) {
	if len(record) != EntrySize {
		return Entry{}, errs.ErrInvalidEntrySize
	}

	key := record[8:24]
	end := len(key)
	for i, b := range key {
		if b == 0 {
			end = i
			break
		}
	}

	var inline [8]byte
	copy(inline[:], record[24:32])

	return Entry{
		Namespace: record[0],
		Type:      format.EntryType(record[1]),
		Span:      record[2],
		Key:       string(key[:end]),
		Inline:    inline,
	}, nil
}

// StoredCRC extracts the CRC32 stored in a raw 32-byte entry record
// without fully parsing it, used by the decoder's verifying mode.
func StoredCRC(record []byte) uint32 {
	return binary.LittleEndian.Uint32(record[4:8])
}

// IsUsed reports whether a raw 32-byte slot has been written, per the
// decoder's rule: the namespace byte (offset 0) differs from the erased
// sentinel.
func IsUsed(slot []byte) bool {
	return slot[0] != Erased
}

// PutInlineUint writes a little-endian unsigned value of the given byte
// width into the 8-byte inline window, padding the remaining bytes with
// 0xFF.
func PutInlineUint(width int, v uint64) [8]byte {
	var out [8]byte
	for i := range out {
		out[i] = Erased
	}

	for i := 0; i < width; i++ {
		out[i] = byte(v >> (8 * i))
	}

	return out
}

// InlineUint reads a little-endian unsigned value of the given byte width
// from the inline window.
func InlineUint(inline [8]byte, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(inline[i]) << (8 * i)
	}

	return v
}

// PutInlineLength writes a little-endian uint16 STR/BLOB payload length
// into the inline window, padding the remaining 6 bytes with 0xFF.
func PutInlineLength(length uint16) [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint16(out[0:2], length)
	for i := 2; i < 8; i++ {
		out[i] = Erased
	}

	return out
}

// InlineLength reads the little-endian uint16 STR/BLOB payload length
// from the inline window.
func InlineLength(inline [8]byte) uint16 {
	return binary.LittleEndian.Uint16(inline[0:2])
}
