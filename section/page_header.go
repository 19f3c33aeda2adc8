package section

import (
	"encoding/binary"

	"github.com/espflash/nvs/errs"
	"github.com/espflash/nvs/format"
	"github.com/espflash/nvs/internal/chksum"
)

// PageHeader represents the fixed 32-byte header at the start of every
// NVS page.
type PageHeader struct {
	// State is the page lifecycle state. byte offset 0-3.
	State format.PageState
	// Sequence is the monotonic page sequence number. byte offset 4-7.
	Sequence uint32
	// Version is the format version; this tool always writes
	// FormatVersionUnset. byte offset 8-11.
	Version uint32
	// bytes 12-27 are reserved, always 0xFF, and are not modeled as a
	// field: Bytes() fills them directly and ParsePageHeader ignores them.
}

// NewPageHeader creates a sealed-on-write ACTIVE page header for the given
// sequence number, with the version field set to the unset sentinel this
// tool always writes.
func NewPageHeader(sequence uint32) PageHeader {
	return PageHeader{
		State:    format.StateActive,
		Sequence: sequence,
		Version:  FormatVersionUnset,
	}
}

// Bytes serializes the header into a new 32-byte slice, reserved bytes
// filled with 0xFF, with the trailing CRC32 computed over bytes 0-27.
func (h PageHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	for i := 12; i < 28; i++ {
		b[i] = Erased
	}

	binary.LittleEndian.PutUint32(b[0:4], uint32(h.State))
	binary.LittleEndian.PutUint32(b[4:8], h.Sequence)
	binary.LittleEndian.PutUint32(b[8:12], h.Version)
	binary.LittleEndian.PutUint32(b[28:32], chksum.PageHeaderCRC(b))

	return b
}

// ParsePageHeader parses a 32-byte page header. It does not validate the
// trailing CRC32; callers that need CRC validation should compare the
// stored CRC (bytes 28-31) against chksum.PageHeaderCRC themselves, which
// is what the decoder's verifying mode does.
func ParsePageHeader(data []byte) (PageHeader, error) {
	if len(data) != HeaderSize {
		return PageHeader{}, errs.ErrInvalidHeaderSize
	}

	return PageHeader{
		State:    format.PageState(binary.LittleEndian.Uint32(data[0:4])),
		Sequence: binary.LittleEndian.Uint32(data[4:8]),
		Version:  binary.LittleEndian.Uint32(data[8:12]),
	}, nil
}

// StoredHeaderCRC extracts the CRC32 stored in a raw 32-byte header
// without fully parsing it, used by the decoder's verifying mode.
func StoredHeaderCRC(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data[28:32])
}

// IsAllErased reports whether every byte of a raw page is 0xFF, i.e. the
// page has never been written.
func IsAllErased(page []byte) bool {
	for _, b := range page {
		if b != Erased {
			return false
		}
	}

	return true
}

// IsAllZero reports whether every byte of a raw page is 0x00, the other
// blank state a page can be found in (distinct from the erased-flash
// 0xFF convention): never written by this tool, but a state on-device
// NVS and this decoder both treat as empty rather than corrupt.
func IsAllZero(page []byte) bool {
	for _, b := range page {
		if b != 0 {
			return false
		}
	}

	return true
}
