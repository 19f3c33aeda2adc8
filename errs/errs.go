// Package errs collects the sentinel errors returned by the nvs codec
// packages. Callers should match with errors.Is; call sites wrap these
// with fmt.Errorf("%w: ...", errs.ErrX, context) to add detail without
// losing the sentinel identity.
package errs

import "errors"

var (
	// ErrKeyTooLong is returned when a key's significant length exceeds
	// 15 bytes (excluding the null terminator).
	ErrKeyTooLong = errors.New("nvs: key exceeds 15 significant bytes")

	// ErrValueUnsupported reports a value with no wire type: partition.Encode
	// returns it for a value.Value that carries none of the eight type tags
	// (such as the zero Value), and partition.Decode wraps it into the
	// Diagnostic for an entry with an unknown type tag.
	ErrValueUnsupported = errors.New("nvs: unsupported value type")

	// ErrValueTooLarge is returned when a STR or BLOB payload, including
	// the STR null terminator, would exceed 65535 bytes.
	ErrValueTooLarge = errors.New("nvs: string or blob payload exceeds 65535 bytes")

	// ErrTooManyNamespaces is returned when more than 254 distinct
	// namespaces are encoded into a single partition.
	ErrTooManyNamespaces = errors.New("nvs: more than 254 namespaces")

	// ErrPartitionTooSmall is returned when the requested partition size
	// cannot hold the emitted entry stream.
	ErrPartitionTooSmall = errors.New("nvs: partition size too small for encoded data")

	// ErrInvalidPartitionSize is returned when the requested partition
	// size is not a positive multiple of the page size (4096 bytes).
	ErrInvalidPartitionSize = errors.New("nvs: partition size must be a positive multiple of 4096")

	// ErrCorruptEntry describes an entry whose stored CRC32 does not match
	// its computed CRC32. Decode does not return it as an error; in
	// verifying mode its text is the message of the Diagnostic reported
	// for that entry.
	ErrCorruptEntry = errors.New("nvs: entry CRC mismatch")

	// ErrCorruptPageHeader describes a page header whose stored CRC32 does
	// not match its computed CRC32. Decode does not return it as an error;
	// in verifying mode its text is the message of the Diagnostic reported
	// for that page.
	ErrCorruptPageHeader = errors.New("nvs: page header CRC mismatch")

	// ErrInvalidHeaderSize is returned when a byte slice handed to
	// section.ParsePageHeader is not exactly the header size.
	ErrInvalidHeaderSize = errors.New("nvs: invalid page header size")

	// ErrInvalidEntrySize is returned when a byte slice handed to
	// section.ParseEntry is not exactly the entry record size.
	ErrInvalidEntrySize = errors.New("nvs: invalid entry record size")

	// ErrNamespaceNotFound names the case of a namespace name with no
	// assigned index. internal/nstable does not return it: Table.Index
	// and Table.Lookup report that case through their ok result.
	ErrNamespaceNotFound = errors.New("nvs: namespace not found")

	// ErrDuplicateNamespace is returned when the same namespace name is
	// registered twice in one encode.
	ErrDuplicateNamespace = errors.New("nvs: duplicate namespace")

	// ErrEmptyImage is returned by Decode when the image has zero length.
	// A non-empty image shorter than one page is reported with
	// ErrInvalidPartitionSize instead.
	ErrEmptyImage = errors.New("nvs: image shorter than one page")
)
