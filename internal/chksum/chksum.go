// Package chksum computes the CRC32 checksums used by the NVS page header
// and entry record formats.
//
// The NVS checksum is the standard CRC-32/ISO-HDLC algorithm (polynomial
// 0xEDB88320, initial value 0xFFFFFFFF, final XOR 0xFFFFFFFF), stored
// little-endian. That is exactly what Go's stdlib hash/crc32 IEEE table
// computes, so this package is a thin, allocation-free wrapper rather than
// a hand-rolled implementation.
package chksum

import "hash/crc32"

// IEEE computes the CRC32 of data using the IEEE 802.3 polynomial, matching
// the NVS format's checksum algorithm bit-for-bit.
func IEEE(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// EntryWindow builds the 28-byte checksum window for an entry record: bytes
// 0-3 (namespace/type/span/reserved) concatenated with bytes 8-31 (key and
// payload/length field), skipping the 4-byte CRC field itself at offset 4.
//
// record must be exactly 32 bytes (the full on-flash entry record,
// including whatever placeholder currently sits in the CRC field — its
// value is irrelevant since bytes 4-7 are excluded from the window).
func EntryWindow(record []byte) []byte {
	window := make([]byte, 0, 28)
	window = append(window, record[0:4]...)
	window = append(window, record[8:32]...)

	return window
}

// EntryCRC computes the CRC32 of an entry record's checksum window.
func EntryCRC(record []byte) uint32 {
	return IEEE(EntryWindow(record))
}

// PageHeaderCRC computes the CRC32 of a page header's first 28 bytes (the
// header minus its own trailing CRC field).
//
// header must be at least 28 bytes; only the first 28 are read.
func PageHeaderCRC(header []byte) uint32 {
	return IEEE(header[:28])
}
