// Package hash provides the fast, non-cryptographic content hash used to
// fingerprint finished partition images.
package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint computes the xxHash64 of a finished partition image, giving
// callers a cheap way to cache or deduplicate generated images without
// comparing or re-encoding the full byte slice.
func Fingerprint(image []byte) uint64 {
	return xxhash.Sum64(image)
}
