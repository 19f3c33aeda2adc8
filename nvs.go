// Package nvs is a thin top-level convenience wrapper over package
// partition, the byte-exact encoder/decoder for ESP-IDF NVS (Non-Volatile
// Storage) partition images.
package nvs

import "github.com/espflash/nvs/partition"

// Data is the in-memory, namespace-ordered representation of a
// partition's contents.
type Data = partition.Data

// Namespace is an ordered group of key/value pairs sharing one namespace
// name.
type Namespace = partition.Namespace

// KV is one namespace-scoped key/value pair.
type KV = partition.KV

// Builder fluently assembles a Data value.
type Builder = partition.Builder

// Diagnostic describes one recoverable problem Decode encountered.
type Diagnostic = partition.Diagnostic

// EncodeOption configures a call to Encode.
type EncodeOption = partition.EncodeOption

// DecodeOption configures a call to Decode.
type DecodeOption = partition.DecodeOption

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return partition.NewBuilder()
}

// Encode serializes data into a partition image of exactly partitionSize
// bytes.
func Encode(data Data, partitionSize int, opts ...EncodeOption) ([]byte, error) {
	return partition.Encode(data, partitionSize, opts...)
}

// Decode parses a partition image back into Data.
func Decode(image []byte, opts ...DecodeOption) (Data, error) {
	return partition.Decode(image, opts...)
}

// WithCRCVerification enables page and entry CRC32 verification during
// Decode, reported through WithDiagnostics rather than as an error.
func WithCRCVerification() DecodeOption {
	return partition.WithCRCVerification()
}

// WithDiagnostics registers a sink that receives every Diagnostic Decode
// produces.
func WithDiagnostics(sink func(Diagnostic)) DecodeOption {
	return partition.WithDiagnostics(sink)
}

// WithFingerprint requests that Encode compute an xxHash64 fingerprint of
// the finished image and write it into out.
func WithFingerprint(out *uint64) EncodeOption {
	return partition.WithFingerprint(out)
}

// WithSequenceStart overrides the page sequence number the first written
// page starts counting from.
func WithSequenceStart(n uint32) EncodeOption {
	return partition.WithSequenceStart(n)
}

// Fingerprint computes the xxHash64 content fingerprint of an already
// finished partition image, without re-running Encode.
func Fingerprint(image []byte) uint64 {
	return partition.Fingerprint(image)
}
