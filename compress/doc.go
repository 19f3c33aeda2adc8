// Package compress provides an optional compressed export format for a
// finished NVS partition image.
//
// A partition image produced by package partition is never itself
// compressed: every byte is meaningful to on-device flash I/O at a fixed
// offset, and the format has no notion of a compressed region. This
// package exists purely for the step after encoding, when cmd/nvsgen
// writes an extra copy of the image for OTA transfer or cold storage,
// where transfer size matters more than flash-ready bytes.
//
// Zstandard is the only real algorithm wired in: it gives the best ratio
// of the options considered, which is what export-for-transfer cares
// about, and nothing in this tool calls for picking between competing
// speed/ratio tradeoffs. NoOpCompressor sits alongside it only so "no
// compression" is a real, testable Codec rather than a special case
// threaded through the CLI.
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "export")
//	compressed, err := codec.Compress(image)
//	...
//	original, err := codec.Decompress(compressed)
package compress
