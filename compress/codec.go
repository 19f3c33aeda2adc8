package compress

import (
	"fmt"

	"github.com/espflash/nvs/format"
)

// Compressor compresses a byte slice, typically a finished partition
// image being prepared for export.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec is both directions of one compression algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec returns the Codec for compressionType. target names the
// caller's use of the codec, folded into the error message for an
// unrecognized type.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NoOpCompressor{}, nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	default:
		return nil, fmt.Errorf("%s: unsupported compression type %s", target, compressionType)
	}
}
