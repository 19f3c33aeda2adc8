package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor compresses a finished partition image for archival or
// bandwidth-constrained OTA export, where ratio matters more than raw
// speed. Encoders and decoders are pooled: klauspost/compress/zstd is
// built to amortize its warmup cost across reuse by any caller that
// compresses more than one image in a process. nvsgen generate compresses
// one image per invocation.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a Zstd compressor with default encoder/decoder settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

var encoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("compress: building zstd encoder: %v", err))
		}
		return enc
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: building zstd decoder: %v", err))
		}
		return dec
	},
}

// Compress returns the Zstd-compressed form of data.
func (ZstdCompressor) Compress(data []byte) ([]byte, error) {
	enc := encoderPool.Get().(*zstd.Encoder)
	defer encoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

// Decompress reverses Compress, returning an error if data is corrupt or
// was not produced by Zstd.
func (ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("compress: zstd decompress: %w", err)
	}

	return out, nil
}
