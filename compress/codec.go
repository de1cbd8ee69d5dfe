// Package compress provides the optional second-pass compression codecs
// applied to blockpack payloads when a block is marshaled.
//
// The codecs operate on complete payloads that have already been encoded by
// the adaptive codec, so they mostly see small, structured buffers: varint
// streams, RLE pairs and bit-packed XOR data. Zstd gives the best ratio, S2
// and LZ4 and Snappy trade ratio for speed, and the no-op codec bypasses
// compression entirely.
package compress

import (
	"fmt"

	"github.com/telemetrika/blockpack/format"
)

// Compressor compresses a payload.
//
// Memory management: the returned slice is newly allocated and owned by the
// caller; the input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// It validates the input format and returns an error if the data is corrupted
// or was compressed with an incompatible algorithm.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory that creates a Codec for the specified compression
// type. The target string names the payload being compressed and only appears
// in error messages.
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:   NewNoOpCompressor(),
	format.CompressionZstd:   NewZstdCompressor(),
	format.CompressionS2:     NewS2Compressor(),
	format.CompressionLZ4:    NewLZ4Compressor(),
	format.CompressionSnappy: NewSnappyCompressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
