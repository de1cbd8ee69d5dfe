// Package blockpack provides an adaptive, lossless block codec for
// time-series telemetry.
//
// Each block holds the samples of a single series. Timestamps and values are
// encoded as separate columns: timestamps with delta-of-delta plus run-length
// encoding, values with a strategy chosen per block by a pattern detector that
// classifies the data (constant, linear, periodic, sparse, quantized and so
// on) before falling back to a Gorilla-style XOR stream. Decoding always
// reproduces the original samples bit-for-bit, including NaN payloads and the
// sign of zero.
//
// # Core Features
//
//   - Per-block value strategy selection driven by pattern detection
//   - Delta-of-delta timestamp encoding with RLE for regular intervals
//   - Hash-based series identification (64-bit xxHash64)
//   - Optional payload compression (None, Zstd, S2, LZ4, Snappy)
//   - Self-describing binary frames with CRC32C integrity checks
//
// # Basic Usage
//
// Encoding a series into a frame:
//
//	import "github.com/telemetrika/blockpack"
//
//	samples := []blockpack.Sample{
//	    {Ts: 1700000000000, Val: 42.0},
//	    {Ts: 1700000001000, Val: 42.5},
//	    {Ts: 1700000002000, Val: 43.0},
//	}
//
//	frame, err := blockpack.Encode(samples,
//	    block.WithSeriesName("cpu.usage"),
//	    block.WithCompression(format.CompressionZstd),
//	)
//
// Decoding it back:
//
//	decoded, err := blockpack.Decode(frame)
//	for _, s := range decoded {
//	    fmt.Printf("ts=%d, val=%f\n", s.Ts, s.Val)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the block
// package, simplifying the most common use cases. For access to the
// intermediate Block representation, or to verify codec behavior, use the
// block package directly.
package blockpack

import (
	"github.com/telemetrika/blockpack/block"
	"github.com/telemetrika/blockpack/internal/hash"
)

// Sample is a single timestamped measurement. It aliases block.Sample so
// callers of the top-level API don't need to import the block package.
type Sample = block.Sample

// Encode encodes the samples of one series into a self-contained binary
// frame. Samples must be sorted by timestamp in strictly increasing order.
//
// Options control the series identity, compression, byte order and pattern
// detection thresholds; see the block package for the full list.
//
// Example:
//
//	frame, err := blockpack.Encode(samples,
//	    block.WithSeriesName("cpu.usage"),
//	    block.WithCompression(format.CompressionZstd),
//	)
func Encode(samples []Sample, opts ...block.Option) ([]byte, error) {
	encoded, err := block.Encode(samples, opts...)
	if err != nil {
		return nil, err
	}

	return encoded.MarshalBinary()
}

// Decode parses a frame produced by Encode and returns the original samples
// bit-exactly. The frame's byte order, compression and encoding strategies
// are detected from its header.
func Decode(frame []byte) ([]Sample, error) {
	parsed, err := block.UnmarshalBinary(frame)
	if err != nil {
		return nil, err
	}

	return parsed.Decode()
}

// Verify encodes samples, round-trips the result through a marshal/unmarshal
// cycle and confirms every point is reproduced bit-for-bit. Useful before
// discarding raw data.
func Verify(samples []Sample, opts ...block.Option) error {
	return block.Verify(samples, opts...)
}

// SeriesID converts a series name to its 64-bit xxHash64 identifier.
//
// The hash is deterministic, so the same name always maps to the same ID
// across processes and machines. Use it to pre-compute IDs for
// frequently-encoded series, or pass block.WithSeriesName and let the
// encoder hash the name itself.
func SeriesID(name string) uint64 {
	return hash.ID(name)
}
