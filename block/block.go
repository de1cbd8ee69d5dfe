// Package block assembles the adaptive per-series codecs into self-describing
// blocks: a point count plus independently encoded timestamp and value
// payloads, each carrying the method tag its decoder dispatches on.
//
// A Block is immutable once produced and fully determines the original sample
// sequence. Blocks for independent series can be encoded and decoded
// concurrently with no coordination; within a single series the codecs are
// strictly sequential.
package block

import (
	"fmt"

	"github.com/telemetrika/blockpack/encoding"
	"github.com/telemetrika/blockpack/endian"
	"github.com/telemetrika/blockpack/format"
	"github.com/telemetrika/blockpack/internal/pool"
)

// Sample is a single telemetry observation.
type Sample struct {
	// Ts is the sample timestamp; the unit is caller-defined.
	Ts int64
	// Val is the sample value.
	Val float64
}

// Block is the encoded form of one series: a point count plus two tagged
// payloads, one per column. The zero value is not useful; obtain Blocks from
// Encode or UnmarshalBinary.
type Block struct {
	// SeriesID identifies the series this block belongs to. Zero when the
	// encoder was given no series identity.
	SeriesID uint64

	// Count is the number of samples in the block.
	Count int

	// TimestampEncoding and TimestampPayload carry the timestamp column.
	TimestampEncoding format.TimestampEncoding
	TimestampPayload  []byte

	// ValueEncoding and ValuePayload carry the value column.
	ValueEncoding format.ValueEncoding
	ValuePayload  []byte

	// Compression is the second-pass compression applied to the payloads when
	// the block is marshaled. Payloads held in memory are always uncompressed.
	Compression format.CompressionType

	engine endian.EndianEngine
}

// Engine returns the endian engine the block's fixed-width fields use.
func (b *Block) Engine() endian.EndianEngine {
	return b.engineOrDefault()
}

func (b *Block) engineOrDefault() endian.EndianEngine {
	if b.engine == nil {
		return endian.GetNativeEngine()
	}

	return b.engine
}

// Encode encodes samples into a Block. The timestamp and value columns are
// encoded independently: the pattern detector classifies the values and picks
// a strategy, timestamps always take the delta-of-delta family. Encoding
// itself never fails; the only error source is an invalid option.
//
// Timestamps are assumed ascending (not necessarily unique); callers supply
// pre-sorted input. Empty and single-sample inputs are valid.
func Encode(samples []Sample, opts ...Option) (*Block, error) {
	cfg, err := newEncoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	timestamps, releaseTs := pool.GetInt64Slice(len(samples))
	defer releaseTs()
	values, releaseVals := pool.GetFloat64Slice(len(samples))
	defer releaseVals()

	for i, s := range samples {
		timestamps[i] = s.Ts
		values[i] = s.Val
	}

	tsTag, tsPayload := encoding.NewTimestampCodec(cfg.engine).Encode(timestamps)
	valTag, valPayload := encoding.NewValueCodec(cfg.engine, cfg.detector).Encode(values)

	return &Block{
		SeriesID:          cfg.seriesID,
		Count:             len(samples),
		TimestampEncoding: tsTag,
		TimestampPayload:  tsPayload,
		ValueEncoding:     valTag,
		ValuePayload:      valPayload,
		Compression:       cfg.compression,
		engine:            cfg.engine,
	}, nil
}

// Decode reconstructs the original samples. Both payloads are decoded with
// the codec matching their tag and zipped back into parallel order.
//
// Decoding fails fast with a typed error (encoding.ErrUnknownMethodTag,
// encoding.ErrTruncatedPayload, encoding.ErrInsufficientBits,
// encoding.ErrCorruptXORStream) rather than returning partial data.
func (b *Block) Decode() ([]Sample, error) {
	engine := b.engineOrDefault()

	timestamps, err := encoding.NewTimestampCodec(engine).Decode(b.TimestampEncoding, b.TimestampPayload, b.Count)
	if err != nil {
		return nil, fmt.Errorf("decode timestamps: %w", err)
	}

	values, err := encoding.NewValueCodec(engine, encoding.DefaultDetectorConfig()).Decode(b.ValueEncoding, b.ValuePayload, b.Count)
	if err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}

	if len(timestamps) != b.Count || len(values) != b.Count {
		return nil, fmt.Errorf("decoded %d timestamps, %d values, expected %d: %w",
			len(timestamps), len(values), b.Count, encoding.ErrTruncatedPayload)
	}

	samples := make([]Sample, b.Count)
	for i := range samples {
		samples[i] = Sample{Ts: timestamps[i], Val: values[i]}
	}

	return samples, nil
}
