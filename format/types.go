// Package format defines the method-tag vocabulary shared by encoders and
// decoders. Every payload produced by this module carries one of these tags;
// a decoder for a tag must stay registered for any block encoded with it to
// ever be read again.
package format

type (
	// TimestampEncoding identifies the codec that produced a timestamp payload.
	TimestampEncoding uint8

	// ValueEncoding identifies the codec that produced a value payload.
	ValueEncoding uint8

	// CompressionType identifies the optional second-pass compression applied
	// to the payloads of a marshaled block frame.
	CompressionType uint8

	// Pattern is the shape class assigned to a value sequence by the detector.
	// It only selects a value encoding strategy and is never serialized.
	Pattern uint8
)

const (
	// TimestampEmpty tags a zero-length timestamp sequence.
	TimestampEmpty TimestampEncoding = 0x1
	// TimestampSingle tags a one-element sequence; the payload is the timestamp.
	TimestampSingle TimestampEncoding = 0x2
	// TimestampPair tags a two-element sequence; the payload is first + delta.
	TimestampPair TimestampEncoding = 0x3
	// TimestampDoubleDelta tags the general delta-of-delta encoding.
	TimestampDoubleDelta TimestampEncoding = 0x4
)

const (
	ValueConstant      ValueEncoding = 0x1 // single repeated value
	ValueNearConstant  ValueEncoding = 0x2 // base + quantized deviations
	ValuePowerOfTwo    ValueEncoding = 0x3 // exponent stream + literals
	ValueMostlyInteger ValueEncoding = 0x4 // integer parts + literal exceptions
	ValueLinear        ValueEncoding = 0x5 // start + per-step delta
	ValuePeriodic      ValueEncoding = 0x6 // base pattern + XOR deviations
	ValueQuantized     ValueEncoding = 0x7 // dictionary + index array
	ValueSparse        ValueEncoding = 0x8 // non-zero indices + values
	ValueXOR           ValueEncoding = 0x9 // Gorilla-style XOR bit stream
	ValueDelta         ValueEncoding = 0xA // bit-pattern delta stream
)

const (
	CompressionNone   CompressionType = 0x1 // no compression
	CompressionZstd   CompressionType = 0x2 // Zstandard
	CompressionS2     CompressionType = 0x3 // S2 (Snappy successor)
	CompressionLZ4    CompressionType = 0x4 // LZ4 block format
	CompressionSnappy CompressionType = 0x5 // Snappy block format
)

const (
	PatternConstant Pattern = iota + 1
	PatternNearConstant
	PatternSparse
	PatternPowerOfTwo
	PatternMostlyInteger
	PatternPeriodic
	PatternLinear
	PatternQuantized
	PatternQuantizedStepped
	PatternSmooth
	PatternRandom
)

func (e TimestampEncoding) String() string {
	switch e {
	case TimestampEmpty:
		return "Empty"
	case TimestampSingle:
		return "Single"
	case TimestampPair:
		return "Pair"
	case TimestampDoubleDelta:
		return "DoubleDelta"
	default:
		return "Unknown"
	}
}

func (e ValueEncoding) String() string {
	switch e {
	case ValueConstant:
		return "Constant"
	case ValueNearConstant:
		return "NearConstant"
	case ValuePowerOfTwo:
		return "PowerOfTwo"
	case ValueMostlyInteger:
		return "MostlyInteger"
	case ValueLinear:
		return "Linear"
	case ValuePeriodic:
		return "Periodic"
	case ValueQuantized:
		return "Quantized"
	case ValueSparse:
		return "Sparse"
	case ValueXOR:
		return "XOR"
	case ValueDelta:
		return "Delta"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionSnappy:
		return "Snappy"
	default:
		return "Unknown"
	}
}

func (p Pattern) String() string {
	switch p {
	case PatternConstant:
		return "Constant"
	case PatternNearConstant:
		return "NearConstant"
	case PatternSparse:
		return "Sparse"
	case PatternPowerOfTwo:
		return "PowerOfTwo"
	case PatternMostlyInteger:
		return "MostlyInteger"
	case PatternPeriodic:
		return "Periodic"
	case PatternLinear:
		return "Linear"
	case PatternQuantized:
		return "Quantized"
	case PatternQuantizedStepped:
		return "QuantizedStepped"
	case PatternSmooth:
		return "Smooth"
	case PatternRandom:
		return "Random"
	default:
		return "Unknown"
	}
}
