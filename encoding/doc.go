// Package encoding implements the adaptive per-series codecs used by
// blockpack: bit-level read/write primitives, zigzag varint and run-length
// integer codecs, the delta-of-delta timestamp codec, the value pattern
// detector, and the per-pattern value encoders (constant, near-constant,
// power-of-two, mostly-integer, linear, periodic, quantized, sparse) with a
// Gorilla-style XOR codec and a bit-pattern delta codec as the general
// fallback pair.
//
// All codecs are pure transforms: bytes in, bytes out, with an explicit
// inverse. For every input sequence the decoder reproduces the encoder's input
// exactly, with integer equality for timestamps and IEEE-754 bit equality for
// values. Encoding never fails; decoding fails fast with one of the sentinel
// errors in errors.go rather than returning partial or padded data.
//
// TimestampCodec and ValueCodec instances are immutable after construction and
// safe for concurrent use. Encoding and decoding of independent series have no
// ordering dependency on each other.
package encoding
