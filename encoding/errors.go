package encoding

import "errors"

var (
	// ErrInsufficientBits is returned when a bit stream ends before the
	// requested number of bits could be read. The reader never substitutes
	// zero-padded or garbage data past the end of the buffer.
	ErrInsufficientBits = errors.New("insufficient bits in stream")

	// ErrTruncatedVarint is returned when a varint group ends before its
	// continuation bit cleared, or overflows 64 bits.
	ErrTruncatedVarint = errors.New("truncated varint")

	// ErrTruncatedPayload is returned when a payload ends before the expected
	// data was fully read, or does not decode to the expected point count.
	ErrTruncatedPayload = errors.New("truncated payload")

	// ErrUnknownMethodTag is returned when no decoder is registered for a
	// payload's method tag. This indicates version or format skew between
	// encoder and decoder.
	ErrUnknownMethodTag = errors.New("unknown method tag")

	// ErrCorruptXORStream is returned when the bit-field arithmetic of an XOR
	// payload implies a negative or impossible field width.
	ErrCorruptXORStream = errors.New("corrupt xor stream")
)
