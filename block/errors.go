package block

import "errors"

var (
	// ErrInvalidMagic is returned when a frame does not start with the
	// blockpack magic number in either byte order.
	ErrInvalidMagic = errors.New("invalid frame magic")

	// ErrUnsupportedVersion is returned when a frame's version byte is newer
	// than this package understands.
	ErrUnsupportedVersion = errors.New("unsupported frame version")

	// ErrTruncatedFrame is returned when a frame ends before all declared
	// sections were read.
	ErrTruncatedFrame = errors.New("truncated frame")

	// ErrChecksumMismatch is returned when the frame checksum does not match
	// its contents.
	ErrChecksumMismatch = errors.New("frame checksum mismatch")

	// ErrInvalidPointCount is returned when a frame declares more points
	// than a single block can hold.
	ErrInvalidPointCount = errors.New("invalid frame point count")
)
