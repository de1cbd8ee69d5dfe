package block

import (
	"fmt"
	"hash/crc32"

	"github.com/telemetrika/blockpack/compress"
	"github.com/telemetrika/blockpack/encoding"
	"github.com/telemetrika/blockpack/endian"
	"github.com/telemetrika/blockpack/format"
)

// Frame layout, in the block's byte order:
//
//	[0:2]   magic 0xB10C
//	[2]     version
//	[3]     flags (low 4 bits: compression type)
//	[4:12]  series ID
//	        uvarint point count
//	        timestamp tag byte, uvarint payload length
//	        value tag byte, uvarint payload length
//	        timestamp payload, value payload (compressed per flags)
//	[-4:]   CRC32C over everything before it
//
// The magic doubles as the byte-order marker: a reader that sees it
// byte-swapped knows the frame was written big-endian.
const (
	frameMagic   = uint16(0xB10C)
	frameVersion = byte(0x1)

	compressionFlagMask = byte(0x0F)

	// maxFramePoints bounds the declared point count of a parsed frame.
	// The checksum only catches accidental corruption, so the count must be
	// validated before any decoder sizes an allocation from it.
	maxFramePoints = 1 << 24
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

func checksumOf(body []byte) uint32 {
	return crc32.Checksum(body, castagnoli)
}

// MarshalBinary serializes the block into a self-contained frame, applying
// the block's compression type to both payloads.
func (b *Block) MarshalBinary() ([]byte, error) {
	engine := b.engineOrDefault()

	codec, err := compress.GetCodec(b.Compression)
	if err != nil {
		return nil, err
	}

	tsPayload, err := codec.Compress(b.TimestampPayload)
	if err != nil {
		return nil, fmt.Errorf("compress timestamp payload: %w", err)
	}

	valPayload, err := codec.Compress(b.ValuePayload)
	if err != nil {
		return nil, fmt.Errorf("compress value payload: %w", err)
	}

	buf := engine.AppendUint16(nil, frameMagic)
	buf = append(buf, frameVersion)
	buf = append(buf, byte(b.Compression)&compressionFlagMask)
	buf = engine.AppendUint64(buf, b.SeriesID)
	buf = encoding.AppendUvarint(buf, uint64(b.Count)) //nolint:gosec
	buf = append(buf, byte(b.TimestampEncoding))
	buf = encoding.AppendUvarint(buf, uint64(len(tsPayload)))
	buf = append(buf, byte(b.ValueEncoding))
	buf = encoding.AppendUvarint(buf, uint64(len(valPayload)))
	buf = append(buf, tsPayload...)
	buf = append(buf, valPayload...)

	return engine.AppendUint32(buf, checksumOf(buf)), nil
}

// UnmarshalBinary parses a frame produced by MarshalBinary, verifying the
// checksum and decompressing the payloads. The byte order is inferred from
// the magic.
func UnmarshalBinary(data []byte) (*Block, error) {
	if len(data) < 2 {
		return nil, ErrTruncatedFrame
	}

	var engine endian.EndianEngine
	switch {
	case endian.GetLittleEndianEngine().Uint16(data[:2]) == frameMagic:
		engine = endian.GetLittleEndianEngine()
	case endian.GetBigEndianEngine().Uint16(data[:2]) == frameMagic:
		engine = endian.GetBigEndianEngine()
	default:
		return nil, ErrInvalidMagic
	}

	// Header through series ID, plus the trailing checksum.
	if len(data) < 16 {
		return nil, ErrTruncatedFrame
	}

	body := data[:len(data)-4]
	wantSum := engine.Uint32(data[len(data)-4:])
	if checksumOf(body) != wantSum {
		return nil, ErrChecksumMismatch
	}

	if data[2] != frameVersion {
		return nil, fmt.Errorf("frame version 0x%x: %w", data[2], ErrUnsupportedVersion)
	}

	compression := format.CompressionType(data[3] & compressionFlagMask)
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	seriesID := engine.Uint64(body[4:12])

	count, offset, err := encoding.Uvarint(body, 12)
	if err != nil {
		return nil, fmt.Errorf("point count: %w", ErrTruncatedFrame)
	}
	if count > maxFramePoints {
		return nil, fmt.Errorf("point count %d exceeds %d: %w", count, uint64(maxFramePoints), ErrInvalidPointCount)
	}

	tsTag, tsLen, offset, err := readSectionHeader(body, offset)
	if err != nil {
		return nil, err
	}

	valTag, valLen, offset, err := readSectionHeader(body, offset)
	if err != nil {
		return nil, err
	}

	if uint64(len(body)-offset) != tsLen+valLen {
		return nil, fmt.Errorf("payload sections: %w", ErrTruncatedFrame)
	}

	tsPayload, err := codec.Decompress(body[offset : offset+int(tsLen)]) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("decompress timestamp payload: %w", err)
	}

	valPayload, err := codec.Decompress(body[offset+int(tsLen):]) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("decompress value payload: %w", err)
	}

	return &Block{
		SeriesID:          seriesID,
		Count:             int(count), //nolint:gosec
		TimestampEncoding: format.TimestampEncoding(tsTag),
		TimestampPayload:  tsPayload,
		ValueEncoding:     format.ValueEncoding(valTag),
		ValuePayload:      valPayload,
		Compression:       compression,
		engine:            engine,
	}, nil
}

func readSectionHeader(body []byte, offset int) (byte, uint64, int, error) {
	if offset >= len(body) {
		return 0, 0, offset, fmt.Errorf("section tag: %w", ErrTruncatedFrame)
	}
	tag := body[offset]

	length, next, err := encoding.Uvarint(body, offset+1)
	if err != nil {
		return 0, 0, offset, fmt.Errorf("section length: %w", ErrTruncatedFrame)
	}

	if length > uint64(len(body)) {
		return 0, 0, offset, fmt.Errorf("section length %d: %w", length, ErrTruncatedFrame)
	}

	return tag, length, next, nil
}
