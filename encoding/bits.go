package encoding

import (
	"encoding/binary"

	"github.com/telemetrika/blockpack/internal/pool"
)

// BitWriter packs arbitrary-width bit fields into a byte buffer, MSB-first.
// Bits accumulate in a 64-bit staging word and are flushed to the byte buffer
// as it fills; Bytes pads the final byte with zero bits.
//
// BitWriter and BitReader are the only primitives that touch raw bits; every
// bit-level codec in this package is built on them.
type BitWriter struct {
	bitBuf   uint64
	bitCount int
	buf      *pool.ByteBuffer
}

// NewBitWriter creates a BitWriter backed by a pooled byte buffer.
func NewBitWriter() *BitWriter {
	return &BitWriter{
		buf: pool.GetPayloadBuffer(),
	}
}

// WriteBit appends a single bit (the low bit of bit).
func (w *BitWriter) WriteBit(bit uint64) {
	w.bitBuf = (w.bitBuf << 1) | (bit & 1)
	w.bitCount++

	if w.bitCount == 64 {
		w.flush()
	}
}

// WriteBits appends the low numBits bits of value, most significant first.
// numBits must be in [0, 64].
func (w *BitWriter) WriteBits(value uint64, numBits int) {
	if numBits == 0 {
		return
	}

	if numBits < 64 {
		value &= (1 << numBits) - 1
	}

	available := 64 - w.bitCount
	if numBits <= available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits

		if w.bitCount == 64 {
			w.flush()
		}

		return
	}

	// Split across the staging word boundary.
	highBits := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> highBits)
	w.bitCount = 64
	w.flush()

	w.bitBuf = value & ((1 << highBits) - 1)
	w.bitCount = highBits
}

// BitLen returns the total number of bits written so far.
func (w *BitWriter) BitLen() int {
	return w.buf.Len()*8 + w.bitCount
}

// Bytes flushes any pending bits (zero-padding the final byte) and returns
// the encoded buffer. The returned slice is valid until Finish is called;
// callers that need to retain it must copy.
func (w *BitWriter) Bytes() []byte {
	if w.bitCount > 0 {
		w.flush()
	}

	return w.buf.Bytes()
}

// Finish returns the internal buffer to the pool. The writer is unusable
// afterwards; retrieve data with Bytes before calling Finish.
func (w *BitWriter) Finish() {
	if w.buf != nil {
		pool.PutPayloadBuffer(w.buf)
		w.buf = nil
	}
}

// flush drains the staging word into the byte buffer, MSB first.
func (w *BitWriter) flush() {
	if w.bitCount == 0 {
		return
	}

	numBytes := (w.bitCount + 7) / 8
	alignedBits := w.bitBuf << (64 - w.bitCount)

	startLen := w.buf.Len()
	w.buf.ExtendOrGrow(numBytes)
	bs := w.buf.Slice(startLen, startLen+numBytes)

	if numBytes == 8 {
		binary.BigEndian.PutUint64(bs, alignedBits)
	} else {
		for i := 0; i < numBytes; i++ {
			shift := 56 - (i * 8)
			bs[i] = byte(alignedBits >> shift)
		}
	}

	w.bitBuf = 0
	w.bitCount = 0
}

// BitReader reads arbitrary-width bit fields from a byte slice, MSB-first,
// mirroring BitWriter's layout. Reads past the end of the buffer fail with
// ErrInsufficientBits.
type BitReader struct {
	data     []byte
	bytePos  int
	bitBuf   uint64
	bitCount int
}

// NewBitReader creates a BitReader over data. The reader does not copy or
// modify the slice.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// HasBits reports whether at least n more bits are available.
func (r *BitReader) HasBits(n int) bool {
	return r.bitCount+(len(r.data)-r.bytePos)*8 >= n
}

// ReadBit reads a single bit.
func (r *BitReader) ReadBit() (uint64, error) {
	if r.bitCount == 0 {
		if !r.fill() {
			return 0, ErrInsufficientBits
		}
	}

	bit := r.bitBuf >> 63
	r.bitBuf <<= 1
	r.bitCount--

	return bit, nil
}

// ReadBits reads numBits bits and returns them right-aligned.
// numBits must be in [0, 64].
func (r *BitReader) ReadBits(numBits int) (uint64, error) {
	if numBits == 0 {
		return 0, nil
	}

	if !r.HasBits(numBits) {
		return 0, ErrInsufficientBits
	}

	if numBits <= r.bitCount {
		result := r.bitBuf >> (64 - numBits)
		r.bitBuf <<= numBits
		r.bitCount -= numBits

		return result, nil
	}

	var result uint64
	firstRead := true

	for numBits > 0 {
		if r.bitCount == 0 {
			if !r.fill() {
				return 0, ErrInsufficientBits
			}
		}

		bitsToRead := numBits
		if bitsToRead > r.bitCount {
			bitsToRead = r.bitCount
		}

		shiftedBits := r.bitBuf >> (64 - bitsToRead)
		if firstRead {
			result = shiftedBits
			firstRead = false
		} else {
			result = (result << bitsToRead) | shiftedBits
		}

		r.bitBuf <<= bitsToRead
		r.bitCount -= bitsToRead
		numBits -= bitsToRead
	}

	return result, nil
}

// fill refills the staging word from the byte stream, left-aligned so bits
// are always extracted from the MSB.
func (r *BitReader) fill() bool {
	if r.bytePos >= len(r.data) {
		return false
	}

	bytesToRead := len(r.data) - r.bytePos
	if bytesToRead > 8 {
		bytesToRead = 8
	}

	if bytesToRead == 8 {
		r.bitBuf = binary.BigEndian.Uint64(r.data[r.bytePos : r.bytePos+8])
		r.bytePos += 8
		r.bitCount = 64

		return true
	}

	r.bitBuf = 0
	for i := 0; i < bytesToRead; i++ {
		r.bitBuf = (r.bitBuf << 8) | uint64(r.data[r.bytePos])
		r.bytePos++
	}

	r.bitBuf <<= (8 - bytesToRead) * 8
	r.bitCount = bytesToRead * 8

	return true
}
