package compress

// ZstdCompressor provides Zstandard compression for blockpack payloads.
//
// Zstd favors compression ratio over speed, making it the right choice for
// cold storage, long retention, and bandwidth-limited transmission of blocks.
//
// Two implementations exist behind build tags: cgo builds use valyala/gozstd
// (bindings to the reference C library), and non-cgo builds fall back to the
// pure-Go klauspost/compress/zstd implementation. Both produce standard zstd
// frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
