package block

import (
	"fmt"

	"github.com/telemetrika/blockpack/encoding"
	"github.com/telemetrika/blockpack/endian"
	"github.com/telemetrika/blockpack/format"
	"github.com/telemetrika/blockpack/internal/hash"
	"github.com/telemetrika/blockpack/internal/options"
)

type encoderConfig struct {
	engine      endian.EndianEngine
	compression format.CompressionType
	detector    encoding.DetectorConfig
	seriesID    uint64
}

// Option configures block encoding.
type Option = options.Option[*encoderConfig]

func newEncoderConfig(opts ...Option) (*encoderConfig, error) {
	cfg := &encoderConfig{
		engine:      endian.GetNativeEngine(),
		compression: format.CompressionNone,
		detector:    encoding.DefaultDetectorConfig(),
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression sets the second-pass compression recorded in the block and
// applied to its payloads when marshaled. Default is no compression.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(cfg *encoderConfig) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2,
			format.CompressionLZ4, format.CompressionSnappy:
			cfg.compression = compression
			return nil
		default:
			return fmt.Errorf("unsupported compression type: %s", compression)
		}
	})
}

// WithDetectorConfig overrides the pattern detector cutoffs used for value
// strategy selection. The cutoffs only influence compression ratio, never
// round-trip correctness.
func WithDetectorConfig(cfg encoding.DetectorConfig) Option {
	return options.NoError(func(target *encoderConfig) {
		target.detector = cfg
	})
}

// WithEndianEngine sets the byte order for fixed-width payload and frame
// fields. Default is the host's native byte order; the frame magic carries
// the order, so readers on either kind of host parse the result.
func WithEndianEngine(engine endian.EndianEngine) Option {
	return options.New(func(cfg *encoderConfig) error {
		if engine == nil {
			return fmt.Errorf("endian engine must not be nil")
		}
		cfg.engine = engine

		return nil
	})
}

// WithSeriesName derives the block's series ID from name via xxHash64.
func WithSeriesName(name string) Option {
	return options.New(func(cfg *encoderConfig) error {
		if name == "" {
			return fmt.Errorf("series name must not be empty")
		}
		cfg.seriesID = hash.ID(name)

		return nil
	})
}

// WithSeriesID sets the block's series ID directly.
func WithSeriesID(id uint64) Option {
	return options.NoError(func(cfg *encoderConfig) {
		cfg.seriesID = id
	})
}
