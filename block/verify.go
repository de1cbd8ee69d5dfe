package block

import (
	"fmt"
	"math"
)

// Verify encodes samples, runs the result through a full marshal/unmarshal
// cycle, decodes it back and checks that every point survived bit-exactly.
// Values are compared on their IEEE-754 bit patterns, so NaN payloads and the
// sign of zero must round-trip too.
//
// It exists for tooling that wants to prove a block is safe before discarding
// the raw data.
func Verify(samples []Sample, opts ...Option) error {
	encoded, err := Encode(samples, opts...)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	frame, err := encoded.MarshalBinary()
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	parsed, err := UnmarshalBinary(frame)
	if err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	decoded, err := parsed.Decode()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if len(decoded) != len(samples) {
		return fmt.Errorf("round trip returned %d samples, want %d", len(decoded), len(samples))
	}

	for i, want := range samples {
		got := decoded[i]
		if got.Ts != want.Ts {
			return fmt.Errorf("sample %d: timestamp %d, want %d", i, got.Ts, want.Ts)
		}
		if math.Float64bits(got.Val) != math.Float64bits(want.Val) {
			return fmt.Errorf("sample %d: value bits 0x%016x, want 0x%016x",
				i, math.Float64bits(got.Val), math.Float64bits(want.Val))
		}
	}

	return nil
}
