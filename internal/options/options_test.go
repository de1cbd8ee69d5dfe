package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	name  string
	count int
}

func withName(name string) Option[*testConfig] {
	return New(func(cfg *testConfig) error {
		if name == "" {
			return errors.New("name must not be empty")
		}
		cfg.name = name

		return nil
	})
}

func withCount(count int) Option[*testConfig] {
	return NoError(func(cfg *testConfig) {
		cfg.count = count
	})
}

func TestApply(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withName("series"), withCount(42))
	require.NoError(t, err)
	require.Equal(t, "series", cfg.name)
	require.Equal(t, 42, cfg.count)
}

func TestApply_NoOptions(t *testing.T) {
	cfg := &testConfig{name: "unchanged"}

	require.NoError(t, Apply(cfg))
	require.Equal(t, "unchanged", cfg.name)
}

func TestApply_StopsOnError(t *testing.T) {
	cfg := &testConfig{}

	err := Apply(cfg, withName(""), withCount(42))
	require.Error(t, err)
	require.Zero(t, cfg.count, "options after a failing one must not run")
}

func TestApply_LastOptionWins(t *testing.T) {
	cfg := &testConfig{}

	require.NoError(t, Apply(cfg, withCount(1), withCount(2)))
	require.Equal(t, 2, cfg.count)
}
