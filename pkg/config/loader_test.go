package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artstack/notifykit/pkg/config"
)

type socketTestConfig struct {
	URL         string        `env:"TEST_WS_URL" envDefault:"wss://example.test/ws"`
	DialTimeout time.Duration `env:"TEST_WS_DIAL_TIMEOUT" envDefault:"20s"`
	MaxAttempts int           `env:"TEST_WS_MAX_ATTEMPTS" envDefault:"10"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()

		var cfg socketTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "wss://example.test/ws", cfg.URL)
		assert.Equal(t, 20*time.Second, cfg.DialTimeout)
		assert.Equal(t, 10, cfg.MaxAttempts)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_WS_URL", "wss://push.artstack.test/ws")
		t.Setenv("TEST_WS_MAX_ATTEMPTS", "3")

		var cfg socketTestConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "wss://push.artstack.test/ws", cfg.URL)
		assert.Equal(t, 3, cfg.MaxAttempts)
	})

	t.Run("cached between loads", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_WS_MAX_ATTEMPTS", "7")

		var first socketTestConfig
		require.NoError(t, config.Load(&first))

		// A later environment change is not observed for the cached type.
		t.Setenv("TEST_WS_MAX_ATTEMPTS", "99")
		var second socketTestConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, 7, second.MaxAttempts)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[socketTestConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})

	t.Run("invalid value", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_WS_DIAL_TIMEOUT", "not-a-duration")

		var cfg socketTestConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on failure", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_WS_MAX_ATTEMPTS", "NaN")

		var cfg socketTestConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}
