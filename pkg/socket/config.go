package socket

import "time"

// Config holds environment-driven settings for the push channel client.
type Config struct {
	// URL is the push channel endpoint, e.g. wss://push.artstack.io/ws.
	URL string `env:"WS_URL,required"`
	// DialTimeout bounds the websocket handshake.
	DialTimeout time.Duration `env:"WS_DIAL_TIMEOUT" envDefault:"20s"`
	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration `env:"WS_RECONNECT_INITIAL_DELAY" envDefault:"1s"`
	// MaxDelay caps the backoff between retries.
	MaxDelay time.Duration `env:"WS_RECONNECT_MAX_DELAY" envDefault:"30s"`
	// MaxAttempts bounds consecutive failed dials.
	MaxAttempts int `env:"WS_RECONNECT_MAX_ATTEMPTS" envDefault:"10"`
}

// NewFromConfig creates a Client from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := make([]Option, 0, 3)

	if cfg.DialTimeout > 0 {
		configOpts = append(configOpts, WithDialTimeout(cfg.DialTimeout))
	}
	if cfg.MaxAttempts > 0 {
		configOpts = append(configOpts, WithMaxAttempts(cfg.MaxAttempts))
	}
	if cfg.InitialDelay > 0 || cfg.MaxDelay > 0 {
		configOpts = append(configOpts, WithBackoff(ExponentialBackoff{
			InitialInterval: cfg.InitialDelay,
			MaxInterval:     cfg.MaxDelay,
			Multiplier:      2,
		}))
	}

	configOpts = append(configOpts, opts...)
	return New(cfg.URL, configOpts...)
}
