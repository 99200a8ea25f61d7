package apiclient

// Config holds environment-driven settings for the REST client.
type Config struct {
	BaseURL      string `env:"NOTIFICATIONS_API_URL,required"` // BaseURL is the notification service root, e.g. https://api.artstack.io.
	SessionToken string `env:"NOTIFICATIONS_API_TOKEN"`        // SessionToken is attached as a bearer credential when set.
}

// NewFromConfig creates a Client from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	configOpts := make([]Option, 0, 2)
	if cfg.SessionToken != "" {
		configOpts = append(configOpts, WithSessionToken(cfg.SessionToken))
	}
	configOpts = append(configOpts, opts...)
	return New(cfg.BaseURL, configOpts...)
}
