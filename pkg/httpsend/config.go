package httpsend

import "time"

// Config holds transport settings loaded from the environment.
type Config struct {
	Timeout            time.Duration `env:"OAUTH_HTTP_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes       int64         `env:"OAUTH_HTTP_MAX_BODY_BYTES" envDefault:"1048576"`
	BreakerMaxFailures uint32        `env:"OAUTH_BREAKER_MAX_FAILURES" envDefault:"5"`
	BreakerTimeout     time.Duration `env:"OAUTH_BREAKER_TIMEOUT" envDefault:"60s"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Timeout:            10 * time.Second,
		MaxBodyBytes:       1 << 20,
		BreakerMaxFailures: 5,
		BreakerTimeout:     60 * time.Second,
	}
}
