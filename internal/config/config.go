package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration, loaded once at startup and
// passed into components at construction. Nothing reads viper after Load
// returns.
type Config struct {
	Port     string
	LogLevel string

	DBPath string

	// TokenSecret signs session tokens. It comes from the JWT_SECRET
	// environment variable and the process refuses to start without it.
	TokenSecret []byte
	TokenTTL    time.Duration

	// Cookie transport flags for the session cookie. HttpOnly is always
	// set; these two depend on the deployment (TLS, cross-site frontend).
	CookieSecure    bool
	CookieCrossSite bool
}

// ErrMissingSecret means JWT_SECRET is not set. Startup-time fatal.
var ErrMissingSecret = errors.New("missing JWT_SECRET in environment")

const defaultTokenTTL = time.Hour

// Load reads configs/config.yml (optional) plus environment bindings and
// returns the resolved configuration.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")

	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "inventory.db")
	v.SetDefault("token.ttl", defaultTokenTTL)
	v.SetDefault("cookie.secure", true)
	v.SetDefault("cookie.cross_site", false)

	if err := v.BindEnv("token.secret", "JWT_SECRET"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine; defaults plus env cover everything but the secret.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	secret := v.GetString("token.secret")
	if secret == "" {
		return nil, ErrMissingSecret
	}

	ttl := v.GetDuration("token.ttl")
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return &Config{
		Port:            v.GetString("port"),
		LogLevel:        v.GetString("log.level"),
		DBPath:          v.GetString("db.path"),
		TokenSecret:     []byte(secret),
		TokenTTL:        ttl,
		CookieSecure:    v.GetBool("cookie.secure"),
		CookieCrossSite: v.GetBool("cookie.cross_site"),
	}, nil
}
