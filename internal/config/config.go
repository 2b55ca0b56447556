// Package config is the configuration shared by the command line tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"chatbot-backend/internal/telemetry"
	"chatbot-backend/lib/configutil"
	"chatbot-backend/lib/earl"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

const FileName = "earl.json5"

// YouTubeKeyEnv overrides youtube_key, so the key can live in a .env file
// instead of the config.
const YouTubeKeyEnv = "YOUTUBE_API_KEY"

type Config struct {
	// Timeout is a duration string, ex. "10s".
	Timeout   string `json:"timeout" validate:"required,duration"`
	UserAgent string `json:"user_agent"`
	// RateLimit is the number of requests per second, 0 disables limiting.
	RateLimit float64 `json:"rate_limit" validate:"gte=0"`
	Burst     int     `json:"burst" validate:"gte=0,required_with=RateLimit"`
	// Concurrency bounds fan-outs like the redirect probe.
	Concurrency int    `json:"concurrency" validate:"min=1"`
	YouTubeKey  string `json:"youtube_key"`
	Debug       bool   `json:"debug"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
	return v
}

func Default() Config {
	return Config{
		Timeout:     earl.DefaultTimeout.String(),
		UserAgent:   earl.DefaultUserAgent,
		Burst:       1,
		Concurrency: 4,
	}
}

// Load reads earl.json5 (and earl.local.json5) from the cwd or one of its
// parents on top of the defaults, a missing file is not an error.
func Load() (Config, error) {
	cfg := Default()
	read, err := configutil.ReadRecursively[Config](FileName)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	cfg.merge(read)
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	read, err := configutil.ReadConfig[Config](path)
	if err != nil {
		return cfg, err
	}
	cfg.merge(read)
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	if key := os.Getenv(YouTubeKeyEnv); key != "" {
		c.YouTubeKey = key
	}
}

func (c *Config) merge(o Config) {
	if o.Timeout != "" {
		c.Timeout = o.Timeout
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.RateLimit != 0 {
		c.RateLimit = o.RateLimit
	}
	if o.Burst != 0 {
		c.Burst = o.Burst
	}
	if o.Concurrency != 0 {
		c.Concurrency = o.Concurrency
	}
	if o.YouTubeKey != "" {
		c.YouTubeKey = o.YouTubeKey
	}
	c.Debug = c.Debug || o.Debug
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// EarlOptions turns the config into client options, it expects a validated
// config.
func (c Config) EarlOptions(tel telemetry.API) []earl.Option {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		timeout = earl.DefaultTimeout
	}
	opts := []earl.Option{
		earl.WithTimeout(timeout),
		earl.WithUserAgent(c.UserAgent),
		earl.WithTelemetry(tel),
	}
	if c.RateLimit > 0 {
		opts = append(opts, earl.WithLimiter(rate.NewLimiter(rate.Limit(c.RateLimit), c.Burst)))
	}
	return opts
}
