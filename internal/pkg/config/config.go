package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, API key, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Perfect PerfectConfig
	Widget  WidgetConfig
	CORS    CORSConfig
	Cookie  CookieConfig
	Log     LogConfig
	JWT     JWTConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// PerfectConfig describes the remote booking service. The endpoint root and
// version tag change together between protocol revisions.
type PerfectConfig struct {
	BaseURL        string        `envconfig:"PERFECT_API_URL" required:"true"`
	APIKey         string        `envconfig:"PERFECT_API_KEY" required:"true"`
	Version        string        `envconfig:"PERFECT_API_VERSION" default:"1.4.0"`
	RequestTimeout time.Duration `envconfig:"PERFECT_REQUEST_TIMEOUT" default:"10s"`
	TimeZone       string        `envconfig:"PERFECT_TIMEZONE" default:"Local"`
}

type WidgetConfig struct {
	SessionTTL         time.Duration `envconfig:"WIDGET_SESSION_TTL" default:"2h"`
	SoftLimitDays      int           `envconfig:"WIDGET_SOFT_LIMIT_DAYS" default:"30"`
	RateLimitPerMinute int           `envconfig:"WIDGET_RATE_LIMIT_PER_MINUTE" default:"120"`
	RateLimitBurst     int           `envconfig:"WIDGET_RATE_LIMIT_BURST" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"None"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"2h"`
}

// Location resolves PERFECT_TIMEZONE; "Local" and "" mean the process zone.
func (c PerfectConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid PERFECT_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

// LoadPerfectConfig reads only the remote service settings, for tools that do
// not run the HTTP server.
func LoadPerfectConfig() (PerfectConfig, error) {
	var cfg PerfectConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return PerfectConfig{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Perfect: PerfectConfig{
			BaseURL:        "http://localhost:5000/restaurant/public",
			APIKey:         "test-api-key",
			Version:        "1.4.0",
			RequestTimeout: 2 * time.Second,
			TimeZone:       "UTC",
		},
		Widget: WidgetConfig{
			SessionTTL:         time.Hour,
			SoftLimitDays:      30,
			RateLimitPerMinute: 6000,
			RateLimitBurst:     1000,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
	}
}
