package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPServer HTTPServer
	Provider   Provider
	Session    Session
	Stub       Stub
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" env-default:""`
	Port int    `env:"HTTP_PORT" env-default:"8080"`
}

type Provider struct {
	Kind    string        `env:"XR_PROVIDER" env-default:"pair"`
	BaseURL string        `env:"XR_BASE_URL" env-default:"https://v6.exchangerate-api.com/v6"`
	APIKey  string        `env:"XR_API_KEY"`
	Timeout time.Duration `env:"XR_TIMEOUT" env-default:"10s"`
}

type Session struct {
	Debounce time.Duration `env:"SESSION_DEBOUNCE" env-default:"300ms"`
	Locale   string        `env:"SESSION_LOCALE" env-default:"en-US"`
}

// Stub configures the built-in fake rate provider. When Embedded is set the
// converter service starts it next to the API and points the provider at it.
type Stub struct {
	Embedded bool   `env:"XR_STUB_EMBEDDED" env-default:"false"`
	Host     string `env:"XR_STUB_HOST" env-default:"localhost"`
	Port     int    `env:"XR_STUB_PORT" env-default:"8091"`
}

// New reads the environment, after loading an optional .env file.
func New() (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load(".env")

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("cleanenv.ReadEnv: %w", err)
	}

	return cfg, nil
}

// StubURL is the base URL of the stub for the configured provider kind.
func (c *Config) StubURL() string {
	root := fmt.Sprintf("http://%s:%d", c.Stub.Host, c.Stub.Port)

	switch c.Provider.Kind {
	case "amount":
		return root + "/fastforex"
	case "lookup":
		return root + "/host"
	case "latest":
		return root + "/v6/" + c.Provider.APIKey
	default:
		return root + "/v6"
	}
}
