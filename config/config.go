// Package config reads the server configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

type Handler string

const (
	HandlerFastHttp Handler = "fasthttp"
	HandlerNetHttp  Handler = "net/http"
)

type Config struct {
	Addr               string        `env:"HTTP_ADDR" envDefault:":8000"`
	Handler            Handler       `env:"HTTP_HANDLER" envDefault:"fasthttp"`
	Debug              bool          `env:"APP_DEBUG" envDefault:"false"`
	KeepAlive          bool          `env:"HTTP_KEEP_ALIVE" envDefault:"true"`
	AccessLog          bool          `env:"HTTP_ACCESS_LOG" envDefault:"true"`
	LogLevel           zapcore.Level `env:"LOG_LEVEL" envDefault:"info"`
	ReadTimeout        time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout       time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout        time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout    time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	Concurrency        int           `env:"HTTP_CONCURRENCY" envDefault:"262144"`
	MaxRequestBodySize int           `env:"HTTP_MAX_REQUEST_BODY_SIZE" envDefault:"4194304"`
	Cors               Cors          `envPrefix:"CORS_"`
}

// Cors is disabled while AllowedOrigins is empty.
type Cors struct {
	AllowedOrigins   []string `env:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `env:"ALLOWED_METHODS" envDefault:"GET,POST,PUT,PATCH,DELETE"`
	AllowedHeaders   []string `env:"ALLOWED_HEADERS" envDefault:"*"`
	ExposedHeaders   []string `env:"EXPOSED_HEADERS"`
	AllowCredentials bool     `env:"ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"MAX_AGE" envDefault:"0"`
}

func (c Cors) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

func (c Config) Validate() error {
	if c.Handler != HandlerFastHttp && c.Handler != HandlerNetHttp {
		return errors.Newf("config: unknown handler %q", c.Handler)
	}
	if c.Addr == "" {
		return errors.New("config: empty address")
	}
	return nil
}

// Parse reads Config from the environment and validates it.
func Parse() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return c, errors.Wrap(err, "config: failed to parse environment")
	}

	return c, c.Validate()
}
