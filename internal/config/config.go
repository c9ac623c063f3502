package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DoyleJ11/rolly-polly/internal/dice"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultPort = 3001

type Config struct {
	Port       int `env:"PORT"`
	SocketPort int `env:"SOCKET_PORT"`

	// CORSOrigins lists the browser origins allowed to open a socket.
	CORSOrigins []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	OutboxSize      int           `env:"OUTBOX_SIZE" envDefault:"32"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`
	PingInterval    time.Duration `env:"PING_INTERVAL" envDefault:"25s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	RollPolicy string `env:"ROLL_POLICY" envDefault:"client"`
}

// Load reads the optional dotenv files (".env" when none are named) and then
// the process environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.OutboxSize <= 0 {
		return fmt.Errorf("OUTBOX_SIZE must be positive, got %d", c.OutboxSize)
	}
	if _, err := dice.ForPolicy(c.RollPolicy); err != nil {
		return fmt.Errorf("ROLL_POLICY: %w", err)
	}
	return nil
}

// Addr is the listen address. PORT takes precedence over SOCKET_PORT.
func (c Config) Addr() string {
	port := c.Port
	if port == 0 {
		port = c.SocketPort
	}
	if port == 0 {
		port = DefaultPort
	}
	return ":" + strconv.Itoa(port)
}

// OriginPatterns converts CORSOrigins into the host patterns the websocket
// accept check matches against. Entries without a scheme are used as is.
func (c Config) OriginPatterns() []string {
	out := make([]string, 0, len(c.CORSOrigins))
	for _, o := range c.CORSOrigins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			o = u.Host
		}
		out = append(out, o)
	}
	return out
}
