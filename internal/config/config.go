package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	MaxPoints      int    `envconfig:"MAX_POINTS" default:"1000"`
	MaxBatchJobs   int    `envconfig:"MAX_BATCH_JOBS" default:"256"`
	PlotSize       int    `envconfig:"PLOT_SIZE" default:"640"`
	TableDecimals  int    `envconfig:"TABLE_DECIMALS" default:"2"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.TableDecimals < 0 || cfg.TableDecimals > 10 {
		return nil, fmt.Errorf("TABLE_DECIMALS must be between 0 and 10, got %d", cfg.TableDecimals)
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OriginPatterns strips the scheme from each origin, the form websocket
// origin checks expect.
func (c *Config) OriginPatterns() []string {
	origins := c.Origins()
	out := make([]string, len(origins))
	for i, o := range origins {
		if _, host, ok := strings.Cut(o, "://"); ok {
			o = host
		}
		out[i] = o
	}
	return out
}

func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
