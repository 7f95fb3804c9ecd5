// Package config loads the plain key=value configuration file the host
// binary starts from: server ports, risk limits, and logging options.
package config

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Irushi-coder/high-performance-trading-system/internal/core"
	"github.com/Irushi-coder/high-performance-trading-system/internal/risk"
)

// Config holds every recognized trading_config.txt key.
type Config struct {
	DashboardPort         int
	ServerPort            int
	ServerMaxClients      int
	RiskMaxOrderSize      uint64
	RiskMaxPositionSize   int64
	RiskMaxDailyLoss      float64
	LoggingLevel          string
	LoggingFile           string
	MatchingEnableProfile bool
}

// Default returns the configuration used when trading_config.txt is
// absent or a key is unset.
func Default() Config {
	return Config{
		DashboardPort:    8081,
		ServerPort:       8080,
		ServerMaxClients: 100,
		LoggingLevel:     "info",
		LoggingFile:      "",
	}
}

// Load reads path as a godotenv-formatted `key=value` file with `#`
// comments (the same file syntax godotenv uses for .env), interpreting
// only the keys this system recognizes; unknown keys are ignored so the
// file can carry comments and future settings without breaking parsing.
func Load(path string) (Config, error) {
	cfg := Default()
	values, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if v, ok := values["dashboard.port"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: dashboard.port: %w", err)
		}
		cfg.DashboardPort = n
	}
	if v, ok := values["server.port"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: server.port: %w", err)
		}
		cfg.ServerPort = n
	}
	if v, ok := values["server.max_clients"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: server.max_clients: %w", err)
		}
		cfg.ServerMaxClients = n
	}
	if v, ok := values["risk.max_order_size"]; ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: risk.max_order_size: %w", err)
		}
		cfg.RiskMaxOrderSize = n
	}
	if v, ok := values["risk.max_position_size"]; ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: risk.max_position_size: %w", err)
		}
		cfg.RiskMaxPositionSize = n
	}
	if v, ok := values["risk.max_daily_loss"]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: risk.max_daily_loss: %w", err)
		}
		cfg.RiskMaxDailyLoss = f
	}
	if v, ok := values["logging.level"]; ok {
		cfg.LoggingLevel = v
	}
	if v, ok := values["logging.file"]; ok {
		cfg.LoggingFile = v
	}
	if v, ok := values["matching.enable_profiling"]; ok {
		cfg.MatchingEnableProfile = v == "true" || v == "1"
	}

	return cfg, nil
}

// RiskLimits builds a risk.Limits from the recognized subset of keys,
// filling any key the config file didn't set from risk.DefaultLimits.
func (c Config) RiskLimits() risk.Limits {
	limits := risk.DefaultLimits()
	if c.RiskMaxOrderSize != 0 {
		limits.MaxOrderSize = core.Quantity(c.RiskMaxOrderSize)
	}
	if c.RiskMaxPositionSize != 0 {
		limits.MaxPositionSize = c.RiskMaxPositionSize
	}
	if c.RiskMaxDailyLoss != 0 {
		limits.MaxDailyLoss = c.RiskMaxDailyLoss
	}
	return limits
}
