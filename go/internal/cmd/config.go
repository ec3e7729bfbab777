package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/frontoffice/go/internal/league"
	"github.com/mcdev12/frontoffice/go/internal/negotiation"
	"github.com/mcdev12/frontoffice/go/internal/offers"
	"github.com/mcdev12/frontoffice/go/internal/trade"
	"gopkg.in/yaml.v3"
)

// Config is the process-wide tunable policy, loaded from YAML with
// per-section defaults.
type Config struct {
	Season struct {
		Year          int    `yaml:"year"`
		UserTeamID    string `yaml:"user_team_id"`
		TradeDeadline string `yaml:"trade_deadline"` // RFC 3339
	} `yaml:"season"`

	Datasets struct {
		PickOwnership string `yaml:"pick_ownership"`
		FrontOffices  string `yaml:"front_offices"`
	} `yaml:"datasets"`

	Trade       trade.Config         `yaml:"trade"`
	Offers      offers.Config        `yaml:"offers"`
	Negotiation negotiation.Config   `yaml:"negotiation"`
	Cap         league.CapThresholds `yaml:"cap"`
}

func defaultConfig() *Config {
	cfg := &Config{
		Trade:       trade.DefaultConfig(),
		Offers:      offers.DefaultConfig(),
		Negotiation: negotiation.DefaultConfig(),
		Cap:         league.DefaultCapThresholds(),
	}
	cfg.Season.Year = time.Now().Year()
	return cfg
}

// loadConfig reads the YAML config file, falling back to defaults when
// the file is absent.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// TradeDeadlineTime parses the configured deadline. Zero when unset.
func (c *Config) TradeDeadlineTime() (time.Time, error) {
	if c.Season.TradeDeadline == "" {
		return time.Time{}, nil
	}
	deadline, err := time.Parse(time.RFC3339, c.Season.TradeDeadline)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse trade deadline: %w", err)
	}
	return deadline, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
