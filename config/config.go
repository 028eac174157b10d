// backend/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	IntakeModeLenient = "lenient"
	IntakeModeStrict  = "strict"

	CompareStylePick = "pick" // Compare mode needs at least MinCompare selected plans
	CompareStyleAll  = "all"  // Compare mode shows the whole catalog side by side

	CatalogSourceEmbedded = "embedded"
	CatalogSourceCSV      = "csv"
	CatalogSourceMySQL    = "mysql"
)

type ServerConfig struct {
	Port               string `yaml:"port"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	RateLimitBurst     int    `yaml:"rate_limit_burst"`
	// Proxies (IPs or CIDRs) whose X-Forwarded-For header is believed. Empty means none.
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type LogConfig struct {
	Style string `yaml:"style"` // "production" or "development"
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type CatalogConfig struct {
	Source  string `yaml:"source"`
	CSVPath string `yaml:"csv_path"`
}

type IntakeConfig struct {
	Mode           string `yaml:"mode"`
	MinTravelerAge int    `yaml:"min_traveler_age"`
	MaxTravelerAge int    `yaml:"max_traveler_age"`
}

type SelectionConfig struct {
	CompareStyle string `yaml:"compare_style"`
	MinCompare   int    `yaml:"min_compare"`
}

type CheckoutConfig struct {
	ConfirmationDelayStr string        `yaml:"confirmation_delay"`
	ConfirmationDelay    time.Duration // Parsed duration
}

type SessionConfig struct {
	TTLStr string        `yaml:"ttl"`
	TTL    time.Duration // Parsed duration
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Intake    IntakeConfig    `yaml:"intake"`
	Selection SelectionConfig `yaml:"selection"`
	Checkout  CheckoutConfig  `yaml:"checkout"`
	Session   SessionConfig   `yaml:"session"`
}

var AppConfig Config

// Default returns the configuration used when a key is missing from the YAML file.
func Default() Config {
	return Config{
		Server:    ServerConfig{Port: "8080", RateLimitPerMinute: 120, RateLimitBurst: 20},
		Log:       LogConfig{Style: "development", Level: "info"},
		Database:  DatabaseConfig{Host: "127.0.0.1", Port: "3306"},
		Catalog:   CatalogConfig{Source: CatalogSourceEmbedded},
		Intake:    IntakeConfig{Mode: IntakeModeLenient, MinTravelerAge: 1, MaxTravelerAge: 120},
		Selection: SelectionConfig{CompareStyle: CompareStylePick, MinCompare: 2},
		Checkout:  CheckoutConfig{ConfirmationDelayStr: "2s"},
		Session:   SessionConfig{TTLStr: "30m"},
	}
}

// LoadConfig reads the YAML file at configPath into AppConfig, then applies .env and
// TRIPCOVER_* environment overrides. An empty configPath loads defaults plus environment.
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = cfg
	return nil
}

// Load is LoadConfig without touching AppConfig.
func Load(configPath string) (Config, error) {
	cfg := Default()

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env file: %w", err)
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.finalize(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"TRIPCOVER_PORT":           &cfg.Server.Port,
		"TRIPCOVER_LOG_STYLE":      &cfg.Log.Style,
		"TRIPCOVER_LOG_LEVEL":      &cfg.Log.Level,
		"TRIPCOVER_DB_HOST":        &cfg.Database.Host,
		"TRIPCOVER_DB_PORT":        &cfg.Database.Port,
		"TRIPCOVER_DB_USER":        &cfg.Database.User,
		"TRIPCOVER_DB_PASSWORD":    &cfg.Database.Password,
		"TRIPCOVER_DB_NAME":        &cfg.Database.DBName,
		"TRIPCOVER_CATALOG_SOURCE": &cfg.Catalog.Source,
		"TRIPCOVER_CATALOG_CSV":    &cfg.Catalog.CSVPath,
		"TRIPCOVER_INTAKE_MODE":    &cfg.Intake.Mode,
		"TRIPCOVER_COMPARE_STYLE":  &cfg.Selection.CompareStyle,
		"TRIPCOVER_CONFIRM_DELAY":  &cfg.Checkout.ConfirmationDelayStr,
		"TRIPCOVER_SESSION_TTL":    &cfg.Session.TTLStr,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("TRIPCOVER_TRUSTED_PROXIES"); ok && v != "" {
		cfg.Server.TrustedProxies = strings.Split(v, ",")
	}

	ints := map[string]*int{
		"TRIPCOVER_RATE_LIMIT_PER_MINUTE": &cfg.Server.RateLimitPerMinute,
		"TRIPCOVER_RATE_LIMIT_BURST":      &cfg.Server.RateLimitBurst,
		"TRIPCOVER_MIN_TRAVELER_AGE":      &cfg.Intake.MinTravelerAge,
		"TRIPCOVER_MAX_TRAVELER_AGE":      &cfg.Intake.MaxTravelerAge,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

// finalize normalizes enum values, parses durations and rejects impossible settings.
func (c *Config) finalize() error {
	var err error

	proxies := c.Server.TrustedProxies[:0]
	for _, p := range c.Server.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, _, cerr := net.ParseCIDR(p); cerr != nil && net.ParseIP(p) == nil {
			return fmt.Errorf("invalid trusted proxy %q (use an IP or CIDR)", p)
		}
		proxies = append(proxies, p)
	}
	c.Server.TrustedProxies = proxies

	c.Intake.Mode = strings.ToLower(strings.TrimSpace(c.Intake.Mode))
	switch c.Intake.Mode {
	case "":
		c.Intake.Mode = IntakeModeLenient
	case IntakeModeLenient, IntakeModeStrict:
	default:
		return fmt.Errorf("invalid intake mode %q (use %q or %q)", c.Intake.Mode, IntakeModeLenient, IntakeModeStrict)
	}
	if c.Intake.MaxTravelerAge < c.Intake.MinTravelerAge {
		return fmt.Errorf("max_traveler_age %d is below min_traveler_age %d", c.Intake.MaxTravelerAge, c.Intake.MinTravelerAge)
	}

	c.Selection.CompareStyle = strings.ToLower(strings.TrimSpace(c.Selection.CompareStyle))
	switch c.Selection.CompareStyle {
	case "":
		c.Selection.CompareStyle = CompareStylePick
	case CompareStylePick, CompareStyleAll:
	default:
		return fmt.Errorf("invalid compare style %q (use %q or %q)", c.Selection.CompareStyle, CompareStylePick, CompareStyleAll)
	}
	if c.Selection.MinCompare < 2 {
		c.Selection.MinCompare = 2
	}

	c.Catalog.Source = strings.ToLower(strings.TrimSpace(c.Catalog.Source))
	switch c.Catalog.Source {
	case "":
		c.Catalog.Source = CatalogSourceEmbedded
	case CatalogSourceEmbedded, CatalogSourceMySQL:
	case CatalogSourceCSV:
		if c.Catalog.CSVPath == "" {
			return fmt.Errorf("catalog source %q needs catalog.csv_path", CatalogSourceCSV)
		}
	default:
		return fmt.Errorf("invalid catalog source %q", c.Catalog.Source)
	}

	// Parse durations
	if c.Checkout.ConfirmationDelayStr != "" {
		c.Checkout.ConfirmationDelay, err = time.ParseDuration(c.Checkout.ConfirmationDelayStr)
		if err != nil {
			return fmt.Errorf("failed to parse ConfirmationDelay: %w", err)
		}
	} else {
		c.Checkout.ConfirmationDelay = 2 * time.Second // Default
	}
	if c.Checkout.ConfirmationDelay < 0 {
		return fmt.Errorf("confirmation_delay must not be negative, got %s", c.Checkout.ConfirmationDelay)
	}

	if c.Session.TTLStr != "" {
		c.Session.TTL, err = time.ParseDuration(c.Session.TTLStr)
		if err != nil {
			return fmt.Errorf("failed to parse session TTL: %w", err)
		}
	} else {
		c.Session.TTL = 30 * time.Minute // Default
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	return nil
}
