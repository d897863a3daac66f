package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultMaxDisplayRows caps how many rows the renderer prints per query.
	DefaultMaxDisplayRows = 20

	// DefaultQueryTimeout bounds a single statement's execution time.
	// Zero disables the timeout entirely.
	DefaultQueryTimeout = 30 * time.Second
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config describes one connection target plus the runner's display knobs.
type Config struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Database string `mapstructure:"database" yaml:"database"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`

	QueryTimeout   time.Duration `mapstructure:"query_timeout" yaml:"query_timeout"`
	MaxDisplayRows int           `mapstructure:"max_display_rows" yaml:"max_display_rows"`
}

// Load builds a Config from defaults, an optional YAML file and SQLLENS_*
// environment variables (file overrides defaults, environment overrides both).
// An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("driver", DriverPostgres)
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 5433)
	v.SetDefault("database", "ecommerce_db")
	v.SetDefault("user", "admin")
	v.SetDefault("password", "")
	v.SetDefault("query_timeout", DefaultQueryTimeout)
	v.SetDefault("max_display_rows", DefaultMaxDisplayRows)

	v.SetEnvPrefix("sqllens")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the runner cannot act on.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("unsupported driver %q (supported: %s, %s)", c.Driver, DriverPostgres, DriverMySQL)
	}

	if c.Host == "" {
		return fmt.Errorf("host is required")
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}

	if c.Database == "" {
		return fmt.Errorf("database is required")
	}

	if c.User == "" {
		return fmt.Errorf("user is required")
	}

	if c.QueryTimeout < 0 {
		return fmt.Errorf("query_timeout must not be negative")
	}

	if c.MaxDisplayRows <= 0 {
		c.MaxDisplayRows = DefaultMaxDisplayRows
	}

	return nil
}
