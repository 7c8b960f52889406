// Package config loads skiphire settings from defaults, an optional TOML
// file and SKIPHIRE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/csheth/skiphire/internal/catalog"
	"github.com/csheth/skiphire/internal/logging"
	"github.com/csheth/skiphire/internal/wizard"
)

const (
	envPrefix     = "SKIPHIRE"
	configEnvVar  = "SKIPHIRE_CONFIG"
	appDir        = "skiphire"
	defaultSymbol = "£"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	UI      UIConfig      `mapstructure:"ui"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// CatalogConfig selects where skip options come from.
type CatalogConfig struct {
	Source    string        `mapstructure:"source"`
	Path      string        `mapstructure:"path"`
	URL       string        `mapstructure:"url"`
	DSN       string        `mapstructure:"dsn"`
	Delay     time.Duration `mapstructure:"delay"`
	FailFirst int           `mapstructure:"fail_first"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheDir  string        `mapstructure:"cache_dir"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize       int    `mapstructure:"page_size"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	AltScreen      bool   `mapstructure:"alt_screen"`
}

// LogConfig controls the log file. The terminal belongs to the TUI, so logs
// are never written to stdout or stderr while it runs.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	File   string `mapstructure:"file"`
	Pretty bool   `mapstructure:"pretty"`
}

// MetricsConfig enables the Prometheus listener when Addr is set.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration. An explicit path (or SKIPHIRE_CONFIG) must exist;
// otherwise $XDG_CONFIG_HOME/skiphire/config.toml is read when present.
// Env var overrides use prefix SKIPHIRE_ with "." replaced by "_".
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, appDir))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.source", catalog.KindMock)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("catalog.delay", catalog.DefaultMockDelay)
	v.SetDefault("catalog.fail_first", 0)
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.cache_dir", "")
	v.SetDefault("catalog.cache_ttl", catalog.DefaultCacheTTL)
	v.SetDefault("ui.page_size", wizard.DefaultPageSize)
	v.SetDefault("ui.currency_symbol", defaultSymbol)
	v.SetDefault("ui.alt_screen", true)
	v.SetDefault("log.level", string(logging.LevelInfo))
	v.SetDefault("log.file", logging.DefaultLogFile())
	v.SetDefault("log.pretty", false)
	v.SetDefault("metrics.addr", "")
}

// Validate reports settings that would make the step unusable.
func (c Config) Validate() error {
	var errs []error
	switch c.Catalog.Source {
	case catalog.KindMock:
	case catalog.KindFile:
		if c.Catalog.Path == "" {
			errs = append(errs, errors.New("catalog.path is required for the file source"))
		}
	case catalog.KindHTTP:
		if c.Catalog.URL == "" {
			errs = append(errs, errors.New("catalog.url is required for the http source"))
		}
	case catalog.KindPostgres:
		if c.Catalog.DSN == "" {
			errs = append(errs, errors.New("catalog.dsn is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source %q is not one of mock, file, http, postgres", c.Catalog.Source))
	}
	if c.Catalog.Delay < 0 {
		errs = append(errs, errors.New("catalog.delay must not be negative"))
	}
	if c.Catalog.FailFirst < 0 {
		errs = append(errs, errors.New("catalog.fail_first must not be negative"))
	}
	if c.Catalog.Timeout < 0 {
		errs = append(errs, errors.New("catalog.timeout must not be negative"))
	}
	if c.UI.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	return errors.Join(errs...)
}

// SourceConfig converts the catalog settings for catalog.NewSource.
func (c CatalogConfig) SourceConfig() catalog.SourceConfig {
	return catalog.SourceConfig{
		Kind:      c.Source,
		Path:      c.Path,
		URL:       c.URL,
		DSN:       c.DSN,
		Delay:     c.Delay,
		FailFirst: c.FailFirst,
		CacheDir:  c.CacheDir,
		CacheTTL:  c.CacheTTL,
	}
}

// LoadEnvFile loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
