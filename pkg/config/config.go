// Package config loads typescatter settings from a TOML file.
//
// A missing file is not an error: [Load] returns [Default] values. Every
// field is optional; unset fields keep their defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/typescatter/pkg/cache"
	"github.com/matzehuels/typescatter/pkg/debounce"
	"github.com/matzehuels/typescatter/pkg/errors"
	"github.com/matzehuels/typescatter/pkg/fonts"
	"github.com/matzehuels/typescatter/pkg/printer"
	"github.com/matzehuels/typescatter/pkg/shapes"
)

const appName = "typescatter"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Duration is a time.Duration written as a Go duration string ("350ms").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config is the decoded configuration file.
type Config struct {
	Width  float64      `toml:"width"`
	Seed   uint64       `toml:"seed"`
	Shapes ShapesConfig `toml:"shapes"`
	Fonts  FontsConfig  `toml:"fonts"`
	Print  PrintConfig  `toml:"print"`
	Live   LiveConfig   `toml:"live"`
	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
}

type ShapesConfig struct {
	// Source is a file path, an http(s) URL, "builtin", or "" to disable.
	Source string `toml:"source"`
}

type FontsConfig struct {
	Sans      string `toml:"sans"`
	SansBold  string `toml:"sans_bold"`
	Serif     string `toml:"serif"`
	SerifBold string `toml:"serif_bold"`
	Mono      string `toml:"mono"`
	MonoBold  string `toml:"mono_bold"`
}

type PrintConfig struct {
	Delay Duration `toml:"delay"`
}

type LiveConfig struct {
	Debounce Duration `toml:"debounce"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	TTL           Duration `toml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:  800,
		Shapes: ShapesConfig{Source: shapes.DefaultSource},
		Print:  PrintConfig{Delay: Duration{printer.DefaultDelay}},
		Live:   LiveConfig{Debounce: Duration{debounce.DefaultDelay}},
		Server: ServerConfig{Addr: ":8080"},
		Cache: CacheConfig{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{cache.DefaultTTL},
		},
	}
}

// Load reads path on top of [Default]. An empty path means [DefaultPath];
// a missing file at the default path yields the defaults, while a missing
// explicitly named file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(string(data), cfg)
}

// Parse decodes TOML text on top of base and validates the result.
func Parse(text string, base Config) (Config, error) {
	cfg := base
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return base, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if err := errors.ValidateWidth(c.Width); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "width")
	}
	if c.Print.Delay.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "print.delay must not be negative")
	}
	if c.Live.Debounce.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "live.debounce must not be negative")
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q: want file, redis or none", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// FontPaths converts the [fonts] table for fonts.LoadSet.
func (c Config) FontPaths() fonts.Paths {
	return fonts.Paths{
		Sans: c.Fonts.Sans, SansBold: c.Fonts.SansBold,
		Serif: c.Fonts.Serif, SerifBold: c.Fonts.SerifBold,
		Mono: c.Fonts.Mono, MonoBold: c.Fonts.MonoBold,
	}
}

// CacheDir returns the file cache directory, defaulting to the XDG cache home.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// DefaultPath returns $XDG_CONFIG_HOME/typescatter/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, appName, "config.toml"), nil
}
