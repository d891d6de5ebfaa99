// Package config loads gridfit settings from a TOML file, a .env file and
// the process environment.
//
// Precedence, lowest first: built-in defaults, the config file, .env, the
// environment. Command-line flags are applied on top by the CLI.
//
// # File Format
//
//	[layout]
//	algorithm = "partition"
//	width = 1200
//	spacing = 8
//
//	[render]
//	formats = ["svg", "png"]
//	background = "#fafafa"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "15s"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/gridfit/pkg/cache"
	errs "github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	appName = "gridfit"

	// FileName is the config file name inside the config directory.
	FileName = "config.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "GRIDFIT_"
)

// Server defaults.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxElements     = 1000

	DefaultMaxPartitionCells = 500000
)

// =============================================================================
// Config Types
// =============================================================================

// Config is the complete gridfit configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds default layout options.
type LayoutConfig struct {
	Algorithm   string  `toml:"algorithm"`
	Width       float64 `toml:"width"`
	MaxHeight   float64 `toml:"max_height"`
	IdealHeight float64 `toml:"ideal_height"`
	Spacing     float64 `toml:"spacing"`
	Align       string  `toml:"align"`
	Columns     int     `toml:"columns"`
	Margin      float64 `toml:"margin"`
}

// RenderConfig holds default render options.
type RenderConfig struct {
	Formats    []string `toml:"formats"`
	Style      string   `toml:"style"`
	Background string   `toml:"background"`
	Labels     bool     `toml:"labels"`
	Scale      float64  `toml:"scale"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	Namespace       string `toml:"namespace"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	RedisPrefix     string `toml:"redis_prefix"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Keyer returns the cache keyer for the configured namespace. Keys are
// unprefixed when no namespace is set.
func (c Config) Keyer() cache.Keyer {
	if c.Cache.Namespace == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(nil, c.Cache.Namespace+":")
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`

	// MaxElements bounds the size of a single request.
	MaxElements int `toml:"max_elements"`

	// MaxPartitionCells bounds elements × groups for one partition.
	MaxPartitionCells int `toml:"max_partition_cells"`
}

// Duration is a time.Duration that decodes from strings such as "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// =============================================================================
// Loading
// =============================================================================

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Algorithm: pipeline.DefaultAlgorithm,
			Width:     pipeline.DefaultWidth,
			Columns:   pipeline.DefaultColumns,
		},
		Render: RenderConfig{
			Formats:    []string{pipeline.FormatSVG},
			Style:      pipeline.DefaultStyle,
			Background: pipeline.DefaultBackground,
			Scale:      pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
		},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     Duration{DefaultReadTimeout},
			WriteTimeout:    Duration{DefaultWriteTimeout},
			ShutdownTimeout: Duration{DefaultShutdownTimeout},
			MaxElements:     DefaultMaxElements,

			MaxPartitionCells: DefaultMaxPartitionCells,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gridfit/config.toml, falling back
// to the platform config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, FileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, FileName), nil
}

// Load reads the config file at path on top of the defaults, then applies
// .env and environment overrides. An empty path means DefaultPath; a
// missing default file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults without consulting the
// environment.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode config")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", keys[0].String())
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	parsed, err := Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	*c = parsed
	return nil
}

// loadDotEnv loads a .env file into the process environment. Variables
// already set are kept. A missing file is ignored.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from GRIDFIT_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *float64) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
		}
		*dst = f
		return nil
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s%s", EnvPrefix, name)
		}
		*dst = n
		return nil
	}

	str("ALGORITHM", &c.Layout.Algorithm)
	if err := num("WIDTH", &c.Layout.Width); err != nil {
		return err
	}
	if err := num("SPACING", &c.Layout.Spacing); err != nil {
		return err
	}

	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("CACHE_NAMESPACE", &c.Cache.Namespace)
	str("REDIS_ADDR", &c.Cache.RedisAddr)
	str("REDIS_PASSWORD", &c.Cache.RedisPassword)
	if err := integer("REDIS_DB", &c.Cache.RedisDB); err != nil {
		return err
	}
	str("MONGO_URI", &c.Cache.MongoURI)
	str("MONGO_DATABASE", &c.Cache.MongoDatabase)

	str("ADDR", &c.Server.Addr)
	if err := integer("MAX_ELEMENTS", &c.Server.MaxElements); err != nil {
		return err
	}
	if err := integer("MAX_PARTITION_CELLS", &c.Server.MaxPartitionCells); err != nil {
		return err
	}

	// A Redis or Mongo address alone is enough to select that backend.
	if _, set := lookup(EnvPrefix + "CACHE_BACKEND"); !set {
		switch {
		case c.Cache.RedisAddr != "" && c.Cache.Backend == cache.BackendFile:
			c.Cache.Backend = cache.BackendRedis
		case c.Cache.MongoURI != "" && c.Cache.Backend == cache.BackendFile:
			c.Cache.Backend = cache.BackendMongo
		}
	}
	return nil
}

// =============================================================================
// Validation and Conversion
// =============================================================================

// Validate checks the parts of the config that the pipeline does not
// validate itself.
func (c Config) Validate() error {
	switch strings.ToLower(c.Cache.Backend) {
	case "", cache.BackendFile, cache.BackendRedis, cache.BackendMongo, cache.BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Server.MaxElements < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_elements must not be negative")
	}
	if c.Server.MaxPartitionCells < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "server.max_partition_cells must not be negative")
	}
	opts := c.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	return nil
}

// PipelineOptions returns the configured layout and render defaults.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Algorithm:   c.Layout.Algorithm,
		Width:       c.Layout.Width,
		MaxHeight:   c.Layout.MaxHeight,
		IdealHeight: c.Layout.IdealHeight,
		Spacing:     c.Layout.Spacing,
		Align:       c.Layout.Align,
		Columns:     c.Layout.Columns,
		Margin:      c.Layout.Margin,
		Formats:     append([]string(nil), c.Render.Formats...),
		Style:       c.Render.Style,
		Background:  c.Render.Background,
		Labels:      c.Render.Labels,
		Scale:       c.Render.Scale,
	}
}

// CacheOptions returns the cache backend configuration.
func (c Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Dir:     c.Cache.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Cache.RedisAddr,
			Password: c.Cache.RedisPassword,
			DB:       c.Cache.RedisDB,
			Prefix:   c.Cache.RedisPrefix,
		},
		Mongo: cache.MongoOptions{
			URI:        c.Cache.MongoURI,
			Database:   c.Cache.MongoDatabase,
			Collection: c.Cache.MongoCollection,
		},
	}
}
