// Package config loads grit's TOML settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/zlib"

	"github.com/technoweenie/grit/pkg/object"
)

// Config is the top-level settings document.
//
//	[objects]
//	compression_level = 6
//	fsync = true
//	buffer_size = 65536
//	verify_workers = 4
type Config struct {
	Objects ObjectsConfig `toml:"objects"`
}

// ObjectsConfig tunes the loose object store.
type ObjectsConfig struct {
	CompressionLevel int  `toml:"compression_level"`
	Fsync            bool `toml:"fsync"`
	BufferSize       int  `toml:"buffer_size"`
	VerifyWorkers    int  `toml:"verify_workers"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Objects: ObjectsConfig{
			CompressionLevel: zlib.DefaultCompression,
			BufferSize:       32 << 10,
			VerifyWorkers:    runtime.GOMAXPROCS(0),
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path or a
// missing file returns the defaults. Unknown keys are an error so typos do
// not pass silently.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("read config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	o := c.Objects
	if o.CompressionLevel < zlib.HuffmanOnly || o.CompressionLevel > zlib.BestCompression {
		return fmt.Errorf("objects.compression_level %d: must be between %d and %d",
			o.CompressionLevel, zlib.HuffmanOnly, zlib.BestCompression)
	}
	if o.BufferSize < 512 {
		return fmt.Errorf("objects.buffer_size %d: must be at least 512", o.BufferSize)
	}
	if o.VerifyWorkers < 1 {
		return fmt.Errorf("objects.verify_workers %d: must be at least 1", o.VerifyWorkers)
	}
	return nil
}

// StoreOptions converts the settings into object.Store options.
func (c *Config) StoreOptions(logger *slog.Logger) []object.Option {
	return []object.Option{
		object.WithLogger(logger),
		object.WithCompressionLevel(c.Objects.CompressionLevel),
		object.WithFsync(c.Objects.Fsync),
		object.WithBufferSize(c.Objects.BufferSize),
	}
}
