/*
Package config provides application configuration for the segtree tools.

Config implements schuko.Configuration. Values come from three layers, the
later overriding the earlier: built-in defaults, a YAML configuration file and
explicit settings (usually from command line flags). Nested YAML mappings are
addressed with dotted keys:

    tracing:
      adapter: go
    tracelevel:
      root: Error
      segtree: Info
    replay:
      interval: 200ms
      burst: 1
    console:
      width: 0        # 0 = ask the terminal
      color: true

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–21 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned for configuration files which are not a YAML mapping.
var ErrFormat = errors.New("config: invalid configuration format")

var defaults = map[string]string{
	"tracing.adapter":    "go",
	"tracelevel.root":    "Error",
	"tracelevel.segtree": "Info",
	"replay.interval":    "200ms",
	"replay.burst":       "1",
	"console.width":      "0",
	"console.color":      "true",
}

// Config is a flat key/value configuration.
type Config struct {
	values map[string]string
	path   string // file the configuration was read from, if any
}

var _ schuko.Configuration = (*Config)(nil)

// New creates a configuration holding the defaults only.
func New() *Config {
	c := &Config{values: make(map[string]string, len(defaults))}
	c.InitDefaults()
	return c
}

// Load creates a configuration from defaults and the YAML file at path. A
// missing file is not an error; the configuration then holds the defaults.
func Load(path string) (*Config, error) {
	c := New()
	if path == "" {
		return c, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := c.Read(f); err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	c.path = path
	return c, nil
}

// Read merges YAML configuration from r into c.
func (c *Config) Read(r io.Reader) error {
	var doc map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file
		}
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	flatten("", doc, c.values)
	return nil
}

func flatten(prefix string, m map[string]interface{}, into map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch x := v.(type) {
		case map[string]interface{}:
			flatten(key, x, into)
		case nil:
			delete(into, key)
		default:
			into[key] = fmt.Sprintf("%v", x)
		}
	}
}

// DefaultPath returns the location of the user's configuration file:
// $XDG_CONFIG_HOME/segviz/config.yaml, or $HOME/.segviz/config.yaml if
// XDG_CONFIG_HOME is not set.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "segviz", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".segviz", "config.yaml")
}

// Path returns the file the configuration was read from, or "".
func (c *Config) Path() string {
	return c.path
}

// Set overrides the value for key.
func (c *Config) Set(key, value string) {
	c.values[key] = value
}

// InitDefaults (re-)sets all keys without a value to their default.
func (c *Config) InitDefaults() {
	for k, v := range defaults {
		if _, ok := c.values[k]; !ok {
			c.values[k] = v
		}
	}
}

// IsSet is part of interface schuko.Configuration.
func (c *Config) IsSet(key string) bool {
	_, ok := c.values[key]
	return ok
}

// GetString is part of interface schuko.Configuration.
func (c *Config) GetString(key string) string {
	return c.values[key]
}

// GetInt is part of interface schuko.Configuration. Values not representing
// an integer are reported as 0.
func (c *Config) GetInt(key string) int {
	i, err := strconv.Atoi(strings.TrimSpace(c.values[key]))
	if err != nil {
		return 0
	}
	return i
}

// GetBool is part of interface schuko.Configuration.
func (c *Config) GetBool(key string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(c.values[key]))
	return err == nil && b
}

// GetDuration returns the value of key as a duration. Plain integers are taken
// as milliseconds.
func (c *Config) GetDuration(key string) time.Duration {
	s := strings.TrimSpace(c.values[key])
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// IsInteractive is part of interface schuko.Configuration. It is deprecated
// there and always false here.
func (c *Config) IsInteractive() bool {
	return false
}
