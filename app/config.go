// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"github.com/BurntSushi/toml"

	"github.com/wagui/wag/errors"
)

// Config describes a window and the runtime hosting it.
type Config struct {
	// Title is the window title.
	Title string `toml:"title"`
	// Width and Height are the initial size of the window in dp.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Scale is the number of window pixels per dp.
	Scale float32 `toml:"scale"`
	// LogLevel is one of debug, info, warn, error or fatal.
	LogLevel string `toml:"log_level"`
	// Workers bounds the number of concurrent tasks. Zero means no
	// bound.
	Workers int `toml:"workers"`
	// QueueSize is the capacity of the window event queue.
	QueueSize int `toml:"queue_size"`
	// ConcurrentFanout makes containers deliver broadcast events to
	// their children in parallel.
	ConcurrentFanout bool `toml:"concurrent_fanout"`
}

// Option changes a Config.
type Option func(cnf *Config)

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Title:     "wag",
		Width:     800,
		Height:    600,
		Scale:     1,
		LogLevel:  "info",
		QueueSize: 64,
	}
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(cnf *Config) {
		cnf.Title = t
	}
}

// Size sets the initial size of the window.
func Size(w, h int) Option {
	if w <= 0 {
		panic("width must be larger than 0")
	}
	if h <= 0 {
		panic("height must be larger than 0")
	}
	return func(cnf *Config) {
		cnf.Width, cnf.Height = w, h
	}
}

// Workers bounds the number of concurrent tasks.
func Workers(n int) Option {
	return func(cnf *Config) {
		cnf.Workers = n
	}
}

func (c *Config) apply(options []Option) {
	for _, o := range options {
		o(c)
	}
}

// ParseConfig decodes a TOML document over DefaultConfig. Unknown keys
// are rejected.
func ParseConfig(data string, options ...Option) (Config, error) {
	cnf := DefaultConfig()
	md, err := toml.Decode(data, &cnf)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "parse config")
	}
	return cnf.finish(md, options)
}

// LoadConfig reads a TOML file over DefaultConfig. Unknown keys are
// rejected.
func LoadConfig(path string, options ...Option) (Config, error) {
	cnf := DefaultConfig()
	md, err := toml.DecodeFile(path, &cnf)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeConfig, err, "load config %s", path)
	}
	return cnf.finish(md, options)
}

func (c Config) finish(md toml.MetaData, options []Option) (Config, error) {
	if keys := md.Undecoded(); len(keys) > 0 {
		return Config{}, errors.New(errors.ErrCodeConfig, "unknown config key %q", keys[0].String())
	}
	c.apply(options)
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports the first invalid field of c.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.New(errors.ErrCodeConfig, "window size %dx%d is not positive", c.Width, c.Height)
	case !(c.Scale > 0):
		return errors.New(errors.ErrCodeConfig, "scale %v is not positive", c.Scale)
	case c.Workers < 0:
		return errors.New(errors.ErrCodeConfig, "negative worker limit %d", c.Workers)
	case c.QueueSize < 1:
		return errors.New(errors.ErrCodeConfig, "event queue size %d is less than 1", c.QueueSize)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
