// internal/clibase/common.go
package clibase

import (
	"errors"
	"io"
	"sort"

	"github.com/spf13/pflag"

	"mitoseqfix/internal/config"
	"mitoseqfix/internal/logger"
)

// Exit codes shared by all tools.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// UsageError marks bad flags, arguments or configuration (exit 2).
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Usage wraps err as a UsageError; nil stays nil.
func Usage(err error) error {
	if err == nil {
		return nil
	}
	return &UsageError{Err: err}
}

// IsUsage reports whether err is a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// Common holds CLI fields shared by mitoseqfix, mitoseqfix-eval and
// mitoseqfix-serve. Flags bound to a config key only override the loaded
// configuration when set on the command line.
type Common struct {
	ConfigPath string
	Version    bool

	keys map[string]string // flag name -> config key
}

// Register wires the shared flags onto fs.
func Register(fs *pflag.FlagSet, c *Common) {
	fs.StringVar(&c.ConfigPath, "config", "", "YAML config file")
	fs.BoolVarP(&c.Version, "version", "v", false, "print version and exit")

	c.Int(fs, "window", "window.size", "", "model window size W")
	c.Int(fs, "overlap", "window.overlap", "", "overlap O between adjacent windows (0 <= O < W)")
	c.String(fs, "backend", "inference.backend", "", "model backend: identity | http | command")
	c.String(fs, "model-url", "inference.url", "", "model server URL (http backend)")
	c.String(fs, "model-cmd", "inference.command", "", "model command line (command backend)")
	c.Int(fs, "workers", "pipeline.workers", "t", "concurrent window predictions (0=all CPUs)")
	c.String(fs, "log-level", "log.level", "", "log level: debug | info | warn | error | disabled")
	c.Bool(fs, "log-json", "log.json", "", "log as JSON")
}

// Bind records that flag name overrides config key.
func (c *Common) Bind(name, key string) {
	if c.keys == nil {
		c.keys = map[string]string{}
	}
	c.keys[name] = key
}

// Int registers an int flag bound to key. Defaults come from config, so the
// flag's own default is never used.
func (c *Common) Int(fs *pflag.FlagSet, name, key, short, usage string) {
	fs.IntP(name, short, 0, usage)
	c.Bind(name, key)
}

// String registers a string flag bound to key.
func (c *Common) String(fs *pflag.FlagSet, name, key, short, usage string) {
	fs.StringP(name, short, "", usage)
	c.Bind(name, key)
}

// Bool registers a bool flag bound to key.
func (c *Common) Bool(fs *pflag.FlagSet, name, key, short, usage string) {
	fs.BoolP(name, short, false, usage)
	c.Bind(name, key)
}

// Float registers a float64 flag bound to key.
func (c *Common) Float(fs *pflag.FlagSet, name, key, short, usage string) {
	fs.Float64P(name, short, 0, usage)
	c.Bind(name, key)
}

// StringSlice registers a repeatable string flag bound to key.
func (c *Common) StringSlice(fs *pflag.FlagSet, name, key, short, usage string) {
	fs.StringSliceP(name, short, nil, usage)
	c.Bind(name, key)
}

// Overrides returns config overrides for the bound flags that were set.
func (c *Common) Overrides(fs *pflag.FlagSet) map[string]any {
	out := map[string]any{}
	names := make([]string, 0, len(c.keys))
	for n := range c.keys {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		f := fs.Lookup(n)
		if f == nil || !f.Changed {
			continue
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			out[c.keys[n]] = sv.GetSlice()
			continue
		}
		out[c.keys[n]] = f.Value.String()
	}
	return out
}

// LoadConfig loads --config, the environment and flag overrides.
// Errors are UsageErrors.
func (c *Common) LoadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath, c.Overrides(fs))
	if err != nil {
		return nil, Usage(err)
	}
	return cfg, nil
}

// NewLogger builds the process logger from the log section.
func NewLogger(cfg config.Log, out io.Writer) logger.Logger {
	lc := logger.DefaultConfig()
	lc.Level = logger.LogLevel(cfg.Level)
	lc.JSON = cfg.JSON
	lc.Output = out
	return logger.NewLogger(lc)
}
