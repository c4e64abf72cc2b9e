// internal/config/config.go
package config

import (
	"runtime"
	"time"

	"mitoseqfix-core/window"
)

// Inference backends.
const (
	BackendIdentity = "identity"
	BackendHTTP     = "http"
	BackendCommand  = "command"
)

// EnvPrefix prefixes every environment override, e.g. MITOSEQFIX_WINDOW_OVERLAP.
const EnvPrefix = "MITOSEQFIX_"

type Config struct {
	Window    Window    `koanf:"window"`
	Inference Inference `koanf:"inference"`
	Pipeline  Pipeline  `koanf:"pipeline"`
	Eval      Eval      `koanf:"eval"`
	Server    Server    `koanf:"server"`
	Log       Log       `koanf:"log"`
}

type Window struct {
	Size    int `koanf:"size"    validate:"min=1"`
	Overlap int `koanf:"overlap" validate:"min=0"`
}

// Config converts to the planner's window config.
func (w Window) Config() window.Config {
	return window.Config{Size: w.Size, Overlap: w.Overlap}
}

type Inference struct {
	Backend   string        `koanf:"backend"    validate:"oneof=identity http command"`
	URL       string        `koanf:"url"        validate:"required_if=Backend http"`
	Timeout   time.Duration `koanf:"timeout"`
	Retries   int           `koanf:"retries"    validate:"min=0,max=10"`
	Backoff   time.Duration `koanf:"backoff"    validate:"min=0"`
	Command   string        `koanf:"command"    validate:"required_if=Backend command"`
	CacheSize int           `koanf:"cache_size" validate:"min=0"`
}

type Pipeline struct {
	// Workers bounds concurrent window predictions per sequence; 0 = all CPUs.
	Workers int `koanf:"workers" validate:"min=0"`
}

type Eval struct {
	Workers       int     `koanf:"workers"        validate:"min=0"`
	Sample        float64 `koanf:"sample"         validate:"gte=0,lte=1"`
	Seed          int64   `koanf:"seed"`
	ProgressEvery int     `koanf:"progress_every" validate:"min=0"`
}

type Server struct {
	Addr         string   `koanf:"addr"           validate:"required"`
	CORSOrigins  []string `koanf:"cors_origins"`
	MaxBodyBytes int64    `koanf:"max_body_bytes" validate:"min=0"`
}

type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `koanf:"json"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: Window{Size: window.DefaultSize, Overlap: window.DefaultOverlap},
		Inference: Inference{
			Backend:   BackendIdentity,
			Timeout:   30 * time.Second,
			Retries:   3,
			Backoff:   100 * time.Millisecond,
			CacheSize: 4096,
		},
		Pipeline: Pipeline{Workers: 0},
		Eval: Eval{
			Workers:       0,
			Sample:        1,
			Seed:          42,
			ProgressEvery: 640,
		},
		Server: Server{
			Addr:         ":8080",
			CORSOrigins:  []string{"http://localhost:3000"},
			MaxBodyBytes: 64 << 20,
		},
		Log: Log{Level: "info"},
	}
}

// EffectiveWorkers maps 0 to the CPU count.
func EffectiveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
