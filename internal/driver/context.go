package driver

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/lanius/internal/dfa"
	"github.com/opal-lang/lanius/internal/parsetab"
)

// Backend is the device backend a real GPU driver would select (spec §6);
// this CPU-simulated pipeline never touches one, but the env var and its
// validation are part of the driver's documented configuration surface.
type Backend string

const (
	BackendVulkan Backend = "vulkan"
	BackendDX12   Backend = "dx12"
	BackendMetal  Backend = "metal"
	BackendGL     Backend = "gl"
	BackendAuto   Backend = "auto"
)

// Config is the driver's layered configuration (spec §6 env vars, plus the
// ambient-stack addition of an optional lanius.yaml file): env vars always
// win over the file, which in turn wins over these defaults.
type Config struct {
	Backend   Backend `yaml:"backend"`
	GPUTiming bool    `yaml:"gpu_timing"`
	Readback  bool    `yaml:"readback"`
	MaxInputN int     `yaml:"max_input_n"`
}

// DefaultConfig matches the spec's implied defaults: readback on, timing
// off, backend auto-selected, and a generous but finite InputTooLarge
// ceiling standing in for a real device's buffer-size limit.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendAuto,
		GPUTiming: false,
		Readback:  true,
		MaxInputN: 256 << 20, // 256 MiB
	}
}

// LoadConfig builds a Config by layering, in increasing priority: defaults,
// an optional yamlPath (skipped silently if it doesn't exist), then the
// recognized environment variables (spec §6).
func LoadConfig(yamlPath string) (Config, error) {
	cfg := DefaultConfig()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err == nil {
			if uerr := yaml.Unmarshal(data, &cfg); uerr != nil {
				return cfg, fmt.Errorf("driver: parsing %s: %w", yamlPath, uerr)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("driver: reading %s: %w", yamlPath, err)
		}
	}

	if v := os.Getenv("LANIUS_BACKEND"); v != "" {
		switch Backend(v) {
		case BackendVulkan, BackendDX12, BackendMetal, BackendGL, BackendAuto:
			cfg.Backend = Backend(v)
		default:
			return cfg, fmt.Errorf("driver: LANIUS_BACKEND=%q not one of vulkan|dx12|metal|gl|auto", v)
		}
	}
	if v := os.Getenv("LANIUS_GPU_TIMING"); v != "" {
		cfg.GPUTiming = v == "1"
	}
	if v := os.Getenv("LANIUS_READBACK"); v != "" {
		cfg.Readback = v == "1"
	}

	return cfg, nil
}

// Context is the per-process handle held across calls to Lex/Parse: the
// compact tables loaded once at process lifetime (spec §4.M point 1), the
// resolved Config, and a structured logger threaded through every pass
// (SPEC_FULL.md ambient stack).
type Context struct {
	Config Config
	Logger *slog.Logger

	DFA       *dfa.Table
	ParseTabs *parsetab.PrecomputedParseTables
}

// NewContext loads the compact DFA table from dfaPath, builds the demo
// bracket-matching parse tables, and resolves Config from yamlPath plus
// the environment. logger may be nil, in which case a text handler to
// stderr is built, gated to Debug by LANIUS_GPU_TIMING (mirroring the
// teacher's own debug-env-var convention in runtime/lexer/lexer.go).
func NewContext(dfaPath, yamlPath string, logger *slog.Logger) (*Context, error) {
	cfg, err := LoadConfig(yamlPath)
	if err != nil {
		return nil, err
	}

	if logger == nil {
		level := slog.LevelInfo
		if cfg.GPUTiming {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	}

	f, err := os.Open(dfaPath)
	if err != nil {
		return nil, &TableCorruptError{Path: dfaPath, Err: err}
	}
	defer f.Close()

	t, err := dfa.Load(f)
	if err != nil {
		return nil, &TableCorruptError{Path: dfaPath, Err: err}
	}

	return &Context{
		Config:    cfg,
		Logger:    logger,
		DFA:       t,
		ParseTabs: parsetab.BuildBracketTables(),
	}, nil
}

// NewInMemoryContext builds a Context directly from a grammar and parse
// table pair, skipping the on-disk load in NewContext. Callers that don't
// need process-lifetime table persistence (cmd/parse_demo, which runs
// against the in-repo grammar directly, and the driver tests) use this
// instead of round-tripping through a table file.
func NewInMemoryContext(t *dfa.Table, pt *parsetab.PrecomputedParseTables, yamlPath string, logger *slog.Logger) (*Context, error) {
	cfg, err := LoadConfig(yamlPath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Context{Config: cfg, Logger: logger, DFA: t, ParseTabs: pt}, nil
}
