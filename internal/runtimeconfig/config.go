package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGeneratorOutputDirRequired indicates the generator was enabled without
// an output directory.
var ErrGeneratorOutputDirRequired = errors.New("promptscript config: generator output directory is required when generator is enabled")

// ErrGeneratorTargetUnknown flags a target name outside the supported set.
var ErrGeneratorTargetUnknown = errors.New("promptscript config: generator target is not supported")

// ErrGeneratorSizeLimitInvalid flags a negative artifact size ceiling.
var ErrGeneratorSizeLimitInvalid = errors.New("promptscript config: generator max output bytes must be zero or positive")

var ErrRenderConventionRequired = errors.New("promptscript config: render convention name is required")
var ErrLoggingProviderRequired = errors.New("promptscript config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("promptscript config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("promptscript config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("promptscript config: logging format is invalid")

// Config aggregates feature flags and runtime bindings for the generator.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Render    RenderConfig
	Generator GeneratorConfig
	Features  Features
	Logging   LoggingConfig
}

// RenderConfig selects the default rendering convention for targets that do
// not impose one of their own.
type RenderConfig struct {
	Convention string
}

// GeneratorConfig captures behaviour for artifact generation.
type GeneratorConfig struct {
	Enabled        bool
	OutputDir      string
	Targets        []string
	Strict         bool
	MaxOutputBytes int
	WriteManifest  bool
}

// Features toggles optional runtime behaviour.
type Features struct {
	FormatCheck bool
	Logger      bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for library embedding.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Render: RenderConfig{
			Convention: "markdown",
		},
		Generator: GeneratorConfig{
			Enabled:       true,
			OutputDir:     ".",
			Targets:       []string{"claude"},
			WriteManifest: true,
		},
		Features: Features{
			FormatCheck: true,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Render.Convention) == "" {
		return ErrRenderConventionRequired
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		for _, target := range cfg.Generator.Targets {
			if !isSupportedTarget(target) {
				return fmt.Errorf("%w: %s", ErrGeneratorTargetUnknown, target)
			}
		}
		if cfg.Generator.MaxOutputBytes < 0 {
			return ErrGeneratorSizeLimitInvalid
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func isSupportedTarget(target string) bool {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "claude", "cursor", "windsurf", "copilot":
		return true
	default:
		return false
	}
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
