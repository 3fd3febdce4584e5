// Package promptscript renders AI assistant instruction files from resolved
// PromptScript documents. The root package is a façade: it re-exports the
// public contracts of the content, standards, convention, and markdown
// packages and wires the target generators behind a single Module.
package promptscript

import (
	"context"
	"errors"

	"github.com/mrwogu/promptscript/content"
	"github.com/mrwogu/promptscript/convention"
	generatecmd "github.com/mrwogu/promptscript/internal/commands/generate"
	"github.com/mrwogu/promptscript/internal/generator"
	"github.com/mrwogu/promptscript/internal/loader"
	"github.com/mrwogu/promptscript/internal/logging"
	"github.com/mrwogu/promptscript/internal/logging/gologger"
	"github.com/mrwogu/promptscript/pkg/interfaces"
	"github.com/mrwogu/promptscript/standards"
)

// Node exports the content node model.
type Node = content.Node

// Value exports the content value union.
type Value = content.Value

// Convention exports the rendering convention record.
type Convention = convention.Convention

// Renderer exports the convention renderer.
type Renderer = convention.Renderer

// StandardsResult exports the classified standards shape.
type StandardsResult = standards.Result

// Target exports the generator target type.
type Target = generator.Target

// Artifact exports the generated artifact shape.
type Artifact = generator.Artifact

// Result exports the generation run result.
type Result = generator.Result

// RunManifest exports the generation manifest.
type RunManifest = generator.RunManifest

// GenerateCommand exports the generation command message.
type GenerateCommand = generatecmd.GenerateCommand

// Logger exports the logging contract.
type Logger = interfaces.Logger

// LoggerProvider exports the named logger factory contract.
type LoggerProvider = interfaces.LoggerProvider

// Generator targets supported by the module.
const (
	TargetClaude   = generator.TargetClaude
	TargetCursor   = generator.TargetCursor
	TargetWindsurf = generator.TargetWindsurf
	TargetCopilot  = generator.TargetCopilot
)

// ErrGeneratorDisabled indicates Generate was called on a module configured
// without the generator.
var ErrGeneratorDisabled = errors.New("promptscript: generator is disabled")

// Module is the top level runtime façade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	service  *generator.Service
	store    *generator.DirStore
}

// New constructs a module from the provided configuration.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var provider interfaces.LoggerProvider
	if cfg.Features.Logger {
		p, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		provider = p
	}

	m := &Module{cfg: cfg, provider: provider}

	if cfg.Generator.Enabled {
		store, err := generator.NewDirStore(cfg.Generator.OutputDir)
		if err != nil {
			return nil, err
		}
		m.store = store
		m.service = generator.New(generator.Options{
			Strict:         cfg.Generator.Strict,
			MaxOutputBytes: cfg.Generator.MaxOutputBytes,
			Existing:       store.ReadExisting,
			Logger:         provider,
		})
	}

	return m, nil
}

// Generator returns the configured generator service, nil when disabled.
func (m *Module) Generator() *generator.Service {
	if m == nil {
		return nil
	}
	return m.service
}

// Logger returns a module-scoped logger.
func (m *Module) Logger(module string) interfaces.Logger {
	if m == nil {
		return logging.NoOp()
	}
	return logging.ModuleLogger(m.provider, module)
}

// LoadDocument reads a resolved document tree from a YAML file.
func LoadDocument(path string) (*Node, error) {
	return loader.Load(path)
}

// ParseDocument decodes a resolved document tree from YAML bytes.
func ParseDocument(data []byte) (*Node, error) {
	return loader.Parse(data)
}

// Generate runs the configured targets against doc and writes artifacts
// through the module's store. It returns one result per target.
func (m *Module) Generate(ctx context.Context, doc *Node) ([]*Result, error) {
	if m == nil || m.service == nil {
		return nil, ErrGeneratorDisabled
	}

	var results []*Result
	handler := generatecmd.NewHandler(generatecmd.HandlerDeps{
		Service:  m.service,
		Store:    m.store,
		OnResult: func(result *generator.Result) { results = append(results, result) },
		Logger:   m.provider,
	})

	for _, target := range m.cfg.Generator.Targets {
		cmd := GenerateCommand{Target: target, Document: doc}
		if err := handler.Execute(ctx, cmd); err != nil {
			return results, err
		}
	}
	return results, nil
}
