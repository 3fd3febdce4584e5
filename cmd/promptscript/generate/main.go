package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	generatecmd "github.com/mrwogu/promptscript/internal/commands/generate"
	"github.com/mrwogu/promptscript/internal/generator"
	"github.com/mrwogu/promptscript/internal/loader"
	"github.com/mrwogu/promptscript/internal/logging"
	"github.com/mrwogu/promptscript/internal/logging/gologger"
	"github.com/mrwogu/promptscript/internal/runtimeconfig"
	"github.com/mrwogu/promptscript/pkg/interfaces"
)

func main() {
	if err := runGenerate(os.Args[1:]); err != nil {
		log.Fatalf("promptscript generate: %v", err)
	}
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("promptscript-generate", flag.ExitOnError)
	input := fs.String("input", "promptscript.yaml", "Path to the resolved document file")
	targets := fs.String("targets", "claude", "Comma separated list of targets (claude, cursor, windsurf, copilot)")
	outputDir := fs.String("output", ".", "Directory artifacts are written to")
	strict := fs.Bool("strict", false, "Fail when output drifts under external formatting")
	maxBytes := fs.Int("max-bytes", 0, "Warn when total output exceeds this many bytes (0 disables)")
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "console", "Log format (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.OutputDir = *outputDir
	cfg.Generator.Strict = *strict
	cfg.Generator.MaxOutputBytes = *maxBytes
	cfg.Generator.Targets = splitTargets(*targets)
	cfg.Features.Logger = true
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := buildLoggerProvider(cfg.Logging)
	if err != nil {
		return err
	}

	doc, err := loader.Load(*input)
	if err != nil {
		return err
	}

	store, err := generator.NewDirStore(cfg.Generator.OutputDir)
	if err != nil {
		return err
	}

	svc := generator.New(generator.Options{
		Strict:         cfg.Generator.Strict,
		MaxOutputBytes: cfg.Generator.MaxOutputBytes,
		Existing:       store.ReadExisting,
		Logger:         provider,
	})

	var runs []*generator.Result
	handler := generatecmd.NewHandler(generatecmd.HandlerDeps{
		Service:  svc,
		Store:    store,
		OnResult: func(result *generator.Result) { runs = append(runs, result) },
		Logger:   provider,
	})

	ctx := context.Background()
	for _, target := range cfg.Generator.Targets {
		cmd := generatecmd.GenerateCommand{
			Target:   target,
			Document: doc,
		}
		if err := handler.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("generate %s: %w", target, err)
		}
	}

	for _, run := range runs {
		for _, artifact := range run.Artifacts {
			fmt.Printf("%s\t%s\n", run.Target, artifact.Path)
		}
		for _, warning := range run.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", run.Target, warning)
		}
	}
	return nil
}

func buildLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "noop":
		return noopProvider{}, nil
	default:
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }

func splitTargets(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
