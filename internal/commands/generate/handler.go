package generatecmd

import (
	"context"
	"strings"

	"github.com/mrwogu/promptscript/internal/commands"
	"github.com/mrwogu/promptscript/internal/generator"
	"github.com/mrwogu/promptscript/pkg/interfaces"
)

// HandlerDeps wires the services a generate handler needs.
type HandlerDeps struct {
	Service *generator.Service
	// Store receives the artifacts. Nil leaves writing to the OnResult hook.
	Store generator.ArtifactStore
	// OnResult observes each completed run, e.g. to report artifacts to the
	// caller. Optional.
	OnResult func(*generator.Result)
	Logger   interfaces.LoggerProvider
}

// NewHandler builds the command handler that runs a generation and persists
// its artifacts.
func NewHandler(deps HandlerDeps) *commands.Handler[GenerateCommand] {
	if deps.Service == nil {
		panic("generatecmd: generator service is required")
	}

	exec := func(ctx context.Context, cmd GenerateCommand) error {
		target, err := generator.ParseTarget(cmd.Target)
		if err != nil {
			return err
		}

		result, err := deps.Service.Generate(ctx, cmd.Document, target)
		if err != nil {
			return err
		}

		store := deps.Store
		if dir := strings.TrimSpace(cmd.OutputDir); dir != "" {
			store, err = generator.NewDirStore(dir)
			if err != nil {
				return err
			}
		}
		if store != nil {
			if err := generator.WriteResult(ctx, store, result); err != nil {
				return err
			}
		}

		if deps.OnResult != nil {
			deps.OnResult(result)
		}
		return nil
	}

	return commands.NewHandler(exec,
		commands.WithLogger[GenerateCommand](commands.CommandLogger(deps.Logger, "generate")),
		commands.WithOperation[GenerateCommand]("generate"),
	)
}
