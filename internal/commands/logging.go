package commands

import (
	"strings"

	"github.com/mrwogu/promptscript/internal/logging"
	"github.com/mrwogu/promptscript/pkg/interfaces"
)

const commandModuleRoot = "promptscript.commands"

// CommandLogger returns a module-scoped logger for command handlers, enriching
// it with consistent structured fields so executions can be filtered per module.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.TrimSpace(module)
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
