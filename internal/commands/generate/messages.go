package generatecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mrwogu/promptscript/content"
	"github.com/mrwogu/promptscript/internal/generator"
)

const generateMessageType = "promptscript.generator.generate"

// GenerateCommand requests artifact generation for one target from a resolved
// document tree. Artifacts land under OutputDir through the handler's store.
type GenerateCommand struct {
	// Target selects the output tool (claude, cursor, windsurf, copilot).
	Target string `json:"target"`
	// Document is the resolved content tree to assemble sections from.
	Document *content.Node `json:"-"`
	// OutputDir overrides the store root when non-empty.
	OutputDir string `json:"output_dir,omitempty"`
}

// Type implements command.Message.
func (GenerateCommand) Type() string { return generateMessageType }

// Validate ensures the target is supported and a document is present before
// handlers execute.
func (cmd GenerateCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Target, validation.Required, validation.By(func(value any) error {
			name, _ := value.(string)
			if strings.TrimSpace(name) == "" {
				return validation.NewError("promptscript.generator.generate.target_required", "target is required")
			}
			if _, err := generator.ParseTarget(name); err != nil {
				return validation.NewError("promptscript.generator.generate.target_unknown", "target is not supported")
			}
			return nil
		})),
		validation.Field(&cmd.Document, validation.NotNil),
	)
}
