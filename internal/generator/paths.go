package generator

import (
	"path"
	"strings"

	slug "github.com/goliatone/go-slug"

	"github.com/mrwogu/promptscript/internal/util"
)

const cursorRulesDir = ".cursor/rules"

// cursorRulePath builds the MDC rule path for a document. The document name
// is slugified; unnameable documents fall back to a stable default.
func cursorRulePath(name string) string {
	normalized, err := slug.Normalize(strings.TrimSpace(name))
	if err != nil {
		normalized = ""
	}
	return path.Join(cursorRulesDir, util.FirstNonEmpty(normalized, "project-rules")+".mdc")
}
