package generator

import (
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/mrwogu/promptscript/content"
	"github.com/mrwogu/promptscript/internal/util"
)

// mdcFrontmatter is the metadata block of a cursor MDC rule file. Extra holds
// user-added keys recovered from an existing file so regeneration does not
// discard them.
type mdcFrontmatter struct {
	Description string         `yaml:"description,omitempty"`
	Globs       []string       `yaml:"globs,omitempty"`
	AlwaysApply bool           `yaml:"alwaysApply"`
	Extra       map[string]any `yaml:",inline"`
}

// composeMDC renders the cursor rule file: YAML frontmatter followed by the
// rendered Markdown body. When existing holds the current file content its
// unknown frontmatter keys are preserved.
func composeMDC(doc *content.Node, body, existing string) (string, error) {
	meta := mdcFrontmatter{AlwaysApply: true}

	if v, ok := content.GetProperty(doc, "description"); ok {
		meta.Description = content.ValueToString(v)
	}
	if v, ok := content.GetProperty(doc, "globs"); ok {
		meta.Globs = globStrings(v)
	}

	if strings.TrimSpace(existing) != "" {
		user := map[string]any{}
		if _, err := frontmatter.Parse(strings.NewReader(existing), &user); err == nil && len(user) > 0 {
			extra := util.CloneAnyMap(user)
			delete(extra, "description")
			delete(extra, "globs")
			delete(extra, "alwaysApply")
			if len(extra) > 0 {
				meta.Extra = extra
			}
		}
	}

	encoded, err := yaml.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("generator: marshal mdc frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(encoded)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimRight(body, "\n"))
	b.WriteString("\n")
	return b.String(), nil
}

func globStrings(v content.Value) []string {
	switch v.Kind {
	case content.ValueList:
		var globs []string
		for _, item := range v.List {
			if s := content.ValueToString(item); s != "" {
				globs = append(globs, s)
			}
		}
		return globs
	case content.ValueString:
		if v.Str == "" {
			return nil
		}
		return []string{v.Str}
	default:
		return nil
	}
}
