package convention

import (
	"regexp"
	"strconv"
	"strings"
)

// sectionSeparator joins rendered sections; callers place it between sections
// regardless of convention.
const sectionSeparator = "\n\n"

var repeatBlock = regexp.MustCompile(`\{\{#repeat\s+([^}\s]+)\}\}(.*?)\{\{/repeat\}\}`)

// Renderer expands a convention's templates into target-shaped text. A
// renderer is stateless and safe for concurrent use.
type Renderer struct {
	conv Convention
}

// NewRenderer wraps a convention value. Values are taken as-is; shape
// validation is the caller's responsibility (see FromMap).
func NewRenderer(conv Convention) *Renderer {
	if conv.CodeBlockDelimiter == "" {
		conv.CodeBlockDelimiter = DefaultCodeBlockDelimiter
	}
	return &Renderer{conv: conv}
}

// NewRendererFor resolves a built-in convention by name. Unknown names fail
// with an UnknownConventionError.
func NewRendererFor(name string) (*Renderer, error) {
	conv, err := Builtin(name)
	if err != nil {
		return nil, err
	}
	return NewRenderer(conv), nil
}

// Convention returns the wrapped convention value.
func (r *Renderer) Convention() Convention {
	return r.conv
}

// RenderSection renders a level-1 section.
func (r *Renderer) RenderSection(name, body string) string {
	return r.RenderSectionAt(name, body, 1)
}

// RenderSectionAt expands the section templates for name at the given nesting
// level. Tag-style conventions (those carrying an indent) wrap the body
// between start and end with per-level indentation; heading-style conventions
// emit start followed by the body, appending end only when non-empty.
func (r *Renderer) RenderSectionAt(name, body string, level int) string {
	if level < 1 {
		level = 1
	}
	display := TransformName(r.conv.NameTransform, name)
	start := expandTemplate(r.conv.Section.Start, display, level)
	end := expandTemplate(r.conv.Section.End, display, level)

	if r.conv.Indent != "" {
		if body == "" {
			return start + "\n" + end
		}
		indent := strings.Repeat(r.conv.Indent, level)
		return start + "\n" + indentLines(body, indent) + "\n" + end
	}

	out := start
	if body != "" {
		out += "\n" + body
	}
	if end != "" {
		out += "\n" + end
	}
	return out
}

// RenderList joins items with newlines, prefixing each per the convention's
// list style. The numbered style deliberately repeats "1." on every line; the
// downstream Markdown formatter renumbers ordered lists itself.
func (r *Renderer) RenderList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := listPrefix(r.conv.ListStyle)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, prefix+item)
	}
	return strings.Join(lines, "\n")
}

// RenderCodeBlock wraps code between the convention's code block delimiter,
// attaching the language to the opening delimiter when provided.
func (r *Renderer) RenderCodeBlock(code, language string) string {
	delim := r.conv.CodeBlockDelimiter
	return delim + language + "\n" + code + "\n" + delim
}

// WrapRoot brackets content with the convention's root wrapper when one is
// configured and returns content unchanged otherwise.
func (r *Renderer) WrapRoot(content string) string {
	if r.conv.Root == nil {
		return content
	}
	return r.conv.Root.Start + "\n" + content + "\n" + r.conv.Root.End
}

// SectionSeparator returns the blank-line separator placed between sections.
func (r *Renderer) SectionSeparator() string {
	return sectionSeparator
}

func listPrefix(style ListStyle) string {
	switch style {
	case ListAsterisk:
		return "* "
	case ListBullet:
		return "• "
	case ListNumbered:
		return "1. "
	default:
		return "- "
	}
}

// expandTemplate substitutes {{#repeat n}}X{{/repeat}} blocks and the
// {{name}} placeholder. The repeat count is a literal integer or the variable
// level; anything else repeats zero times.
func expandTemplate(template, name string, level int) string {
	expanded := repeatBlock.ReplaceAllStringFunc(template, func(match string) string {
		groups := repeatBlock.FindStringSubmatch(match)
		if groups == nil {
			return ""
		}
		count := 0
		switch arg := groups[1]; arg {
		case "level":
			count = level
		default:
			if n, err := strconv.Atoi(arg); err == nil && n > 0 {
				count = n
			}
		}
		return strings.Repeat(groups[2], count)
	})
	return strings.ReplaceAll(expanded, "{{name}}", name)
}

func indentLines(body, indent string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
