// Package convention models the declarative rendering conventions that shape
// sections, lists, and code blocks for each target tool, and implements the
// template renderer that expands them.
package convention

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mrwogu/promptscript/internal/validation"
)

// NameTransform selects the casing applied to section names before templating.
type NameTransform string

const (
	TransformNone   NameTransform = "none"
	TransformKebab  NameTransform = "kebab-case"
	TransformPascal NameTransform = "PascalCase"
	TransformCamel  NameTransform = "camelCase"
)

// ListStyle selects the per-line prefix used when rendering lists.
type ListStyle string

const (
	ListDash     ListStyle = "dash"
	ListAsterisk ListStyle = "asterisk"
	ListBullet   ListStyle = "bullet"
	ListNumbered ListStyle = "numbered"
)

// DefaultCodeBlockDelimiter is used when a convention does not override it.
const DefaultCodeBlockDelimiter = "```"

// SectionTemplate is the start/end template pair expanded for every section.
// Templates may reference {{name}} and {{#repeat n}}...{{/repeat}} where n is
// a literal count or the variable level.
type SectionTemplate struct {
	Start string
	End   string
}

// RootWrapper optionally brackets the whole document.
type RootWrapper struct {
	Start string
	End   string
}

// Convention is an immutable description of one target syntax. Construct
// values via Builtin, FromMap, or a struct literal; renderers never mutate
// them.
type Convention struct {
	Name               string
	Section            SectionTemplate
	NameTransform      NameTransform
	ListStyle          ListStyle
	CodeBlockDelimiter string
	Root               *RootWrapper
	// Indent is the per-level indentation applied to section bodies when the
	// section syntax is tag based (XML-like). Empty for heading-style syntax.
	Indent string
}

// Builtin convention names.
const (
	XML      = "xml"
	Markdown = "markdown"
)

func builtinXML() Convention {
	return Convention{
		Name:               XML,
		Section:            SectionTemplate{Start: "<{{name}}>", End: "</{{name}}>"},
		NameTransform:      TransformKebab,
		ListStyle:          ListDash,
		CodeBlockDelimiter: DefaultCodeBlockDelimiter,
		Indent:             "  ",
	}
}

func builtinMarkdown() Convention {
	return Convention{
		Name:               Markdown,
		Section:            SectionTemplate{Start: "{{#repeat level}}#{{/repeat}}# {{name}}", End: ""},
		NameTransform:      TransformNone,
		ListStyle:          ListDash,
		CodeBlockDelimiter: DefaultCodeBlockDelimiter,
	}
}

// Builtin returns the registered convention for name. Unknown names fail with
// an UnknownConventionError; conventions supplied as values never pass
// through this lookup.
func Builtin(name string) (Convention, error) {
	switch name {
	case XML:
		return builtinXML(), nil
	case Markdown:
		return builtinMarkdown(), nil
	default:
		return Convention{}, &UnknownConventionError{Name: name}
	}
}

// BuiltinNames lists the registered convention names.
func BuiltinNames() []string {
	return []string{XML, Markdown}
}

//go:embed schema.json
var conventionSchemaJSON []byte

// FromMap builds a convention from a decoded YAML/JSON definition, validating
// the shape against the embedded JSON schema first. Field names mirror the
// configuration surface: section.start, section.end, nameTransform,
// listStyle, codeBlockDelimiter, rootWrapper, indent.
func FromMap(definition map[string]any) (Convention, error) {
	schema, err := validation.Compile("convention.json", conventionSchemaJSON)
	if err != nil {
		return Convention{}, err
	}
	if err := validation.ValidatePayload(schema, definition); err != nil {
		return Convention{}, fmt.Errorf("convention: invalid definition: %w", err)
	}

	conv := Convention{
		NameTransform:      TransformNone,
		ListStyle:          ListDash,
		CodeBlockDelimiter: DefaultCodeBlockDelimiter,
	}
	if name, ok := definition["name"].(string); ok {
		conv.Name = strings.TrimSpace(name)
	}
	if section, ok := definition["section"].(map[string]any); ok {
		if start, ok := section["start"].(string); ok {
			conv.Section.Start = start
		}
		if end, ok := section["end"].(string); ok {
			conv.Section.End = end
		}
	}
	if transform, ok := definition["nameTransform"].(string); ok {
		conv.NameTransform = NameTransform(transform)
	}
	if style, ok := definition["listStyle"].(string); ok {
		conv.ListStyle = ListStyle(style)
	}
	if delim, ok := definition["codeBlockDelimiter"].(string); ok && delim != "" {
		conv.CodeBlockDelimiter = delim
	}
	if wrapper, ok := definition["rootWrapper"].(map[string]any); ok {
		root := &RootWrapper{}
		if start, ok := wrapper["start"].(string); ok {
			root.Start = start
		}
		if end, ok := wrapper["end"].(string); ok {
			root.End = end
		}
		conv.Root = root
	}
	if indent, ok := definition["indent"].(string); ok {
		conv.Indent = indent
	}
	return conv, nil
}
