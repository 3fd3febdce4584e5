// Package standards classifies loosely typed rule bags into flattened,
// categorized rule lists ready for section rendering. Inputs of the wrong
// shape contribute nothing; classification never fails.
package standards

import (
	"sort"
	"strings"

	"github.com/mrwogu/promptscript/content"
)

// Reserved keys extracted into typed fields instead of the generic map.
const (
	keyGit           = "git"
	keyConfig        = "config"
	keyDocumentation = "documentation"
	keyDiagrams      = "diagrams"
)

// errorsSectionName remaps the display section of the errors category. The
// classification key itself stays "errors".
const errorsSectionName = "error-handling"

// Entry is a classified, flattened list of rule strings under one category.
type Entry struct {
	Key         string
	SectionName string
	Items       []string
}

// Git carries the structured git workflow rules. Scalar fields other than
// format and example are preserved as "key: value" extras.
type Git struct {
	Format  string
	Types   []string
	Example string
	Extra   []string
}

// Diagrams carries diagram conventions. Format prefers an explicit format
// field over the legacy tool field.
type Diagrams struct {
	Format string
	Types  []string
}

// Result is the outcome of a classification pass. Sections holds the generic
// categories keyed by bag key; Order lists the keys in deterministic
// (lexicographic) order. Reserved categories never appear in Sections.
type Result struct {
	Sections      map[string]Entry
	Order         []string
	Git           *Git
	Config        []string
	Documentation []string
	Diagrams      *Diagrams
}

// Section returns the entry for key and whether it exists.
func (r Result) Section(key string) (Entry, bool) {
	entry, ok := r.Sections[key]
	return entry, ok
}

// Classifier turns a property bag into a Result. The zero value is not
// usable; construct instances with New.
type Classifier struct {
	legacyFormat bool
	objectFormat bool
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLegacyFormat toggles recognition of the legacy code.style/code.patterns
// shape. Enabled by default.
func WithLegacyFormat(enabled bool) Option {
	return func(c *Classifier) { c.legacyFormat = enabled }
}

// WithObjectFormat toggles generic flattening of object-valued categories.
// Enabled by default.
func WithObjectFormat(enabled bool) Option {
	return func(c *Classifier) { c.objectFormat = enabled }
}

// New constructs a classifier with both format modes enabled.
func New(opts ...Option) *Classifier {
	c := &Classifier{legacyFormat: true, objectFormat: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract classifies node's property bag with default options.
func Extract(node *content.Node) Result {
	return New().Extract(node)
}

// Extract classifies the property bag of an Object or Mixed node. Other node
// shapes yield an empty result.
func (c *Classifier) Extract(node *content.Node) Result {
	result := Result{Sections: map[string]Entry{}}
	props := content.GetProperties(node)
	if len(props) == 0 {
		return result
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := props[key]
		switch key {
		case keyGit:
			result.Git = extractGit(value)
		case keyConfig:
			result.Config = flattenFreeform(value)
		case keyDocumentation:
			result.Documentation = flattenFreeform(value)
		case keyDiagrams:
			result.Diagrams = extractDiagrams(value)
		default:
			items := c.classifyValue(key, value)
			if len(items) == 0 {
				continue
			}
			entry := Entry{Key: key, SectionName: sectionNameFor(key), Items: items}
			result.Sections[key] = entry
			result.Order = append(result.Order, key)
		}
	}
	return result
}

func sectionNameFor(key string) string {
	if key == "errors" {
		return errorsSectionName
	}
	return key
}

func (c *Classifier) classifyValue(key string, value content.Value) []string {
	switch value.Kind {
	case content.ValueList:
		return renderListItems(value.List)
	case content.ValueString:
		trimmed := strings.TrimSpace(value.Str)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	case content.ValueMap:
		if c.legacyFormat && key == "code" {
			if items := legacyCodeItems(value.Map); items != nil {
				return items
			}
		}
		if c.objectFormat {
			return flattenObject(value.Map)
		}
		return nil
	default:
		return nil
	}
}

// legacyCodeItems handles the historic code: { style: [...], patterns: [...] }
// shape, concatenating style then patterns into one list. Returns nil when
// neither sub-list is present so callers can fall through to generic
// flattening.
func legacyCodeItems(props map[string]content.Value) []string {
	style, hasStyle := props["style"]
	patterns, hasPatterns := props["patterns"]
	if (!hasStyle || style.Kind != content.ValueList) && (!hasPatterns || patterns.Kind != content.ValueList) {
		return nil
	}
	var items []string
	if hasStyle && style.Kind == content.ValueList {
		items = append(items, renderListItems(style.List)...)
	}
	if hasPatterns && patterns.Kind == content.ValueList {
		items = append(items, renderListItems(patterns.List)...)
	}
	return items
}

// flattenObject turns an object value into bare rule strings: array sub-values
// splice their rendered elements in, boolean true pushes the bare sub-key, and
// non-empty strings push "subkey: value". Everything else is skipped.
func flattenObject(props map[string]content.Value) []string {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var items []string
	for _, key := range keys {
		value := props[key]
		switch value.Kind {
		case content.ValueList:
			items = append(items, renderListItems(value.List)...)
		case content.ValueBool:
			if value.Bool {
				items = append(items, key)
			}
		case content.ValueString:
			trimmed := strings.TrimSpace(value.Str)
			if trimmed != "" {
				items = append(items, key+": "+trimmed)
			}
		}
	}
	return items
}

// flattenFreeform accepts the scalar, list, or object shapes permitted for the
// config and documentation categories.
func flattenFreeform(value content.Value) []string {
	switch value.Kind {
	case content.ValueString:
		trimmed := strings.TrimSpace(value.Str)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	case content.ValueList:
		items := renderListItems(value.List)
		if len(items) == 0 {
			return nil
		}
		return items
	case content.ValueMap:
		items := flattenObject(value.Map)
		if len(items) == 0 {
			return nil
		}
		return items
	default:
		return nil
	}
}

func extractGit(value content.Value) *Git {
	if value.Kind != content.ValueMap || len(value.Map) == 0 {
		return nil
	}
	git := &Git{}
	keys := make([]string, 0, len(value.Map))
	for key := range value.Map {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		sub := value.Map[key]
		switch key {
		case "format":
			git.Format = strings.TrimSpace(content.ValueToString(sub))
		case "types":
			if sub.Kind == content.ValueList {
				git.Types = renderListItems(sub.List)
			}
		case "example":
			git.Example = strings.TrimSpace(content.ValueToString(sub))
		default:
			if rendered := strings.TrimSpace(content.ValueToString(sub)); rendered != "" {
				git.Extra = append(git.Extra, key+": "+rendered)
			}
		}
	}
	if git.Format == "" && git.Example == "" && len(git.Types) == 0 && len(git.Extra) == 0 {
		return nil
	}
	return git
}

func extractDiagrams(value content.Value) *Diagrams {
	if value.Kind != content.ValueMap || len(value.Map) == 0 {
		return nil
	}
	d := &Diagrams{}
	if format, ok := value.Map["format"]; ok {
		d.Format = strings.TrimSpace(content.ValueToString(format))
	}
	if d.Format == "" {
		if tool, ok := value.Map["tool"]; ok {
			d.Format = strings.TrimSpace(content.ValueToString(tool))
		}
	}
	if types, ok := value.Map["types"]; ok && types.Kind == content.ValueList {
		d.Types = renderListItems(types.List)
	}
	if d.Format == "" && len(d.Types) == 0 {
		return nil
	}
	return d
}

// renderListItems converts list elements to strings, dropping empty results.
func renderListItems(values []content.Value) []string {
	var items []string
	for _, v := range values {
		rendered := content.ValueToString(v)
		if strings.TrimSpace(rendered) == "" {
			continue
		}
		items = append(items, rendered)
	}
	return items
}
