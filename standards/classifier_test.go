package standards

import (
	"reflect"
	"testing"

	"github.com/mrwogu/promptscript/content"
)

func bag(props map[string]content.Value) *content.Node {
	return content.ObjectNode("standards", props)
}

func TestExtractArrayAndStringValues(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"typescript": content.ListValue(content.StringValue("a"), content.StringValue("b")),
		"security":   content.StringValue("  never log secrets  "),
		"empty":      content.StringValue("   "),
		"blanklist":  content.ListValue(content.StringValue(""), content.StringValue("  ")),
	}))

	if len(result.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d (%v)", len(result.Sections), result.Order)
	}
	ts, ok := result.Section("typescript")
	if !ok || !reflect.DeepEqual(ts.Items, []string{"a", "b"}) {
		t.Fatalf("typescript items mismatch: %#v", ts)
	}
	sec, ok := result.Section("security")
	if !ok || !reflect.DeepEqual(sec.Items, []string{"never log secrets"}) {
		t.Fatalf("security items mismatch: %#v", sec)
	}
}

func TestExtractSeparatesReservedGit(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"typescript": content.ListValue(content.StringValue("a"), content.StringValue("b")),
		"git": content.MapValue(map[string]content.Value{
			"format": content.StringValue("X"),
		}),
	}))

	if len(result.Sections) != 1 {
		t.Fatalf("expected standards map of size 1, got %d", len(result.Sections))
	}
	if _, ok := result.Section("git"); ok {
		t.Fatalf("git must never appear in the generic standards map")
	}
	if result.Git == nil || result.Git.Format != "X" {
		t.Fatalf("expected git format X, got %#v", result.Git)
	}
}

func TestExtractGitFields(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"git": content.MapValue(map[string]content.Value{
			"format":  content.StringValue("conventional"),
			"types":   content.ListValue(content.StringValue("feat"), content.StringValue("fix")),
			"example": content.StringValue("feat: add parser"),
			"scope":   content.StringValue("required"),
		}),
	}))

	git := result.Git
	if git == nil {
		t.Fatalf("expected git standards")
	}
	if git.Format != "conventional" || git.Example != "feat: add parser" {
		t.Fatalf("git scalar fields mismatch: %#v", git)
	}
	if !reflect.DeepEqual(git.Types, []string{"feat", "fix"}) {
		t.Fatalf("git types mismatch: %#v", git.Types)
	}
	if !reflect.DeepEqual(git.Extra, []string{"scope: required"}) {
		t.Fatalf("git extras mismatch: %#v", git.Extra)
	}
}

func TestExtractDiagramsPrefersFormatOverTool(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"diagrams": content.MapValue(map[string]content.Value{
			"format": content.StringValue("mermaid"),
			"tool":   content.StringValue("plantuml"),
			"types":  content.ListValue(content.StringValue("sequence")),
		}),
	}))
	if result.Diagrams == nil || result.Diagrams.Format != "mermaid" {
		t.Fatalf("expected mermaid format, got %#v", result.Diagrams)
	}

	legacy := Extract(bag(map[string]content.Value{
		"diagrams": content.MapValue(map[string]content.Value{
			"tool": content.StringValue("plantuml"),
		}),
	}))
	if legacy.Diagrams == nil || legacy.Diagrams.Format != "plantuml" {
		t.Fatalf("expected legacy tool fallback, got %#v", legacy.Diagrams)
	}
}

func TestExtractLegacyCodeShape(t *testing.T) {
	props := map[string]content.Value{
		"code": content.MapValue(map[string]content.Value{
			"style":    content.ListValue(content.StringValue("tabs")),
			"patterns": content.ListValue(content.StringValue("repository")),
		}),
	}

	result := Extract(bag(props))
	code, ok := result.Section("code")
	if !ok || !reflect.DeepEqual(code.Items, []string{"tabs", "repository"}) {
		t.Fatalf("legacy code items mismatch: %#v", code)
	}

	// With legacy support off the same shape flattens generically.
	result = New(WithLegacyFormat(false)).Extract(bag(props))
	code, ok = result.Section("code")
	if !ok || !reflect.DeepEqual(code.Items, []string{"repository", "tabs"}) {
		t.Fatalf("generic flattening mismatch: %#v", code)
	}
}

func TestExtractObjectFlattening(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"testing": content.MapValue(map[string]content.Value{
			"frameworks": content.ListValue(content.StringValue("go test"), content.StringValue("fuzz")),
			"coverage":   content.StringValue("80%"),
			"parallel":   content.BoolValue(true),
			"skipped":    content.BoolValue(false),
			"ignored":    content.Value{},
		}),
	}))

	entry, ok := result.Section("testing")
	if !ok {
		t.Fatalf("expected testing entry")
	}
	want := []string{"coverage: 80%", "go test", "fuzz", "parallel"}
	if !reflect.DeepEqual(entry.Items, want) {
		t.Fatalf("flattened items = %#v, want %#v", entry.Items, want)
	}
}

func TestExtractObjectFormatDisabled(t *testing.T) {
	result := New(WithObjectFormat(false)).Extract(bag(map[string]content.Value{
		"testing": content.MapValue(map[string]content.Value{
			"coverage": content.StringValue("80%"),
		}),
	}))
	if len(result.Sections) != 0 {
		t.Fatalf("object values must be ignored when object format is disabled: %#v", result.Sections)
	}
}

func TestExtractErrorsSectionRename(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"errors": content.ListValue(content.StringValue("wrap with context")),
	}))
	entry, ok := result.Section("errors")
	if !ok {
		t.Fatalf("expected errors entry under its classification key")
	}
	if entry.SectionName != "error-handling" {
		t.Fatalf("expected error-handling section name, got %q", entry.SectionName)
	}
}

func TestExtractEmptyAndWrongShapes(t *testing.T) {
	if result := Extract(nil); len(result.Sections) != 0 {
		t.Fatalf("nil node must yield empty result")
	}
	if result := Extract(content.TextNode("standards", "prose")); len(result.Sections) != 0 {
		t.Fatalf("text node must yield empty result")
	}
	result := Extract(bag(map[string]content.Value{
		"git":           content.MapValue(map[string]content.Value{}),
		"documentation": content.StringValue(""),
		"config":        content.ListValue(),
	}))
	if result.Git != nil || result.Documentation != nil || result.Config != nil {
		t.Fatalf("empty reserved structures must produce no fields: %#v", result)
	}
}

func TestExtractFreeformConfigAndDocumentation(t *testing.T) {
	result := Extract(bag(map[string]content.Value{
		"config":        content.ListValue(content.StringValue("use env vars")),
		"documentation": content.MapValue(map[string]content.Value{"style": content.StringValue("godoc")}),
	}))
	if !reflect.DeepEqual(result.Config, []string{"use env vars"}) {
		t.Fatalf("config mismatch: %#v", result.Config)
	}
	if !reflect.DeepEqual(result.Documentation, []string{"style: godoc"}) {
		t.Fatalf("documentation mismatch: %#v", result.Documentation)
	}
}
