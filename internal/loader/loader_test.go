package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mrwogu/promptscript/content"
)

const sampleDoc = `name: demo-api
description: Rules for the demo API
globs:
  - src/**/*.ts
sections:
  context: |
    A REST API for demos.
  techStack:
    - go
    - postgres
  standards:
    testing:
      - table driven tests
    errors:
      - wrap with context
  examples:
    - title: Handler
      language: go
      code: |
        func Handle() {}
  notes:
    _text: Free-form prose with extras.
    reviewed: true
`

func TestParseBuildsTree(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if doc.Name != "demo-api" {
		t.Fatalf("expected document name demo-api, got %q", doc.Name)
	}
	if v, ok := content.GetProperty(doc, "description"); !ok || v.Str != "Rules for the demo API" {
		t.Fatalf("expected description property, got %+v ok=%v", v, ok)
	}
	if v, ok := content.GetProperty(doc, "globs"); !ok || v.Kind != content.ValueList || len(v.List) != 1 {
		t.Fatalf("expected globs list, got %+v", v)
	}

	if len(doc.Children) != 5 {
		t.Fatalf("expected 5 sections, got %d", len(doc.Children))
	}
	names := make([]string, 0, len(doc.Children))
	for _, child := range doc.Children {
		names = append(names, child.Name)
	}
	want := []string{"context", "techStack", "standards", "examples", "notes"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("section order: got %v, want %v", names, want)
		}
	}
}

func TestParseSectionShapes(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	context := content.FindNamedChild(doc, "context")
	if context == nil || context.Kind != content.KindText {
		t.Fatalf("expected Text context section, got %+v", context)
	}
	if got := content.ExtractText(context); got != "A REST API for demos." {
		t.Fatalf("unexpected context text %q", got)
	}

	tech := content.FindNamedChild(doc, "techStack")
	if tech == nil || tech.Kind != content.KindArray {
		t.Fatalf("expected Array techStack, got %+v", tech)
	}
	if len(tech.Elements) != 2 || tech.Elements[0].Str != "go" {
		t.Fatalf("unexpected techStack elements %+v", tech.Elements)
	}

	std := content.FindNamedChild(doc, "standards")
	if std == nil || std.Kind != content.KindObject {
		t.Fatalf("expected Object standards, got %+v", std)
	}
	if v, ok := content.GetProperty(std, "testing"); !ok || v.Kind != content.ValueList {
		t.Fatalf("expected testing list, got %+v", v)
	}

	notes := content.FindNamedChild(doc, "notes")
	if notes == nil || notes.Kind != content.KindMixed {
		t.Fatalf("expected Mixed notes, got %+v", notes)
	}
	if got := content.ExtractText(notes); got != "Free-form prose with extras." {
		t.Fatalf("unexpected notes text %q", got)
	}
	if v, ok := content.GetProperty(notes, "reviewed"); !ok || v.Kind != content.ValueBool || !v.Bool {
		t.Fatalf("expected reviewed=true property, got %+v", v)
	}
}

func TestParseExampleElements(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	examples := content.FindNamedChild(doc, "examples")
	elements := content.GetArrayElements(examples)
	if len(elements) != 1 {
		t.Fatalf("expected one example, got %d", len(elements))
	}
	example := elements[0]
	if example.Kind != content.ValueNode || example.Node == nil {
		t.Fatalf("expected nested node element, got %+v", example)
	}
	if v, ok := content.GetProperty(example.Node, "language"); !ok || v.Str != "go" {
		t.Fatalf("expected language property, got %+v", v)
	}
	if v, ok := content.GetProperty(example.Node, "code"); !ok || !strings.Contains(v.Str, "func Handle()") {
		t.Fatalf("expected code property, got %+v", v)
	}
}

func TestParseRecordsPositions(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	tech := content.FindNamedChild(doc, "techStack")
	if tech.Loc.Line == 0 {
		t.Fatal("expected source line on section node")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "scalar root", in: "just text"},
		{name: "missing name", in: "sections:\n  context: hi\n"},
		{name: "bad sections shape", in: "name: x\nsections: [a, b]\n"},
		{name: "invalid yaml", in: "name: [unclosed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.in)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadStampsFilePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if doc.Loc.File != path {
		t.Fatalf("expected file stamp %q, got %q", path, doc.Loc.File)
	}
	if doc.Children[0].Loc.File != path {
		t.Fatalf("expected child file stamp, got %q", doc.Children[0].Loc.File)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
