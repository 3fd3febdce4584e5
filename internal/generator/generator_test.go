package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrwogu/promptscript/content"
)

func sampleDocument() *content.Node {
	doc := content.ObjectNode("demo-api", map[string]content.Value{
		"description": content.StringValue("Rules for the demo API service"),
		"globs":       content.ListValue(content.StringValue("src/**/*.ts")),
	})
	doc.Children = []*content.Node{
		content.TextNode("context", "A REST API for demos."),
		content.ArrayNode("techStack",
			content.StringValue("go"),
			content.StringValue("postgres"),
		),
		content.ObjectNode("standards", map[string]content.Value{
			"testing": content.ListValue(
				content.StringValue("table driven tests"),
				content.StringValue("no sleeps"),
			),
			"errors": content.ListValue(content.StringValue("wrap with context")),
			"git": content.MapValue(map[string]content.Value{
				"format": content.StringValue("conventional"),
			}),
		}),
		content.ArrayNode("examples",
			content.NodeValue(content.MixedNode("handler", "", map[string]content.Value{
				"title":    content.StringValue("Handler"),
				"language": content.StringValue("go"),
				"code":     content.StringValue("func Handle() {}"),
			})),
		),
	}
	return doc
}

func TestGenerateClaude(t *testing.T) {
	svc := New(Options{})
	result, err := svc.Generate(context.Background(), sampleDocument(), TargetClaude)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(result.Artifacts) != 1 {
		t.Fatalf("expected one artifact, got %d", len(result.Artifacts))
	}
	artifact := result.Artifacts[0]
	if artifact.Path != "CLAUDE.md" {
		t.Fatalf("expected CLAUDE.md, got %q", artifact.Path)
	}
	for _, want := range []string{
		"## context",
		"A REST API for demos.",
		"## techStack",
		"- go",
		"- postgres",
		"## standards",
		"### testing",
		"- table driven tests",
		"### error-handling",
		"- wrap with context",
		"### git",
		"- commit format: conventional",
		"## examples",
		"### Handler",
		"```go",
		"func Handle() {}",
	} {
		if !strings.Contains(artifact.Content, want) {
			t.Fatalf("artifact missing %q:\n%s", want, artifact.Content)
		}
	}
	if artifact.Checksum == "" {
		t.Fatal("expected checksum")
	}
}

func TestGenerateWindsurfUsesXMLConvention(t *testing.T) {
	svc := New(Options{})
	result, err := svc.Generate(context.Background(), sampleDocument(), TargetWindsurf)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	artifact := result.Artifacts[0]
	if artifact.Path != ".windsurfrules" {
		t.Fatalf("expected .windsurfrules, got %q", artifact.Path)
	}
	if !strings.Contains(artifact.Content, "<tech-stack>") {
		t.Fatalf("expected kebab-cased XML section, got:\n%s", artifact.Content)
	}
	if !strings.Contains(artifact.Content, "</tech-stack>") {
		t.Fatalf("expected closing tag, got:\n%s", artifact.Content)
	}
}

func TestGenerateCursorEmitsFrontmatter(t *testing.T) {
	svc := New(Options{})
	result, err := svc.Generate(context.Background(), sampleDocument(), TargetCursor)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	artifact := result.Artifacts[0]
	if artifact.Path != ".cursor/rules/demo-api.mdc" {
		t.Fatalf("unexpected rule path %q", artifact.Path)
	}
	if !strings.HasPrefix(artifact.Content, "---\n") {
		t.Fatalf("expected frontmatter prefix, got %q", artifact.Content[:20])
	}
	if !strings.Contains(artifact.Content, "description: Rules for the demo API service") {
		t.Fatalf("expected description in frontmatter:\n%s", artifact.Content)
	}
	if !strings.Contains(artifact.Content, "src/**/*.ts") {
		t.Fatalf("expected globs in frontmatter:\n%s", artifact.Content)
	}
	if !strings.Contains(artifact.Content, "alwaysApply: true") {
		t.Fatalf("expected alwaysApply in frontmatter:\n%s", artifact.Content)
	}
}

func TestGenerateCursorPreservesUserFrontmatterKeys(t *testing.T) {
	existing := "---\ndescription: old\ncustomKey: keep-me\n---\n\nold body\n"
	svc := New(Options{
		Existing: func(path string) ([]byte, error) {
			if path != ".cursor/rules/demo-api.mdc" {
				t.Fatalf("unexpected existing lookup %q", path)
			}
			return []byte(existing), nil
		},
	})

	result, err := svc.Generate(context.Background(), sampleDocument(), TargetCursor)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	got := result.Artifacts[0].Content
	if !strings.Contains(got, "customKey: keep-me") {
		t.Fatalf("expected user key to survive regeneration:\n%s", got)
	}
	if strings.Contains(got, "description: old") {
		t.Fatalf("generated description must win over stale one:\n%s", got)
	}
}

func TestGenerateCopilotPath(t *testing.T) {
	svc := New(Options{})
	result, err := svc.Generate(context.Background(), sampleDocument(), TargetCopilot)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if result.Artifacts[0].Path != ".github/copilot-instructions.md" {
		t.Fatalf("unexpected path %q", result.Artifacts[0].Path)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	svc := New(Options{})
	a, err := svc.Generate(context.Background(), sampleDocument(), TargetClaude)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	b, err := svc.Generate(context.Background(), sampleDocument(), TargetClaude)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if a.RunID != b.RunID {
		t.Fatalf("expected identical run IDs, got %s and %s", a.RunID, b.RunID)
	}
	if a.Artifacts[0].Checksum != b.Artifacts[0].Checksum {
		t.Fatal("expected identical checksums for identical input")
	}
	if a.Artifacts[0].ID != b.Artifacts[0].ID {
		t.Fatal("expected identical artifact IDs for identical input")
	}
}

func TestGenerateNilDocument(t *testing.T) {
	_, err := New(Options{}).Generate(context.Background(), nil, TargetClaude)
	if !errors.Is(err, ErrNilDocument) {
		t.Fatalf("expected ErrNilDocument, got %v", err)
	}
}

func TestGenerateUnknownTarget(t *testing.T) {
	_, err := New(Options{}).Generate(context.Background(), sampleDocument(), Target("zed"))
	if !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}

	var typed *UnknownTargetError
	if !errors.As(err, &typed) || typed.Name != "zed" {
		t.Fatalf("expected UnknownTargetError carrying the name, got %v", err)
	}
}

func TestGenerateSizeGuardWarnsWithoutFailing(t *testing.T) {
	svc := New(Options{MaxOutputBytes: 10})
	result, err := svc.Generate(context.Background(), sampleDocument(), TargetClaude)
	if err != nil {
		t.Fatalf("size guard must never fail the run: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one size warning, got %v", result.Warnings)
	}
}

func TestGenerateSkipsEmptySections(t *testing.T) {
	doc := content.ObjectNode("bare", nil)
	doc.Children = []*content.Node{
		content.TextNode("context", "   "),
		content.ArrayNode("techStack"),
	}

	result, err := New(Options{}).Generate(context.Background(), doc, TargetClaude)
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if strings.Contains(result.Artifacts[0].Content, "## context") {
		t.Fatalf("blank section must be skipped:\n%s", result.Artifacts[0].Content)
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    Target
		wantErr bool
	}{
		{in: "claude", want: TargetClaude},
		{in: " Cursor ", want: TargetCursor},
		{in: "WINDSURF", want: TargetWindsurf},
		{in: "copilot", want: TargetCopilot},
		{in: "zed", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseTarget(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseTarget(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseTarget(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseTarget(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
