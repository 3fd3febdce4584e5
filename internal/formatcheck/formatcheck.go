// Package formatcheck builds structural profiles of Markdown documents so the
// generator can verify that normalization did not change document meaning.
// Two documents with equal profiles render the same heading outline, code
// blocks, list shape, and table shape even if whitespace and escaping differ.
package formatcheck

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Heading records one heading in document order.
type Heading struct {
	Level int
	Text  string
}

// CodeBlock records one fenced code block in document order. Content is the
// raw block body, which must survive normalization byte for byte.
type CodeBlock struct {
	Language string
	Content  string
}

// Profile is the structural fingerprint of a Markdown document.
type Profile struct {
	Headings   []Heading
	CodeBlocks []CodeBlock
	ListItems  int
	TableRows  int
}

// Checker parses Markdown with the GFM extension set and extracts profiles.
// A single Checker is stateless and safe for reuse.
type Checker struct {
	engine goldmark.Markdown
}

// New constructs a Checker with GFM tables and lists enabled, matching the
// dialect the generated artifacts are written in.
func New() *Checker {
	return &Checker{
		engine: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Profile parses source and collects its structural fingerprint.
func (c *Checker) Profile(source string) (Profile, error) {
	src := []byte(source)
	root := c.engine.Parser().Parse(text.NewReader(src))

	var profile Profile
	err := ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			profile.Headings = append(profile.Headings, Heading{
				Level: n.Level,
				Text:  headingText(n, src),
			})
		case *ast.FencedCodeBlock:
			profile.CodeBlocks = append(profile.CodeBlocks, CodeBlock{
				Language: string(n.Language(src)),
				Content:  blockContent(n, src),
			})
		case *ast.ListItem:
			profile.ListItems++
		case *east.TableRow:
			profile.TableRows++
		case *east.TableHeader:
			profile.TableRows++
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return Profile{}, fmt.Errorf("formatcheck: walk failed: %w", err)
	}
	return profile, nil
}

// Drift compares two profiles and describes every structural difference. An
// empty result means the documents are structurally equivalent.
func Drift(before, after Profile) []string {
	var drift []string

	if len(before.Headings) != len(after.Headings) {
		drift = append(drift, fmt.Sprintf("heading count changed from %d to %d", len(before.Headings), len(after.Headings)))
	} else {
		for i := range before.Headings {
			b, a := before.Headings[i], after.Headings[i]
			if b.Level != a.Level || b.Text != a.Text {
				drift = append(drift, fmt.Sprintf("heading %d changed from h%d %q to h%d %q", i, b.Level, b.Text, a.Level, a.Text))
			}
		}
	}

	if len(before.CodeBlocks) != len(after.CodeBlocks) {
		drift = append(drift, fmt.Sprintf("code block count changed from %d to %d", len(before.CodeBlocks), len(after.CodeBlocks)))
	} else {
		for i := range before.CodeBlocks {
			b, a := before.CodeBlocks[i], after.CodeBlocks[i]
			if b.Language != a.Language {
				drift = append(drift, fmt.Sprintf("code block %d language changed from %q to %q", i, b.Language, a.Language))
			}
			if b.Content != a.Content {
				drift = append(drift, fmt.Sprintf("code block %d content changed", i))
			}
		}
	}

	if before.ListItems != after.ListItems {
		drift = append(drift, fmt.Sprintf("list item count changed from %d to %d", before.ListItems, after.ListItems))
	}
	if before.TableRows != after.TableRows {
		drift = append(drift, fmt.Sprintf("table row count changed from %d to %d", before.TableRows, after.TableRows))
	}
	return drift
}

// CheckStable reports drift between source and its normalized form.
func (c *Checker) CheckStable(source, normalized string) ([]string, error) {
	before, err := c.Profile(source)
	if err != nil {
		return nil, err
	}
	after, err := c.Profile(normalized)
	if err != nil {
		return nil, err
	}
	return Drift(before, after), nil
}

func headingText(n *ast.Heading, src []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		if cs, ok := child.(*ast.CodeSpan); ok {
			for g := cs.FirstChild(); g != nil; g = g.NextSibling() {
				if t, ok := g.(*ast.Text); ok {
					b.Write(t.Segment.Value(src))
				}
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func blockContent(n *ast.FencedCodeBlock, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(src))
	}
	return b.String()
}
