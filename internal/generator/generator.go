// Package generator assembles per-tool instruction artifacts from a resolved
// document tree. Each target owns a rendering convention and an output layout;
// the package returns in-memory artifacts and a run manifest, leaving writes
// to the storage boundary.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrwogu/promptscript/content"
	"github.com/mrwogu/promptscript/convention"
	"github.com/mrwogu/promptscript/internal/formatcheck"
	"github.com/mrwogu/promptscript/internal/logging"
	"github.com/mrwogu/promptscript/markdown"
	"github.com/mrwogu/promptscript/pkg/interfaces"
	"github.com/mrwogu/promptscript/standards"
)

// Target names a supported output tool.
type Target string

const (
	TargetClaude   Target = "claude"
	TargetCursor   Target = "cursor"
	TargetWindsurf Target = "windsurf"
	TargetCopilot  Target = "copilot"
)

// Targets lists every supported target in stable order.
func Targets() []Target {
	return []Target{TargetClaude, TargetCursor, TargetWindsurf, TargetCopilot}
}

// ParseTarget resolves a target name, case-insensitively.
func ParseTarget(name string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(name))) {
	case TargetClaude:
		return TargetClaude, nil
	case TargetCursor:
		return TargetCursor, nil
	case TargetWindsurf:
		return TargetWindsurf, nil
	case TargetCopilot:
		return TargetCopilot, nil
	default:
		return "", &UnknownTargetError{Name: name}
	}
}

// Artifact is one generated output file, content held in memory.
type Artifact struct {
	ID       uuid.UUID
	Path     string
	Content  string
	Checksum string
	Target   Target
}

// Result bundles everything produced by one generation run.
type Result struct {
	RunID     uuid.UUID
	Target    Target
	Artifacts []Artifact
	Manifest  *RunManifest
	Warnings  []string
}

// Options tunes a Service.
type Options struct {
	// Strict makes structural drift at the formatter boundary a hard error.
	Strict bool
	// MaxOutputBytes caps total artifact size before a warning is logged.
	// Zero disables the guard.
	MaxOutputBytes int
	// Existing resolves the current content of an output path so targets can
	// carry user edits across regeneration. Nil means no lookup.
	Existing func(path string) ([]byte, error)
	Logger   interfaces.LoggerProvider
}

// Service generates artifacts for every supported target.
type Service struct {
	strict   bool
	maxBytes int
	existing func(path string) ([]byte, error)
	checker  *formatcheck.Checker
	logger   interfaces.Logger
}

// New constructs a Service.
func New(opts Options) *Service {
	return &Service{
		strict:   opts.Strict,
		maxBytes: opts.MaxOutputBytes,
		existing: opts.Existing,
		checker:  formatcheck.New(),
		logger:   logging.GeneratorLogger(opts.Logger),
	}
}

// Generate assembles the artifacts for one target from a resolved document.
// The document root is expected to be an Object or Mixed node whose children
// carry the instruction sections.
func (s *Service) Generate(ctx context.Context, doc *content.Node, target Target) (*Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := s.assemble(doc, target)
	if err != nil {
		return nil, err
	}

	var artifacts []Artifact
	switch target {
	case TargetClaude:
		artifacts = []Artifact{{Path: "CLAUDE.md", Content: body, Target: target}}
	case TargetCopilot:
		artifacts = []Artifact{{Path: ".github/copilot-instructions.md", Content: body, Target: target}}
	case TargetWindsurf:
		artifacts = []Artifact{{Path: ".windsurfrules", Content: body, Target: target}}
	case TargetCursor:
		rulePath := cursorRulePath(doc.Name)
		existing := ""
		if s.existing != nil {
			if data, err := s.existing(rulePath); err == nil && len(data) > 0 {
				existing = string(data)
			}
		}
		mdc, err := composeMDC(doc, body, existing)
		if err != nil {
			return nil, err
		}
		artifacts = []Artifact{{Path: rulePath, Content: mdc, Target: target}}
	default:
		return nil, &UnknownTargetError{Name: string(target)}
	}

	result := &Result{Target: target}
	total := 0
	for i := range artifacts {
		artifacts[i].Checksum = checksum(artifacts[i].Content)
		total += len(artifacts[i].Content)
	}

	result.RunID = runIdentity(doc.Name, target, artifacts)
	for i := range artifacts {
		artifacts[i].ID = artifactIdentity(result.RunID, artifacts[i].Path)
	}
	result.Artifacts = artifacts
	result.Manifest = newRunManifest(result.RunID, target, time.Now().UTC(), artifacts)

	if s.maxBytes > 0 && total > s.maxBytes {
		warning := fmt.Sprintf("output size %d exceeds ceiling %d bytes", total, s.maxBytes)
		result.Warnings = append(result.Warnings, warning)
		s.logger.Warn("generator.size_guard", "target", string(target), "bytes", total, "ceiling", s.maxBytes)
	}

	s.logger.Info("generator.run", "target", string(target), "artifacts", len(artifacts), "run_id", result.RunID.String())
	return result, nil
}

// assemble renders the document sections for a target and verifies the result
// survives the external formatter boundary.
func (s *Service) assemble(doc *content.Node, target Target) (string, error) {
	renderer, err := rendererFor(target)
	if err != nil {
		return "", err
	}

	var sections []string
	for _, name := range sectionOrder(doc) {
		child := content.FindNamedChild(doc, name)
		if child == nil {
			continue
		}
		rendered := s.renderSection(renderer, name, child)
		if rendered != "" {
			sections = append(sections, rendered)
		}
	}

	body := strings.Join(sections, renderer.SectionSeparator())
	body = renderer.WrapRoot(body)

	if target != TargetWindsurf {
		normalized := markdown.NormalizeForPrettier(body)
		if s.strict {
			drift, err := s.checker.CheckStable(body, normalized)
			if err != nil {
				return "", err
			}
			if len(drift) > 0 {
				return "", &DriftError{Target: target, Drift: drift}
			}
		}
		body = normalized
	}
	return body, nil
}

// renderSection dispatches on the section name and node shape.
func (s *Service) renderSection(r *convention.Renderer, name string, node *content.Node) string {
	switch name {
	case "standards":
		return s.renderStandards(r, node)
	case "examples":
		return s.renderExamples(r, node)
	}

	switch node.Kind {
	case content.KindArray:
		items := stringElements(node)
		if len(items) == 0 {
			return ""
		}
		return r.RenderSection(name, r.RenderList(items))
	default:
		text := markdown.StripAllIndent(content.ExtractText(node))
		if text == "" {
			return ""
		}
		return r.RenderSection(name, text)
	}
}

// renderStandards classifies the property bag and renders one sub-section per
// category, preserving the bag's stable order.
func (s *Service) renderStandards(r *convention.Renderer, node *content.Node) string {
	if len(content.GetProperties(node)) == 0 {
		return ""
	}
	classified := standards.Extract(node)

	var parts []string
	for _, key := range classified.Order {
		entry, ok := classified.Section(key)
		if !ok || len(entry.Items) == 0 {
			continue
		}
		parts = append(parts, r.RenderSectionAt(entry.SectionName, r.RenderList(entry.Items), 2))
	}
	if git := classified.Git; git != nil {
		if items := gitItems(git); len(items) > 0 {
			parts = append(parts, r.RenderSectionAt("git", r.RenderList(items), 2))
		}
	}
	if len(classified.Config) > 0 {
		parts = append(parts, r.RenderSectionAt("config", r.RenderList(classified.Config), 2))
	}
	if len(classified.Documentation) > 0 {
		parts = append(parts, r.RenderSectionAt("documentation", r.RenderList(classified.Documentation), 2))
	}
	if d := classified.Diagrams; d != nil {
		if items := diagramItems(d); len(items) > 0 {
			parts = append(parts, r.RenderSectionAt("diagrams", r.RenderList(items), 2))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return r.RenderSection("standards", strings.Join(parts, r.SectionSeparator()))
}

// renderExamples renders each array element as a fenced code block, titled by
// the element's name property when present.
func (s *Service) renderExamples(r *convention.Renderer, node *content.Node) string {
	elements := content.GetArrayElements(node)
	if len(elements) == 0 {
		return ""
	}

	var parts []string
	for _, element := range elements {
		if element.Kind != content.ValueNode || element.Node == nil {
			continue
		}
		example := element.Node
		code := exampleCode(example)
		if code == "" {
			continue
		}
		language := ""
		if v, ok := content.GetProperty(example, "language"); ok {
			language = content.ValueToString(v)
		}
		block := r.RenderCodeBlock(code, language)
		if title, ok := content.GetProperty(example, "title"); ok {
			if t := content.ValueToString(title); t != "" {
				block = r.RenderSectionAt(t, block, 2)
			}
		}
		parts = append(parts, block)
	}
	if len(parts) == 0 {
		return ""
	}
	return r.RenderSection("examples", strings.Join(parts, r.SectionSeparator()))
}

// exampleCode pulls the code body from an example node, accepting either a
// code property or the node's own text.
func exampleCode(example *content.Node) string {
	if v, ok := content.GetProperty(example, "code"); ok {
		if code := content.ValueToString(v); code != "" {
			return strings.Trim(code, "\n")
		}
	}
	return strings.Trim(content.ExtractText(example), "\n")
}

func gitItems(git *standards.Git) []string {
	var items []string
	if git.Format != "" {
		items = append(items, "commit format: "+git.Format)
	}
	if len(git.Types) > 0 {
		items = append(items, "types: "+strings.Join(git.Types, ", "))
	}
	if git.Example != "" {
		items = append(items, "example: "+git.Example)
	}
	items = append(items, git.Extra...)
	return items
}

func diagramItems(d *standards.Diagrams) []string {
	var items []string
	if d.Format != "" {
		items = append(items, "format: "+d.Format)
	}
	if len(d.Types) > 0 {
		items = append(items, "types: "+strings.Join(d.Types, ", "))
	}
	return items
}

// sectionOrder returns the document's child section names, preferred sections
// first, remaining children in document order.
func sectionOrder(doc *content.Node) []string {
	preferred := []string{"context", "techStack", "standards", "examples"}
	seen := map[string]bool{}
	var order []string
	for _, name := range preferred {
		if content.FindNamedChild(doc, name) != nil {
			order = append(order, name)
			seen[name] = true
		}
	}
	for _, child := range doc.Children {
		if child == nil || seen[child.Name] || strings.HasPrefix(child.Name, "__") {
			continue
		}
		order = append(order, child.Name)
		seen[child.Name] = true
	}
	return order
}

func stringElements(node *content.Node) []string {
	var items []string
	for _, element := range content.GetArrayElements(node) {
		if s := content.ValueToString(element); s != "" {
			items = append(items, s)
		}
	}
	return items
}

// rendererFor maps a target onto its convention.
func rendererFor(target Target) (*convention.Renderer, error) {
	switch target {
	case TargetWindsurf:
		return convention.NewRendererFor(convention.XML)
	case TargetClaude, TargetCursor, TargetCopilot:
		return convention.NewRendererFor(convention.Markdown)
	default:
		return nil, &UnknownTargetError{Name: string(target)}
	}
}

func checksum(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

// runIdentity derives the deterministic run ID from the target and the sorted
// artifact checksums, so identical inputs reproduce the same run.
func runIdentity(project string, target Target, artifacts []Artifact) uuid.UUID {
	sums := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		sums = append(sums, artifact.Checksum)
	}
	sort.Strings(sums)
	key := string(target) + ":" + strings.Join(sums, ",")
	return runUUID(project, key)
}
