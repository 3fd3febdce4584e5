// Package markdown normalizes raw text fragments so they survive a round
// trip through an opinionated external Markdown formatter without content
// drift. Fragments arrive from heterogeneous sources (verbatim prose,
// extracted sub-documents) with inconsistent indentation; the normalizer
// reindents, inserts the blank lines the formatter would demand, escapes
// constructs the formatter would mangle, and reflows pipe tables.
//
// Both entry points are pure, idempotent, and never fail: malformed input
// (unmatched fences, truncated tables) yields a best-effort result.
package markdown

import "strings"

// lineKind classifies the previous non-blank line during the forward scan.
type lineKind int

const (
	kindPlain lineKind = iota
	kindHeader
	kindBullet
	kindNumbered
	kindTableRow
	kindFence
)

// dedentMode selects how leading indentation is removed.
type dedentMode int

const (
	// dedentAll removes every leading whitespace character outside fences.
	dedentAll dedentMode = iota
	// dedentCommon removes only the common minimum indentation shared by all
	// non-blank lines outside fenced blocks.
	dedentCommon
)

const fenceMarker = "```"

// StripAllIndent removes all leading whitespace from every line outside
// fenced code blocks and applies the shared blank-line and escaping rules.
// Text strictly between matching fences is preserved byte for byte.
func StripAllIndent(text string) string {
	return normalize(text, dedentAll)
}

// NormalizeForPrettier removes the common minimum leading indentation shared
// by all non-blank lines outside fenced blocks, then applies the shared
// blank-line insertion, escaping, and table reflow rules. The output is
// stable under repeated application.
func NormalizeForPrettier(text string) string {
	return normalize(text, dedentCommon)
}

func normalize(text string, mode dedentMode) string {
	if text == "" {
		return ""
	}
	lines := splitLines(text)
	lines = dedent(lines, mode)
	lines = insertBlanksAndEscape(lines)
	lines = reflowTables(lines)
	return strings.Join(lines, "\n")
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isFenceMarker(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), fenceMarker)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// leadingWhitespace counts the leading space and tab characters of line.
func leadingWhitespace(line string) int {
	count := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		count++
	}
	return count
}

// dedent removes leading indentation according to mode. Fence state is
// tracked so fenced content is either left untouched (dedentAll) or loses
// only the shared prefix every line loses (dedentCommon), preserving the
// relative indentation of fenced content in both cases.
func dedent(lines []string, mode dedentMode) []string {
	if mode == dedentAll {
		out := make([]string, len(lines))
		inFence := false
		for i, line := range lines {
			if isFenceMarker(line) {
				out[i] = strings.TrimLeft(line, " \t")
				inFence = !inFence
				continue
			}
			if inFence {
				out[i] = line
				continue
			}
			out[i] = strings.TrimLeft(line, " \t")
		}
		return out
	}

	common := -1
	inFence := false
	for _, line := range lines {
		if isFenceMarker(line) {
			if !inFence {
				if n := leadingWhitespace(line); common < 0 || n < common {
					common = n
				}
			}
			inFence = !inFence
			continue
		}
		if inFence || isBlank(line) {
			continue
		}
		if n := leadingWhitespace(line); common < 0 || n < common {
			common = n
		}
	}
	if common <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		drop := leadingWhitespace(line)
		if drop > common {
			drop = common
		}
		out[i] = line[drop:]
	}
	return out
}

// classify inspects a dedented line outside any fence.
func classify(line string) lineKind {
	trimmed := strings.TrimLeft(line, " \t")
	switch {
	case isHeader(trimmed):
		return kindHeader
	case isBulletItem(trimmed):
		return kindBullet
	case isNumberedItem(trimmed):
		return kindNumbered
	case isTableRow(trimmed):
		return kindTableRow
	default:
		return kindPlain
	}
}

func isHeader(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	rest := strings.TrimLeft(trimmed, "#")
	return strings.HasPrefix(rest, " ")
}

func isBulletItem(trimmed string) bool {
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ")
}

func isNumberedItem(trimmed string) bool {
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(trimmed) && trimmed[i] == '.' && trimmed[i+1] == ' '
}

func isTableRow(trimmed string) bool {
	return len(trimmed) >= 2 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// insertBlanksAndEscape walks the dedented lines once, inserting the blank
// lines the external formatter would add and escaping constructs it would
// rewrite. Fenced content passes through untouched.
func insertBlanksAndEscape(lines []string) []string {
	out := make([]string, 0, len(lines)+4)
	inFence := false
	prevKind := kindPlain
	sawContent := false

	lastIsBlank := func() bool {
		return len(out) == 0 || isBlank(out[len(out)-1])
	}

	for _, line := range lines {
		if isFenceMarker(line) {
			if !inFence {
				// Opening fence: separate it from preceding content.
				if sawContent && !lastIsBlank() {
					out = append(out, "")
				}
			}
			inFence = !inFence
			out = append(out, line)
			prevKind = kindFence
			sawContent = true
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		if isBlank(line) {
			out = append(out, "")
			continue
		}

		kind := classify(line)
		needBlank := false
		switch kind {
		case kindHeader:
			needBlank = sawContent && !lastIsBlank()
		case kindBullet, kindNumbered:
			needBlank = sawContent && !lastIsBlank() && prevKind != kind
		}
		if needBlank {
			out = append(out, "")
		}
		out = append(out, escapeLine(line))
		prevKind = kind
		sawContent = true
	}
	return out
}
