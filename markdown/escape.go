package markdown

import (
	"regexp"
	"strings"
)

// doubleUnderscore matches a word bounded by double underscores on both
// sides, the pattern the external formatter rewrites into bold emphasis.
var doubleUnderscore = regexp.MustCompile(`__(\w+)__`)

// escapeLine escapes Markdown constructs that would be rewritten by the
// external formatter, leaving inline code spans untouched. Applies only to
// lines outside fenced blocks.
func escapeLine(line string) string {
	if !strings.ContainsAny(line, "_*") {
		return line
	}
	segments := strings.Split(line, "`")
	for i := range segments {
		// Odd segments sit inside an inline code span.
		if i%2 == 1 {
			continue
		}
		segments[i] = escapeSegment(segments[i])
	}
	return strings.Join(segments, "`")
}

func escapeSegment(segment string) string {
	segment = doubleUnderscore.ReplaceAllString(segment, `\_\_${1}\_\_`)
	// A bare asterisk after a slash is a glob wildcard, never emphasis.
	segment = strings.ReplaceAll(segment, "/*", `/\*`)
	return segment
}
