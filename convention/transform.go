package convention

import (
	"strings"
	"unicode"

	slug "github.com/goliatone/go-slug"
)

// TransformName applies the convention's name transform to a section name.
func TransformName(transform NameTransform, name string) string {
	switch transform {
	case TransformKebab:
		return toKebab(name)
	case TransformPascal:
		return toPascal(name)
	case TransformCamel:
		return toCamel(name)
	default:
		return name
	}
}

// toKebab lowercases and hyphenates camel/Pascal boundaries and spaces. The
// camel boundary split happens here; go-slug then handles lowercasing and
// separator normalization so names follow the same slug rules as artifact
// paths.
func toKebab(name string) string {
	hyphenated := splitCamelBoundaries(name, "-")
	normalized, err := slug.Normalize(hyphenated)
	if err != nil || normalized == "" {
		return fallbackKebab(hyphenated)
	}
	return normalized
}

func fallbackKebab(hyphenated string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(hyphenated) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// splitCamelBoundaries inserts sep at camel and acronym boundaries and
// converts spaces and underscores to sep. A boundary sits before an
// upper-case rune that follows a lower-case rune or digit, and before the
// last upper-case rune of an acronym run ("HTTPServer" -> "HTTP Server").
func splitCamelBoundaries(name, sep string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == ' ' || r == '_' || r == '-':
			b.WriteString(sep)
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			b.WriteString(sep)
			b.WriteRune(r)
		case unicode.IsUpper(r) && i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
			b.WriteString(sep)
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// toPascal splits on hyphen, space, and underscore, recapitalizes each word,
// and joins them.
func toPascal(name string) string {
	words := splitWords(name)
	var b strings.Builder
	for _, word := range words {
		b.WriteString(capitalize(word))
	}
	return b.String()
}

// toCamel behaves like toPascal with a lower-case first word.
func toCamel(name string) string {
	words := splitWords(name)
	var b strings.Builder
	for i, word := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteString(capitalize(word))
	}
	return b.String()
}

func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == ' ' || r == '_'
	})
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}
