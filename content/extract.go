package content

import (
	"strconv"
	"strings"
)

// reservedPrefix marks internal children that extraction must never surface.
const reservedPrefix = "__"

// FindNamedChild returns the first direct child of tree whose name equals
// name, skipping reserved children whose name starts with the double
// underscore prefix. It returns nil when tree is nil or no child matches.
func FindNamedChild(tree *Node, name string) *Node {
	if tree == nil {
		return nil
	}
	for _, child := range tree.Children {
		if child == nil {
			continue
		}
		if strings.HasPrefix(child.Name, reservedPrefix) {
			continue
		}
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ExtractText returns the trimmed prose payload of a node. Text and Mixed
// nodes yield their payload; Object and Array nodes yield an empty string.
func ExtractText(node *Node) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case KindText, KindMixed:
		return strings.TrimSpace(node.Text)
	default:
		return ""
	}
}

// GetProperty looks up a property on Object and Mixed nodes. The boolean
// reports whether the key exists; Text and Array nodes never have properties.
func GetProperty(node *Node, key string) (Value, bool) {
	if node == nil {
		return Value{}, false
	}
	switch node.Kind {
	case KindObject, KindMixed:
		value, ok := node.Props[key]
		return value, ok
	default:
		return Value{}, false
	}
}

// GetProperties returns the property map of Object and Mixed nodes, or nil for
// every other shape.
func GetProperties(node *Node) map[string]Value {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case KindObject, KindMixed:
		return node.Props
	default:
		return nil
	}
}

// GetArrayElements returns the elements of an Array node and an empty slice
// for every other shape.
func GetArrayElements(node *Node) []Value {
	if node == nil || node.Kind != KindArray {
		return nil
	}
	return node.Elements
}

// ValueToString renders a value as display text. Null values become empty
// strings, numbers render in decimal form, lists join their rendered elements
// with a comma and space, Text nodes yield their trimmed payload, and type
// expressions render as kind(param1, param2). Any other shape renders empty.
func ValueToString(v Value) string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case ValueList:
		return FormatArray(v.List)
	case ValueNode:
		if v.Node != nil && v.Node.Kind == KindText {
			return strings.TrimSpace(v.Node.Text)
		}
		return ""
	case ValueType:
		if v.Type == nil {
			return ""
		}
		if len(v.Type.Params) == 0 {
			return v.Type.Name
		}
		return v.Type.Name + "(" + strings.Join(v.Type.Params, ", ") + ")"
	default:
		return ""
	}
}

// FormatArray joins rendered list elements with a comma and space.
func FormatArray(values []Value) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, ValueToString(v))
	}
	return strings.Join(parts, ", ")
}

// Truncate shortens s to at most max characters, replacing the cut tail with
// an ellipsis. Strings within the limit are returned unchanged.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	if cut < 0 {
		cut = 0
	}
	return strings.TrimRight(s[:cut], " \t") + "..."
}

const fenceMarker = "```"

// ExtractSectionWithCodeBlock locates header as a literal substring of text
// and returns the span from the header through the closing marker of the next
// fenced code block, inclusive. The boolean reports success; it is false when
// the header is absent, no opening fence follows it, or the opening fence is
// never closed.
func ExtractSectionWithCodeBlock(text, header string) (string, bool) {
	if header == "" {
		return "", false
	}
	start := strings.Index(text, header)
	if start < 0 {
		return "", false
	}
	open := strings.Index(text[start+len(header):], fenceMarker)
	if open < 0 {
		return "", false
	}
	open += start + len(header)
	closing := strings.Index(text[open+len(fenceMarker):], fenceMarker)
	if closing < 0 {
		return "", false
	}
	closing += open + len(fenceMarker)
	return text[start : closing+len(fenceMarker)], true
}
