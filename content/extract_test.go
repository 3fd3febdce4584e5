package content

import (
	"strings"
	"testing"
)

func TestFindNamedChild(t *testing.T) {
	tree := &Node{
		Name: "document",
		Kind: KindObject,
		Children: []*Node{
			TextNode("__meta", "internal"),
			TextNode("context", "first"),
			TextNode("context", "second"),
			ObjectNode("techStack", nil),
		},
	}

	child := FindNamedChild(tree, "context")
	if child == nil || child.Text != "first" {
		t.Fatalf("expected first context child, got %#v", child)
	}

	if got := FindNamedChild(tree, "missing"); got != nil {
		t.Fatalf("expected nil for missing child, got %#v", got)
	}
	if got := FindNamedChild(nil, "context"); got != nil {
		t.Fatalf("expected nil for nil tree, got %#v", got)
	}
}

func TestFindNamedChildSkipsReserved(t *testing.T) {
	tree := &Node{
		Name: "document",
		Children: []*Node{
			TextNode("__shadow", "hidden"),
		},
	}
	if got := FindNamedChild(tree, "__shadow"); got != nil {
		t.Fatalf("reserved children must never be returned, got %#v", got)
	}
}

func TestExtractText(t *testing.T) {
	cases := []struct {
		name string
		node *Node
		want string
	}{
		{"text", TextNode("ctx", "  hello world \n"), "hello world"},
		{"mixed with prose", MixedNode("ctx", " prose ", map[string]Value{"k": StringValue("v")}), "prose"},
		{"mixed without prose", MixedNode("ctx", "", map[string]Value{"k": StringValue("v")}), ""},
		{"object", ObjectNode("ctx", map[string]Value{"k": StringValue("v")}), ""},
		{"array", ArrayNode("ctx", StringValue("a")), ""},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		if got := ExtractText(tc.node); got != tc.want {
			t.Fatalf("%s: ExtractText = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestGetProperty(t *testing.T) {
	obj := ObjectNode("cfg", map[string]Value{"key": StringValue("value")})
	if v, ok := GetProperty(obj, "key"); !ok || v.Str != "value" {
		t.Fatalf("expected property hit, got %#v ok=%v", v, ok)
	}
	if _, ok := GetProperty(obj, "other"); ok {
		t.Fatalf("expected miss for unknown key")
	}
	if _, ok := GetProperty(TextNode("t", "x"), "key"); ok {
		t.Fatalf("text nodes must not expose properties")
	}
	if _, ok := GetProperty(nil, "key"); ok {
		t.Fatalf("nil nodes must not expose properties")
	}
}

func TestGetArrayElements(t *testing.T) {
	arr := ArrayNode("items", StringValue("a"), NumberValue(2))
	if got := GetArrayElements(arr); len(got) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(got))
	}
	for _, node := range []*Node{TextNode("t", "x"), ObjectNode("o", nil), MixedNode("m", "", nil), nil} {
		if got := GetArrayElements(node); len(got) != 0 {
			t.Fatalf("non-array node yielded elements: %#v", got)
		}
	}
}

func TestValueToString(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Value{}, ""},
		{"string", StringValue("plain"), "plain"},
		{"int number", NumberValue(42), "42"},
		{"float number", NumberValue(2.5), "2.5"},
		{"bool true", BoolValue(true), "true"},
		{"bool false", BoolValue(false), "false"},
		{"list", ListValue(StringValue("a"), StringValue("b"), StringValue("c")), "a, b, c"},
		{"nested list", ListValue(StringValue("a"), ListValue(NumberValue(1), NumberValue(2))), "a, 1, 2"},
		{"text node", NodeValue(TextNode("n", "  trimmed  ")), "trimmed"},
		{"object node", NodeValue(ObjectNode("n", nil)), ""},
		{"type expr bare", TypeValue("string"), "string"},
		{"type expr params", TypeValue("enum", "dev", "prod"), "enum(dev, prod)"},
		{"map", MapValue(map[string]Value{"k": StringValue("v")}), ""},
	}
	for _, tc := range cases {
		if got := ValueToString(tc.in); got != tc.want {
			t.Fatalf("%s: ValueToString = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	got := Truncate("this is a long string", 10)
	if got != "this is..." {
		t.Fatalf("Truncate = %q, want %q", got, "this is...")
	}
	if len(got) != 10 {
		t.Fatalf("expected exactly 10 characters, got %d", len(got))
	}
	if !strings.HasSuffix(Truncate("another long example", 12), "...") {
		t.Fatalf("truncated strings must end with ellipsis")
	}
}

func TestExtractSectionWithCodeBlock(t *testing.T) {
	text := "intro\n## Example\nsome prose\n```go\nfmt.Println(\"hi\")\n```\ntrailing"

	section, ok := ExtractSectionWithCodeBlock(text, "## Example")
	if !ok {
		t.Fatalf("expected section to be found")
	}
	if !strings.HasPrefix(section, "## Example") {
		t.Fatalf("section must start at the header, got %q", section)
	}
	if !strings.HasSuffix(section, "```") {
		t.Fatalf("section must end at the closing fence, got %q", section)
	}
	if strings.Contains(section, "trailing") {
		t.Fatalf("section must not include text after the closing fence")
	}

	if _, ok := ExtractSectionWithCodeBlock(text, "## Missing"); ok {
		t.Fatalf("missing header must not match")
	}
	if _, ok := ExtractSectionWithCodeBlock("## Example\nno fence here", "## Example"); ok {
		t.Fatalf("header without fence must not match")
	}
	if _, ok := ExtractSectionWithCodeBlock("## Example\n```go\nunclosed", "## Example"); ok {
		t.Fatalf("unclosed fence must not match")
	}
}
