package content

// Kind discriminates the shapes a document node can take. Exactly one shape is
// populated per node; Mixed is the only shape carrying prose and properties at
// the same time.
type Kind int

const (
	// KindText holds a single string payload.
	KindText Kind = iota
	// KindMixed holds an optional text payload plus a flat property map.
	KindMixed
	// KindObject holds a flat or nested property map.
	KindObject
	// KindArray holds an ordered list of values.
	KindArray
)

// String returns the lowercase shape name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindMixed:
		return "mixed"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Loc records where a node originated in the source document. The resolver
// guarantees consistent values; this package never re-validates them.
type Loc struct {
	File   string
	Line   int
	Column int
}

// Node is a named section of a resolved document. The tree is produced by the
// upstream parser/resolver; everything in this package treats it as read-only.
type Node struct {
	Name     string
	Kind     Kind
	Loc      Loc
	Text     string
	Props    map[string]Value
	Elements []Value
	Children []*Node
}

// ValueKind discriminates the recursive Value union used for property bags and
// array elements.
type ValueKind int

const (
	// ValueNull is the zero value; it renders as an empty string.
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
	ValueList
	ValueMap
	// ValueNode wraps a nested content node, typically a Text payload hoisted
	// into a property bag.
	ValueNode
	// ValueType wraps a type expression such as string() or enum(a, b).
	ValueType
)

// Value is a closed variant over the payloads a property or array element can
// carry. Accessors switch on Kind; unknown shapes degrade to empty results.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	List []Value
	Map  map[string]Value
	Node *Node
	Type *TypeExpr
}

// TypeExpr is a DSL type expression value, rendered as kind(param1, param2)
// or the bare kind when it has no parameters.
type TypeExpr struct {
	Name   string
	Params []string
}

// StringValue wraps a string into a Value.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue wraps a number into a Value.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue wraps a boolean into a Value.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// ListValue wraps a list into a Value.
func ListValue(items ...Value) Value { return Value{Kind: ValueList, List: items} }

// MapValue wraps a property map into a Value.
func MapValue(props map[string]Value) Value { return Value{Kind: ValueMap, Map: props} }

// NodeValue wraps a node into a Value.
func NodeValue(n *Node) Value { return Value{Kind: ValueNode, Node: n} }

// TypeValue wraps a type expression into a Value.
func TypeValue(name string, params ...string) Value {
	return Value{Kind: ValueType, Type: &TypeExpr{Name: name, Params: params}}
}

// TextNode builds a Text-shaped node.
func TextNode(name, text string) *Node {
	return &Node{Name: name, Kind: KindText, Text: text}
}

// MixedNode builds a Mixed-shaped node carrying prose and properties.
func MixedNode(name, text string, props map[string]Value) *Node {
	return &Node{Name: name, Kind: KindMixed, Text: text, Props: props}
}

// ObjectNode builds an Object-shaped node.
func ObjectNode(name string, props map[string]Value) *Node {
	return &Node{Name: name, Kind: KindObject, Props: props}
}

// ArrayNode builds an Array-shaped node.
func ArrayNode(name string, elements ...Value) *Node {
	return &Node{Name: name, Kind: KindArray, Elements: elements}
}
