// Package loader reads a resolved document tree from YAML. The DSL compiler
// proper is out of scope; the loader accepts its resolved output, a plain
// YAML document, and maps it onto the content node model preserving section
// order and source positions.
package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrwogu/promptscript/content"
)

// mixedTextKey is the reserved mapping key carrying the prose body of a
// section that also has properties.
const mixedTextKey = "_text"

// Load reads and parses a document file.
func Load(path string) (*content.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if doc.Loc.File == "" {
		doc.Loc.File = path
		stampFile(doc, path)
	}
	return doc, nil
}

// Parse decodes a YAML document into a content tree. The top level mapping
// holds the document name, optional properties, and a sections mapping whose
// entries become the document's children in source order.
func Parse(data []byte) (*content.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("loader: parse document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("loader: document is empty")
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("loader: document root must be a mapping, got %s", kindName(mapping.Kind))
	}

	doc := content.ObjectNode("", map[string]content.Value{})
	doc.Loc = loc(mapping)

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		value := mapping.Content[i+1]
		switch key {
		case "name":
			doc.Name = strings.TrimSpace(value.Value)
		case "sections":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("loader: sections must be a mapping, got %s at line %d", kindName(value.Kind), value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				child, err := sectionNode(value.Content[j].Value, value.Content[j+1])
				if err != nil {
					return nil, err
				}
				doc.Children = append(doc.Children, child)
			}
		default:
			doc.Props[key] = yamlValue(value)
		}
	}

	if doc.Name == "" {
		return nil, fmt.Errorf("loader: document name is required")
	}
	return doc, nil
}

// sectionNode maps one sections entry onto a content node. Scalars become
// Text, sequences become Array, and mappings become Object, or Mixed when the
// reserved _text key is present.
func sectionNode(name string, node *yaml.Node) (*content.Node, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		section := content.TextNode(name, node.Value)
		section.Loc = loc(node)
		return section, nil
	case yaml.SequenceNode:
		section := content.ArrayNode(name)
		section.Loc = loc(node)
		for _, element := range node.Content {
			section.Elements = append(section.Elements, elementValue(element))
		}
		return section, nil
	case yaml.MappingNode:
		props := map[string]content.Value{}
		text := ""
		mixed := false
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value := node.Content[i+1]
			if key == mixedTextKey {
				text = value.Value
				mixed = true
				continue
			}
			props[key] = yamlValue(value)
		}
		var section *content.Node
		if mixed {
			section = content.MixedNode(name, text, props)
		} else {
			section = content.ObjectNode(name, props)
		}
		section.Loc = loc(node)
		return section, nil
	default:
		return nil, fmt.Errorf("loader: section %q has unsupported shape %s at line %d", name, kindName(node.Kind), node.Line)
	}
}

// elementValue converts a sequence element. Mappings become nested nodes so
// structured examples keep their properties addressable.
func elementValue(node *yaml.Node) content.Value {
	if node.Kind == yaml.MappingNode {
		nested, err := sectionNode("", node)
		if err == nil {
			return content.NodeValue(nested)
		}
	}
	return yamlValue(node)
}

// yamlValue converts an arbitrary YAML node into a content value.
func yamlValue(node *yaml.Node) content.Value {
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarValue(node)
	case yaml.SequenceNode:
		items := make([]content.Value, 0, len(node.Content))
		for _, element := range node.Content {
			items = append(items, yamlValue(element))
		}
		return content.ListValue(items...)
	case yaml.MappingNode:
		props := make(map[string]content.Value, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			props[node.Content[i].Value] = yamlValue(node.Content[i+1])
		}
		return content.MapValue(props)
	case yaml.AliasNode:
		if node.Alias != nil {
			return yamlValue(node.Alias)
		}
	}
	return content.Value{}
}

func scalarValue(node *yaml.Node) content.Value {
	switch node.Tag {
	case "!!bool":
		b, err := strconv.ParseBool(node.Value)
		if err == nil {
			return content.BoolValue(b)
		}
	case "!!int", "!!float":
		n, err := strconv.ParseFloat(node.Value, 64)
		if err == nil {
			return content.NumberValue(n)
		}
	case "!!null":
		return content.Value{}
	}
	return content.StringValue(node.Value)
}

func loc(node *yaml.Node) content.Loc {
	return content.Loc{Line: node.Line, Column: node.Column}
}

// stampFile records the source path on every node of the tree.
func stampFile(node *content.Node, path string) {
	if node == nil {
		return
	}
	node.Loc.File = path
	for _, child := range node.Children {
		stampFile(child, path)
	}
}

func kindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
