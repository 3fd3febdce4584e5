package validation

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "level": {"type": "integer", "minimum": 1}
  },
  "additionalProperties": false
}`

func TestCompileRejectsInvalidSchema(t *testing.T) {
	if _, err := Compile("bad.json", []byte(`{"type": 42}`)); !errors.Is(err, ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayload(t *testing.T) {
	schema, err := Compile("conv.json", []byte(testSchema))
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}

	if err := ValidatePayload(schema, map[string]any{"name": "xml", "level": 2}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err = ValidatePayload(schema, map[string]any{"level": 0})
	if !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}

	issues := IssuesOf(err)
	if len(issues) == 0 {
		t.Fatalf("expected validation issues")
	}
	var sawLevel bool
	for _, issue := range issues {
		if strings.Contains(issue.Location, "level") {
			sawLevel = true
		}
	}
	if !sawLevel {
		t.Fatalf("expected an issue located at level, got %#v", issues)
	}
}

func TestValidatePayloadNilSchemaOrPayload(t *testing.T) {
	if err := ValidatePayload(nil, map[string]any{"anything": true}); err != nil {
		t.Fatalf("nil schema should pass, got %v", err)
	}

	schema, err := Compile("conv.json", []byte(testSchema))
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	if err := ValidatePayload(schema, nil); !errors.Is(err, ErrSchemaValidation) {
		t.Fatalf("nil payload misses required name, got %v", err)
	}
}

func TestPayloadErrorMessageFormatsLocations(t *testing.T) {
	err := &PayloadError{Issues: []Issue{
		{Location: "/name", Message: "missing"},
		{Location: "", Message: "root issue"},
	}}
	msg := err.Error()
	if !strings.Contains(msg, "#/name: missing") || !strings.Contains(msg, "#: root issue") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestIssuesOfPlainError(t *testing.T) {
	issues := IssuesOf(errors.New("boom"))
	if len(issues) != 1 || issues[0].Message != "boom" {
		t.Fatalf("unexpected issues: %#v", issues)
	}
}
