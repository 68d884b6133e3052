package plan

import (
	"encoding/json"
	"fmt"
	"strings"

	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/ormasoftchile/plancheck/pkg/contract"
)

// ValidateSemantic validates the raw document tree against the
// generated JSON Schema and maps each leaf cause to a violation with
// its instance location. This is an opt-in pre-pass on top of the
// contract engine, which performs its own defensive checks either
// way; the error return covers schema generation/compilation
// problems, never document defects.
func ValidateSemantic(doc map[string]any) ([]*contract.Violation, error) {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := sjsonschema.NewCompiler()
	if err := c.AddResource("plan-v0.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile("plan-v0.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	// Round-trip through JSON so YAML-decoded scalars reach the
	// validator as canonical JSON values.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	var canonical any
	if err := json.Unmarshal(data, &canonical); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	if err := sch.Validate(canonical); err != nil {
		ve, ok := err.(*sjsonschema.ValidationError)
		if !ok {
			return nil, err
		}
		var out []*contract.Violation
		for _, cause := range flattenValidationErrors(ve) {
			out = append(out, &contract.Violation{
				Path:    strings.Join(cause.InstanceLocation, "/"),
				Message: fmt.Sprintf("%v", cause.ErrorKind),
			})
		}
		return out, nil
	}
	return nil, nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
