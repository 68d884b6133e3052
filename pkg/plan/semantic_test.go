package plan

import (
	"encoding/json"
	"fmt"
	"testing"
)

// typedValidPlan builds a Plan that conforms to the generated schema.
func typedValidPlan() *Plan {
	p := &Plan{}
	for i := 1; i <= 7; i++ {
		phase := Phase{
			PhaseID: fmt.Sprintf("P%02d", i),
			Waves:   []any{"w1", "w2", "w3", "w4", "w5"},
			PhaseGates: &PhaseGates{
				PhaseEndE2E:                  true,
				RollingInterPhaseIntegration: true,
				RollingCumulativeE2E:         true,
			},
		}
		for m := 1; m <= 4; m++ {
			milestone := Milestone{
				MilestoneID:     fmt.Sprintf("P%02d-M%d", i, m),
				UnitGate:        "defined",
				IntegrationGate: "defined",
			}
			for tk := 1; tk <= 15; tk++ {
				milestone.Tasks = append(milestone.Tasks, Task{
					TaskID:       fmt.Sprintf("P%02d-M%d-T%d", i, m, tk),
					DoneCriteria: []string{"tests pass"},
				})
			}
			phase.Milestones = append(phase.Milestones, milestone)
		}
		p.Phases = append(p.Phases, phase)
	}
	return p
}

// asTree converts a typed plan into the generic tree the loader produces.
func asTree(t *testing.T, p *Plan) map[string]any {
	t.Helper()
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

// TestGenerateJSONSchema checks the reflected schema is well-formed
// and rooted at the plan document.
func TestGenerateJSONSchema(t *testing.T) {
	data, err := GenerateJSONSchema()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var schemaDoc map[string]any
	if err := json.Unmarshal(data, &schemaDoc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if id, _ := schemaDoc["$id"].(string); id == "" {
		t.Error("expected $id on generated schema")
	}
}

// TestValidateSemanticPasses runs a conforming document through the
// schema pre-pass.
func TestValidateSemanticPasses(t *testing.T) {
	violations, err := ValidateSemantic(asTree(t, typedValidPlan()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) > 0 {
		t.Errorf("expected no violations, got: %v", violations)
	}
}

// TestValidateSemanticReportsShapeDefects feeds a mistyped phases
// field and expects at least one located violation.
func TestValidateSemanticReportsShapeDefects(t *testing.T) {
	violations, err := ValidateSemantic(map[string]any{"phases": "not-a-list"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(violations) == 0 {
		t.Fatal("expected violations for mistyped phases")
	}
}
