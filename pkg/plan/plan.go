// Package plan defines the generated implementation plan document
// shape and loads plan files into the generic tree the contract
// engine consumes.
package plan

// Plan is the top-level generated implementation plan document.
// The typed model is the reference shape used for JSON Schema
// generation; validation itself runs over the untyped tree because
// generated documents routinely violate this shape.
type Plan struct {
	Phases []Phase `json:"phases" yaml:"phases" jsonschema:"required,minItems=7"`
}

// Phase groups execution waves and delivery milestones.
type Phase struct {
	PhaseID    string      `json:"phase_id"              yaml:"phase_id"              jsonschema:"required"`
	Waves      []any       `json:"waves"                 yaml:"waves"                 jsonschema:"required,minItems=5"`
	Milestones []Milestone `json:"milestones"            yaml:"milestones"            jsonschema:"required,minItems=4,maxItems=4"`
	PhaseGates *PhaseGates `json:"phase_gates,omitempty" yaml:"phase_gates,omitempty"`
}

// Milestone is one of the four delivery checkpoints within a phase.
// Its identifier carries an M<digits> sequence marker (e.g. "P01-M3").
type Milestone struct {
	MilestoneID     string `json:"milestone_id"     yaml:"milestone_id"     jsonschema:"required,pattern=M[0-9]+"`
	Tasks           []Task `json:"tasks"            yaml:"tasks"            jsonschema:"required,minItems=15,maxItems=15"`
	UnitGate        any    `json:"unit_gate"        yaml:"unit_gate"        jsonschema:"required"`
	IntegrationGate any    `json:"integration_gate" yaml:"integration_gate" jsonschema:"required"`
}

// Task is a single unit of work. Its identifier carries a T<digits>
// sequence marker (e.g. "P01-M3-T12").
type Task struct {
	TaskID       string `json:"task_id"       yaml:"task_id"       jsonschema:"required,pattern=T[0-9]+"`
	DoneCriteria any    `json:"done_criteria" yaml:"done_criteria" jsonschema:"required"`
}

// PhaseGates names the checkpoint fields closing out a phase. Only
// presence is validated, never the value. The two rolling gates are
// required for every phase after the first; that rule lives in the
// contract engine, not in the schema.
type PhaseGates struct {
	PhaseEndE2E                  any `json:"phase_end_e2e,omitempty"                   yaml:"phase_end_e2e,omitempty"`
	RollingInterPhaseIntegration any `json:"rolling_inter_phase_integration,omitempty" yaml:"rolling_inter_phase_integration,omitempty"`
	RollingCumulativeE2E         any `json:"rolling_cumulative_e2e,omitempty"          yaml:"rolling_cumulative_e2e,omitempty"`
}
