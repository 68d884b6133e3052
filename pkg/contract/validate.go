// Package contract implements the structural contract validator for
// generated implementation plans (phases → milestones → tasks).
//
// The validator consumes the untyped tree produced by the document
// loader rather than a typed struct: plan documents are machine
// generated and any field may be absent or carry the wrong shape, and
// each such defect is a reportable violation, never a decode failure.
// All violations are accumulated in traversal order; validation never
// stops at the first problem except where a missing container makes
// deeper checks impossible.
package contract

import (
	"fmt"
	"regexp"
	"strconv"
)

// Structural thresholds for a generated plan.
const (
	PhaseMin       = 7
	WaveMin        = 5
	MilestoneExact = 4
	TaskExact      = 15
)

// Violation is a single contract violation with location context.
type Violation struct {
	Path    string `json:"path,omitempty"` // plan location (e.g. "P03: M2")
	Message string `json:"message"`
}

func (v *Violation) Error() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// Sequence markers embedded in identifiers like "P01-M3-T12".
var (
	milestoneMarker = regexp.MustCompile(`M(\d+)`)
	taskMarker      = regexp.MustCompile(`T(\d+)`)
)

// markerIndex extracts the numeric value of the first marker match in
// an identifier. The bool reports whether a marker was found at all —
// "no marker" is a distinct outcome from index 0.
func markerIndex(re *regexp.Regexp, id string) (int, bool) {
	m := re.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// displayID returns the identifier used in violation paths: the raw
// field value rendered as a string, or fallback when the field is
// absent.
func displayID(obj map[string]any, key, fallback string) string {
	v, ok := obj[key]
	if !ok {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Validate checks a parsed plan document against the contract and
// returns every violation found, in traversal order. A nil result
// means the document is valid. The input is never mutated and the
// function holds no state between calls, so it is safe to run
// concurrently on independent documents.
func Validate(plan map[string]any) []*Violation {
	var errs []*Violation
	report := func(path, format string, args ...any) {
		errs = append(errs, &Violation{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	phases, state := seqField(plan, "phases")
	if state != fieldOK {
		// Without the phases array nothing else is reachable.
		report("", "Missing required array: phases")
		return errs
	}

	if len(phases) < PhaseMin {
		report("", "phase_count=%d < %d", len(phases), PhaseMin)
	}

	for i, elem := range phases {
		phaseIdx := i + 1
		phase, ok := elem.(map[string]any)
		if !ok {
			report(fmt.Sprintf("phase[%d]", phaseIdx), "not an object")
			continue
		}
		pid := displayID(phase, "phase_id", fmt.Sprintf("phase[%d]", phaseIdx))

		waves, st := seqField(phase, "waves")
		if st != fieldOK {
			report(pid, "missing waves[]")
		} else if len(waves) < WaveMin {
			report(pid, "wave_count=%d < %d", len(waves), WaveMin)
		}

		milestones, st := seqField(phase, "milestones")
		if st != fieldOK {
			report(pid, "missing milestones[]")
			continue
		}

		if len(milestones) != MilestoneExact {
			report(pid, "milestone_count=%d != %d", len(milestones), MilestoneExact)
		}

		prevMilestone := 0
		for j, melem := range milestones {
			milestone, ok := melem.(map[string]any)
			if !ok {
				report(fmt.Sprintf("%s: milestone[%d]", pid, j+1), "not an object")
				continue
			}
			mid := displayID(milestone, "milestone_id", pid+":milestone")
			mpath := pid + ": " + mid

			// A milestone with no extractable marker must not corrupt
			// the running index used by its siblings, so prevMilestone
			// only advances on a successful strict comparison.
			if idx, found := markerIndex(milestoneMarker, mid); !found {
				report(mpath, "missing milestone sequence marker")
			} else if idx <= prevMilestone {
				report(mpath, "milestone sequence is not strict")
			} else {
				prevMilestone = idx
			}

			tasks, st := seqField(milestone, "tasks")
			if st != fieldOK {
				report(mpath, "missing tasks[]")
				continue
			}

			if len(tasks) != TaskExact {
				report(mpath, "task_count=%d != %d", len(tasks), TaskExact)
			}

			prevTask := 0
			for _, telem := range tasks {
				task, ok := telem.(map[string]any)
				if !ok {
					report(mpath, "task is not an object")
					continue
				}
				tid := displayID(task, "task_id", "")

				if idx, found := markerIndex(taskMarker, tid); !found {
					report(mpath, "task missing sequence marker: %s", tid)
				} else if idx <= prevTask {
					report(mpath, "task sequence is not strict")
				} else {
					prevTask = idx
				}

				if !hasField(task, "done_criteria") {
					report(mpath+": "+tid, "missing done_criteria")
				}
			}

			if !hasField(milestone, "unit_gate") {
				report(mpath, "missing unit_gate")
			}
			if !hasField(milestone, "integration_gate") {
				report(mpath, "missing integration_gate")
			}
		}

		gates, st := objField(phase, "phase_gates")
		switch st {
		case fieldAbsent:
			gates = map[string]any{}
		case fieldWrongType:
			report(pid, "phase_gates must be an object")
			continue
		}

		if !hasField(gates, "phase_end_e2e") {
			report(pid, "missing phase_gates.phase_end_e2e")
		}

		// Rolling gates verify continuity against prior phases, so the
		// first phase is exempt.
		if phaseIdx > 1 {
			if !hasField(gates, "rolling_inter_phase_integration") {
				report(pid, "missing rolling_inter_phase_integration")
			}
			if !hasField(gates, "rolling_cumulative_e2e") {
				report(pid, "missing rolling_cumulative_e2e")
			}
		}
	}

	return errs
}
