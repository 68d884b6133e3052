package report

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/ormasoftchile/plancheck/pkg/contract"
)

// Filter selects the violations for which the expr-lang predicate
// holds. Each violation is exposed to the expression as
// {path, message}, e.g. `path startsWith "P03"` or
// `message contains "task_count"`. Filtering narrows what gets
// displayed; callers still decide validity from the full list.
func Filter(violations []*contract.Violation, predicate string) ([]*contract.Violation, error) {
	env := map[string]any{"path": "", "message": ""}
	program, err := expr.Compile(predicate, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", predicate, err)
	}

	var out []*contract.Violation
	for _, v := range violations {
		env := map[string]any{"path": v.Path, "message": v.Message}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("eval filter %q: %w", predicate, err)
		}
		keep, ok := result.(bool)
		if !ok {
			return nil, fmt.Errorf("filter %q did not return bool (got %T: %v)", predicate, result, result)
		}
		if keep {
			out = append(out, v)
		}
	}
	return out, nil
}
