// Package report renders contract validation outcomes for the
// terminal and filters violation lists with expr-lang predicates.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ormasoftchile/plancheck/pkg/contract"
)

// Outcome glyphs — convey meaning without relying on color alone.
const (
	GlyphPassed = "✓"
	GlyphFailed = "✗"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Write renders a validation outcome. shown may be a filtered subset
// of the run's violations; total is the size of the unfiltered list
// and decides the pass/fail line, so a filter can never turn a failing
// run into a passing one.
func Write(w io.Writer, shown []*contract.Violation, total int) {
	if total == 0 {
		fmt.Fprintf(w, "%s contract validation passed\n", passStyle.Render(GlyphPassed))
		return
	}

	header := fmt.Sprintf("contract validation failed: %d violation(s)", total)
	if len(shown) != total {
		header += fmt.Sprintf(" (showing %d)", len(shown))
	}
	fmt.Fprintf(w, "%s %s\n", failStyle.Render(GlyphFailed), header)

	for _, v := range shown {
		if v.Path != "" {
			fmt.Fprintf(w, "- %s: %s\n", pathStyle.Render(v.Path), v.Message)
			continue
		}
		fmt.Fprintf(w, "- %s\n", v.Message)
	}
}
