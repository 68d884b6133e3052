// plancheck validates generated implementation plans against the
// structural contract: phase/wave/milestone/task count thresholds,
// strictly increasing sequence markers, and required gate fields.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ormasoftchile/plancheck/pkg/contract"
	"github.com/ormasoftchile/plancheck/pkg/plan"
	"github.com/ormasoftchile/plancheck/pkg/report"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

// Exit statuses, relied on by CI consumers of the tool.
const (
	exitOK         = 0
	exitViolations = 1
	exitUsage      = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := rootCmd.Execute(); err != nil {
		var cf *contractFailure
		if errors.As(err, &cf) {
			return exitViolations
		}
		// Usage errors, unreadable files and undecodable documents all
		// land here.
		return exitUsage
	}
	return exitOK
}

// contractFailure marks a run that completed but found violations, so
// the exit status distinguishes a failing plan from a failing tool.
type contractFailure struct {
	count int
}

func (e *contractFailure) Error() string {
	return fmt.Sprintf("contract validation failed with %d violation(s)", e.count)
}

var rootCmd = &cobra.Command{
	Use:   "plancheck",
	Short: "Structural contract validator for generated implementation plans",
	Long:  "plancheck — validates generated implementation plan documents (phases → milestones → tasks) against the fixed structural contract.",
}

// --- validate ---

var (
	validateSchema bool
	validateWhere  string
)

var validateCmd = &cobra.Command{
	Use:   "validate [plan.json]",
	Short: "Validate a plan document against the structural contract",
	Long: `Validate a generated plan document against the structural contract.

The contract requires at least 7 phases with at least 5 waves each,
exactly 4 milestones per phase with strictly increasing M<n> markers,
exactly 15 tasks per milestone with strictly increasing T<n> markers
and done_criteria, unit/integration gates on every milestone, and
phase_end_e2e (plus both rolling gates after the first phase) in
phase_gates.

Exit status is 0 for a valid plan, 1 when violations are found, and 2
for usage errors, missing files, or undecodable documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := plan.LoadFile(args[0])
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("file not found: %s", args[0])
		}
		return err
	}

	violations := contract.Validate(doc)

	if validateSchema {
		semantic, err := plan.ValidateSemantic(doc)
		if err != nil {
			return fmt.Errorf("schema check: %w", err)
		}
		violations = append(violations, semantic...)
	}

	shown := violations
	if validateWhere != "" {
		shown, err = report.Filter(violations, validateWhere)
		if err != nil {
			return err
		}
	}

	report.Write(os.Stdout, shown, len(violations))

	if len(violations) > 0 {
		return &contractFailure{count: len(violations)}
	}
	return nil
}

// --- schema export ---

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema operations",
}

var schemaExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan JSON Schema to stdout",
	RunE:  runSchemaExport,
}

func runSchemaExport(cmd *cobra.Command, args []string) error {
	data, err := plan.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	var out json.RawMessage = data
	formatted, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		// fallback to raw
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(string(formatted))
	return nil
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plancheck %s (build: %s)\n", version, commit)
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateSchema, "schema", false, "Also validate the document against the generated JSON Schema")
	validateCmd.Flags().StringVar(&validateWhere, "where", "", "Only display violations matching an expr predicate over {path, message}")

	schemaCmd.AddCommand(schemaExportCmd)

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SilenceUsage = true
}
