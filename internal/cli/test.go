package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/edict/internal/harness"
)

// TestResult holds the aggregated outcome of all suites.
type TestResult struct {
	Suites []harness.Result `json:"suites"`
	Passed int              `json:"passed"`
	Failed int              `json:"failed"`
	Total  int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <suite-file-or-dir>",
		Short: "Run conformance suites",
		Long: `Run YAML conformance suites against the parser.

Each case parses a policy text and checks either its canonical
rendering or an expected error. Passing cases are also round-tripped
through the renderer.

Exit codes:
  0 - all cases passed
  1 - one or more cases failed
  2 - command error (invalid paths, malformed suite)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runTest(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	suites, err := harness.LoadSuites(path)
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return &ExitError{Code: ExitCommandError, Message: "cannot load suites", Err: err}
	}

	result := TestResult{}
	for _, s := range suites {
		formatter.VerboseLog("running suite %s (%d cases)", s.Name, len(s.Cases))
		r := harness.Run(s)
		result.Suites = append(result.Suites, r)
		result.Passed += r.Passed
		result.Failed += r.Failed
	}
	result.Total = result.Passed + result.Failed

	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, r := range result.Suites {
			for _, c := range r.Cases {
				status := "PASS"
				if !c.Pass {
					status = "FAIL"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s\n", status, r.Suite, c.Name)
				for _, e := range c.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "     %s\n", e)
				}
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d passed, %d failed, %d total\n",
			result.Passed, result.Failed, result.Total)
	}

	if result.Failed > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d case(s) failed", result.Failed)}
	}
	return nil
}
