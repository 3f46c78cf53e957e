package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/edict"
)

// FmtOptions holds flags for the fmt command.
type FmtOptions struct {
	*RootOptions
	Output string // output file path; empty means stdout
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FmtOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Render a policy file in canonical form",
		Long: `Parse a policy file and print its canonical rendering.

The canonical form re-parses to a structurally equal AST: comments are
dropped, negation renders as 'not', and adjacent string segments are
joined, but every rule and fact keeps its meaning.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runFmt(opts *FmtOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	theory, err := parseFile(formatter, path)
	if err != nil {
		return err
	}
	canonical := edict.Render(theory)

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(canonical), 0o644); err != nil {
			formatter.Error(ErrCodeIO, fmt.Sprintf("cannot write %s: %v", opts.Output, err), nil)
			return &ExitError{Code: ExitCommandError, Message: "unwritable output", Err: err}
		}
		formatter.VerboseLog("wrote %s", opts.Output)
		return nil
	}
	return formatter.Text(canonical)
}
