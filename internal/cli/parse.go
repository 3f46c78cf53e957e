package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/edict"
	"github.com/roach88/edict/ast"
)

// ParseStats summarizes a parsed theory.
type ParseStats struct {
	Formulas    int    `json:"formulas"`
	Rules       int    `json:"rules"`
	Facts       int    `json:"facts"`
	Literals    int    `json:"literals"`
	Fingerprint string `json:"fingerprint"`
}

func (s ParseStats) String() string {
	return fmt.Sprintf("parsed %d formula(s): %d rule(s), %d fact(s), %d literal(s)\nfingerprint: %s",
		s.Formulas, s.Rules, s.Facts, s.Literals, s.Fingerprint)
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a policy file and report its structure",
		Long: `Parse a policy file into an AST and report summary statistics.

On malformed input the error is reported with its source position and
the command exits nonzero. No partial results are produced.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runParse(opts *RootOptions, path string, cmd *cobra.Command) error {
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

	stats := ParseStats{
		Formulas:    len(theory.Formulas),
		Fingerprint: ast.Fingerprint(theory),
	}
	for _, f := range theory.Formulas {
		switch f.(type) {
		case *ast.Rule:
			stats.Rules++
		case *ast.Fact:
			stats.Facts++
		}
	}
	ast.Walk(theory, func(n ast.Node) bool {
		if _, ok := n.(*ast.Literal); ok {
			stats.Literals++
		}
		return true
	})

	return formatter.Success(stats)
}

// parseFile reads and parses a policy file, emitting a formatted error
// and returning an ExitError when it fails.
func parseFile(formatter *OutputFormatter, path string) (*ast.Theory, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		formatter.Error(ErrCodeIO, fmt.Sprintf("cannot read %s: %v", path, err), nil)
		return nil, &ExitError{Code: ExitCommandError, Message: "unreadable input", Err: err}
	}
	formatter.VerboseLog("parsing %s (%d bytes)", path, len(src))
	return parseSource(formatter, string(src))
}

// parseSource parses policy text, emitting a formatted error with its
// source position when the text is malformed.
func parseSource(formatter *OutputFormatter, src string) (*ast.Theory, error) {
	theory, err := edict.ParseTheory(src)
	if err != nil {
		code := ErrCodeGeneric
		details := any(nil)
		if edict.IsLexicalError(err) {
			code = ErrCodeLexical
		} else if edict.IsSyntaxError(err) {
			code = ErrCodeSyntax
		}
		if pe, ok := edict.AsParseError(err); ok {
			details = map[string]any{"line": pe.Position().Line, "column": pe.Position().Column}
		}
		formatter.Error(code, err.Error(), details)
		return nil, &ExitError{Code: ExitFailure, Message: "parse failed", Err: err}
	}
	return theory, nil
}
