package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/edict/internal/store"
)

// LibraryOptions holds flags shared by the library subcommands.
type LibraryOptions struct {
	*RootOptions
	DBPath string
}

// PolicySummary is the JSON shape for library entries.
type PolicySummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint"`
	CreatedAt   string `json:"created_at"`
}

func summarize(p store.Policy) PolicySummary {
	return PolicySummary{
		ID:          p.ID,
		Name:        p.Name,
		Fingerprint: p.Fingerprint,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// NewLibraryCommand creates the library command group: a durable,
// SQLite-backed collection of named policies stored in canonical form.
func NewLibraryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LibraryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage the policy library",
		Long: `Store, list, and retrieve parsed policies.

Policies are stored with their original source, canonical rendering,
and a content fingerprint; saving a policy whose canonical form is
already stored reports the existing entry instead of duplicating it.`,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "edict.db", "policy library database path")

	cmd.AddCommand(newLibrarySaveCommand(opts))
	cmd.AddCommand(newLibraryListCommand(opts))
	cmd.AddCommand(newLibraryShowCommand(opts))
	cmd.AddCommand(newLibraryRemoveCommand(opts))

	return cmd
}

func newLibrarySaveCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "save <name> <file>",
		Short:         "Parse a policy file and save it under a name",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)
			name, path := args[0], args[1]

			src, err := os.ReadFile(path)
			if err != nil {
				formatter.Error(ErrCodeIO, fmt.Sprintf("cannot read %s: %v", path, err), nil)
				return &ExitError{Code: ExitCommandError, Message: "unreadable input", Err: err}
			}
			theory, err := parseSource(formatter, string(src))
			if err != nil {
				return err
			}

			s, err := openStore(formatter, opts.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			p, found, err := s.Save(cmd.Context(), name, string(src), theory)
			if err != nil {
				if errors.Is(err, store.ErrNameTaken) {
					formatter.Error(ErrCodeGeneric, err.Error(), nil)
					return &ExitError{Code: ExitFailure, Message: "name taken", Err: err}
				}
				formatter.Error(ErrCodeIO, err.Error(), nil)
				return &ExitError{Code: ExitCommandError, Message: "save failed", Err: err}
			}
			if found {
				formatter.VerboseLog("identical policy already stored as %q", p.Name)
			}
			return formatter.Success(summarize(p))
		},
	}
}

func newLibraryListCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved policies",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			s, err := openStore(formatter, opts.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			policies, err := s.List(cmd.Context())
			if err != nil {
				formatter.Error(ErrCodeIO, err.Error(), nil)
				return &ExitError{Code: ExitCommandError, Message: "list failed", Err: err}
			}
			if formatter.Format == "json" {
				summaries := make([]PolicySummary, len(policies))
				for i, p := range policies {
					summaries[i] = summarize(p)
				}
				return formatter.Success(summaries)
			}
			for _, p := range policies {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.Name, p.Fingerprint[:12], p.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newLibraryShowCommand(opts *LibraryOptions) *cobra.Command {
	var showSource bool
	cmd := &cobra.Command{
		Use:           "show <name>",
		Short:         "Print a saved policy in canonical form",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			s, err := openStore(formatter, opts.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.Get(cmd.Context(), args[0])
			if err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return &ExitError{Code: ExitFailure, Message: "not found", Err: err}
			}
			if showSource {
				return formatter.Text(p.Source)
			}
			return formatter.Text(p.Canonical)
		},
	}
	cmd.Flags().BoolVar(&showSource, "source", false, "print the original source instead of the canonical form")
	return cmd
}

func newLibraryRemoveCommand(opts *LibraryOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <name>",
		Short:         "Remove a saved policy",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(opts.RootOptions, cmd)

			s, err := openStore(formatter, opts.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				formatter.Error(ErrCodeGeneric, err.Error(), nil)
				return &ExitError{Code: ExitFailure, Message: "remove failed", Err: err}
			}
			return formatter.Success(fmt.Sprintf("removed %s", args[0]))
		},
	}
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func openStore(formatter *OutputFormatter, path string) (*store.Store, error) {
	s, err := store.Open(path)
	if err != nil {
		formatter.Error(ErrCodeIO, err.Error(), nil)
		return nil, &ExitError{Code: ExitCommandError, Message: "cannot open library", Err: err}
	}
	return s, nil
}
