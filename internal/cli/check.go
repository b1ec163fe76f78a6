package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardbook/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Repair bool
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the store for inconsistencies",
		Long: `Check the store for inconsistencies.

Reports book references whose contact is gone, contact files whose name does
not match the UID inside, files that are not valid vCard, and contacts that
are in no book. --repair removes the broken references; everything else is
left for you to resolve.

Exits 1 when problems remain.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Repair, "repair", false, "remove broken book references")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	var report *store.Report
	if opts.Repair {
		report, err = m.Repair()
	} else {
		report, err = m.Check()
	}
	if err != nil {
		return fail(formatter, err)
	}

	if err := formatter.Result(report, func(w io.Writer) { writeReport(w, report) }); err != nil {
		return err
	}
	if remaining(report) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d problem(s) found", remaining(report)))
	}
	return nil
}

// remaining counts the problems still present after an optional repair.
func remaining(r *store.Report) int {
	return len(r.BrokenReferences) - r.Repaired +
		len(r.MismatchedFiles) +
		len(r.MalformedFiles) +
		len(r.Unfiled)
}

func writeReport(w io.Writer, r *store.Report) {
	if r.Clean() {
		fmt.Fprintln(w, "✓ Store is consistent")
		return
	}
	for _, ref := range r.BrokenReferences {
		fmt.Fprintf(w, "broken reference: %s/%s\n", ref.Book, ref.UID)
	}
	for _, path := range r.MismatchedFiles {
		fmt.Fprintf(w, "name does not match UID: %s\n", path)
	}
	for _, path := range r.MalformedFiles {
		fmt.Fprintf(w, "not valid vCard: %s\n", path)
	}
	for _, uid := range r.Unfiled {
		fmt.Fprintf(w, "in no book: %s\n", uid)
	}
	if r.Repaired > 0 {
		fmt.Fprintf(w, "removed %d broken reference(s)\n", r.Repaired)
	}
}
