package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/cardbook/internal/store"
)

// TransferOptions holds flags for the import and export commands.
type TransferOptions struct {
	*RootOptions
	Book string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransferOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import contacts from a vCard file",
		Long: `Import every vCard in a file and file the contacts in a book.

The whole file is parsed first; a file that does not parse imports nothing.
Contacts without a valid UID get a new one. A contact whose UID is already
stored replaces the stored copy.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", store.DefaultBook, "book to file imported contacts in")

	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TransferOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Print contacts as vCard text",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", "", "export only this book (default: whole store)")

	return cmd
}

func runImport(opts *TransferOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	uids, err := m.Import(path, opts.Book)
	if err != nil {
		return fail(formatter, err)
	}
	formatter.VerboseLog("Imported %d contact(s) from %s into %s", len(uids), path, opts.Book)
	return formatter.Lines(uidStrings(uids))
}

func runExport(opts *TransferOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	text, err := m.Export(opts.Book)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Result(text, func(w io.Writer) {
		fmt.Fprint(w, text)
	})
}
