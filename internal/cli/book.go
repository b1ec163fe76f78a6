package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BookListOptions holds flags for the book list command.
type BookListOptions struct {
	*RootOptions
	Match string
}

// NewBookCommand creates the book command group.
func NewBookCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Manage books",
	}

	cmd.AddCommand(newBookCreateCommand(rootOpts))
	cmd.AddCommand(newBookDeleteCommand(rootOpts))
	cmd.AddCommand(newBookRenameCommand(rootOpts))
	cmd.AddCommand(newBookListCommand(rootOpts))

	return cmd
}

func newBookCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "create <name>",
		Short:         "Create an empty book",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookChange(rootOpts, cmd, fmt.Sprintf("Created book %s", args[0]), func(m bookManager) error {
				return m.CreateBook(args[0])
			})
		},
	}
}

func newBookDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a book",
		Long: `Delete a book and its references.

Contacts in the book stay in the store, even if they are in no other book.
Use "cm check" to list them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookChange(rootOpts, cmd, fmt.Sprintf("Deleted book %s", args[0]), func(m bookManager) error {
				return m.DeleteBook(args[0])
			})
		},
	}
}

func newBookRenameCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rename <old> <new>",
		Short:         "Rename a book",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookChange(rootOpts, cmd, fmt.Sprintf("Renamed book %s to %s", args[0], args[1]), func(m bookManager) error {
				return m.RenameBook(args[0], args[1])
			})
		},
	}
}

func newBookListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BookListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books",
		Long: `List book names in sorted order.

--match keeps names matching a glob pattern, for example "fam*" or "{work,home}".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBookList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Match, "match", "", "glob pattern book names must match")

	return cmd
}

// bookManager is the part of the contacts manager book commands use.
type bookManager interface {
	CreateBook(name string) error
	DeleteBook(name string) error
	RenameBook(oldName, newName string) error
}

func runBookChange(opts *RootOptions, cmd *cobra.Command, done string, change func(bookManager) error) error {
	formatter := newFormatter(opts, cmd)

	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	if err := change(m); err != nil {
		return fail(formatter, err)
	}
	return formatter.Success(done)
}

func runBookList(opts *BookListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	names, err := m.Books(opts.Match)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Lines(names)
}
