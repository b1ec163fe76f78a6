package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cardbook/internal/store"
)

// ContactOptions holds flags for the contact subcommands.
type ContactOptions struct {
	*RootOptions
	Book string
}

// NewContactCommand creates the contact command group.
func NewContactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Create, delete and file contacts",
	}

	cmd.AddCommand(newContactCreateCommand(rootOpts))
	cmd.AddCommand(newContactDeleteCommand(rootOpts))
	cmd.AddCommand(newContactAddCommand(rootOpts))
	cmd.AddCommand(newContactRemoveCommand(rootOpts))

	return cmd
}

func newContactCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create <full-name>...",
		Short: "Create contacts",
		Long: `Create one contact per full name and file it in a book.

Full names must be unique across the store. The first duplicate stops the
command; contacts created before it are kept.

Example:
  cm contact create --book friends "Jane Doe" "John Doe"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContactCreate(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", store.DefaultBook, "book to file the new contacts in")

	return cmd
}

func newContactDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <uid>...",
		Short:         "Delete contacts from the store and every book",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContactDelete(rootOpts, args, cmd)
		},
	}
}

func newContactAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "add --book <book> <uid>...",
		Short:         "Add existing contacts to a book",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContactMembership(opts, args, cmd, true)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", "", "target book (required)")
	_ = cmd.MarkFlagRequired("book")

	return cmd
}

func newContactRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ContactOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "remove --book <book> <uid>...",
		Short: "Remove contacts from a book",
		Long: `Remove contacts from a book.

A contact that is no longer in any book is deleted from the store.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContactMembership(opts, args, cmd, false)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", "", "book to remove from (required)")
	_ = cmd.MarkFlagRequired("book")

	return cmd
}

func runContactCreate(opts *ContactOptions, names []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	uids, err := m.CreateContact(opts.Book, names)
	// Report what was created even when the batch stopped early.
	for i, uid := range uids {
		formatter.VerboseLog("Created %s (%s)", names[i], uid)
	}
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Lines(uidStrings(uids))
}

func runContactDelete(opts *RootOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	uids, err := parseUIDs(args)
	if err != nil {
		return fail(formatter, err)
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	if err := m.DeleteContacts(uids); err != nil {
		return fail(formatter, err)
	}
	return formatter.Success(fmt.Sprintf("Deleted %d contact(s)", len(uids)))
}

func runContactMembership(opts *ContactOptions, args []string, cmd *cobra.Command, add bool) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	uids, err := parseUIDs(args)
	if err != nil {
		return fail(formatter, err)
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}

	if add {
		err = m.AddToBook(opts.Book, uids)
	} else {
		err = m.RemoveFromBook(opts.Book, uids)
	}
	if err != nil {
		return fail(formatter, err)
	}

	verb := "Removed"
	prep := "from"
	if add {
		verb, prep = "Added", "to"
	}
	return formatter.Success(fmt.Sprintf("%s %d contact(s) %s %s", verb, len(uids), prep, opts.Book))
}
