package cli

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/cardbook/internal/contacts"
	"github.com/roach88/cardbook/internal/match"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	Book    string
	Op      match.LogicalOperator
	Forgive bool
}

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	UIDs    []string
	Book    string
	Forgive bool
}

// PropertySetView is the JSON form of the properties shown for one contact.
type PropertySetView struct {
	UID        string   `json:"uid"`
	Properties []string `json:"properties"`
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find [filter]...",
		Short: "Print the UIDs of contacts matching property filters",
		Long: `Print the UIDs of contacts matching property filters.

A filter is a vCard content line. Parameters in the filter must all be
present on the contact's property; a value, if given, must equal the
property's value (or be contained in it with --forgive).

Filters are combined with --op: or (any matches, the default), and (all
match), not (none match) or xor (exactly one matches).

Example:
  cm find --book friends "FN:Jane Doe"
  cm find --op and "TEL;TYPE=home" "EMAIL"`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Book, "book", "b", "", "search only this book (default: whole store)")
	cmd.Flags().Var(&opts.Op, "op", fmt.Sprintf("how filters combine (%v)", match.ValidOperators))
	cmd.Flags().BoolVarP(&opts.Forgive, "forgive", "f", false, "match values by substring")

	return cmd
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show [--uid <uid>]... <filter>...",
		Short: "Print contact properties matching filters",
		Long: `Print the properties of contacts that match any of the filters.

Without --uid every contact in --book (or the whole store) is considered.
Contacts with no matching property are left out.

Example:
  cm show --uid 0190a5b4-1c2d-7e3f-8a4b-5c6d7e8f9a0b "TEL;TYPE=home"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args, cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.UIDs, "uid", "u", nil, "contact UID (repeatable)")
	cmd.Flags().StringVarP(&opts.Book, "book", "b", "", "book to show when no --uid is given")
	cmd.Flags().BoolVarP(&opts.Forgive, "forgive", "f", false, "match values by substring")

	return cmd
}

func runFind(opts *FindOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	filters, err := parseFilters(args)
	if err != nil {
		return fail(formatter, err)
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	uids, err := m.FindUIDs(opts.Book, filters, opts.Op, opts.Forgive)
	if err != nil {
		return fail(formatter, err)
	}
	return formatter.Lines(uidStrings(uids))
}

func runShow(opts *ShowOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	filters, err := parseFilters(args)
	if err != nil {
		return fail(formatter, err)
	}
	uids, err := parseUIDs(opts.UIDs)
	if err != nil {
		return fail(formatter, err)
	}
	m, err := opts.manager()
	if err != nil {
		return fail(formatter, err)
	}
	if len(uids) == 0 {
		uids, err = allUIDs(m, opts.Book)
		if err != nil {
			return fail(formatter, err)
		}
	}

	sets, err := m.FindProperties(filters, uids, opts.Forgive)
	if err != nil {
		return fail(formatter, err)
	}
	return writePropertySets(formatter, sets)
}

func allUIDs(m *contacts.Manager, book string) ([]uuid.UUID, error) {
	all, err := m.Contacts(book)
	if err != nil {
		return nil, err
	}
	uids := make([]uuid.UUID, 0, len(all))
	for _, c := range all {
		uid, err := c.UID()
		if err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	return uids, nil
}

// writePropertySets prints "<uid>\t<content line>" per property in text mode.
func writePropertySets(formatter *OutputFormatter, sets []contacts.PropertySet) error {
	views := make([]PropertySetView, len(sets))
	for i, set := range sets {
		views[i] = PropertySetView{UID: set.UID.String(), Properties: make([]string, len(set.Properties))}
		for j, p := range set.Properties {
			views[i].Properties[j] = p.String()
		}
	}
	return formatter.Result(views, func(w io.Writer) {
		for _, v := range views {
			for _, p := range v.Properties {
				fmt.Fprintf(w, "%s\t%s\n", v.UID, p)
			}
		}
	})
}
